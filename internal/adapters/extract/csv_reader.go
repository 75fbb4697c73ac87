package extract

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/salesops/sales_etl_app/internal/core/domain"
	"github.com/salesops/sales_etl_app/internal/core/ports"
)

var _ ports.ExtractReader = (*CSVExtractReader)(nil)

// Column names the extract must carry. Order in the file does not matter;
// the header row decides the mapping.
var requiredColumns = []string{"order_id", "sales_amount", "currency", "order_date"}

// CSVExtractReader implements the ports.ExtractReader interface for CSV
// sales extracts. Values are passed through as raw text; coercion and
// null-handling are the normalizer's concern.
type CSVExtractReader struct{}

// NewCSVExtractReader creates a new reader instance.
func NewCSVExtractReader() *CSVExtractReader {
	return &CSVExtractReader{}
}

// ReadExtract reads and parses one sales extract CSV file.
func (r *CSVExtractReader) ReadExtract(ctx context.Context, path string) ([]domain.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open extract file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Short rows are tolerated; missing trailing columns read as empty.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("extract %s is missing required column %q", path, col)
		}
	}

	var records []domain.RawRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}

		records = append(records, domain.RawRecord{
			OrderID:       field(row, index, "order_id"),
			AffiliateName: field(row, index, "affiliate_name"),
			Category:      field(row, index, "category"),
			SalesAmount:   field(row, index, "sales_amount"),
			Currency:      field(row, index, "currency"),
			OrderDate:     field(row, index, "order_date"),
		})
	}
	return records, nil
}

// field returns the named column of a row, or "" when the column is not in
// the header or the row is too short.
func field(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
