package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/salesops/sales_etl_app/internal/core/domain"
	"github.com/salesops/sales_etl_app/internal/core/ports"
)

var _ ports.PipelineSvc = (*PipelineService)(nil)

// PipelineService sequences one run per extract file:
// ledger check -> rate fetch -> normalize -> load -> ledger mark.
// The run is terminal on first failure; the ledger is marked only after a
// fully successful load, so a failed file is retried wholesale next time.
type PipelineService struct {
	reader     ports.ExtractReader
	resolver   ports.RateResolverSvc
	normalizer ports.NormalizerSvc
	store      ports.SalesStore
	ledger     ports.ProcessingLedger
	logger     *slog.Logger
}

// NewPipelineService creates a new PipelineService.
func NewPipelineService(
	reader ports.ExtractReader,
	resolver ports.RateResolverSvc,
	normalizer ports.NormalizerSvc,
	store ports.SalesStore,
	ledger ports.ProcessingLedger,
	logger *slog.Logger,
) *PipelineService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PipelineService{
		reader:     reader,
		resolver:   resolver,
		normalizer: normalizer,
		store:      store,
		ledger:     ledger,
		logger:     logger,
	}
}

// Run executes the pipeline for a single extract file. The returned
// RunResult is non-nil whenever the file could be identified, including on
// failure, so callers can report the terminal state per file.
func (s *PipelineService) Run(ctx context.Context, path string) (*domain.RunResult, error) {
	identity, err := fileIdentity(path)
	if err != nil {
		return nil, fmt.Errorf("identifying extract %s: %w", path, err)
	}

	result := &domain.RunResult{
		RunID: uuid.NewString(),
		File:  identity,
	}
	logger := s.logger.With(
		slog.String("run_id", result.RunID),
		slog.String("file", identity.Name),
	)

	processed, err := s.ledger.IsProcessed(identity)
	if err != nil {
		result.State = domain.RunFailed
		return result, fmt.Errorf("checking ledger for %s: %w", identity.Name, err)
	}
	if processed {
		result.State = domain.RunSkipped
		logger.Info("Extract already processed, skipping")
		return result, nil
	}

	raw, err := s.reader.ReadExtract(ctx, path)
	if err != nil {
		result.State = domain.RunFailed
		return result, fmt.Errorf("reading extract %s: %w", identity.Name, err)
	}
	result.RawRows = len(raw)

	rates, err := s.resolver.ResolveRates(ctx, s.normalizer.DistinctOrderDates(raw))
	if err != nil {
		result.State = domain.RunFailed
		return result, fmt.Errorf("run for %s: %w", identity.Name, err)
	}

	sales := s.normalizer.Normalize(raw, rates)
	result.Normalized = len(sales)

	summary, err := s.store.LoadBatch(ctx, rates, sales)
	if err != nil {
		result.State = domain.RunFailed
		return result, fmt.Errorf("loading %s: %w", identity.Name, err)
	}
	result.Load = summary

	if err := s.ledger.MarkProcessed(identity); err != nil {
		result.State = domain.RunFailed
		return result, fmt.Errorf("marking %s processed: %w", identity.Name, err)
	}

	result.State = domain.RunLoaded
	counts := summary.Counts()
	logger.Info("Extract loaded",
		slog.Int("raw_rows", result.RawRows),
		slog.Int("normalized", result.Normalized),
		slog.Int("rates_inserted", summary.RatesInserted),
		slog.Int("inserted", counts[domain.LoadInserted]),
		slog.Int("skipped_duplicate", counts[domain.LoadSkippedDuplicate]),
		slog.Int("skipped_unresolved_rate", counts[domain.LoadSkippedUnresolvedRate]),
	)
	return result, nil
}

// fileIdentity fingerprints an extract by base name and modification time.
func fileIdentity(path string) (domain.FileIdentity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.FileIdentity{}, err
	}
	return domain.FileIdentity{
		Name:        filepath.Base(path),
		Fingerprint: info.ModTime().UnixNano(),
	}, nil
}
