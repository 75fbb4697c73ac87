package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/salesops/sales_etl_app/internal/core/domain"
	"github.com/salesops/sales_etl_app/internal/core/ports"
)

var _ ports.ProcessingLedger = (*FileStore)(nil)

// FileStore is a processing ledger persisted as a JSON object mapping file
// name to modification fingerprint. Writes go through a temp file and
// rename, so a crash mid-write never leaves a truncated ledger. A single
// active writer is assumed; the mutex only guards in-process callers.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a ledger backed by the JSON file at path. The file is
// created lazily on the first MarkProcessed.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// IsProcessed reports whether the file name is recorded with exactly the
// current fingerprint. A changed fingerprint reads as not processed, which
// re-enables a full reload.
func (s *FileStore) IsProcessed(identity domain.FileIdentity) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return false, err
	}
	fingerprint, ok := entries[identity.Name]
	return ok && fingerprint == identity.Fingerprint, nil
}

// MarkProcessed records the file's fingerprint, overwriting any prior entry
// for the same name. Call it only after a fully successful load.
func (s *FileStore) MarkProcessed(identity domain.FileIdentity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	entries[identity.Name] = identity.Fingerprint
	return s.save(entries)
}

func (s *FileStore) load() (map[string]int64, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]int64{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", s.path, err)
	}

	entries := map[string]int64{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing ledger %s: %w", s.path, err)
	}
	return entries, nil
}

func (s *FileStore) save(entries map[string]int64) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".ledger-*")
	if err != nil {
		return fmt.Errorf("creating ledger temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing ledger temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing ledger temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing ledger %s: %w", s.path, err)
	}
	return nil
}
