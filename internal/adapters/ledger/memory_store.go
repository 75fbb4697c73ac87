package ledger

import (
	"sync"

	"github.com/salesops/sales_etl_app/internal/core/domain"
	"github.com/salesops/sales_etl_app/internal/core/ports"
)

var _ ports.ProcessingLedger = (*MemoryStore)(nil)

// MemoryStore is an in-memory processing ledger. It backs tests and dry
// runs where reprocessing on every invocation is acceptable.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]int64
}

// NewMemoryStore creates an empty in-memory ledger.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]int64{}}
}

// IsProcessed reports whether the file name is recorded with exactly the
// current fingerprint.
func (s *MemoryStore) IsProcessed(identity domain.FileIdentity) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fingerprint, ok := s.entries[identity.Name]
	return ok && fingerprint == identity.Fingerprint, nil
}

// MarkProcessed records the file's fingerprint, overwriting any prior entry.
func (s *MemoryStore) MarkProcessed(identity domain.FileIdentity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[identity.Name] = identity.Fingerprint
	return nil
}
