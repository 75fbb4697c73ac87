package ledger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/salesops/sales_etl_app/internal/adapters/ledger"
	"github.com/salesops/sales_etl_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_UnknownFileIsNotProcessed(t *testing.T) {
	store := ledger.NewFileStore(filepath.Join(t.TempDir(), "ledger.json"))

	processed, err := store.IsProcessed(domain.FileIdentity{Name: "sales.csv", Fingerprint: 42})

	require.NoError(t, err)
	assert.False(t, processed)
}

func TestFileStore_MarkAndCheckRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	store := ledger.NewFileStore(path)
	identity := domain.FileIdentity{Name: "sales.csv", Fingerprint: 42}

	require.NoError(t, store.MarkProcessed(identity))

	processed, err := store.IsProcessed(identity)
	require.NoError(t, err)
	assert.True(t, processed)

	// A fresh store over the same file sees the durable entry.
	reopened := ledger.NewFileStore(path)
	processed, err = reopened.IsProcessed(identity)
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestFileStore_FingerprintMismatchReadsAsUnprocessed(t *testing.T) {
	store := ledger.NewFileStore(filepath.Join(t.TempDir(), "ledger.json"))
	require.NoError(t, store.MarkProcessed(domain.FileIdentity{Name: "sales.csv", Fingerprint: 42}))

	processed, err := store.IsProcessed(domain.FileIdentity{Name: "sales.csv", Fingerprint: 43})

	require.NoError(t, err)
	assert.False(t, processed, "changed file must be reloaded in full")
}

func TestFileStore_MarkOverwritesPriorEntry(t *testing.T) {
	store := ledger.NewFileStore(filepath.Join(t.TempDir(), "ledger.json"))
	require.NoError(t, store.MarkProcessed(domain.FileIdentity{Name: "sales.csv", Fingerprint: 42}))
	require.NoError(t, store.MarkProcessed(domain.FileIdentity{Name: "sales.csv", Fingerprint: 99}))

	old, err := store.IsProcessed(domain.FileIdentity{Name: "sales.csv", Fingerprint: 42})
	require.NoError(t, err)
	assert.False(t, old)

	current, err := store.IsProcessed(domain.FileIdentity{Name: "sales.csv", Fingerprint: 99})
	require.NoError(t, err)
	assert.True(t, current)
}

func TestFileStore_CorruptLedgerSurfacesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	store := ledger.NewFileStore(path)

	_, err := store.IsProcessed(domain.FileIdentity{Name: "sales.csv", Fingerprint: 1})

	assert.Error(t, err)
}

func TestMemoryStore_Behaviour(t *testing.T) {
	store := ledger.NewMemoryStore()
	identity := domain.FileIdentity{Name: "sales.csv", Fingerprint: 7}

	processed, err := store.IsProcessed(identity)
	require.NoError(t, err)
	assert.False(t, processed)

	require.NoError(t, store.MarkProcessed(identity))

	processed, err = store.IsProcessed(identity)
	require.NoError(t, err)
	assert.True(t, processed)
}
