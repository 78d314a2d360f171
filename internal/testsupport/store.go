package testsupport

import (
	"path/filepath"
	"testing"

	"moneypress/internal/ledger"
)

// MustOpenStore opens a ledger.Store backed by a temp database and registers cleanup.
func MustOpenStore(t testing.TB) *ledger.Store {
	t.Helper()

	store, err := ledger.OpenPath(filepath.Join(t.TempDir(), "moneypress.db"))
	if err != nil {
		t.Fatalf("ledger.OpenPath: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
