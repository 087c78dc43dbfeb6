package testsupport

import (
	"testing"

	"takeplan/internal/config"
	"takeplan/internal/history"
)

// MustOpenStore opens the history store for cfg and closes it on cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
