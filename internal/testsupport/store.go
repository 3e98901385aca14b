package testsupport

import (
	"context"
	"testing"

	"mkvrobot/internal/config"
	"mkvrobot/internal/robot"
	"mkvrobot/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// SaveScan stores raw robot output scanned from source.
func SaveScan(t testing.TB, st *store.Store, source, raw string) store.Scan {
	t.Helper()

	scan, err := st.Save(context.Background(), store.NewScan(source, raw, robot.Parse(raw)))
	if err != nil {
		t.Fatalf("store.Save: %v", err)
	}
	return scan
}
