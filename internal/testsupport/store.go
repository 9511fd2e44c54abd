package testsupport

import (
	"context"
	"testing"
	"time"

	"tasknotify/internal/config"
	"tasknotify/internal/store"
)

// MustOpenStore opens a store against the test config and closes it on cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()
	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

// SeedTask saves a task snapshot, failing the test on error.
func SeedTask(t testing.TB, st *store.Store, task store.Task) {
	t.Helper()
	if _, err := st.SaveTask(context.Background(), task); err != nil {
		t.Fatalf("seed task %s: %v", task.ID, err)
	}
}

// SeedUser registers a device token for a username, failing the test on error.
func SeedUser(t testing.TB, st *store.Store, username, token string) {
	t.Helper()
	if err := st.UpsertUserToken(context.Background(), username, token); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
}

// DueIn returns a pointer to now+d, convenient for task due dates in tests.
func DueIn(d time.Duration) *time.Time {
	due := time.Now().UTC().Add(d)
	return &due
}
