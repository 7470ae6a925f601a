package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatch_ReportsCatalogWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Watch(ctx, path, quietLogger(), func() { calls.Add(1) })
	}()
	defer func() {
		cancel()
		<-done
	}()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)

	// Unrelated files in the same directory are ignored.
	_ = os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o644)
	// A burst of writes collapses into one notification.
	for i := 0; i < 3; i++ {
		_ = os.WriteFile(path, []byte(`[{"id":"a"}]`), 0o644)
	}

	deadline := time.Now().Add(3 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if calls.Load() == 0 {
		t.Fatal("expected a change notification")
	}
	time.Sleep(2 * watchDebounce)
	if n := calls.Load(); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}
