package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsChangedUnits(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	if err := os.MkdirAll(out, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	w, err := NewWatcher([]string{dir}, []string{out}, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changed []string) error {
			changes <- changed
			return nil
		})
	}()

	// Output and non-unit writes are ignored.
	for _, p := range []string{filepath.Join(out, "X.jlu"), filepath.Join(dir, "notes.txt"), filepath.Join(dir, "A.jlu")} {
		if err := os.WriteFile(p, []byte("x"), 0o600); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}

	select {
	case changed := <-changes:
		want, _ := filepath.Abs(filepath.Join(dir, "A.jlu"))
		if len(changed) != 1 || changed[0] != want {
			t.Fatalf("changed = %v, want [%s]", changed, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}
