package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func TestWatcher_DebouncesBurstIntoOneTrigger(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "Transactions.csv")
	if err := writeFile(input, "TransactionID\n"); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var triggers []string
	w := NewWatcher([]string{input}, func(path string) {
		mu.Lock()
		triggers = append(triggers, path)
		mu.Unlock()
	}, WithDebounce(100*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	for i := 0; i < 5; i++ {
		if err := writeFile(input, "TransactionID\nT1\n"); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	// Unrelated files in the same directory are ignored.
	if err := writeFile(filepath.Join(dir, "notes.txt"), "x"); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(triggers)
		mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(triggers) != 1 {
		t.Fatalf("expected exactly one debounced trigger, got %v", triggers)
	}
	if filepath.Clean(triggers[0]) != filepath.Clean(input) {
		t.Errorf("trigger path = %s, want %s", triggers[0], input)
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher([]string{filepath.Join(dir, "a.csv")}, nil)
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
}

func TestWatcher_StartFailsForMissingDirectory(t *testing.T) {
	w := NewWatcher([]string{filepath.Join(t.TempDir(), "missing", "a.csv")}, nil)
	if err := w.Start(context.Background()); err == nil {
		w.Stop()
		t.Fatal("expected error for missing parent directory")
	}
}

func TestWatcher_Files(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher([]string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")}, nil)
	if got := len(w.Files()); got != 2 {
		t.Errorf("Files() = %d entries, want 2", got)
	}
}
