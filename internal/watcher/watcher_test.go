package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) record(kind, name string) {
	r.mu.Lock()
	r.events = append(r.events, kind+":"+name)
	r.mu.Unlock()
}

func (r *recorder) has(want string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e == want {
			return true
		}
	}
	return false
}

func TestWatch_NewNotebookReported(t *testing.T) {
	shelfDir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	go func() { _ = Watch(ctx, shelfDir, testLogger(), rec.record) }()
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(shelfDir, "new.ipynb"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.has("added:new.ipynb")
	}, "expected added:new.ipynb callback")
}

func TestWatch_RemovedNotebookReported(t *testing.T) {
	shelfDir := t.TempDir()
	path := filepath.Join(shelfDir, "doomed.ipynb")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	go func() { _ = Watch(ctx, shelfDir, testLogger(), rec.record) }()
	time.Sleep(100 * time.Millisecond)

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.has("removed:doomed.ipynb")
	}, "expected removed:doomed.ipynb callback")
}

func TestWatch_IgnoresNonNotebooks(t *testing.T) {
	shelfDir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	go func() { _ = Watch(ctx, shelfDir, testLogger(), rec.record) }()
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(shelfDir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(shelfDir, "real.ipynb"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.has("added:real.ipynb")
	}, "expected added:real.ipynb callback")

	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, e := range rec.events {
		if e == "added:notes.txt" {
			t.Error("non-notebook file reported")
		}
	}
}

func TestWatch_StopsOnCancel(t *testing.T) {
	shelfDir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Watch(ctx, shelfDir, testLogger(), nil) }()
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
