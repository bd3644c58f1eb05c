// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func startWatcher(t *testing.T, cfg Config) (cancel func() error) {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	var once sync.Once
	var runErr error
	cancel = func() error {
		once.Do(func() {
			stop()
			runErr = <-errCh
		})
		return runErr
	}
	t.Cleanup(func() { _ = cancel() })
	return cancel
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestWatcherDebounce checks that rapid writes arrive in one callback.
func TestWatcherDebounce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mod1", "configs", ".keep"), "")

	var (
		mu        sync.Mutex
		calls     int
		collected []string
	)
	done := make(chan struct{})

	cancel := startWatcher(t, Config{
		Root:     dir,
		Debounce: 100 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			collected = append(collected, changed...)
			if calls == 1 {
				close(done)
			}
			return nil
		},
	})

	for _, name := range []string{"materials.cue", "attributes.cue", "action_types.cue"} {
		writeFile(t, filepath.Join(dir, "mod1", "configs", name), `entries: []`)
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
	time.Sleep(200 * time.Millisecond)

	if err := cancel(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("callbacks = %d, want 1", calls)
	}
	for _, want := range []string{"mod1/configs/materials.cue", "mod1/configs/attributes.cue", "mod1/configs/action_types.cue"} {
		if !slices.Contains(collected, want) {
			t.Errorf("changed = %v, missing %q", collected, want)
		}
	}
	if !slices.IsSorted(collected) {
		t.Errorf("changed = %v, want sorted", collected)
	}
}

// TestWatcherFiltersFiles checks that only visible CUE files trigger a reload.
func TestWatcherFiltersFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".git", "HEAD"), "ref")

	fired := make(chan []string, 10)
	startWatcher(t, Config{
		Root:     dir,
		Debounce: 50 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			fired <- changed
			return nil
		},
	})

	writeFile(t, filepath.Join(dir, "notes.txt"), "x")
	writeFile(t, filepath.Join(dir, ".git", "config.cue"), "x: 1")
	writeFile(t, filepath.Join(dir, ".hidden.cue"), "x: 1")

	select {
	case changed := <-fired:
		t.Fatalf("unexpected callback for %v", changed)
	case <-time.After(300 * time.Millisecond):
	}

	writeFile(t, filepath.Join(dir, "loading_order.cue"), `vanilla: enabled: true`)
	select {
	case changed := <-fired:
		if !slices.Equal(changed, []string{"loading_order.cue"}) {
			t.Errorf("changed = %v, want [loading_order.cue]", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
}

// TestWatcherNewNamespace checks that folders created after startup are watched.
func TestWatcherNewNamespace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fired := make(chan []string, 10)
	startWatcher(t, Config{
		Root:     dir,
		Debounce: 50 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			fired <- changed
			return nil
		},
	})

	if err := os.Mkdir(filepath.Join(dir, "mod2"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "mod2", "namespace.cue"), `namespace: "mod2"`)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case changed := <-fired:
			if slices.Contains(changed, "mod2/namespace.cue") {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for mod2/namespace.cue")
		}
	}
}

// TestWatcherNewNamespaceTree checks that files written into freshly created
// nested folders are reported even when they land before the watch catches up.
func TestWatcherNewNamespaceTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fired := make(chan []string, 10)
	startWatcher(t, Config{
		Root:     dir,
		Debounce: 50 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			fired <- changed
			return nil
		},
	})

	if err := os.MkdirAll(filepath.Join(dir, "mod3", "configs", ".drafts"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "mod3", "configs", ".drafts", "materials.cue"), `entries: []`)
	writeFile(t, filepath.Join(dir, "mod3", "configs", "materials.cue"), `entries: ["mithril"]`)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case changed := <-fired:
			if slices.Contains(changed, "mod3/configs/.drafts/materials.cue") {
				t.Fatalf("hidden file reported: %v", changed)
			}
			if slices.Contains(changed, "mod3/configs/materials.cue") {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for mod3/configs/materials.cue")
		}
	}
}

// TestWatcherSkipIfBusy checks that a slow callback is never re-entered and
// that changes made while it runs are delivered afterwards.
func TestWatcherSkipIfBusy(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var (
		mu      sync.Mutex
		active  int
		overlap bool
		seen    []string
	)
	second := make(chan struct{})

	startWatcher(t, Config{
		Root:     dir,
		Debounce: 30 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			mu.Lock()
			active++
			if active > 1 {
				overlap = true
			}
			seen = append(seen, changed...)
			n := len(seen)
			mu.Unlock()

			time.Sleep(200 * time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
			if n > 1 && slices.Contains(seen, "b.cue") {
				select {
				case <-second:
				default:
					close(second)
				}
			}
			return nil
		},
	})

	writeFile(t, filepath.Join(dir, "a.cue"), "a: 1")
	time.Sleep(80 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "b.cue"), "b: 1")

	select {
	case <-second:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the change made during a reload")
	}

	mu.Lock()
	defer mu.Unlock()
	if overlap {
		t.Error("callback ran concurrently with itself")
	}
}

func TestWatcherCallbackErrorKeepsRunning(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fired := make(chan struct{}, 10)
	cancel := startWatcher(t, Config{
		Root:     dir,
		Debounce: 30 * time.Millisecond,
		OnChange: func(context.Context, []string) error {
			fired <- struct{}{}
			return errors.New("reload failed")
		},
	})

	for i := range 2 {
		writeFile(t, filepath.Join(dir, "a.cue"), "a: 1")
		select {
		case <-fired:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for callback %d", i+1)
		}
	}
	if err := cancel(); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestWatcherDoubleRun(t *testing.T) {
	t.Parallel()

	w, err := New(Config{Root: t.TempDir(), Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	// Wait until the first Run has claimed the watcher.
	for !w.started.Load() {
		time.Sleep(time.Millisecond)
	}
	if err := w.Run(ctx); !errors.Is(err, errAlreadyStarted) {
		t.Errorf("second Run() error = %v, want errAlreadyStarted", err)
	}
	cancel()
	if err := <-errCh; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestNew_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Root: filepath.Join(t.TempDir(), "missing")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("New() error = %v, want os.ErrNotExist", err)
	}
}

func TestHiddenAndRelevant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rel      string
		hidden   bool
		relevant bool
	}{
		{".", false, false},
		{"loading_order.cue", false, true},
		{"mod1/configs/materials.cue", false, true},
		{"mod1/notes.txt", false, false},
		{".git/config.cue", true, true},
		{"mod1/.draft.cue", true, true},
		{"mod1/configs/materials.cue~", false, false},
	}
	for _, tt := range tests {
		if got := hidden(filepath.FromSlash(tt.rel)); got != tt.hidden {
			t.Errorf("hidden(%q) = %v, want %v", tt.rel, got, tt.hidden)
		}
		if got := relevant(tt.rel); got != tt.relevant {
			t.Errorf("relevant(%q) = %v, want %v", tt.rel, got, tt.relevant)
		}
	}
}
