// SPDX-License-Identifier: MPL-2.0

// Package watch reports changes to the CUE files of a content directory.
//
// Events are debounced: everything that changes within the quiet period is
// delivered to one OnChange call. Hidden files and folders are ignored.
package watch

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/nsconfig"
)

// DefaultDebounce is the quiet period used when Config.Debounce is not positive.
const DefaultDebounce = 300 * time.Millisecond

var errAlreadyStarted = errors.New("watch: Run called more than once")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Root is the content directory. It must exist.
		Root string
		// Debounce is the quiet period after the last event before OnChange
		// fires.
		Debounce time.Duration
		// OnChange receives the changed files relative to Root, sorted. A nil
		// callback is a no-op.
		OnChange func(ctx context.Context, changed []string) error
		// Logger defaults to log.Default().
		Logger *log.Logger
	}

	// Watcher monitors a content directory. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		logger   *log.Logger
		debounce time.Duration
		root     string
		started  atomic.Bool
	}
)

// New registers every visible folder under cfg.Root for monitoring.
func New(cfg Config) (*Watcher, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve content directory: %w", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("watch: content directory %s: %w", root, os.ErrNotExist)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		logger:   cfg.Logger,
		debounce: cfg.Debounce,
		root:     root,
	}
	if w.logger == nil {
		w.logger = log.Default()
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}

	if err := w.addDirectories(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			w.logger.Warn("close watcher after init failure", "err", closeErr)
		}
		return nil, err
	}
	return w, nil
}

// Run blocks until ctx is canceled. It returns nil on cancellation and an
// error when the watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errAlreadyStarted
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire skips when a previous callback is still running and retries after
	// another debounce period so pending changes are not lost.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.logger.Debug("previous reload still running, retrying")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("reload failed", "err", err)
			}
		}
	}

	queue := func(rel, op string) {
		w.logger.Debug("content changed", "file", rel, "op", op)
		mu.Lock()
		pending[filepath.ToSlash(rel)] = struct{}{}
		if timer == nil {
			timer = time.AfterFunc(w.debounce, fire)
		} else {
			timer.Reset(w.debounce)
		}
		mu.Unlock()
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("close watcher", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event channel closed unexpectedly")
			}
			rel, err := filepath.Rel(w.root, evt.Name)
			if err != nil || hidden(rel) {
				continue
			}
			if evt.Has(fsnotify.Create) {
				// Files written into a new folder before it is watched produce no
				// events of their own.
				for _, found := range w.maybeAddDir(evt.Name) {
					queue(found, "create")
				}
			}
			if relevant(rel) {
				queue(rel, evt.Op.String())
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

func (w *Watcher) addDirectories() error {
	err := filepath.WalkDir(w.root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			w.logger.Warn("skipping inaccessible path", "path", path, "err", walkErr)
			return nil //nolint:nilerr // unreadable folders are skipped
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return nil //nolint:nilerr // not below root
		}
		if hidden(rel) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: walk content directory: %w", err)
	}
	return nil
}

// maybeAddDir extends the watch to folders created after startup, such as a
// new namespace, and returns the relevant files already inside them.
func (w *Watcher) maybeAddDir(path string) []string {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil
	}
	var found []string
	walkErr := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // the folder may vanish while walking
		}
		rel, relErr := filepath.Rel(w.root, p)
		if relErr != nil {
			return nil //nolint:nilerr // not below root
		}
		switch {
		case hidden(rel):
			if d.IsDir() {
				return filepath.SkipDir
			}
		case d.IsDir():
			if err := w.fsw.Add(p); err != nil {
				w.logger.Warn("watch new directory", "path", p, "err", err)
			}
		case relevant(rel):
			found = append(found, rel)
		}
		return nil
	})
	if walkErr != nil {
		w.logger.Warn("walk new directory", "path", path, "err", walkErr)
	}
	return found
}

// hidden reports whether any segment of rel starts with a dot.
func hidden(rel string) bool {
	if rel == "." {
		return false
	}
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// relevant reports whether rel is a file contentctl reads.
func relevant(rel string) bool {
	return filepath.Ext(rel) == nsconfig.FragmentExt
}
