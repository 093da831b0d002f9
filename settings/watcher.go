package settings

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces editor save bursts.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a settings file when it changes on disk. A file that fails
// to parse is logged and the previous settings stay in the store.
type Watcher struct {
	path     string
	store    *Store
	logger   *slog.Logger
	debounce time.Duration
	onChange func(Settings)

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

func NewWatcher(path string, store *Store, logger *slog.Logger, onChange func(Settings)) (*Watcher, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("settings path is required")
	}
	if store == nil {
		return nil, fmt.Errorf("settings store is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:     abs,
		store:    store,
		logger:   logger.With("component", "settings"),
		debounce: DefaultDebounce,
		onChange: onChange,
	}, nil
}

// Start watches the file's directory so atomic renames are seen.
func (w *Watcher) Start(ctx context.Context) error {
	if w == nil {
		return nil
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.mu.Lock()
	w.watcher = fw
	w.mu.Unlock()

	go w.watchLoop(ctx, fw)
	return nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		err := w.watcher.Close()
		w.watcher = nil
		return err
	}
	return nil
}

// Reload reads the file now and publishes it.
func (w *Watcher) Reload() error {
	s, err := Load(w.path)
	if err != nil {
		w.logger.Warn("settings reload failed, keeping previous", "path", w.path, "error", err)
		return err
	}
	w.store.Set(s)
	w.logger.Info("settings reloaded", "path", w.path)
	if w.onChange != nil {
		w.onChange(s)
	}
	return nil
}

func (w *Watcher) watchLoop(ctx context.Context, fw *fsnotify.Watcher) {
	var mu sync.Mutex
	var timer *time.Timer

	schedule := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(w.debounce, func() {
			_ = w.Reload()
		})
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != w.path {
				continue
			}
			if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				schedule()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("settings watch error", "error", err)
		}
	}
}
