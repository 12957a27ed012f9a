package netcopy

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 300 * time.Millisecond

// Watcher monitors the base directory and every user folder directly under
// it, and calls onChange once per burst of filesystem events.
type Watcher struct {
	baseDir  string
	onChange func()
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// NewWatcher creates a watcher on the real filesystem rooted at baseDir.
func NewWatcher(baseDir string, onChange func()) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		baseDir:  baseDir,
		onChange: onChange,
		debounce: debounceInterval,
		watcher:  w,
	}, nil
}

// Start adds the watches and dispatches debounced change notifications.
// Blocks until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	l := sub("watcher")

	if err := w.addUserFolders(); err != nil {
		return err
	}
	l.Info("watching", "root", w.baseDir)

	dirty := false
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.watcher.Close()
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if strings.Contains(filepath.Base(event.Name), tmpMarker) {
				continue
			}

			// A new user folder appeared directly under the root.
			if event.Has(fsnotify.Create) && filepath.Dir(event.Name) == w.baseDir {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.watcher.Add(event.Name) //nolint:errcheck
				}
			}

			l.Debug("fs event", "path", event.Name, "op", event.Op.String())
			dirty = true
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			l.Warn("watcher error", "err", err)

		case <-timer.C:
			if dirty {
				dirty = false
				l.Debug("change flushed")
				w.onChange()
			}
		}
	}
}

// addUserFolders watches the root and each of its immediate subdirectories.
// Nested folders are not watched; they never hold a payload.
func (w *Watcher) addUserFolders() error {
	if err := w.watcher.Add(w.baseDir); err != nil {
		return err
	}
	entries, err := os.ReadDir(w.baseDir)
	if err != nil {
		return err
	}
	var errs []error
	for _, d := range entries {
		if !d.IsDir() {
			continue
		}
		if err := w.watcher.Add(filepath.Join(w.baseDir, d.Name())); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		sub("watcher").Warn("some user folders not watched", "err", errors.Join(errs...))
	}
	return nil
}

// Close closes the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
