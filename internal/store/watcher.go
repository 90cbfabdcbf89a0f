package store

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/prn-tf/roster/internal/view"
)

// Watcher observes the jsonfile backend's data file and reports external
// edits. Editors and the store itself replace the file via rename, so a
// single change arrives as a burst of filesystem events; the burst is
// debounced down to one callback.
type Watcher struct {
	fsw    *fsnotify.Watcher
	deb    *view.Debouncer
	done   chan struct{}
	logger zerolog.Logger
}

// WatchFile starts watching path and calls onChange once per settled
// burst of modifications. Close releases the watcher.
func WatchFile(path string, delay time.Duration, onChange func(), logger zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}

	// Watch the directory, not the file: renames replace the inode and
	// a watch on the file itself would be lost after the first save.
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	w := &Watcher{
		fsw:    fsw,
		done:   make(chan struct{}),
		logger: logger.With().Str("component", "store_watcher").Logger(),
	}
	w.deb = view.NewDebouncer(delay, func(string) {
		onChange()
	})

	go w.loop(filepath.Base(path))
	return w, nil
}

func (w *Watcher) loop(base string) {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug().Str("op", event.Op.String()).Msg("data file event")
			w.deb.Trigger(event.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

// Close stops the watcher and cancels any pending notification.
func (w *Watcher) Close() error {
	close(w.done)
	w.deb.Stop()
	return w.fsw.Close()
}
