package kv

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a single file of the file backend.
type Watcher struct {
	fw   *fsnotify.Watcher
	done chan struct{}
}

// Watch calls onChange from a background goroutine whenever path is written,
// created or replaced. The parent directory is watched so that atomic
// rename-into-place writes are seen. Close stops the goroutine.
func Watch(path string, logger *log.Logger, onChange func()) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("kv: watch needs a callback")
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("kv: resolve watch path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("kv: new watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("kv: watch dir: %w", err)
	}

	w := &Watcher{fw: fw, done: make(chan struct{})}
	go func() {
		defer close(w.done)
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				name, err := filepath.Abs(ev.Name)
				if err != nil || name != target {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
					onChange()
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				if logger != nil {
					logger.Warn("watch error", "path", target, "err", err)
				}
			}
		}
	}()
	return w, nil
}

// Close stops watching and waits for the goroutine to exit.
func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	err := w.fw.Close()
	<-w.done
	return err
}
