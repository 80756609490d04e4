// Package watcher reports notebook changes on the shelf directory.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/voss/nbshelf/internal/toc"
)

// EventCallback is called for each observed notebook change.
// kind is one of "added", "updated", "removed".
type EventCallback func(kind string, name string)

// Watch starts an fsnotify watcher on the shelf directory and reports
// notebook changes until ctx is cancelled. The shelf is flat, so only the
// root directory itself is watched. The watcher is purely a notification
// source: it computes and caches nothing.
//
// A rename fires on the old path only; for a flat shelf that is a removal,
// and the new name arrives as its own create event.
func Watch(ctx context.Context, shelfDir string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(shelfDir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", shelfDir))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			name := filepath.Base(ev.Name)
			if !strings.HasSuffix(name, toc.Extension) {
				continue
			}
			if strings.HasPrefix(name, ".") {
				// Skip temp files from atomic writes and editor droppings.
				continue
			}

			var kind string
			switch {
			case ev.Op&fsnotify.Create != 0:
				kind = "added"
			case ev.Op&fsnotify.Write != 0:
				kind = "updated"
			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				kind = "removed"
			default:
				continue
			}

			logger.Debug("watcher: notebook changed",
				slog.String("name", name),
				slog.String("op", kind))
			if cb != nil {
				cb(kind, name)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
