package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/deusflow/geointel/internal/logger"
)

// reloadDebounce collapses the burst of events editors emit on save.
const reloadDebounce = 500 * time.Millisecond

// WatchQueries reloads the query file whenever it changes and passes the
// result to onChange. The parent directory is watched so atomic
// rename-on-save still triggers. Malformed edits are logged and ignored,
// keeping the previous lists in effect. Blocks until ctx is done.
func WatchQueries(ctx context.Context, path string, onChange func(Queries)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	logger.Info("Watching query config", "path", abs)

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			q, err := LoadQueries(abs)
			if err != nil {
				logger.Warn("Query config reload failed, keeping previous lists", "path", abs, "error", err)
				continue
			}
			logger.Info("Query config reloaded", "serper", len(q.Serper), "gnews", len(q.GNews), "feeds", len(q.Feeds))
			onChange(q)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Query config watcher error", "error", err)
		}
	}
}
