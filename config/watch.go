package config

import (
	"fmt"
	"path/filepath"

	"github.com/milk9111/fpsdemo/prefabs"
	"github.com/rs/zerolog/log"
)

// Watcher reloads a tuning file when it changes on disk. Poll it from the
// frame goroutine.
type Watcher struct {
	path    string
	watcher *prefabs.Watcher
}

func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	w, err := prefabs.NewWatcher(abs)
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	return &Watcher{path: abs, watcher: w}, nil
}

// Poll drains pending file events without blocking. It returns the reloaded
// tuning when the watched file changed and parsed cleanly.
func (w *Watcher) Poll() (Tuning, bool) {
	changed := false
	events, errs := w.watcher.Events, w.watcher.Errors
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return w.reload(changed)
			}
			changed = true
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Warn().Err(err).Str("path", w.path).Msg("tuning watcher error")
		default:
			return w.reload(changed)
		}
	}
}

func (w *Watcher) reload(changed bool) (Tuning, bool) {
	if !changed {
		return Tuning{}, false
	}
	t, err := Load(w.path)
	if err != nil {
		log.Error().Err(err).Str("path", w.path).Msg("tuning reload failed, keeping previous values")
		return Tuning{}, false
	}
	log.Debug().Str("path", w.path).Msg("tuning file parsed")
	return t, true
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}
