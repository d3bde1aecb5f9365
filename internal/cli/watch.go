package cli

import (
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/gridsketch/pkg/errors"
)

// configWatcher reloads a config file whenever it changes on disk.
type configWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	done    chan struct{}
}

// watchConfig calls fn with the freshly parsed file after every write.
// Editors often replace files instead of writing them in place, so the
// parent directory is watched and events are filtered by name. Files that
// fail to parse are logged and skipped.
func watchConfig(path string, logger *log.Logger, fn func(*fileConfig)) (*configWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "resolve %s", path)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "watch %s", path)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, errors.Wrap(errors.ErrCodeIO, err, "watch %s", path)
	}

	cw := &configWatcher{watcher: w, path: abs, done: make(chan struct{})}
	go cw.loop(logger, fn)
	return cw, nil
}

func (cw *configWatcher) loop(logger *log.Logger, fn func(*fileConfig)) {
	defer close(cw.done)
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := loadConfig(cw.path)
			if err != nil {
				logger.Warn("config reload failed", "path", cw.path, "err", err)
				continue
			}
			logger.Debug("config reloaded", "path", cw.path)
			fn(cfg)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher", "err", err)
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (cw *configWatcher) Close() error {
	err := cw.watcher.Close()
	<-cw.done
	return err
}
