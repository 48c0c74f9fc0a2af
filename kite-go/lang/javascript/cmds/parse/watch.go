package main

import (
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/kiteco/jsparse/kite-golib/errors"
	"go.uber.org/zap"
)

// watch calls onChange for every write to one of paths until interrupted.
// Directories are watched rather than the files themselves so that editors
// which save by renaming are followed.
func watch(logger *zap.SugaredLogger, paths []string, onChange func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrapf(err, "error creating watcher")
	}
	defer watcher.Close()

	tracked := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return errors.Wrapf(err, "error resolving %s", p)
		}
		tracked[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "error watching %s", dir)
		}
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	logger.Infow("watching", "files", len(tracked))
	for {
		select {
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !tracked[evt.Name] || !isChange(evt.Op) {
				continue
			}
			logger.Debugw("file changed", "path", evt.Name, "op", evt.Op.String())
			onChange(evt.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorw("watch error", "error", err)
		case <-interrupt:
			return nil
		}
	}
}

func isChange(op fsnotify.Op) bool {
	return op&(fsnotify.Write|fsnotify.Create) != 0
}
