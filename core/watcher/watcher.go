package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"amalgo/core/cache"
	"amalgo/core/config"
	"amalgo/core/logger"
	"amalgo/core/models"
)

const debounceDelay = 500 * time.Millisecond

// FileWatcher watches the configured input roots and rebuilds the merged
// header when a header or source file actually changes.
type FileWatcher struct {
	fw         *models.FileWatcher
	extensions config.Extensions
}

func NewFileWatcher(cfg *config.Config) (*FileWatcher, error) {
	roots := append(append([]string{}, cfg.HeaderDirs...), cfg.SourceDirs...)
	fw, err := models.NewFileWatcher(roots, []string{cfg.Output})
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &FileWatcher{
		fw:         fw,
		extensions: cfg.Extensions,
	}, nil
}

func (w *FileWatcher) AddOnStartFunc(onStart func() error) { w.fw.AddOnStartFunc(onStart) }

func (w *FileWatcher) AddOnChangeFunc(onChange func() error) { w.fw.AddOnChangeFunc(onChange) }

func (w *FileWatcher) AddOnCloseFunc(onClose func() error) { w.fw.AddOnCloseFunc(onClose) }

// Watch runs the initial build, then loops over filesystem events until the
// watcher is closed. Rebuild failures are logged and watching continues; a
// half-edited tree must not kill the loop.
func (w *FileWatcher) Watch() error {
	for _, root := range w.fw.RootDirs {
		if err := w.addWatchersRecursively(root); err != nil {
			return fmt.Errorf("failed to add watchers: %w", err)
		}
	}

	if err := w.fw.OnStart(); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	for {
		select {
		case event, ok := <-w.fw.Watcher.Events:
			if !ok {
				// Channel closes when Close is called; normal shutdown.
				return nil
			}

			if w.shouldExcludePath(event.Name) {
				continue
			}

			logger.Debug("File event: %s %s", event.Op, event.Name)

			if event.Has(fsnotify.Create) {
				if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
					logger.Debug("Adding watcher for new directory: %s", event.Name)
					w.fw.Watcher.Add(event.Name)
					w.debounceRebuild()
					continue
				}
			}

			if !w.isInputFile(event.Name) {
				continue
			}

			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				cache.GetCache().InvalidateFile(event.Name)
				w.debounceRebuild()
				continue
			}

			if !cache.GetCache().HasContentChanged(event.Name) {
				logger.Debug("Content unchanged, skipping rebuild: %s", event.Name)
				continue
			}

			w.debounceRebuild()

		case err, ok := <-w.fw.Watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

func (w *FileWatcher) debounceRebuild() {
	w.fw.Mutex.Lock()
	defer w.fw.Mutex.Unlock()

	if w.fw.DebounceTimer != nil {
		w.fw.DebounceTimer.Stop()
	}

	w.fw.DebounceTimer = time.AfterFunc(debounceDelay, func() {
		logger.Debug("File changes detected, rebuilding...")
		if err := w.fw.OnChange(); err != nil {
			logger.Error("Rebuild failed: %v", err)
		}
	})
}

func (w *FileWatcher) Close() error {
	w.fw.Mutex.Lock()
	defer w.fw.Mutex.Unlock()

	if w.fw.DebounceTimer != nil {
		w.fw.DebounceTimer.Stop()
	}

	if err := w.fw.OnClose(); err != nil {
		logger.Error("Watcher.OnClose failed: %v", err)
	}

	return w.fw.Watcher.Close()
}

// isInputFile reports whether the path's extension belongs to either
// configured set.
func (w *FileWatcher) isInputFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range append(append([]string{}, w.extensions.Header...), w.extensions.Source...) {
		if ext == e {
			return true
		}
	}
	return false
}

func (w *FileWatcher) shouldExcludePath(path string) bool {
	cleaned := filepath.Clean(path)
	for _, excludePath := range w.fw.ExcludePaths {
		if excludePath == "" {
			continue
		}
		excludePath = filepath.Clean(excludePath)
		if cleaned == excludePath || filepath.Base(cleaned) == excludePath {
			return true
		}
		if strings.HasPrefix(cleaned, excludePath+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *FileWatcher) addWatchersRecursively(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		if w.shouldExcludePath(path) {
			logger.Debug("Excluding directory: %s", path)
			return filepath.SkipDir
		}

		logger.Debug("Adding watcher for: %s", path)
		if err := w.fw.Watcher.Add(path); err != nil {
			return fmt.Errorf("failed to add watcher for %s: %w", path, err)
		}

		return nil
	})
}
