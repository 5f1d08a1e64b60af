package filewatch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/aguxez/carnitarget/models"
)

// Directory names the watcher dispatches on.
const (
	ProfileDir = "profile"
	DailyDir   = "daily"
)

// FileWatcher monitors directory changes
type FileWatcher struct {
	stateMgr *models.StateManager
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
}

func NewFileWatcher(paths []string, sm *models.StateManager, logger *zap.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	for _, path := range paths {
		if err := w.Add(path); err != nil {
			w.Close()
			return nil, fmt.Errorf("watching %s: %w", path, err)
		}
	}

	return &FileWatcher{stateMgr: sm, watcher: w, logger: logger}, nil
}

// LoadAll walks root and loads every profile and daily log file in it.
func (fw *FileWatcher) LoadAll(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip directories
		if d.IsDir() {
			return nil
		}

		if err := fw.HandleFileChange(path); err != nil {
			fw.logger.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
		}
		return nil
	})
}

// Watch reloads changed files until ctx is done or the watcher is closed.
func (fw *FileWatcher) Watch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				fw.logger.Debug("modified file", zap.String("path", event.Name))
				if err := fw.HandleFileChange(event.Name); err != nil {
					fw.logger.Error("reloading file", zap.String("path", event.Name), zap.Error(err))
				}
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				fw.logger.Debug("removed file", zap.String("path", event.Name))
				fw.HandleFileRemoval(event.Name)
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("watcher error", zap.Error(err))
		}
	}
}

func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}

// HandleFileChange parses path according to its parent directory and updates
// state. On error the previous state is kept. Files in other directories or
// with other extensions are ignored.
func (fw *FileWatcher) HandleFileChange(path string) error {
	ext := filepath.Ext(path)
	switch filepath.Base(filepath.Dir(path)) {
	case ProfileDir:
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		profile, err := ParseProfile(path)
		if err != nil {
			return fmt.Errorf("parsing profile: %w", err)
		}
		fw.stateMgr.UpdateProfile(profile)
		fw.logger.Info("profile loaded", zap.String("path", path))
	case DailyDir:
		if ext != ".csv" {
			return nil
		}
		entries, err := ParseDailyLog(path)
		if err != nil {
			return fmt.Errorf("parsing daily log: %w", err)
		}
		fw.stateMgr.UpdateDaily(path, entries)
		fw.logger.Info("daily log loaded", zap.String("path", path), zap.Int("entries", len(entries)))
	}
	return nil
}

// HandleFileRemoval forgets the daily entries loaded from path. A removed
// profile keeps the last one loaded.
func (fw *FileWatcher) HandleFileRemoval(path string) {
	if filepath.Base(filepath.Dir(path)) != DailyDir || filepath.Ext(path) != ".csv" {
		return
	}
	fw.stateMgr.RemoveDaily(path)
	fw.logger.Info("daily log removed", zap.String("path", path))
}
