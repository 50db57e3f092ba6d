package preview

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/timet/internal/util"
)

const defaultDebounce = 100 * time.Millisecond

// FileWatcher reports changes to a single file.
//
// The parent directory is watched rather than the file itself so that editors
// replacing the file through a rename are still noticed.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
}

func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &FileWatcher{
		watcher:  watcher,
		path:     abs,
		debounce: defaultDebounce,
	}, nil
}

// Run calls onChange once per burst of writes to the file until ctx is done.
// Errors from onChange are passed to onError and do not stop the loop.
func (fw *FileWatcher) Run(ctx context.Context, onChange func() error, onError func(error)) error {
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if !fw.matches(event) {
				continue
			}
			util.LogDebug("Template changed", util.F("path", event.Name), util.F("op", event.Op.String()))
			pending = time.After(fw.debounce)

		case <-pending:
			pending = nil
			if err := onChange(); err != nil {
				onError(err)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

func (fw *FileWatcher) matches(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != fw.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
