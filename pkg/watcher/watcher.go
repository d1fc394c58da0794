package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher reports changes to a set of files. Events are debounced
// per file so a burst of writes from an exporter triggers one reparse.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu     sync.Mutex
	files  map[string]bool
	timers map[string]*time.Timer
	errors func(error)
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		debounce: debounce,
		files:    make(map[string]bool),
		timers:   make(map[string]*time.Timer),
		errors:   func(error) {},
	}, nil
}

// OnError sets the function receiving watcher errors.
func (fw *FileWatcher) OnError(fn func(error)) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.errors = fn
}

// Add starts watching files. The parent directories are watched rather
// than the files themselves, so files replaced by rename keep being
// tracked.
func (fw *FileWatcher) Add(files ...string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}

		if err := fw.watcher.Add(filepath.Dir(absPath)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", absPath, err)
		}

		fw.files[absPath] = true
	}

	return nil
}

// Run delivers changes until ctx is done, then closes the watcher.
// onChange is called with the absolute path of the changed file, never
// concurrently with itself.
func (fw *FileWatcher) Run(ctx context.Context, onChange func(string)) error {
	done := make(chan struct{})
	defer func() {
		close(done)
		fw.Close()
	}()

	changed := make(chan string)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fw.schedule(event.Name, changed, done)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.mu.Lock()
			report := fw.errors
			fw.mu.Unlock()
			report(err)

		case path := <-changed:
			onChange(path)
		}
	}
}

// schedule restarts the debounce timer of a watched file
func (fw *FileWatcher) schedule(path string, changed chan<- string, done <-chan struct{}) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.files[path] {
		return
	}

	if timer, exists := fw.timers[path]; exists {
		timer.Stop()
	}

	fw.timers[path] = time.AfterFunc(fw.debounce, func() {
		select {
		case changed <- path:
		case <-done:
		}
	})
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	for _, timer := range fw.timers {
		timer.Stop()
	}
	fw.timers = make(map[string]*time.Timer)
	fw.mu.Unlock()

	return fw.watcher.Close()
}
