// Package watcher feeds external changes to the open document file back
// into the editing session.
//
// The watcher observes the document's directory (editors commonly replace
// files on save, which appears as create/rename rather than write) and
// reads the file back whenever it changes on disk. A suppression window
// keeps the editor's own saves from looping back as external edits.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSuppression is how long the editor's own save is ignored.
const DefaultSuppression = 200 * time.Millisecond

// FileWatcher watches a single document file for external changes.
type FileWatcher struct {
	mu sync.Mutex

	fsw  *fsnotify.Watcher
	path string // absolute path of the document

	onChange func(content string)
	onError  func(err error)

	suppressUntil time.Time

	closeCh chan struct{}
	wg      sync.WaitGroup
	closed  bool
}

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithErrorHandler sets a callback for watch and read errors.
// Without one, errors are dropped.
func WithErrorHandler(fn func(err error)) Option {
	return func(w *FileWatcher) {
		w.onError = fn
	}
}

// New creates a watcher for the given file. onChange receives the full
// file content after each external modification. The file itself may not
// exist yet; its directory must.
func New(path string, onChange func(content string), opts ...Option) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &FileWatcher{
		fsw:      fsw,
		path:     absPath,
		onChange: onChange,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// SuppressNext ignores events for the file for the given window.
// Called immediately before the editor writes its own save.
func (w *FileWatcher) SuppressNext(window time.Duration) {
	if window <= 0 {
		window = DefaultSuppression
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.suppressUntil = time.Now().Add(window)
}

// Close stops watching. Safe to call more than once.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.closeCh)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

// processLoop handles fsnotify events until Close.
func (w *FileWatcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.reportError(err)

		case <-w.closeCh:
			return
		}
	}
}

// handleEvent reads the document back when it changed on disk.
func (w *FileWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	w.mu.Lock()
	suppressed := time.Now().Before(w.suppressUntil)
	w.mu.Unlock()
	if suppressed {
		return
	}

	data, err := os.ReadFile(w.path)
	if err != nil {
		// The file may be mid-replace; the follow-up event will retry.
		w.reportError(err)
		return
	}

	w.onChange(string(data))
}

func (w *FileWatcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
