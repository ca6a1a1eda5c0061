// Package app wires the Splitmark components together and manages the
// application lifecycle: config, logging, the document session, the file
// watcher and the terminal frontend.
package app

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/splitmark/splitmark/internal/config"
	"github.com/splitmark/splitmark/internal/session"
	"github.com/splitmark/splitmark/internal/ui"
	"github.com/splitmark/splitmark/internal/watcher"
)

// Options configures the application.
type Options struct {
	// FilePath is the markdown document to open. Empty starts an
	// unsaved scratch document.
	FilePath string

	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// LogLevel overrides the configured logging level when non-empty.
	LogLevel string

	// Debug forces debug-level logging.
	Debug bool
}

// Application is the central coordinator for all Splitmark components.
type Application struct {
	opts   Options
	cfg    config.Config
	logger *Logger

	sess  *session.Session
	watch *watcher.FileWatcher
	front *ui.UI

	shutdownOnce sync.Once
}

// New creates an application with the given options. The terminal is not
// touched until Run.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	cfg, cfgErr := config.Load(app.opts.ConfigPath)
	if cfgErr != nil {
		// Bad config files fall back to defaults; the user still gets
		// an editor.
		cfg = config.Default()
	}
	app.cfg = cfg

	level := ParseLogLevel(cfg.Logging.Level)
	if app.opts.LogLevel != "" {
		level = ParseLogLevel(app.opts.LogLevel)
	}
	if app.opts.Debug {
		level = LogLevelDebug
	}
	app.logger = NewLogger(level, os.Stderr)
	if cfgErr != nil {
		app.logger.WithComponent("config").Warn("config ignored: %v", cfgErr)
	}

	initial, err := app.readDocument()
	if err != nil {
		return &InitError{Component: "document", Err: err}
	}

	app.sess = session.New(initial,
		session.WithDebounce(cfg.Debounce()),
		session.WithMaxHistory(cfg.Editor.MaxHistory),
	)
	app.logger.WithComponent("session").
		WithField("session_id", app.sess.ID()).
		Debug("session created, debounce=%s max_history=%d",
			cfg.Debounce(), cfg.Editor.MaxHistory)

	if app.opts.FilePath != "" {
		if err := app.startWatcher(); err != nil {
			// External-change tracking is best effort.
			app.logger.WithComponent("watcher").Warn("file watching disabled: %v", err)
		}
	}

	return nil
}

// readDocument loads the initial document content. A missing file is an
// empty document, not an error.
func (app *Application) readDocument() (string, error) {
	if app.opts.FilePath == "" {
		return "", nil
	}

	data, err := os.ReadFile(app.opts.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

// startWatcher feeds external edits of the document into the session.
func (app *Application) startWatcher() error {
	log := app.logger.WithComponent("watcher")

	w, err := watcher.New(app.opts.FilePath,
		func(content string) {
			log.Debug("external change, %d bytes", len(content))
			app.sess.OnContentChange(content)
		},
		watcher.WithErrorHandler(func(err error) {
			log.Warn("watch error: %v", err)
		}),
	)
	if err != nil {
		return err
	}

	app.watch = w
	return nil
}

// Session exposes the document session, mainly for tests.
func (app *Application) Session() *session.Session {
	return app.sess
}

// Config returns the effective configuration.
func (app *Application) Config() config.Config {
	return app.cfg
}

// SaveDocument flushes the pending history commit and writes the current
// snapshot to the document file.
func (app *Application) SaveDocument() error {
	if app.opts.FilePath == "" {
		return ErrNoDocument
	}

	app.sess.Flush()
	if app.watch != nil {
		app.watch.SuppressNext(0)
	}

	content := app.sess.CurrentSnapshot()
	if err := os.WriteFile(app.opts.FilePath, []byte(content), 0o644); err != nil {
		app.logger.WithComponent("document").Error("save failed: %v", err)
		return err
	}

	app.logger.WithComponent("document").Info("saved %s (%d bytes)",
		app.opts.FilePath, len(content))
	return nil
}

// Run creates the terminal frontend and blocks until the user quits.
func (app *Application) Run() error {
	fileName := ""
	if app.opts.FilePath != "" {
		fileName = filepath.Base(app.opts.FilePath)
	}

	front, err := ui.New(app.sess, ui.Options{
		FileName: fileName,
		Theme:    app.cfg.UI.Theme,
		TabWidth: app.cfg.Editor.TabWidth,
		Save:     app.SaveDocument,
	})
	if err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	app.front = front

	app.logger.Info("splitmark started")
	err = front.Run()
	app.logger.Info("splitmark exiting")
	return err
}

// Shutdown releases all resources. Safe to call more than once and from
// any goroutine.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		if app.front != nil {
			app.front.Stop()
		}
		if app.watch != nil {
			if err := app.watch.Close(); err != nil {
				app.logger.WithComponent("watcher").Warn("close: %v", err)
			}
		}
		app.sess.Close()
	})
}
