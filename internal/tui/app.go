package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"jarlens/internal/config"
	"jarlens/internal/logging"
	"jarlens/internal/viewer"
	"jarlens/internal/watch"
)

// App ties the bubbletea program to the archive watcher.
type App struct {
	program *tea.Program
	watcher *watch.Watcher
	log     *logging.Logger
}

// NewApp builds the interactive viewer for the given archive. When
// watching is enabled in cfg, external changes to the archive trigger
// an automatic reload.
func NewApp(v *viewer.Viewer, cfg *config.Config, archive string, log *logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Discard()
	}

	app := &App{log: log}
	app.program = tea.NewProgram(
		NewModel(v, cfg, archive),
		tea.WithAltScreen(),
	)

	if cfg.Watch.Enabled {
		w, err := watch.New(archive, cfg.Watch.Debounce())
		if err != nil {
			// Watching is best effort; the viewer works without it.
			log.Warn("archive watch unavailable", "error", err)
		} else {
			app.watcher = w
			go app.forwardChanges()
		}
	}

	return app, nil
}

// Run blocks until the user quits.
func (a *App) Run() error {
	defer func() {
		if a.watcher != nil {
			a.watcher.Close()
		}
	}()
	_, err := a.program.Run()
	return err
}

// forwardChanges turns watcher signals into program messages.
func (a *App) forwardChanges() {
	for range a.watcher.Changes() {
		a.log.Debug("archive changed on disk")
		a.program.Send(archiveChangedMsg{})
	}
}
