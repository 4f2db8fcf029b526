package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"ftc-event-service/internal/viewer"
)

// Run starts the viewer program and blocks until the user quits.
func Run(fetcher viewer.Fetcher, opts viewer.Options, initialCode string) error {
	var program *tea.Program
	notify := opts.OnChange
	opts.OnChange = func(st viewer.State) {
		if notify != nil {
			notify(st)
		}
		if p := program; p != nil {
			go p.Send(StateChangedMsg{})
		}
	}

	shell := viewer.New(fetcher, opts)
	defer shell.Close()

	program = tea.NewProgram(NewModel(shell, initialCode), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
