package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"stylekit/internal/driver"
	"stylekit/internal/ui"
)

type pathsOutcome struct {
	results []driver.Result
	err     error
}

// runPathsWithUI drives ProcessPaths while a progress view renders its
// events on stdout.
func runPathsWithUI(ctx context.Context, title string, files []string, opts driver.PathOptions) ([]driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan pathsOutcome, 1)

	go func() {
		opts.Sink = driver.ChanSink(events)
		res, err := driver.ProcessPaths(ctx, files, opts)
		outcomeCh <- pathsOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
