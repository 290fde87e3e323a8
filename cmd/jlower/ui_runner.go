package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"jlower/internal/driver"
	"jlower/internal/ui"
)

type lowerOutcome struct {
	result *driver.Result
	err    error
}

// lowerWithUI runs LowerFiles while a progress view renders its events.
func lowerWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan lowerOutcome, 1)

	go func() {
		o := opts
		o.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.LowerFiles(ctx, files, o)
		outcomeCh <- lowerOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
