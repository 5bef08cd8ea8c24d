package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"epiplan/internal/app/epiplan"
)

// Run starts the planner in full screen and blocks until the user quits
func Run(ctx context.Context, app *epiplan.App, w Widgets, toastFor time.Duration) error {
	app.Start()
	program := tea.NewProgram(New(ctx, app, w, toastFor), tea.WithAltScreen(), tea.WithContext(ctx))
	app.Form().OnIdle(func() { program.Send(autosaveIdle{}) })
	defer app.Close()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run planner ui: %w", err)
	}
	return nil
}
