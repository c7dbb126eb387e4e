package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"navtrail/internal/backend"
	"navtrail/internal/editor"
	"navtrail/internal/render"
	"navtrail/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Server         string
	Width          int
	Height         int
	ShowFooter     bool
	MaxDepth       int
	DebounceMs     int
	FastDebounceMs int
	PathMode       string
	ShowArity      bool
	ShowModulePath bool
	PollMs         int
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	server, err := editor.ResolveServer(cfg.Server)
	if err != nil {
		return fmt.Errorf("resolve editor server: %w", err)
	}
	client := editor.NewClient(server)
	watcher := backend.NewWatcher(client, time.Duration(cfg.PollMs)*time.Millisecond)
	defer watcher.Stop()

	model := ui.NewModel(ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Debounce:   time.Duration(cfg.DebounceMs) * time.Millisecond,
		Fast:       time.Duration(cfg.FastDebounceMs) * time.Millisecond,
		Render: render.Config{
			MaxDepth:       cfg.MaxDepth,
			PathMode:       render.PathMode(cfg.PathMode),
			ShowArity:      cfg.ShowArity,
			ShowModulePath: cfg.ShowModulePath,
		},
	}, client, watcher)

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
