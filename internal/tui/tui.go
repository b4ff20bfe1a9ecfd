package tui

import (
	"context"

	"studybuddy/internal/model"
	"studybuddy/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the dashboard over sess until the user quits.
func Run(ctx context.Context, sess *store.Session, theme model.Theme, opts Options) error {
	m := newAppModel(ctx, sess, theme, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if opts.Assistant != nil {
		opts.Assistant.OnSlow = func() { p.Send(assistantSlowMsg{}) }
	}
	_, err := p.Run()
	return err
}
