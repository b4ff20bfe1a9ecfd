package tui

import (
	"context"
	"strings"

	"studybuddy/internal/assistant"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const askThinking = "Still thinking…"

// assistantReplyMsg carries a finished request. current is false when a
// newer prompt was sent meanwhile; such replies are dropped.
type assistantReplyMsg struct {
	token   uint64
	prompt  string
	reply   string
	current bool
}

// assistantSlowMsg is sent by the client's OnSlow hook.
type assistantSlowMsg struct{}

func askCmd(ctx context.Context, c *assistant.Client, token uint64, prompt string) tea.Cmd {
	return func() tea.Msg {
		reply, current := c.AskLatest(ctx, token, prompt)
		return assistantReplyMsg{token: token, prompt: prompt, reply: reply, current: current}
	}
}

func (m appModel) openAssistant() (tea.Model, tea.Cmd) {
	if m.assistant == nil {
		m.showMinibuffer("Assistant not configured")
		return m, minibufferTick()
	}
	m.view = viewAssistant
	return m, m.askInput.Focus()
}

func (m appModel) updateAssistant(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.askInput.Blur()
		m.view = viewDashboard
		return m, nil
	case "enter":
		prompt := strings.TrimSpace(m.askInput.Value())
		if prompt == "" {
			return m, nil
		}
		token := m.assistant.Begin()
		m.askPending = token
		m.askPrompt = prompt
		m.askReply = ""
		m.askInput.SetValue("")
		return m, askCmd(m.ctx, m.assistant, token, prompt)
	}

	var cmd tea.Cmd
	m.askInput, cmd = m.askInput.Update(msg)
	return m, cmd
}

func (m appModel) receiveReply(msg assistantReplyMsg) (tea.Model, tea.Cmd) {
	if !msg.current || msg.token != m.askPending {
		m.log.WithField("token", msg.token).Debug("tui: dropping stale assistant reply")
		return m, nil
	}
	m.askPending = 0
	m.askPrompt = msg.prompt
	m.askReply = msg.reply
	return m, nil
}

func (m appModel) receiveSlow() (tea.Model, tea.Cmd) {
	if m.askPending == 0 {
		return m, nil
	}
	m.showMinibuffer(askThinking)
	return m, minibufferTick()
}

func (m appModel) viewAssistant() string {
	w := m.detailWidth
	if w < 20 {
		w = 20
	}
	lines := []string{styleHeading.Render("Ask Study Buddy AI"), "", m.askInput.View(), ""}
	if m.askPrompt != "" {
		lines = append(lines, styleMuted.Render("› "+m.askPrompt))
	}
	switch {
	case m.askPending != 0:
		lines = append(lines, styleMuted.Render("Thinking…"))
	case m.askReply != "":
		lines = append(lines, lipgloss.NewStyle().Width(w).Render(m.askReply))
	}
	return strings.Join(lines, "\n")
}
