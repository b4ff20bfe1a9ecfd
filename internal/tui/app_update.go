package tui

import (
	"time"

	"studybuddy/internal/model"
	"studybuddy/internal/mutate"

	tea "github.com/charmbracelet/bubbletea"
)

type minibufferTickMsg struct{}

func minibufferTick() tea.Cmd {
	return tea.Tick(minibufferAutoClearAfter, func(time.Time) tea.Msg { return minibufferTickMsg{} })
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case assistantReplyMsg:
		return m.receiveReply(msg)

	case assistantSlowMsg:
		return m.receiveSlow()

	case minibufferTickMsg:
		if m.minibufferText != "" && m.now().Sub(m.minibufferSetAt) >= minibufferAutoClearAfter {
			m.minibufferText = ""
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.view == viewDetail {
			return m.updateDetail(msg)
		}
		if m.view == viewAssistant {
			return m.updateAssistant(msg)
		}
		return m.updateDashboard(msg)
	}
	return m, nil
}

func (m appModel) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "shift+tab":
		if m.pane == paneSubjects {
			m.pane = paneEntries
		} else {
			m.pane = paneSubjects
		}
		return m, nil
	case "/":
		m.searching = true
		m.pane = paneEntries
		m.search.SetValue("")
		m.refresh()
		return m, m.search.Focus()
	case "t":
		return m.toggleTheme()
	case "a":
		return m.openAssistant()
	case "u":
		changed, err := m.sess.Undo(m.ctx)
		switch {
		case err != nil:
			m.showMinibuffer("Undo failed: " + err.Error())
		case changed:
			m.showMinibuffer("Undone")
		default:
			m.showMinibuffer("Nothing to undo")
		}
		m.refresh()
		return m, minibufferTick()
	case "n":
		if changed, err := m.apply(func(r model.Root) model.Root {
			next, _ := mutate.AddSubject(m.env, r)
			return next
		}); err == nil && changed {
			m.subjectsList.Select(len(m.root().Subjects) - 1)
			m.showMinibuffer("Added subject")
		}
		return m, minibufferTick()
	case " ":
		if m.pane == paneEntries {
			return m.cycleStatus()
		}
		return m, nil
	case "enter":
		if m.pane == paneSubjects {
			it, ok := m.selectedSubject()
			if !ok {
				return m, nil
			}
			m.apply(func(r model.Root) model.Root { return mutate.SetActiveSubject(r, it.subject.ID) })
			m.pane = paneEntries
			m.entriesList.Select(0)
			return m, nil
		}
		return m.openSelected()
	}

	var cmd tea.Cmd
	if m.pane == paneSubjects {
		m.subjectsList, cmd = m.subjectsList.Update(msg)
	} else {
		m.entriesList, cmd = m.entriesList.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.refresh()
		return m, nil
	case "enter":
		it, ok := m.selectedEntry()
		if !ok {
			return m, nil
		}
		m.searching = false
		m.search.Blur()
		m.apply(func(r model.Root) model.Root { return mutate.SetActiveSubject(r, it.subjectID) })
		m.openKind, m.openID = it.kind, it.id
		m.view = viewDetail
		return m, nil
	case "up", "down", "ctrl+p", "ctrl+n":
		var cmd tea.Cmd
		m.entriesList, cmd = m.entriesList.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()
	return m, cmd
}

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "backspace":
		m.view = viewDashboard
		m.openKind, m.openID = "", ""
		return m, nil
	case "t":
		return m.toggleTheme()
	case " ":
		if m.openKind == entryAssignment {
			return m.cycleStatus()
		}
	}
	return m, nil
}

func (m appModel) openSelected() (tea.Model, tea.Cmd) {
	it, ok := m.selectedEntry()
	if !ok {
		return m, nil
	}
	m.openKind, m.openID = it.kind, it.id
	m.view = viewDetail
	return m, nil
}

// cycleStatus advances the selected (or open) assignment through
// Not Started, In Progress and Done.
func (m appModel) cycleStatus() (tea.Model, tea.Cmd) {
	id := m.openID
	if m.view != viewDetail {
		it, ok := m.selectedEntry()
		if !ok || it.kind != entryAssignment {
			return m, nil
		}
		id = it.id
	}
	loc, err := mutate.Locate(m.root(), id)
	if err != nil || loc.Kind != mutate.KindAssignment {
		return m, nil
	}
	next := nextStatus(loc.Assignment.Status)
	changed, err := m.apply(func(r model.Root) model.Root {
		return mutate.UpdateAssignment(m.env, r, loc.SubjectID, id, mutate.AssignmentPatch{Status: &next})
	})
	if err == nil && changed {
		m.showMinibuffer(loc.Assignment.Title + ": " + string(next))
	}
	return m, minibufferTick()
}

func nextStatus(s model.Status) model.Status {
	switch s {
	case model.StatusNotStarted:
		return model.StatusInProgress
	case model.StatusInProgress:
		return model.StatusDone
	default:
		return model.StatusNotStarted
	}
}

func (m appModel) toggleTheme() (tea.Model, tea.Cmd) {
	now := m.now()
	if !m.guard.Allow(now) {
		// The warning is drawn from the guard; the tick redraws once it expires.
		return m, minibufferTick()
	}
	m.theme = m.theme.Toggle()
	applyTheme(m.theme)
	if err := m.sess.Store.SaveTheme(m.ctx, m.theme); err != nil {
		m.log.WithError(err).Warn("tui: saving theme failed")
	}
	return m, nil
}
