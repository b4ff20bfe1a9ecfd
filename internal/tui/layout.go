package tui

import (
	"fmt"
	"strings"

	"studybuddy/internal/views"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	minSubjectsWidth = 24
	headerHeight     = 2
	footerHeight     = 2
	dueSoonHeight    = 7
)

// layout sizes the two list panes from the window size.
func (m *appModel) layout() {
	w, h := m.width, m.height
	if w <= 0 || h <= 0 {
		return
	}
	leftW := w / 3
	if leftW < minSubjectsWidth {
		leftW = minSubjectsWidth
	}
	rightW := w - leftW - 4
	if rightW < 10 {
		rightW = 10
	}
	bodyH := h - headerHeight - footerHeight - dueSoonHeight - 2
	if bodyH < 3 {
		bodyH = 3
	}
	m.subjectsList.SetSize(leftW-4, bodyH)
	m.entriesList.SetSize(rightW-4, bodyH)
	m.detailWidth = w - 4
}

func (m appModel) View() string {
	if m.width == 0 {
		return "Loading…"
	}
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	switch m.view {
	case viewDetail:
		b.WriteString(m.viewDetail())
	case viewAssistant:
		b.WriteString(m.viewAssistant())
	default:
		b.WriteString(m.viewDashboard())
	}
	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m appModel) viewHeader() string {
	st := views.GlobalStats(m.root())
	title := styleTitle.Render("StudyBuddy")
	stats := styleMuted.Render(fmt.Sprintf("%d assignments · %d done · %d notes", st.AssignmentCount, st.DoneCount, st.NoteCount))
	line := title + "  " + stats
	if m.guard.Warning(m.now()) {
		line += "  " + styleWarning.Render(toggleWarning)
	} else if m.minibufferText != "" {
		line += "  " + m.minibufferText
	}
	return xansi.Truncate(line, m.width, "…")
}

func (m appModel) viewDashboard() string {
	left := stylePane
	right := stylePane
	if m.pane == paneSubjects {
		left = stylePaneOn
	} else {
		right = stylePaneOn
	}

	subjects, entries := m.subjectsList, m.entriesList
	subjects.SetDelegate(newRowDelegate(m.pane == paneSubjects))
	entries.SetDelegate(newRowDelegate(m.pane == paneEntries))

	rightBody := entries.View()
	if m.searching {
		rightBody = m.search.View() + "\n" + rightBody
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		left.Render(subjects.View()),
		right.Render(rightBody),
	)
	return panes + "\n" + m.viewDueSoon()
}

func (m appModel) viewDueSoon() string {
	st := views.GlobalStats(m.root())
	now := m.now()
	lines := []string{styleHeading.Render("Due soon")}
	if len(st.Upcoming) == 0 {
		lines = append(lines, styleMuted.Render("Nothing due. Enjoy the calm."))
	}
	for _, a := range st.Upcoming {
		label := views.DueLabel(a.DueDate, now)
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			dueStyle(views.DueStateOf(views.DaysUntil(a.DueDate, now))).Render(fmt.Sprintf("%-12s", label)),
			a.Title,
			styleMuted.Render(views.FormatDate(a.DueDate)),
		))
	}
	return strings.Join(lines, "\n")
}

func dueStyle(s views.DueState) lipgloss.Style {
	switch s {
	case views.DueOverdue:
		return lipgloss.NewStyle().Foreground(colorOverdue).Bold(true)
	case views.DueSoon:
		return lipgloss.NewStyle().Foreground(colorSoon)
	case views.DueOK:
		return lipgloss.NewStyle().Foreground(colorOK)
	default:
		return styleMuted
	}
}

func (m appModel) viewFooter() string {
	var help string
	switch {
	case m.searching:
		help = "type to search · ↑/↓ move · enter open · esc cancel"
	case m.view == viewDetail:
		help = "esc back · space next status · t theme · ctrl+c quit"
	case m.view == viewAssistant:
		help = "type a question · enter ask · esc back · ctrl+c quit"
	default:
		help = "tab switch pane · enter open · / search · n new subject · space next status · a ask · u undo · t theme · q quit"
	}
	return styleMuted.Render(xansi.Truncate(help, m.width, "…"))
}
