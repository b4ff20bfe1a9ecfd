package tui

import (
	"fmt"
	"strings"

	"studybuddy/internal/markdown"
	"studybuddy/internal/model"
	"studybuddy/internal/mutate"
	"studybuddy/internal/views"
)

func (m appModel) viewDetail() string {
	loc, err := mutate.Locate(m.root(), m.openID)
	if err != nil {
		return styleMuted.Render("This item no longer exists.")
	}
	switch {
	case loc.Kind == mutate.KindNote && loc.Note != nil:
		return m.viewNote(loc.Subject, *loc.Note)
	case loc.Kind == mutate.KindAssignment && loc.Assignment != nil:
		return m.viewAssignment(loc.Subject, *loc.Assignment)
	default:
		return styleMuted.Render("Nothing to show.")
	}
}

func (m appModel) viewNote(s model.Subject, n model.Note) string {
	title := n.Title
	if strings.TrimSpace(title) == "" {
		title = "Untitled"
	}
	folder := ""
	if f, ok := s.FindFolder(n.FolderID); ok {
		folder = f.Name
	}

	lines := []string{
		styleHeading.Render(title),
		styleMuted.Render(fmt.Sprintf("%s / %s · %d words · updated %s",
			s.Name, folder, views.WordCount(n.Content), views.FormatTimestamp(n.UpdatedAt))),
	}
	if len(n.Tags) > 0 {
		lines = append(lines, styleMuted.Render("#"+strings.Join(n.Tags, " #")))
	}
	lines = append(lines, "", markdown.RenderTerminal(markdown.NoteText(n.Content), string(m.theme), m.detailWidth))
	return strings.Join(lines, "\n")
}

func (m appModel) viewAssignment(s model.Subject, a model.Assignment) string {
	now := m.now()
	days := views.DaysUntil(a.DueDate, now)
	due := "No due date"
	if a.DueDate != "" {
		due = views.FormatDate(a.DueDate) + " (" + views.DueLabel(a.DueDate, now) + ")"
	}

	lines := []string{
		styleHeading.Render(a.Title),
		styleMuted.Render(s.Name),
		"",
		fmt.Sprintf("Status:   %s", a.Status),
		fmt.Sprintf("Priority: %s", a.Priority),
		fmt.Sprintf("Due:      %s", dueStyle(views.DueStateOf(days)).Render(due)),
	}
	if len(a.Checklist) > 0 {
		pct := views.AssignmentProgress(a)
		lines = append(lines, fmt.Sprintf("Progress: %s %d%%", progressBar(pct, 20), pct), "")
		for _, c := range a.Checklist {
			box := "[ ]"
			if c.Done {
				box = "[x]"
			}
			lines = append(lines, box+" "+c.Text)
		}
	}
	if strings.TrimSpace(a.Description) != "" {
		lines = append(lines, "", markdown.RenderTerminal(a.Description, string(m.theme), m.detailWidth))
	}
	if len(a.Attachments) > 0 {
		lines = append(lines, "", styleHeading.Render("Attachments"))
		for _, f := range a.Attachments {
			lines = append(lines, "  "+f.Name+"  "+styleMuted.Render(f.URL))
		}
	}
	return strings.Join(lines, "\n")
}

func progressBar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
