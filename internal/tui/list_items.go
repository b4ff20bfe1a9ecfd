package tui

import (
	"fmt"
	"strings"
	"time"

	"studybuddy/internal/model"
	"studybuddy/internal/views"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

type subjectItem struct {
	subject model.Subject
	active  bool
}

func (i subjectItem) FilterValue() string { return i.subject.Name }
func (i subjectItem) label() string {
	dot := lipgloss.NewStyle().Foreground(subjectColor(i.subject.ColorKey)).Render("●")
	name := i.subject.Name
	if strings.TrimSpace(name) == "" {
		name = "(unnamed)"
	}
	if i.active {
		return dot + " " + name + " ‹"
	}
	return dot + " " + name
}
func (i subjectItem) detail() string {
	return fmt.Sprintf("%d·%d", len(i.subject.Notes), len(i.subject.Assignments))
}

type entryKind string

const (
	entryNote       entryKind = "note"
	entryAssignment entryKind = "assignment"
)

// entryItem is a note or assignment row of the right-hand pane.
type entryItem struct {
	kind      entryKind
	id        string
	subjectID string
	title     string
	meta      string
}

func (i entryItem) FilterValue() string { return i.title }
func (i entryItem) label() string {
	glyph := "✎"
	if i.kind == entryAssignment {
		glyph = "☐"
	}
	t := i.title
	if strings.TrimSpace(t) == "" {
		t = "Untitled"
	}
	return glyph + " " + t
}
func (i entryItem) detail() string { return i.meta }

func subjectItems(root model.Root) []list.Item {
	active, _ := root.ActiveSubject()
	items := make([]list.Item, 0, len(root.Subjects))
	for _, s := range root.Subjects {
		items = append(items, subjectItem{subject: s, active: s.ID == active.ID})
	}
	return items
}

func entryItems(s model.Subject, now time.Time) []list.Item {
	items := make([]list.Item, 0, len(s.Notes)+len(s.Assignments))
	for _, n := range s.Notes {
		items = append(items, entryItem{
			kind:      entryNote,
			id:        n.ID,
			subjectID: s.ID,
			title:     n.Title,
			meta:      strings.Join(n.Tags, ", "),
		})
	}
	for _, a := range s.Assignments {
		items = append(items, entryItem{
			kind:      entryAssignment,
			id:        a.ID,
			subjectID: s.ID,
			title:     a.Title,
			meta:      string(a.Status) + " · " + views.DueLabel(a.DueDate, now),
		})
	}
	return items
}

func searchItems(hits []views.Hit) []list.Item {
	items := make([]list.Item, 0, len(hits))
	for _, h := range hits {
		items = append(items, entryItem{
			kind:      entryKind(h.Type),
			id:        h.ID,
			subjectID: h.SubjectID,
			title:     h.Title,
			meta:      h.Subject,
		})
	}
	return items
}
