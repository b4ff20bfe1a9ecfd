package publish

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"studybuddy/internal/markdown"
	"studybuddy/internal/model"
	"studybuddy/internal/views"
)

type RenderOptions struct {
	// Now anchors relative due labels; zero means time.Now.
	Now time.Time
}

func (o RenderOptions) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

type mdBuf struct{ bytes.Buffer }

func (b *mdBuf) line(s string) {
	b.WriteString(s)
	b.WriteString("\n")
}

// RenderSubjectIndexMarkdown lists a subject's folders, notes and
// assignments with relative links to the per-entity pages WriteSubject emits.
func RenderSubjectIndexMarkdown(s model.Subject, opt RenderOptions) string {
	now := opt.now()
	var buf mdBuf

	buf.line("# " + strings.TrimSpace(s.Name))
	buf.line("")

	buf.line("## Notes")
	buf.line("")
	if len(s.Notes) == 0 {
		buf.line("_No notes._")
	}
	for _, f := range s.Folders {
		notes := views.NotesInFolder(s, f.ID)
		if len(notes) == 0 {
			continue
		}
		buf.line("### " + f.Name)
		buf.line("")
		for _, n := range notes {
			buf.line(fmt.Sprintf("- [%s](notes/%s.md)", linkText(n.Title), n.ID))
		}
		buf.line("")
	}
	var loose []model.Note
	for _, n := range s.Notes {
		if _, ok := s.FindFolder(n.FolderID); !ok {
			loose = append(loose, n)
		}
	}
	if len(loose) > 0 {
		buf.line("### Unfiled")
		buf.line("")
		for _, n := range loose {
			buf.line(fmt.Sprintf("- [%s](notes/%s.md)", linkText(n.Title), n.ID))
		}
		buf.line("")
	}

	buf.line("## Assignments")
	buf.line("")
	if len(s.Assignments) == 0 {
		buf.line("_No assignments._")
	} else {
		buf.line("| Title | Status | Priority | Due | Progress |")
		buf.line("| --- | --- | --- | --- | --- |")
		for _, a := range s.Assignments {
			due := "-"
			if a.DueDate != "" {
				due = views.FormatDate(a.DueDate) + " (" + views.DueLabel(a.DueDate, now) + ")"
			}
			buf.line(fmt.Sprintf("| [%s](assignments/%s.md) | %s | %s | %s | %d%% |",
				tableCell(a.Title), a.ID, a.Status, a.Priority, due, views.AssignmentProgress(a)))
		}
	}

	if len(s.Files) > 0 {
		buf.line("")
		buf.line("## Files")
		buf.line("")
		for _, f := range s.Files {
			buf.line(fmt.Sprintf("- %s (%s, %d bytes)", f.Name, f.Type, f.Size))
		}
	}

	return buf.String()
}

func RenderNoteMarkdown(s model.Subject, noteID string) (string, error) {
	n, ok := s.FindNote(strings.TrimSpace(noteID))
	if !ok {
		return "", fmt.Errorf("note not found: %s", noteID)
	}

	var buf mdBuf
	buf.line("# " + strings.TrimSpace(n.Title))
	buf.line("")
	buf.line("- ID: " + n.ID)
	buf.line("- Subject: " + s.Name)
	if f, ok := s.FindFolder(n.FolderID); ok {
		buf.line("- Folder: " + f.Name)
	}
	if len(n.Tags) > 0 {
		buf.line("- Tags: " + strings.Join(n.Tags, ", "))
	}
	if n.UpdatedAt > 0 {
		buf.line("- Updated: " + views.FormatTimestamp(n.UpdatedAt))
	}
	buf.line("")

	body := strings.TrimSpace(markdown.NoteText(n.Content))
	if body != "" {
		buf.line(body)
	}
	return buf.String(), nil
}

func RenderAssignmentMarkdown(s model.Subject, assignmentID string, opt RenderOptions) (string, error) {
	a, ok := s.FindAssignment(strings.TrimSpace(assignmentID))
	if !ok {
		return "", fmt.Errorf("assignment not found: %s", assignmentID)
	}
	now := opt.now()

	var buf mdBuf
	buf.line("# " + strings.TrimSpace(a.Title))
	buf.line("")
	buf.line("- ID: " + a.ID)
	buf.line("- Subject: " + s.Name)
	buf.line("- Status: " + string(a.Status))
	buf.line("- Priority: " + string(a.Priority))
	if a.DueDate != "" {
		buf.line("- Due: " + views.FormatDate(a.DueDate) + " (" + views.DueLabel(a.DueDate, now) + ")")
	}
	buf.line(fmt.Sprintf("- Progress: %d%%", views.AssignmentProgress(a)))

	if d := strings.TrimSpace(a.Description); d != "" {
		buf.line("")
		buf.line("## Description")
		buf.line("")
		buf.line(d)
	}

	if len(a.Checklist) > 0 {
		buf.line("")
		buf.line("## Checklist")
		buf.line("")
		for _, c := range a.Checklist {
			mark := " "
			if c.Done {
				mark = "x"
			}
			buf.line(fmt.Sprintf("- [%s] %s", mark, c.Text))
		}
	}

	if len(a.Attachments) > 0 {
		buf.line("")
		buf.line("## Attachments")
		buf.line("")
		for _, f := range a.Attachments {
			buf.line(fmt.Sprintf("- %s (%s, %d bytes)", f.Name, f.Type, f.Size))
		}
	}

	return buf.String(), nil
}

func linkText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Untitled"
	}
	return strings.NewReplacer("[", `\[`, "]", `\]`).Replace(s)
}

func tableCell(s string) string {
	return strings.ReplaceAll(linkText(s), "|", `\|`)
}
