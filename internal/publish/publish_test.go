package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"studybuddy/internal/model"
	"studybuddy/internal/store"
)

func testNow() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }

func seedRoot() model.Root {
	return store.Seed(&store.SequenceGenerator{Prefix: "p"}, testNow())
}

func TestRenderSubjectIndexMarkdown(t *testing.T) {
	t.Parallel()

	s := seedRoot().Subjects[0]
	md := RenderSubjectIndexMarkdown(s, RenderOptions{Now: testNow()})

	for _, want := range []string{
		"# Mathematics",
		"### Concepts",
		"- [Limits & Continuity](notes/p-4.md)",
		"### Homework",
		"| [Derivative Rules Sheet](assignments/p-6.md) | In Progress | High | Mar 13, 2025 (3d left) | 50% |",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in index:\n%s", want, md)
		}
	}
}

func TestRenderNoteMarkdown_FlattensEditorHTML(t *testing.T) {
	t.Parallel()

	s := model.Subject{
		ID:      "s1",
		Name:    "Biology",
		Folders: []model.Folder{{ID: "f1", Name: "Cells"}},
		Notes: []model.Note{
			{ID: "n1", FolderID: "f1", Title: "Organelles", Content: "<p>The <b>nucleus</b></p><ul><li>DNA</li></ul>", Tags: []string{"bio", "exam"}},
		},
	}
	md, err := RenderNoteMarkdown(s, "n1")
	if err != nil {
		t.Fatalf("RenderNoteMarkdown: %v", err)
	}
	for _, want := range []string{"# Organelles", "- Folder: Cells", "- Tags: bio, exam", "The nucleus\n- DNA"} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in note:\n%s", want, md)
		}
	}
	if strings.Contains(md, "<b>") {
		t.Fatalf("expected HTML to be flattened:\n%s", md)
	}

	if _, err := RenderNoteMarkdown(s, "nope"); err == nil {
		t.Fatalf("expected error for unknown note")
	}
}

func TestRenderAssignmentMarkdown_Checklist(t *testing.T) {
	t.Parallel()

	s := seedRoot().Subjects[0]
	md, err := RenderAssignmentMarkdown(s, s.Assignments[0].ID, RenderOptions{Now: testNow()})
	if err != nil {
		t.Fatalf("RenderAssignmentMarkdown: %v", err)
	}
	for _, want := range []string{"# Derivative Rules Sheet", "- Progress: 50%", "- [x] Product Rule", "- [ ] Quotient Rule"} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in assignment:\n%s", want, md)
		}
	}
}

func TestWriteSubject_WritesPagesAndRespectsOverwrite(t *testing.T) {
	t.Parallel()

	root := seedRoot()
	dir := t.TempDir()
	sid := root.Subjects[0].ID

	res, err := WriteSubject(root, sid, dir, WriteOptions{Render: RenderOptions{Now: testNow()}})
	if err != nil {
		t.Fatalf("WriteSubject: %v", err)
	}
	want := []string{
		filepath.Join(dir, sid, "index.md"),
		filepath.Join(dir, sid, "notes", "p-4.md"),
		filepath.Join(dir, sid, "notes", "p-5.md"),
		filepath.Join(dir, sid, "assignments", "p-6.md"),
	}
	if len(res.Written) != len(want) {
		t.Fatalf("written = %v", res.Written)
	}
	for i, p := range want {
		if res.Written[i] != p {
			t.Fatalf("written[%d] = %q, want %q", i, res.Written[i], p)
		}
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
	}

	if _, err := WriteSubject(root, sid, dir, WriteOptions{}); err == nil || !strings.Contains(err.Error(), "--overwrite") {
		t.Fatalf("expected overwrite error, got %v", err)
	}
	if _, err := WriteSubject(root, sid, dir, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("WriteSubject overwrite: %v", err)
	}
	if _, err := WriteSubject(root, "nope", dir, WriteOptions{}); err == nil {
		t.Fatalf("expected error for unknown subject")
	}
}
