package store

import (
	"testing"

	"studybuddy/internal/model"
)

func TestDoctor_SeedIsClean(t *testing.T) {
	root := Seed(&SequenceGenerator{Prefix: "d"}, fixedNow())
	rep := Doctor(root)
	if len(rep.Issues) != 0 {
		t.Fatalf("expected no issues, got %#v", rep.Issues)
	}
	if rep.HasErrors() {
		t.Fatalf("expected no errors")
	}
}

func TestDoctor_ReportsProblems(t *testing.T) {
	stale := "gone"
	root := model.Root{
		ActiveSubjectID: &stale,
		Subjects: []model.Subject{
			{
				ID:       "s1",
				Name:     "Bio",
				ColorKey: "teal",
				Notes:    []model.Note{{ID: "n1", FolderID: "missing"}},
				Assignments: []model.Assignment{
					{ID: "a1", Title: "Lab", Priority: "Urgent", Status: model.StatusDone, DueDate: "03/14/2025"},
				},
				Files: []model.FileRef{{ID: "n1", Name: "dup.pdf"}},
			},
		},
	}

	rep := Doctor(root)
	if !rep.HasErrors() {
		t.Fatalf("expected errors, got %#v", rep.Issues)
	}

	codes := map[string]bool{}
	for _, it := range rep.Issues {
		codes[it.Code] = true
	}
	for _, want := range []string{
		"active_subject_missing",
		"subject_color_invalid",
		"note_folder_missing",
		"assignment_priority_invalid",
		"assignment_due_invalid",
		"id_duplicate",
	} {
		if !codes[want] {
			t.Fatalf("missing issue %q in %#v", want, rep.Issues)
		}
	}
	if codes["assignment_status_invalid"] {
		t.Fatalf("status Done should be valid")
	}
}
