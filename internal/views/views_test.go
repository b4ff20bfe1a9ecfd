package views

import (
	"reflect"
	"testing"
	"time"

	"studybuddy/internal/model"
	"studybuddy/internal/store"
)

func seed(t *testing.T) model.Root {
	t.Helper()
	return store.Seed(&store.SequenceGenerator{Prefix: "v"}, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
}

func TestAssignmentProgress(t *testing.T) {
	item := func(done bool) model.ChecklistItem { return model.ChecklistItem{Done: done} }
	cases := []struct {
		name string
		a    model.Assignment
		want int
	}{
		{"two of three", model.Assignment{Checklist: []model.ChecklistItem{item(true), item(true), item(false)}}, 67},
		{"one of three", model.Assignment{Checklist: []model.ChecklistItem{item(true), item(false), item(false)}}, 33},
		{"half rounds up", model.Assignment{Checklist: []model.ChecklistItem{item(true), item(false), item(false), item(false), item(false), item(false), item(false), item(false)}}, 13},
		{"empty done", model.Assignment{Status: model.StatusDone}, 100},
		{"empty not started", model.Assignment{Status: model.StatusNotStarted}, 0},
		{"checklist wins over status", model.Assignment{Status: model.StatusDone, Checklist: []model.ChecklistItem{item(false)}}, 0},
	}
	for _, tc := range cases {
		if got := AssignmentProgress(tc.a); got != tc.want {
			t.Fatalf("%s: got %d want %d", tc.name, got, tc.want)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	loc := time.FixedZone("test", 2*3600)
	midnight := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	noon := midnight.Add(12 * time.Hour)

	check := func(due string, now time.Time, want int) {
		t.Helper()
		got := DaysUntil(due, now)
		if got == nil || *got != want {
			t.Fatalf("DaysUntil(%q, %v) = %v, want %d", due, now, got, want)
		}
	}
	check("2025-03-13", midnight, 3)
	check("2025-03-13", noon, 3)
	check("2025-03-08", midnight, -2)
	check("2025-03-08", noon, -2)
	check("2025-03-10", noon, 0)

	for _, bad := range []string{"", "  ", "soon", "2025-13-40"} {
		if got := DaysUntil(bad, noon); got != nil {
			t.Fatalf("expected nil for %q, got %d", bad, *got)
		}
	}
}

func TestDueStateAndLabel(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	cases := []struct {
		due   string
		state DueState
		label string
	}{
		{"", DueNone, "No due date"},
		{"2025-03-07", DueOverdue, "Overdue 3d"},
		{"2025-03-12", DueSoon, "2d left"},
		{"2025-03-20", DueOK, "10d left"},
	}
	for _, tc := range cases {
		if got := DueStateOf(DaysUntil(tc.due, now)); got != tc.state {
			t.Fatalf("%q: state %q want %q", tc.due, got, tc.state)
		}
		if got := DueLabel(tc.due, now); got != tc.label {
			t.Fatalf("%q: label %q want %q", tc.due, got, tc.label)
		}
	}
}

func TestSearchHits(t *testing.T) {
	root := seed(t)
	if got := SearchHits(root, ""); len(got) != 0 {
		t.Fatalf("expected no hits for empty query, got %v", got)
	}
	if got := SearchHits(root, "   "); len(got) != 0 {
		t.Fatalf("expected no hits for blank query, got %v", got)
	}

	hits := SearchHits(root, "LIMITS")
	if len(hits) != 1 || hits[0].Type != HitNote || hits[0].Title != "Limits & Continuity" || hits[0].Subject != "Mathematics" {
		t.Fatalf("unexpected hits: %#v", hits)
	}

	hits = SearchHits(root, "in progress")
	if len(hits) != 1 || hits[0].Type != HitAssignment {
		t.Fatalf("expected status to be searchable, got %#v", hits)
	}

	// Notes come before assignments within a subject.
	hits = SearchHits(root, "e")
	if len(hits) < 3 || hits[0].Type != HitNote || hits[len(hits)-1].Type != HitAssignment {
		t.Fatalf("unexpected ordering: %#v", hits)
	}
}

func TestSearchHits_CaseInsensitiveContent(t *testing.T) {
	root := model.Root{Subjects: []model.Subject{{
		ID: "s", Name: "Math",
		Notes: []model.Note{{ID: "n", Title: "Week 1", Content: "<p>intro to calc</p>", Tags: []string{"calc"}}},
	}}}
	hits := SearchHits(root, "CALC")
	want := []Hit{{Type: HitNote, SubjectID: "s", Subject: "Math", ID: "n", Title: "Week 1"}}
	if !reflect.DeepEqual(hits, want) {
		t.Fatalf("got %#v want %#v", hits, want)
	}
}

func TestSearchHits_Limit(t *testing.T) {
	var notes []model.Note
	for i := 0; i < 30; i++ {
		notes = append(notes, model.Note{ID: string(rune('a' + i)), Title: "match"})
	}
	root := model.Root{Subjects: []model.Subject{{ID: "s", Notes: notes}, {ID: "t", Notes: notes}}}
	if got := SearchHits(root, "match"); len(got) != 20 {
		t.Fatalf("expected 20 hits, got %d", len(got))
	}
}

func TestGlobalStats(t *testing.T) {
	mk := func(id, due string, st model.Status) model.Assignment {
		return model.Assignment{ID: id, DueDate: due, Status: st}
	}
	root := model.Root{Subjects: []model.Subject{
		{Notes: []model.Note{{ID: "n1"}, {ID: "n2"}}, Assignments: []model.Assignment{
			mk("a", "2025-04-01", model.StatusNotStarted),
			mk("b", "2025-03-01", model.StatusInProgress),
			mk("c", "", model.StatusNotStarted),
			mk("d", "2025-01-01", model.StatusDone),
		}},
		{Notes: []model.Note{{ID: "n3"}}, Assignments: []model.Assignment{
			mk("e", "2025-03-15", model.StatusNotStarted),
			mk("f", "2025-03-15", model.StatusNotStarted),
			mk("g", "2025-02-01", model.StatusNotStarted),
			mk("h", "2025-05-01", model.StatusNotStarted),
		}},
	}}
	st := GlobalStats(root)
	if st.AssignmentCount != 8 || st.DoneCount != 1 || st.NoteCount != 3 {
		t.Fatalf("unexpected counts: %+v", st)
	}
	var ids []string
	for _, a := range st.Upcoming {
		ids = append(ids, a.ID)
	}
	if want := []string{"g", "b", "e", "f", "a"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("upcoming = %v want %v", ids, want)
	}

	if empty := GlobalStats(model.Root{}); empty.Upcoming == nil || len(empty.Upcoming) != 0 {
		t.Fatalf("expected empty non-nil upcoming, got %#v", empty.Upcoming)
	}
}

func TestFilterAssignmentsAndNotes(t *testing.T) {
	list := []model.Assignment{
		{ID: "1", Status: model.StatusDone, Priority: model.PriorityHigh},
		{ID: "2", Status: model.StatusNotStarted, Priority: model.PriorityHigh},
		{ID: "3", Status: model.StatusNotStarted, Priority: model.PriorityLow},
	}
	if got := FilterAssignments(list, "All", "All"); len(got) != 3 {
		t.Fatalf("expected all, got %d", len(got))
	}
	got := FilterAssignments(list, "Not Started", "High")
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("unexpected filter result %#v", got)
	}

	s := model.Subject{Notes: []model.Note{{ID: "a", FolderID: "f1"}, {ID: "b", FolderID: "f2"}}}
	if got := NotesInFolder(s, "all"); len(got) != 2 {
		t.Fatalf("expected both notes, got %d", len(got))
	}
	if got := NotesInFolder(s, "f2"); len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("unexpected folder notes %#v", got)
	}
}

func TestWordCountAndFormatDate(t *testing.T) {
	if got := WordCount("  one two\n\tthree  "); got != 3 {
		t.Fatalf("word count = %d", got)
	}
	if got := WordCount("   "); got != 0 {
		t.Fatalf("word count of blank = %d", got)
	}
	if got := FormatDate("2025-03-13"); got != "Mar 13, 2025" {
		t.Fatalf("FormatDate = %q", got)
	}
	if got := FormatDate("nope"); got != "" {
		t.Fatalf("FormatDate of garbage = %q", got)
	}
}
