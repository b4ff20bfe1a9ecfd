package views

import (
	"sort"
	"strings"

	"studybuddy/internal/model"
)

const (
	upcomingLimit = 5
	searchLimit   = 20
)

type Stats struct {
	AssignmentCount int                `json:"assignmentCount"`
	DoneCount       int                `json:"doneCount"`
	NoteCount       int                `json:"noteCount"`
	Upcoming        []model.Assignment `json:"upcoming"`
}

// GlobalStats aggregates over every subject. Upcoming holds at most five open
// assignments that have a due date, soonest first.
func GlobalStats(root model.Root) Stats {
	st := Stats{Upcoming: []model.Assignment{}}
	var open []model.Assignment
	for _, s := range root.Subjects {
		st.NoteCount += len(s.Notes)
		for _, a := range s.Assignments {
			st.AssignmentCount++
			if a.Status == model.StatusDone {
				st.DoneCount++
				continue
			}
			if a.DueDate != "" {
				open = append(open, a)
			}
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return dueBefore(open[i].DueDate, open[j].DueDate)
	})
	if len(open) > upcomingLimit {
		open = open[:upcomingLimit]
	}
	st.Upcoming = append(st.Upcoming, open...)
	return st
}

// dueBefore orders parseable dates chronologically ahead of unparseable ones.
func dueBefore(a, b string) bool {
	ta, okA := parseDate(a)
	tb, okB := parseDate(b)
	switch {
	case okA && okB:
		return ta.Before(tb)
	case okA:
		return true
	default:
		return false
	}
}

type HitType string

const (
	HitNote       HitType = "note"
	HitAssignment HitType = "assignment"
)

type Hit struct {
	Type      HitType `json:"type"`
	SubjectID string  `json:"subjectId"`
	Subject   string  `json:"subject"`
	ID        string  `json:"id"`
	Title     string  `json:"title"`
}

// SearchHits does a case-insensitive substring search over notes and
// assignments. Hits follow tree order with a subject's notes before its
// assignments. A blank query matches nothing.
func SearchHits(root model.Root, query string) []Hit {
	q := strings.ToLower(strings.TrimSpace(query))
	hits := []Hit{}
	if q == "" {
		return hits
	}
	for _, s := range root.Subjects {
		for _, n := range s.Notes {
			if strings.Contains(strings.ToLower(n.Title+" "+n.Content), q) {
				hits = append(hits, Hit{Type: HitNote, SubjectID: s.ID, Subject: s.Name, ID: n.ID, Title: n.Title})
			}
		}
		for _, a := range s.Assignments {
			bucket := strings.Join([]string{a.Title, a.Description, string(a.Priority), string(a.Status)}, " ")
			if strings.Contains(strings.ToLower(bucket), q) {
				hits = append(hits, Hit{Type: HitAssignment, SubjectID: s.ID, Subject: s.Name, ID: a.ID, Title: a.Title})
			}
		}
		if len(hits) >= searchLimit {
			break
		}
	}
	if len(hits) > searchLimit {
		hits = hits[:searchLimit]
	}
	return hits
}

// AssignmentProgress is the checked share of the checklist in whole percent,
// rounded half up. Without a checklist it is 100 for Done and 0 otherwise.
func AssignmentProgress(a model.Assignment) int {
	total := len(a.Checklist)
	if total == 0 {
		if a.Status == model.StatusDone {
			return 100
		}
		return 0
	}
	done := 0
	for _, c := range a.Checklist {
		if c.Done {
			done++
		}
	}
	return (200*done + total) / (2 * total)
}

// FilterAssignments keeps assignments matching status and priority. "All"
// (or empty) disables a filter.
func FilterAssignments(list []model.Assignment, status, priority string) []model.Assignment {
	out := []model.Assignment{}
	for _, a := range list {
		if !isAll(status) && string(a.Status) != status {
			continue
		}
		if !isAll(priority) && string(a.Priority) != priority {
			continue
		}
		out = append(out, a)
	}
	return out
}

func isAll(s string) bool {
	return s == "" || strings.EqualFold(s, "all")
}

// NotesInFolder returns the subject's notes filed under folderID, or every
// note for "all".
func NotesInFolder(s model.Subject, folderID string) []model.Note {
	out := []model.Note{}
	for _, n := range s.Notes {
		if isAll(folderID) || n.FolderID == folderID {
			out = append(out, n)
		}
	}
	return out
}

func WordCount(content string) int {
	return len(strings.Fields(content))
}
