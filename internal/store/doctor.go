package store

import (
	"fmt"
	"time"

	"studybuddy/internal/model"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`

	SubjectID  string `json:"subjectId,omitempty"`
	EntityKind string `json:"entityKind,omitempty"`
	EntityID   string `json:"entityId,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor checks a document tree for problems the mutation layer never
// produces but hand-edited or partially written data can contain.
func Doctor(root model.Root) DoctorReport {
	d := doctor{seen: map[string]string{}}

	if root.ActiveSubjectID != nil {
		if _, ok := root.FindSubject(*root.ActiveSubjectID); !ok {
			d.add(DoctorIssue{
				Level:    DoctorIssueLevelWarn,
				Code:     "active_subject_missing",
				Message:  fmt.Sprintf("activeSubjectId %q does not match any subject", *root.ActiveSubjectID),
				EntityID: *root.ActiveSubjectID,
			})
		}
	}

	for _, s := range root.Subjects {
		d.id(s.ID, "", "subject")
		if s.Name == "" {
			d.add(DoctorIssue{Level: DoctorIssueLevelWarn, Code: "subject_name_empty", Message: "subject has no name", SubjectID: s.ID, EntityKind: "subject", EntityID: s.ID})
		}
		if _, err := model.ParseColorKey(string(s.ColorKey)); err != nil {
			d.add(DoctorIssue{Level: DoctorIssueLevelWarn, Code: "subject_color_invalid", Message: err.Error(), SubjectID: s.ID, EntityKind: "subject", EntityID: s.ID})
		}

		for _, f := range s.Folders {
			d.id(f.ID, s.ID, "folder")
		}
		for _, n := range s.Notes {
			d.id(n.ID, s.ID, "note")
			if n.FolderID != "" {
				if _, ok := s.FindFolder(n.FolderID); !ok {
					d.add(DoctorIssue{
						Level:      DoctorIssueLevelWarn,
						Code:       "note_folder_missing",
						Message:    fmt.Sprintf("note references unknown folder %q", n.FolderID),
						SubjectID:  s.ID,
						EntityKind: "note",
						EntityID:   n.ID,
					})
				}
			}
		}
		for _, a := range s.Assignments {
			d.assignment(s.ID, a)
		}
		for _, f := range s.Files {
			d.id(f.ID, s.ID, "file")
		}
	}

	if d.issues == nil {
		d.issues = []DoctorIssue{}
	}
	return DoctorReport{Issues: d.issues}
}

type doctor struct {
	seen   map[string]string
	issues []DoctorIssue
}

func (d *doctor) add(it DoctorIssue) {
	d.issues = append(d.issues, it)
}

func (d *doctor) id(id, subjectID, kind string) {
	if id == "" {
		d.add(DoctorIssue{Level: DoctorIssueLevelError, Code: "id_empty", Message: kind + " has an empty id", SubjectID: subjectID, EntityKind: kind})
		return
	}
	if prev, ok := d.seen[id]; ok {
		d.add(DoctorIssue{
			Level:      DoctorIssueLevelError,
			Code:       "id_duplicate",
			Message:    fmt.Sprintf("id %q is used by a %s and a %s", id, prev, kind),
			SubjectID:  subjectID,
			EntityKind: kind,
			EntityID:   id,
		})
		return
	}
	d.seen[id] = kind
}

func (d *doctor) assignment(subjectID string, a model.Assignment) {
	d.id(a.ID, subjectID, "assignment")
	issue := func(code, msg string) {
		d.add(DoctorIssue{Level: DoctorIssueLevelError, Code: code, Message: msg, SubjectID: subjectID, EntityKind: "assignment", EntityID: a.ID})
	}
	if !validPriority(a.Priority) {
		issue("assignment_priority_invalid", fmt.Sprintf("invalid priority %q", a.Priority))
	}
	if !validStatus(a.Status) {
		issue("assignment_status_invalid", fmt.Sprintf("invalid status %q", a.Status))
	}
	if a.DueDate != "" {
		if _, err := time.Parse("2006-01-02", a.DueDate); err != nil {
			issue("assignment_due_invalid", fmt.Sprintf("invalid due date %q", a.DueDate))
		}
	}
	for _, c := range a.Checklist {
		d.id(c.ID, subjectID, "checklist item")
	}
	for _, f := range a.Attachments {
		d.id(f.ID, subjectID, "attachment")
	}
}

func validPriority(p model.Priority) bool {
	for _, v := range model.Priorities() {
		if v == p {
			return true
		}
	}
	return false
}

func validStatus(s model.Status) bool {
	for _, v := range model.Statuses() {
		if v == s {
			return true
		}
	}
	return false
}
