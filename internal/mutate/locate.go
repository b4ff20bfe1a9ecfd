package mutate

import "studybuddy/internal/model"

// Located is the result of Locate: the owning subject plus whichever entity
// the id resolved to. Assignment is also set for checklist items and
// attachments.
type Located struct {
	Kind          string               `json:"kind"`
	Subject       model.Subject        `json:"-"`
	SubjectID     string               `json:"subjectId"`
	Folder        *model.Folder        `json:"folder,omitempty"`
	Note          *model.Note          `json:"note,omitempty"`
	Assignment    *model.Assignment    `json:"assignment,omitempty"`
	ChecklistItem *model.ChecklistItem `json:"checklistItem,omitempty"`
	File          *model.FileRef       `json:"file,omitempty"`
}

const (
	KindSubject       = "subject"
	KindFolder        = "folder"
	KindNote          = "note"
	KindAssignment    = "assignment"
	KindChecklistItem = "checklist item"
	KindAttachment    = "attachment"
	KindFile          = "file"
)

// Locate finds any entity in the tree by id.
func Locate(root model.Root, id string) (Located, error) {
	for _, s := range root.Subjects {
		loc := Located{Subject: s, SubjectID: s.ID}
		if s.ID == id {
			loc.Kind = KindSubject
			return loc, nil
		}
		for _, f := range s.Folders {
			if f.ID == id {
				loc.Kind, loc.Folder = KindFolder, &f
				return loc, nil
			}
		}
		for _, n := range s.Notes {
			if n.ID == id {
				loc.Kind, loc.Note = KindNote, &n
				return loc, nil
			}
		}
		for _, a := range s.Assignments {
			if a.ID == id {
				loc.Kind, loc.Assignment = KindAssignment, &a
				return loc, nil
			}
			for _, c := range a.Checklist {
				if c.ID == id {
					loc.Kind, loc.Assignment, loc.ChecklistItem = KindChecklistItem, &a, &c
					return loc, nil
				}
			}
			for _, f := range a.Attachments {
				if f.ID == id {
					loc.Kind, loc.Assignment, loc.File = KindAttachment, &a, &f
					return loc, nil
				}
			}
		}
		for _, f := range s.Files {
			if f.ID == id {
				loc.Kind, loc.File = KindFile, &f
				return loc, nil
			}
		}
	}
	return Located{}, NotFoundError{Kind: "entity", ID: id}
}
