package mutate

import (
	"strings"

	"studybuddy/internal/model"
)

const defaultChecklistText = "New item"

type AssignmentDraft struct {
	Title       string
	Description string
	DueDate     string
	Priority    model.Priority
}

type AssignmentPatch struct {
	Title       *string
	Description *string
	DueDate     *string
	Priority    *model.Priority
	Status      *model.Status
}

// AddAssignment prepends a Not Started assignment. Blank titles are rejected
// as a no-op.
func AddAssignment(env Env, root model.Root, subjectID string, d AssignmentDraft) (model.Root, string) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return root, ""
	}
	prio := d.Priority
	if _, err := model.ParsePriority(string(prio)); err != nil {
		prio = model.PriorityMedium
	}
	id := ""
	next := withSubject(root, subjectID, func(s model.Subject) (model.Subject, bool) {
		id = env.newID()
		now := env.nowMs()
		a := model.Assignment{
			ID:          id,
			Title:       title,
			Description: d.Description,
			DueDate:     strings.TrimSpace(d.DueDate),
			Priority:    prio,
			Status:      model.StatusNotStarted,
			Checklist:   []model.ChecklistItem{},
			Attachments: []model.FileRef{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		s.Assignments = prependCopy(s.Assignments, a)
		return s, true
	})
	return next, id
}

func UpdateAssignment(env Env, root model.Root, subjectID, assignmentID string, p AssignmentPatch) model.Root {
	return withAssignment(env, root, subjectID, assignmentID, func(a model.Assignment) (model.Assignment, bool) {
		if p.Title != nil {
			a.Title = *p.Title
		}
		if p.Description != nil {
			a.Description = *p.Description
		}
		if p.DueDate != nil {
			a.DueDate = strings.TrimSpace(*p.DueDate)
		}
		if p.Priority != nil {
			if _, err := model.ParsePriority(string(*p.Priority)); err == nil {
				a.Priority = *p.Priority
			}
		}
		if p.Status != nil {
			if _, err := model.ParseStatus(string(*p.Status)); err == nil {
				a.Status = *p.Status
			}
		}
		return a, true
	})
}

func RemoveAssignment(root model.Root, subjectID, assignmentID string) model.Root {
	return withSubject(root, subjectID, func(s model.Subject) (model.Subject, bool) {
		i := indexByID(s.Assignments, assignmentID, idOfAssignment)
		if i < 0 {
			return s, false
		}
		s.Assignments = removeAt(s.Assignments, i)
		return s, true
	})
}

func AddChecklistItem(env Env, root model.Root, subjectID, assignmentID, text string) (model.Root, string) {
	if strings.TrimSpace(text) == "" {
		text = defaultChecklistText
	}
	id := ""
	next := withAssignment(env, root, subjectID, assignmentID, func(a model.Assignment) (model.Assignment, bool) {
		id = env.newID()
		a.Checklist = appendCopy(a.Checklist, model.ChecklistItem{ID: id, Text: text})
		return a, true
	})
	return next, id
}

func ToggleChecklistItem(env Env, root model.Root, subjectID, assignmentID, itemID string) model.Root {
	return withChecklistItem(env, root, subjectID, assignmentID, itemID, func(c model.ChecklistItem) model.ChecklistItem {
		c.Done = !c.Done
		return c
	})
}

func SetChecklistItemText(env Env, root model.Root, subjectID, assignmentID, itemID, text string) model.Root {
	return withChecklistItem(env, root, subjectID, assignmentID, itemID, func(c model.ChecklistItem) model.ChecklistItem {
		c.Text = text
		return c
	})
}

func RemoveChecklistItem(env Env, root model.Root, subjectID, assignmentID, itemID string) model.Root {
	return withAssignment(env, root, subjectID, assignmentID, func(a model.Assignment) (model.Assignment, bool) {
		i := indexByID(a.Checklist, itemID, idOfChecklistItem)
		if i < 0 {
			return a, false
		}
		a.Checklist = removeAt(a.Checklist, i)
		return a, true
	})
}

// withAssignment is withSubject one level down. Any reported change also
// refreshes the assignment's updatedAt.
func withAssignment(env Env, root model.Root, subjectID, assignmentID string, fn func(model.Assignment) (model.Assignment, bool)) model.Root {
	return withSubject(root, subjectID, func(s model.Subject) (model.Subject, bool) {
		i := indexByID(s.Assignments, assignmentID, idOfAssignment)
		if i < 0 {
			return s, false
		}
		a, changed := fn(s.Assignments[i])
		if !changed {
			return s, false
		}
		a.UpdatedAt = env.stamp(a.UpdatedAt)
		s.Assignments = replaceAt(s.Assignments, i, a)
		return s, true
	})
}

func withChecklistItem(env Env, root model.Root, subjectID, assignmentID, itemID string, fn func(model.ChecklistItem) model.ChecklistItem) model.Root {
	return withAssignment(env, root, subjectID, assignmentID, func(a model.Assignment) (model.Assignment, bool) {
		i := indexByID(a.Checklist, itemID, idOfChecklistItem)
		if i < 0 {
			return a, false
		}
		a.Checklist = replaceAt(a.Checklist, i, fn(a.Checklist[i]))
		return a, true
	})
}
