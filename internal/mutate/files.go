package mutate

import (
	"strings"

	"studybuddy/internal/model"
)

type FileDraft struct {
	Name string
	Size int64
	Type string
	URL  string
}

func (d FileDraft) ref(env Env) model.FileRef {
	return model.FileRef{
		ID:      env.newID(),
		Name:    d.Name,
		Size:    d.Size,
		Type:    d.Type,
		URL:     d.URL,
		AddedAt: env.nowMs(),
	}
}

// AddFile appends a file reference to the subject's file list. Unnamed files
// are a no-op.
func AddFile(env Env, root model.Root, subjectID string, d FileDraft) (model.Root, string) {
	if strings.TrimSpace(d.Name) == "" {
		return root, ""
	}
	id := ""
	next := withSubject(root, subjectID, func(s model.Subject) (model.Subject, bool) {
		f := d.ref(env)
		id = f.ID
		s.Files = appendCopy(s.Files, f)
		return s, true
	})
	return next, id
}

func RemoveFile(root model.Root, subjectID, fileID string) model.Root {
	return withSubject(root, subjectID, func(s model.Subject) (model.Subject, bool) {
		i := indexByID(s.Files, fileID, idOfFile)
		if i < 0 {
			return s, false
		}
		s.Files = removeAt(s.Files, i)
		return s, true
	})
}

func AddAttachment(env Env, root model.Root, subjectID, assignmentID string, d FileDraft) (model.Root, string) {
	if strings.TrimSpace(d.Name) == "" {
		return root, ""
	}
	id := ""
	next := withAssignment(env, root, subjectID, assignmentID, func(a model.Assignment) (model.Assignment, bool) {
		f := d.ref(env)
		id = f.ID
		a.Attachments = appendCopy(a.Attachments, f)
		return a, true
	})
	return next, id
}

func RemoveAttachment(env Env, root model.Root, subjectID, assignmentID, fileID string) model.Root {
	return withAssignment(env, root, subjectID, assignmentID, func(a model.Assignment) (model.Assignment, bool) {
		i := indexByID(a.Attachments, fileID, idOfFile)
		if i < 0 {
			return a, false
		}
		a.Attachments = removeAt(a.Attachments, i)
		return a, true
	})
}
