package mutate

import (
	"strings"

	"studybuddy/internal/model"
)

const (
	defaultSubjectName = "New Subject"
	defaultFolderName  = "General"
)

type SubjectPatch struct {
	Name     *string
	ColorKey *model.ColorKey
}

// AddSubject appends a subject named "New Subject" with a single "General"
// folder, colored by palette position, and makes it active.
func AddSubject(env Env, root model.Root) (model.Root, string) {
	id := env.newID()
	s := model.Subject{
		ID:          id,
		Name:        defaultSubjectName,
		ColorKey:    model.Palette[len(root.Subjects)%len(model.Palette)],
		Folders:     []model.Folder{{ID: env.newID(), Name: defaultFolderName}},
		Notes:       []model.Note{},
		Assignments: []model.Assignment{},
		Files:       []model.FileRef{},
	}
	return model.Root{
		Subjects:        appendCopy(root.Subjects, s),
		ActiveSubjectID: strPtr(id),
	}, id
}

func UpdateSubject(root model.Root, id string, p SubjectPatch) model.Root {
	return withSubject(root, id, func(s model.Subject) (model.Subject, bool) {
		changed := false
		if p.Name != nil {
			s.Name = *p.Name
			changed = true
		}
		if p.ColorKey != nil {
			if _, err := model.ParseColorKey(string(*p.ColorKey)); err == nil {
				s.ColorKey = *p.ColorKey
				changed = true
			}
		}
		return s, changed
	})
}

// RemoveSubject drops a subject with everything it owns. The active subject is
// always recomputed to the first remaining subject (or none).
func RemoveSubject(root model.Root, id string) model.Root {
	i := indexByID(root.Subjects, id, idOfSubject)
	if i < 0 {
		return root
	}
	subjects := removeAt(root.Subjects, i)
	var active *string
	if len(subjects) > 0 {
		active = strPtr(subjects[0].ID)
	}
	return model.Root{Subjects: subjects, ActiveSubjectID: active}
}

func SetActiveSubject(root model.Root, id string) model.Root {
	if indexByID(root.Subjects, id, idOfSubject) < 0 {
		return root
	}
	return model.Root{Subjects: root.Subjects, ActiveSubjectID: strPtr(id)}
}

func AddFolder(env Env, root model.Root, subjectID, name string) (model.Root, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return root, ""
	}
	id := ""
	next := withSubject(root, subjectID, func(s model.Subject) (model.Subject, bool) {
		id = env.newID()
		s.Folders = appendCopy(s.Folders, model.Folder{ID: id, Name: name})
		return s, true
	})
	return next, id
}

func RenameFolder(root model.Root, subjectID, folderID, name string) model.Root {
	name = strings.TrimSpace(name)
	if name == "" {
		return root
	}
	return withSubject(root, subjectID, func(s model.Subject) (model.Subject, bool) {
		i := indexByID(s.Folders, folderID, idOfFolder)
		if i < 0 || s.Folders[i].Name == name {
			return s, false
		}
		f := s.Folders[i]
		f.Name = name
		s.Folders = replaceAt(s.Folders, i, f)
		return s, true
	})
}

// RemoveFolder drops the folder and every note filed under it.
func RemoveFolder(root model.Root, subjectID, folderID string) model.Root {
	return withSubject(root, subjectID, func(s model.Subject) (model.Subject, bool) {
		i := indexByID(s.Folders, folderID, idOfFolder)
		if i < 0 {
			return s, false
		}
		s.Folders = removeAt(s.Folders, i)
		notes := make([]model.Note, 0, len(s.Notes))
		for _, n := range s.Notes {
			if n.FolderID != folderID {
				notes = append(notes, n)
			}
		}
		s.Notes = notes
		return s, true
	})
}
