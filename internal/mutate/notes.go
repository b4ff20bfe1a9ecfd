package mutate

import (
	"strings"

	"studybuddy/internal/model"
)

const defaultNoteTitle = "New Note"

// NoteDraft describes a new note. An empty FolderID files the note under the
// subject's first folder.
type NoteDraft struct {
	FolderID string
	Title    string
	Content  string
	Tags     []string
}

type NotePatch struct {
	FolderID *string
	Title    *string
	Content  *string
	Tags     *[]string
}

// AddNote prepends a note to the subject. It is a no-op when the subject has
// no folders or FolderID names a folder the subject does not have.
func AddNote(env Env, root model.Root, subjectID string, d NoteDraft) (model.Root, string) {
	id := ""
	next := withSubject(root, subjectID, func(s model.Subject) (model.Subject, bool) {
		if len(s.Folders) == 0 {
			return s, false
		}
		folder := strings.TrimSpace(d.FolderID)
		if folder == "" {
			folder = s.Folders[0].ID
		} else if indexByID(s.Folders, folder, idOfFolder) < 0 {
			return s, false
		}
		title := d.Title
		if strings.TrimSpace(title) == "" {
			title = defaultNoteTitle
		}
		id = env.newID()
		n := model.Note{
			ID:        id,
			FolderID:  folder,
			Title:     title,
			Content:   d.Content,
			Tags:      NormalizeTags(d.Tags),
			UpdatedAt: env.nowMs(),
		}
		s.Notes = prependCopy(s.Notes, n)
		return s, true
	})
	return next, id
}

// UpdateNote merges the patch into the note and refreshes updatedAt. A
// FolderID naming an unknown folder is ignored.
func UpdateNote(env Env, root model.Root, subjectID, noteID string, p NotePatch) model.Root {
	return withSubject(root, subjectID, func(s model.Subject) (model.Subject, bool) {
		i := indexByID(s.Notes, noteID, idOfNote)
		if i < 0 {
			return s, false
		}
		n := s.Notes[i]
		if p.FolderID != nil && indexByID(s.Folders, *p.FolderID, idOfFolder) >= 0 {
			n.FolderID = *p.FolderID
		}
		if p.Title != nil {
			n.Title = *p.Title
		}
		if p.Content != nil {
			n.Content = *p.Content
		}
		if p.Tags != nil {
			n.Tags = NormalizeTags(*p.Tags)
		}
		n.UpdatedAt = env.stamp(n.UpdatedAt)
		s.Notes = replaceAt(s.Notes, i, n)
		return s, true
	})
}

func RemoveNote(root model.Root, subjectID, noteID string) model.Root {
	return withSubject(root, subjectID, func(s model.Subject) (model.Subject, bool) {
		i := indexByID(s.Notes, noteID, idOfNote)
		if i < 0 {
			return s, false
		}
		s.Notes = removeAt(s.Notes, i)
		return s, true
	})
}

// NormalizeTags trims tags, drops empty ones and duplicates, and keeps the
// first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
