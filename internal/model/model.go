package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Root is the whole persisted tree. Every mutation replaces it wholesale.
type Root struct {
	Subjects        []Subject `json:"subjects"`
	ActiveSubjectID *string   `json:"activeSubjectId"`
}

// CanvasStrokes belongs to the web app's drawing pad. It is carried through
// untouched so blobs written there survive a load/save here.
type Subject struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	ColorKey      ColorKey        `json:"colorKey"`
	Folders       []Folder        `json:"folders"`
	Notes         []Note          `json:"notes"`
	Assignments   []Assignment    `json:"assignments"`
	Files         []FileRef       `json:"files"`
	CanvasStrokes json.RawMessage `json:"canvasStrokes,omitempty"`
}

type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Note content is HTML produced by the rich-text editor.
// FolderID is a weak reference to a Folder of the owning Subject.
type Note struct {
	ID        string   `json:"id"`
	FolderID  string   `json:"folderId"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	UpdatedAt int64    `json:"updatedAt"` // unix ms
}

type Assignment struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     string          `json:"dueDate"` // YYYY-MM-DD or ""
	Priority    Priority        `json:"priority"`
	Status      Status          `json:"status"`
	Checklist   []ChecklistItem `json:"checklist"`
	Attachments []FileRef       `json:"attachments"`
	CreatedAt   int64           `json:"createdAt"` // unix ms
	UpdatedAt   int64           `json:"updatedAt"` // unix ms
}

type ChecklistItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// FileRef.URL points at a local copy of the file and is only meaningful on the
// machine (and for the session) that added it.
type FileRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Type    string `json:"type"`
	URL     string `json:"url"`
	AddedAt int64  `json:"addedAt"` // unix ms
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, nil
	case "medium", "med":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("invalid priority: %q (expected Low|Medium|High)", s)
	}
}

type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusDone}
}

func ParseStatus(s string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "", "_", "", " ", "").Replace(norm)
	switch norm {
	case "notstarted", "todo":
		return StatusNotStarted, nil
	case "inprogress", "doing":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	default:
		return "", fmt.Errorf("invalid status: %q (expected \"Not Started\"|\"In Progress\"|Done)", s)
	}
}

type ColorKey string

const (
	ColorPurple ColorKey = "purple"
	ColorGreen  ColorKey = "green"
	ColorRed    ColorKey = "red"
	ColorOrange ColorKey = "orange"
	ColorBlue   ColorKey = "blue"
)

// Palette is ordered; new subjects take Palette[len(subjects) % len(Palette)].
var Palette = []ColorKey{ColorPurple, ColorGreen, ColorRed, ColorOrange, ColorBlue}

func ParseColorKey(s string) (ColorKey, error) {
	k := ColorKey(strings.ToLower(strings.TrimSpace(s)))
	for _, c := range Palette {
		if c == k {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid color: %q (expected purple|green|red|orange|blue)", s)
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("invalid theme: %q (expected light|dark)", s)
	}
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (r Root) FindSubject(id string) (Subject, bool) {
	for _, s := range r.Subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

// ActiveSubject resolves the subject the UI should show: the active one, or
// the first subject when the active id is unset or stale.
func (r Root) ActiveSubject() (Subject, bool) {
	if r.ActiveSubjectID != nil {
		if s, ok := r.FindSubject(*r.ActiveSubjectID); ok {
			return s, true
		}
	}
	if len(r.Subjects) > 0 {
		return r.Subjects[0], true
	}
	return Subject{}, false
}

func (s Subject) FindFolder(id string) (Folder, bool) {
	for _, f := range s.Folders {
		if f.ID == id {
			return f, true
		}
	}
	return Folder{}, false
}

func (s Subject) FindNote(id string) (Note, bool) {
	for _, n := range s.Notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

func (s Subject) FindAssignment(id string) (Assignment, bool) {
	for _, a := range s.Assignments {
		if a.ID == id {
			return a, true
		}
	}
	return Assignment{}, false
}

func (s Subject) FindFile(id string) (FileRef, bool) {
	for _, f := range s.Files {
		if f.ID == id {
			return f, true
		}
	}
	return FileRef{}, false
}
