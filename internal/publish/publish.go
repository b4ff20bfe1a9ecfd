// Package publish exports a subject as a directory of Markdown pages.
package publish

import (
	"os"
	"path/filepath"
	"strings"

	"studybuddy/internal/model"

	"github.com/pkg/errors"
)

type WriteOptions struct {
	Overwrite bool
	Render    RenderOptions
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteSubject writes <toDir>/<subjectID>/index.md plus one page per note
// and assignment. It stops at the first error.
func WriteSubject(root model.Root, subjectID string, toDir string, opt WriteOptions) (WriteResult, error) {
	subjectID = strings.TrimSpace(subjectID)
	s, ok := root.FindSubject(subjectID)
	if !ok {
		return WriteResult{}, errors.Errorf("subject not found: %s", subjectID)
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	subjectDir := filepath.Join(toDir, s.ID)
	notesDir := filepath.Join(subjectDir, "notes")
	assignmentsDir := filepath.Join(subjectDir, "assignments")
	for _, d := range []string{notesDir, assignmentsDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return WriteResult{}, errors.Wrap(err, "create export dir")
		}
	}

	indexPath := filepath.Join(subjectDir, "index.md")
	if err := writeFile(indexPath, []byte(RenderSubjectIndexMarkdown(s, opt.Render)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	written := []string{indexPath}

	for _, n := range s.Notes {
		md, err := RenderNoteMarkdown(s, n.ID)
		if err != nil {
			return WriteResult{}, err
		}
		p := filepath.Join(notesDir, n.ID+".md")
		if err := writeFile(p, []byte(md), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
	}

	for _, a := range s.Assignments {
		md, err := RenderAssignmentMarkdown(s, a.ID, opt.Render)
		if err != nil {
			return WriteResult{}, err
		}
		p := filepath.Join(assignmentsDir, a.ID+".md")
		if err := writeFile(p, []byte(md), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
	}

	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return errors.Wrap(os.WriteFile(path, b, 0o644), "write "+filepath.Base(path))
}
