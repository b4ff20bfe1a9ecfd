package store

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"studybuddy/internal/model"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Store reads and writes the persisted tree and theme.
//
// Load never fails outward: a missing or corrupt data blob yields the seeded
// example tree. Save errors are returned, but they never touch the caller's
// in-memory tree.
type Store struct {
	Blobs BlobStore
	IDs   IDGenerator
	Now   func() time.Time
	Log   logrus.FieldLogger
}

func New(blobs BlobStore, log logrus.FieldLogger) Store {
	return Store{Blobs: blobs, IDs: UUIDGenerator{}, Now: time.Now, Log: log}
}

func (s Store) logger() logrus.FieldLogger {
	if s.Log != nil {
		return s.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (s Store) ids() IDGenerator {
	if s.IDs != nil {
		return s.IDs
	}
	return UUIDGenerator{}
}

func (s Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s Store) Load(ctx context.Context) model.Root {
	root, _, _ := s.load(ctx)
	return root
}

type loadState int

const (
	loadedPersisted loadState = iota
	// loadedSeed means the key was absent or held corrupt data.
	loadedSeed
	// loadedUnreadable means the backend failed; the persisted tree may
	// still be intact and must not be overwritten.
	loadedUnreadable
)

func (s Store) load(ctx context.Context) (model.Root, loadState, error) {
	log := s.logger().WithField("key", DataKey)
	b, ok, err := s.Blobs.Get(ctx, DataKey)
	if err != nil {
		log.WithError(err).Warn("reading persisted data failed; using example data")
		return Seed(s.ids(), s.now()), loadedUnreadable, errors.Wrap(err, "read persisted data")
	}
	if !ok || len(strings.TrimSpace(string(b))) == 0 {
		log.Debug("no persisted data; using example data")
		return Seed(s.ids(), s.now()), loadedSeed, nil
	}
	root, err := DecodeRoot(b)
	if err != nil {
		log.WithError(err).Warn("persisted data is corrupt; using example data")
		return Seed(s.ids(), s.now()), loadedSeed, nil
	}
	return root, loadedPersisted, nil
}

func (s Store) Save(ctx context.Context, root model.Root) error {
	b, err := EncodeRoot(root)
	if err != nil {
		return err
	}
	if err := s.Blobs.Put(ctx, DataKey, b); err != nil {
		s.logger().WithError(err).WithField("key", DataKey).Error("persisting data failed")
		return err
	}
	return nil
}

// Reset drops the persisted tree; the next Load returns example data.
func (s Store) Reset(ctx context.Context) error {
	return s.Blobs.Delete(ctx, DataKey)
}

// LoadTheme returns the persisted theme, or fallback when none is stored.
func (s Store) LoadTheme(ctx context.Context, fallback model.Theme) model.Theme {
	b, ok, err := s.Blobs.Get(ctx, ThemeKey)
	if err != nil || !ok {
		return fallback
	}
	t, err := model.ParseTheme(string(b))
	if err != nil {
		s.logger().WithField("value", string(b)).Debug("ignoring invalid persisted theme")
		return fallback
	}
	return t
}

func (s Store) SaveTheme(ctx context.Context, t model.Theme) error {
	if _, err := model.ParseTheme(string(t)); err != nil {
		return err
	}
	return s.Blobs.Put(ctx, ThemeKey, []byte(t))
}

func EncodeRoot(root model.Root) ([]byte, error) {
	b, err := json.Marshal(normalizeRoot(root))
	return b, errors.Wrap(err, "encode data")
}

func DecodeRoot(b []byte) (model.Root, error) {
	var root model.Root
	if err := json.Unmarshal(b, &root); err != nil {
		return model.Root{}, errors.Wrap(err, "decode data")
	}
	return normalizeRoot(root), nil
}

// normalizeRoot replaces nil collections with empty ones so that the blob
// always carries arrays (never null) and reloads compare deep-equal.
func normalizeRoot(root model.Root) model.Root {
	out := model.Root{ActiveSubjectID: root.ActiveSubjectID}
	out.Subjects = make([]model.Subject, 0, len(root.Subjects))
	for _, s := range root.Subjects {
		if s.Folders == nil {
			s.Folders = []model.Folder{}
		}
		if s.Files == nil {
			s.Files = []model.FileRef{}
		}
		notes := make([]model.Note, 0, len(s.Notes))
		for _, n := range s.Notes {
			if n.Tags == nil {
				n.Tags = []string{}
			}
			notes = append(notes, n)
		}
		s.Notes = notes
		assignments := make([]model.Assignment, 0, len(s.Assignments))
		for _, a := range s.Assignments {
			if a.Checklist == nil {
				a.Checklist = []model.ChecklistItem{}
			}
			if a.Attachments == nil {
				a.Attachments = []model.FileRef{}
			}
			assignments = append(assignments, a)
		}
		s.Assignments = assignments
		out.Subjects = append(out.Subjects, s)
	}
	return out
}
