package store

import (
	"time"

	"studybuddy/internal/model"
)

// Seed builds the example tree shown on first launch.
func Seed(ids IDGenerator, now time.Time) model.Root {
	nowMs := now.UnixMilli()
	concepts := ids.NewID()
	homework := ids.NewID()

	math := model.Subject{
		ID:       ids.NewID(),
		Name:     "Mathematics",
		ColorKey: model.ColorPurple,
		Folders: []model.Folder{
			{ID: concepts, Name: "Concepts"},
			{ID: homework, Name: "Homework"},
		},
		Notes: []model.Note{
			{
				ID:        ids.NewID(),
				FolderID:  concepts,
				Title:     "Limits & Continuity",
				Content:   "# Limits\n- Definition\n- Epsilon/Delta\n\n**Tip:** practice!",
				Tags:      []string{"calc"},
				UpdatedAt: nowMs - int64(24*time.Hour/time.Millisecond),
			},
			{
				ID:        ids.NewID(),
				FolderID:  homework,
				Title:     "Week 3 Exercises",
				Content:   "1. Page 42 #1-10\n2. Review proofs",
				Tags:      []string{"hw"},
				UpdatedAt: nowMs - int64(time.Hour/time.Millisecond),
			},
		},
		Assignments: []model.Assignment{
			{
				ID:          ids.NewID(),
				Title:       "Derivative Rules Sheet",
				Description: "Summarize product/quotient/chain.",
				DueDate:     now.UTC().Add(3 * 24 * time.Hour).Format("2006-01-02"),
				Priority:    model.PriorityHigh,
				Status:      model.StatusInProgress,
				Checklist: []model.ChecklistItem{
					{ID: ids.NewID(), Text: "Product Rule", Done: true},
					{ID: ids.NewID(), Text: "Quotient Rule", Done: false},
				},
				Attachments: []model.FileRef{},
				CreatedAt:   nowMs,
				UpdatedAt:   nowMs,
			},
		},
		Files: []model.FileRef{},
	}

	science := model.Subject{
		ID:          ids.NewID(),
		Name:        "Science",
		ColorKey:    model.ColorGreen,
		Folders:     []model.Folder{{ID: ids.NewID(), Name: "Notes"}},
		Notes:       []model.Note{},
		Assignments: []model.Assignment{},
		Files:       []model.FileRef{},
	}

	return model.Root{
		Subjects:        []model.Subject{math, science},
		ActiveSubjectID: nil,
	}
}
