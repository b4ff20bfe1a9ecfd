package views

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

type DueState string

const (
	DueNone    DueState = "none"
	DueOverdue DueState = "overdue"
	DueSoon    DueState = "soon"
	DueOK      DueState = "ok"
)

// soonDays is the inclusive horizon for DueSoon.
const soonDays = 3

func parseDate(s string) (time.Time, bool) {
	return parseDateIn(s, time.Local)
}

func parseDateIn(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DaysUntil is the ceiling of whole days from now until midnight (in now's
// location) of dueDate. Negative values are days overdue. Empty or
// unparseable dates yield nil.
func DaysUntil(dueDate string, now time.Time) *int {
	due, ok := parseDateIn(dueDate, now.Location())
	if !ok {
		return nil
	}
	days := int(math.Ceil(float64(due.Sub(now)) / float64(24*time.Hour)))
	return &days
}

func DueStateOf(days *int) DueState {
	switch {
	case days == nil:
		return DueNone
	case *days < 0:
		return DueOverdue
	case *days <= soonDays:
		return DueSoon
	default:
		return DueOK
	}
}

// DueLabel renders the short badge text shown next to an assignment.
func DueLabel(dueDate string, now time.Time) string {
	if strings.TrimSpace(dueDate) == "" {
		return "No due date"
	}
	days := DaysUntil(dueDate, now)
	if days == nil {
		return "No due date"
	}
	if *days < 0 {
		return fmt.Sprintf("Overdue %dd", -*days)
	}
	return fmt.Sprintf("%dd left", *days)
}

// FormatDate renders a YYYY-MM-DD date as e.g. "Mar 13, 2025"; anything
// unparseable renders as "".
func FormatDate(date string) string {
	t, ok := parseDate(date)
	if !ok {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// FormatTimestamp renders a unix-millisecond timestamp like FormatDate.
func FormatTimestamp(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).Format("Jan 2, 2006")
}
