package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reDateOnly   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reRelativeDu = regexp.MustCompile(`^\+(\d+)([dw])$`)
)

// parseDueDate parses:
// - YYYY-MM-DD
// - today / tomorrow
// - +Nd / +Nw (days or weeks from today)
// - "" or none (no due date)
//
// It returns the YYYY-MM-DD form stored on assignments.
func parseDueDate(s string, now time.Time) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none", "clear":
		return "", nil
	case "today":
		return now.Format("2006-01-02"), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format("2006-01-02"), nil
	}

	if reDateOnly.MatchString(s) {
		if _, err := time.ParseInLocation("2006-01-02", s, now.Location()); err != nil {
			return "", fmt.Errorf("invalid due date %q: %v", s, err)
		}
		return s, nil
	}

	if m := reRelativeDu.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return "", fmt.Errorf("invalid due date %q", s)
		}
		if m[2] == "w" {
			n *= 7
		}
		return now.AddDate(0, 0, n).Format("2006-01-02"), nil
	}

	return "", fmt.Errorf("invalid due date %q (expected YYYY-MM-DD, today, tomorrow, +Nd, +Nw, or none)", s)
}
