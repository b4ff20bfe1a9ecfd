package tui

import "time"

const (
	toggleWindow  = 3 * time.Second
	toggleLimit   = 8
	toggleWarnFor = 3 * time.Second
)

const toggleWarning = "Easy on the theme toggle. Give your eyes a break."

// ToggleGuard rate-limits the theme toggle. Every press is recorded; when
// more than Limit presses fall inside Window the press is swallowed and a
// warning stays up for WarnFor.
type ToggleGuard struct {
	Window  time.Duration
	Limit   int
	WarnFor time.Duration

	presses   []time.Time
	warnUntil time.Time
}

func NewToggleGuard() ToggleGuard {
	return ToggleGuard{Window: toggleWindow, Limit: toggleLimit, WarnFor: toggleWarnFor}
}

// Allow records a press at now and reports whether the toggle may proceed.
func (g *ToggleGuard) Allow(now time.Time) bool {
	kept := make([]time.Time, 0, len(g.presses)+1)
	for _, t := range g.presses {
		if now.Sub(t) < g.Window {
			kept = append(kept, t)
		}
	}
	g.presses = append(kept, now)
	if len(g.presses) > g.Limit {
		g.warnUntil = now.Add(g.WarnFor)
		return false
	}
	return true
}

// Warning reports whether the spam warning is still showing at now.
func (g ToggleGuard) Warning(now time.Time) bool {
	return now.Before(g.warnUntil)
}
