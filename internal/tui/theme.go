package tui

import (
	"studybuddy/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Colors are adaptive; the persisted theme decides which side lipgloss picks.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorBorder     lipgloss.TerminalColor = ac("250", "243")
	colorAccent     lipgloss.TerminalColor = ac("#7C3AED", "#A78BFA")
	colorWarnBg     lipgloss.TerminalColor = ac("#3B82F6", "#2563EB")
	colorOverdue    lipgloss.TerminalColor = ac("#DC2626", "#F87171")
	colorSoon       lipgloss.TerminalColor = ac("#D97706", "#FBBF24")
	colorOK         lipgloss.TerminalColor = ac("#059669", "#34D399")
)

// subjectColors mirrors the subject palette.
var subjectColors = map[model.ColorKey]lipgloss.AdaptiveColor{
	model.ColorPurple: ac("#7C3AED", "#A78BFA"),
	model.ColorGreen:  ac("#059669", "#34D399"),
	model.ColorRed:    ac("#DC2626", "#F87171"),
	model.ColorOrange: ac("#EA580C", "#FB923C"),
	model.ColorBlue:   ac("#2563EB", "#60A5FA"),
}

func subjectColor(k model.ColorKey) lipgloss.TerminalColor {
	if c, ok := subjectColors[k]; ok {
		return c
	}
	return colorMuted
}

// applyTheme points every adaptive color at the chosen side.
func applyTheme(t model.Theme) {
	lipgloss.SetHasDarkBackground(t == model.ThemeDark)
}

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleMuted    = lipgloss.NewStyle().Foreground(colorMuted)
	styleHeading  = lipgloss.NewStyle().Bold(true)
	stylePane     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
	stylePaneOn   = stylePane.BorderForeground(colorAccent)
	styleWarning  = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(colorWarnBg).Padding(0, 1)
	styleSelected = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
)
