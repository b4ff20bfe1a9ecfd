package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// rowItem is a list entry drawn as a label with a right-aligned detail.
type rowItem interface {
	list.Item
	label() string
	detail() string
}

// rowDelegate renders one line per item. The selection bar is only filled
// in the focused pane; the other pane keeps a cursor mark.
type rowDelegate struct {
	focused bool
}

var styleSelectedBlur = lipgloss.NewStyle().Bold(true)

func newRowDelegate(focused bool) rowDelegate {
	return rowDelegate{focused: focused}
}

func (d rowDelegate) Height() int                             { return 1 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	width := m.Width()
	if width < 4 {
		return
	}

	left, right := fmt.Sprint(item), ""
	if r, ok := item.(rowItem); ok {
		left, right = r.label(), r.detail()
	}

	selected := index == m.Index()
	if selected {
		left = "› " + left
	} else {
		left = "  " + left
	}

	fmt.Fprint(w, d.style(selected).Render(fitRow(left, right, width, !selected)))
}

func (d rowDelegate) style(selected bool) lipgloss.Style {
	switch {
	case selected && d.focused:
		return styleSelected
	case selected:
		return styleSelectedBlur
	default:
		return lipgloss.NewStyle()
	}
}

// fitRow lays out left and right within width. The detail is dropped when
// both do not fit; the label is truncated as a last resort.
func fitRow(left, right string, width int, muteRight bool) string {
	lw := xansi.StringWidth(left)
	rw := xansi.StringWidth(right)
	if right != "" && lw+2+rw <= width {
		if muteRight {
			right = styleMuted.Render(right)
		}
		return left + strings.Repeat(" ", width-lw-rw) + right
	}
	if lw > width {
		return xansi.Truncate(left, width, "…")
	}
	return left + strings.Repeat(" ", width-lw)
}
