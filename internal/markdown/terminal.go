package markdown

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	termMu sync.Mutex
	// Renderers are cached by style + wrap width. glamour's auto style may
	// query the terminal and block, so callers always pick a fixed style.
	termRenderers = map[string]*glamour.TermRenderer{}
)

// Text colors shared with the TUI palette.
var (
	termText   = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"}
	termAccent = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}
	termCodeBg = lipgloss.AdaptiveColor{Light: "#F1F5F9", Dark: "#1E293B"}
)

// RenderTerminal renders Markdown for a terminal of the given width using
// the "light" or "dark" glamour style. On any failure it returns the source.
func RenderTerminal(md, style string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	style = normalizeStyle(style)
	key := style + ":" + strconv.Itoa(width)

	termMu.Lock()
	r := termRenderers[key]
	termMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(TerminalStyleConfig(style)),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		termMu.Lock()
		if existing := termRenderers[key]; existing != nil {
			r = existing
		} else {
			termRenderers[key] = rr
			r = rr
		}
		termMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func normalizeStyle(style string) string {
	if strings.EqualFold(strings.TrimSpace(style), "light") {
		return "light"
	}
	return "dark"
}

// TerminalStyleConfig is glamour's standard style with headings and body text
// pinned to the app palette.
func TerminalStyleConfig(style string) ansi.StyleConfig {
	style = normalizeStyle(style)
	cfg := styles.DarkStyleConfig
	if style == "light" {
		cfg = styles.LightStyleConfig
	}

	text := pick(termText, style)
	cfg.Text.Color = text
	cfg.Heading.Color = text
	for _, h := range []*ansi.StyleBlock{&cfg.H1, &cfg.H2, &cfg.H3, &cfg.H4, &cfg.H5, &cfg.H6} {
		h.Color = text
	}
	cfg.Code.Color = text
	cfg.CodeBlock.Color = text
	if cfg.CodeBlock.BackgroundColor == nil {
		cfg.CodeBlock.BackgroundColor = pick(termCodeBg, style)
	}
	cfg.Link.Color = pick(termAccent, style)
	cfg.Strong.Color = nil
	cfg.Emph.Color = nil
	faint := false
	cfg.BlockQuote.Faint = &faint
	return cfg
}

func pick(c lipgloss.AdaptiveColor, style string) *string {
	v := c.Dark
	if style == "light" {
		v = c.Light
	}
	return &v
}
