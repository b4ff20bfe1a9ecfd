package markdown

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Mode selects how note content is previewed.
type Mode string

const (
	// ModeLegacy runs ToHTML over the stored content as is, even when that
	// content is editor HTML.
	ModeLegacy Mode = "legacy"
	// ModeMarkdown treats the content as genuine Markdown (GFM).
	ModeMarkdown Mode = "markdown"
)

func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy", "html":
		return ModeLegacy, true
	case "markdown", "md", "gfm":
		return ModeMarkdown, true
	default:
		return "", false
	}
}

var gfm = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	// Raw HTML stays disabled: no html.WithUnsafe().
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
	),
)

var (
	notePolicy  = bluemonday.UGCPolicy()
	stripPolicy = bluemonday.StrictPolicy()
)

var (
	reBlockEnd  = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|blockquote|pre|tr)>|<br\s*/?>`)
	reListItem  = regexp.MustCompile(`(?i)<li(\s[^>]*)?>`)
	reBlankRuns = regexp.MustCompile(`\n{3,}`)
)

// Preview renders content for the preview pane.
func Preview(content string, mode Mode) string {
	if mode == ModeMarkdown {
		return RenderGFM(content)
	}
	return ToHTML(content)
}

// RenderGFM converts Markdown to HTML with GitHub extensions.
func RenderGFM(src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	var b bytes.Buffer
	if err := gfm.Convert([]byte(src), &b); err != nil {
		return "<pre>" + html.EscapeString(src) + "</pre>"
	}
	return b.String()
}

// SanitizeNoteHTML strips scripts, event handlers and other unsafe markup
// from rich-text note content.
func SanitizeNoteHTML(s string) string {
	return notePolicy.Sanitize(s)
}

// HTMLToText flattens rich-text note HTML into plain lines (list items as
// "- " bullets) for terminal display.
func HTMLToText(s string) string {
	s = reListItem.ReplaceAllString(s, "- ")
	s = reBlockEnd.ReplaceAllString(s, "\n")
	s = html.UnescapeString(stripPolicy.Sanitize(s))
	s = reBlankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// NoteText returns note content as Markdown-ish text: editor HTML is
// flattened, plain Markdown passes through.
func NoteText(content string) string {
	if strings.Contains(content, "</") || strings.Contains(content, "<br") {
		return HTMLToText(content)
	}
	return content
}
