package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"heading and list", "# Title\n- a\n- b", "<h1>Title</h1><ul class='list-disc pl-5'><li>a</li><li>b</li></ul>"},
		{"six hashes", "###### Deep", "<h6>Deep</h6>"},
		{"h3", "### Mid", "<h3>Mid</h3>"},
		{"bold before italic", "**bold** and *it*", "<p><strong>bold</strong> and <em>it</em></p>"},
		{"inline code", "use `x < y`", "<p>use <code class='px-1 py-0.5 rounded bg-slate-100 dark:bg-slate-800'>x &lt; y</code></p>"},
		{"escaping", "a & b <i>", "<p>a &amp; b &lt;i&gt;</p>"},
		{"blockquote", "> quoted", "<blockquote class='pl-3 border-l-2 border-slate-300 dark:border-slate-700'>quoted</blockquote>"},
		{"star bullets", "* one\n* two", "<ul class='list-disc pl-5'><li>one</li><li>two</li></ul>"},
		{"ordered", "1. Page 42\n2. Review", "<ol class='list-decimal pl-5'><li>Page 42</li><li>Review</li></ol>"},
		{"separate runs", "- a\n\n- b", "<ul class='list-disc pl-5'><li>a</li></ul><ul class='list-disc pl-5'><li>b</li></ul>"},
		{"paragraphs drop blank lines", "one\n\ntwo", "<p>one</p><p>two</p>"},
		{"hash without space", "#tag", "<p>#tag</p>"},
		{"crlf paragraphs", "line1\r\nline2", "<p>line1</p><p>line2</p>"},
		{"crlf heading", "# T\r\n- a\r\n- b", "<h1>T</h1><ul class='list-disc pl-5'><li>a</li><li>b</li></ul>"},
	}
	for _, tc := range cases {
		if got := ToHTML(tc.in); got != tc.want {
			t.Fatalf("%s:\n got  %q\n want %q", tc.name, got, tc.want)
		}
	}
}

func TestToHTML_SeedNote(t *testing.T) {
	got := ToHTML("# Limits\n- Definition\n- Epsilon/Delta\n\n**Tip:** practice!")
	want := "<h1>Limits</h1><ul class='list-disc pl-5'><li>Definition</li><li>Epsilon/Delta</li></ul><p><strong>Tip:</strong> practice!</p>"
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

// Editor content is HTML. The legacy preview re-runs the Markdown pipeline
// over it, so tags come out escaped inside paragraphs.
func TestPreview_LegacyModeEscapesEditorHTML(t *testing.T) {
	got := Preview("<p>Hello <b>x</b></p>", ModeLegacy)
	want := "<p>&lt;p&gt;Hello &lt;b&gt;x&lt;/b&gt;&lt;/p&gt;</p>"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestPreview_MarkdownMode(t *testing.T) {
	got := Preview("# Title\n\n- a\n- b\n\n~~old~~", ModeMarkdown)
	for _, want := range []string{"<h1>Title</h1>", "<li>a</li>", "<del>old</del>"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
	if got := Preview("<script>alert(1)</script>", ModeMarkdown); strings.Contains(got, "<script>") {
		t.Fatalf("raw html must not pass through: %q", got)
	}
	if got := Preview("   ", ModeMarkdown); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeLegacy, "legacy": ModeLegacy, "MD": ModeMarkdown, "markdown": ModeMarkdown} {
		got, ok := ParseMode(in)
		if !ok || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseMode("rtf"); ok {
		t.Fatalf("expected unknown mode to fail")
	}
}

func TestSanitizeNoteHTML(t *testing.T) {
	got := SanitizeNoteHTML(`<p onclick="x()">Hi <b>there</b><script>alert(1)</script></p>`)
	if strings.Contains(got, "script") || strings.Contains(got, "onclick") {
		t.Fatalf("unsafe markup survived: %q", got)
	}
	if !strings.Contains(got, "<b>there</b>") {
		t.Fatalf("expected formatting kept: %q", got)
	}
}

func TestRenderTerminal(t *testing.T) {
	if got := RenderTerminal("  ", "dark", 80); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	out := RenderTerminal("# Heading\n\nSome **bold** text", "light", 40)
	if !strings.Contains(out, "Heading") || !strings.Contains(out, "bold") {
		t.Fatalf("unexpected render: %q", out)
	}
}

func TestTerminalStyleConfig_UsesPalette(t *testing.T) {
	light := TerminalStyleConfig("light")
	dark := TerminalStyleConfig("anything")
	if light.Text.Color == nil || *light.Text.Color != termText.Light {
		t.Fatalf("light text color = %v", light.Text.Color)
	}
	if dark.H1.Color == nil || *dark.H1.Color != termText.Dark {
		t.Fatalf("dark h1 color = %v", dark.H1.Color)
	}
}

func TestHTMLToText(t *testing.T) {
	in := `<h2>Cell parts</h2><p>The <strong>nucleus</strong> &amp; ribosomes</p><ul><li>one</li><li>two</li></ul><script>x()</script>`
	got := HTMLToText(in)
	want := "Cell parts\nThe nucleus & ribosomes\n- one\n- two"
	if got != want {
		t.Fatalf("HTMLToText mismatch\nwant %q\ngot  %q", want, got)
	}
}

func TestNoteText(t *testing.T) {
	if got := NoteText("# Limits\n- Definition"); got != "# Limits\n- Definition" {
		t.Fatalf("expected markdown to pass through, got %q", got)
	}
	if got := NoteText("<p>Hello <b>there</b></p>"); got != "Hello there" {
		t.Fatalf("expected flattened HTML, got %q", got)
	}
}
