// Package markdown renders note content: the small line-oriented Markdown
// dialect used by the preview pane, GFM via goldmark, and terminal output via
// glamour.
package markdown

import (
	"regexp"
	"strings"
)

const (
	codeClass       = "px-1 py-0.5 rounded bg-slate-100 dark:bg-slate-800"
	blockquoteClass = "pl-3 border-l-2 border-slate-300 dark:border-slate-700"
	ulClass         = "list-disc pl-5"
	olClass         = "list-decimal pl-5"
)

var (
	escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	newline = strings.NewReplacer("\r\n", "\n", "\r", "\n")

	// Longest marker first so "######" is never taken by the "#" rule.
	headingRes = []struct {
		re  *regexp.Regexp
		tag string
	}{
		{regexp.MustCompile(`(?m)^###### (.*)$`), "h6"},
		{regexp.MustCompile(`(?m)^##### (.*)$`), "h5"},
		{regexp.MustCompile(`(?m)^#### (.*)$`), "h4"},
		{regexp.MustCompile(`(?m)^### (.*)$`), "h3"},
		{regexp.MustCompile(`(?m)^## (.*)$`), "h2"},
		{regexp.MustCompile(`(?m)^# (.*)$`), "h1"},
	}

	boldRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.*?)\*`)
	codeRe   = regexp.MustCompile("`([^`]+)`")
	// Input is already escaped, so a quote marker arrives as "&gt; ".
	quoteRe = regexp.MustCompile(`(?m)^&gt; (.*)$`)

	ulRunRe    = regexp.MustCompile(`(?m)^(?:- |\* ).*(?:\n(?:- |\* ).*)*`)
	ulMarkerRe = regexp.MustCompile(`^(?:- |\* )`)
	olRunRe    = regexp.MustCompile(`(?m)^\d+\. .*(?:\n\d+\. .*)*`)
	olMarkerRe = regexp.MustCompile(`^\d+\. `)
)

// ToHTML converts src to an HTML fragment. Stages run strictly in order and
// each sees the previous stage's output:
//
//  1. normalize line endings to \n, escape & < >
//  2. headings, longest marker first
//  3. bold, then italic
//  4. inline code
//  5. blockquote lines
//  6. runs of "- " / "* " lines into one <ul>
//  7. runs of "N. " lines into one <ol>
//  8. remaining non-empty lines into <p>
//
// Block lines are concatenated without separators and blank lines vanish.
func ToHTML(src string) string {
	if src == "" {
		return ""
	}
	s := escaper.Replace(newline.Replace(src))
	for _, h := range headingRes {
		s = h.re.ReplaceAllString(s, "<"+h.tag+">${1}</"+h.tag+">")
	}
	s = boldRe.ReplaceAllString(s, "<strong>${1}</strong>")
	s = italicRe.ReplaceAllString(s, "<em>${1}</em>")
	s = codeRe.ReplaceAllString(s, "<code class='"+codeClass+"'>${1}</code>")
	s = quoteRe.ReplaceAllString(s, "<blockquote class='"+blockquoteClass+"'>${1}</blockquote>")
	s = ulRunRe.ReplaceAllStringFunc(s, func(run string) string {
		return listHTML(run, "ul", ulClass, ulMarkerRe)
	})
	s = olRunRe.ReplaceAllStringFunc(s, func(run string) string {
		return listHTML(run, "ol", olClass, olMarkerRe)
	})

	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		if line == "" {
			continue
		}
		if isBlockLine(line) {
			b.WriteString(line)
			continue
		}
		b.WriteString("<p>")
		b.WriteString(line)
		b.WriteString("</p>")
	}
	return b.String()
}

func listHTML(run, tag, class string, marker *regexp.Regexp) string {
	var b strings.Builder
	b.WriteString("<" + tag + " class='" + class + "'>")
	for _, li := range strings.Split(run, "\n") {
		b.WriteString("<li>")
		b.WriteString(marker.ReplaceAllString(li, ""))
		b.WriteString("</li>")
	}
	b.WriteString("</" + tag + ">")
	return b.String()
}

func isBlockLine(line string) bool {
	if len(line) >= 3 && strings.HasPrefix(line, "<h") && line[2] >= '0' && line[2] <= '9' {
		return true
	}
	return strings.HasPrefix(line, "<ul") ||
		strings.HasPrefix(line, "<ol") ||
		strings.HasPrefix(line, "<blockquote")
}
