package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type TextOptions struct {
	// MaxValueWidth truncates long scalar values (display cells). Zero means 96.
	MaxValueWidth int
}

var keyStyle = lipgloss.NewStyle().Bold(true)

// WriteText renders v as an indented key/value outline for people. Values go
// through their JSON form first so field names match the JSON output.
func WriteText(w io.Writer, v any, opts TextOptions) error {
	if opts.MaxValueWidth <= 0 {
		opts.MaxValueWidth = 96
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var x any
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	if err := dec.Decode(&x); err != nil {
		return err
	}
	var sb strings.Builder
	writeTextValue(&sb, x, 0, opts)
	_, err = io.WriteString(w, sb.String())
	return err
}

func writeTextValue(sb *strings.Builder, x any, depth int, opts TextOptions) {
	indent := strings.Repeat("  ", depth)
	switch t := x.(type) {
	case map[string]any:
		if len(t) == 0 {
			sb.WriteString(indent + "(empty)\n")
			return
		}
		for _, k := range sortedKeys(t) {
			writeTextEntry(sb, indent, k, t[k], depth, opts)
		}
	case []any:
		if len(t) == 0 {
			sb.WriteString(indent + "(none)\n")
			return
		}
		for _, item := range t {
			if isScalar(item) {
				sb.WriteString(indent + "- " + scalarText(item, opts) + "\n")
				continue
			}
			sb.WriteString(indent + "-\n")
			writeTextValue(sb, item, depth+1, opts)
		}
	default:
		sb.WriteString(indent + scalarText(t, opts) + "\n")
	}
}

func writeTextEntry(sb *strings.Builder, indent, key string, val any, depth int, opts TextOptions) {
	label := keyStyle.Render(key + ":")
	if isScalar(val) {
		sb.WriteString(indent + label + " " + scalarText(val, opts) + "\n")
		return
	}
	if arr, ok := val.([]any); ok && len(arr) == 0 {
		sb.WriteString(indent + label + " []\n")
		return
	}
	sb.WriteString(indent + label + "\n")
	writeTextValue(sb, val, depth+1, opts)
}

func isScalar(x any) bool {
	switch x.(type) {
	case map[string]any, []any:
		return false
	default:
		return true
	}
}

func scalarText(x any, opts TextOptions) string {
	var s string
	switch t := x.(type) {
	case nil:
		s = "-"
	case string:
		s = strings.ReplaceAll(t, "\n", " ")
	case bool:
		s = strconv.FormatBool(t)
	case json.Number:
		s = t.String()
	default:
		s = fmt.Sprint(t)
	}
	return ansi.Truncate(s, opts.MaxValueWidth, "…")
}

// sortedKeys puts id/name/title first, then the rest alphabetically.
func sortedKeys(m map[string]any) []string {
	rank := map[string]int{"id": 0, "type": 1, "kind": 1, "name": 2, "title": 2}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, okI := rank[keys[i]]
		rj, okJ := rank[keys[j]]
		switch {
		case okI && okJ && ri != rj:
			return ri < rj
		case okI != okJ:
			return okI
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
