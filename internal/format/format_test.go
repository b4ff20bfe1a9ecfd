package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": []int{1, 2}}, "json", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "{\"data\":[1,2]}\n" {
		t.Fatalf("unexpected json %q", got)
	}

	buf.Reset()
	_ = Write(&buf, map[string]any{"a": 1}, "", true)
	if got := buf.String(); got != "{\n  \"a\": 1\n}\n" {
		t.Fatalf("unexpected pretty json %q", got)
	}

	if err := Write(&buf, 1, "edn", false); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestWriteText(t *testing.T) {
	type item struct {
		Title string   `json:"title"`
		ID    string   `json:"id"`
		Tags  []string `json:"tags"`
		Due   *string  `json:"due"`
		Done  bool     `json:"done"`
		Count int64    `json:"count"`
	}
	v := map[string]any{
		"data": []item{{ID: "a1", Title: "Essay\nDraft", Tags: []string{"hw"}, Count: 1700000000000}},
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, v, TextOptions{}); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	want := strings.Join([]string{
		"data:",
		"  -",
		"    id: a1",
		"    title: Essay Draft",
		"    count: 1700000000000",
		"    done: false",
		"    due: -",
		"    tags:",
		"      - hw",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("unexpected text output:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteText_Truncates(t *testing.T) {
	var buf bytes.Buffer
	_ = WriteText(&buf, map[string]string{"content": strings.Repeat("x", 50)}, TextOptions{MaxValueWidth: 10})
	if got := buf.String(); got != "content: xxxxxxxxx…\n" {
		t.Fatalf("unexpected truncation %q", got)
	}
}
