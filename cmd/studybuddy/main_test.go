package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectLookupArgs(t *testing.T) {
	t.Parallel()

	const id = "3f2b8c1e-9a4d-4c4e-8f7a-2b1c0d9e8f7a"
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"studybuddy"},
			want: []string{"studybuddy"},
		},
		{
			name: "id first token",
			in:   []string{"studybuddy", id},
			want: []string{"studybuddy", "show", id},
		},
		{
			name: "id after value flag",
			in:   []string{"studybuddy", "--data-dir", "./tmp", id},
			want: []string{"studybuddy", "--data-dir", "./tmp", "show", id},
		},
		{
			name: "id after equals flag",
			in:   []string{"studybuddy", "--backend=file", id},
			want: []string{"studybuddy", "--backend=file", "show", id},
		},
		{
			name: "id after bool flag",
			in:   []string{"studybuddy", "--pretty", id},
			want: []string{"studybuddy", "--pretty", "show", id},
		},
		{
			name: "id after double dash",
			in:   []string{"studybuddy", "--", id},
			want: []string{"studybuddy", "--", "show", id},
		},
		{
			name: "subcommand not rewritten",
			in:   []string{"studybuddy", "notes", "show", id},
			want: []string{"studybuddy", "notes", "show", id},
		},
		{
			name: "non-id not rewritten",
			in:   []string{"studybuddy", "wat"},
			want: []string{"studybuddy", "wat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectLookupArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
