package docs

import (
	"reflect"
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	got := Topics()
	want := []string{"assistant", "keys", "quickstart", "storage"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Topics() = %v, want %v", got, want)
	}
}

func TestGet(t *testing.T) {
	md, ok := Get(" Quickstart ")
	if !ok || !strings.HasPrefix(md, "# Quickstart") {
		t.Fatalf("Get(quickstart) = %q, %v", md, ok)
	}
	for _, bad := range []string{"", "nope", "../docs", "content/keys"} {
		if _, ok := Get(bad); ok {
			t.Fatalf("Get(%q) should fail", bad)
		}
	}
}
