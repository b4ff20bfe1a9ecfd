package store

import "testing"

func TestUUIDGenerator_ProducesDistinctValidIDs(t *testing.T) {
	g := UUIDGenerator{}
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		id := g.NewID()
		if !LooksLikeID(id) {
			t.Fatalf("expected uuid, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q after %d draws", id, i)
		}
		seen[id] = true
	}
}

func TestSequenceGenerator_IsMonotonic(t *testing.T) {
	g := &SequenceGenerator{Prefix: "t"}
	if got := g.NewID(); got != "t-1" {
		t.Fatalf("expected t-1, got %q", got)
	}
	if got := g.NewID(); got != "t-2" {
		t.Fatalf("expected t-2, got %q", got)
	}
	if LooksLikeID("t-3") {
		t.Fatalf("sequence ids must not look like uuids")
	}
}
