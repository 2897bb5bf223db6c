package identity_test

import (
	"strings"
	"testing"

	"chorale/internal/identity"
)

func TestNewProducesUppercaseHyphenatedIDs(t *testing.T) {
	id := identity.New()
	if len(id) != 36 {
		t.Fatalf("unexpected identifier length: %q", id)
	}
	if id != strings.ToUpper(id) {
		t.Fatalf("identifier not uppercase: %q", id)
	}
	if strings.Count(id, "-") != 4 {
		t.Fatalf("identifier not hyphenated: %q", id)
	}
}

func TestNewIsUniqueAcrossCalls(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := identity.New()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate identifier issued: %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestSequenceIsDeterministic(t *testing.T) {
	a, b := identity.Sequence(), identity.Sequence()
	for i := 0; i < 5; i++ {
		x, y := a(), b()
		if x != y {
			t.Fatalf("sequence diverged at %d: %s vs %s", i, x, y)
		}
		if x != strings.ToUpper(x) {
			t.Fatalf("sequence identifier not uppercase: %q", x)
		}
	}
}
