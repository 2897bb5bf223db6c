package textutil_test

import (
	"reflect"
	"testing"

	"chorale/internal/textutil"
)

func TestSortNaturalOrdersDigitRunsNumerically(t *testing.T) {
	names := []string{"10.jpg", "2.jpg", "1.jpg"}
	textutil.SortNatural(names)
	want := []string{"1.jpg", "2.jpg", "10.jpg"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("unexpected order: %v", names)
	}
}

func TestSortNaturalMixedNames(t *testing.T) {
	names := []string{"slide12", "slide2", "intro", "Slide1", "slide2b"}
	textutil.SortNatural(names)
	want := []string{"intro", "Slide1", "slide2", "slide2b", "slide12"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("unexpected order: %v", names)
	}
}

func TestNaturalLessLeadingZeros(t *testing.T) {
	if !textutil.NaturalLess("007", "8") {
		t.Fatal("expected 007 < 8 numerically")
	}
	if textutil.NaturalLess("10", "10") {
		t.Fatal("equal strings must not compare less")
	}
}

func TestTitleFromName(t *testing.T) {
	cases := map[string]string{
		"opening_song":   "Opening Song",
		"week-12_intro":  "Week 12 Intro",
		"ALREADY":        "Already",
		"mixed_CASE-one": "Mixed Case One",
	}
	for in, want := range cases {
		if got := textutil.TitleFromName(in); got != want {
			t.Errorf("TitleFromName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeFileName(t *testing.T) {
	if got := textutil.SanitizeFileName("a/b:c*d?e"); got != "a-b-c-de" {
		t.Fatalf("unexpected sanitized name: %q", got)
	}
}
