package models

import "testing"

func TestParseProjectStatus(t *testing.T) {
	if got := ParseProjectStatus("development"); got != StatusDevelopment {
		t.Fatalf("got %q", got)
	}
	if got := ParseProjectStatus("paused"); got != StatusUnknown {
		t.Fatalf("unrecognized status parsed to %q", got)
	}
	if got := ParseProjectStatus(""); got != StatusUnknown {
		t.Fatalf("empty status parsed to %q", got)
	}
}

func TestParseLectureCategory(t *testing.T) {
	if got := ParseLectureCategory("Security"); got != CategorySecurity {
		t.Fatalf("got %q", got)
	}
	if got := ParseLectureCategory("security"); got != CategoryUncategorized {
		t.Fatalf("category match must be exact, got %q", got)
	}
	if got := ParseLectureCategory("Cooking"); got != CategoryUncategorized {
		t.Fatalf("unknown category parsed to %q", got)
	}
}
