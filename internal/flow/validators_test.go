package flow

import (
	"testing"
	"time"
)

func TestTextRejectsEmpty(t *testing.T) {
	if _, err := Text("   "); err == nil {
		t.Fatal("expected error for blank input")
	}
	v, err := Text("  hello ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "hello" {
		t.Fatalf("value = %q", v)
	}
}

func TestDateTimeFormat(t *testing.T) {
	v, err := DateTime("05.03.2026 18:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := v.(time.Time)
	want := time.Date(2026, 3, 5, 18, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("parsed %v, want %v", got, want)
	}

	for _, bad := range []string{"2026-03-05 18:30", "05.03.2026", "tomorrow", ""} {
		if _, err := DateTime(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestMentorChoice(t *testing.T) {
	v, err := MentorChoice("none")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(*int64) != nil {
		t.Fatalf("expected nil mentor, got %v", v)
	}

	v, err = MentorChoice("17")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id := v.(*int64)
	if id == nil || *id != 17 {
		t.Fatalf("mentor id = %v", id)
	}

	if _, err := MentorChoice("abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}
