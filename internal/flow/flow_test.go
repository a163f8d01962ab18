package flow

import (
	"errors"
	"testing"
	"time"
)

func eventDef() *Definition {
	return &Definition{
		Name: "add_event",
		Steps: []Step{
			{Field: "title", Prompt: "title?", Validate: Text},
			{Field: "date_time", Prompt: "date?", Validate: DateTime},
			{Field: "location", Prompt: "where?", Validate: Text},
		},
	}
}

func TestAdvanceSequence(t *testing.T) {
	m := NewManager()
	prompt := m.Start(7, eventDef(), 0)
	if prompt != "title?" {
		t.Fatalf("first prompt = %q", prompt)
	}

	res, err := m.Advance(7, "Go meetup")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if res.Kind != Next || res.Prompt != "date?" {
		t.Fatalf("unexpected result: %+v", res)
	}

	res, err = m.Advance(7, "24.12.2026 19:00")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if res.Kind != Next || res.Prompt != "where?" {
		t.Fatalf("unexpected result: %+v", res)
	}

	res, err = m.Advance(7, "Online")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if res.Kind != Done {
		t.Fatalf("expected Done, got %+v", res)
	}
	if res.Fields["title"] != "Go meetup" || res.Fields["location"] != "Online" {
		t.Fatalf("fields = %+v", res.Fields)
	}
	dt, ok := res.Fields["date_time"].(time.Time)
	if !ok || dt.Day() != 24 || dt.Month() != time.December || dt.Hour() != 19 {
		t.Fatalf("date_time = %v", res.Fields["date_time"])
	}
	if m.InProgress(7) {
		t.Fatal("session should be gone after Done")
	}
}

func TestRetryPreservesCollectedFields(t *testing.T) {
	m := NewManager()
	m.Start(7, eventDef(), 0)

	if _, err := m.Advance(7, "Go meetup"); err != nil {
		t.Fatalf("advance: %v", err)
	}

	res, err := m.Advance(7, "tomorrow evening")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if res.Kind != Retry || res.Err == nil || res.Prompt != "date?" {
		t.Fatalf("unexpected result: %+v", res)
	}

	// Recover with valid input; the title must survive.
	if _, err := m.Advance(7, "24.12.2026 19:00"); err != nil {
		t.Fatalf("advance: %v", err)
	}
	res, err = m.Advance(7, "Online")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if res.Kind != Done || res.Fields["title"] != "Go meetup" {
		t.Fatalf("fields after retry = %+v", res.Fields)
	}
}

func TestCancelDiscardsSession(t *testing.T) {
	m := NewManager()
	m.Start(7, eventDef(), 0)
	if _, err := m.Advance(7, "Go meetup"); err != nil {
		t.Fatalf("advance: %v", err)
	}

	m.Cancel(7)
	if m.InProgress(7) {
		t.Fatal("session should be gone after cancel")
	}
	if _, err := m.Advance(7, "anything"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestStartReplacesExistingSession(t *testing.T) {
	m := NewManager()
	m.Start(7, eventDef(), 0)
	if _, err := m.Advance(7, "Go meetup"); err != nil {
		t.Fatalf("advance: %v", err)
	}

	other := &Definition{
		Name:  "add_mentor",
		Steps: []Step{{Field: "name", Prompt: "name?", Validate: Text}},
	}
	m.Start(7, other, 0)

	name, ok := m.Active(7)
	if !ok || name != "add_mentor" {
		t.Fatalf("active flow = %q, %v", name, ok)
	}

	res, err := m.Advance(7, "Aisha")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if res.Kind != Done || res.Flow != "add_mentor" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if _, leaked := res.Fields["title"]; leaked {
		t.Fatal("fields from the replaced session leaked")
	}
}

func TestConcurrentAdvanceRejected(t *testing.T) {
	m := NewManager()

	// The validator re-enters Advance for the same user while the session
	// lock is held, which is exactly what a racing second message does.
	var reentrantErr error
	def := &Definition{
		Name: "probe",
		Steps: []Step{{
			Field:  "v",
			Prompt: "?",
			Validate: func(input string) (any, error) {
				_, reentrantErr = m.Advance(7, "second")
				return input, nil
			},
		}},
	}
	m.Start(7, def, 0)

	if _, err := m.Advance(7, "first"); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !errors.Is(reentrantErr, ErrBusy) {
		t.Fatalf("expected ErrBusy for concurrent advance, got %v", reentrantErr)
	}
}

func TestUsersAreIndependent(t *testing.T) {
	m := NewManager()
	m.Start(1, eventDef(), 0)
	m.Start(2, eventDef(), 0)

	if _, err := m.Advance(1, "First"); err != nil {
		t.Fatalf("advance user 1: %v", err)
	}
	m.Cancel(2)

	if !m.InProgress(1) {
		t.Fatal("user 1 session lost")
	}
	if m.InProgress(2) {
		t.Fatal("user 2 session should be cancelled")
	}
}

func TestEditFlowCarriesTargetID(t *testing.T) {
	m := NewManager()
	def := &Definition{
		Name:  "edit_event.title",
		Steps: []Step{{Field: "title", Prompt: "new title?", Validate: Text}},
	}
	m.Start(7, def, 42)

	res, err := m.Advance(7, "Renamed")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if res.Kind != Done || res.TargetID != 42 {
		t.Fatalf("unexpected result: %+v", res)
	}
}
