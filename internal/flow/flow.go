// Package flow drives multi-step conversational data entry. A flow is a
// declarative sequence of steps, each naming the field it populates, the
// prompt to render, and a validator. One engine serves both add and edit
// variants; they differ only in the commit action the caller performs on
// completion.
package flow

import (
	"errors"
	"sync"
)

var (
	// ErrNoSession reports input for a user with no active flow.
	ErrNoSession = errors.New("flow: no active session")

	// ErrBusy reports a concurrent advance on the same user's session. The
	// second action is rejected rather than queued.
	ErrBusy = errors.New("flow: session busy")
)

// Validator checks raw input and converts it to the value stored for the
// step's field. A non-nil error re-prompts the same step.
type Validator func(input string) (any, error)

// Step is one unit of a flow: the field it fills, the prompt shown before
// input, and its validator.
type Step struct {
	Field    string
	Prompt   string
	Validate Validator
}

// Definition is an ordered, immutable list of steps identified by name.
type Definition struct {
	Name  string
	Steps []Step
}

type session struct {
	mu sync.Mutex

	def      *Definition
	stepIdx  int
	fields   map[string]any
	targetID int64
}

// Kind discriminates Advance outcomes.
type Kind int

const (
	// Next means the step was accepted; render Prompt for the next step.
	Next Kind = iota
	// Retry means validation failed; re-render the same step's prompt.
	Retry
	// Done means the final step was accepted; commit Fields.
	Done
)

// Result describes the outcome of advancing a session by one input.
type Result struct {
	Kind   Kind
	Flow   string
	Prompt string
	// Err holds the validation error on Retry.
	Err error
	// Fields is a copy of all collected values, set on Done.
	Fields map[string]any
	// TargetID identifies the entity being edited, zero for add flows.
	TargetID int64
}

// Manager owns the per-user sessions. Sessions for different users are fully
// independent; a user entering a new flow unconditionally replaces any prior
// session.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

// NewManager constructs an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*session)}
}

// Start opens a session for the user and returns the first step's prompt.
// targetID carries the entity id for edit flows and is zero otherwise.
func (m *Manager) Start(userID int64, def *Definition, targetID int64) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = &session{
		def:      def,
		fields:   make(map[string]any, len(def.Steps)),
		targetID: targetID,
	}
	return def.Steps[0].Prompt
}

// InProgress reports whether the user has an active session.
func (m *Manager) InProgress(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[userID]
	return ok
}

// Active returns the name of the user's current flow, if any.
func (m *Manager) Active(userID int64) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[userID]; ok {
		return sess.def.Name, true
	}
	return "", false
}

// Cancel discards the user's session. Nothing collected so far is committed.
func (m *Manager) Cancel(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Advance feeds one input into the user's session. Validation failure keeps
// the session on the same step with previously collected fields intact.
// Completion destroys the session and hands back the collected fields.
func (m *Manager) Advance(userID int64, input string) (Result, error) {
	m.mu.Lock()
	sess, ok := m.sessions[userID]
	m.mu.Unlock()
	if !ok {
		return Result{}, ErrNoSession
	}

	if !sess.mu.TryLock() {
		return Result{}, ErrBusy
	}
	defer sess.mu.Unlock()

	step := sess.def.Steps[sess.stepIdx]
	value, err := step.Validate(input)
	if err != nil {
		return Result{
			Kind:     Retry,
			Flow:     sess.def.Name,
			Prompt:   step.Prompt,
			Err:      err,
			TargetID: sess.targetID,
		}, nil
	}

	sess.fields[step.Field] = value
	sess.stepIdx++

	if sess.stepIdx < len(sess.def.Steps) {
		return Result{
			Kind:     Next,
			Flow:     sess.def.Name,
			Prompt:   sess.def.Steps[sess.stepIdx].Prompt,
			TargetID: sess.targetID,
		}, nil
	}

	fields := make(map[string]any, len(sess.fields))
	for k, v := range sess.fields {
		fields[k] = v
	}

	m.mu.Lock()
	// Only drop the session if it was not replaced while we held its lock.
	if cur, ok := m.sessions[userID]; ok && cur == sess {
		delete(m.sessions, userID)
	}
	m.mu.Unlock()

	return Result{
		Kind:     Done,
		Flow:     sess.def.Name,
		Fields:   fields,
		TargetID: sess.targetID,
	}, nil
}
