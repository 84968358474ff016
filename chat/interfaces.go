package chat

import (
	"context"
	"time"

	"LeadDesk/entity"
)

// StepID is a unique identifier for a step within a workflow.
type StepID string

// WorkflowID is a unique identifier for a workflow.
type WorkflowID string

// StepResult represents the outcome of handling an event in a step.
type StepResult struct {
	NextStep    StepID
	UpdateState map[string]any
	Complete    bool
	Error       error
}

// Step defines the interface for a single workflow step.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() StepID

	// Enter is called when the session enters this step.
	Enter(ctx context.Context, m Messenger, state *SessionState) StepResult

	// HandleInput processes a user text submission.
	HandleInput(ctx context.Context, m Messenger, state *SessionState, input UserInput) StepResult
}

// Workflow defines the interface for a complete workflow.
type Workflow interface {
	// ID returns the unique identifier for this workflow.
	ID() WorkflowID

	// InitialStep returns the first step of the workflow.
	InitialStep() StepID

	// GetStep returns a step by its ID.
	GetStep(id StepID) (Step, bool)
}

// Messenger delivers bot turns to the session's presentation surface.
type Messenger interface {
	SendText(sessionID, text string) error
}

// UserInput represents a normalized submission from the widget.
type UserInput struct {
	Text string
}

// SessionStateStorage handles persistence of session states.
type SessionStateStorage interface {
	Save(ctx context.Context, state *SessionState) error
	Load(ctx context.Context, sessionID string) (*SessionState, error)
	Delete(ctx context.Context, sessionID string) error
	ListIdle(ctx context.Context, olderThan time.Time) ([]string, error)
}

// EventSink receives observable session events for broadcast/persistence.
type EventSink interface {
	MessageAppended(sessionID string, msg entity.ChatMessage)
	StatusAdvanced(sessionID, messageID, status string)
	TypingChanged(sessionID string, typing bool)
	RedirectReady(sessionID, url string)
}
