package leadcapture

import (
	"context"
	"log/slog"

	"LeadDesk/chat"
	"LeadDesk/entity"
)

const (
	WorkflowID chat.WorkflowID = "leadcapture"
)

// Step IDs
const (
	StepGreeting  chat.StepID = "greeting"
	StepAskEmail  chat.StepID = "ask_email"
	StepAskPhone  chat.StepID = "ask_phone"
	StepAskIntent chat.StepID = "ask_intent"
	StepDone      chat.StepID = "done"
)

// State data keys
const (
	KeyName      = "name"
	KeyEmail     = "email"
	KeyPhone     = "phone"
	KeyMessage   = "message"
	KeyCompleted = "completed"
)

// LeadDispatcher receives the completed lead. Dispatch must never block
// the flow on delivery outcome; failures are the dispatcher's problem.
type LeadDispatcher interface {
	Dispatch(ctx context.Context, sessionID string, lead entity.Lead)
}

// Workflow implements the guided lead-capture flow: five linear steps,
// one free-text answer per prompt, dispatch on completion. Answers are
// accepted verbatim; validation happens on the relay boundary, not here.
type Workflow struct {
	steps map[chat.StepID]chat.Step
}

func NewWorkflow(dispatcher LeadDispatcher, log *slog.Logger) *Workflow {
	w := &Workflow{
		steps: make(map[chat.StepID]chat.Step),
	}

	w.steps[StepGreeting] = &GreetingStep{}
	w.steps[StepAskEmail] = &AskEmailStep{}
	w.steps[StepAskPhone] = &AskPhoneStep{}
	w.steps[StepAskIntent] = &AskIntentStep{}
	w.steps[StepDone] = &DoneStep{dispatcher: dispatcher, log: log}

	return w
}

func (w *Workflow) ID() chat.WorkflowID      { return WorkflowID }
func (w *Workflow) InitialStep() chat.StepID { return StepGreeting }

func (w *Workflow) GetStep(id chat.StepID) (chat.Step, bool) {
	step, ok := w.steps[id]
	return step, ok
}
