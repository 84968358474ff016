package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Engine is the session workflow orchestrator.
type Engine struct {
	workflows map[WorkflowID]Workflow
	storage   SessionStateStorage
	log       *slog.Logger
}

// NewEngine creates a new chat engine.
func NewEngine(storage SessionStateStorage, log *slog.Logger) *Engine {
	return &Engine{
		workflows: make(map[WorkflowID]Workflow),
		storage:   storage,
		log:       log,
	}
}

// RegisterWorkflow adds a workflow to the engine.
func (e *Engine) RegisterWorkflow(w Workflow) {
	e.workflows[w.ID()] = w
	e.log.Info("chat engine: registered workflow", slog.String("workflow_id", string(w.ID())))
}

// StartSession begins a workflow for a fresh session. Entering the
// initial step emits the greeting turn.
func (e *Engine) StartSession(ctx context.Context, m Messenger, sessionID, source string, workflowID WorkflowID) error {
	w, ok := e.workflows[workflowID]
	if !ok {
		return fmt.Errorf("workflow not found: %s", workflowID)
	}

	state := NewSessionState(sessionID, source, workflowID, w.InitialStep())

	if err := e.storage.Save(ctx, state); err != nil {
		return fmt.Errorf("saving initial state: %w", err)
	}

	step, ok := w.GetStep(w.InitialStep())
	if !ok {
		return fmt.Errorf("initial step not found: %s", w.InitialStep())
	}

	e.log.Info("chat engine: starting session",
		slog.String("session_id", sessionID),
		slog.String("workflow_id", string(workflowID)),
	)

	result := step.Enter(ctx, m, state)
	return e.processResult(ctx, m, state, w, result)
}

// HandleMessage processes a user text submission for an open session.
func (e *Engine) HandleMessage(ctx context.Context, m Messenger, sessionID, text string) error {
	state, err := e.storage.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}
	if state == nil {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	w, ok := e.workflows[state.WorkflowID]
	if !ok {
		return fmt.Errorf("workflow not found: %s", state.WorkflowID)
	}

	step, ok := w.GetStep(state.CurrentStep)
	if !ok {
		return fmt.Errorf("step not found: %s", state.CurrentStep)
	}

	input := UserInput{Text: text}
	result := step.HandleInput(ctx, m, state, input)
	return e.processResult(ctx, m, state, w, result)
}

// SessionExists reports whether a session has stored state.
func (e *Engine) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	state, err := e.storage.Load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return state != nil, nil
}

// IsCompleted reports whether a session has reached its terminal step.
func (e *Engine) IsCompleted(ctx context.Context, sessionID string) (bool, error) {
	state, err := e.storage.Load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if state == nil {
		return false, nil
	}
	return state.GetBool("completed"), nil
}

// CloseSession wipes a session's state. The caller is responsible for
// cancelling any scheduled work tied to the session first.
func (e *Engine) CloseSession(ctx context.Context, sessionID string) error {
	return e.storage.Delete(ctx, sessionID)
}

// IdleSessions lists sessions without activity since the given time.
func (e *Engine) IdleSessions(ctx context.Context, olderThan time.Time) ([]string, error) {
	return e.storage.ListIdle(ctx, olderThan)
}

// processResult applies a step result: state merges, transitions, saves.
func (e *Engine) processResult(ctx context.Context, m Messenger, state *SessionState, w Workflow, result StepResult) error {
	if result.Error != nil {
		e.log.Error("chat engine: step error",
			slog.String("session_id", state.SessionID),
			slog.String("step_id", string(state.CurrentStep)),
			slog.String("error", result.Error.Error()),
		)
		return result.Error
	}

	if result.UpdateState != nil {
		state.MergeData(result.UpdateState)
	}
	state.UpdatedAt = time.Now()

	if result.Complete {
		e.log.Info("chat engine: workflow completed",
			slog.String("session_id", state.SessionID),
			slog.String("workflow_id", string(state.WorkflowID)),
		)
		return e.storage.Delete(ctx, state.SessionID)
	}

	// Transition to next step if specified, looping through auto-transitions
	const maxTransitions = 20
	for i := 0; result.NextStep != "" && result.NextStep != state.CurrentStep && i < maxTransitions; i++ {
		state.CurrentStep = result.NextStep

		if err := e.storage.Save(ctx, state); err != nil {
			return fmt.Errorf("saving state after transition: %w", err)
		}

		step, ok := w.GetStep(result.NextStep)
		if !ok {
			return fmt.Errorf("next step not found: %s", result.NextStep)
		}

		e.log.Debug("chat engine: transitioning",
			slog.String("session_id", state.SessionID),
			slog.String("step_id", string(result.NextStep)),
		)

		result = step.Enter(ctx, m, state)
		if result.Error != nil {
			return result.Error
		}

		if result.UpdateState != nil {
			state.MergeData(result.UpdateState)
		}
		state.UpdatedAt = time.Now()

		if result.Complete {
			e.log.Info("chat engine: workflow completed",
				slog.String("session_id", state.SessionID),
				slog.String("workflow_id", string(state.WorkflowID)),
			)
			return e.storage.Delete(ctx, state.SessionID)
		}
	}

	return e.storage.Save(ctx, state)
}
