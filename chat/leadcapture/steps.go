package leadcapture

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"LeadDesk/chat"
	"LeadDesk/entity"
)

// GreetingStep sends the welcome message asking for the visitor's name.
type GreetingStep struct{}

func (s *GreetingStep) ID() chat.StepID { return StepGreeting }

func (s *GreetingStep) Enter(ctx context.Context, m chat.Messenger, state *chat.SessionState) chat.StepResult {
	if err := m.SendText(state.SessionID, "Olá! 👋 Que bom ter você por aqui. Para começarmos, qual é o seu nome?"); err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{}
}

func (s *GreetingStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.SessionState, input chat.UserInput) chat.StepResult {
	return chat.StepResult{
		NextStep:    StepAskEmail,
		UpdateState: map[string]any{KeyName: input.Text},
	}
}

// AskEmailStep captures the visitor's e-mail.
type AskEmailStep struct{}

func (s *AskEmailStep) ID() chat.StepID { return StepAskEmail }

func (s *AskEmailStep) Enter(ctx context.Context, m chat.Messenger, state *chat.SessionState) chat.StepResult {
	name := state.GetString(KeyName)
	if err := m.SendText(state.SessionID, fmt.Sprintf("Prazer, %s! Qual é o seu melhor e-mail?", name)); err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{}
}

func (s *AskEmailStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.SessionState, input chat.UserInput) chat.StepResult {
	return chat.StepResult{
		NextStep:    StepAskPhone,
		UpdateState: map[string]any{KeyEmail: input.Text},
	}
}

// AskPhoneStep captures the visitor's phone number.
type AskPhoneStep struct{}

func (s *AskPhoneStep) ID() chat.StepID { return StepAskPhone }

func (s *AskPhoneStep) Enter(ctx context.Context, m chat.Messenger, state *chat.SessionState) chat.StepResult {
	if err := m.SendText(state.SessionID, "Ótimo! Agora me informe seu telefone com DDD:"); err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{}
}

func (s *AskPhoneStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.SessionState, input chat.UserInput) chat.StepResult {
	return chat.StepResult{
		NextStep:    StepAskIntent,
		UpdateState: map[string]any{KeyPhone: input.Text},
	}
}

// AskIntentStep captures what the visitor is looking for.
type AskIntentStep struct{}

func (s *AskIntentStep) ID() chat.StepID { return StepAskIntent }

func (s *AskIntentStep) Enter(ctx context.Context, m chat.Messenger, state *chat.SessionState) chat.StepResult {
	if err := m.SendText(state.SessionID, "Para finalizar, me conte o que você procura. Pode escrever à vontade:"); err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{}
}

func (s *AskIntentStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.SessionState, input chat.UserInput) chat.StepResult {
	return chat.StepResult{
		NextStep:    StepDone,
		UpdateState: map[string]any{KeyMessage: input.Text},
	}
}

// DoneStep is the terminal step. Entering it sends the closing statement and
// hands the accumulated lead to the dispatcher. The step never
// transitions again; input on a completed session is swallowed until
// the dialog is closed and a fresh session starts.
type DoneStep struct {
	dispatcher LeadDispatcher
	log        *slog.Logger
}

func (s *DoneStep) ID() chat.StepID { return StepDone }

func (s *DoneStep) Enter(ctx context.Context, m chat.Messenger, state *chat.SessionState) chat.StepResult {
	name := state.GetString(KeyName)
	closing := fmt.Sprintf("Perfeito, %s! Recebi suas informações. Em instantes você será direcionado para o nosso WhatsApp para continuar o atendimento. 🏠", name)
	if err := m.SendText(state.SessionID, closing); err != nil {
		return chat.StepResult{Error: err}
	}

	lead := entity.Lead{
		Name:      state.GetString(KeyName),
		Email:     state.GetString(KeyEmail),
		Phone:     state.GetString(KeyPhone),
		Message:   state.GetString(KeyMessage),
		Source:    state.Source,
		CreatedAt: time.Now(),
	}

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, state.SessionID, lead)
	} else if s.log != nil {
		s.log.Warn("lead capture: no dispatcher configured", slog.String("session_id", state.SessionID))
	}

	return chat.StepResult{
		UpdateState: map[string]any{KeyCompleted: true},
	}
}

func (s *DoneStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.SessionState, input chat.UserInput) chat.StepResult {
	return chat.StepResult{}
}
