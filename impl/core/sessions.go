package core

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"LeadDesk/chat/leadcapture"
	"LeadDesk/entity"
	"LeadDesk/internal/lib/sl"
	"LeadDesk/internal/ws"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionCompleted = errors.New("session already completed")
)

// StartSession opens a fresh dialog session and schedules the greeting.
// Each open dialog gets its own session; reopening always starts clean.
func (c *Core) StartSession(ctx context.Context, source string) (string, error) {
	if source == "" {
		source = c.conf.LeadWebhook.Source
	}

	sessionID := uuid.NewString()
	if err := c.engine.StartSession(ctx, c.messenger, sessionID, source, leadcapture.WorkflowID); err != nil {
		return "", err
	}

	c.log.With(
		slog.String("session_id", sessionID),
		slog.String("source", source),
	).Info("chat session started")
	return sessionID, nil
}

// SubmitMessage accepts a user turn: the message lands in the transcript
// as "sent", its receipt choreography is scheduled, and the workflow
// advances. Completed sessions refuse further input.
func (c *Core) SubmitMessage(ctx context.Context, sessionID, text string) error {
	exists, err := c.engine.SessionExists(ctx, sessionID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSessionNotFound
	}

	completed, err := c.engine.IsCompleted(ctx, sessionID)
	if err != nil {
		return err
	}
	if completed {
		return ErrSessionCompleted
	}

	msg := c.transcript.AppendUser(sessionID, text)
	msgID := msg.ID
	c.sched.Schedule(sessionID, c.conf.Chat.DeliveredDelay, func() {
		c.transcript.AdvanceStatus(sessionID, msgID, entity.StatusDelivered)
	})
	c.sched.Schedule(sessionID, c.conf.Chat.ReadDelay, func() {
		c.transcript.AdvanceStatus(sessionID, msgID, entity.StatusRead)
	})

	return c.engine.HandleMessage(ctx, c.messenger, sessionID, text)
}

// SessionTranscript returns the session's message log in order.
func (c *Core) SessionTranscript(ctx context.Context, sessionID string) ([]entity.ChatMessage, error) {
	exists, err := c.engine.SessionExists(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSessionNotFound
	}
	return c.transcript.Messages(sessionID), nil
}

// CloseSession tears a session down: outstanding timers are cancelled
// first, then the transcript and state are wiped. A dialog reopened
// after this starts a brand new run with no residue.
func (c *Core) CloseSession(ctx context.Context, sessionID string) error {
	c.sched.CancelSession(sessionID)
	c.transcript.Clear(sessionID)

	if err := c.engine.CloseSession(ctx, sessionID); err != nil {
		return err
	}

	c.log.With(slog.String("session_id", sessionID)).Info("chat session closed")
	return nil
}

// Dispatch implements leadcapture.LeadDispatcher: the lead goes out the
// fire-and-forget webhook/redirect path, plus best-effort archive and
// notifications. None of the side channels can fail the flow.
func (c *Core) Dispatch(ctx context.Context, sessionID string, lead entity.Lead) {
	if c.leadSender != nil {
		c.leadSender.Dispatch(ctx, sessionID, lead)
	}

	go func() {
		if c.repo != nil {
			if err := c.repo.SaveLead(context.Background(), lead); err != nil {
				c.log.With(sl.Err(err)).Error("archive lead")
			}
		}
		if c.notifier != nil {
			if err := c.notifier.NotifyLead(lead); err != nil {
				c.log.With(sl.Err(err)).Error("notify lead")
			}
		}
		if c.sheets != nil {
			if err := c.sheets.AppendLead(context.Background(), lead); err != nil {
				c.log.With(sl.Err(err)).Error("log lead to sheet")
			}
		}
	}()
}

// Event sink: every observable session event is fanned out to WebSocket
// clients, and transcript mutations are archived when a repository is
// configured.

func (c *Core) MessageAppended(sessionID string, msg entity.ChatMessage) {
	if c.hub != nil {
		c.hub.Broadcast(&ws.Event{Type: "new_message", SessionID: sessionID, Data: msg})
	}
	if c.repo != nil {
		go func() {
			if err := c.repo.SaveChatMessage(context.Background(), msg); err != nil {
				c.log.With(sl.Err(err)).Error("archive chat message")
			}
		}()
	}
}

func (c *Core) StatusAdvanced(sessionID, messageID, status string) {
	if c.hub != nil {
		c.hub.Broadcast(&ws.Event{
			Type:      "status_update",
			SessionID: sessionID,
			Data:      map[string]string{"message_id": messageID, "status": status},
		})
	}
	if c.repo != nil {
		go func() {
			if err := c.repo.UpdateChatMessageStatus(context.Background(), sessionID, messageID, status); err != nil {
				c.log.With(sl.Err(err)).Error("archive status update")
			}
		}()
	}
}

func (c *Core) TypingChanged(sessionID string, typing bool) {
	if c.hub != nil {
		c.hub.Broadcast(&ws.Event{
			Type:      "typing",
			SessionID: sessionID,
			Data:      map[string]bool{"typing": typing},
		})
	}
}

func (c *Core) RedirectReady(sessionID, url string) {
	if c.hub != nil {
		c.hub.Broadcast(&ws.Event{
			Type:      "redirect",
			SessionID: sessionID,
			Data:      map[string]string{"url": url},
		})
	}
	c.log.With(slog.String("session_id", sessionID)).Info("redirect dispatched")
}
