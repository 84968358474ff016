package session

import (
	"context"

	"LeadDesk/entity"
)

type Core interface {
	StartSession(ctx context.Context, source string) (string, error)
	SubmitMessage(ctx context.Context, sessionID, text string) error
	SessionTranscript(ctx context.Context, sessionID string) ([]entity.ChatMessage, error)
	CloseSession(ctx context.Context, sessionID string) error
}
