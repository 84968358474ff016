package core

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LeadDesk/chat"
	"LeadDesk/chat/leadcapture"
	"LeadDesk/entity"
	"LeadDesk/internal/config"
)

// directMessenger lands bot turns in the transcript immediately,
// skipping the typing simulation.
type directMessenger struct {
	transcript *chat.Transcript
}

func (m *directMessenger) SendText(sessionID, text string) error {
	m.transcript.AppendBot(sessionID, text)
	return nil
}

func newTestCore(t *testing.T) *Core {
	t.Helper()

	conf := &config.Config{}
	conf.LeadWebhook.Source = "contact_page"
	conf.Chat.DeliveredDelay = time.Millisecond
	conf.Chat.ReadDelay = 2 * time.Millisecond
	conf.Chat.SessionTTL = 24 * time.Hour

	c := New(conf, slog.New(slog.DiscardHandler))

	transcript := chat.NewTranscript()
	sched := chat.NewScheduler()
	messenger := &directMessenger{transcript: transcript}

	engine := chat.NewEngine(chat.NewMemoryStorage(), slog.New(slog.DiscardHandler))
	engine.RegisterWorkflow(leadcapture.NewWorkflow(c, slog.New(slog.DiscardHandler)))

	c.SetChat(engine, transcript, sched, messenger)
	return c
}

func runFlow(t *testing.T, c *Core, answers []string) string {
	t.Helper()
	ctx := context.Background()

	sessionID, err := c.StartSession(ctx, "")
	require.NoError(t, err)

	for _, text := range answers {
		require.NoError(t, c.SubmitMessage(ctx, sessionID, text))
	}
	return sessionID
}

func TestStartSessionUsesDefaultSource(t *testing.T) {
	c := newTestCore(t)

	sessionID := runFlow(t, c, nil)
	assert.NotEmpty(t, sessionID)

	msgs, err := c.SessionTranscript(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, entity.SenderBot, msgs[0].Sender)
}

func TestSubmitMessageUnknownSession(t *testing.T) {
	c := newTestCore(t)

	err := c.SubmitMessage(context.Background(), "missing", "oi")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCompletedSessionRefusesInput(t *testing.T) {
	c := newTestCore(t)

	sessionID := runFlow(t, c, []string{"João", "joao@gmail.com", "47999998888", "casa na praia"})

	err := c.SubmitMessage(context.Background(), sessionID, "mais uma coisa")
	assert.ErrorIs(t, err, ErrSessionCompleted)
}

func TestTranscriptAlternatesInStepOrder(t *testing.T) {
	c := newTestCore(t)

	sessionID := runFlow(t, c, []string{"João", "joao@gmail.com"})

	msgs, err := c.SessionTranscript(context.Background(), sessionID)
	require.NoError(t, err)
	// greeting, name, email prompt, email, phone prompt
	require.Len(t, msgs, 5)
	assert.Equal(t, entity.SenderBot, msgs[0].Sender)
	assert.Equal(t, "João", msgs[1].Text)
	assert.Equal(t, entity.SenderUser, msgs[1].Sender)
	assert.Equal(t, "joao@gmail.com", msgs[3].Text)
}

func TestUserMessageStatusAdvances(t *testing.T) {
	c := newTestCore(t)

	sessionID := runFlow(t, c, []string{"João"})

	assert.Eventually(t, func() bool {
		msgs, err := c.SessionTranscript(context.Background(), sessionID)
		if err != nil || len(msgs) < 2 {
			return false
		}
		return msgs[1].DeliveryStatus == entity.StatusRead
	}, time.Second, 5*time.Millisecond)
}

func TestCloseSessionWipesEverything(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	sessionID := runFlow(t, c, []string{"João"})

	require.NoError(t, c.CloseSession(ctx, sessionID))

	_, err := c.SessionTranscript(ctx, sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	err = c.SubmitMessage(ctx, sessionID, "oi")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Reopening starts a brand new run.
	fresh := runFlow(t, c, nil)
	assert.NotEqual(t, sessionID, fresh)

	msgs, err := c.SessionTranscript(ctx, fresh)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}
