package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LeadDesk/entity"
)

type recordingSink struct {
	appended []entity.ChatMessage
	statuses []string
}

func (r *recordingSink) MessageAppended(sessionID string, msg entity.ChatMessage) {
	r.appended = append(r.appended, msg)
}

func (r *recordingSink) StatusAdvanced(sessionID, messageID, status string) {
	r.statuses = append(r.statuses, status)
}

func (r *recordingSink) TypingChanged(sessionID string, typing bool) {}
func (r *recordingSink) RedirectReady(sessionID, url string)         {}

func TestTranscriptKeepsInsertionOrder(t *testing.T) {
	tr := NewTranscript()

	tr.AppendBot("s1", "olá")
	tr.AppendUser("s1", "oi")
	tr.AppendBot("s1", "qual seu nome?")
	tr.AppendBot("s2", "outra sessão")

	msgs := tr.Messages("s1")
	require.Len(t, msgs, 3)
	assert.Equal(t, []string{"olá", "oi", "qual seu nome?"}, []string{msgs[0].Text, msgs[1].Text, msgs[2].Text})
	assert.Equal(t, entity.SenderBot, msgs[0].Sender)
	assert.Equal(t, entity.SenderUser, msgs[1].Sender)
	assert.Equal(t, entity.StatusSent, msgs[1].DeliveryStatus)
	assert.Empty(t, msgs[0].DeliveryStatus)
}

func TestTranscriptAdvanceStatus(t *testing.T) {
	tr := NewTranscript()
	sink := &recordingSink{}
	tr.SetSink(sink)

	msg := tr.AppendUser("s1", "oi")

	assert.True(t, tr.AdvanceStatus("s1", msg.ID, entity.StatusDelivered))
	assert.True(t, tr.AdvanceStatus("s1", msg.ID, entity.StatusRead))

	// Backwards moves, repeats and unknown ids are no-ops.
	assert.False(t, tr.AdvanceStatus("s1", msg.ID, entity.StatusDelivered))
	assert.False(t, tr.AdvanceStatus("s1", msg.ID, entity.StatusRead))
	assert.False(t, tr.AdvanceStatus("s1", "missing", entity.StatusRead))

	msgs := tr.Messages("s1")
	require.Len(t, msgs, 1)
	assert.Equal(t, entity.StatusRead, msgs[0].DeliveryStatus)

	assert.Equal(t, []string{entity.StatusDelivered, entity.StatusRead}, sink.statuses)
}

func TestTranscriptBotMessageHasNoStatus(t *testing.T) {
	tr := NewTranscript()

	msg := tr.AppendBot("s1", "olá")
	assert.False(t, tr.AdvanceStatus("s1", msg.ID, entity.StatusDelivered))

	msgs := tr.Messages("s1")
	require.Len(t, msgs, 1)
	assert.Empty(t, msgs[0].DeliveryStatus)
}

func TestTranscriptClear(t *testing.T) {
	tr := NewTranscript()

	tr.AppendBot("s1", "olá")
	tr.AppendBot("s2", "olá")

	tr.Clear("s1")

	assert.Empty(t, tr.Messages("s1"))
	assert.Len(t, tr.Messages("s2"), 1)
}

func TestTranscriptNotifiesSinkOnAppend(t *testing.T) {
	tr := NewTranscript()
	sink := &recordingSink{}
	tr.SetSink(sink)

	tr.AppendBot("s1", "olá")
	tr.AppendUser("s1", "oi")

	require.Len(t, sink.appended, 2)
	assert.Equal(t, "olá", sink.appended[0].Text)
	assert.Equal(t, "oi", sink.appended[1].Text)
}
