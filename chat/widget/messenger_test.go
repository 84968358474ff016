package widget

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LeadDesk/chat"
	"LeadDesk/entity"
)

type typingSink struct {
	mu      sync.Mutex
	typing  []bool
	landed  []string
	landers chan struct{}
}

func newTypingSink() *typingSink {
	return &typingSink{landers: make(chan struct{}, 16)}
}

func (s *typingSink) MessageAppended(sessionID string, msg entity.ChatMessage) {
	s.mu.Lock()
	s.landed = append(s.landed, msg.Text)
	s.mu.Unlock()
	s.landers <- struct{}{}
}

func (s *typingSink) StatusAdvanced(sessionID, messageID, status string) {}

func (s *typingSink) TypingChanged(sessionID string, typing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typing = append(s.typing, typing)
}

func (s *typingSink) RedirectReady(sessionID, url string) {}

func (s *typingSink) typingEvents() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.typing...)
}

func TestSendTextSimulatesTyping(t *testing.T) {
	transcript := chat.NewTranscript()
	sched := chat.NewScheduler()
	sink := newTypingSink()
	transcript.SetSink(sink)

	m := NewMessenger(transcript, sched, time.Millisecond)
	m.SetSink(sink)

	require.NoError(t, m.SendText("s1", "olá"))

	select {
	case <-sink.landers:
	case <-time.After(time.Second):
		t.Fatal("message never landed")
	}

	msgs := transcript.Messages("s1")
	require.Len(t, msgs, 1)
	assert.Equal(t, "olá", msgs[0].Text)
	assert.Equal(t, entity.SenderBot, msgs[0].Sender)

	assert.Equal(t, []bool{true, false}, sink.typingEvents())
}

func TestCloseMidTypingDropsPendingMessage(t *testing.T) {
	transcript := chat.NewTranscript()
	sched := chat.NewScheduler()
	sink := newTypingSink()
	transcript.SetSink(sink)

	m := NewMessenger(transcript, sched, 50*time.Millisecond)
	m.SetSink(sink)

	require.NoError(t, m.SendText("s1", "demorada..."))
	sched.CancelSession("s1")

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, transcript.Messages("s1"))
	assert.Equal(t, []bool{true}, sink.typingEvents())
}
