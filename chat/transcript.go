package chat

import (
	"sync"

	"LeadDesk/entity"
)

// Transcript is the append-only message log for chat sessions. Messages
// are never removed individually; the whole session log is cleared when
// the owning dialog closes.
type Transcript struct {
	mu   sync.RWMutex
	logs map[string][]*entity.ChatMessage
	sink EventSink
}

// NewTranscript creates an empty transcript store.
func NewTranscript() *Transcript {
	return &Transcript{logs: make(map[string][]*entity.ChatMessage)}
}

// SetSink sets the listener notified on every append/update.
func (t *Transcript) SetSink(sink EventSink) {
	t.sink = sink
}

// AppendBot appends a bot message to a session's log.
func (t *Transcript) AppendBot(sessionID, text string) *entity.ChatMessage {
	msg := entity.NewBotMessage(sessionID, text)
	t.append(sessionID, msg)
	return msg
}

// AppendUser appends a user message in the "sent" state and returns it
// so delivery status updates can reference its id.
func (t *Transcript) AppendUser(sessionID, text string) *entity.ChatMessage {
	msg := entity.NewUserMessage(sessionID, text)
	t.append(sessionID, msg)
	return msg
}

func (t *Transcript) append(sessionID string, msg *entity.ChatMessage) {
	t.mu.Lock()
	t.logs[sessionID] = append(t.logs[sessionID], msg)
	t.mu.Unlock()

	if t.sink != nil {
		t.sink.MessageAppended(sessionID, *msg)
	}
}

// AdvanceStatus moves a user message's delivery status forward in place.
// Unknown ids and backwards moves are no-ops.
func (t *Transcript) AdvanceStatus(sessionID, messageID, status string) bool {
	t.mu.Lock()
	var advanced bool
	for _, msg := range t.logs[sessionID] {
		if msg.ID == messageID {
			advanced = msg.AdvanceStatus(status)
			break
		}
	}
	t.mu.Unlock()

	if advanced && t.sink != nil {
		t.sink.StatusAdvanced(sessionID, messageID, status)
	}
	return advanced
}

// Messages returns a copy of the session's log in insertion order.
func (t *Transcript) Messages(sessionID string) []entity.ChatMessage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	log := t.logs[sessionID]
	out := make([]entity.ChatMessage, 0, len(log))
	for _, msg := range log {
		out = append(out, *msg)
	}
	return out
}

// Clear drops the whole log for a session.
func (t *Transcript) Clear(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.logs, sessionID)
}
