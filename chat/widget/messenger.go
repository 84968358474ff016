package widget

import (
	"time"

	"LeadDesk/chat"
)

// Messenger implements chat.Messenger for the site chat widget. Bot
// turns are delivered through the typing simulation: a typing indicator
// goes up, and the message lands after the configured delay. The delay
// is a cancellable session task, so closing the dialog mid-typing drops
// the pending message instead of mutating a torn-down session.
type Messenger struct {
	transcript  *chat.Transcript
	sched       *chat.Scheduler
	sink        chat.EventSink
	typingDelay time.Duration
}

// NewMessenger creates a widget messenger.
func NewMessenger(transcript *chat.Transcript, sched *chat.Scheduler, typingDelay time.Duration) *Messenger {
	return &Messenger{
		transcript:  transcript,
		sched:       sched,
		typingDelay: typingDelay,
	}
}

// SetSink sets the listener for typing indicator events.
func (m *Messenger) SetSink(sink chat.EventSink) {
	m.sink = sink
}

func (m *Messenger) SendText(sessionID, text string) error {
	if m.sink != nil {
		m.sink.TypingChanged(sessionID, true)
	}
	m.sched.Schedule(sessionID, m.typingDelay, func() {
		if m.sink != nil {
			m.sink.TypingChanged(sessionID, false)
		}
		m.transcript.AppendBot(sessionID, text)
	})
	return nil
}
