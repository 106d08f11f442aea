package chat

import (
	"time"

	"github.com/google/uuid"
)

// Message is one entry of the chat transcript
type Message struct {
	ID        string
	Role      string // "user" or "assistant"
	Content   string
	Timestamp time.Time
}

func newMessage(role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// Message types for tea.Cmd async operations

// responseMsg carries the assistant's answer to a submitted command
type responseMsg struct {
	content string
}

// recordStartedMsg reports the outcome of starting a recording
type recordStartedMsg struct {
	err error
}

// transcriptMsg carries the text of a finished recording, or the reason
// the take produced none
type transcriptMsg struct {
	text string
	err  error
}

// autoStopMsg fires when the recorder detected end of speech
type autoStopMsg struct{}
