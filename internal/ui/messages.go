package ui

import (
	"sync"
	"time"
)

// Message is a status line message with timestamp
type Message struct {
	Text      string
	Error     bool
	Timestamp time.Time
}

// MessageLogger tracks the last N status messages. Load callbacks may add
// messages from other goroutines.
type MessageLogger struct {
	messages []*Message
	maxSize  int
	mu       sync.Mutex
}

// NewMessageLogger creates a new message logger with the specified max size
func NewMessageLogger(maxSize int) *MessageLogger {
	return &MessageLogger{
		messages: make([]*Message, 0, maxSize),
		maxSize:  maxSize,
	}
}

// AddMessage adds an informational message
func (ml *MessageLogger) AddMessage(text string) {
	ml.add(text, false)
}

// AddError adds an error message
func (ml *MessageLogger) AddError(text string) {
	ml.add(text, true)
}

func (ml *MessageLogger) add(text string, isError bool) {
	if text == "" {
		return
	}
	ml.mu.Lock()
	defer ml.mu.Unlock()

	ml.messages = append(ml.messages, &Message{
		Text:      text,
		Error:     isError,
		Timestamp: time.Now(),
	})
	if len(ml.messages) > ml.maxSize {
		ml.messages = ml.messages[len(ml.messages)-ml.maxSize:]
	}
}

// Last returns the newest message, or nil
func (ml *MessageLogger) Last() *Message {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	if len(ml.messages) == 0 {
		return nil
	}
	return ml.messages[len(ml.messages)-1]
}

// GetMessagesReverse returns a copy of all messages, newest first
func (ml *MessageLogger) GetMessagesReverse() []*Message {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	result := make([]*Message, len(ml.messages))
	for i, msg := range ml.messages {
		result[len(ml.messages)-1-i] = msg
	}
	return result
}

// Count returns the number of messages in the logger
func (ml *MessageLogger) Count() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.messages)
}
