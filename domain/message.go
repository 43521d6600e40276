// Package domain contains core concepts of the frog pond.
// This file defines Message events and related rules.
// Messages are immutable once appended to the log.
package domain

import (
	"github.com/google/uuid"
	"time"
)

const SystemAuthor = "System"

// Message represents an immutable chat event.
type Message struct {
	ID        uuid.UUID // unique identifier
	Author    string
	Text      string
	CreatedAt time.Time
}

// NewMessage stamps a chat line with a fresh identity.
func NewMessage(author, text string, at time.Time) Message {
	return Message{
		ID:        uuid.New(),
		Author:    author,
		Text:      text,
		CreatedAt: at,
	}
}
