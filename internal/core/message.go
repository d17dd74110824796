package core

import "time"

// Message is the domain model for a chat message.
type Message struct {
	ID        int64
	From      string
	Text      string
	AvatarURL string
	CreatedAt time.Time
}
