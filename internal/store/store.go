package store

import (
	"context"
	"time"
)

// Message is a persisted chat message. Records are immutable once written;
// the store assigns ID and CreatedAt on append.
type Message struct {
	ID        int64
	UserName  string
	Body      string
	AvatarURL string
	CreatedAt time.Time
}

// MessageStore is the durable append-only log of chat messages.
type MessageStore interface {
	// AppendMessage persists msg, assigning its ID. CreatedAt is taken from the
	// record if set, otherwise assigned server-side. Returns the stored record.
	AppendMessage(ctx context.Context, msg *Message) (*Message, error)

	// ListMessages returns every stored message ordered by creation time
	// ascending, ties broken by insertion order.
	ListMessages(ctx context.Context) ([]*Message, error)

	// Close closes the underlying database connection.
	Close() error
}
