package core

// EventKind is a notification the core emits to sessions.
type EventKind int

const (
	// EventWelcome greets a joining session with the full message history.
	EventWelcome EventKind = iota
	// EventMemberJoined notifies everyone that a user joined.
	EventMemberJoined
	// EventMessage delivers a persisted chat message to everyone.
	EventMessage
	// EventTyping notifies everyone that a user is typing.
	EventTyping
	// EventMemberLeft notifies everyone that a user disconnected.
	EventMemberLeft
	// EventError notifies the triggering session about a domain error.
	EventError
)

// Event is sent to sessions to describe what happened in the system.
type Event struct {
	Kind     EventKind
	User     string    // joiner, leaver, typist or message sender
	Greeting string    // EventWelcome
	Message  Message   // EventMessage
	History  []Message // EventWelcome
	Present  []string  // presence snapshot for member joined/left
	Error    *CoreError
}
