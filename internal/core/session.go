package core

// Session is the server-side state for one live client connection.
//
// Name is empty until the client joins; it is written exactly once, by the hub
// loop, and must not be touched by transport code.
type Session struct {
	ID     string
	Name   string
	Events chan *Event
}

// NewSession constructs a session with an initialized event channel.
func NewSession(id string) *Session {
	return &Session{
		ID:     id,
		Events: make(chan *Event, 32),
	}
}

// Joined reports whether the session has announced a display name.
func (s *Session) Joined() bool {
	return s.Name != ""
}
