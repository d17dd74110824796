package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoin    = "join"
	InboundTypeMessage = "messageSend"
	InboundTypeTyping  = "typing"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventWelcome    = "welcome"
	EventNewMember  = "newMember"
	EventMessage    = "message"
	EventUserTyping = "user-typing"
	EventUserLeft   = "userLeft"
)

// JoinData announces the client's display name. First event per connection.
type JoinData struct {
	Name string `json:"name"`
}

// MessageSendData is a chat message from the client. UserName is accepted for
// compatibility with older clients but the server trusts the joined name.
type MessageSendData struct {
	UserName string `json:"userName"`
	Message  string `json:"message"`
}

// TypingData is an ephemeral typing notice from the client.
type TypingData struct {
	Name string `json:"name"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// MessageRecord is a persisted chat message as seen on the wire. Field names
// follow the original chat schema; Timestamp is Unix milliseconds.
type MessageRecord struct {
	ID            int64  `json:"id,omitempty"`
	UserName      string `json:"userName"`
	Message       string `json:"message"`
	ProfilePicURL string `json:"profilePicUrl"`
	Timestamp     int64  `json:"timestamp"`
}

// WelcomeData greets the joiner with the full chat history.
type WelcomeData struct {
	Message     string          `json:"message"`
	ChatHistory []MessageRecord `json:"chatHistory"`
}

// NewMemberData notifies everyone about a join.
type NewMemberData struct {
	NewUser        string   `json:"newUser"`
	ConnectedUsers []string `json:"connectedUsers"`
}

// UserTypingData notifies everyone that a user is typing.
type UserTypingData struct {
	Name string `json:"name"`
}

// UserLeftData notifies everyone about a disconnect.
type UserLeftData struct {
	User           string   `json:"user"`
	ConnectedUsers []string `json:"connectedUsers"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
