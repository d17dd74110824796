package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoin announces the session's display name.
	CommandJoin CommandKind = iota
	// CommandSendMessage broadcasts a chat message to everyone.
	CommandSendMessage
	// CommandTyping broadcasts an ephemeral typing notice.
	CommandTyping
)

// Command represents an action requested by a client session.
type Command struct {
	Session *Session
	Kind    CommandKind
	Name    string // join, typing
	Text    string // message body
}
