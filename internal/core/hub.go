package core

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/relaykit/relay/internal/store"
)

// Hub is the broadcast coordinator. Its run loop is the single writer of the
// session set and the presence registry, and it performs store calls inline,
// so every client observes joins, leaves and messages in the same relative
// order.
type Hub struct {
	store    store.MessageStore
	presence *Presence
	log      *zerolog.Logger

	// AvatarBase overrides the avatar image service base URL. Set before Run.
	AvatarBase string

	sessions   map[*Session]struct{}
	register   chan *Session
	unregister chan *Session
	commands   chan *Command
	done       chan struct{}
}

// NewHub constructs a hub. st may be nil, in which case messages are relayed
// without persistence and history replay is empty.
func NewHub(st store.MessageStore, presence *Presence, logger *zerolog.Logger) *Hub {
	if presence == nil {
		presence = NewPresence()
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		store:      st,
		presence:   presence,
		log:        logger,
		sessions:   make(map[*Session]struct{}),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		commands:   make(chan *Command),
		done:       make(chan struct{}),
	}
}

// Presence exposes the registry for read-only snapshots.
func (h *Hub) Presence() *Presence {
	return h.presence
}

// Register adds a freshly accepted session to the hub.
func (h *Hub) Register(s *Session) {
	select {
	case h.register <- s:
	case <-h.done:
	}
}

// Unregister removes a session, emitting the leave broadcast if it had joined.
func (h *Hub) Unregister(s *Session) {
	select {
	case h.unregister <- s:
	case <-h.done:
	}
}

// Dispatch hands a client command to the run loop.
func (h *Hub) Dispatch(cmd *Command) {
	select {
	case h.commands <- cmd:
	case <-h.done:
	}
}

// Run processes registrations and commands until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			return
		case s := <-h.register:
			h.sessions[s] = struct{}{}
			h.log.Debug().Str("session_id", s.ID).Int("sessions", len(h.sessions)).Msg("session registered")
		case s := <-h.unregister:
			h.handleDisconnect(s)
		case cmd := <-h.commands:
			h.handleCommand(ctx, cmd)
		}
	}
}

func (h *Hub) handleCommand(ctx context.Context, cmd *Command) {
	if cmd == nil || cmd.Session == nil {
		return
	}
	if _, ok := h.sessions[cmd.Session]; !ok {
		// Command raced with a disconnect; the session is gone.
		return
	}

	switch cmd.Kind {
	case CommandJoin:
		h.handleJoin(ctx, cmd.Session, cmd.Name)
	case CommandSendMessage:
		h.handleSend(ctx, cmd.Session, cmd.Text)
	case CommandTyping:
		h.handleTyping(cmd.Session)
	}
}

func (h *Hub) handleJoin(ctx context.Context, s *Session, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		h.sendTo(s, &Event{Kind: EventError, Error: coreError(ErrCodeBadRequest, "name is required")})
		return
	}

	// A repeated join re-registers the name; duplicates are tracked
	// per-session and removed one at a time on disconnect.
	s.Name = name
	h.presence.Add(name)

	history, err := h.loadHistory(ctx)
	if err != nil {
		h.log.Error().Err(err).Str("session_id", s.ID).Str("user", name).Msg("failed to load history")
		h.sendTo(s, &Event{Kind: EventError, Error: coreError(ErrCodeStoreFailed, "failed to load chat history")})
		return
	}

	h.sendTo(s, &Event{
		Kind:     EventWelcome,
		User:     name,
		Greeting: "Welcome " + name + "!",
		History:  history,
	})
	h.broadcast(&Event{Kind: EventMemberJoined, User: name, Present: h.presence.List()})

	h.log.Info().Str("session_id", s.ID).Str("user", name).Int("online", h.presence.Len()).Msg("user joined")
}

func (h *Hub) handleSend(ctx context.Context, s *Session, text string) {
	if !s.Joined() {
		h.sendTo(s, &Event{Kind: EventError, Error: coreError(ErrCodeNotJoined, "join before sending messages")})
		return
	}

	msg := Message{
		From:      s.Name,
		Text:      text,
		AvatarURL: AvatarURL(h.AvatarBase, s.Name),
		CreatedAt: time.Now().UTC(),
	}

	if h.store != nil {
		stored, err := h.store.AppendMessage(ctx, &store.Message{
			UserName:  msg.From,
			Body:      msg.Text,
			AvatarURL: msg.AvatarURL,
			CreatedAt: msg.CreatedAt,
		})
		if err != nil {
			// The message is lost for everyone else; the sender gets an
			// explicit acknowledgment and the connection stays alive.
			h.log.Error().Err(err).Str("session_id", s.ID).Str("user", s.Name).Msg("failed to persist message")
			h.sendTo(s, &Event{Kind: EventError, Error: coreError(ErrCodeStoreFailed, "failed to persist message")})
			return
		}
		msg.ID = stored.ID
		msg.CreatedAt = stored.CreatedAt
	}

	h.broadcast(&Event{Kind: EventMessage, User: s.Name, Message: msg})
}

func (h *Hub) handleTyping(s *Session) {
	if !s.Joined() {
		h.sendTo(s, &Event{Kind: EventError, Error: coreError(ErrCodeNotJoined, "join before typing notices")})
		return
	}
	h.broadcast(&Event{Kind: EventTyping, User: s.Name})
}

func (h *Hub) handleDisconnect(s *Session) {
	if _, ok := h.sessions[s]; !ok {
		return
	}
	delete(h.sessions, s)
	close(s.Events)

	if !s.Joined() {
		// Never announced a name; nothing worth broadcasting.
		h.log.Debug().Str("session_id", s.ID).Msg("unjoined session closed")
		return
	}

	h.presence.Remove(s.Name)
	h.broadcast(&Event{Kind: EventMemberLeft, User: s.Name, Present: h.presence.List()})

	h.log.Info().Str("session_id", s.ID).Str("user", s.Name).Int("online", h.presence.Len()).Msg("user left")
}

func (h *Hub) loadHistory(ctx context.Context) ([]Message, error) {
	if h.store == nil {
		return nil, nil
	}
	records, err := h.store.ListMessages(ctx)
	if err != nil {
		return nil, err
	}
	history := make([]Message, 0, len(records))
	for _, rec := range records {
		history = append(history, Message{
			ID:        rec.ID,
			From:      rec.UserName,
			Text:      rec.Body,
			AvatarURL: rec.AvatarURL,
			CreatedAt: rec.CreatedAt,
		})
	}
	return history, nil
}

// broadcast fans an event out to every connected session, joined or not.
func (h *Hub) broadcast(event *Event) {
	for s := range h.sessions {
		select {
		case s.Events <- event:
		default:
			// Drop if slow consumer.
			h.log.Warn().Str("session_id", s.ID).Msg("dropping event for slow session")
		}
	}
}

func (h *Hub) sendTo(s *Session, event *Event) {
	select {
	case s.Events <- event:
	default:
		h.log.Warn().Str("session_id", s.ID).Msg("dropping event for slow session")
	}
}
