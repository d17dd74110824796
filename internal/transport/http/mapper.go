package http

import (
	"encoding/json"
	"strings"

	"github.com/relaykit/relay/internal/core"
	"github.com/relaykit/relay/internal/proto"
)

func inboundToCommand(session *core.Session, inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if strings.TrimSpace(join.Name) == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "name is required"}, nil
		}
		return &core.Command{
			Session: session,
			Kind:    core.CommandJoin,
			Name:    join.Name,
		}, nil, nil
	case proto.InboundTypeMessage:
		var msg proto.MessageSendData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, nil, err
		}
		if msg.Message == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "message is required"}, nil
		}
		// The record's user name comes from the joined session, not the payload.
		return &core.Command{
			Session: session,
			Kind:    core.CommandSendMessage,
			Text:    msg.Message,
		}, nil, nil
	case proto.InboundTypeTyping:
		var typing proto.TypingData
		if err := json.Unmarshal(inbound.Data, &typing); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Session: session,
			Kind:    core.CommandTyping,
			Name:    typing.Name,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventWelcome:
		history := make([]proto.MessageRecord, 0, len(event.History))
		for _, msg := range event.History {
			history = append(history, recordFromMessage(msg))
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventWelcome,
			Data: proto.WelcomeData{
				Message:     event.Greeting,
				ChatHistory: history,
			},
		}
	case core.EventMemberJoined:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNewMember,
			Data: proto.NewMemberData{
				NewUser:        event.User,
				ConnectedUsers: event.Present,
			},
		}
	case core.EventMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMessage,
			Data:  recordFromMessage(event.Message),
		}
	case core.EventTyping:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUserTyping,
			Data:  proto.UserTypingData{Name: event.User},
		}
	case core.EventMemberLeft:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUserLeft,
			Data: proto.UserLeftData{
				User:           event.User,
				ConnectedUsers: event.Present,
			},
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func recordFromMessage(msg core.Message) proto.MessageRecord {
	return proto.MessageRecord{
		ID:            msg.ID,
		UserName:      msg.From,
		Message:       msg.Text,
		ProfilePicURL: msg.AvatarURL,
		Timestamp:     msg.CreatedAt.UnixMilli(),
	}
}
