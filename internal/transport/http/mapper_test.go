package http

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/relaykit/relay/internal/core"
	"github.com/relaykit/relay/internal/proto"
)

func TestInboundToCommandJoin(t *testing.T) {
	session := core.NewSession("s1")
	payload, _ := json.Marshal(proto.JoinData{Name: "Alice"})

	cmd, protoErr, err := inboundToCommand(session, proto.Inbound{Type: proto.InboundTypeJoin, Data: payload})
	if err != nil || protoErr != nil {
		t.Fatalf("unexpected errors: %v %v", err, protoErr)
	}
	if cmd.Kind != core.CommandJoin || cmd.Name != "Alice" || cmd.Session != session {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestInboundToCommandEmptyNameRejected(t *testing.T) {
	session := core.NewSession("s1")
	payload, _ := json.Marshal(proto.JoinData{Name: " "})

	cmd, protoErr, err := inboundToCommand(session, proto.Inbound{Type: proto.InboundTypeJoin, Data: payload})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd != nil {
		t.Fatalf("expected no command, got %+v", cmd)
	}
	if protoErr == nil || protoErr.Code != core.ErrCodeBadRequest {
		t.Fatalf("expected bad_request, got %+v", protoErr)
	}
}

func TestInboundToCommandIgnoresClientUserName(t *testing.T) {
	session := core.NewSession("s1")
	payload, _ := json.Marshal(proto.MessageSendData{UserName: "Mallory", Message: "hello"})

	cmd, protoErr, err := inboundToCommand(session, proto.Inbound{Type: proto.InboundTypeMessage, Data: payload})
	if err != nil || protoErr != nil {
		t.Fatalf("unexpected errors: %v %v", err, protoErr)
	}
	if cmd.Kind != core.CommandSendMessage || cmd.Text != "hello" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if cmd.Name != "" {
		t.Fatalf("payload user name must not leak into the command: %+v", cmd)
	}
}

func TestInboundToCommandUnknownType(t *testing.T) {
	session := core.NewSession("s1")

	cmd, protoErr, err := inboundToCommand(session, proto.Inbound{Type: "subscribe"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd != nil || protoErr == nil || protoErr.Code != core.ErrCodeBadRequest {
		t.Fatalf("expected bad_request for unknown type, got cmd=%+v err=%+v", cmd, protoErr)
	}
}

func TestOutboundFromMessageEvent(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	out := outboundFromEvent(&core.Event{
		Kind: core.EventMessage,
		User: "Alice",
		Message: core.Message{
			ID:        7,
			From:      "Alice",
			Text:      "hi",
			AvatarURL: "https://api.multiavatar.com/Alice.svg",
			CreatedAt: created,
		},
	})

	if out.Type != proto.OutboundTypeEvent || out.Event != proto.EventMessage {
		t.Fatalf("unexpected envelope: %+v", out)
	}
	record, ok := out.Data.(proto.MessageRecord)
	if !ok {
		t.Fatalf("unexpected data type: %T", out.Data)
	}
	if record.UserName != "Alice" || record.Message != "hi" || record.Timestamp != created.UnixMilli() {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestOutboundFromErrorEvent(t *testing.T) {
	out := outboundFromEvent(&core.Event{
		Kind:  core.EventError,
		Error: &core.CoreError{Code: core.ErrCodeStoreFailed, Message: "failed to persist message"},
	})

	if out.Type != proto.OutboundTypeError || out.Error == nil || out.Error.Code != core.ErrCodeStoreFailed {
		t.Fatalf("unexpected envelope: %+v", out)
	}
}
