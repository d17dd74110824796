// Command ws_chat is a minimal terminal client for manual testing of the relay
// protocol: it joins with a display name, prints incoming events, and sends
// every stdin line as a chat message.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/relaykit/relay/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	user := flag.String("user", "cli-user", "display name")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	joinPayload, err := json.Marshal(proto.JoinData{Name: *user})
	if err != nil {
		return fmt.Errorf("marshal join: %w", err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeJoin, Data: joinPayload}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Printf("Connected to %s as %s\n", *addr, *user)
	fmt.Println("Type messages and press Enter to send. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	writeLoop(ctx, conn, *user)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var frame struct {
			Type  string          `json:"type"`
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
			Error *proto.Error    `json:"error"`
		}
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		if frame.Type == proto.OutboundTypeError && frame.Error != nil {
			fmt.Printf("server error: %s (%s)\n", frame.Error.Msg, frame.Error.Code)
			continue
		}

		switch frame.Event {
		case proto.EventWelcome:
			var evt proto.WelcomeData
			if err := json.Unmarshal(frame.Data, &evt); err != nil {
				log.Printf("unmarshal welcome: %v", err)
				continue
			}
			fmt.Println(evt.Message)
			for _, rec := range evt.ChatHistory {
				printRecord(rec)
			}
		case proto.EventMessage:
			var rec proto.MessageRecord
			if err := json.Unmarshal(frame.Data, &rec); err != nil {
				log.Printf("unmarshal message: %v", err)
				continue
			}
			printRecord(rec)
		case proto.EventNewMember:
			var evt proto.NewMemberData
			if err := json.Unmarshal(frame.Data, &evt); err != nil {
				log.Printf("unmarshal newMember: %v", err)
				continue
			}
			fmt.Printf("%s has joined (online: %s)\n", evt.NewUser, strings.Join(evt.ConnectedUsers, ", "))
		case proto.EventUserTyping:
			var evt proto.UserTypingData
			if err := json.Unmarshal(frame.Data, &evt); err != nil {
				log.Printf("unmarshal user-typing: %v", err)
				continue
			}
			fmt.Printf("%s is typing...\n", evt.Name)
		case proto.EventUserLeft:
			var evt proto.UserLeftData
			if err := json.Unmarshal(frame.Data, &evt); err != nil {
				log.Printf("unmarshal userLeft: %v", err)
				continue
			}
			fmt.Printf("%s has left (online: %s)\n", evt.User, strings.Join(evt.ConnectedUsers, ", "))
		default:
			fmt.Printf("event=%s data=%s\n", frame.Event, frame.Data)
		}
	}
}

func printRecord(rec proto.MessageRecord) {
	ts := time.UnixMilli(rec.Timestamp).Local().Format("15:04:05")
	fmt.Printf("[%s] %s: %s\n", ts, rec.UserName, rec.Message)
}

func writeLoop(ctx context.Context, conn *websocket.Conn, user string) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}

			payload, err := json.Marshal(proto.MessageSendData{UserName: user, Message: text})
			if err != nil {
				log.Printf("marshal msg: %v", err)
				return
			}
			if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeMessage, Data: payload}); err != nil {
				log.Printf("send error: %v", err)
				return
			}
		}
	}
}
