package core

import (
	"context"
	"fmt"
	"testing"
)

func benchmarkBroadcast(b *testing.B, recipients int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil, NewPresence(), nil)
	go hub.Run(ctx)

	sender := NewSession("sender")
	hub.Register(sender)
	hub.Dispatch(&Command{Session: sender, Kind: CommandJoin, Name: "sender"})

	sessions := make([]*Session, 0, recipients)
	for i := 0; i < recipients; i++ {
		s := NewSession(fmt.Sprintf("s%d", i))
		hub.Register(s)
		hub.Dispatch(&Command{Session: s, Kind: CommandJoin, Name: fmt.Sprintf("user%d", i)})
		sessions = append(sessions, s)
	}

	// Drain events for all but the first recipient to avoid channel backpressure.
	target := sessions[0]
	for _, s := range sessions[1:] {
		go func(sess *Session) {
			for range sess.Events {
			}
		}(s)
	}
	go func() {
		for range sender.Events {
		}
	}()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		hub.Dispatch(&Command{Session: sender, Kind: CommandSendMessage, Text: "payload"})
		for {
			ev := <-target.Events
			if ev != nil && ev.Kind == EventMessage {
				break
			}
		}
	}
}

func BenchmarkBroadcast_10(b *testing.B)  { benchmarkBroadcast(b, 10) }
func BenchmarkBroadcast_100(b *testing.B) { benchmarkBroadcast(b, 100) }
func BenchmarkBroadcast_500(b *testing.B) { benchmarkBroadcast(b, 500) }
