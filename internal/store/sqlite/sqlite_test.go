package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/relaykit/relay/internal/store"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestAppendAndListRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	want := []string{"first", "second", "third"}
	for i, body := range want {
		stored, err := s.AppendMessage(ctx, &store.Message{
			UserName:  "alice",
			Body:      body,
			AvatarURL: "https://api.multiavatar.com/alice.svg",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("append %q: %v", body, err)
		}
		if stored.ID == 0 {
			t.Fatalf("append %q: expected assigned id", body)
		}
	}

	messages, err := s.ListMessages(ctx)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(messages) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(messages))
	}

	for i, msg := range messages {
		if msg.Body != want[i] {
			t.Errorf("message %d: expected body %q, got %q", i, want[i], msg.Body)
		}
		if i > 0 && msg.CreatedAt.Before(messages[i-1].CreatedAt) {
			t.Errorf("message %d: timestamp regressed: %v before %v", i, msg.CreatedAt, messages[i-1].CreatedAt)
		}
	}
}

func TestAppendAssignsTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	stored, err := s.AppendMessage(ctx, &store.Message{UserName: "bob", Body: "hi"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	after := time.Now().UTC().Add(time.Second)

	if stored.CreatedAt.Before(before) || stored.CreatedAt.After(after) {
		t.Fatalf("expected server-assigned timestamp near now, got %v", stored.CreatedAt)
	}
}

func TestListEmptyStore(t *testing.T) {
	s := newTestStore(t)

	messages, err := s.ListMessages(context.Background())
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected empty history, got %d messages", len(messages))
	}
}

func TestSameTimestampPreservesInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, body := range []string{"a", "b", "c"} {
		if _, err := s.AppendMessage(ctx, &store.Message{UserName: "alice", Body: body, CreatedAt: ts}); err != nil {
			t.Fatalf("append %q: %v", body, err)
		}
	}

	messages, err := s.ListMessages(ctx)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}

	got := make([]string, 0, len(messages))
	for _, msg := range messages {
		got = append(got, msg.Body)
	}
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("expected insertion order [a b c], got %v", got)
	}
}
