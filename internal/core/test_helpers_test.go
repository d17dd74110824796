package core

import (
	"context"
	"testing"
	"time"

	"github.com/relaykit/relay/internal/store"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.Now().Add(150 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v received: %+v", kind, ev)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// memStore is an in-memory MessageStore with error injection.
type memStore struct {
	records   []*store.Message
	nextID    int64
	appendErr error
	listErr   error
}

func newMemStore() *memStore {
	return &memStore{nextID: 1}
}

func (m *memStore) AppendMessage(_ context.Context, msg *store.Message) (*store.Message, error) {
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	stored := *msg
	stored.ID = m.nextID
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	m.nextID++
	m.records = append(m.records, &stored)
	return &stored, nil
}

func (m *memStore) ListMessages(_ context.Context) ([]*store.Message, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*store.Message, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *memStore) Close() error { return nil }
