package core

import "sync"

// Presence is the authoritative record of currently joined display names.
//
// Names are kept in join order and are not deduplicated: two sessions joined
// under the same name produce two entries, and each disconnect removes exactly
// one. Mutations come only from the hub loop; the lock exists so the HTTP
// surface can read snapshots concurrently.
type Presence struct {
	mu    sync.RWMutex
	names []string
}

// NewPresence constructs an empty registry.
func NewPresence() *Presence {
	return &Presence{names: make([]string, 0, 16)}
}

// Add appends name to the registry.
func (p *Presence) Add(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.names = append(p.names, name)
}

// Remove deletes the first occurrence of name. Removing an absent name is a no-op.
func (p *Presence) Remove(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, n := range p.names {
		if n == name {
			p.names = append(p.names[:i], p.names[i+1:]...)
			return
		}
	}
}

// List returns a snapshot of joined names in insertion order.
func (p *Presence) List() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	snapshot := make([]string, len(p.names))
	copy(snapshot, p.names)
	return snapshot
}

// Len returns the number of joined names.
func (p *Presence) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.names)
}
