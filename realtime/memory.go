package realtime

import (
	"context"
	"sync"
)

// MemoryHub is an in-process Hub. It serves single-node deployments that run
// without Redis, and the service tests.
type MemoryHub struct {
	mu   sync.Mutex
	subs map[string]map[int]chan Event
	next int
}

// NewMemoryHub creates an empty in-process hub.
func NewMemoryHub() *MemoryHub {
	return &MemoryHub{subs: make(map[string]map[int]chan Event)}
}

func (h *MemoryHub) Publish(_ context.Context, ev Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[ev.Collection] {
		// Non-blocking: a stalled subscriber must not hold up writers.
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}

func (h *MemoryHub) Subscribe(_ context.Context, collection string) (<-chan Event, func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[collection] == nil {
		h.subs[collection] = make(map[int]chan Event)
	}
	id := h.next
	h.next++
	ch := make(chan Event, 16)
	h.subs[collection][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[collection][id]; ok {
			delete(h.subs[collection], id)
			close(sub)
		}
	}
	return ch, cancel, nil
}
