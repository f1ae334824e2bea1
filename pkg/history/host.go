package history

import "sync"

// Host is the browsing-history collaborator: something that owns the
// visible address and can move through entries on its own (back/forward).
type Host interface {
	// Address returns the current host-visible address.
	Address() string

	// Push appends a new history entry with the given address.
	Push(address string) error

	// Replace overwrites the current history entry.
	Replace(address string) error

	// Subscribe registers a callback for externally-triggered address
	// changes (back/forward). Push and Replace do not fire it.
	// The returned function cancels the subscription.
	Subscribe(fn func(address string)) (cancel func())
}

// MemoryHost is an in-process Host with real back/forward semantics.
// It backs tests and headless embeddings.
type MemoryHost struct {
	mu        sync.Mutex
	entries   []string
	index     int
	listeners map[int]func(string)
	nextID    int
}

// NewMemoryHost creates a host positioned on a single initial entry.
func NewMemoryHost(initial string) *MemoryHost {
	if initial == "" {
		initial = "/"
	}
	return &MemoryHost{
		entries:   []string{initial},
		listeners: make(map[int]func(string)),
	}
}

// Address returns the current entry.
func (h *MemoryHost) Address() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Push appends an entry, discarding any forward entries.
func (h *MemoryHost) Push(address string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], address)
	h.index = len(h.entries) - 1
	return nil
}

// Replace overwrites the current entry.
func (h *MemoryHost) Replace(address string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.index] = address
	return nil
}

// Subscribe registers a back/forward listener.
func (h *MemoryHost) Subscribe(fn func(address string)) (cancel func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.listeners, id)
		h.mu.Unlock()
	}
}

// Back moves one entry backward, notifying subscribers. Returns false at
// the oldest entry.
func (h *MemoryHost) Back() bool {
	h.mu.Lock()
	if h.index == 0 {
		h.mu.Unlock()
		return false
	}
	h.index--
	address := h.entries[h.index]
	fns := h.snapshotListeners()
	h.mu.Unlock()

	for _, fn := range fns {
		fn(address)
	}
	return true
}

// Forward moves one entry forward, notifying subscribers. Returns false at
// the newest entry.
func (h *MemoryHost) Forward() bool {
	h.mu.Lock()
	if h.index >= len(h.entries)-1 {
		h.mu.Unlock()
		return false
	}
	h.index++
	address := h.entries[h.index]
	fns := h.snapshotListeners()
	h.mu.Unlock()

	for _, fn := range fns {
		fn(address)
	}
	return true
}

// Len returns the number of history entries.
func (h *MemoryHost) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Entries returns a copy of the history stack, oldest first.
func (h *MemoryHost) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *MemoryHost) snapshotListeners() []func(string) {
	fns := make([]func(string), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	return fns
}
