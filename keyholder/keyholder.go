package keyholder

import "sync"

// Holder keeps a private key in memory for the duration of one signing
// operation and nothing longer. At most one key is held; a new Set
// replaces (and wipes) any prior key. Nothing here ever touches durable
// storage or the logger.
type Holder struct {
	mu  sync.Mutex
	key []byte
}

func New() *Holder {
	return &Holder{}
}

// Set stores the key for the current operation, invalidating any key held
// before.
func (h *Holder) Set(privKeyHex string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.wipeLocked()
	h.key = []byte(privKeyHex)
}

// Get returns the held key and whether one is present.
func (h *Holder) Get() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.key == nil {
		return "", false
	}
	return string(h.key), true
}

// Clear unconditionally wipes the held key. Idempotent; invoked by the
// session teardown path and by the pipeline after every signing attempt.
func (h *Holder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.wipeLocked()
}

func (h *Holder) wipeLocked() {
	for i := range h.key {
		h.key[i] = 0
	}
	h.key = nil
}
