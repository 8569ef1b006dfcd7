package storage

import "sync"

// MemoryProvider is the in-process fallback used by tests and when the
// wallet database cannot be opened: the session simply behaves as
// ephemeral for that run.
type MemoryProvider struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{data: make(map[string][]byte)}
}

func (p *MemoryProvider) Get(key []byte) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.data[string(key)]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (p *MemoryProvider) Put(key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (p *MemoryProvider) Delete(key []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.data, string(key))
	return nil
}

func (p *MemoryProvider) Has(key []byte) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.data[string(key)]
	return ok, nil
}

func (p *MemoryProvider) Close() error {
	return nil
}
