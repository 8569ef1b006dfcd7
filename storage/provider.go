package storage

// Provider abstracts the durable key-value store backing session
// persistence. Implementations return (nil, nil) for missing keys so
// callers can treat absence and emptiness uniformly.
type Provider interface {
	// Get retrieves a value by key
	Get(key []byte) ([]byte, error)

	// Put stores a key-value pair
	Put(key, value []byte) error

	// Delete removes a key-value pair
	Delete(key []byte) error

	// Has checks if a key exists
	Has(key []byte) (bool, error)

	// Close closes the store
	Close() error
}
