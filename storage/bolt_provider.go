package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.etcd.io/bbolt"
)

var walletBucket = []byte("wallet")

// BoltProvider implements Provider on a single-file bbolt database.
type BoltProvider struct {
	once sync.Once
	db   *bbolt.DB
}

// NewBoltProvider opens (creating if needed) the wallet database at path.
func NewBoltProvider(path string) (Provider, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create storage dir: %w", err)
		}
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(walletBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltProvider{db: db}, nil
}

func (p *BoltProvider) Get(key []byte) ([]byte, error) {
	var value []byte
	err := p.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(walletBucket).Get(key); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	return value, err
}

func (p *BoltProvider) Put(key, value []byte) error {
	return p.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(walletBucket).Put(key, value)
	})
}

func (p *BoltProvider) Delete(key []byte) error {
	return p.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(walletBucket).Delete(key)
	})
}

func (p *BoltProvider) Has(key []byte) (bool, error) {
	v, err := p.Get(key)
	return v != nil, err
}

// Close closes the database connection
func (p *BoltProvider) Close() error {
	// avoid double close when shared between stores
	var err error
	p.once.Do(func() {
		err = p.db.Close()
	})
	return err
}
