package storage

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var documentsBucket = []byte("documents")

// BoltStore keeps documents in an embedded bbolt file. Default adapter
// when no DATABASE_URL is configured.
type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(documentsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create documents bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Load(key string) ([]byte, bool, error) {
	var doc []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(documentsBucket).Get([]byte(key))
		if raw != nil {
			doc = make([]byte, len(raw))
			copy(doc, raw)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return doc, doc != nil, nil
}

func (s *BoltStore) Save(key string, doc []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(documentsBucket).Put([]byte(key), doc)
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
