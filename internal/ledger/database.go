package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	bucketName  = "ledger"
	receiptsKey = "receipts"
)

// DB defines the interface for durable receipt persistence. The whole
// collection is stored as one value, so insertion order survives a restart.
type DB interface {
	// LoadReceipts restores the full collection. Missing data is a normal
	// empty state, not an error.
	LoadReceipts() ([]Receipt, error)

	// SaveReceipts durably persists the full collection, replacing whatever
	// was stored before. An empty collection is persisted too.
	SaveReceipts(receipts []Receipt) error

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// LoadReceipts restores the stored collection, or an empty one on first run
func (b *BoltDB) LoadReceipts() ([]Receipt, error) {
	receipts := make([]Receipt, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		data := bucket.Get([]byte(receiptsKey))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &receipts); err != nil {
			return fmt.Errorf("unmarshaling receipts: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipts, nil
}

// SaveReceipts replaces the stored collection
func (b *BoltDB) SaveReceipts(receipts []Receipt) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		data, err := json.Marshal(receipts)
		if err != nil {
			return fmt.Errorf("marshaling receipts: %w", err)
		}
		return bucket.Put([]byte(receiptsKey), data)
	})
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
