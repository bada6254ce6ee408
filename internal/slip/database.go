package slip

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const recordBucket = "records"

// BoltDB implements the Store interface using BoltDB.
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB opens (creating if needed) a BoltDB ledger at path.
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(recordBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltDB{db: db}, nil
}

func recordKey(date string, atmID int, userID string) []byte {
	return []byte(fmt.Sprintf("%s|%d|%s", date, atmID, userID))
}

// Insert creates a record unless one already exists for the same key.
// The duplicate check and the put share one write transaction, so two
// concurrent saves for the same key cannot both land.
func (b *BoltDB) Insert(record *Record) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(recordBucket))
		key := recordKey(record.Date, record.ATMID, record.UserID)
		if bucket.Get(key) != nil {
			return ErrDuplicate
		}
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshaling record: %w", err)
		}
		return bucket.Put(key, data)
	})
}

// Exists reports whether a record exists for the key.
func (b *BoltDB) Exists(date string, atmID int, userID string) (bool, error) {
	var found bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(recordBucket))
		found = bucket.Get(recordKey(date, atmID, userID)) != nil
		return nil
	})
	return found, err
}

// List returns all records for a date and user, in key order.
func (b *BoltDB) List(date string, userID string) ([]*Record, error) {
	records := make([]*Record, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(recordBucket))
		return bucket.ForEach(func(k, v []byte) error {
			var record Record
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("unmarshaling record: %w", err)
			}
			if record.Date != date || record.UserID != userID {
				return nil
			}
			records = append(records, &record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Close closes the database.
func (b *BoltDB) Close() error {
	return b.db.Close()
}
