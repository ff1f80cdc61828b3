// Package history stores prompt inputs across sessions in a bbolt file.
package history

import (
	"encoding/binary"
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("inputs")

// ErrClosed is returned when using a closed store
var ErrClosed = errors.New("history store is closed")

// Store keeps inputs in insertion order
type Store struct {
	db *bolt.DB
}

// Open opens or creates the history file at path
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Append records one input. Blank inputs are skipped.
func (s *Store) Append(input string) error {
	if s.db == nil {
		return ErrClosed
	}
	if input == "" {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(itob(seq), []byte(input))
	})
}

// Recent returns up to n of the latest inputs, oldest first.
// n <= 0 returns every input.
func (s *Store) Recent(n int) ([]string, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	var inputs []string
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketName).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if n > 0 && len(inputs) == n {
				break
			}
			inputs = append(inputs, string(v))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(inputs)-1; i < j; i, j = i+1, j-1 {
		inputs[i], inputs[j] = inputs[j], inputs[i]
	}
	return inputs, nil
}

// Close releases the file lock
func (s *Store) Close() error {
	if s.db == nil {
		return ErrClosed
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
