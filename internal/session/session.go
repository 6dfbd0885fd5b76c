// Package session remembers the last compared pair between runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ErrNoSession is returned by Load before anything was saved.
var ErrNoSession = errors.New("no saved session")

var lastKey = []byte("session:last")

// Side is the persisted state of one viewer.
type Side struct {
	Path string `json:"path"`
	Page int    `json:"page"`
}

// Snapshot is the persisted state of a pair.
type Snapshot struct {
	Left    Side  `json:"left"`
	Right   Side  `json:"right"`
	Linked  bool  `json:"linked"`
	SavedAt int64 `json:"saved_at"` // Unix timestamp
}

// Store wraps BadgerDB for session persistence.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a BadgerDB at the given path.
func Open(dbPath string) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions(dbPath).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the BadgerDB.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save overwrites the last session.
func (s *Store) Save(snap Snapshot) error {
	if snap.SavedAt == 0 {
		snap.SavedAt = time.Now().Unix()
	}
	val, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(lastKey, val)
	})
}

// Load returns the last saved session.
func (s *Store) Load() (Snapshot, error) {
	var snap Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(lastKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Snapshot{}, ErrNoSession
	}
	return snap, err
}
