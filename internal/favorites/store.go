package favorites

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Key is the store key holding the favorites array.
const Key = "favorites"

// ErrKeyNotFound is returned by a Store when the key has never been written.
var ErrKeyNotFound = errors.New("favorites: key not found")

// Store is the profile-scoped key-value store the Manager persists to.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// BadgerStore is a Store backed by an embedded Badger database.
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open opens (or creates) the database rooted at path.
func Open(path string, logger *slog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil      // Badger logs to stderr, which belongs to the UI
	opts.SyncWrites = true // fsync every write

	return open(opts, logger)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory(logger *slog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	return open(opts, logger)
}

func open(opts badger.Options, logger *slog.Logger) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}
	if logger != nil {
		logger.Info("favorites store opened", "path", opts.Dir, "in_memory", opts.InMemory)
	}
	return &BadgerStore{db: db, logger: logger}, nil
}

// Get returns a copy of the value stored under key.
func (s *BadgerStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrKeyNotFound
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set replaces the value stored under key.
func (s *BadgerStore) Set(key string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Close flushes and closes the database.
func (s *BadgerStore) Close() error {
	if s.logger != nil {
		s.logger.Info("closing favorites store")
	}
	return s.db.Close()
}
