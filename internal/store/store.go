// Package store holds the catalog's activities, categories, products and
// ratings in an in-memory Badger database.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/domain"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/errors"
)

// EventEmitter is the interface for publishing committed catalog writes.
// Store uses this to broadcast changes without depending on any consumer.
type EventEmitter interface {
	Emit(event domain.Event)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(domain.Event) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() EventEmitter {
	return NoopEmitter{}
}

// SearchIndexer is the interface for keeping the product search index in sync.
// Index failures are logged; they never fail the write that triggered them.
type SearchIndexer interface {
	IndexProduct(ctx context.Context, p *domain.Product) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexProduct is a no-op.
func (NoopSearchIndexer) IndexProduct(context.Context, *domain.Product) error { return nil }

// Store wraps an in-memory Badger database instance.
//
// Every write validates and mutates inside a single Badger transaction.
// A rule violation returns before the transaction commits, so a failed
// write leaves every index untouched.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	eventEmitter  EventEmitter
	searchIndexer SearchIndexer
}

// New opens an in-memory store. Nothing is written to disk and all data is
// gone after Close.
func New(logger *slog.Logger, emitter EventEmitter) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil // Disable Badger's internal logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "open badger db")
	}

	if emitter == nil {
		emitter = NoopEmitter{}
	}

	s := &Store{
		db:            db,
		logger:        logger,
		eventEmitter:  emitter,
		searchIndexer: NoopSearchIndexer{},
	}

	if logger != nil {
		logger.Info("In-memory catalog store opened")
	}

	return s, nil
}

// Close releases the database. All catalog data is discarded.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing catalog store")
	}
	return s.db.Close()
}

// SetSearchIndexer sets the search indexer for keeping search in sync.
// This is set after store creation because the search service needs the store.
func (s *Store) SetSearchIndexer(indexer SearchIndexer) {
	if indexer == nil {
		indexer = NoopSearchIndexer{}
	}
	s.searchIndexer = indexer
}

// emit publishes an event for a committed write.
func (s *Store) emit(eventType domain.EventType, subject string, data any) {
	s.eventEmitter.Emit(domain.Event{
		ID:      uuid.NewString(),
		Type:    eventType,
		Subject: subject,
		Data:    data,
		At:      time.Now(),
	})
}

// opError prefixes err with op. Failures that carry no catalog code, such
// as Badger errors, are tagged INTERNAL.
func opError(op string, err error) error {
	var domainErr *errors.Error
	if errors.As(err, &domainErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return errors.Wrap(err, errors.CodeInternal, op)
}

// Helper functions for transaction-scoped operations.

// getJSON decodes the value stored at key into dest.
func getJSON(txn *badger.Txn, key []byte, dest any) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, dest)
	})
}

// setJSON encodes value and stores it at key.
func setJSON(txn *badger.Txn, key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return txn.Set(key, data)
}

// keyExists checks if a key exists. Pending writes of txn are visible.
func keyExists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// scanSuffixes returns the part after prefix of every key under prefix,
// in ascending byte order. The result is never nil.
func scanSuffixes(txn *badger.Txn, prefix []byte) []string {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix

	it := txn.NewIterator(opts)
	defer it.Close()

	suffixes := make([]string, 0)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		suffixes = append(suffixes, string(it.Item().Key()[len(prefix):]))
	}
	return suffixes
}

// countKeys returns how many keys live under prefix.
func countKeys(txn *badger.Txn, prefix []byte) int {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix

	it := txn.NewIterator(opts)
	defer it.Close()

	n := 0
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		n++
	}
	return n
}

// scanJSON decodes every value under prefix, in key order.
func scanJSON[T any](txn *badger.Txn, prefix []byte) ([]*T, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchSize = 100

	it := txn.NewIterator(opts)
	defer it.Close()

	out := make([]*T, 0)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var v T
		err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &v)
		})
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", it.Item().Key(), err)
		}
		out = append(out, &v)
	}
	return out, nil
}
