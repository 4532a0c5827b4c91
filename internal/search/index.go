package search

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/domain"
)

// ProductIndex wraps a memory-only Bleve index of catalog products.
//
// Thread safety: All public methods are safe for concurrent use.
// The mutex protects against queries racing a Rebuild.
type ProductIndex struct {
	index  bleve.Index
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the product index.
type Options struct {
	Logger *slog.Logger // Logger for operations (uses discard if nil)
}

// NewProductIndex creates an empty in-memory product index.
func NewProductIndex(opts Options) (*ProductIndex, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	logger.Debug("created in-memory product index")

	return &ProductIndex{
		index:  index,
		logger: logger,
	}, nil
}

// Close closes the index and releases resources.
func (s *ProductIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexProduct indexes a single product. It satisfies store.SearchIndexer.
func (s *ProductIndex) IndexProduct(ctx context.Context, p *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := NewProductDocument(p)
	if err := s.index.Index(doc.ID, doc.ToMap()); err != nil {
		return fmt.Errorf("index product %s: %w", p.Name, err)
	}
	return nil
}

func (s *ProductIndex) indexBatched(ctx context.Context, index bleve.Index, products []*domain.Product) error {
	const batchSize = 500

	for i := 0; i < len(products); i += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(i+batchSize, len(products))

		batch := index.NewBatch()
		for _, p := range products[i:end] {
			doc := NewProductDocument(p)
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.ID, err)
			}
		}

		if err := index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}

	return nil
}

// DocumentCount returns the total number of indexed products.
func (s *ProductIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Rebuild replaces the index contents with products.
//
// IMPORTANT: This acquires an exclusive lock and blocks searches until the
// new index is populated.
func (s *ProductIndex) Rebuild(ctx context.Context, products []*domain.Product) error {
	fresh, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	if err := s.indexBatched(ctx, fresh, products); err != nil {
		_ = fresh.Close()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Close(); err != nil {
		s.logger.Warn("failed to close replaced index", "error", err)
	}
	s.index = fresh
	s.logger.Info("rebuilt product index", "products", len(products))

	return nil
}
