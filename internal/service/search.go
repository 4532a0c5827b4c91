package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/domain"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/search"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/store"
)

// ErrSearchDisabled is returned by Search when the product index is off.
var ErrSearchDisabled = errors.New("product search is disabled")

// SearchOptions carries the configured query defaults.
type SearchOptions struct {
	Enabled   bool
	Fuzziness int
	Limit     int
}

// SearchService bridges the product index with the catalog store.
// It is installed as the store's SearchIndexer, so every committed product
// is indexed as soon as it is added.
type SearchService struct {
	index  *search.ProductIndex
	store  store.Catalog
	opts   SearchOptions
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.ProductIndex, store store.Catalog, opts SearchOptions, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  store,
		opts:   opts,
		logger: logger,
	}
}

var _ store.SearchIndexer = (*SearchService)(nil)

// Search finds products whose name matches query, optionally restricted to
// one activity and a set of categories. Configured fuzziness and limit apply.
func (s *SearchService) Search(ctx context.Context, query, activity string, categories ...string) (*search.Result, error) {
	if !s.opts.Enabled {
		return nil, ErrSearchDisabled
	}

	params := search.DefaultParams()
	params.Query = query
	params.Activity = activity
	params.Categories = categories
	params.Fuzziness = s.opts.Fuzziness
	if s.opts.Limit > 0 {
		params.Limit = s.opts.Limit
	}

	result, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	s.logger.Debug("product search",
		"query", query,
		"activity", activity,
		"hits", len(result.Hits),
		"took_ms", result.TookMs,
	)
	return result, nil
}

// IndexProduct indexes a single product.
func (s *SearchService) IndexProduct(ctx context.Context, p *domain.Product) error {
	if !s.opts.Enabled {
		return nil
	}
	if err := s.index.IndexProduct(ctx, p); err != nil {
		return fmt.Errorf("index product: %w", err)
	}

	s.logger.Debug("indexed product", "product", p.Name)
	return nil
}

// DocumentCount returns the number of indexed products.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// ReindexAll rebuilds the product index from the store.
func (s *SearchService) ReindexAll(ctx context.Context) error {
	if !s.opts.Enabled {
		return ErrSearchDisabled
	}

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}

	if err := s.index.Rebuild(ctx, products); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	s.logger.Info("reindexed products", "count", len(products))
	return nil
}
