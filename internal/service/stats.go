package service

import (
	"cmp"
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/domain"
)

// RatingsReader is the read surface the aggregations need.
// store.Catalog satisfies it.
type RatingsReader interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ListRatings(ctx context.Context, product string) ([]*domain.Rating, error)
}

// StatsService computes rating aggregates. It holds no state of its own:
// every call recomputes from the current ratings.
type StatsService struct {
	store  RatingsReader
	logger *slog.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(store RatingsReader, logger *slog.Logger) *StatsService {
	return &StatsService{
		store:  store,
		logger: logger,
	}
}

// tally accumulates star values.
type tally struct {
	sum   int
	count int
}

func (t *tally) add(ratings []*domain.Rating) {
	for _, r := range ratings {
		t.sum += r.Stars
		t.count++
	}
}

// mean is the arithmetic mean, or 0 when nothing was added.
func (t tally) mean() float64 {
	if t.count == 0 {
		return 0
	}
	return float64(t.sum) / float64(t.count)
}

// StarsOfProduct returns the mean star value of product, or 0 when the
// product has no ratings or does not exist.
func (s *StatsService) StarsOfProduct(ctx context.Context, product string) (float64, error) {
	ratings, err := s.store.ListRatings(ctx, product)
	if err != nil {
		return 0, err
	}

	var t tally
	t.add(ratings)
	return t.mean(), nil
}

// AverageStars returns the mean of every star value in the catalog, or 0
// when there are no ratings.
func (s *StatsService) AverageStars(ctx context.Context) (float64, error) {
	var t tally
	err := s.eachRated(ctx, func(_ *domain.Product, ratings []*domain.Rating) {
		t.add(ratings)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Debug("computed average stars", "ratings", t.count)
	return t.mean(), nil
}

// StarsPerActivity returns, per activity with at least one rating, the mean
// over all ratings of all its products (not a mean of product means).
// The result is ordered by ascending activity name.
func (s *StatsService) StarsPerActivity(ctx context.Context) ([]domain.ActivityStars, error) {
	byActivity := make(map[string]*tally)
	err := s.eachRated(ctx, func(p *domain.Product, ratings []*domain.Rating) {
		t, ok := byActivity[p.Activity]
		if !ok {
			t = &tally{}
			byActivity[p.Activity] = t
		}
		t.add(ratings)
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.ActivityStars, 0, len(byActivity))
	for _, activity := range slices.Sorted(maps.Keys(byActivity)) {
		result = append(result, domain.ActivityStars{
			Activity: activity,
			Stars:    byActivity[activity].mean(),
		})
	}

	s.logger.Debug("computed stars per activity", "activities", len(result))
	return result, nil
}

// ProductsPerStars groups rated products by their exact mean star value.
// Groups are ordered by descending mean; names inside a group ascend.
// Products without ratings are omitted.
func (s *StatsService) ProductsPerStars(ctx context.Context) ([]domain.StarGroup, error) {
	groups := make(map[float64][]string)
	err := s.eachRated(ctx, func(p *domain.Product, ratings []*domain.Rating) {
		var t tally
		t.add(ratings)
		mean := t.mean()
		// Products arrive in ascending order, so each group stays sorted.
		groups[mean] = append(groups[mean], p.Name)
	})
	if err != nil {
		return nil, err
	}

	keys := slices.SortedFunc(maps.Keys(groups), func(a, b float64) int {
		return cmp.Compare(b, a)
	})

	result := make([]domain.StarGroup, 0, len(keys))
	for _, stars := range keys {
		result = append(result, domain.StarGroup{
			Stars:    stars,
			Products: groups[stars],
		})
	}

	s.logger.Debug("computed products per stars", "groups", len(result))
	return result, nil
}

// eachRated calls fn for every product with at least one rating, in
// ascending product order.
func (s *StatsService) eachRated(ctx context.Context, fn func(*domain.Product, []*domain.Rating)) error {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return err
	}

	for _, p := range products {
		ratings, err := s.store.ListRatings(ctx, p.Name)
		if err != nil {
			return err
		}
		if len(ratings) == 0 {
			continue
		}
		fn(p, ratings)
	}
	return nil
}
