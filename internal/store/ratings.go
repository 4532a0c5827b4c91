package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/domain"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/errors"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/id"
)

// AddRating stores user's rating of product.
// A user rates a product at most once; ratings are never overwritten.
func (s *Store) AddRating(ctx context.Context, product, user string, stars int, comment string) (*domain.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !domain.ValidStars(stars) {
		return nil, errors.ErrInvalidStars
	}
	if err := checkNames("product", product); err != nil {
		return nil, err
	}
	if err := checkNames("user", user); err != nil {
		return nil, err
	}

	ratingID, err := id.NewRatingID()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate rating id")
	}

	r := &domain.Rating{
		ID:        ratingID,
		Product:   product,
		User:      user,
		Stars:     stars,
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if ok, err := keyExists(txn, productKey(product)); err != nil {
			return err
		} else if !ok {
			return errors.ErrUnknownProduct
		}

		key := memberKey(ratingPrefix, product, user)
		if ok, err := keyExists(txn, key); err != nil {
			return err
		} else if ok {
			return errors.ErrDuplicateRating
		}

		return setJSON(txn, key, r)
	})
	if err != nil {
		return nil, opError(fmt.Sprintf("add rating for %q", product), err)
	}

	s.emit(domain.EventRatingAdded, r.Product, r)
	return r, nil
}

// ListRatings returns the ratings of product ordered by descending stars.
// Equal star values are ordered by ascending user name. Unknown products
// yield an empty list.
func (s *Store) ListRatings(ctx context.Context, product string) ([]*domain.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ratings []*domain.Rating
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		ratings, err = scanJSON[domain.Rating](txn, memberScan(ratingPrefix, product))
		return err
	})
	if err != nil {
		return nil, opError(fmt.Sprintf("list ratings for %q", product), err)
	}

	slices.SortFunc(ratings, domain.CompareRatings)
	return ratings, nil
}

// RatingsForProduct returns the ratings of product rendered as
// "stars : comment", in ListRatings order.
func (s *Store) RatingsForProduct(ctx context.Context, product string) ([]string, error) {
	ratings, err := s.ListRatings(ctx, product)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(ratings))
	for i, r := range ratings {
		out[i] = r.String()
	}
	return out, nil
}
