package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/domain"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/errors"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/normalize"
)

// AddProduct registers a product bound to one (activity, category) pair.
// The category must already be linked to the activity.
func (s *Store) AddProduct(ctx context.Context, name, activity, category string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkNames("product", name); err != nil {
		return err
	}
	if err := checkNames("activity", activity); err != nil {
		return err
	}
	if err := checkNames("category", category); err != nil {
		return err
	}

	var p *domain.Product

	err := s.db.Update(func(txn *badger.Txn) error {
		exists, err := keyExists(txn, productKey(name))
		if err != nil {
			return err
		}
		if exists {
			return errors.ErrDuplicateProduct
		}

		if ok, err := keyExists(txn, activityKey(activity)); err != nil {
			return err
		} else if !ok {
			return errors.UnknownActivityf("Unknown activity: %s", activity)
		}

		var c domain.Category
		if err := getJSON(txn, categoryKey(category), &c); errors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrUnknownCategory
		} else if err != nil {
			return err
		}
		if !c.IsLinkedTo(activity) {
			return errors.ErrCategoryNotLinked
		}

		p = &domain.Product{
			Name:      name,
			Slug:      normalize.Slugify(name),
			Activity:  activity,
			Category:  category,
			CreatedAt: time.Now(),
		}
		if err := setJSON(txn, productKey(name), p); err != nil {
			return err
		}

		// Category -> product and activity -> product indexes.
		if err := txn.Set(memberKey(categoryProductsPrefix, category, name), []byte{}); err != nil {
			return err
		}
		return txn.Set(memberKey(activityProductsPrefix, activity, name), []byte{})
	})
	if err != nil {
		return opError(fmt.Sprintf("add product %q", name), err)
	}

	if err := s.searchIndexer.IndexProduct(ctx, p); err != nil && s.logger != nil {
		s.logger.Warn("failed to index product", "product", p.Name, "error", err)
	}
	s.emit(domain.EventProductAdded, p.Name, p)

	return nil
}

// GetProduct retrieves a product by name.
func (s *Store) GetProduct(ctx context.Context, name string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var p domain.Product
	err := s.db.View(func(txn *badger.Txn) error {
		err := getJSON(txn, productKey(name), &p)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrUnknownProduct
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// ListProducts returns every product ordered by name.
func (s *Store) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var products []*domain.Product
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		products, err = scanJSON[domain.Product](txn, []byte(productPrefix))
		return err
	})
	if err != nil {
		return nil, opError("list products", err)
	}

	return products, nil
}

// ProductsForCategory returns the products of category in ascending order.
func (s *Store) ProductsForCategory(ctx context.Context, category string) ([]string, error) {
	return s.members(ctx, categoryProductsPrefix, category)
}

// ProductsForActivity returns the products of activity in ascending order.
func (s *Store) ProductsForActivity(ctx context.Context, activity string) ([]string, error) {
	return s.members(ctx, activityProductsPrefix, activity)
}

// ProductsFiltered returns the products of activity whose category is one of
// categories, in the same order as ProductsForActivity. No categories means
// no products.
func (s *Store) ProductsFiltered(ctx context.Context, activity string, categories ...string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := make([]string, 0)
	if len(categories) == 0 {
		return result, nil
	}

	wanted := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		wanted[c] = struct{}{}
	}

	err := s.db.View(func(txn *badger.Txn) error {
		for _, name := range scanSuffixes(txn, memberScan(activityProductsPrefix, activity)) {
			var p domain.Product
			if err := getJSON(txn, productKey(name), &p); err != nil {
				return fmt.Errorf("load product %q: %w", name, err)
			}
			if _, ok := wanted[p.Category]; ok {
				result = append(result, name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// members lists the index members of owner under prefix.
func (s *Store) members(ctx context.Context, prefix, owner string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		names = scanSuffixes(txn, memberScan(prefix, owner))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}
