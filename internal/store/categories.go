package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/domain"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/errors"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/normalize"
)

// AddCategory registers a category linked to the given activities.
//
// Checks run in order: duplicate name, empty link list, then every linked
// activity. All checks finish before the first write, so a rejected category
// leaves the registry exactly as it was.
func (s *Store) AddCategory(ctx context.Context, name string, activities ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkNames("category", name); err != nil {
		return err
	}
	if err := checkNames("activity", activities...); err != nil {
		return err
	}

	var c *domain.Category

	err := s.db.Update(func(txn *badger.Txn) error {
		exists, err := keyExists(txn, categoryKey(name))
		if err != nil {
			return err
		}
		if exists {
			return errors.ErrDuplicateCategory
		}

		if len(activities) == 0 {
			return errors.EmptyInput("No activities linked to category")
		}

		for _, activity := range activities {
			ok, err := keyExists(txn, activityKey(activity))
			if err != nil {
				return err
			}
			if !ok {
				return errors.UnknownActivityf("Unknown activity: %s", activity)
			}
		}

		linked := slices.Compact(slices.Sorted(slices.Values(activities)))

		c = &domain.Category{
			Name:       name,
			Slug:       normalize.Slugify(name),
			Activities: linked,
			CreatedAt:  time.Now(),
		}
		if err := setJSON(txn, categoryKey(name), c); err != nil {
			return err
		}

		// Activity -> category index.
		for _, activity := range linked {
			if err := txn.Set(memberKey(activityCategoriesPrefix, activity, name), []byte{}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return opError(fmt.Sprintf("add category %q", name), err)
	}

	s.emit(domain.EventCategoryAdded, c.Name, c)
	return nil
}

// GetCategory retrieves a category by name.
func (s *Store) GetCategory(ctx context.Context, name string) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var c domain.Category
	err := s.db.View(func(txn *badger.Txn) error {
		err := getJSON(txn, categoryKey(name), &c)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrUnknownCategory
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// CountCategories returns the number of registered categories.
func (s *Store) CountCategories(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var n int
	err := s.db.View(func(txn *badger.Txn) error {
		n = countKeys(txn, []byte(categoryPrefix))
		return nil
	})
	if err != nil {
		return 0, err
	}

	return n, nil
}

// CategoriesForActivity returns the categories linked to activity in
// ascending order. Unknown activities yield an empty list.
func (s *Store) CategoriesForActivity(ctx context.Context, activity string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		names = scanSuffixes(txn, memberScan(activityCategoriesPrefix, activity))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}
