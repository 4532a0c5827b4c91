package store

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/domain"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/errors"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/normalize"
)

// DefineActivities adds each name to the activity set.
// Names that are already defined, including repeats within names, are
// absorbed silently. Returns ErrEmptyInput when names is empty.
func (s *Store) DefineActivities(ctx context.Context, names ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(names) == 0 {
		return errors.ErrEmptyInput
	}
	if err := checkNames("activity", names...); err != nil {
		return err
	}

	var created []*domain.Activity

	err := s.db.Update(func(txn *badger.Txn) error {
		now := time.Now()
		for _, name := range names {
			key := activityKey(name)
			exists, err := keyExists(txn, key)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			a := &domain.Activity{
				Name:      name,
				Slug:      normalize.Slugify(name),
				CreatedAt: now,
			}
			if err := setJSON(txn, key, a); err != nil {
				return err
			}
			created = append(created, a)
		}
		return nil
	})
	if err != nil {
		return opError("define activities", err)
	}

	for _, a := range created {
		s.emit(domain.EventActivityDefined, a.Name, a)
	}

	return nil
}

// ListActivities returns every activity name in ascending order.
func (s *Store) ListActivities(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		names = scanSuffixes(txn, []byte(activityPrefix))
		return nil
	})
	if err != nil {
		return nil, opError("list activities", err)
	}

	return names, nil
}
