package store

import (
	"context"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/domain"
)

// Catalog defines every catalog operation. *Store implements it.
type Catalog interface {
	// Lifecycle
	Close() error
	SetSearchIndexer(indexer SearchIndexer)

	// Activities
	DefineActivities(ctx context.Context, names ...string) error
	ListActivities(ctx context.Context) ([]string, error)

	// Categories
	AddCategory(ctx context.Context, name string, activities ...string) error
	GetCategory(ctx context.Context, name string) (*domain.Category, error)
	CountCategories(ctx context.Context) (int, error)
	CategoriesForActivity(ctx context.Context, activity string) ([]string, error)

	// Products
	AddProduct(ctx context.Context, name, activity, category string) error
	GetProduct(ctx context.Context, name string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ProductsForCategory(ctx context.Context, category string) ([]string, error)
	ProductsForActivity(ctx context.Context, activity string) ([]string, error)
	ProductsFiltered(ctx context.Context, activity string, categories ...string) ([]string, error)

	// Ratings
	AddRating(ctx context.Context, product, user string, stars int, comment string) (*domain.Rating, error)
	ListRatings(ctx context.Context, product string) ([]*domain.Rating, error)
	RatingsForProduct(ctx context.Context, product string) ([]string, error)
}

var _ Catalog = (*Store)(nil)
