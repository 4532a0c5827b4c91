package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/domain"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/errors"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/logger"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/observability"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/store"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/validation"
)

// Operation names used for metrics and logs.
const (
	OpDefineActivities = "define_activities"
	OpAddCategory      = "add_category"
	OpAddProduct       = "add_product"
	OpAddRating        = "add_rating"
)

// DefineActivitiesRequest names the activities to define.
// An empty list is rejected by the store with "No activities provided".
//
// Requests are stricter than the store: a blank or whitespace-only name in
// any request fails validation with EMPTY_INPUT, while the store accepts
// any name without a NUL byte.
type DefineActivitiesRequest struct {
	Names []string `json:"names" validate:"dive,notblank"`
}

// AddCategoryRequest creates a category linked to existing activities.
type AddCategoryRequest struct {
	Name       string   `json:"name" validate:"notblank"`
	Activities []string `json:"activities" validate:"dive,notblank"`
}

// AddProductRequest creates a product bound to an (activity, category) pair.
type AddProductRequest struct {
	Name     string `json:"name" validate:"notblank"`
	Activity string `json:"activity" validate:"notblank"`
	Category string `json:"category" validate:"notblank"`
}

// AddRatingRequest records one user's rating of a product.
type AddRatingRequest struct {
	Product string `json:"product" validate:"notblank"`
	User    string `json:"user" validate:"notblank"`
	Stars   int    `json:"stars" validate:"gte=0,lte=5"`
	Comment string `json:"comment"`
}

// CatalogService validates catalog writes and forwards them to the store,
// recording metrics and logs for every outcome.
type CatalogService struct {
	store     store.Catalog
	validator *validation.Validator
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	store store.Catalog,
	validator *validation.Validator,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		store:     store,
		validator: validator,
		metrics:   metrics,
		logger:    logger,
	}
}

// DefineActivities adds activities to the catalog. Already known names are
// absorbed.
func (s *CatalogService) DefineActivities(ctx context.Context, req DefineActivitiesRequest) error {
	started := time.Now()

	err := s.validator.Validate(req)
	if err == nil {
		err = s.store.DefineActivities(ctx, req.Names...)
	}
	s.finish(OpDefineActivities, started, err, "activities defined", "count", len(req.Names))
	if err != nil {
		return err
	}

	if all, listErr := s.store.ListActivities(ctx); listErr == nil {
		s.metrics.SetEntities(observability.KindActivity, len(all))
	} else {
		s.logger.Debug("entity gauge not refreshed", "kind", observability.KindActivity, "error", listErr)
	}
	return nil
}

// AddCategory creates a category linked to the given activities.
func (s *CatalogService) AddCategory(ctx context.Context, req AddCategoryRequest) error {
	started := time.Now()

	err := s.validator.Validate(req)
	if err == nil {
		err = s.store.AddCategory(ctx, req.Name, req.Activities...)
	}
	s.finish(OpAddCategory, started, err, "category added",
		"category", req.Name,
		"activities", req.Activities,
	)
	if err != nil {
		return err
	}

	if n, countErr := s.store.CountCategories(ctx); countErr == nil {
		s.metrics.SetEntities(observability.KindCategory, n)
	} else {
		s.logger.Debug("entity gauge not refreshed", "kind", observability.KindCategory, "error", countErr)
	}
	return nil
}

// AddProduct creates a product. The store indexes it for search after commit.
func (s *CatalogService) AddProduct(ctx context.Context, req AddProductRequest) error {
	started := time.Now()

	err := s.validator.Validate(req)
	if err == nil {
		err = s.store.AddProduct(ctx, req.Name, req.Activity, req.Category)
	}
	s.finish(OpAddProduct, started, err, "product added",
		"product", req.Name,
		"activity", req.Activity,
		"category", req.Category,
	)
	if err != nil {
		return err
	}

	s.metrics.AddEntities(observability.KindProduct, 1)
	return nil
}

// AddRating records a rating. Stars outside [0,5] fail with INVALID_STARS
// before the product is looked up.
func (s *CatalogService) AddRating(ctx context.Context, req AddRatingRequest) (*domain.Rating, error) {
	started := time.Now()

	var rating *domain.Rating
	err := s.validator.Validate(req)
	if err == nil {
		rating, err = s.store.AddRating(ctx, req.Product, req.User, req.Stars, req.Comment)
	}
	s.finish(OpAddRating, started, err, "rating added",
		"product", req.Product,
		"user", req.User,
		"stars", req.Stars,
	)
	if err != nil {
		return nil, err
	}

	s.metrics.AddEntities(observability.KindRating, 1)
	return rating, nil
}

// ListActivities returns every activity in ascending order.
func (s *CatalogService) ListActivities(ctx context.Context) ([]string, error) {
	return s.store.ListActivities(ctx)
}

// GetCategory returns a category with its linked activities.
func (s *CatalogService) GetCategory(ctx context.Context, name string) (*domain.Category, error) {
	return s.store.GetCategory(ctx, name)
}

// CountCategories returns the number of categories.
func (s *CatalogService) CountCategories(ctx context.Context) (int, error) {
	return s.store.CountCategories(ctx)
}

// CategoriesForActivity returns the categories linked to activity.
func (s *CatalogService) CategoriesForActivity(ctx context.Context, activity string) ([]string, error) {
	return s.store.CategoriesForActivity(ctx, activity)
}

// GetProduct returns a product by name.
func (s *CatalogService) GetProduct(ctx context.Context, name string) (*domain.Product, error) {
	return s.store.GetProduct(ctx, name)
}

// ListProducts returns every product in ascending name order.
func (s *CatalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.store.ListProducts(ctx)
}

// ProductsForCategory returns the products in category.
func (s *CatalogService) ProductsForCategory(ctx context.Context, category string) ([]string, error) {
	return s.store.ProductsForCategory(ctx, category)
}

// ProductsForActivity returns the products of activity.
func (s *CatalogService) ProductsForActivity(ctx context.Context, activity string) ([]string, error) {
	return s.store.ProductsForActivity(ctx, activity)
}

// ProductsFiltered returns the products of activity whose category is one of
// categories.
func (s *CatalogService) ProductsFiltered(ctx context.Context, activity string, categories ...string) ([]string, error) {
	return s.store.ProductsFiltered(ctx, activity, categories...)
}

// RatingsForProduct returns the product's ratings as "stars : comment".
func (s *CatalogService) RatingsForProduct(ctx context.Context, product string) ([]string, error) {
	return s.store.RatingsForProduct(ctx, product)
}

// finish records metrics for a write and logs its outcome.
func (s *CatalogService) finish(op string, started time.Time, err error, msg string, attrs ...any) {
	s.metrics.ObserveOperation(op, started, err)

	if err == nil {
		s.logger.Info(msg, attrs...)
		return
	}

	attrs = append(attrs, logger.KeyOperation, op)
	attrs = append(attrs, logger.ErrorArgs(err)...)
	if errors.CodeOf(err).IsRuleViolation() {
		s.logger.Warn("catalog write rejected", attrs...)
		return
	}
	s.logger.Error("catalog write failed", attrs...)
}
