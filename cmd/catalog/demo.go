package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/domain"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/service"
)

func newDemoCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Load the sample catalog and print its listings and rating aggregates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			if err := loadSampleCatalog(ctx, a.catalog); err != nil {
				return err
			}
			return printReport(ctx, cmd.OutOrStdout(), a)
		},
	}
}

// loadSampleCatalog defines three activities, two categories, three products
// and one rating per product.
func loadSampleCatalog(ctx context.Context, catalog *service.CatalogService) error {
	if err := catalog.DefineActivities(ctx, service.DefineActivitiesRequest{
		Names: []string{"Trekking", "Running", "Swimming"},
	}); err != nil {
		return err
	}

	for _, c := range []service.AddCategoryRequest{
		{Name: "Shorts", Activities: []string{"Trekking", "Running"}},
		{Name: "Swimsuit", Activities: []string{"Swimming"}},
	} {
		if err := catalog.AddCategory(ctx, c); err != nil {
			return err
		}
	}

	for _, p := range []service.AddProductRequest{
		{Name: "TrekShort1", Activity: "Trekking", Category: "Shorts"},
		{Name: "SwimGear1", Activity: "Swimming", Category: "Swimsuit"},
		{Name: "RunShort1", Activity: "Running", Category: "Shorts"},
	} {
		if err := catalog.AddProduct(ctx, p); err != nil {
			return err
		}
	}

	for _, r := range []service.AddRatingRequest{
		{Product: "TrekShort1", User: "User1", Stars: 4, Comment: "Great for hiking!"},
		{Product: "SwimGear1", User: "User2", Stars: 5, Comment: "Perfect fit!"},
		{Product: "RunShort1", User: "User3", Stars: 3, Comment: "Decent, but could be better."},
	} {
		if _, err := catalog.AddRating(ctx, r); err != nil {
			return err
		}
	}

	return nil
}

func printReport(ctx context.Context, w io.Writer, a *app) error {
	activities, err := a.catalog.ListActivities(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Activities: %s\n", formatList(activities))

	count, err := a.catalog.CountCategories(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Number of categories: %d\n", count)

	categories, err := a.catalog.CategoriesForActivity(ctx, "Trekking")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Categories for Trekking: %s\n", formatList(categories))

	shorts, err := a.catalog.ProductsForCategory(ctx, "Shorts")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Products for category 'Shorts': %s\n", formatList(shorts))

	trekking, err := a.catalog.ProductsForActivity(ctx, "Trekking")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Products for activity 'Trekking': %s\n", formatList(trekking))

	ratings, err := a.catalog.RatingsForProduct(ctx, "SwimGear1")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Ratings for SwimGear1: %s\n", formatList(ratings))

	trekStars, err := a.stats.StarsOfProduct(ctx, "TrekShort1")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Average stars for TrekShort1: %s\n", formatStars(trekStars))

	avg, err := a.stats.AverageStars(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Overall average stars: %s\n", formatStars(avg))

	perActivity, err := a.stats.StarsPerActivity(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Stars per activity: %s\n", formatActivityStars(perActivity))

	perStars, err := a.stats.ProductsPerStars(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Products per stars: %s\n", formatStarGroups(perStars))

	return nil
}

func formatList(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

// formatStars always shows a fractional part, so 4 prints as "4.0".
func formatStars(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatActivityStars(entries []domain.ActivityStars) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.Activity + "=" + formatStars(e.Stars)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatStarGroups(groups []domain.StarGroup) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = formatStars(g.Stars) + "=" + formatList(g.Products)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
