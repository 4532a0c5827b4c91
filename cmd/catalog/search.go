package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd(flags *rootFlags) *cobra.Command {
	var (
		activity   string
		categories []string
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the sample catalog's products by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			if err := loadSampleCatalog(ctx, a.catalog); err != nil {
				return err
			}

			query := strings.Join(args, " ")
			result, err := a.search.Search(ctx, query, activity, categories...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, hit := range result.Hits {
				fmt.Fprintf(w, "%s\t%s\t%s\n", hit.Name, hit.Activity, hit.Category)
			}
			fmt.Fprintf(w, "%d product(s)\n", result.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&activity, "activity", "", "only products of this activity")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "only products in these categories (repeatable)")

	return cmd
}
