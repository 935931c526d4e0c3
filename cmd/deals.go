package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/bharat-properties/intake-cli/internal/model"
	"github.com/bharat-properties/intake-cli/internal/store"
)

var (
	dealsIntent   string
	dealsCategory string
	dealsSource   string
	dealsMinScore int
	dealsLimit    int
	dealsOffset   int
)

var dealsCmd = &cobra.Command{
	Use:   "deals",
	Short: "List stored deals",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		s, err := openStore(ctx)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		defer s.Close() //nolint:errcheck

		deals, err := s.ListDeals(ctx, store.DealFilter{
			Intent:   model.Intent(dealsIntent),
			Category: model.Category(dealsCategory),
			Source:   dealsSource,
			MinScore: dealsMinScore,
			Limit:    dealsLimit,
			Offset:   dealsOffset,
		})
		if err != nil {
			return eris.Wrap(err, "list deals")
		}

		return printJSON(deals)
	},
}

func init() {
	dealsCmd.Flags().StringVar(&dealsIntent, "intent", "", "filter by intent (BUYER, SELLER, LANDLORD, TENANT)")
	dealsCmd.Flags().StringVar(&dealsCategory, "category", "", "filter by category")
	dealsCmd.Flags().StringVar(&dealsSource, "source", "", "filter by source")
	dealsCmd.Flags().IntVar(&dealsMinScore, "min-score", 0, "minimum confidence score")
	dealsCmd.Flags().IntVar(&dealsLimit, "limit", 50, "maximum rows to return")
	dealsCmd.Flags().IntVar(&dealsOffset, "offset", 0, "rows to skip")
	rootCmd.AddCommand(dealsCmd)
}
