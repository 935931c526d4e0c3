package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bharat-properties/intake-cli/internal/export"
	"github.com/bharat-properties/intake-cli/internal/model"
	"github.com/bharat-properties/intake-cli/internal/store"
)

var (
	exportOut      string
	exportIntent   string
	exportCategory string
	exportMinScore int
	exportLimit    int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored deals to an XLSX workbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		s, err := openStore(ctx)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		defer s.Close() //nolint:errcheck

		deals, err := s.ListDeals(ctx, store.DealFilter{
			Intent:   model.Intent(exportIntent),
			Category: model.Category(exportCategory),
			MinScore: exportMinScore,
			Limit:    exportLimit,
		})
		if err != nil {
			return eris.Wrap(err, "list deals")
		}

		if err := export.WriteXLSX(exportOut, deals); err != nil {
			return eris.Wrap(err, "write xlsx")
		}

		zap.L().Info("export complete",
			zap.String("out", exportOut),
			zap.Int("deals", len(deals)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output XLSX path (required)")
	_ = exportCmd.MarkFlagRequired("out")
	exportCmd.Flags().StringVar(&exportIntent, "intent", "", "filter by intent")
	exportCmd.Flags().StringVar(&exportCategory, "category", "", "filter by category")
	exportCmd.Flags().IntVar(&exportMinScore, "min-score", 0, "minimum confidence score")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 1000, "maximum rows to export")
	rootCmd.AddCommand(exportCmd)
}
