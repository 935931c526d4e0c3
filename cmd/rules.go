package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	rulesFile    string
	rulesOffline bool
)

// ruleSummary is the printable shape of an effective rule set.
type ruleSummary struct {
	City       string              `json:"city_pattern"`
	Locality   string              `json:"locality_pattern"`
	Size       string              `json:"size_pattern"`
	Price      string              `json:"price_pattern"`
	Categories map[string][]string `json:"categories"`
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the effective parser rule set",
	Long:  "Resolves the pattern configuration the parser would use right now, including any remote or file overrides, and prints it.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rs := resolveRuleSet(cmd.Context(), rulesFile, rulesOffline)

		categories := make(map[string][]string, len(rs.Categories))
		for _, rule := range rs.Categories {
			categories[string(rule.Category)] = rule.Keywords
		}

		zap.L().Info("rules resolved",
			zap.Int("categories", len(rs.Categories)),
			zap.Bool("offline", rulesOffline),
		)

		return printJSON(ruleSummary{
			City:       rs.City.String(),
			Locality:   rs.Locality.String(),
			Size:       rs.Size.String(),
			Price:      rs.Price.String(),
			Categories: categories,
		})
	},
}

func init() {
	rulesCmd.Flags().StringVar(&rulesFile, "file", "", "YAML pattern override file")
	rulesCmd.Flags().BoolVar(&rulesOffline, "offline", false, "skip the remote rule fetch")
	rootCmd.AddCommand(rulesCmd)
}
