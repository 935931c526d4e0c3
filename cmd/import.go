package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bharat-properties/intake-cli/internal/archive"
	"github.com/bharat-properties/intake-cli/internal/model"
	"github.com/bharat-properties/intake-cli/internal/parser"
)

var (
	importZipPath   string
	importMinScore  int
	importRulesFile string
	importOffline   bool
	importSave      bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import deals from a chat-export archive",
	Long:  "Decompresses a chat-export zip, reconstructs the messages and parses each one. Deals at or below the archive confidence cutoff are dropped.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(importZipPath)
		if err != nil {
			return eris.Wrapf(err, "read %s", importZipPath)
		}

		msgs, err := archive.ReadArchive(data)
		if err != nil {
			return eris.Wrap(err, "read archive")
		}
		if len(msgs) == 0 {
			zap.L().Info("archive contained no parseable messages", zap.String("zip", importZipPath))
			return printJSON([]model.ParsedDeal{})
		}

		rs := resolveRuleSet(ctx, importRulesFile, importOffline)
		p := parser.New(rs, parser.WithConcurrency(cfg.Parser.MaxConcurrentSegments))

		var deals []model.ParsedDeal
		for _, msg := range msgs {
			parsed, err := p.Parse(ctx, msg.Content)
			if err != nil {
				return eris.Wrap(err, "parse message")
			}
			deals = append(deals, parsed...)
		}

		cutoff := importMinScore
		if cutoff < 0 {
			cutoff = cutoffFor(sourceArchive)
		}
		kept := filterByScore(deals, cutoff)

		zap.L().Info("import complete",
			zap.String("zip", importZipPath),
			zap.Int("messages", len(msgs)),
			zap.Int("segments", len(deals)),
			zap.Int("kept", len(kept)),
			zap.Int("cutoff", cutoff),
		)

		if importSave {
			s, err := openStore(ctx)
			if err != nil {
				return eris.Wrap(err, "open store")
			}
			defer s.Close() //nolint:errcheck

			batch, err := s.CreateBatch(ctx, importZipPath, len(msgs))
			if err != nil {
				return eris.Wrap(err, "create batch")
			}
			if err := s.SaveMessages(ctx, batch.ID, msgs); err != nil {
				return eris.Wrap(err, "save messages")
			}
			if _, err := s.SaveDeals(ctx, sourceArchive, kept); err != nil {
				return eris.Wrap(err, "save deals")
			}
		}

		return printJSON(kept)
	},
}

func init() {
	importCmd.Flags().StringVar(&importZipPath, "zip", "", "path to chat-export zip (required)")
	_ = importCmd.MarkFlagRequired("zip")
	importCmd.Flags().IntVar(&importMinScore, "min-score", -1, "confidence cutoff; deals scoring at or below it are dropped (-1 = use archive default)")
	importCmd.Flags().StringVar(&importRulesFile, "rules-file", "", "YAML pattern override file (skips the remote fetch)")
	importCmd.Flags().BoolVar(&importOffline, "offline", false, "skip the remote rule fetch")
	importCmd.Flags().BoolVar(&importSave, "save", false, "persist the batch, messages and kept deals")
	rootCmd.AddCommand(importCmd)
}
