package main

import (
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bharat-properties/intake-cli/internal/parser"
)

var (
	parseFile      string
	parseSource    string
	parseMinScore  int
	parseRulesFile string
	parseOffline   bool
	parseSave      bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [text]",
	Short: "Parse classified text into structured deals",
	Long:  "Reads text from the argument, --file, or stdin, segments it and runs the extraction pipeline. OCR- and PDF-sourced text gets the configured confidence cutoff applied.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		text, err := readInput(args)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return eris.New("no input text: pass an argument, --file, or pipe to stdin")
		}

		rs := resolveRuleSet(ctx, parseRulesFile, parseOffline)
		p := parser.New(rs, parser.WithConcurrency(cfg.Parser.MaxConcurrentSegments))

		deals, err := p.Parse(ctx, text)
		if err != nil {
			return eris.Wrap(err, "parse text")
		}

		cutoff := parseMinScore
		if cutoff < 0 {
			cutoff = cutoffFor(parseSource)
		}
		kept := filterByScore(deals, cutoff)

		zap.L().Info("parse complete",
			zap.String("source", parseSource),
			zap.Int("segments", len(deals)),
			zap.Int("kept", len(kept)),
			zap.Int("cutoff", cutoff),
		)

		if parseSave && len(kept) > 0 {
			s, err := openStore(ctx)
			if err != nil {
				return eris.Wrap(err, "open store")
			}
			defer s.Close() //nolint:errcheck

			if _, err := s.SaveDeals(ctx, parseSource, kept); err != nil {
				return eris.Wrap(err, "save deals")
			}
		}

		return printJSON(kept)
	},
}

func readInput(args []string) (string, error) {
	if parseFile != "" {
		data, err := os.ReadFile(parseFile)
		if err != nil {
			return "", eris.Wrapf(err, "read %s", parseFile)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", eris.Wrap(err, "read stdin")
	}
	return string(data), nil
}

func init() {
	parseCmd.Flags().StringVar(&parseFile, "file", "", "read text from file instead of argument/stdin")
	parseCmd.Flags().StringVar(&parseSource, "source", sourcePaste, "text source: paste, ocr, or pdf")
	parseCmd.Flags().IntVar(&parseMinScore, "min-score", -1, "confidence cutoff; deals scoring at or below it are dropped (-1 = derive from source)")
	parseCmd.Flags().StringVar(&parseRulesFile, "rules-file", "", "YAML pattern override file (skips the remote fetch)")
	parseCmd.Flags().BoolVar(&parseOffline, "offline", false, "skip the remote rule fetch")
	parseCmd.Flags().BoolVar(&parseSave, "save", false, "persist kept deals to the store")
	rootCmd.AddCommand(parseCmd)
}
