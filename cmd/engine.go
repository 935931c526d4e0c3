package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/bharat-properties/intake-cli/internal/model"
	"github.com/bharat-properties/intake-cli/internal/pattern"
	"github.com/bharat-properties/intake-cli/internal/store"
	"github.com/bharat-properties/intake-cli/pkg/rules"
)

// Text sources accepted by parse commands. The source decides the default
// confidence cutoff applied after parsing.
const (
	sourcePaste   = "paste"
	sourceOCR     = "ocr"
	sourcePDF     = "pdf"
	sourceArchive = "archive"
)

// resolveRuleSet builds the effective pattern set for one invocation. A file
// override wins over the remote endpoint; a failed or disabled remote fetch
// silently degrades to the compiled-in defaults.
func resolveRuleSet(ctx context.Context, overrideFile string, offline bool) *pattern.RuleSet {
	if overrideFile != "" {
		o, err := pattern.LoadOverrideFile(overrideFile)
		if err != nil {
			zap.L().Warn("rule override file unusable, falling back to defaults",
				zap.String("file", overrideFile),
				zap.Error(err),
			)
			return pattern.Default()
		}
		return pattern.Resolve(o)
	}

	if offline || cfg.Rules.Endpoint == "" {
		return pattern.Default()
	}

	timeout := time.Duration(cfg.Rules.TimeoutSecs) * time.Second
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := rules.NewClient(cfg.Rules.Endpoint)
	records, err := client.Fetch(fetchCtx)
	if err != nil {
		zap.L().Warn("rule fetch failed, falling back to defaults", zap.Error(err))
		return pattern.Default()
	}

	return pattern.Resolve(pattern.OverrideFromRecords(records))
}

// openStore opens the configured store and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate("store"); err != nil {
		return nil, err
	}

	var (
		s   store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite":
		s, err = store.NewSQLite(cfg.Store.DSN)
	case "postgres":
		s, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Migrate(ctx); err != nil {
		s.Close() //nolint:errcheck
		return nil, err
	}
	return s, nil
}

// cutoffFor returns the score cutoff for a text source. Pasted text keeps
// everything, including score-0 records.
func cutoffFor(source string) int {
	switch source {
	case sourceOCR:
		return cfg.Parser.MinScoreOCR
	case sourcePDF, sourceArchive:
		return cfg.Parser.MinScoreArchive
	default:
		return -1
	}
}

// filterByScore drops deals whose score is at or below the cutoff. This is
// caller policy: the engine itself never filters.
func filterByScore(deals []model.ParsedDeal, cutoff int) []model.ParsedDeal {
	if cutoff < 0 {
		return deals
	}
	kept := make([]model.ParsedDeal, 0, len(deals))
	for _, d := range deals {
		if d.ConfidenceScore > cutoff {
			kept = append(kept, d)
		}
	}
	return kept
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode output")
}
