package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bharat-properties/intake-cli/internal/config"
	"github.com/bharat-properties/intake-cli/internal/model"
	"github.com/bharat-properties/intake-cli/internal/pattern"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	prev := cfg
	cfg = &config.Config{
		Parser: config.ParserConfig{
			MinScoreOCR:           10,
			MinScoreArchive:       20,
			MaxConcurrentSegments: 8,
		},
	}
	t.Cleanup(func() { cfg = prev })
}

func TestCutoffFor(t *testing.T) {
	setTestConfig(t)

	assert.Equal(t, -1, cutoffFor(sourcePaste))
	assert.Equal(t, 10, cutoffFor(sourceOCR))
	assert.Equal(t, 20, cutoffFor(sourcePDF))
	assert.Equal(t, 20, cutoffFor(sourceArchive))
	assert.Equal(t, -1, cutoffFor("email"))
}

func TestFilterByScore(t *testing.T) {
	deals := []model.ParsedDeal{
		{ConfidenceScore: 0},
		{ConfidenceScore: 10},
		{ConfidenceScore: 25},
		{ConfidenceScore: 100},
	}

	// Negative cutoff keeps everything, score-0 records included.
	assert.Len(t, filterByScore(deals, -1), 4)

	kept := filterByScore(deals, 10)
	require.Len(t, kept, 2)
	assert.Equal(t, 25, kept[0].ConfidenceScore)
	assert.Equal(t, 100, kept[1].ConfidenceScore)

	// The cutoff itself is dropped: strictly-greater survives.
	assert.Len(t, filterByScore(deals, 100), 0)
	assert.Len(t, filterByScore(deals, 0), 3)
}

func TestResolveRuleSet_FileOverride(t *testing.T) {
	setTestConfig(t)

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cities:\n  - Ambala\n"), 0o644))

	rs := resolveRuleSet(context.Background(), path, false)
	assert.Equal(t, "Ambala", rs.City.FindString("plot in Ambala"))
	assert.Empty(t, rs.City.FindString("plot in Mohali"))
}

func TestResolveRuleSet_BadFileFallsBack(t *testing.T) {
	setTestConfig(t)

	rs := resolveRuleSet(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"), false)
	assert.Same(t, pattern.Default(), rs)
}

func TestResolveRuleSet_OfflineAndUnconfigured(t *testing.T) {
	setTestConfig(t)

	assert.Same(t, pattern.Default(), resolveRuleSet(context.Background(), "", true))
	assert.Same(t, pattern.Default(), resolveRuleSet(context.Background(), "", false))
}

func TestResolveRuleSet_RemoteFetch(t *testing.T) {
	setTestConfig(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":[{"type":"CITY","value":"Ambala"}]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	cfg.Rules.Endpoint = srv.URL
	cfg.Rules.TimeoutSecs = 5

	rs := resolveRuleSet(context.Background(), "", false)
	assert.Equal(t, "Ambala", rs.City.FindString("plot in Ambala"))
}

func TestResolveRuleSet_RemoteFailureFallsBack(t *testing.T) {
	setTestConfig(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg.Rules.Endpoint = srv.URL
	cfg.Rules.TimeoutSecs = 5

	assert.Same(t, pattern.Default(), resolveRuleSet(context.Background(), "", false))
}

func TestReadInput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("Plot for sale Sector 70"), 0o644))

	prev := parseFile
	parseFile = path
	t.Cleanup(func() { parseFile = prev })

	text, err := readInput(nil)
	require.NoError(t, err)
	assert.Equal(t, "Plot for sale Sector 70", text)
}

func TestReadInput_Args(t *testing.T) {
	text, err := readInput([]string{"Plot for sale", "Sector 70"})
	require.NoError(t, err)
	assert.Equal(t, "Plot for sale Sector 70", text)
}

func TestReadInput_MissingFile(t *testing.T) {
	prev := parseFile
	parseFile = filepath.Join(t.TempDir(), "absent.txt")
	t.Cleanup(func() { parseFile = prev })

	_, err := readInput(nil)
	assert.Error(t, err)
}
