// Package store persists import batches, imported messages and parsed deals.
package store

import (
	"context"

	"github.com/bharat-properties/intake-cli/internal/model"
)

// DealFilter specifies criteria for listing stored deals.
type DealFilter struct {
	Intent   model.Intent   `json:"intent,omitempty"`
	Category model.Category `json:"category,omitempty"`
	Source   string         `json:"source,omitempty"`
	MinScore int            `json:"min_score,omitempty"`
	Limit    int            `json:"limit,omitempty"`
	Offset   int            `json:"offset,omitempty"`
}

// Store defines the persistence interface for the intake engine.
type Store interface {
	// Batches
	CreateBatch(ctx context.Context, source string, messageCount int) (*model.ImportBatch, error)
	SaveMessages(ctx context.Context, batchID string, msgs []model.ImportedMessage) error

	// Deals
	SaveDeals(ctx context.Context, source string, deals []model.ParsedDeal) ([]model.StoredDeal, error)
	GetDeal(ctx context.Context, id string) (*model.StoredDeal, error)
	ListDeals(ctx context.Context, filter DealFilter) ([]model.StoredDeal, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
