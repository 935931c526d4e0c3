package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/bharat-properties/intake-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store needs; pgxmock satisfies it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS import_batches (
	id            TEXT PRIMARY KEY,
	source        TEXT NOT NULL,
	message_count INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS imported_messages (
	id          TEXT PRIMARY KEY,
	batch_id    TEXT NOT NULL REFERENCES import_batches(id),
	source      TEXT NOT NULL,
	content     TEXT NOT NULL,
	received_at TIMESTAMPTZ,
	metadata    JSONB
);

CREATE TABLE IF NOT EXISTS deals (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	intent     TEXT NOT NULL,
	category   TEXT NOT NULL,
	score      INTEGER NOT NULL,
	deal       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_imported_messages_batch_id ON imported_messages(batch_id);
CREATE INDEX IF NOT EXISTS idx_deals_intent ON deals(intent);
CREATE INDEX IF NOT EXISTS idx_deals_category ON deals(category);
CREATE INDEX IF NOT EXISTS idx_deals_score ON deals(score);
CREATE INDEX IF NOT EXISTS idx_deals_source ON deals(source);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateBatch(ctx context.Context, source string, messageCount int) (*model.ImportBatch, error) {
	batch := &model.ImportBatch{
		ID:           uuid.NewString(),
		Source:       source,
		MessageCount: messageCount,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO import_batches (id, source, message_count, created_at) VALUES ($1, $2, $3, $4)`,
		batch.ID, batch.Source, batch.MessageCount, batch.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert batch")
	}
	return batch, nil
}

func (s *PostgresStore) SaveMessages(ctx context.Context, batchID string, msgs []model.ImportedMessage) error {
	for _, msg := range msgs {
		metadata, err := json.Marshal(msg.Metadata)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal metadata")
		}
		_, err = s.pool.Exec(ctx,
			`INSERT INTO imported_messages (id, batch_id, source, content, received_at, metadata) VALUES ($1, $2, $3, $4, $5, $6)`,
			msg.ID, batchID, msg.Source, msg.Content, msg.ReceivedAt, metadata,
		)
		if err != nil {
			return eris.Wrapf(err, "postgres: insert message %s", msg.ID)
		}
	}
	return nil
}

func (s *PostgresStore) SaveDeals(ctx context.Context, source string, deals []model.ParsedDeal) ([]model.StoredDeal, error) {
	stored := make([]model.StoredDeal, 0, len(deals))
	now := time.Now().UTC()

	for _, deal := range deals {
		dealJSON, err := json.Marshal(deal)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: marshal deal")
		}
		sd := model.StoredDeal{
			ID:        uuid.NewString(),
			Source:    source,
			Deal:      deal,
			CreatedAt: now,
		}
		_, err = s.pool.Exec(ctx,
			`INSERT INTO deals (id, source, intent, category, score, deal, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			sd.ID, source, string(deal.Intent), string(deal.Category), deal.ConfidenceScore, dealJSON, now,
		)
		if err != nil {
			return nil, eris.Wrapf(err, "postgres: insert deal %s", sd.ID)
		}
		stored = append(stored, sd)
	}
	return stored, nil
}

func (s *PostgresStore) GetDeal(ctx context.Context, id string) (*model.StoredDeal, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, source, deal, created_at FROM deals WHERE id = $1`, id)

	var sd model.StoredDeal
	var dealJSON []byte
	if err := row.Scan(&sd.ID, &sd.Source, &dealJSON, &sd.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(err, "postgres: deal %s not found", id)
		}
		return nil, eris.Wrapf(err, "postgres: get deal %s", id)
	}
	if err := json.Unmarshal(dealJSON, &sd.Deal); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal deal")
	}
	return &sd, nil
}

func (s *PostgresStore) ListDeals(ctx context.Context, filter DealFilter) ([]model.StoredDeal, error) {
	query := `SELECT id, source, deal, created_at FROM deals WHERE 1=1`
	var args []any

	if filter.Intent != "" {
		args = append(args, string(filter.Intent))
		query += fmt.Sprintf(` AND intent = $%d`, len(args))
	}
	if filter.Category != "" {
		args = append(args, string(filter.Category))
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if filter.Source != "" {
		args = append(args, filter.Source)
		query += fmt.Sprintf(` AND source = $%d`, len(args))
	}
	if filter.MinScore > 0 {
		args = append(args, filter.MinScore)
		query += fmt.Sprintf(` AND score >= $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list deals")
	}
	defer rows.Close()

	var deals []model.StoredDeal
	for rows.Next() {
		var sd model.StoredDeal
		var dealJSON []byte
		if err := rows.Scan(&sd.ID, &sd.Source, &dealJSON, &sd.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan deal")
		}
		if err := json.Unmarshal(dealJSON, &sd.Deal); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal deal")
		}
		deals = append(deals, sd)
	}
	return deals, eris.Wrap(rows.Err(), "postgres: iterate deals")
}
