package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/bharat-properties/intake-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS import_batches (
	id            TEXT PRIMARY KEY,
	source        TEXT NOT NULL,
	message_count INTEGER NOT NULL DEFAULT 0,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS imported_messages (
	id          TEXT PRIMARY KEY,
	batch_id    TEXT NOT NULL REFERENCES import_batches(id),
	source      TEXT NOT NULL,
	content     TEXT NOT NULL,
	received_at DATETIME,
	metadata    TEXT
);

CREATE TABLE IF NOT EXISTS deals (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	intent     TEXT NOT NULL,
	category   TEXT NOT NULL,
	score      INTEGER NOT NULL,
	deal       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_imported_messages_batch_id ON imported_messages(batch_id);
CREATE INDEX IF NOT EXISTS idx_deals_intent ON deals(intent);
CREATE INDEX IF NOT EXISTS idx_deals_category ON deals(category);
CREATE INDEX IF NOT EXISTS idx_deals_score ON deals(score);
CREATE INDEX IF NOT EXISTS idx_deals_source ON deals(source);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateBatch(ctx context.Context, source string, messageCount int) (*model.ImportBatch, error) {
	batch := &model.ImportBatch{
		ID:           uuid.NewString(),
		Source:       source,
		MessageCount: messageCount,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO import_batches (id, source, message_count, created_at) VALUES (?, ?, ?, ?)`,
		batch.ID, batch.Source, batch.MessageCount, batch.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert batch")
	}
	return batch, nil
}

func (s *SQLiteStore) SaveMessages(ctx context.Context, batchID string, msgs []model.ImportedMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	for _, msg := range msgs {
		metadata, err := json.Marshal(msg.Metadata)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal metadata")
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO imported_messages (id, batch_id, source, content, received_at, metadata) VALUES (?, ?, ?, ?, ?, ?)`,
			msg.ID, batchID, msg.Source, msg.Content, msg.ReceivedAt, string(metadata),
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert message %s", msg.ID)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit messages")
}

func (s *SQLiteStore) SaveDeals(ctx context.Context, source string, deals []model.ParsedDeal) ([]model.StoredDeal, error) {
	if len(deals) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stored := make([]model.StoredDeal, 0, len(deals))
	now := time.Now().UTC()

	for _, deal := range deals {
		dealJSON, err := json.Marshal(deal)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: marshal deal")
		}
		sd := model.StoredDeal{
			ID:        uuid.NewString(),
			Source:    source,
			Deal:      deal,
			CreatedAt: now,
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO deals (id, source, intent, category, score, deal, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sd.ID, source, string(deal.Intent), string(deal.Category), deal.ConfidenceScore, string(dealJSON), now,
		)
		if err != nil {
			return nil, eris.Wrapf(err, "sqlite: insert deal %s", sd.ID)
		}
		stored = append(stored, sd)
	}

	if err := tx.Commit(); err != nil {
		return nil, eris.Wrap(err, "sqlite: commit deals")
	}
	return stored, nil
}

func (s *SQLiteStore) GetDeal(ctx context.Context, id string) (*model.StoredDeal, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, deal, created_at FROM deals WHERE id = ?`, id)

	var sd model.StoredDeal
	var dealJSON string
	if err := row.Scan(&sd.ID, &sd.Source, &dealJSON, &sd.CreatedAt); err != nil {
		return nil, eris.Wrapf(err, "sqlite: get deal %s", id)
	}
	if err := json.Unmarshal([]byte(dealJSON), &sd.Deal); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal deal")
	}
	return &sd, nil
}

func (s *SQLiteStore) ListDeals(ctx context.Context, filter DealFilter) ([]model.StoredDeal, error) {
	query := `SELECT id, source, deal, created_at FROM deals WHERE 1=1`
	var args []any

	if filter.Intent != "" {
		query += ` AND intent = ?`
		args = append(args, string(filter.Intent))
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, string(filter.Category))
	}
	if filter.Source != "" {
		query += ` AND source = ?`
		args = append(args, filter.Source)
	}
	if filter.MinScore > 0 {
		query += ` AND score >= ?`
		args = append(args, filter.MinScore)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list deals")
	}
	defer rows.Close() //nolint:errcheck

	var deals []model.StoredDeal
	for rows.Next() {
		var sd model.StoredDeal
		var dealJSON string
		if err := rows.Scan(&sd.ID, &sd.Source, &dealJSON, &sd.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan deal")
		}
		if err := json.Unmarshal([]byte(dealJSON), &sd.Deal); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal deal")
		}
		deals = append(deals, sd)
	}
	return deals, eris.Wrap(rows.Err(), "sqlite: iterate deals")
}
