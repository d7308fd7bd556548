// internal/infra/database/postgres_state_repository.go
package database

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"

	"homework_status_bot/internal/domain/homework"
)

// The agent serves a single user, so the table holds at most one row.
const stateRowID = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS poll_state (
  id           SMALLINT PRIMARY KEY,
  cursor_ts    BIGINT NOT NULL,
  last_message TEXT NOT NULL DEFAULT '',
  updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type PostgresStateRepository struct {
	db *sql.DB
}

func NewPostgresStateRepository(db *sql.DB) *PostgresStateRepository {
	return &PostgresStateRepository{db: db}
}

// EnsureSchema creates the poll_state table if it is missing.
func (r *PostgresStateRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return errors.Wrap(err, "create poll_state table")
	}
	return nil
}

func (r *PostgresStateRepository) Load(ctx context.Context) (*homework.PollState, error) {
	query := `SELECT cursor_ts, last_message, updated_at FROM poll_state WHERE id = $1`
	s := &homework.PollState{}
	err := r.db.QueryRowContext(ctx, query, stateRowID).Scan(&s.Cursor, &s.LastMessage, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, homework.ErrStateNotFound
		}
		return nil, errors.Wrap(err, "load poll state")
	}
	return s, nil
}

func (r *PostgresStateRepository) Save(ctx context.Context, s *homework.PollState) error {
	query := `INSERT INTO poll_state (id, cursor_ts, last_message, updated_at)
               VALUES ($1, $2, $3, $4)
               ON CONFLICT (id) DO UPDATE
               SET cursor_ts = EXCLUDED.cursor_ts, last_message = EXCLUDED.last_message, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, stateRowID, s.Cursor, s.LastMessage, s.UpdatedAt); err != nil {
		return errors.Wrap(err, "save poll state")
	}
	return nil
}
