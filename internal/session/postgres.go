package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver

	"taskvoice/internal/models"
)

// PostgresStore keeps conversation state in a sessions table, for
// deployments without Redis. Expiry is an expires_at column checked on
// read; stale rows are overwritten on the next write.
type PostgresStore struct {
	db  *sql.DB
	ttl time.Duration
}

// NewPostgresStore opens a postgres-backed session store and ensures the
// backing table exists.
func NewPostgresStore(databaseURL string, ttl time.Duration) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}
	store := &PostgresStore{db: db, ttl: ttl}
	if err := store.migrate(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS dialog_sessions (
			session_id TEXT PRIMARY KEY,
			state      JSONB NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create dialog_sessions table: %w", err)
	}
	return nil
}

// Get reads the state record for a session, nil when absent or expired
func (s *PostgresStore) Get(ctx context.Context, sessionID string) (*models.ConversationState, error) {
	query := `
		SELECT state FROM dialog_sessions
		WHERE session_id = $1 AND expires_at > NOW()
	`
	var data []byte
	err := s.db.QueryRowContext(ctx, query, sessionID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session state: %w", err)
	}

	var state models.ConversationState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode session state: %w", err)
	}
	return &state, nil
}

// Set upserts the whole state record with a fresh expiry
func (s *PostgresStore) Set(ctx context.Context, sessionID string, state *models.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}

	query := `
		INSERT INTO dialog_sessions (session_id, state, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id)
		DO UPDATE SET state = EXCLUDED.state, expires_at = EXCLUDED.expires_at
	`
	if _, err := s.db.ExecContext(ctx, query, sessionID, data, time.Now().Add(s.ttl)); err != nil {
		return fmt.Errorf("failed to write session state: %w", err)
	}
	return nil
}

// Clear removes the state record
func (s *PostgresStore) Clear(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM dialog_sessions WHERE session_id = $1", sessionID); err != nil {
		return fmt.Errorf("failed to clear session state: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
