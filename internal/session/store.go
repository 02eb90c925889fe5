// Package session persists conversation state between stateless turns.
// Each turn may be handled by a fresh process, so the whole record is
// read and written through an external store keyed by the end user's
// session identity. A single voice session processes turns sequentially,
// so last-write-wins per key is the only discipline required.
package session

import (
	"context"
	"time"

	"taskvoice/internal/models"
)

// DefaultTTL bounds how long an abandoned multi-turn flow survives
const DefaultTTL = 30 * time.Minute

// Store is the external keyed store for conversation state.
// Get returns (nil, nil) when no record exists for the session.
type Store interface {
	Get(ctx context.Context, sessionID string) (*models.ConversationState, error)
	Set(ctx context.Context, sessionID string, state *models.ConversationState) error
	Clear(ctx context.Context, sessionID string) error
}
