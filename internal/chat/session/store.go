// Package session keeps per-user conversation state between chat turns.
package session

import (
	"context"
	"errors"

	"food-assistant/internal/models"
)

var (
	ErrStoreUnavailable = errors.New("SESSION_STORE_FAILED")
	ErrStateDecode      = errors.New("SESSION_STATE_DECODE_FAILED")
)

// Store maps a user id onto its conversation state. Get returns the zero
// state for unknown users without persisting it.
type Store interface {
	Get(ctx context.Context, userID string) (models.ConversationState, error)
	Set(ctx context.Context, userID string, state models.ConversationState) error
}
