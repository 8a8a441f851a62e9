// Package sessions declares the server-side store of issued sessions. A
// session token is only honoured while its row exists.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/loggy/internal/server/models"
)

// Repository defines operations for recording, looking up and revoking sessions.
type Repository interface {
	// Create stores s; s.ID is chosen by the caller and embedded in the token.
	Create(ctx context.Context, s *models.Session) error

	// Find returns the session with the given id, or common.ErrorNotFound.
	Find(ctx context.Context, id string) (*models.Session, error)

	// Delete revokes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes every session that expired before now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
