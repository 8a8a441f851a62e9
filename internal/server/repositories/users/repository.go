package users

import (
	"context"

	"github.com/dmitrijs2005/loggy/internal/server/models"
)

// Repository is the account directory. Emails are stored normalized, so
// lookups expect NormalizeEmail'd input.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id string, hash string) error
}
