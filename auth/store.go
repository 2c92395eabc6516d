package auth

import (
	"context"
	"time"

	"github.com/princinho/schoolpanel/models"
)

// CredentialStore is the persistence the auth subsystem reads and writes
// accounts through. Lookups that match nothing return ErrAccountNotFound and
// Create returns ErrDuplicateEmail when the email is taken.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, hash string, at time.Time) error
}
