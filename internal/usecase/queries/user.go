package queries

import (
	"context"

	"github.com/google/uuid"
)

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	// FindByEmail also returns the stored password hash for credential
	// checks.
	FindByEmail(ctx context.Context, email string) (*AuthorizedUserView, string, error)
}
