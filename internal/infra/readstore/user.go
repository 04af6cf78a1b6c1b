package readstore

import (
	"context"
	"errors"

	"studysync-api/internal/infra"
	"studysync-api/internal/infra/db"
	"studysync-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (u *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row := u.db.QueryRow(ctx,
		`SELECT id, email, name, role, is_active FROM users WHERE id = $1`, id)

	var view queries.AuthorizedUserView
	err := row.Scan(&view.ID, &view.Email, &view.Name, &view.Role, &view.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}

func (u *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	row := u.db.QueryRow(ctx,
		`SELECT id, email, name, role, is_active, password_hash FROM users WHERE email = $1`, email)

	var (
		view queries.AuthorizedUserView
		hash string
	)
	err := row.Scan(&view.ID, &view.Email, &view.Name, &view.Role, &view.IsActive, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &view, hash, nil
}
