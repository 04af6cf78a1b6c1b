package writerepo

import (
	"context"

	"studysync-api/internal/domain/user"
	"studysync-api/internal/infra"
	"studysync-api/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (u *UserRepository) Create(ctx context.Context, entity *user.User) error {
	_, err := u.db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entity.ID(), entity.Email().Value(), entity.PasswordHash(),
		entity.Name(), entity.Role().String(), entity.IsActive(),
	)
	if err != nil {
		return wrapWriteErr("failed to create user", err)
	}
	return nil
}

func (u *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	tag, err := u.db.Exec(ctx,
		`UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`, userID)
	if err != nil {
		return wrapWriteErr("failed to update last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
