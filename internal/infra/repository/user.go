package repository

import (
	"context"

	"github.com/google/uuid"

	"lendhub/internal/domain/user"
	"lendhub/internal/infra"
	"lendhub/internal/infra/db"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var (
		u    user.User
		role string
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, email, email_verified, role, phone, city, region
		FROM users
		WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &u.EmailVerified, &role, &u.Phone, &u.City, &u.Region)
	if err != nil {
		return nil, infra.ClassifyErr("failed to find user by id", err)
	}
	u.Role = user.Role(role)
	return &u, nil
}
