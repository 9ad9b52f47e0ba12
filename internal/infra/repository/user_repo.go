package repository

import (
	"context"
	"log/slog"
	"time"

	"universe-api/internal/infra"
	"universe-api/internal/infra/db"
	"universe-api/internal/usecase/shared"
)

type UserRepository struct {
	dbtx   db.DBTX
	logger *slog.Logger
}

func NewUserRepository(dbtx db.DBTX, logger *slog.Logger) *UserRepository {
	return &UserRepository{dbtx: dbtx, logger: logger}
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64, now time.Time) error {
	tag, err := r.dbtx.Exec(ctx,
		`UPDATE users SET last_login_at = $2, updated_at = $2 WHERE id = $1`,
		userID, now,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFoundErr("user not found")
	}
	return nil
}

var _ shared.UserRepository = (*UserRepository)(nil)
