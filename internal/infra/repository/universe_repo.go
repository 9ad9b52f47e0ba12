package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"universe-api/internal/domain/universe"
	"universe-api/internal/infra"
	"universe-api/internal/infra/db"
	"universe-api/internal/usecase/shared"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

type UniverseRepository struct {
	dbtx   db.DBTX
	logger *slog.Logger
}

func NewUniverseRepository(dbtx db.DBTX, logger *slog.Logger) *UniverseRepository {
	return &UniverseRepository{dbtx: dbtx, logger: logger}
}

func (r *UniverseRepository) Create(ctx context.Context, res *universe.Resource) (int64, error) {
	var id int64
	err := r.dbtx.QueryRow(ctx, `
		INSERT INTO universe_resources
			(kind, owner_id, project_id, name, slug, status, type, tags, metadata,
			 parent_id, template_id, configuration, permissions, is_public, custom_fields,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
		RETURNING id`,
		res.Kind, res.OwnerID, res.ProjectID, res.Name, res.Slug, res.Status, res.Type,
		res.Tags, jsonbOrEmpty(res.Metadata), res.ParentID, res.TemplateID,
		jsonbOrEmpty(res.Configuration), jsonbOrEmpty(res.Permissions),
		res.Visibility.IsPublic, jsonbOrEmpty(res.CustomFields), res.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, r.classify("failed to insert resource", err)
	}
	return id, nil
}

func (r *UniverseRepository) Update(ctx context.Context, res *universe.Resource) error {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE universe_resources
		SET name = $2, status = $3, type = $4, tags = $5, metadata = $6,
		    configuration = $7, custom_fields = $8, updated_at = $9
		WHERE id = $1`,
		res.ID, res.Name, res.Status, res.Type, res.Tags, jsonbOrEmpty(res.Metadata),
		jsonbOrEmpty(res.Configuration), jsonbOrEmpty(res.CustomFields), res.UpdatedAt,
	)
	if err != nil {
		return r.classify("failed to update resource", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFoundErr("resource not found")
	}
	return nil
}

func (r *UniverseRepository) SetStatus(ctx context.Context, id int64, status universe.Status, now time.Time) error {
	tag, err := r.dbtx.Exec(ctx,
		`UPDATE universe_resources SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, now,
	)
	if err != nil {
		return r.classify("failed to set resource status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFoundErr("resource not found")
	}
	return nil
}

func (r *UniverseRepository) SetVisibility(ctx context.Context, id int64, vis universe.Visibility, now time.Time) error {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE universe_resources
		SET is_public = $2, is_shared = $3, share_token = $4, updated_at = $5
		WHERE id = $1`,
		id, vis.IsPublic, vis.IsShared, vis.ShareToken, now,
	)
	if err != nil {
		return r.classify("failed to set resource visibility", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFoundErr("resource not found")
	}
	return nil
}

func (r *UniverseRepository) classify(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, msg, err)
		case pgErrCodeForeignKeyViolation:
			return infra.WrapRepoErr(r.logger, infra.KindForeignKeyViolated, msg, err)
		}
	}
	return infra.WrapRepoErr(r.logger, infra.KindDBFailure, msg, err)
}

// jsonbOrEmpty keeps NOT NULL jsonb columns happy when the caller passed
// no map at all.
func jsonbOrEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

var _ shared.UniverseRepository = (*UniverseRepository)(nil)
