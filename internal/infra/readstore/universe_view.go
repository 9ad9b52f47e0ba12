package readstore

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"universe-api/internal/domain/universe"
	"universe-api/internal/infra"
	"universe-api/internal/infra/db"
	"universe-api/internal/usecase/queries"
)

type UniverseReadStore struct {
	dbtx   db.DBTX
	logger *slog.Logger
}

func NewUniverseReadStore(dbtx db.DBTX, logger *slog.Logger) *UniverseReadStore {
	return &UniverseReadStore{dbtx: dbtx, logger: logger}
}

const instanceViewColumns = `
	id, kind, owner_id, project_id, name, slug, status, type, tags, metadata,
	parent_id, template_id, configuration, is_public, is_shared, created_at, updated_at`

func (s *UniverseReadStore) FindByID(ctx context.Context, id int64) (*queries.InstanceView, error) {
	row := s.dbtx.QueryRow(ctx,
		`SELECT`+instanceViewColumns+` FROM universe_resources WHERE id = $1 AND status <> 'archived'`, id)
	return s.scanView(row)
}

func (s *UniverseReadStore) FindByShareToken(ctx context.Context, token uuid.UUID) (*queries.InstanceView, error) {
	row := s.dbtx.QueryRow(ctx,
		`SELECT`+instanceViewColumns+`
		FROM universe_resources WHERE share_token = $1 AND status <> 'archived'`, token)
	return s.scanView(row)
}

func (s *UniverseReadStore) FindByOwner(ctx context.Context, ownerID, projectID int64, kind universe.Kind, limit int) ([]*queries.InstanceListItem, error) {
	rows, err := s.dbtx.Query(ctx, `
		SELECT id, name, slug, status, type, is_public, is_shared, created_at
		FROM universe_resources
		WHERE owner_id = $1 AND project_id = $2 AND kind = $3 AND status <> 'archived'
		ORDER BY created_at DESC
		LIMIT $4`,
		ownerID, projectID, kind, limit)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list resources", err)
	}
	defer rows.Close()

	var items []*queries.InstanceListItem
	for rows.Next() {
		var item queries.InstanceListItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Slug, &item.Status, &item.Type,
			&item.IsPublic, &item.IsShared, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan resource row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to iterate resource rows", err)
	}
	return items, nil
}

func (s *UniverseReadStore) scanView(row pgx.Row) (*queries.InstanceView, error) {
	var view queries.InstanceView
	err := row.Scan(
		&view.ID, &view.Kind, &view.OwnerID, &view.ProjectID, &view.Name, &view.Slug,
		&view.Status, &view.Type, &view.Tags, &view.Metadata, &view.ParentID,
		&view.TemplateID, &view.Configuration, &view.IsPublic, &view.IsShared,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, queries.ErrViewNotFound
		}
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to load resource view", err)
	}
	return &view, nil
}

var _ queries.UniverseViewRepo = (*UniverseReadStore)(nil)
