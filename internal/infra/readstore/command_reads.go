package readstore

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"universe-api/internal/domain/campaign"
	"universe-api/internal/domain/universe"
	"universe-api/internal/infra"
	"universe-api/internal/infra/db"
	"universe-api/internal/usecase/shared"
)

// CommandReadStore serves the lookups business-rule validation needs.
// Bound to a DBTX, it sees transaction-local writes when used inside a
// unit of work.
type CommandReadStore struct {
	dbtx   db.DBTX
	logger *slog.Logger
}

func NewCommandReadStore(dbtx db.DBTX, logger *slog.Logger) *CommandReadStore {
	return &CommandReadStore{dbtx: dbtx, logger: logger}
}

func (s *CommandReadStore) UserByID(ctx context.Context, id int64) (*shared.UserSnapshot, error) {
	var snap shared.UserSnapshot
	err := s.dbtx.QueryRow(ctx,
		`SELECT id, is_active, max_active_instances, max_active_templates FROM users WHERE id = $1`,
		id,
	).Scan(&snap.ID, &snap.IsActive, &snap.MaxActiveInstances, &snap.MaxActiveTemplates)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NotFoundErr("user not found")
		}
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to load user", err)
	}
	return &snap, nil
}

func (s *CommandReadStore) UserByEmail(ctx context.Context, email string) (*shared.UserCredentials, error) {
	var creds shared.UserCredentials
	err := s.dbtx.QueryRow(ctx,
		`SELECT id, email, password_hash, is_active, default_project_id FROM users WHERE email = $1`,
		email,
	).Scan(&creds.ID, &creds.Email, &creds.PasswordHash, &creds.IsActive, &creds.DefaultProjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NotFoundErr("user not found")
		}
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to load user by email", err)
	}
	return &creds, nil
}

const resourceSnapshotColumns = `
	id, kind, owner_id, project_id, name, slug, status, type, tags, metadata,
	parent_id, template_id, configuration, permissions, custom_fields,
	is_public, is_shared, share_token, updated_at`

func (s *CommandReadStore) ResourceByID(ctx context.Context, id int64) (*shared.ResourceSnapshot, error) {
	row := s.dbtx.QueryRow(ctx,
		`SELECT`+resourceSnapshotColumns+` FROM universe_resources WHERE id = $1`, id)
	return s.scanResource(row, "failed to load resource")
}

func (s *CommandReadStore) ResourceBySlug(ctx context.Context, ownerID int64, kind universe.Kind, slug string) (*shared.ResourceSnapshot, error) {
	row := s.dbtx.QueryRow(ctx,
		`SELECT`+resourceSnapshotColumns+`
		FROM universe_resources
		WHERE owner_id = $1 AND kind = $2 AND slug = $3 AND status <> 'archived'`,
		ownerID, kind, slug)
	return s.scanResource(row, "failed to load resource by slug")
}

func (s *CommandReadStore) CountActiveResources(ctx context.Context, ownerID int64, kind universe.Kind) (int, error) {
	var count int
	err := s.dbtx.QueryRow(ctx,
		`SELECT count(*) FROM universe_resources
		WHERE owner_id = $1 AND kind = $2 AND status <> 'archived'`,
		ownerID, kind,
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to count resources", err)
	}
	return count, nil
}

func (s *CommandReadStore) CountActiveChildren(ctx context.Context, parentID int64) (int, error) {
	var count int
	err := s.dbtx.QueryRow(ctx,
		`SELECT count(*) FROM universe_resources
		WHERE parent_id = $1 AND status <> 'archived'`,
		parentID,
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to count children", err)
	}
	return count, nil
}

func (s *CommandReadStore) CampaignByID(ctx context.Context, id int64) (*shared.CampaignSnapshot, error) {
	var (
		snap   shared.CampaignSnapshot
		status string
	)
	err := s.dbtx.QueryRow(ctx,
		`SELECT id, owner_id, project_id, status, scheduled_at, sent_at, updated_at
		FROM campaigns WHERE id = $1`,
		id,
	).Scan(&snap.ID, &snap.OwnerID, &snap.ProjectID, &status, &snap.ScheduledAt, &snap.SentAt, &snap.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NotFoundErr("campaign not found")
		}
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to load campaign", err)
	}
	snap.Status = campaign.Status(status)
	return &snap, nil
}

func (s *CommandReadStore) scanResource(row pgx.Row, msg string) (*shared.ResourceSnapshot, error) {
	var (
		snap shared.ResourceSnapshot
		kind string
	)
	err := row.Scan(
		&snap.ID, &kind, &snap.OwnerID, &snap.ProjectID, &snap.Name, &snap.Slug,
		&snap.Status, &snap.Type, &snap.Tags, &snap.Metadata, &snap.ParentID,
		&snap.TemplateID, &snap.Configuration, &snap.Permissions, &snap.CustomFields,
		&snap.IsPublic, &snap.IsShared, &snap.ShareToken, &snap.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NotFoundErr("resource not found")
		}
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, msg, err)
	}
	snap.Kind = universe.Kind(kind)
	return &snap, nil
}

var _ shared.CommandReads = (*CommandReadStore)(nil)
