package readstore

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"universe-api/internal/infra"
	"universe-api/internal/infra/db"
	"universe-api/internal/usecase/queries"
)

type CampaignReadStore struct {
	dbtx   db.DBTX
	logger *slog.Logger
}

func NewCampaignReadStore(dbtx db.DBTX, logger *slog.Logger) *CampaignReadStore {
	return &CampaignReadStore{dbtx: dbtx, logger: logger}
}

func (s *CampaignReadStore) FindByID(ctx context.Context, id int64) (*queries.CampaignRow, error) {
	var row queries.CampaignRow
	err := s.dbtx.QueryRow(ctx,
		`SELECT id, owner_id, project_id, status, scheduled_at, sent_at, updated_at
		FROM campaigns WHERE id = $1`,
		id,
	).Scan(&row.ID, &row.OwnerID, &row.ProjectID, &row.Status, &row.ScheduledAt, &row.SentAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, queries.ErrViewNotFound
		}
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to load campaign row", err)
	}
	return &row, nil
}

var _ queries.CampaignViewRepo = (*CampaignReadStore)(nil)
