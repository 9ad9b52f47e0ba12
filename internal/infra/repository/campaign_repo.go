package repository

import (
	"context"
	"log/slog"

	"universe-api/internal/domain/campaign"
	"universe-api/internal/infra"
	"universe-api/internal/infra/db"
	"universe-api/internal/usecase/shared"
)

type CampaignRepository struct {
	dbtx   db.DBTX
	logger *slog.Logger
}

func NewCampaignRepository(dbtx db.DBTX, logger *slog.Logger) *CampaignRepository {
	return &CampaignRepository{dbtx: dbtx, logger: logger}
}

func (r *CampaignRepository) SaveLifecycle(ctx context.Context, c *campaign.Campaign) error {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE campaigns
		SET status = $2, scheduled_at = $3, sent_at = $4, updated_at = $5
		WHERE id = $1`,
		c.ID(), c.Status(), c.ScheduledAt(), c.SentAt(), c.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to save campaign lifecycle", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFoundErr("campaign not found")
	}
	return nil
}

var _ shared.CampaignRepository = (*CampaignRepository)(nil)
