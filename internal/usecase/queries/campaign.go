package queries

import (
	"context"
	"time"

	"universe-api/internal/domain/campaign"
	"universe-api/internal/pkg/errs"
	"universe-api/internal/usecase/shared"
)

var ErrViewNotFound = errs.New("not found")

// ExecutionStatusView is the campaign lifecycle read model: the current
// status plus the capability flags the UI needs to enable or grey out its
// action buttons.
type ExecutionStatusView struct {
	ID             int64      `json:"id"`
	Status         string     `json:"status"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	CanBeSent      bool       `json:"can_be_sent"`
	CanBePaused    bool       `json:"can_be_paused"`
	CanBeCancelled bool       `json:"can_be_cancelled"`
	IsScheduled    bool       `json:"is_scheduled"`
	IsSending      bool       `json:"is_sending"`
	IsSent         bool       `json:"is_sent"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type CampaignRow struct {
	ID          int64
	OwnerID     int64
	ProjectID   int64
	Status      string
	ScheduledAt *time.Time
	SentAt      *time.Time
	UpdatedAt   time.Time
}

type CampaignQueries interface {
	ExecutionStatus(ctx context.Context, actor shared.Actor, id int64) (*ExecutionStatusView, error)
}

type CampaignViewRepo interface {
	FindByID(ctx context.Context, id int64) (*CampaignRow, error)
}

type campaignQueriesImpl struct {
	repo CampaignViewRepo
}

func NewCampaignQueries(repo CampaignViewRepo) CampaignQueries {
	return &campaignQueriesImpl{repo: repo}
}

func (q *campaignQueriesImpl) ExecutionStatus(ctx context.Context, actor shared.Actor, id int64) (*ExecutionStatusView, error) {
	row, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Cross-project and cross-owner campaigns are hidden the same way the
	// lifecycle commands hide them.
	if row.ProjectID != actor.ProjectID || row.OwnerID != actor.UserID {
		return nil, ErrViewNotFound
	}

	status := campaign.Status(row.Status)
	return &ExecutionStatusView{
		ID:             row.ID,
		Status:         row.Status,
		ScheduledAt:    row.ScheduledAt,
		SentAt:         row.SentAt,
		CanBeSent:      status.CanBeSent(),
		CanBePaused:    status.CanBePaused(),
		CanBeCancelled: status.CanBeCancelled(),
		IsScheduled:    status == campaign.StatusScheduled && row.ScheduledAt != nil,
		IsSending:      status.IsSending(),
		IsSent:         status.IsSent(),
		UpdatedAt:      row.UpdatedAt,
	}, nil
}
