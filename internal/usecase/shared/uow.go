package shared

import (
	"context"
	"time"

	"universe-api/internal/domain/campaign"
	"universe-api/internal/domain/report"
	"universe-api/internal/domain/universe"
)

// UnitOfWork is the single atomicity boundary of a use case: entity
// construction plus cross-module-validated writes happen inside Within,
// post-action steps and event dispatch happen after it returns.
type UnitOfWork interface {
	// Within runs fn inside one transaction, retried on serialization
	// conflicts, committed iff fn returns nil.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads gives validation reads outside any transaction.
	CommandReads() CommandReads
}

type Tx interface {
	Universe() UniverseRepository
	Campaigns() CampaignRepository
	Reports() ReportRepository
	Users() UserRepository
	Reads() CommandReads
}

type UniverseRepository interface {
	Create(ctx context.Context, res *universe.Resource) (int64, error)
	// Update persists the mutable fields (name, status, type, tags,
	// metadata, configuration, custom fields). Last write wins; there is
	// no revision counter.
	Update(ctx context.Context, res *universe.Resource) error
	SetStatus(ctx context.Context, id int64, status universe.Status, now time.Time) error
	SetVisibility(ctx context.Context, id int64, vis universe.Visibility, now time.Time) error
}

type CampaignRepository interface {
	// SaveLifecycle persists status, scheduledAt and sentAt only.
	SaveLifecycle(ctx context.Context, c *campaign.Campaign) error
}

type ReportRepository interface {
	Create(ctx context.Context, rep *report.Report) (int64, error)
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, userID int64, now time.Time) error
}

// CommandReads exposes the cross-module lookups business-rule validation
// depends on: user directory, quota counters and sibling-resource state.
type CommandReads interface {
	UserByID(ctx context.Context, id int64) (*UserSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserCredentials, error)
	ResourceByID(ctx context.Context, id int64) (*ResourceSnapshot, error)
	ResourceBySlug(ctx context.Context, ownerID int64, kind universe.Kind, slug string) (*ResourceSnapshot, error)
	CountActiveResources(ctx context.Context, ownerID int64, kind universe.Kind) (int, error)
	CountActiveChildren(ctx context.Context, parentID int64) (int, error)
	CampaignByID(ctx context.Context, id int64) (*CampaignSnapshot, error)
}
