package commands

import (
	"context"

	"universe-api/internal/domain/universe"
)

// InstanceConfigurator covers the post-creation setup steps. Each method
// is one pipeline step: independent, best effort, never rolled back.
type InstanceConfigurator interface {
	ApplyInitialSettings(ctx context.Context, res *universe.Resource) error
	SetupDefaultPermissions(ctx context.Context, res *universe.Resource) error
	SetupAnalytics(ctx context.Context, res *universe.Resource) error
	SetupNotifications(ctx context.Context, res *universe.Resource) error
	SetupIntegrations(ctx context.Context, res *universe.Resource) error
	SetupWebhooks(ctx context.Context, res *universe.Resource) error
	ApplyTemplate(ctx context.Context, res *universe.Resource, templateID int64) error
}
