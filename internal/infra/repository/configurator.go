package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"universe-api/internal/domain/universe"
	"universe-api/internal/infra"
	"universe-api/internal/infra/db"
	"universe-api/internal/usecase/commands"
)

// Configurator runs the post-creation setup writes. Each section is an
// independent upsert into resource_settings, so one failing step leaves
// the others in place.
type Configurator struct {
	dbtx   db.DBTX
	logger *slog.Logger
}

func NewConfigurator(dbtx db.DBTX, logger *slog.Logger) *Configurator {
	return &Configurator{dbtx: dbtx, logger: logger}
}

func (c *Configurator) ApplyInitialSettings(ctx context.Context, res *universe.Resource) error {
	payload := map[string]any{
		"timezone": "UTC",
		"locale":   "en",
	}
	for k, v := range res.Configuration {
		payload[k] = v
	}
	return c.upsert(ctx, res.ID, "settings", payload)
}

func (c *Configurator) SetupDefaultPermissions(ctx context.Context, res *universe.Resource) error {
	payload := map[string]any{
		"owner_id": res.OwnerID,
		"roles": map[string]any{
			"owner":  []string{"read", "write", "delete", "share"},
			"member": []string{"read"},
		},
	}
	for k, v := range res.Permissions {
		payload[k] = v
	}
	return c.upsert(ctx, res.ID, "permissions", payload)
}

func (c *Configurator) SetupAnalytics(ctx context.Context, res *universe.Resource) error {
	return c.upsert(ctx, res.ID, "analytics", map[string]any{
		"tracking_enabled": true,
		"resource_type":    res.Type,
	})
}

func (c *Configurator) SetupNotifications(ctx context.Context, res *universe.Resource) error {
	return c.upsert(ctx, res.ID, "notifications", map[string]any{
		"email_enabled": true,
		"digest":        "daily",
	})
}

func (c *Configurator) SetupIntegrations(ctx context.Context, res *universe.Resource) error {
	return c.upsert(ctx, res.ID, "integrations", map[string]any{
		"connected": []string{},
	})
}

func (c *Configurator) SetupWebhooks(ctx context.Context, res *universe.Resource) error {
	return c.upsert(ctx, res.ID, "webhooks", map[string]any{
		"endpoints": []string{},
	})
}

// ApplyTemplate copies the template's configuration onto the new resource,
// keeping any value the caller set explicitly.
func (c *Configurator) ApplyTemplate(ctx context.Context, res *universe.Resource, templateID int64) error {
	var tplConfig map[string]any
	err := c.dbtx.QueryRow(ctx,
		`SELECT configuration FROM universe_resources WHERE id = $1 AND kind = 'template'`,
		templateID,
	).Scan(&tplConfig)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return infra.NotFoundErr("template not found")
		}
		return infra.WrapRepoErr(c.logger, infra.KindDBFailure, "failed to load template configuration", err)
	}

	merged := make(map[string]any, len(tplConfig)+len(res.Configuration))
	for k, v := range tplConfig {
		merged[k] = v
	}
	for k, v := range res.Configuration {
		merged[k] = v
	}
	res.Configuration = merged

	_, err = c.dbtx.Exec(ctx,
		`UPDATE universe_resources SET configuration = $2 WHERE id = $1`,
		res.ID, merged,
	)
	if err != nil {
		return infra.WrapRepoErr(c.logger, infra.KindDBFailure, "failed to apply template configuration", err)
	}
	return nil
}

func (c *Configurator) upsert(ctx context.Context, resourceID int64, section string, payload map[string]any) error {
	_, err := c.dbtx.Exec(ctx, `
		INSERT INTO resource_settings (resource_id, section, payload, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (resource_id, section)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		resourceID, section, payload,
	)
	if err != nil {
		return infra.WrapRepoErr(c.logger, infra.KindDBFailure, "failed to write "+section+" settings", err)
	}
	return nil
}

var _ commands.InstanceConfigurator = (*Configurator)(nil)
