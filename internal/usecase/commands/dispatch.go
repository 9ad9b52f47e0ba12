package commands

import (
	"context"
	"log/slog"

	"universe-api/internal/usecase/shared"
)

// dispatcher publishes domain events fire-and-forget: a broker failure is
// logged and swallowed, the use-case outcome is already decided.
type dispatcher struct {
	bus    shared.EventBus
	logger *slog.Logger
}

func (d dispatcher) dispatch(ctx context.Context, event shared.DomainEvent) {
	if d.bus == nil {
		return
	}
	if err := d.bus.Publish(ctx, event); err != nil {
		d.logger.Warn("domain event dropped",
			slog.String("type", event.Type),
			slog.Int64("resource_id", event.ResourceID),
			slog.String("error", err.Error()),
		)
	}
}
