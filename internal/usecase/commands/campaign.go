package commands

import (
	"context"
	"log/slog"

	"universe-api/internal/domain/campaign"
	"universe-api/internal/pkg/clock"
	"universe-api/internal/usecase/shared"
)

type CampaignCommands interface {
	Send(ctx context.Context, cmd SendCampaignCommand) *shared.Result
	Schedule(ctx context.Context, cmd ScheduleCampaignCommand) *shared.Result
	Pause(ctx context.Context, cmd LifecycleCampaignCommand) *shared.Result
	Resume(ctx context.Context, cmd LifecycleCampaignCommand) *shared.Result
	Cancel(ctx context.Context, cmd LifecycleCampaignCommand) *shared.Result
	Complete(ctx context.Context, cmd LifecycleCampaignCommand) *shared.Result
}

type campaignUseCaseImpl struct {
	uow    shared.UnitOfWork
	events dispatcher
	clock  clock.Clock
	logger *slog.Logger
}

func NewCampaignUseCase(uow shared.UnitOfWork, bus shared.EventBus, clock clock.Clock, logger *slog.Logger) CampaignCommands {
	return &campaignUseCaseImpl{
		uow:    uow,
		events: dispatcher{bus: bus, logger: logger},
		clock:  clock,
		logger: logger,
	}
}

// Send starts delivery, or schedules it when a future date is given
// without the immediate flag. Test mode delivers to the given addresses
// only and leaves the campaign untouched: no status change, no event.
func (u *campaignUseCaseImpl) Send(ctx context.Context, cmd SendCampaignCommand) *shared.Result {
	now := u.clock.Now()
	if errors := cmd.Validate(now); len(errors) > 0 {
		return shared.Invalid(errors, "campaign validation failed")
	}

	if cmd.TestMode {
		snap, err := u.loadOwned(ctx, cmd.Actor, cmd.CampaignID)
		if err != nil {
			return resultFromErr(err, "could not send test campaign")
		}
		if snap.Status.IsTerminal() {
			return shared.BusinessRule([]string{"campaign is in a terminal status"}, "test send rejected")
		}
		return shared.OK(map[string]any{
			"id":         snap.ID,
			"test_mode":  true,
			"recipients": len(cmd.TestEmails),
			"status":     string(snap.Status),
		}, "test send queued")
	}

	if !cmd.SendImmediately && cmd.ScheduledAt != nil {
		return u.Schedule(ctx, ScheduleCampaignCommand{
			Actor:       cmd.Actor,
			CampaignID:  cmd.CampaignID,
			ScheduledAt: *cmd.ScheduledAt,
			IssuedAt:    cmd.IssuedAt,
		})
	}

	return u.transition(ctx, cmd.Actor, cmd.CampaignID, shared.EventCampaignSending, "campaign is sending",
		func(c *campaign.Campaign) error { return c.StartSending(now) })
}

func (u *campaignUseCaseImpl) Schedule(ctx context.Context, cmd ScheduleCampaignCommand) *shared.Result {
	now := u.clock.Now()
	if errors := cmd.Validate(now); len(errors) > 0 {
		return shared.Invalid(errors, "campaign validation failed")
	}
	return u.transition(ctx, cmd.Actor, cmd.CampaignID, shared.EventCampaignScheduled, "campaign scheduled",
		func(c *campaign.Campaign) error { return c.Schedule(cmd.ScheduledAt, now) })
}

func (u *campaignUseCaseImpl) Pause(ctx context.Context, cmd LifecycleCampaignCommand) *shared.Result {
	now := u.clock.Now()
	if errors := cmd.Validate(); len(errors) > 0 {
		return shared.Invalid(errors, "campaign validation failed")
	}
	return u.transition(ctx, cmd.Actor, cmd.CampaignID, shared.EventCampaignPaused, "campaign paused",
		func(c *campaign.Campaign) error { return c.Pause(now) })
}

func (u *campaignUseCaseImpl) Resume(ctx context.Context, cmd LifecycleCampaignCommand) *shared.Result {
	now := u.clock.Now()
	if errors := cmd.Validate(); len(errors) > 0 {
		return shared.Invalid(errors, "campaign validation failed")
	}
	return u.transition(ctx, cmd.Actor, cmd.CampaignID, shared.EventCampaignResumed, "campaign resumed",
		func(c *campaign.Campaign) error { return c.Resume(now) })
}

func (u *campaignUseCaseImpl) Cancel(ctx context.Context, cmd LifecycleCampaignCommand) *shared.Result {
	now := u.clock.Now()
	if errors := cmd.Validate(); len(errors) > 0 {
		return shared.Invalid(errors, "campaign validation failed")
	}
	return u.transition(ctx, cmd.Actor, cmd.CampaignID, shared.EventCampaignCanceled, "campaign cancelled",
		func(c *campaign.Campaign) error { return c.Cancel(now) })
}

// Complete is invoked by the delivery subsystem once every send finished.
func (u *campaignUseCaseImpl) Complete(ctx context.Context, cmd LifecycleCampaignCommand) *shared.Result {
	now := u.clock.Now()
	if errors := cmd.Validate(); len(errors) > 0 {
		return shared.Invalid(errors, "campaign validation failed")
	}
	return u.transition(ctx, cmd.Actor, cmd.CampaignID, shared.EventCampaignSent, "campaign sent",
		func(c *campaign.Campaign) error { return c.MarkSent(now) })
}

// transition loads the owned campaign, applies one lifecycle mutation
// inside the unit of work, then publishes the matching event.
func (u *campaignUseCaseImpl) transition(
	ctx context.Context,
	actor shared.Actor,
	campaignID int64,
	eventType string,
	message string,
	mutate func(c *campaign.Campaign) error,
) *shared.Result {
	now := u.clock.Now()
	var c *campaign.Campaign

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := u.loadOwnedTx(ctx, tx.Reads(), actor, campaignID)
		if err != nil {
			return err
		}

		c = campaign.Reconstruct(snap.ID, snap.OwnerID, snap.ProjectID, snap.Status, snap.ScheduledAt, snap.SentAt, snap.UpdatedAt)
		if err := mutate(c); err != nil {
			return businessErr([]string{err.Error()}, "campaign transition rejected")
		}

		return tx.Campaigns().SaveLifecycle(ctx, c)
	})
	if err != nil {
		return resultFromErr(err, "could not update campaign")
	}

	u.events.dispatch(ctx, shared.NewDomainEvent(eventType, c.ID(), actor, map[string]any{
		"status": string(c.Status()),
	}, now))

	data := map[string]any{
		"id":     c.ID(),
		"status": string(c.Status()),
	}
	if c.ScheduledAt() != nil {
		data["scheduled_at"] = c.ScheduledAt().UTC()
	}
	if c.SentAt() != nil {
		data["sent_at"] = c.SentAt().UTC()
	}
	return shared.OK(data, message)
}

func (u *campaignUseCaseImpl) loadOwned(ctx context.Context, actor shared.Actor, campaignID int64) (*shared.CampaignSnapshot, error) {
	return u.loadOwnedTx(ctx, u.uow.CommandReads(), actor, campaignID)
}

func (u *campaignUseCaseImpl) loadOwnedTx(ctx context.Context, reads shared.CommandReads, actor shared.Actor, campaignID int64) (*shared.CampaignSnapshot, error) {
	snap, err := reads.CampaignByID(ctx, campaignID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFoundErr("campaign not found")
		}
		return nil, err
	}
	if snap.ProjectID != actor.ProjectID {
		return nil, notFoundErr("campaign not found")
	}
	if snap.OwnerID != actor.UserID {
		return nil, businessErr([]string{"campaign belongs to another user"}, "access denied")
	}
	return snap, nil
}
