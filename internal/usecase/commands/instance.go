package commands

import (
	"context"
	"log/slog"
	"time"

	"universe-api/internal/domain/universe"
	"universe-api/internal/pkg/clock"
	"universe-api/internal/usecase/shared"
)

type UniverseCommands interface {
	CreateInstance(ctx context.Context, cmd CreateInstanceCommand) *shared.Result
	CreateTemplate(ctx context.Context, cmd CreateTemplateCommand) *shared.Result
	UpdateInstance(ctx context.Context, cmd UpdateInstanceCommand) *shared.Result
	DeleteInstance(ctx context.Context, cmd DeleteInstanceCommand) *shared.Result
	ShareInstance(ctx context.Context, cmd ShareInstanceCommand) *shared.Result
}

type universeUseCaseImpl struct {
	uow          shared.UnitOfWork
	rules        *Rules
	configurator InstanceConfigurator
	events       dispatcher
	clock        clock.Clock
	logger       *slog.Logger
}

func NewUniverseUseCase(
	uow shared.UnitOfWork,
	rules *Rules,
	configurator InstanceConfigurator,
	bus shared.EventBus,
	clock clock.Clock,
	logger *slog.Logger,
) UniverseCommands {
	return &universeUseCaseImpl{
		uow:          uow,
		rules:        rules,
		configurator: configurator,
		events:       dispatcher{bus: bus, logger: logger},
		clock:        clock,
		logger:       logger,
	}
}

// CreateInstance runs the full command flow: structural validation,
// cross-module validation and the insert inside one transaction, then the
// best-effort setup pipeline and a fire-and-forget event.
func (u *universeUseCaseImpl) CreateInstance(ctx context.Context, cmd CreateInstanceCommand) *shared.Result {
	if errors := cmd.Validate(); len(errors) > 0 {
		return shared.Invalid(errors, "instance validation failed")
	}

	now := u.clock.Now()
	var res *universe.Resource

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		violations, err := u.rules.ValidateCreation(ctx, cmd, universe.KindInstance)
		if err != nil {
			return err
		}
		if len(violations) > 0 {
			return businessErr(violations, "instance creation rejected")
		}

		res = universe.NewInstance(universe.Spec{
			OwnerID:       cmd.Actor.UserID,
			ProjectID:     cmd.Actor.ProjectID,
			Name:          cmd.Name,
			Slug:          cmd.Slug,
			Status:        cmd.Status,
			Type:          cmd.Type,
			Tags:          cmd.Tags,
			Metadata:      cmd.Metadata,
			ParentID:      cmd.ParentID,
			TemplateID:    cmd.TemplateID,
			Configuration: cmd.Configuration,
			Permissions:   cmd.Permissions,
			IsPublic:      cmd.IsPublic,
			CustomFields:  cmd.CustomFields,
		}, now)

		id, err := tx.Universe().Create(ctx, res)
		if err != nil {
			return duplicateSlugErr(err, "instance creation rejected")
		}
		res.ID = id
		return nil
	})
	if err != nil {
		return resultFromErr(err, "could not create instance")
	}

	u.runSetupPipeline(ctx, "create_instance", res, cmd.TemplateID)
	u.events.dispatch(ctx, shared.NewDomainEvent(shared.EventInstanceCreated, res.ID, cmd.Actor, map[string]any{
		"name": res.Name,
		"type": res.Type,
	}, now))

	return shared.OK(map[string]any{
		"id":     res.ID,
		"name":   res.Name,
		"slug":   res.Slug,
		"status": string(res.Status),
	}, "instance created")
}

func (u *universeUseCaseImpl) CreateTemplate(ctx context.Context, cmd CreateTemplateCommand) *shared.Result {
	if errors := cmd.Validate(); len(errors) > 0 {
		return shared.Invalid(errors, "template validation failed")
	}

	now := u.clock.Now()
	var res *universe.Resource

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Templates reuse the creation rules minus parent and template
		// references, which the command cannot carry.
		violations, err := u.rules.ValidateCreation(ctx, CreateInstanceCommand{
			Actor: cmd.Actor,
			Name:  cmd.Name,
			Slug:  cmd.Slug,
		}, universe.KindTemplate)
		if err != nil {
			return err
		}
		if len(violations) > 0 {
			return businessErr(violations, "template creation rejected")
		}

		res = universe.NewTemplate(universe.Spec{
			OwnerID:       cmd.Actor.UserID,
			ProjectID:     cmd.Actor.ProjectID,
			Name:          cmd.Name,
			Slug:          cmd.Slug,
			Status:        cmd.Status,
			Type:          cmd.Type,
			Tags:          cmd.Tags,
			Metadata:      cmd.Metadata,
			Configuration: cmd.Configuration,
			Permissions:   cmd.Permissions,
			IsPublic:      cmd.IsPublic,
			CustomFields:  cmd.CustomFields,
		}, now)

		id, err := tx.Universe().Create(ctx, res)
		if err != nil {
			return duplicateSlugErr(err, "template creation rejected")
		}
		res.ID = id
		return nil
	})
	if err != nil {
		return resultFromErr(err, "could not create template")
	}

	u.events.dispatch(ctx, shared.NewDomainEvent(shared.EventTemplateCreated, res.ID, cmd.Actor, map[string]any{
		"name": res.Name,
	}, now))

	return shared.OK(map[string]any{
		"id":     res.ID,
		"name":   res.Name,
		"slug":   res.Slug,
		"status": string(res.Status),
	}, "template created")
}

func (u *universeUseCaseImpl) UpdateInstance(ctx context.Context, cmd UpdateInstanceCommand) *shared.Result {
	if errors := cmd.Validate(); len(errors) > 0 {
		return shared.Invalid(errors, "instance validation failed")
	}

	now := u.clock.Now()
	var updated *universe.Resource

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, violations, err := u.rules.ValidateAccess(ctx, cmd.Actor, cmd.TargetID)
		if err != nil {
			return err
		}
		if len(violations) > 0 {
			return accessErr(snap, violations)
		}
		if violations := u.rules.ValidateUpdate(snap); len(violations) > 0 {
			return businessErr(violations, "instance update rejected")
		}

		updated = applyUpdate(snap, cmd, now)
		return tx.Universe().Update(ctx, updated)
	})
	if err != nil {
		return resultFromErr(err, "could not update instance")
	}

	u.events.dispatch(ctx, shared.NewDomainEvent(shared.EventInstanceUpdated, updated.ID, cmd.Actor, nil, now))

	return shared.OK(map[string]any{
		"id":     updated.ID,
		"name":   updated.Name,
		"status": string(updated.Status),
	}, "instance updated")
}

// DeleteInstance archives the resource: the row survives, listings and
// quota counters stop seeing it.
func (u *universeUseCaseImpl) DeleteInstance(ctx context.Context, cmd DeleteInstanceCommand) *shared.Result {
	if errors := cmd.Validate(); len(errors) > 0 {
		return shared.Invalid(errors, "instance validation failed")
	}

	now := u.clock.Now()

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, violations, err := u.rules.ValidateAccess(ctx, cmd.Actor, cmd.TargetID)
		if err != nil {
			return err
		}
		if len(violations) > 0 {
			return accessErr(snap, violations)
		}
		violations, err = u.rules.ValidateDeletion(ctx, snap)
		if err != nil {
			return err
		}
		if len(violations) > 0 {
			return businessErr(violations, "instance deletion rejected")
		}

		return tx.Universe().SetStatus(ctx, snap.ID, universe.StatusArchived, now)
	})
	if err != nil {
		return resultFromErr(err, "could not delete instance")
	}

	u.events.dispatch(ctx, shared.NewDomainEvent(shared.EventInstanceDeleted, cmd.TargetID, cmd.Actor, nil, now))

	return shared.OK(map[string]any{"id": cmd.TargetID}, "instance archived")
}

func (u *universeUseCaseImpl) ShareInstance(ctx context.Context, cmd ShareInstanceCommand) *shared.Result {
	if errors := cmd.Validate(); len(errors) > 0 {
		return shared.Invalid(errors, "instance validation failed")
	}

	now := u.clock.Now()
	var vis universe.Visibility

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, violations, err := u.rules.ValidateAccess(ctx, cmd.Actor, cmd.TargetID)
		if err != nil {
			return err
		}
		if len(violations) > 0 {
			return accessErr(snap, violations)
		}
		if violations := u.rules.ValidateSharing(snap); len(violations) > 0 {
			return businessErr(violations, "instance sharing rejected")
		}

		res := resourceFromSnapshot(snap)
		if cmd.Enable {
			res.EnableSharing(now)
			res.Visibility.IsPublic = cmd.MakePublic
		} else {
			res.DisableSharing(now)
			res.Visibility.IsPublic = false
		}
		vis = res.Visibility

		return tx.Universe().SetVisibility(ctx, res.ID, vis, now)
	})
	if err != nil {
		return resultFromErr(err, "could not update sharing")
	}

	data := map[string]any{
		"id":        cmd.TargetID,
		"is_shared": vis.IsShared,
		"is_public": vis.IsPublic,
	}
	message := "sharing disabled"
	if cmd.Enable {
		data["share_token"] = vis.ShareToken.String()
		message = "sharing enabled"
	}

	u.events.dispatch(ctx, shared.NewDomainEvent(shared.EventInstanceShared, cmd.TargetID, cmd.Actor, map[string]any{
		"enabled": cmd.Enable,
	}, now))

	return shared.OK(data, message)
}

func (u *universeUseCaseImpl) runSetupPipeline(ctx context.Context, operation string, res *universe.Resource, templateID *int64) {
	steps := []PostAction{
		{Name: "initial_settings", Run: func(ctx context.Context) error {
			return u.configurator.ApplyInitialSettings(ctx, res)
		}},
		{Name: "default_permissions", Run: func(ctx context.Context) error {
			return u.configurator.SetupDefaultPermissions(ctx, res)
		}},
		{Name: "analytics", Run: func(ctx context.Context) error {
			return u.configurator.SetupAnalytics(ctx, res)
		}},
		{Name: "notifications", Run: func(ctx context.Context) error {
			return u.configurator.SetupNotifications(ctx, res)
		}},
		{Name: "integrations", Run: func(ctx context.Context) error {
			return u.configurator.SetupIntegrations(ctx, res)
		}},
		{Name: "webhooks", Run: func(ctx context.Context) error {
			return u.configurator.SetupWebhooks(ctx, res)
		}},
	}
	if templateID != nil {
		id := *templateID
		steps = append([]PostAction{{Name: "apply_template", Run: func(ctx context.Context) error {
			return u.configurator.ApplyTemplate(ctx, res, id)
		}}}, steps...)
	}
	runPipeline(ctx, u.logger, operation, steps)
}

func applyUpdate(snap *shared.ResourceSnapshot, cmd UpdateInstanceCommand, now time.Time) *universe.Resource {
	res := resourceFromSnapshot(snap)
	if cmd.Name != nil {
		res.Name = *cmd.Name
	}
	if cmd.Status != nil {
		res.Status = universe.Status(*cmd.Status)
	}
	if cmd.Type != nil {
		res.Type = *cmd.Type
	}
	if cmd.Tags != nil {
		res.Tags = cmd.Tags
	}
	if cmd.Metadata != nil {
		res.Metadata = cmd.Metadata
	}
	if cmd.Configuration != nil {
		res.Configuration = cmd.Configuration
	}
	if cmd.CustomFields != nil {
		res.CustomFields = cmd.CustomFields
	}
	res.UpdatedAt = now
	return res
}

func resourceFromSnapshot(snap *shared.ResourceSnapshot) *universe.Resource {
	return &universe.Resource{
		ID:            snap.ID,
		Kind:          snap.Kind,
		OwnerID:       snap.OwnerID,
		ProjectID:     snap.ProjectID,
		Name:          snap.Name,
		Slug:          snap.Slug,
		Status:        snap.Status,
		Type:          snap.Type,
		Tags:          snap.Tags,
		Metadata:      snap.Metadata,
		ParentID:      snap.ParentID,
		TemplateID:    snap.TemplateID,
		Configuration: snap.Configuration,
		Permissions:   snap.Permissions,
		CustomFields:  snap.CustomFields,
		Visibility: universe.Visibility{
			IsPublic:   snap.IsPublic,
			IsShared:   snap.IsShared,
			ShareToken: snap.ShareToken,
		},
		UpdatedAt: snap.UpdatedAt,
	}
}
