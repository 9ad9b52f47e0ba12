package commands

import (
	"context"
	"log/slog"

	"universe-api/internal/domain/report"
	"universe-api/internal/pkg/clock"
	"universe-api/internal/usecase/shared"
)

type ReportCommands interface {
	GenerateReport(ctx context.Context, cmd GenerateReportCommand) *shared.Result
}

type reportUseCaseImpl struct {
	uow    shared.UnitOfWork
	events dispatcher
	clock  clock.Clock
}

func NewReportUseCase(uow shared.UnitOfWork, bus shared.EventBus, clock clock.Clock, logger *slog.Logger) ReportCommands {
	return &reportUseCaseImpl{
		uow:    uow,
		events: dispatcher{bus: bus, logger: logger},
		clock:  clock,
	}
}

func (u *reportUseCaseImpl) GenerateReport(ctx context.Context, cmd GenerateReportCommand) *shared.Result {
	if errors := cmd.Validate(); len(errors) > 0 {
		return shared.Invalid(errors, "report validation failed")
	}

	now := u.clock.Now()
	rep := report.New(cmd.Actor.UserID, cmd.Actor.ProjectID, cmd.Type, cmd.Format, cmd.StartDate, cmd.EndDate, cmd.Filters, now)

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		user, err := tx.Reads().UserByID(ctx, cmd.Actor.UserID)
		if err != nil {
			if isNotFound(err) {
				return notFoundErr("user not found")
			}
			return err
		}
		if !user.IsActive {
			return businessErr([]string{"user account is inactive"}, "report generation rejected")
		}

		id, err := tx.Reports().Create(ctx, rep)
		if err != nil {
			return err
		}
		rep.ID = id
		return nil
	})
	if err != nil {
		return resultFromErr(err, "could not generate report")
	}

	u.events.dispatch(ctx, shared.NewDomainEvent(shared.EventReportGenerated, rep.ID, cmd.Actor, map[string]any{
		"type":   rep.Type,
		"format": rep.Format,
	}, now))

	return shared.OK(map[string]any{
		"id":         rep.ID,
		"name":       rep.Name,
		"type":       rep.Type,
		"format":     rep.Format,
		"start_date": rep.StartDate.Format("2006-01-02"),
		"end_date":   rep.EndDate.Format("2006-01-02"),
	}, "report generated")
}
