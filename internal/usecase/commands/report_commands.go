package commands

import (
	"fmt"
	"time"

	"universe-api/internal/domain/report"
	"universe-api/internal/usecase/shared"
)

type GenerateReportCommand struct {
	Actor     shared.Actor
	Type      string
	Format    string
	StartDate time.Time
	EndDate   time.Time
	Filters   map[string]any
	IssuedAt  time.Time
}

func (c GenerateReportCommand) Validate() []string {
	var errors []string
	errors = checkActor(errors, c.Actor.UserID)
	if !report.ValidType(c.Type) {
		errors = append(errors, "invalid report type")
	}
	if !report.ValidFormat(c.Format) {
		errors = append(errors, "invalid report format")
	}
	switch {
	case c.StartDate.IsZero() || c.EndDate.IsZero():
		errors = append(errors, "start and end dates are required")
	case c.StartDate.After(c.EndDate):
		errors = append(errors, "start date must be before end date")
	case c.EndDate.Sub(c.StartDate) > report.MaxPeriodDays*24*time.Hour:
		errors = append(errors, fmt.Sprintf("report period may not exceed %d days", report.MaxPeriodDays))
	}
	return errors
}
