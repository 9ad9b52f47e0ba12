package commands

import (
	"time"

	"universe-api/internal/usecase/shared"
)

type SendCampaignCommand struct {
	Actor           shared.Actor
	CampaignID      int64
	SendImmediately bool
	ScheduledAt     *time.Time
	TestMode        bool
	TestEmails      []string
	IssuedAt        time.Time
}

func (c SendCampaignCommand) Validate(now time.Time) []string {
	var errors []string
	errors = checkActor(errors, c.Actor.UserID)
	errors = checkTarget(errors, "campaign", c.CampaignID)
	errors = checkFutureDate(errors, "scheduled", c.ScheduledAt, now)
	if c.TestMode {
		if len(c.TestEmails) == 0 {
			errors = append(errors, "test emails are required for a test send")
		}
		for _, addr := range c.TestEmails {
			errors = checkEmail(errors, "test email", addr)
		}
	}
	return errors
}

type ScheduleCampaignCommand struct {
	Actor       shared.Actor
	CampaignID  int64
	ScheduledAt time.Time
	IssuedAt    time.Time
}

func (c ScheduleCampaignCommand) Validate(now time.Time) []string {
	var errors []string
	errors = checkActor(errors, c.Actor.UserID)
	errors = checkTarget(errors, "campaign", c.CampaignID)
	if c.ScheduledAt.IsZero() {
		errors = append(errors, "scheduled date is required")
	} else {
		at := c.ScheduledAt
		errors = checkFutureDate(errors, "scheduled", &at, now)
	}
	return errors
}

// LifecycleCampaignCommand covers pause, resume, cancel and the
// delivery-completion hook: actor plus target, nothing else.
type LifecycleCampaignCommand struct {
	Actor      shared.Actor
	CampaignID int64
	IssuedAt   time.Time
}

func (c LifecycleCampaignCommand) Validate() []string {
	var errors []string
	errors = checkActor(errors, c.Actor.UserID)
	errors = checkTarget(errors, "campaign", c.CampaignID)
	return errors
}
