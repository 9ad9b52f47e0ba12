package campaign

import (
	"time"

	"universe-api/internal/pkg/errs"
)

var (
	ErrInvalidTransition  = errs.New("campaign status transition not allowed")
	ErrScheduleInPast     = errs.New("scheduled date must be in the future")
	ErrScheduleMissing    = errs.New("scheduled date required")
	ErrNotSending         = errs.New("campaign is not sending")
	ErrCampaignTerminated = errs.New("campaign is in a terminal status")
)

// Campaign is the lifecycle aggregate. Only status, scheduledAt and sentAt
// are governed here; content and delivery fields belong to the delivery
// subsystem.
type Campaign struct {
	id          int64
	ownerID     int64
	projectID   int64
	status      Status
	scheduledAt *time.Time
	sentAt      *time.Time
	updatedAt   time.Time
}

func Reconstruct(id, ownerID, projectID int64, status Status, scheduledAt, sentAt *time.Time, updatedAt time.Time) *Campaign {
	return &Campaign{
		id:          id,
		ownerID:     ownerID,
		projectID:   projectID,
		status:      status,
		scheduledAt: scheduledAt,
		sentAt:      sentAt,
		updatedAt:   updatedAt,
	}
}

func (c *Campaign) ID() int64               { return c.id }
func (c *Campaign) OwnerID() int64          { return c.ownerID }
func (c *Campaign) ProjectID() int64        { return c.projectID }
func (c *Campaign) Status() Status          { return c.status }
func (c *Campaign) ScheduledAt() *time.Time { return c.scheduledAt }
func (c *Campaign) SentAt() *time.Time      { return c.sentAt }
func (c *Campaign) UpdatedAt() time.Time    { return c.updatedAt }

func (c *Campaign) IsScheduled() bool {
	return c.status == StatusScheduled && c.scheduledAt != nil
}

// StartSending begins delivery from draft, scheduled or paused.
func (c *Campaign) StartSending(now time.Time) error {
	return c.apply(ActionSend, now)
}

// Schedule sets a future delivery time; valid from draft and re-valid from
// scheduled (rescheduling).
func (c *Campaign) Schedule(at time.Time, now time.Time) error {
	if at.IsZero() {
		return ErrScheduleMissing
	}
	if !at.After(now) {
		return ErrScheduleInPast
	}
	if err := c.apply(ActionSchedule, now); err != nil {
		return err
	}
	c.scheduledAt = &at
	return nil
}

func (c *Campaign) Pause(now time.Time) error {
	return c.apply(ActionPause, now)
}

// Resume returns a paused campaign to scheduled.
func (c *Campaign) Resume(now time.Time) error {
	return c.apply(ActionResume, now)
}

func (c *Campaign) Cancel(now time.Time) error {
	return c.apply(ActionCancel, now)
}

// MarkSent is the delivery-subsystem completion hook: sending → sent.
func (c *Campaign) MarkSent(now time.Time) error {
	if c.status != StatusSending {
		return ErrNotSending
	}
	if err := c.apply(ActionComplete, now); err != nil {
		return err
	}
	c.sentAt = &now
	return nil
}

func (c *Campaign) apply(action Action, now time.Time) error {
	if c.status.IsTerminal() {
		return ErrCampaignTerminated
	}

	next, ok := NextStatus(c.status, action)
	if !ok {
		return ErrInvalidTransition
	}

	c.status = next
	c.updatedAt = now
	return nil
}
