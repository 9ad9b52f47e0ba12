//go:build unit

package campaign_test

import (
	"testing"
	"time"

	"universe-api/internal/domain/campaign"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func reconstruct(status campaign.Status, scheduledAt *time.Time) *campaign.Campaign {
	return campaign.Reconstruct(1, 10, 100, status, scheduledAt, nil, now)
}

func TestCampaignStartSending(t *testing.T) {
	tests := []struct {
		name   string
		status campaign.Status
		errIs  error
	}{
		{name: "from draft", status: campaign.StatusDraft},
		{name: "from scheduled", status: campaign.StatusScheduled},
		{name: "from paused", status: campaign.StatusPaused},
		{name: "from sending rejected", status: campaign.StatusSending, errIs: campaign.ErrInvalidTransition},
		{name: "from sent rejected", status: campaign.StatusSent, errIs: campaign.ErrCampaignTerminated},
		{name: "from cancelled rejected", status: campaign.StatusCancelled, errIs: campaign.ErrCampaignTerminated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := reconstruct(tt.status, nil)
			err := c.StartSending(now)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				assert.Equal(t, tt.status, c.Status(), "status must not change on rejection")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, campaign.StatusSending, c.Status())
		})
	}
}

func TestCampaignSchedule(t *testing.T) {
	future := now.Add(24 * time.Hour)

	t.Run("draft to scheduled", func(t *testing.T) {
		c := reconstruct(campaign.StatusDraft, nil)
		require.NoError(t, c.Schedule(future, now))
		assert.Equal(t, campaign.StatusScheduled, c.Status())
		require.NotNil(t, c.ScheduledAt())
		assert.Equal(t, future, *c.ScheduledAt())
		assert.True(t, c.IsScheduled())
	})

	t.Run("reschedule keeps scheduled status", func(t *testing.T) {
		first := now.Add(time.Hour)
		c := reconstruct(campaign.StatusScheduled, &first)
		later := now.Add(48 * time.Hour)
		require.NoError(t, c.Schedule(later, now))
		assert.Equal(t, campaign.StatusScheduled, c.Status())
		assert.Equal(t, later, *c.ScheduledAt())
	})

	t.Run("past date rejected", func(t *testing.T) {
		c := reconstruct(campaign.StatusDraft, nil)
		err := c.Schedule(now.Add(-time.Minute), now)
		assert.ErrorIs(t, err, campaign.ErrScheduleInPast)
		assert.Equal(t, campaign.StatusDraft, c.Status())
	})

	t.Run("now exactly rejected", func(t *testing.T) {
		c := reconstruct(campaign.StatusDraft, nil)
		assert.ErrorIs(t, c.Schedule(now, now), campaign.ErrScheduleInPast)
	})

	t.Run("zero date rejected", func(t *testing.T) {
		c := reconstruct(campaign.StatusDraft, nil)
		assert.ErrorIs(t, c.Schedule(time.Time{}, now), campaign.ErrScheduleMissing)
	})

	t.Run("from sending rejected", func(t *testing.T) {
		c := reconstruct(campaign.StatusSending, nil)
		assert.ErrorIs(t, c.Schedule(future, now), campaign.ErrInvalidTransition)
	})
}

func TestCampaignPauseResume(t *testing.T) {
	t.Run("pause while sending", func(t *testing.T) {
		c := reconstruct(campaign.StatusSending, nil)
		require.NoError(t, c.Pause(now))
		assert.Equal(t, campaign.StatusPaused, c.Status())
	})

	t.Run("resume returns to scheduled", func(t *testing.T) {
		c := reconstruct(campaign.StatusPaused, nil)
		require.NoError(t, c.Resume(now))
		assert.Equal(t, campaign.StatusScheduled, c.Status())
	})

	t.Run("resume from draft rejected", func(t *testing.T) {
		c := reconstruct(campaign.StatusDraft, nil)
		assert.ErrorIs(t, c.Resume(now), campaign.ErrInvalidTransition)
	})
}

func TestCampaignMarkSent(t *testing.T) {
	t.Run("sending to sent", func(t *testing.T) {
		c := reconstruct(campaign.StatusSending, nil)
		require.NoError(t, c.MarkSent(now))
		assert.Equal(t, campaign.StatusSent, c.Status())
		require.NotNil(t, c.SentAt())
		assert.Equal(t, now, *c.SentAt())
	})

	t.Run("not sending rejected", func(t *testing.T) {
		for _, status := range []campaign.Status{
			campaign.StatusDraft, campaign.StatusScheduled, campaign.StatusPaused,
			campaign.StatusSent, campaign.StatusCancelled,
		} {
			c := reconstruct(status, nil)
			assert.ErrorIs(t, c.MarkSent(now), campaign.ErrNotSending, string(status))
		}
	})
}

func TestCampaignCancelIsFinal(t *testing.T) {
	c := reconstruct(campaign.StatusDraft, nil)
	require.NoError(t, c.Cancel(now))
	assert.Equal(t, campaign.StatusCancelled, c.Status())

	assert.ErrorIs(t, c.StartSending(now), campaign.ErrCampaignTerminated)
	assert.ErrorIs(t, c.Cancel(now), campaign.ErrCampaignTerminated)
}
