package request

import "time"

type SendCampaignRequest struct {
	SendImmediately bool       `json:"send_immediately"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	TestMode        bool       `json:"test_mode"`
	TestEmails      []string   `json:"test_emails"`
}

type ScheduleCampaignRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}
