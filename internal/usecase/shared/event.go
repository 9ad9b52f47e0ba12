package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Domain event types published after successful mutations.
const (
	EventInstanceCreated   = "universe.instance.created"
	EventInstanceUpdated   = "universe.instance.updated"
	EventInstanceDeleted   = "universe.instance.deleted"
	EventInstanceShared    = "universe.instance.shared"
	EventTemplateCreated   = "universe.template.created"
	EventReportGenerated   = "analytics.report.generated"
	EventCampaignSending   = "campaign.sending"
	EventCampaignScheduled = "campaign.scheduled"
	EventCampaignSent      = "campaign.sent"
	EventCampaignPaused    = "campaign.paused"
	EventCampaignResumed   = "campaign.resumed"
	EventCampaignCanceled  = "campaign.cancelled"
)

// DomainEvent is an immutable notification published once per successful
// mutation. Delivery is fire-and-forget: no retry, no replay.
type DomainEvent struct {
	ID         uuid.UUID      `json:"id"`
	Type       string         `json:"type"`
	ResourceID int64          `json:"resource_id"`
	ActorID    int64          `json:"actor_id"`
	ProjectID  int64          `json:"project_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func NewDomainEvent(eventType string, resourceID int64, actor Actor, metadata map[string]any, occurredAt time.Time) DomainEvent {
	return DomainEvent{
		ID:         uuid.New(),
		Type:       eventType,
		ResourceID: resourceID,
		ActorID:    actor.UserID,
		ProjectID:  actor.ProjectID,
		Metadata:   metadata,
		OccurredAt: occurredAt,
	}
}

type EventBus interface {
	Publish(ctx context.Context, event DomainEvent) error
}
