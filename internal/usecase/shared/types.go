package shared

import (
	"time"

	"universe-api/internal/domain/campaign"
	"universe-api/internal/domain/universe"

	"github.com/google/uuid"
)

// UserSnapshot is the minimal user-directory view validation needs.
// Limits of zero mean "use the configured fallback".
type UserSnapshot struct {
	ID                 int64
	IsActive           bool
	MaxActiveInstances int
	MaxActiveTemplates int
}

type UserCredentials struct {
	ID               int64
	Email            string
	PasswordHash     string
	IsActive         bool
	DefaultProjectID int64
}

type ResourceSnapshot struct {
	ID            int64
	Kind          universe.Kind
	OwnerID       int64
	ProjectID     int64
	Name          string
	Slug          string
	Status        universe.Status
	Type          string
	Tags          []string
	Metadata      map[string]any
	ParentID      *int64
	TemplateID    *int64
	Configuration map[string]any
	Permissions   map[string]any
	CustomFields  map[string]any
	IsPublic      bool
	IsShared      bool
	ShareToken    *uuid.UUID
	UpdatedAt     time.Time
}

func (s *ResourceSnapshot) IsActive() bool {
	return s.Status == universe.StatusActive
}

type CampaignSnapshot struct {
	ID          int64
	OwnerID     int64
	ProjectID   int64
	Status      campaign.Status
	ScheduledAt *time.Time
	SentAt      *time.Time
	UpdatedAt   time.Time
}
