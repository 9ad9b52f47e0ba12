package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"universe-api/internal/domain/universe"
	"universe-api/internal/usecase/shared"
)

// Read models (DTO for read side)
type InstanceView struct {
	ID            int64          `json:"id"`
	Kind          string         `json:"kind"`
	OwnerID       int64          `json:"owner_id"`
	ProjectID     int64          `json:"project_id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Status        string         `json:"status"`
	Type          string         `json:"type"`
	Tags          []string       `json:"tags,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	ParentID      *int64         `json:"parent_id,omitempty"`
	TemplateID    *int64         `json:"template_id,omitempty"`
	Configuration map[string]any `json:"configuration,omitempty"`
	IsPublic      bool           `json:"is_public"`
	IsShared      bool           `json:"is_shared"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type InstanceListItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	Type      string    `json:"type"`
	IsPublic  bool      `json:"is_public"`
	IsShared  bool      `json:"is_shared"`
	CreatedAt time.Time `json:"created_at"`
}

type UniverseQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id int64) (*InstanceView, error)
	GetByShareToken(ctx context.Context, token uuid.UUID) (*InstanceView, error)
	ListByOwner(ctx context.Context, actor shared.Actor, kind universe.Kind, limit int) ([]*InstanceListItem, error)
}

type UniverseViewRepo interface {
	FindByID(ctx context.Context, id int64) (*InstanceView, error)
	FindByShareToken(ctx context.Context, token uuid.UUID) (*InstanceView, error)
	FindByOwner(ctx context.Context, ownerID, projectID int64, kind universe.Kind, limit int) ([]*InstanceListItem, error)
}

type universeQueriesImpl struct {
	repo UniverseViewRepo
}

func NewUniverseQueries(repo UniverseViewRepo) UniverseQueries {
	return &universeQueriesImpl{repo: repo}
}

func (q *universeQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id int64) (*InstanceView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// A resource in another project is hidden entirely, matching the
	// mutation side. Within the project, private resources are visible to
	// their owner only; a share token grants access through
	// GetByShareToken instead.
	if view.ProjectID != actor.ProjectID {
		return nil, ErrViewNotFound
	}
	if view.OwnerID != actor.UserID && !view.IsPublic {
		return nil, ErrViewNotFound
	}
	return view, nil
}

func (q *universeQueriesImpl) GetByShareToken(ctx context.Context, token uuid.UUID) (*InstanceView, error) {
	view, err := q.repo.FindByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !view.IsShared {
		return nil, ErrViewNotFound
	}
	return view, nil
}

func (q *universeQueriesImpl) ListByOwner(ctx context.Context, actor shared.Actor, kind universe.Kind, limit int) ([]*InstanceListItem, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.repo.FindByOwner(ctx, actor.UserID, actor.ProjectID, kind, limit)
}
