package universe

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	NameMinLength = 3
	NameMaxLength = 100
)

// SlugPattern is the only accepted slug shape: lowercase letters, digits
// and hyphens. Uniqueness is scoped per owner, not global.
var SlugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Kind distinguishes the two structurally identical resource variants.
type Kind string

const (
	KindInstance Kind = "instance"
	KindTemplate Kind = "template"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusArchived Status = "archived"
)

var Statuses = []Status{StatusDraft, StatusActive, StatusInactive, StatusArchived}

func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if string(v) == s {
			return true
		}
	}
	return false
}

var Types = []string{"personal", "shared", "public", "template"}

func ValidType(t string) bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

type Visibility struct {
	IsPublic   bool
	IsShared   bool
	ShareToken *uuid.UUID
}

// Resource is a Universe instance or template. Invariants enforced by the
// use-case layer: the parent chain is acyclic, every ancestor belongs to
// the same owner and is active, and (ownerID, slug) is unique.
type Resource struct {
	ID            int64
	Kind          Kind
	OwnerID       int64
	ProjectID     int64
	Name          string
	Slug          string
	Status        Status
	Type          string
	Tags          []string
	Metadata      map[string]any
	ParentID      *int64
	TemplateID    *int64
	Configuration map[string]any
	Permissions   map[string]any
	Visibility    Visibility
	CustomFields  map[string]any
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Spec carries the caller-provided fields of a new resource; constructors
// normalize them into an entity.
type Spec struct {
	OwnerID       int64
	ProjectID     int64
	Name          string
	Slug          string
	Status        string
	Type          string
	Tags          []string
	Metadata      map[string]any
	ParentID      *int64
	TemplateID    *int64
	Configuration map[string]any
	Permissions   map[string]any
	IsPublic      bool
	CustomFields  map[string]any
}

func NewInstance(spec Spec, now time.Time) *Resource {
	return newResource(KindInstance, spec, now)
}

func NewTemplate(spec Spec, now time.Time) *Resource {
	return newResource(KindTemplate, spec, now)
}

func newResource(kind Kind, spec Spec, now time.Time) *Resource {
	status := Status(spec.Status)
	if spec.Status == "" {
		status = StatusDraft
	}

	resourceType := spec.Type
	if resourceType == "" {
		if kind == KindTemplate {
			resourceType = "template"
		} else {
			resourceType = "personal"
		}
	}

	return &Resource{
		Kind:          kind,
		OwnerID:       spec.OwnerID,
		ProjectID:     spec.ProjectID,
		Name:          strings.TrimSpace(spec.Name),
		Slug:          spec.Slug,
		Status:        status,
		Type:          resourceType,
		Tags:          dedupeTags(spec.Tags),
		Metadata:      spec.Metadata,
		ParentID:      spec.ParentID,
		TemplateID:    spec.TemplateID,
		Configuration: spec.Configuration,
		Permissions:   spec.Permissions,
		Visibility:    Visibility{IsPublic: spec.IsPublic},
		CustomFields:  spec.CustomFields,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (r *Resource) IsActive() bool {
	return r.Status == StatusActive
}

func (r *Resource) IsArchived() bool {
	return r.Status == StatusArchived
}

// EnableSharing mints a share token. Idempotent re-enable keeps the
// existing token.
func (r *Resource) EnableSharing(now time.Time) uuid.UUID {
	if r.Visibility.ShareToken != nil {
		r.Visibility.IsShared = true
		return *r.Visibility.ShareToken
	}

	token := uuid.New()
	r.Visibility.IsShared = true
	r.Visibility.ShareToken = &token
	r.UpdatedAt = now
	return token
}

func (r *Resource) DisableSharing(now time.Time) {
	r.Visibility.IsShared = false
	r.Visibility.ShareToken = nil
	r.UpdatedAt = now
}

// Archive is the soft-delete: the row stays, the status flips.
func (r *Resource) Archive(now time.Time) {
	r.Status = StatusArchived
	r.UpdatedAt = now
}

func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
