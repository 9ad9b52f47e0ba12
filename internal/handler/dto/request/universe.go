package request

type CreateInstanceRequest struct {
	Name          string         `json:"name" binding:"required"`
	Slug          string         `json:"slug"`
	Status        string         `json:"status"`
	Type          string         `json:"type"`
	Tags          []string       `json:"tags"`
	Metadata      map[string]any `json:"metadata"`
	TemplateID    *int64         `json:"template_id"`
	ParentID      *int64         `json:"parent_id"`
	Configuration map[string]any `json:"configuration"`
	Permissions   map[string]any `json:"permissions"`
	IsPublic      bool           `json:"is_public"`
	CustomFields  map[string]any `json:"custom_fields"`
}

type CreateTemplateRequest struct {
	Name          string         `json:"name" binding:"required"`
	Slug          string         `json:"slug"`
	Status        string         `json:"status"`
	Type          string         `json:"type"`
	Tags          []string       `json:"tags"`
	Metadata      map[string]any `json:"metadata"`
	Configuration map[string]any `json:"configuration"`
	Permissions   map[string]any `json:"permissions"`
	IsPublic      bool           `json:"is_public"`
	CustomFields  map[string]any `json:"custom_fields"`
}

// UpdateInstanceRequest uses pointers so an absent field means "leave as
// is" while an empty value is still a real update.
type UpdateInstanceRequest struct {
	Name          *string        `json:"name"`
	Status        *string        `json:"status"`
	Type          *string        `json:"type"`
	Tags          []string       `json:"tags"`
	Metadata      map[string]any `json:"metadata"`
	Configuration map[string]any `json:"configuration"`
	CustomFields  map[string]any `json:"custom_fields"`
}

type ShareInstanceRequest struct {
	Enable     bool `json:"enable"`
	MakePublic bool `json:"make_public"`
}
