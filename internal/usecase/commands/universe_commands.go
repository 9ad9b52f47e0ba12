package commands

import (
	"time"

	"universe-api/internal/usecase/shared"
)

// Commands are immutable descriptions of one requested mutation: actor
// identity plus the payload, one variant per operation. Structural
// Validate methods return accumulated field-level messages; an empty
// list means the command is well formed.

type CreateInstanceCommand struct {
	Actor         shared.Actor
	Name          string
	Slug          string
	Status        string
	Type          string
	Tags          []string
	Metadata      map[string]any
	TemplateID    *int64
	ParentID      *int64
	Configuration map[string]any
	Permissions   map[string]any
	IsPublic      bool
	CustomFields  map[string]any
	IssuedAt      time.Time
}

func (c CreateInstanceCommand) Validate() []string {
	var errors []string
	errors = checkActor(errors, c.Actor.UserID)
	errors = checkName(errors, "instance", c.Name)
	errors = checkType(errors, "instance", c.Type)
	errors = checkStatus(errors, c.Status)
	errors = checkSlug(errors, c.Slug)
	errors = checkPositiveRef(errors, "template", c.TemplateID)
	errors = checkPositiveRef(errors, "parent instance", c.ParentID)
	return errors
}

type CreateTemplateCommand struct {
	Actor         shared.Actor
	Name          string
	Slug          string
	Status        string
	Type          string
	Tags          []string
	Metadata      map[string]any
	Configuration map[string]any
	Permissions   map[string]any
	IsPublic      bool
	CustomFields  map[string]any
	IssuedAt      time.Time
}

func (c CreateTemplateCommand) Validate() []string {
	var errors []string
	errors = checkActor(errors, c.Actor.UserID)
	errors = checkName(errors, "template", c.Name)
	errors = checkType(errors, "template", c.Type)
	errors = checkStatus(errors, c.Status)
	errors = checkSlug(errors, c.Slug)
	return errors
}

type UpdateInstanceCommand struct {
	Actor         shared.Actor
	TargetID      int64
	Name          *string
	Status        *string
	Type          *string
	Tags          []string
	Metadata      map[string]any
	Configuration map[string]any
	CustomFields  map[string]any
	IssuedAt      time.Time
}

func (c UpdateInstanceCommand) Validate() []string {
	var errors []string
	errors = checkActor(errors, c.Actor.UserID)
	errors = checkTarget(errors, "instance", c.TargetID)
	if c.Name != nil {
		errors = checkName(errors, "instance", *c.Name)
	}
	if c.Status != nil {
		errors = checkStatus(errors, *c.Status)
	}
	if c.Type != nil {
		errors = checkType(errors, "instance", *c.Type)
	}
	return errors
}

type DeleteInstanceCommand struct {
	Actor    shared.Actor
	TargetID int64
	IssuedAt time.Time
}

func (c DeleteInstanceCommand) Validate() []string {
	var errors []string
	errors = checkActor(errors, c.Actor.UserID)
	errors = checkTarget(errors, "instance", c.TargetID)
	return errors
}

type ShareInstanceCommand struct {
	Actor      shared.Actor
	TargetID   int64
	Enable     bool
	MakePublic bool
	IssuedAt   time.Time
}

func (c ShareInstanceCommand) Validate() []string {
	var errors []string
	errors = checkActor(errors, c.Actor.UserID)
	errors = checkTarget(errors, "instance", c.TargetID)
	return errors
}
