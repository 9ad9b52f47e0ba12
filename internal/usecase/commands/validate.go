package commands

import (
	"fmt"
	"net/mail"
	"time"

	"universe-api/internal/domain/universe"
)

// Shared structural-validation vocabulary. These are pure checks over a
// single command: they never touch external state, and they accumulate
// human-readable messages instead of failing fast.

func checkName(errors []string, label, name string) []string {
	if name == "" {
		return append(errors, label+" name is required")
	}
	if len(name) < universe.NameMinLength {
		errors = append(errors, fmt.Sprintf("%s name must be at least %d characters", label, universe.NameMinLength))
	}
	if len(name) > universe.NameMaxLength {
		errors = append(errors, fmt.Sprintf("%s name must be at most %d characters", label, universe.NameMaxLength))
	}
	return errors
}

func checkSlug(errors []string, slug string) []string {
	if slug != "" && !universe.SlugPattern.MatchString(slug) {
		errors = append(errors, "slug may only contain lowercase letters, numbers and hyphens")
	}
	return errors
}

func checkType(errors []string, label, resourceType string) []string {
	if resourceType != "" && !universe.ValidType(resourceType) {
		errors = append(errors, "invalid "+label+" type")
	}
	return errors
}

func checkStatus(errors []string, status string) []string {
	if status != "" && !universe.ValidStatus(status) {
		errors = append(errors, "invalid status")
	}
	return errors
}

func checkPositiveRef(errors []string, label string, id *int64) []string {
	if id != nil && *id <= 0 {
		errors = append(errors, label+" id must be greater than zero")
	}
	return errors
}

func checkActor(errors []string, userID int64) []string {
	if userID <= 0 {
		errors = append(errors, "user id is required")
	}
	return errors
}

func checkTarget(errors []string, label string, id int64) []string {
	if id <= 0 {
		errors = append(errors, label+" id is required")
	}
	return errors
}

func checkFutureDate(errors []string, label string, at *time.Time, now time.Time) []string {
	if at != nil && !at.After(now) {
		errors = append(errors, label+" date must be after now")
	}
	return errors
}

func checkEmail(errors []string, label, address string) []string {
	if _, err := mail.ParseAddress(address); err != nil {
		errors = append(errors, fmt.Sprintf("%s %q is not a valid email address", label, address))
	}
	return errors
}
