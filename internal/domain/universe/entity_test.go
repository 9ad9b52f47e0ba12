//go:build unit

package universe_test

import (
	"testing"
	"time"

	"universe-api/internal/domain/universe"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func baseSpec() universe.Spec {
	return universe.Spec{
		OwnerID:   10,
		ProjectID: 100,
		Name:      "Summer Launch",
		Slug:      "summer-launch",
		Type:      "personal",
	}
}

func TestNewInstance(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		res := universe.NewInstance(baseSpec(), now)

		expected := &universe.Resource{
			Kind:      universe.KindInstance,
			OwnerID:   10,
			ProjectID: 100,
			Name:      "Summer Launch",
			Slug:      "summer-launch",
			Status:    universe.StatusDraft,
			Type:      "personal",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if diff := cmp.Diff(expected, res, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("Resource mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("explicit status kept", func(t *testing.T) {
		spec := baseSpec()
		spec.Status = "active"
		res := universe.NewInstance(spec, now)
		assert.Equal(t, universe.StatusActive, res.Status)
		assert.True(t, res.IsActive())
	})

	t.Run("name trimmed", func(t *testing.T) {
		spec := baseSpec()
		spec.Name = "  Summer Launch  "
		res := universe.NewInstance(spec, now)
		assert.Equal(t, "Summer Launch", res.Name)
	})

	t.Run("empty type defaults by kind", func(t *testing.T) {
		spec := baseSpec()
		spec.Type = ""
		assert.Equal(t, "personal", universe.NewInstance(spec, now).Type)
		assert.Equal(t, "template", universe.NewTemplate(spec, now).Type)
	})

	t.Run("tags deduped and cleaned", func(t *testing.T) {
		spec := baseSpec()
		spec.Tags = []string{"promo", " promo ", "", "email", "promo"}
		res := universe.NewInstance(spec, now)
		assert.Equal(t, []string{"promo", "email"}, res.Tags)
	})
}

func TestNewTemplate(t *testing.T) {
	res := universe.NewTemplate(baseSpec(), now)
	assert.Equal(t, universe.KindTemplate, res.Kind)
	assert.Equal(t, universe.StatusDraft, res.Status)
}

func TestSharing(t *testing.T) {
	t.Run("enable mints a token", func(t *testing.T) {
		res := universe.NewInstance(baseSpec(), now)
		token := res.EnableSharing(now)

		assert.True(t, res.Visibility.IsShared)
		require.NotNil(t, res.Visibility.ShareToken)
		assert.Equal(t, token, *res.Visibility.ShareToken)
	})

	t.Run("re-enable keeps the token", func(t *testing.T) {
		res := universe.NewInstance(baseSpec(), now)
		first := res.EnableSharing(now)
		second := res.EnableSharing(now.Add(time.Hour))
		assert.Equal(t, first, second)
	})

	t.Run("disable clears everything", func(t *testing.T) {
		res := universe.NewInstance(baseSpec(), now)
		res.EnableSharing(now)
		res.DisableSharing(now.Add(time.Hour))

		assert.False(t, res.Visibility.IsShared)
		assert.Nil(t, res.Visibility.ShareToken)
	})

	t.Run("enable after disable mints a fresh token", func(t *testing.T) {
		res := universe.NewInstance(baseSpec(), now)
		first := res.EnableSharing(now)
		res.DisableSharing(now)
		second := res.EnableSharing(now)
		assert.NotEqual(t, first, second)
	})
}

func TestArchive(t *testing.T) {
	res := universe.NewInstance(baseSpec(), now)
	later := now.Add(time.Hour)
	res.Archive(later)

	assert.True(t, res.IsArchived())
	assert.False(t, res.IsActive())
	assert.Equal(t, later, res.UpdatedAt)
}

func TestValidators(t *testing.T) {
	assert.True(t, universe.ValidStatus("draft"))
	assert.True(t, universe.ValidStatus("archived"))
	assert.False(t, universe.ValidStatus("deleted"))

	assert.True(t, universe.ValidType("personal"))
	assert.True(t, universe.ValidType("template"))
	assert.False(t, universe.ValidType("corporate"))

	assert.True(t, universe.SlugPattern.MatchString("my-slug-01"))
	assert.False(t, universe.SlugPattern.MatchString("My Slug"))
	assert.False(t, universe.SlugPattern.MatchString("slug_underscore"))
}
