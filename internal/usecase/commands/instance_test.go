//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"universe-api/internal/domain/universe"
	"universe-api/internal/infra"
	"universe-api/internal/pkg/clock"
	"universe-api/internal/pkg/errs"
	"universe-api/internal/usecase/commands"
	"universe-api/internal/usecase/shared"
)

type universeFixture struct {
	store *fakeStore
	bus   *fakeBus
	cfg   *fakeConfigurator
	clock *clock.MockClock
	uc    commands.UniverseCommands
}

func newUniverseFixture(t *testing.T) *universeFixture {
	t.Helper()

	store := newFakeStore()
	store.addUser(1, true)
	bus := &fakeBus{}
	cfg := &fakeConfigurator{failSteps: map[string]bool{}}
	mock := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	uc := commands.NewUniverseUseCase(
		&fakeUoW{store: store},
		commands.NewRules(store, testQuota),
		cfg,
		bus,
		mock,
		logger,
	)
	return &universeFixture{store: store, bus: bus, cfg: cfg, clock: mock, uc: uc}
}

func (f *universeFixture) actor() shared.Actor {
	return shared.Actor{UserID: 1, ProjectID: 10}
}

func TestCreateInstance(t *testing.T) {
	t.Run("creates the resource and reports success", func(t *testing.T) {
		f := newUniverseFixture(t)

		result := f.uc.CreateInstance(context.Background(), commands.CreateInstanceCommand{
			Actor: f.actor(),
			Name:  "My Workspace",
			Slug:  "my-workspace",
			Type:  "personal",
			Tags:  []string{"crm"},
		})

		require.True(t, result.Success)
		assert.Equal(t, shared.KindSuccess, result.Kind)
		assert.Equal(t, "instance created", result.Message)
		assert.Equal(t, "My Workspace", result.Data["name"])
		assert.Equal(t, "my-workspace", result.Data["slug"])
		assert.Equal(t, "draft", result.Data["status"])

		id, ok := result.Data["id"].(int64)
		require.True(t, ok)
		stored := f.store.resources[id]
		require.NotNil(t, stored)
		assert.Equal(t, universe.KindInstance, stored.Kind)
		assert.Equal(t, int64(1), stored.OwnerID)
		assert.Equal(t, []string{"crm"}, stored.Tags)
	})

	t.Run("runs the setup pipeline after commit", func(t *testing.T) {
		f := newUniverseFixture(t)

		f.uc.CreateInstance(context.Background(), commands.CreateInstanceCommand{
			Actor: f.actor(),
			Name:  "My Workspace",
		})

		assert.Equal(t, []string{
			"initial_settings",
			"default_permissions",
			"analytics",
			"notifications",
			"integrations",
			"webhooks",
		}, f.cfg.ran)
	})

	t.Run("applies the template before the other setup steps", func(t *testing.T) {
		f := newUniverseFixture(t)
		tpl := activeInstance(200, 1, 10, "")
		tpl.Kind = universe.KindTemplate
		f.store.addResource(tpl)

		result := f.uc.CreateInstance(context.Background(), commands.CreateInstanceCommand{
			Actor:      f.actor(),
			Name:       "From Template",
			TemplateID: ptr(int64(200)),
		})

		require.True(t, result.Success)
		require.NotEmpty(t, f.cfg.ran)
		assert.Equal(t, "apply_template", f.cfg.ran[0])
	})

	t.Run("publishes one creation event", func(t *testing.T) {
		f := newUniverseFixture(t)

		f.uc.CreateInstance(context.Background(), commands.CreateInstanceCommand{
			Actor: f.actor(),
			Name:  "My Workspace",
			Type:  "personal",
		})

		require.Len(t, f.bus.events, 1)
		event := f.bus.events[0]
		assert.Equal(t, shared.EventInstanceCreated, event.Type)
		assert.Equal(t, int64(1), event.ActorID)
		assert.Equal(t, "My Workspace", event.Metadata["name"])
	})

	t.Run("structural failure skips every side effect", func(t *testing.T) {
		f := newUniverseFixture(t)

		result := f.uc.CreateInstance(context.Background(), commands.CreateInstanceCommand{
			Actor: f.actor(),
		})

		assert.False(t, result.Success)
		assert.Equal(t, shared.KindInvalid, result.Kind)
		assert.NotEmpty(t, result.Errors)
		assert.Empty(t, f.store.resources)
		assert.Empty(t, f.bus.events)
		assert.Empty(t, f.cfg.ran)
	})

	t.Run("business rule failure rolls back and publishes nothing", func(t *testing.T) {
		f := newUniverseFixture(t)
		f.store.addResource(activeInstance(100, 1, 10, "taken"))

		result := f.uc.CreateInstance(context.Background(), commands.CreateInstanceCommand{
			Actor: f.actor(),
			Name:  "My Workspace",
			Slug:  "taken",
		})

		assert.False(t, result.Success)
		assert.Equal(t, shared.KindBusinessRule, result.Kind)
		assert.Equal(t, []string{"slug already in use"}, result.Errors)
		assert.Len(t, f.store.resources, 1)
		assert.Empty(t, f.bus.events)
	})

	t.Run("unique index collision on insert is a business failure", func(t *testing.T) {
		// A concurrent create can pass the slug check and still hit the
		// constraint; the collision must not surface as a fatal error.
		f := newUniverseFixture(t)
		discard := slog.New(slog.NewTextHandler(io.Discard, nil))
		f.store.createErr = infra.WrapRepoErr(discard, infra.KindDuplicateKey, "duplicate slug", errs.New("23505"))

		result := f.uc.CreateInstance(context.Background(), commands.CreateInstanceCommand{
			Actor: f.actor(),
			Name:  "My Workspace",
			Slug:  "taken",
		})

		assert.False(t, result.Success)
		assert.Equal(t, shared.KindBusinessRule, result.Kind)
		assert.Equal(t, []string{"slug already in use"}, result.Errors)
		assert.Empty(t, f.bus.events)
		assert.Empty(t, f.cfg.ran)
	})

	t.Run("a failing setup step does not fail the creation", func(t *testing.T) {
		f := newUniverseFixture(t)
		f.cfg.failSteps["analytics"] = true

		result := f.uc.CreateInstance(context.Background(), commands.CreateInstanceCommand{
			Actor: f.actor(),
			Name:  "My Workspace",
		})

		require.True(t, result.Success)
		assert.Contains(t, f.cfg.ran, "webhooks")
		assert.Len(t, f.bus.events, 1)
	})

	t.Run("a failing event bus does not fail the creation", func(t *testing.T) {
		f := newUniverseFixture(t)
		f.bus.failErr = errs.New("broker down")

		result := f.uc.CreateInstance(context.Background(), commands.CreateInstanceCommand{
			Actor: f.actor(),
			Name:  "My Workspace",
		})

		assert.True(t, result.Success)
	})
}

func TestCreateTemplate(t *testing.T) {
	f := newUniverseFixture(t)

	result := f.uc.CreateTemplate(context.Background(), commands.CreateTemplateCommand{
		Actor: f.actor(),
		Name:  "Onboarding Kit",
		Slug:  "onboarding-kit",
	})

	require.True(t, result.Success)
	id, ok := result.Data["id"].(int64)
	require.True(t, ok)
	assert.Equal(t, universe.KindTemplate, f.store.resources[id].Kind)
	require.Len(t, f.bus.events, 1)
	assert.Equal(t, shared.EventTemplateCreated, f.bus.events[0].Type)
}

func TestUpdateInstance(t *testing.T) {
	t.Run("applies partial changes and keeps the rest", func(t *testing.T) {
		f := newUniverseFixture(t)
		res := activeInstance(100, 1, 10, "my-workspace")
		res.Tags = []string{"crm", "email"}
		res.Configuration = map[string]any{"theme": "dark"}
		f.store.addResource(res)

		result := f.uc.UpdateInstance(context.Background(), commands.UpdateInstanceCommand{
			Actor:    f.actor(),
			TargetID: 100,
			Name:     ptr("Renamed"),
		})

		require.True(t, result.Success)
		stored := f.store.resources[100]
		assert.Equal(t, "Renamed", stored.Name)
		assert.Equal(t, []string{"crm", "email"}, stored.Tags)
		assert.Equal(t, map[string]any{"theme": "dark"}, stored.Configuration)
		assert.Equal(t, "my-workspace", stored.Slug)
		require.Len(t, f.bus.events, 1)
		assert.Equal(t, shared.EventInstanceUpdated, f.bus.events[0].Type)
	})

	t.Run("missing instance", func(t *testing.T) {
		f := newUniverseFixture(t)

		result := f.uc.UpdateInstance(context.Background(), commands.UpdateInstanceCommand{
			Actor:    f.actor(),
			TargetID: 999,
			Name:     ptr("Renamed"),
		})

		assert.Equal(t, shared.KindNotFound, result.Kind)
		assert.Empty(t, f.bus.events)
	})

	t.Run("instance in another project looks missing", func(t *testing.T) {
		f := newUniverseFixture(t)
		f.store.addResource(activeInstance(100, 1, 99, ""))

		result := f.uc.UpdateInstance(context.Background(), commands.UpdateInstanceCommand{
			Actor:    f.actor(),
			TargetID: 100,
			Name:     ptr("Renamed"),
		})

		assert.Equal(t, shared.KindNotFound, result.Kind)
	})

	t.Run("instance of another user is refused", func(t *testing.T) {
		f := newUniverseFixture(t)
		f.store.addResource(activeInstance(100, 2, 10, ""))

		result := f.uc.UpdateInstance(context.Background(), commands.UpdateInstanceCommand{
			Actor:    f.actor(),
			TargetID: 100,
			Name:     ptr("Renamed"),
		})

		assert.Equal(t, shared.KindBusinessRule, result.Kind)
		assert.Equal(t, []string{"instance belongs to another user"}, result.Errors)
	})

	t.Run("archived instance is refused", func(t *testing.T) {
		f := newUniverseFixture(t)
		res := activeInstance(100, 1, 10, "")
		res.Status = universe.StatusArchived
		f.store.addResource(res)

		result := f.uc.UpdateInstance(context.Background(), commands.UpdateInstanceCommand{
			Actor:    f.actor(),
			TargetID: 100,
			Name:     ptr("Renamed"),
		})

		assert.Equal(t, shared.KindBusinessRule, result.Kind)
		assert.Equal(t, []string{"archived instances cannot be updated"}, result.Errors)
	})
}

func TestDeleteInstance(t *testing.T) {
	t.Run("archives instead of removing", func(t *testing.T) {
		f := newUniverseFixture(t)
		f.store.addResource(activeInstance(100, 1, 10, ""))

		result := f.uc.DeleteInstance(context.Background(), commands.DeleteInstanceCommand{
			Actor:    f.actor(),
			TargetID: 100,
		})

		require.True(t, result.Success)
		assert.Equal(t, universe.StatusArchived, f.store.resources[100].Status)
		require.Len(t, f.bus.events, 1)
		assert.Equal(t, shared.EventInstanceDeleted, f.bus.events[0].Type)
	})

	t.Run("refuses while active children remain", func(t *testing.T) {
		f := newUniverseFixture(t)
		f.store.addResource(activeInstance(100, 1, 10, ""))
		child := activeInstance(101, 1, 10, "")
		child.ParentID = ptr(int64(100))
		f.store.addResource(child)

		result := f.uc.DeleteInstance(context.Background(), commands.DeleteInstanceCommand{
			Actor:    f.actor(),
			TargetID: 100,
		})

		assert.Equal(t, shared.KindBusinessRule, result.Kind)
		assert.Equal(t, []string{"instance still has 1 active children"}, result.Errors)
		assert.Equal(t, universe.StatusActive, f.store.resources[100].Status)
		assert.Empty(t, f.bus.events)
	})
}

func TestShareInstance(t *testing.T) {
	t.Run("enabling mints a token", func(t *testing.T) {
		f := newUniverseFixture(t)
		f.store.addResource(activeInstance(100, 1, 10, ""))

		result := f.uc.ShareInstance(context.Background(), commands.ShareInstanceCommand{
			Actor:    f.actor(),
			TargetID: 100,
			Enable:   true,
		})

		require.True(t, result.Success)
		assert.Equal(t, "sharing enabled", result.Message)
		assert.Equal(t, true, result.Data["is_shared"])
		assert.NotEmpty(t, result.Data["share_token"])

		stored := f.store.resources[100]
		assert.True(t, stored.IsShared)
		require.NotNil(t, stored.ShareToken)
		assert.Equal(t, stored.ShareToken.String(), result.Data["share_token"])
	})

	t.Run("re-enabling keeps the existing token", func(t *testing.T) {
		f := newUniverseFixture(t)
		f.store.addResource(activeInstance(100, 1, 10, ""))

		first := f.uc.ShareInstance(context.Background(), commands.ShareInstanceCommand{
			Actor: f.actor(), TargetID: 100, Enable: true,
		})
		second := f.uc.ShareInstance(context.Background(), commands.ShareInstanceCommand{
			Actor: f.actor(), TargetID: 100, Enable: true,
		})

		assert.Equal(t, first.Data["share_token"], second.Data["share_token"])
	})

	t.Run("disabling clears the token", func(t *testing.T) {
		f := newUniverseFixture(t)
		f.store.addResource(activeInstance(100, 1, 10, ""))
		f.uc.ShareInstance(context.Background(), commands.ShareInstanceCommand{
			Actor: f.actor(), TargetID: 100, Enable: true, MakePublic: true,
		})

		result := f.uc.ShareInstance(context.Background(), commands.ShareInstanceCommand{
			Actor: f.actor(), TargetID: 100, Enable: false,
		})

		require.True(t, result.Success)
		assert.Equal(t, "sharing disabled", result.Message)
		stored := f.store.resources[100]
		assert.False(t, stored.IsShared)
		assert.False(t, stored.IsPublic)
		assert.Nil(t, stored.ShareToken)
	})

	t.Run("archived instance cannot be shared", func(t *testing.T) {
		f := newUniverseFixture(t)
		res := activeInstance(100, 1, 10, "")
		res.Status = universe.StatusArchived
		f.store.addResource(res)

		result := f.uc.ShareInstance(context.Background(), commands.ShareInstanceCommand{
			Actor: f.actor(), TargetID: 100, Enable: true,
		})

		assert.Equal(t, shared.KindBusinessRule, result.Kind)
		assert.Equal(t, []string{"archived instances cannot be shared"}, result.Errors)
	})
}
