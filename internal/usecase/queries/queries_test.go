//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"universe-api/internal/domain/universe"
	"universe-api/internal/usecase/queries"
	"universe-api/internal/usecase/shared"
)

var viewer = shared.Actor{UserID: 1, ProjectID: 10}

type fakeUniverseViewRepo struct {
	views  map[int64]*queries.InstanceView
	items  []*queries.InstanceListItem
	scopes [][2]int64
	limits []int
}

func (r *fakeUniverseViewRepo) FindByID(_ context.Context, id int64) (*queries.InstanceView, error) {
	v, ok := r.views[id]
	if !ok {
		return nil, queries.ErrViewNotFound
	}
	return v, nil
}

func (r *fakeUniverseViewRepo) FindByShareToken(_ context.Context, token uuid.UUID) (*queries.InstanceView, error) {
	for _, v := range r.views {
		return v, nil
	}
	return nil, queries.ErrViewNotFound
}

func (r *fakeUniverseViewRepo) FindByOwner(_ context.Context, ownerID, projectID int64, kind universe.Kind, limit int) ([]*queries.InstanceListItem, error) {
	r.scopes = append(r.scopes, [2]int64{ownerID, projectID})
	r.limits = append(r.limits, limit)
	return r.items, nil
}

func TestUniverseGetByID(t *testing.T) {
	repo := &fakeUniverseViewRepo{views: map[int64]*queries.InstanceView{
		100: {ID: 100, OwnerID: 1, ProjectID: 10, Name: "mine"},
		200: {ID: 200, OwnerID: 2, ProjectID: 10, Name: "theirs"},
		300: {ID: 300, OwnerID: 2, ProjectID: 10, Name: "public", IsPublic: true},
		400: {ID: 400, OwnerID: 2, ProjectID: 99, Name: "elsewhere", IsPublic: true},
	}}
	q := queries.NewUniverseQueries(repo)

	view, err := q.GetByID(context.Background(), viewer, 100)
	require.NoError(t, err)
	assert.Equal(t, "mine", view.Name)

	_, err = q.GetByID(context.Background(), viewer, 200)
	assert.ErrorIs(t, err, queries.ErrViewNotFound)

	view, err = q.GetByID(context.Background(), viewer, 300)
	require.NoError(t, err)
	assert.Equal(t, "public", view.Name)

	// Public in another project is still invisible, matching the
	// not-found the commands return for cross-project targets.
	_, err = q.GetByID(context.Background(), viewer, 400)
	assert.ErrorIs(t, err, queries.ErrViewNotFound)

	_, err = q.GetByID(context.Background(), viewer, 999)
	assert.ErrorIs(t, err, queries.ErrViewNotFound)
}

func TestUniverseGetByShareToken(t *testing.T) {
	token := uuid.New()

	t.Run("shared view is readable without ownership", func(t *testing.T) {
		repo := &fakeUniverseViewRepo{views: map[int64]*queries.InstanceView{
			100: {ID: 100, OwnerID: 2, ProjectID: 99, Name: "shared", IsShared: true},
		}}
		q := queries.NewUniverseQueries(repo)

		view, err := q.GetByShareToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "shared", view.Name)
	})

	t.Run("a stale token on an unshared view is refused", func(t *testing.T) {
		repo := &fakeUniverseViewRepo{views: map[int64]*queries.InstanceView{
			100: {ID: 100, OwnerID: 2, ProjectID: 99, Name: "unshared", IsShared: false},
		}}
		q := queries.NewUniverseQueries(repo)

		_, err := q.GetByShareToken(context.Background(), token)
		assert.ErrorIs(t, err, queries.ErrViewNotFound)
	})
}

func TestUniverseListByOwner(t *testing.T) {
	repo := &fakeUniverseViewRepo{items: []*queries.InstanceListItem{{ID: 1}}}
	q := queries.NewUniverseQueries(repo)

	items, err := q.ListByOwner(context.Background(), viewer, universe.KindInstance, 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = q.ListByOwner(context.Background(), viewer, universe.KindInstance, 5)
	require.NoError(t, err)

	assert.Equal(t, []int{50, 5}, repo.limits)
	assert.Equal(t, [][2]int64{{1, 10}, {1, 10}}, repo.scopes)
}

type fakeCampaignViewRepo struct {
	rows map[int64]*queries.CampaignRow
}

func (r *fakeCampaignViewRepo) FindByID(_ context.Context, id int64) (*queries.CampaignRow, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, queries.ErrViewNotFound
	}
	return row, nil
}

func TestCampaignExecutionStatus(t *testing.T) {
	scheduledAt := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	repo := &fakeCampaignViewRepo{rows: map[int64]*queries.CampaignRow{
		50: {ID: 50, OwnerID: 1, ProjectID: 10, Status: "scheduled", ScheduledAt: &scheduledAt},
		51: {ID: 51, OwnerID: 1, ProjectID: 10, Status: "sending"},
		52: {ID: 52, OwnerID: 1, ProjectID: 10, Status: "sent"},
		60: {ID: 60, OwnerID: 2, ProjectID: 10, Status: "draft"},
		61: {ID: 61, OwnerID: 1, ProjectID: 99, Status: "draft"},
	}}
	q := queries.NewCampaignQueries(repo)

	t.Run("scheduled exposes send, pause and cancel", func(t *testing.T) {
		view, err := q.ExecutionStatus(context.Background(), viewer, 50)
		require.NoError(t, err)
		assert.True(t, view.CanBeSent)
		assert.True(t, view.CanBePaused)
		assert.True(t, view.CanBeCancelled)
		assert.True(t, view.IsScheduled)
		assert.False(t, view.IsSending)
	})

	t.Run("sending can be paused but not re-sent", func(t *testing.T) {
		view, err := q.ExecutionStatus(context.Background(), viewer, 51)
		require.NoError(t, err)
		assert.False(t, view.CanBeSent)
		assert.True(t, view.CanBePaused)
		assert.True(t, view.IsSending)
	})

	t.Run("sent is inert", func(t *testing.T) {
		view, err := q.ExecutionStatus(context.Background(), viewer, 52)
		require.NoError(t, err)
		assert.False(t, view.CanBeSent)
		assert.False(t, view.CanBePaused)
		assert.False(t, view.CanBeCancelled)
		assert.True(t, view.IsSent)
	})

	t.Run("another owner's campaign is hidden", func(t *testing.T) {
		_, err := q.ExecutionStatus(context.Background(), viewer, 60)
		assert.ErrorIs(t, err, queries.ErrViewNotFound)
	})

	t.Run("a campaign in another project is hidden", func(t *testing.T) {
		_, err := q.ExecutionStatus(context.Background(), viewer, 61)
		assert.ErrorIs(t, err, queries.ErrViewNotFound)
	})

	t.Run("missing campaign", func(t *testing.T) {
		_, err := q.ExecutionStatus(context.Background(), viewer, 999)
		assert.ErrorIs(t, err, queries.ErrViewNotFound)
	})
}
