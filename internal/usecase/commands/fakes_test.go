//go:build unit

package commands_test

import (
	"context"
	"time"

	"universe-api/internal/domain/campaign"
	"universe-api/internal/domain/report"
	"universe-api/internal/domain/universe"
	"universe-api/internal/infra"
	"universe-api/internal/pkg/errs"
	"universe-api/internal/usecase/shared"
)

// fakeStore is an in-memory stand-in for the persistence layer: one store
// backs both the command reads and the write repositories, so a use case
// sees its own transactional writes.
type fakeStore struct {
	users     map[int64]*shared.UserSnapshot
	creds     map[string]*shared.UserCredentials
	resources map[int64]*shared.ResourceSnapshot
	campaigns map[int64]*shared.CampaignSnapshot
	reports   map[int64]*report.Report

	nextID    int64
	readErr   error
	createErr error
	lastLogin map[int64]time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     map[int64]*shared.UserSnapshot{},
		creds:     map[string]*shared.UserCredentials{},
		resources: map[int64]*shared.ResourceSnapshot{},
		campaigns: map[int64]*shared.CampaignSnapshot{},
		reports:   map[int64]*report.Report{},
		nextID:    1000,
		lastLogin: map[int64]time.Time{},
	}
}

func (s *fakeStore) addUser(id int64, active bool) {
	s.users[id] = &shared.UserSnapshot{ID: id, IsActive: active}
}

func (s *fakeStore) addResource(res shared.ResourceSnapshot) {
	copied := res
	s.resources[res.ID] = &copied
}

func (s *fakeStore) addCampaign(c shared.CampaignSnapshot) {
	copied := c
	s.campaigns[c.ID] = &copied
}

// CommandReads

func (s *fakeStore) UserByID(_ context.Context, id int64) (*shared.UserSnapshot, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	u, ok := s.users[id]
	if !ok {
		return nil, infra.NotFoundErr("user not found")
	}
	return u, nil
}

func (s *fakeStore) UserByEmail(_ context.Context, email string) (*shared.UserCredentials, error) {
	c, ok := s.creds[email]
	if !ok {
		return nil, infra.NotFoundErr("user not found")
	}
	return c, nil
}

func (s *fakeStore) ResourceByID(_ context.Context, id int64) (*shared.ResourceSnapshot, error) {
	r, ok := s.resources[id]
	if !ok {
		return nil, infra.NotFoundErr("resource not found")
	}
	return r, nil
}

func (s *fakeStore) ResourceBySlug(_ context.Context, ownerID int64, kind universe.Kind, slug string) (*shared.ResourceSnapshot, error) {
	for _, r := range s.resources {
		if r.OwnerID == ownerID && r.Kind == kind && r.Slug == slug && r.Status != universe.StatusArchived {
			return r, nil
		}
	}
	return nil, infra.NotFoundErr("resource not found")
}

func (s *fakeStore) CountActiveResources(_ context.Context, ownerID int64, kind universe.Kind) (int, error) {
	count := 0
	for _, r := range s.resources {
		if r.OwnerID == ownerID && r.Kind == kind && r.Status != universe.StatusArchived {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) CountActiveChildren(_ context.Context, parentID int64) (int, error) {
	count := 0
	for _, r := range s.resources {
		if r.ParentID != nil && *r.ParentID == parentID && r.Status != universe.StatusArchived {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) CampaignByID(_ context.Context, id int64) (*shared.CampaignSnapshot, error) {
	c, ok := s.campaigns[id]
	if !ok {
		return nil, infra.NotFoundErr("campaign not found")
	}
	return c, nil
}

// fakeUoW commits by keeping the store mutations, and "rolls back" by
// restoring the snapshot taken before fn ran.
type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	backup := u.snapshot()
	if err := fn(ctx, &fakeTx{store: u.store}); err != nil {
		u.restore(backup)
		return err
	}
	return nil
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return u.store
}

func (u *fakeUoW) snapshot() *fakeStore {
	backup := newFakeStore()
	backup.nextID = u.store.nextID
	for k, v := range u.store.resources {
		copied := *v
		backup.resources[k] = &copied
	}
	for k, v := range u.store.campaigns {
		copied := *v
		backup.campaigns[k] = &copied
	}
	for k, v := range u.store.reports {
		copied := *v
		backup.reports[k] = &copied
	}
	return backup
}

func (u *fakeUoW) restore(backup *fakeStore) {
	u.store.nextID = backup.nextID
	u.store.resources = backup.resources
	u.store.campaigns = backup.campaigns
	u.store.reports = backup.reports
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Universe() shared.UniverseRepository { return &fakeUniverseRepo{store: t.store} }
func (t *fakeTx) Campaigns() shared.CampaignRepository {
	return &fakeCampaignRepo{store: t.store}
}
func (t *fakeTx) Reports() shared.ReportRepository { return &fakeReportRepo{store: t.store} }
func (t *fakeTx) Users() shared.UserRepository     { return &fakeUserRepo{store: t.store} }
func (t *fakeTx) Reads() shared.CommandReads       { return t.store }

type fakeUniverseRepo struct {
	store *fakeStore
}

func (r *fakeUniverseRepo) Create(_ context.Context, res *universe.Resource) (int64, error) {
	if r.store.createErr != nil {
		return 0, r.store.createErr
	}
	r.store.nextID++
	id := r.store.nextID
	r.store.resources[id] = snapshotOf(id, res)
	return id, nil
}

func (r *fakeUniverseRepo) Update(_ context.Context, res *universe.Resource) error {
	if _, ok := r.store.resources[res.ID]; !ok {
		return infra.NotFoundErr("resource not found")
	}
	r.store.resources[res.ID] = snapshotOf(res.ID, res)
	return nil
}

func (r *fakeUniverseRepo) SetStatus(_ context.Context, id int64, status universe.Status, now time.Time) error {
	res, ok := r.store.resources[id]
	if !ok {
		return infra.NotFoundErr("resource not found")
	}
	res.Status = status
	res.UpdatedAt = now
	return nil
}

func (r *fakeUniverseRepo) SetVisibility(_ context.Context, id int64, vis universe.Visibility, now time.Time) error {
	res, ok := r.store.resources[id]
	if !ok {
		return infra.NotFoundErr("resource not found")
	}
	res.IsPublic = vis.IsPublic
	res.IsShared = vis.IsShared
	res.ShareToken = vis.ShareToken
	res.UpdatedAt = now
	return nil
}

func snapshotOf(id int64, res *universe.Resource) *shared.ResourceSnapshot {
	return &shared.ResourceSnapshot{
		ID:            id,
		Kind:          res.Kind,
		OwnerID:       res.OwnerID,
		ProjectID:     res.ProjectID,
		Name:          res.Name,
		Slug:          res.Slug,
		Status:        res.Status,
		Type:          res.Type,
		Tags:          res.Tags,
		Metadata:      res.Metadata,
		ParentID:      res.ParentID,
		TemplateID:    res.TemplateID,
		Configuration: res.Configuration,
		Permissions:   res.Permissions,
		CustomFields:  res.CustomFields,
		IsPublic:      res.Visibility.IsPublic,
		IsShared:      res.Visibility.IsShared,
		ShareToken:    res.Visibility.ShareToken,
		UpdatedAt:     res.UpdatedAt,
	}
}

type fakeCampaignRepo struct {
	store *fakeStore
}

func (r *fakeCampaignRepo) SaveLifecycle(_ context.Context, c *campaign.Campaign) error {
	snap, ok := r.store.campaigns[c.ID()]
	if !ok {
		return infra.NotFoundErr("campaign not found")
	}
	snap.Status = c.Status()
	snap.ScheduledAt = c.ScheduledAt()
	snap.SentAt = c.SentAt()
	snap.UpdatedAt = c.UpdatedAt()
	return nil
}

type fakeReportRepo struct {
	store *fakeStore
}

func (r *fakeReportRepo) Create(_ context.Context, rep *report.Report) (int64, error) {
	r.store.nextID++
	id := r.store.nextID
	copied := *rep
	copied.ID = id
	r.store.reports[id] = &copied
	return id, nil
}

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, userID int64, now time.Time) error {
	r.store.lastLogin[userID] = now
	return nil
}

// fakeBus records published events; failErr makes every publish fail.
type fakeBus struct {
	events  []shared.DomainEvent
	failErr error
}

func (b *fakeBus) Publish(_ context.Context, event shared.DomainEvent) error {
	if b.failErr != nil {
		return b.failErr
	}
	b.events = append(b.events, event)
	return nil
}

// fakeConfigurator records the steps run and fails the ones named in
// failSteps.
type fakeConfigurator struct {
	ran       []string
	failSteps map[string]bool
}

func (c *fakeConfigurator) step(name string) error {
	c.ran = append(c.ran, name)
	if c.failSteps[name] {
		return errs.New(name + " failed")
	}
	return nil
}

func (c *fakeConfigurator) ApplyInitialSettings(_ context.Context, _ *universe.Resource) error {
	return c.step("initial_settings")
}

func (c *fakeConfigurator) SetupDefaultPermissions(_ context.Context, _ *universe.Resource) error {
	return c.step("default_permissions")
}

func (c *fakeConfigurator) SetupAnalytics(_ context.Context, _ *universe.Resource) error {
	return c.step("analytics")
}

func (c *fakeConfigurator) SetupNotifications(_ context.Context, _ *universe.Resource) error {
	return c.step("notifications")
}

func (c *fakeConfigurator) SetupIntegrations(_ context.Context, _ *universe.Resource) error {
	return c.step("integrations")
}

func (c *fakeConfigurator) SetupWebhooks(_ context.Context, _ *universe.Resource) error {
	return c.step("webhooks")
}

func (c *fakeConfigurator) ApplyTemplate(_ context.Context, _ *universe.Resource, _ int64) error {
	return c.step("apply_template")
}
