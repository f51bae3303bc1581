package lifecycle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/db"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/events"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store/gormstore"
)

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	fail   bool
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	if p.fail {
		return errors.New("broker down")
	}
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type sent struct {
	userID uint
	typ    string
}

type recordingNotifier struct {
	sent      []sent
	broadcast []string
}

func (n *recordingNotifier) SendToUser(userID uint, data interface{}) {
	n.sent = append(n.sent, sent{userID, data.(realtime.Message).Type})
}

func (n *recordingNotifier) BroadcastJSON(v interface{}) {
	n.broadcast = append(n.broadcast, v.(realtime.Message).Type)
}

// memCache keeps only the current generation's listings, like the Redis cache.
type memCache struct {
	projects    map[string][]models.Project
	gen         int64
	invalidated int
}

func (c *memCache) GetProjects(_ context.Context, k string) ([]models.Project, int64, bool) {
	p, ok := c.projects[k]
	return p, c.gen, ok
}

func (c *memCache) SetProjects(_ context.Context, k string, gen int64, p []models.Project) {
	if gen == c.gen {
		c.projects[k] = p
	}
}

func (c *memCache) InvalidateProjects(context.Context) {
	c.projects = map[string][]models.Project{}
	c.gen++
	c.invalidated++
}

type fixture struct {
	svc      *Service
	store    store.Store
	pub      *recordingPublisher
	notifier *recordingNotifier
	cache    *memCache
	client   *models.User
	student  *models.User
	project  *models.Project
}

func newStore(t *testing.T) store.Store {
	t.Helper()
	gdb, err := db.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	s := gormstore.New(gdb)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newFixture(t *testing.T, s store.Store) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		store:    s,
		pub:      &recordingPublisher{},
		notifier: &recordingNotifier{},
		cache:    &memCache{projects: map[string][]models.Project{}},
		client:   &models.User{Name: "Client", Email: "client@klu.ac.in", Password: "x"},
		student:  &models.User{Name: "Student", Email: "student@klu.ac.in", Password: "x", IsFreelancer: true},
	}
	require.NoError(t, s.CreateUser(ctx, f.client))
	require.NoError(t, s.CreateUser(ctx, f.student))

	f.svc = New(s, f.pub, f.notifier, f.cache)
	f.project = &models.Project{
		Title:    "Portfolio site",
		Budget:   250,
		Deadline: time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC),
		ClientID: f.client.ID,
	}
	require.NoError(t, f.svc.CreateProject(ctx, f.project))
	return f
}

func TestApproveAssignsProject(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newStore(t))

	app, err := f.svc.CreateApplication(ctx, f.project.ID, f.student.ID, "I can do it")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, app.Status)

	updated, err := f.svc.UpdateApplicationStatus(ctx, app.ID, models.ApplicationApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, updated.Status)

	gotApp, err := f.store.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, gotApp.Status)

	gotProject, err := f.store.GetProject(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectAssigned, gotProject.Status)

	assert.Equal(t, []string{
		events.TopicProjectCreated,
		events.TopicApplicationCreated,
		events.TopicApplicationStatusChanged,
		events.TopicProjectStatusChanged,
	}, f.pub.topics)
	assert.Contains(t, f.notifier.sent, sent{f.student.ID, MsgApplicationStatus})
	assert.Contains(t, f.notifier.sent, sent{f.client.ID, MsgProjectStatus})
	assert.Contains(t, f.notifier.sent, sent{f.client.ID, MsgNewApplication})
}

func TestRejectLeavesProjectOpen(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newStore(t))

	app, err := f.svc.CreateApplication(ctx, f.project.ID, f.student.ID, "")
	require.NoError(t, err)

	_, err = f.svc.UpdateApplicationStatus(ctx, app.ID, models.ApplicationRejected)
	require.NoError(t, err)

	p, err := f.store.GetProject(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectOpen, p.Status)
}

func TestApprovalIsNotExclusive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newStore(t))

	other := &models.User{Name: "Other", Email: "other@klu.ac.in", Password: "x"}
	require.NoError(t, f.store.CreateUser(ctx, other))

	a1, err := f.svc.CreateApplication(ctx, f.project.ID, f.student.ID, "")
	require.NoError(t, err)
	a2, err := f.svc.CreateApplication(ctx, f.project.ID, other.ID, "")
	require.NoError(t, err)

	_, err = f.svc.UpdateApplicationStatus(ctx, a1.ID, models.ApplicationApproved)
	require.NoError(t, err)
	_, err = f.svc.UpdateApplicationStatus(ctx, a2.ID, models.ApplicationApproved)
	require.NoError(t, err)

	approved, err := f.store.ListApplications(ctx, store.ApplicationFilter{
		ProjectIDs: []uint{f.project.ID},
		Status:     models.ApplicationApproved,
	})
	require.NoError(t, err)
	assert.Len(t, approved, 2)
}

// failingProjects makes every project status write fail, inside transactions too.
type failingProjects struct {
	store.Store
}

var errProjectWrite = errors.New("project write failed")

func (f failingProjects) UpdateProjectStatus(context.Context, uint, models.ProjectStatus) error {
	return errProjectWrite
}

func (f failingProjects) Transaction(ctx context.Context, fn func(tx store.Store) error) error {
	return f.Store.Transaction(ctx, func(tx store.Store) error {
		return fn(failingProjects{tx})
	})
}

func TestFailedAssignmentRollsBackApproval(t *testing.T) {
	ctx := context.Background()
	base := newStore(t)
	f := newFixture(t, base)

	app, err := f.svc.CreateApplication(ctx, f.project.ID, f.student.ID, "")
	require.NoError(t, err)

	svc := New(failingProjects{base}, f.pub, f.notifier, f.cache)
	_, err = svc.UpdateApplicationStatus(ctx, app.ID, models.ApplicationApproved)
	assert.ErrorIs(t, err, errProjectWrite)

	got, err := base.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, got.Status)
}

func TestStatusValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newStore(t))

	_, err := f.svc.UpdateApplicationStatus(ctx, 1, "maybe")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.svc.UpdateProjectStatus(ctx, f.project.ID, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.svc.UpdateApplicationStatus(ctx, 999, models.ApplicationApproved)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = f.svc.UpdateProjectStatus(ctx, 999, models.ProjectCompleted)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateApplicationChecksReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newStore(t))

	_, err := f.svc.CreateApplication(ctx, 999, f.student.ID, "")
	assert.ErrorIs(t, err, ErrUnknownProject)

	_, err = f.svc.CreateApplication(ctx, f.project.ID, 999, "")
	assert.ErrorIs(t, err, ErrUnknownUser)

	err = f.svc.CreateProject(ctx, &models.Project{Title: "orphan", ClientID: 999})
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestProjectStatusAnyOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newStore(t))

	for _, st := range []models.ProjectStatus{
		models.ProjectCompleted, models.ProjectOpen, models.ProjectCancelled, models.ProjectAssigned,
	} {
		p, err := f.svc.UpdateProjectStatus(ctx, f.project.ID, st)
		require.NoError(t, err)
		assert.Equal(t, st, p.Status)
	}
}

func TestPublisherFailureDoesNotFailRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newStore(t))
	f.pub.fail = true

	p, err := f.svc.UpdateProjectStatus(ctx, f.project.ID, models.ProjectCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectCompleted, p.Status)
}

func TestOpenListingIsCached(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newStore(t))
	open := store.ProjectFilter{Status: models.ProjectOpen}

	first, err := f.svc.ListProjects(ctx, open)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Contains(t, f.cache.projects, openListing)

	// a stale entry is served until a status change invalidates it
	f.cache.projects[openListing] = []models.Project{}
	cached, err := f.svc.ListProjects(ctx, open)
	require.NoError(t, err)
	assert.Empty(t, cached)

	before := f.cache.invalidated
	_, err = f.svc.UpdateProjectStatus(ctx, f.project.ID, models.ProjectCancelled)
	require.NoError(t, err)
	assert.Equal(t, before+1, f.cache.invalidated)

	fresh, err := f.svc.ListProjects(ctx, open)
	require.NoError(t, err)
	assert.Empty(t, fresh)

	byBudget, err := f.svc.ListProjects(ctx, store.ProjectFilter{SortBy: "budget"})
	require.NoError(t, err)
	assert.Len(t, byBudget, 1)
}

// invalidatingStore commits a concurrent status change between the listing
// read and the cache fill.
type invalidatingStore struct {
	store.Store
	cache *memCache
}

func (s invalidatingStore) ListProjects(ctx context.Context, f store.ProjectFilter) ([]models.Project, error) {
	out, err := s.Store.ListProjects(ctx, f)
	s.cache.InvalidateProjects(ctx)
	return out, err
}

func TestListingReadBeforeInvalidationIsNotCached(t *testing.T) {
	ctx := context.Background()
	base := newStore(t)
	f := newFixture(t, base)
	open := store.ProjectFilter{Status: models.ProjectOpen}

	svc := New(invalidatingStore{base, f.cache}, f.pub, f.notifier, f.cache)
	listed, err := svc.ListProjects(ctx, open)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	_, _, ok := f.cache.GetProjects(ctx, openListing)
	assert.False(t, ok)
}

func TestCreateProjectBroadcasts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newStore(t))

	require.NoError(t, f.svc.CreateProject(ctx, &models.Project{Title: "API", ClientID: f.client.ID}))
	assert.Equal(t, []string{MsgProjectCreated, MsgProjectCreated}, f.notifier.broadcast)

	require.NoError(t, f.svc.CreateProject(ctx, &models.Project{
		Title: "Draft", ClientID: f.client.ID, Status: models.ProjectCancelled,
	}))
	assert.Len(t, f.notifier.broadcast, 2)
}

func TestFreelancerDashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newStore(t))

	second := &models.Project{Title: "API", Budget: 100, ClientID: f.client.ID}
	third := &models.Project{Title: "Logo", Budget: 40, ClientID: f.client.ID}
	require.NoError(t, f.svc.CreateProject(ctx, second))
	require.NoError(t, f.svc.CreateProject(ctx, third))

	a1, err := f.svc.CreateApplication(ctx, f.project.ID, f.student.ID, "")
	require.NoError(t, err)
	a2, err := f.svc.CreateApplication(ctx, second.ID, f.student.ID, "")
	require.NoError(t, err)
	a3, err := f.svc.CreateApplication(ctx, third.ID, f.student.ID, "")
	require.NoError(t, err)

	_, err = f.svc.UpdateApplicationStatus(ctx, a1.ID, models.ApplicationApproved)
	require.NoError(t, err)
	_, err = f.svc.UpdateApplicationStatus(ctx, a2.ID, models.ApplicationApproved)
	require.NoError(t, err)
	_, err = f.svc.UpdateProjectStatus(ctx, second.ID, models.ProjectCompleted)
	require.NoError(t, err)
	_, err = f.svc.UpdateApplicationStatus(ctx, a3.ID, models.ApplicationRejected)
	require.NoError(t, err)

	d, err := f.svc.FreelancerDashboard(ctx, f.student.ID)
	require.NoError(t, err)

	assert.Equal(t, ApplicationCounts{Total: 3, Approved: 2, Rejected: 1}, d.Applications)
	assert.Len(t, d.ActiveProjects, 2)
	assert.Equal(t, Earnings{Total: 350, Pending: 250, Completed: 100}, d.Earnings)
	assert.Equal(t, 1, d.CompletedProjects)
	assert.Len(t, d.RecentApplications, 3)

	_, err = f.svc.FreelancerDashboard(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestClientDashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newStore(t))

	done := &models.Project{Title: "API", Budget: 100, ClientID: f.client.ID}
	dropped := &models.Project{Title: "Logo", Budget: 40, ClientID: f.client.ID}
	require.NoError(t, f.svc.CreateProject(ctx, done))
	require.NoError(t, f.svc.CreateProject(ctx, dropped))

	other := &models.User{Name: "Other", Email: "other@klu.ac.in", Password: "x"}
	require.NoError(t, f.store.CreateUser(ctx, other))
	foreign := &models.Project{Title: "Not mine", Budget: 999, ClientID: other.ID}
	require.NoError(t, f.svc.CreateProject(ctx, foreign))

	a, err := f.svc.CreateApplication(ctx, f.project.ID, f.student.ID, "")
	require.NoError(t, err)
	_, err = f.svc.CreateApplication(ctx, done.ID, f.student.ID, "")
	require.NoError(t, err)
	_, err = f.svc.CreateApplication(ctx, foreign.ID, f.student.ID, "")
	require.NoError(t, err)

	_, err = f.svc.UpdateApplicationStatus(ctx, a.ID, models.ApplicationApproved)
	require.NoError(t, err)
	_, err = f.svc.UpdateProjectStatus(ctx, done.ID, models.ProjectCompleted)
	require.NoError(t, err)
	_, err = f.svc.UpdateProjectStatus(ctx, dropped.ID, models.ProjectCancelled)
	require.NoError(t, err)

	d, err := f.svc.ClientDashboard(ctx, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, d.TotalProjects)
	assert.Equal(t, 1, d.ActiveProjects)
	assert.Equal(t, 1, d.CompletedProjects)
	assert.Equal(t, 2, d.TotalApplications)
	assert.Equal(t, float64(100), d.TotalSpent)
	assert.Len(t, d.Projects, 3)
	assert.Len(t, d.RecentApplications, 2)

	empty, err := f.svc.ClientDashboard(ctx, f.student.ID)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalProjects)
	assert.Empty(t, empty.Projects)

	_, err = f.svc.ClientDashboard(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
