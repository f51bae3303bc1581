// Package storetest holds the behavioural contract every store.Store backend
// must satisfy. Backends call Run from their own tests.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

// Factory returns a fresh, migrated, empty store.
type Factory func(t *testing.T) store.Store

func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"Users", testUsers},
		{"DuplicateEmail", testDuplicateEmail},
		{"ListUsersFilters", testListUsersFilters},
		{"Projects", testProjects},
		{"ProjectSorting", testProjectSorting},
		{"Applications", testApplications},
		{"TransactionRollback", testTransactionRollback},
		{"DeleteUserCascade", testDeleteUserCascade},
		{"FreelancerApplications", testFreelancerApplications},
		{"ContactMessages", testContactMessages},
		{"NotFound", testNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

func mustUser(t *testing.T, s store.Store, name, email string, freelancer bool) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email, Password: "hash", IsFreelancer: freelancer}
	require.NoError(t, s.CreateUser(context.Background(), u))
	require.NotZero(t, u.ID)
	return u
}

func mustProject(t *testing.T, s store.Store, clientID uint, title string, budget float64, deadline string) *models.Project {
	t.Helper()
	d, err := time.Parse(models.DateLayout, deadline)
	require.NoError(t, err)
	p := &models.Project{
		Title:    title,
		Budget:   budget,
		Deadline: d,
		Category: "Web Development",
		Skills:   []string{"Go", "React"},
		ClientID: clientID,
	}
	require.NoError(t, s.CreateProject(context.Background(), p))
	require.NotZero(t, p.ID)
	return p
}

func mustApplication(t *testing.T, s store.Store, projectID, userID uint) *models.Application {
	t.Helper()
	a := &models.Application{ProjectID: projectID, UserID: userID, CoverLetter: "hire me"}
	require.NoError(t, s.CreateApplication(context.Background(), a))
	require.NotZero(t, a.ID)
	return a
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s, "Ada", "ada@klu.ac.in", false)

	got, err := s.GetUserByEmail(ctx, "ada@klu.ac.in")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.Password)
	assert.False(t, got.IsFreelancer)

	require.NoError(t, s.SetFreelancer(ctx, u.ID, true))
	require.NoError(t, s.UpdateProfile(ctx, u.ID, store.ProfileUpdate{Name: "Ada L.", Bio: "math"}))

	got, err = s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFreelancer)
	assert.Equal(t, "Ada L.", got.Name)
	assert.Equal(t, "math", got.Bio)
}

func testDuplicateEmail(t *testing.T, s store.Store) {
	mustUser(t, s, "Ada", "ada@klu.ac.in", false)
	err := s.CreateUser(context.Background(), &models.User{Name: "Other", Email: "ada@klu.ac.in", Password: "x"})
	assert.True(t, errors.Is(err, store.ErrDuplicate), "got %v", err)
}

func testListUsersFilters(t *testing.T, s store.Store) {
	ctx := context.Background()
	mustUser(t, s, "Admin", "admin@klu.ac.in", false)
	mustUser(t, s, "Student", "student@klu.ac.in", true)
	mustUser(t, s, "Client", "client@klu.ac.in", false)

	all, err := s.ListUsers(ctx, store.UserFilter{ExcludeEmail: "admin@klu.ac.in"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	no := false
	candidates, err := s.ListUsers(ctx, store.UserFilter{ExcludeEmail: "admin@klu.ac.in", Freelancer: &no})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "client@klu.ac.in", candidates[0].Email)
}

func testProjects(t *testing.T, s store.Store) {
	ctx := context.Background()
	client := mustUser(t, s, "Client", "client@klu.ac.in", false)
	p := mustProject(t, s, client.ID, "Landing page", 500, "2030-06-15")
	assert.Equal(t, models.ProjectOpen, p.Status)

	got, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Landing page", got.Title)
	assert.Equal(t, []string{"Go", "React"}, []string(got.Skills))
	assert.Equal(t, "2030-06-15", got.Deadline.Format(models.DateLayout))

	require.NoError(t, s.UpdateProjectStatus(ctx, p.ID, models.ProjectCompleted))
	got, err = s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectCompleted, got.Status)

	open, err := s.ListProjects(ctx, store.ProjectFilter{Status: models.ProjectOpen})
	require.NoError(t, err)
	assert.Empty(t, open)

	mine, err := s.ListProjects(ctx, store.ProjectFilter{ClientID: client.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func testProjectSorting(t *testing.T, s store.Store) {
	ctx := context.Background()
	client := mustUser(t, s, "Client", "client@klu.ac.in", false)
	mustProject(t, s, client.ID, "mid", 200, "2030-02-01")
	mustProject(t, s, client.ID, "cheap", 100, "2030-03-01")
	mustProject(t, s, client.ID, "pricey", 300, "2030-01-01")

	byBudget, err := s.ListProjects(ctx, store.ProjectFilter{SortBy: "budget", Asc: true})
	require.NoError(t, err)
	require.Len(t, byBudget, 3)
	assert.Equal(t, []string{"cheap", "mid", "pricey"}, titles(byBudget))

	byDeadline, err := s.ListProjects(ctx, store.ProjectFilter{SortBy: "deadline"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cheap", "mid", "pricey"}, titles(byDeadline))

	byCategory, err := s.ListProjects(ctx, store.ProjectFilter{Category: "Design"})
	require.NoError(t, err)
	assert.Empty(t, byCategory)
}

func titles(ps []models.Project) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Title)
	}
	return out
}

func testApplications(t *testing.T, s store.Store) {
	ctx := context.Background()
	client := mustUser(t, s, "Client", "client@klu.ac.in", false)
	student := mustUser(t, s, "Student", "student@klu.ac.in", true)
	p1 := mustProject(t, s, client.ID, "One", 100, "2030-01-01")
	p2 := mustProject(t, s, client.ID, "Two", 100, "2030-01-01")
	a1 := mustApplication(t, s, p1.ID, student.ID)
	mustApplication(t, s, p2.ID, student.ID)
	assert.Equal(t, models.ApplicationPending, a1.Status)

	views, err := s.ListApplications(ctx, store.ApplicationFilter{ProjectIDs: []uint{p1.ID}})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "One", views[0].ProjectTitle)
	assert.Equal(t, "Student", views[0].UserName)
	assert.Equal(t, "student@klu.ac.in", views[0].UserEmail)
	assert.Equal(t, "hire me", views[0].CoverLetter)

	require.NoError(t, s.UpdateApplicationStatus(ctx, a1.ID, models.ApplicationRejected))
	got, err := s.GetApplication(ctx, a1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationRejected, got.Status)

	byUser, err := s.ListApplications(ctx, store.ApplicationFilter{UserID: student.ID, Status: models.ApplicationPending})
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, p2.ID, byUser[0].ProjectID)
}

func testTransactionRollback(t *testing.T, s store.Store) {
	ctx := context.Background()
	client := mustUser(t, s, "Client", "client@klu.ac.in", false)
	student := mustUser(t, s, "Student", "student@klu.ac.in", true)
	p := mustProject(t, s, client.ID, "One", 100, "2030-01-01")
	a := mustApplication(t, s, p.ID, student.ID)

	boom := errors.New("boom")
	err := s.Transaction(ctx, func(tx store.Store) error {
		if err := tx.UpdateApplicationStatus(ctx, a.ID, models.ApplicationApproved); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.GetApplication(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, got.Status)

	err = s.Transaction(ctx, func(tx store.Store) error {
		if err := tx.UpdateApplicationStatus(ctx, a.ID, models.ApplicationApproved); err != nil {
			return err
		}
		return tx.UpdateProjectStatus(ctx, p.ID, models.ProjectAssigned)
	})
	require.NoError(t, err)
	gotP, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectAssigned, gotP.Status)
}

func testDeleteUserCascade(t *testing.T, s store.Store) {
	ctx := context.Background()
	client := mustUser(t, s, "Client", "client@klu.ac.in", false)
	student := mustUser(t, s, "Student", "student@klu.ac.in", true)
	other := mustUser(t, s, "Other", "other@klu.ac.in", true)
	p := mustProject(t, s, client.ID, "One", 100, "2030-01-01")
	mustApplication(t, s, p.ID, student.ID)
	a2 := mustApplication(t, s, p.ID, other.ID)

	require.NoError(t, s.DeleteUser(ctx, client.ID))

	users, err := s.ListUsers(ctx, store.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = s.GetProject(ctx, p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetApplication(ctx, a2.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, s.DeleteUser(ctx, client.ID), store.ErrNotFound)
}

func testFreelancerApplications(t *testing.T, s store.Store) {
	ctx := context.Background()
	student := mustUser(t, s, "Student", "student@klu.ac.in", false)
	fa := &models.FreelancerApplication{
		UserID:     student.ID,
		FullName:   "Student",
		Email:      "student@klu.ac.in",
		University: "KLU",
		Major:      "CS",
		Skills:     []string{"Go"},
		Experience: "two internships",
	}
	require.NoError(t, s.CreateFreelancerApplication(ctx, fa))
	assert.Equal(t, models.ApplicationPending, fa.Status)

	pending, err := s.ListFreelancerApplications(ctx, models.ApplicationPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, []string{"Go"}, []string(pending[0].Skills))

	require.NoError(t, s.UpdateFreelancerApplicationStatus(ctx, fa.ID, models.ApplicationApproved))
	got, err := s.GetFreelancerApplication(ctx, fa.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, got.Status)

	all, err := s.ListFreelancerApplications(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func testContactMessages(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.NoError(t, s.CreateContactMessage(ctx, &models.ContactMessage{
		Name: "Visitor", Email: "v@example.com", Subject: "Hi", Message: "Hello there",
	}))
	msgs, err := s.ListContactMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Hello there", msgs[0].Message)
}

func testNotFound(t *testing.T, s store.Store) {
	ctx := context.Background()
	_, err := s.GetUser(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetUserByEmail(ctx, "nobody@klu.ac.in")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.UpdateProjectStatus(ctx, 999, models.ProjectAssigned), store.ErrNotFound)
	assert.ErrorIs(t, s.UpdateApplicationStatus(ctx, 999, models.ApplicationApproved), store.ErrNotFound)
	assert.ErrorIs(t, s.SetFreelancer(ctx, 999, true), store.ErrNotFound)
}
