package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/db"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store/gormstore"
)

const adminEmail = "adminkareskillhive@klu.ac.in"

type countingInvalidator struct{ n int }

func (c *countingInvalidator) InvalidateProjects(context.Context) { c.n++ }

func newService(t *testing.T) (*Service, store.Store, *countingInvalidator) {
	t.Helper()
	gdb, err := db.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	s := gormstore.New(gdb)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })

	inv := &countingInvalidator{}
	return New(s, adminEmail, inv), s, inv
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	u, err := svc.Signup(ctx, SignupInput{
		FullName:    "  Asha  ",
		Email:       " Asha@KLU.ac.in ",
		Password:    "hunter22",
		AccountType: "freelancer",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha", u.Name)
	assert.Equal(t, "asha@klu.ac.in", u.Email)
	assert.True(t, u.IsFreelancer)
	assert.False(t, u.IsAdmin)
	assert.NotEqual(t, "hunter22", u.Password)

	got, err := svc.Login(ctx, "ASHA@klu.ac.in", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, models.RoleFreelancer, svc.Role(got))
}

func TestSignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	_, err := svc.Signup(ctx, SignupInput{FullName: "A", Email: "a@klu.ac.in", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, SignupInput{FullName: "B", Email: "A@klu.ac.in", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupRefusesAdminEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	_, err := svc.Signup(ctx, SignupInput{FullName: "Mallory", Email: " AdminKareSkillhive@klu.ac.in", Password: "secret1"})
	assert.ErrorIs(t, err, ErrReservedEmail)

	_, err = svc.Login(ctx, adminEmail, "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	admin, err := svc.CreateAdmin(ctx, "Admin", "rootroot")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	_, err := svc.Signup(ctx, SignupInput{FullName: "A", Email: "a@klu.ac.in", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@klu.ac.in", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@klu.ac.in", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminFlagIsDerived(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	admin, err := svc.CreateAdmin(ctx, "Admin", "rootroot")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	got, err := svc.Login(ctx, adminEmail, "rootroot")
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)
	assert.Equal(t, models.RoleAdmin, svc.Role(got))

	_, err = svc.CreateAdmin(ctx, "Admin", "again")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestListingsExcludeAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	_, err := svc.CreateAdmin(ctx, "Admin", "rootroot")
	require.NoError(t, err)
	_, err = svc.Signup(ctx, SignupInput{FullName: "Client", Email: "c@klu.ac.in", Password: "secret1"})
	require.NoError(t, err)
	student, err := svc.Signup(ctx, SignupInput{FullName: "Student", Email: "s@klu.ac.in", Password: "secret1"})
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.SetFreelancer(ctx, student.ID, true)
	require.NoError(t, err)

	candidates, err := svc.FreelancerCandidates(ctx)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "c@klu.ac.in", candidates[0].Email)
}

func TestProfileAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _, inv := newService(t)

	u, err := svc.Signup(ctx, SignupInput{FullName: "A", Email: "a@klu.ac.in", Password: "secret1"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, u.ID, store.ProfileUpdate{Name: " Anita ", Bio: "designer"})
	require.NoError(t, err)
	assert.Equal(t, "Anita", updated.Name)
	assert.Equal(t, "designer", updated.Bio)

	require.NoError(t, svc.Delete(ctx, u.ID))
	assert.Equal(t, 1, inv.n)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.ErrorIs(t, svc.Delete(ctx, u.ID), store.ErrNotFound)
	_, err = svc.SetFreelancer(ctx, u.ID, true)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
