package onboarding

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/db"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/storage"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store/gormstore"
)

type notes struct{ types []string }

func (n *notes) SendToUser(_ uint, data interface{}) {
	n.types = append(n.types, data.(realtime.Message).Type)
}

func setup(t *testing.T) (*Service, store.Store, *models.User, string, *notes) {
	t.Helper()
	gdb, err := db.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	s := gormstore.New(gdb)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })

	u := &models.User{Name: "Student", Email: "student@klu.ac.in", Password: "x"}
	require.NoError(t, s.CreateUser(context.Background(), u))

	root := t.TempDir()
	n := &notes{}
	return New(s, storage.NewLocal(root, "http://api.test"), nil, n), s, u, root, n
}

func TestSubmitWithResume(t *testing.T) {
	svc, _, u, root, _ := setup(t)

	fa, err := svc.Submit(context.Background(), SubmitInput{
		UserID:     u.ID,
		FullName:   "Student",
		Email:      "Student@KLU.ac.in",
		University: "KLU",
		Major:      "CSE",
		Skills:     []string{"Go, React", "go", ""},
		Resume: &Resume{
			Filename: "CV.PDF",
			Size:     4,
			Content:  strings.NewReader("%PDF"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationPending, fa.Status)
	assert.Equal(t, "student@klu.ac.in", fa.Email)
	assert.Equal(t, []string{"Go", "React"}, []string(fa.Skills))
	require.True(t, strings.HasPrefix(fa.ResumeURL, "http://api.test/uploads/resumes/"), fa.ResumeURL)
	assert.True(t, strings.HasSuffix(fa.ResumeURL, ".pdf"))

	rel := strings.TrimPrefix(fa.ResumeURL, "http://api.test/uploads/")
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
}

func TestSubmitRejectsBadResume(t *testing.T) {
	svc, _, u, _, _ := setup(t)

	cases := map[string]*Resume{
		"extension": {Filename: "cv.exe", Size: 10, Content: strings.NewReader("x")},
		"too big":   {Filename: "cv.pdf", Size: MaxResumeSize + 1, Content: strings.NewReader("x")},
		"empty":     {Filename: "cv.docx", Size: 0, Content: strings.NewReader("")},
	}
	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), SubmitInput{UserID: u.ID, Resume: r})
			assert.ErrorIs(t, err, ErrInvalidResume)
		})
	}

	_, err := svc.Submit(context.Background(), SubmitInput{UserID: 999})
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestReviewApprovalFlagsFreelancer(t *testing.T) {
	ctx := context.Background()
	svc, s, u, _, n := setup(t)

	fa, err := svc.Submit(ctx, SubmitInput{UserID: u.ID, FullName: "Student"})
	require.NoError(t, err)

	pending, err := svc.List(ctx, models.ApplicationPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	reviewed, err := svc.Review(ctx, fa.ID, models.ApplicationApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, reviewed.Status)

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFreelancer)
	assert.Equal(t, []string{MsgReviewed}, n.types)

	pending, err = svc.List(ctx, models.ApplicationPending)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestReviewRejection(t *testing.T) {
	ctx := context.Background()
	svc, s, u, _, _ := setup(t)

	fa, err := svc.Submit(ctx, SubmitInput{UserID: u.ID})
	require.NoError(t, err)

	_, err = svc.Review(ctx, fa.ID, models.ApplicationRejected)
	require.NoError(t, err)

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsFreelancer)

	_, err = svc.Review(ctx, fa.ID, "later")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = svc.Review(ctx, 999, models.ApplicationApproved)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.List(ctx, "bogus")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
