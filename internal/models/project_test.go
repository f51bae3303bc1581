package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectDeadlineJSON(t *testing.T) {
	p := Project{
		ID:       3,
		Title:    "Landing page",
		Deadline: time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC),
		Skills:   []string{"Go"},
		Status:   ProjectOpen,
	}

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "2030-06-15", raw["deadline"])
	assert.Equal(t, "Landing page", raw["title"])
	assert.NotContains(t, raw, "client")

	var back Project
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, p.ID, back.ID)
	assert.True(t, p.Deadline.Equal(back.Deadline))
	assert.Equal(t, []string{"Go"}, []string(back.Skills))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2030-01-02", "2030-01-02", false},
		{"2030-01-02T15:04:05+05:30", "2030-01-02", false},
		{"", "0001-01-01", false},
		{"02/01/2030", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got.Format(DateLayout))
	}
}

func TestUserRole(t *testing.T) {
	admin := &User{Email: "Admin@KLU.ac.in"}
	assert.Equal(t, RoleAdmin, admin.Role("admin@klu.ac.in"))
	assert.True(t, admin.IsAdmin)

	student := &User{Email: "s@klu.ac.in", IsFreelancer: true}
	assert.Equal(t, RoleFreelancer, student.Role("admin@klu.ac.in"))
	assert.False(t, student.IsAdmin)

	client := &User{Email: "c@klu.ac.in"}
	assert.Equal(t, RoleClient, client.Role(""))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, ProjectCancelled.Valid())
	assert.False(t, ProjectStatus("archived").Valid())
	assert.True(t, ApplicationRejected.Valid())
	assert.False(t, ApplicationStatus("").Valid())
}
