// Package store defines the persistence contract shared by the relational
// (GORM) backend and the Supabase backend.
package store

import (
	"context"
	"errors"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
)

var (
	ErrNotFound  = errors.New("store: record not found")
	ErrDuplicate = errors.New("store: duplicate record")
)

// UserFilter narrows ListUsers. Zero values mean "no filter".
type UserFilter struct {
	ExcludeEmail string
	Freelancer   *bool
}

// ProjectFilter narrows and orders ListProjects.
type ProjectFilter struct {
	Status   models.ProjectStatus
	Category string
	ClientID uint
	IDs      []uint
	// SortBy is one of created_at, budget, deadline.
	SortBy string
	Asc    bool
}

type ApplicationFilter struct {
	ProjectIDs []uint
	UserID     uint
	Status     models.ApplicationStatus
}

type ProfileUpdate struct {
	Name string
	Bio  string
}

type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, f UserFilter) ([]models.User, error)
	SetFreelancer(ctx context.Context, id uint, isFreelancer bool) error
	UpdateProfile(ctx context.Context, id uint, p ProfileUpdate) error
	// DeleteUser removes the user together with its projects and applications.
	DeleteUser(ctx context.Context, id uint) error

	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id uint) (*models.Project, error)
	ListProjects(ctx context.Context, f ProjectFilter) ([]models.Project, error)
	UpdateProjectStatus(ctx context.Context, id uint, status models.ProjectStatus) error

	CreateApplication(ctx context.Context, a *models.Application) error
	GetApplication(ctx context.Context, id uint) (*models.Application, error)
	ListApplications(ctx context.Context, f ApplicationFilter) ([]models.ApplicationView, error)
	UpdateApplicationStatus(ctx context.Context, id uint, status models.ApplicationStatus) error

	CreateFreelancerApplication(ctx context.Context, fa *models.FreelancerApplication) error
	GetFreelancerApplication(ctx context.Context, id uint) (*models.FreelancerApplication, error)
	ListFreelancerApplications(ctx context.Context, status models.ApplicationStatus) ([]models.FreelancerApplication, error)
	UpdateFreelancerApplicationStatus(ctx context.Context, id uint, status models.ApplicationStatus) error

	CreateContactMessage(ctx context.Context, m *models.ContactMessage) error
	ListContactMessages(ctx context.Context) ([]models.ContactMessage, error)

	// Transaction runs fn against a store bound to a single transaction.
	// fn returning an error rolls every write back.
	Transaction(ctx context.Context, fn func(tx Store) error) error

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// SortColumn maps a requested sort key onto a whitelisted column name.
func SortColumn(key string) string {
	switch key {
	case "budget", "deadline":
		return key
	default:
		return "created_at"
	}
}
