// Package account handles signup, login and the admin's user management.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/utils"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrReservedEmail      = errors.New("email is reserved for the administrator")
)

type ProjectInvalidator interface {
	InvalidateProjects(ctx context.Context)
}

type Service struct {
	store      store.Store
	adminEmail string
	projects   ProjectInvalidator
}

func New(s store.Store, adminEmail string, projects ProjectInvalidator) *Service {
	return &Service{
		store:      s,
		adminEmail: normalizeEmail(adminEmail),
		projects:   projects,
	}
}

func (s *Service) AdminEmail() string { return s.adminEmail }

type SignupInput struct {
	FullName    string
	Email       string
	Password    string
	AccountType string
}

// Signup registers a client or freelancer. The admin address can only be
// registered through CreateAdmin.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if s.adminEmail != "" && normalizeEmail(in.Email) == s.adminEmail {
		return nil, ErrReservedEmail
	}
	return s.create(ctx, in)
}

func (s *Service) create(ctx context.Context, in SignupInput) (*models.User, error) {
	email := normalizeEmail(in.Email)

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("lookup %s: %w", email, err)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		Name:         strings.TrimSpace(in.FullName),
		Email:        email,
		Password:     hash,
		IsFreelancer: strings.EqualFold(strings.TrimSpace(in.AccountType), "freelancer"),
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		// lost a race with a concurrent signup
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	u.ApplyAdmin(s.adminEmail)
	return u, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.store.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !utils.CheckPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	u.ApplyAdmin(s.adminEmail)
	return u, nil
}

// Role is the role to embed in u's session token.
func (s *Service) Role(u *models.User) models.Role {
	return u.Role(s.adminEmail)
}

func (s *Service) Get(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	u.ApplyAdmin(s.adminEmail)
	return u, nil
}

// List returns every user except the admin.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.list(ctx, store.UserFilter{ExcludeEmail: s.adminEmail})
}

// FreelancerCandidates returns non-admin users not yet flagged as freelancers.
func (s *Service) FreelancerCandidates(ctx context.Context) ([]models.User, error) {
	no := false
	return s.list(ctx, store.UserFilter{ExcludeEmail: s.adminEmail, Freelancer: &no})
}

func (s *Service) list(ctx context.Context, f store.UserFilter) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		u.ApplyAdmin(s.adminEmail)
		out = append(out, u)
	}
	return out, nil
}

func (s *Service) SetFreelancer(ctx context.Context, id uint, isFreelancer bool) (*models.User, error) {
	if err := s.store.SetFreelancer(ctx, id, isFreelancer); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, id uint, p store.ProfileUpdate) (*models.User, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := s.store.UpdateProfile(ctx, id, p); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the user with their projects and applications.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	if s.projects != nil {
		s.projects.InvalidateProjects(ctx)
	}
	return nil
}

// CreateAdmin registers the account for the configured admin email.
func (s *Service) CreateAdmin(ctx context.Context, name, password string) (*models.User, error) {
	if s.adminEmail == "" {
		return nil, errors.New("admin email is not configured")
	}
	return s.create(ctx, SignupInput{FullName: name, Email: s.adminEmail, Password: password})
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
