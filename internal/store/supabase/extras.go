package supabase

import (
	"context"
	"time"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
)

const freelancerApplicationColumns = `id, user_id, full_name, email, university, major, skills, experience,
	portfolio_url, github_url, resume_url, status, created_at, updated_at`

func (s *Store) CreateFreelancerApplication(ctx context.Context, fa *models.FreelancerApplication) error {
	if fa.Status == "" {
		fa.Status = models.ApplicationPending
	}
	now := time.Now().UTC()
	id, err := s.insert(ctx,
		`INSERT INTO freelancer_applications
		 (user_id, full_name, email, university, major, skills, experience, portfolio_url, github_url, resume_url, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fa.UserID, fa.FullName, fa.Email, fa.University, fa.Major, fa.Skills, fa.Experience,
		fa.PortfolioURL, fa.GithubURL, fa.ResumeURL, fa.Status, now, now)
	if err != nil {
		return err
	}
	fa.ID, fa.CreatedAt, fa.UpdatedAt = id, now, now
	return nil
}

func (s *Store) GetFreelancerApplication(ctx context.Context, id uint) (*models.FreelancerApplication, error) {
	var fa models.FreelancerApplication
	err := s.get(ctx, &fa, `SELECT `+freelancerApplicationColumns+` FROM freelancer_applications WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &fa, nil
}

func (s *Store) ListFreelancerApplications(ctx context.Context, status models.ApplicationStatus) ([]models.FreelancerApplication, error) {
	query := `SELECT ` + freelancerApplicationColumns + ` FROM freelancer_applications`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}

	var out []models.FreelancerApplication
	if err := s.selectAll(ctx, &out, query+` ORDER BY created_at DESC, id DESC`, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) UpdateFreelancerApplicationStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	return s.exec(ctx, `UPDATE freelancer_applications SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id)
}

func (s *Store) CreateContactMessage(ctx context.Context, m *models.ContactMessage) error {
	now := time.Now().UTC()
	id, err := s.insert(ctx,
		`INSERT INTO contact_messages (name, email, subject, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.Name, m.Email, m.Subject, m.Message, now)
	if err != nil {
		return err
	}
	m.ID, m.CreatedAt = id, now
	return nil
}

func (s *Store) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	var out []models.ContactMessage
	err := s.selectAll(ctx, &out,
		`SELECT id, name, email, subject, message, created_at FROM contact_messages ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return out, nil
}
