package supabase

import (
	"context"
	"time"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

func (s *Store) CreateApplication(ctx context.Context, a *models.Application) error {
	if a.Status == "" {
		a.Status = models.ApplicationPending
	}
	now := time.Now().UTC()
	id, err := s.insert(ctx,
		`INSERT INTO applications (project_id, user_id, cover_letter, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ProjectID, a.UserID, a.CoverLetter, a.Status, now, now)
	if err != nil {
		return err
	}
	a.ID, a.CreatedAt, a.UpdatedAt = id, now, now
	return nil
}

func (s *Store) GetApplication(ctx context.Context, id uint) (*models.Application, error) {
	var a models.Application
	err := s.get(ctx, &a,
		`SELECT id, project_id, user_id, cover_letter, status, created_at, updated_at FROM applications WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) ListApplications(ctx context.Context, f store.ApplicationFilter) ([]models.ApplicationView, error) {
	query := `SELECT a.id, a.project_id, a.user_id, a.cover_letter, a.status, a.created_at, a.updated_at,
		p.title AS project_title, pr.full_name AS user_name, pr.email AS user_email
		FROM applications a
		JOIN projects p ON a.project_id = p.id
		JOIN profiles pr ON a.user_id = pr.id
		WHERE 1=1`
	var args []interface{}
	if len(f.ProjectIDs) > 0 {
		query += ` AND a.project_id IN (?)`
		args = append(args, f.ProjectIDs)
	}
	if f.UserID != 0 {
		query += ` AND a.user_id = ?`
		args = append(args, f.UserID)
	}
	if f.Status != "" {
		query += ` AND a.status = ?`
		args = append(args, f.Status)
	}

	var views []models.ApplicationView
	if err := s.selectAll(ctx, &views, query+` ORDER BY a.created_at DESC, a.id DESC`, args...); err != nil {
		return nil, err
	}
	return views, nil
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	return s.exec(ctx, `UPDATE applications SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id)
}
