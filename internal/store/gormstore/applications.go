package gormstore

import (
	"context"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

func (s *Store) CreateApplication(ctx context.Context, a *models.Application) error {
	if a.Status == "" {
		a.Status = models.ApplicationPending
	}
	return translate(s.conn(ctx).Omit("Project", "User").Create(a).Error)
}

func (s *Store) GetApplication(ctx context.Context, id uint) (*models.Application, error) {
	var a models.Application
	if err := s.conn(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *Store) ListApplications(ctx context.Context, f store.ApplicationFilter) ([]models.ApplicationView, error) {
	q := s.conn(ctx).
		Table("applications AS a").
		Select("a.*, p.title AS project_title, u.name AS user_name, u.email AS user_email").
		Joins("JOIN projects p ON a.project_id = p.id").
		Joins("JOIN users u ON a.user_id = u.id")

	if len(f.ProjectIDs) > 0 {
		q = q.Where("a.project_id IN ?", f.ProjectIDs)
	}
	if f.UserID != 0 {
		q = q.Where("a.user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("a.status = ?", f.Status)
	}

	var views []models.ApplicationView
	if err := q.Order("a.created_at DESC").Order("a.id DESC").Scan(&views).Error; err != nil {
		return nil, translate(err)
	}
	return views, nil
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	return affected(s.conn(ctx).Model(&models.Application{}).Where("id = ?", id).Update("status", status))
}
