package gormstore

import (
	"context"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
)

func (s *Store) CreateFreelancerApplication(ctx context.Context, fa *models.FreelancerApplication) error {
	if fa.Status == "" {
		fa.Status = models.ApplicationPending
	}
	return translate(s.conn(ctx).Create(fa).Error)
}

func (s *Store) GetFreelancerApplication(ctx context.Context, id uint) (*models.FreelancerApplication, error) {
	var fa models.FreelancerApplication
	if err := s.conn(ctx).First(&fa, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &fa, nil
}

func (s *Store) ListFreelancerApplications(ctx context.Context, status models.ApplicationStatus) ([]models.FreelancerApplication, error) {
	q := s.conn(ctx).Model(&models.FreelancerApplication{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []models.FreelancerApplication
	if err := q.Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (s *Store) UpdateFreelancerApplicationStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	return affected(s.conn(ctx).Model(&models.FreelancerApplication{}).Where("id = ?", id).Update("status", status))
}

func (s *Store) CreateContactMessage(ctx context.Context, m *models.ContactMessage) error {
	return translate(s.conn(ctx).Create(m).Error)
}

func (s *Store) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	var out []models.ContactMessage
	if err := s.conn(ctx).Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}
