package gormstore

import (
	"context"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	if p.Status == "" {
		p.Status = models.ProjectOpen
	}
	return translate(s.conn(ctx).Create(p).Error)
}

func (s *Store) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	var p models.Project
	if err := s.conn(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Store) ListProjects(ctx context.Context, f store.ProjectFilter) ([]models.Project, error) {
	q := s.conn(ctx).Model(&models.Project{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if len(f.IDs) > 0 {
		q = q.Where("id IN ?", f.IDs)
	}

	dir := " DESC"
	if f.Asc {
		dir = " ASC"
	}
	q = q.Order(store.SortColumn(f.SortBy) + dir).Order("id" + dir)

	var projects []models.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, translate(err)
	}
	return projects, nil
}

func (s *Store) UpdateProjectStatus(ctx context.Context, id uint, status models.ProjectStatus) error {
	return affected(s.conn(ctx).Model(&models.Project{}).Where("id = ?", id).Update("status", status))
}
