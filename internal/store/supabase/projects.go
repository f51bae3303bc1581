package supabase

import (
	"context"
	"time"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

const projectColumns = `id, title, description, budget, deadline, category, skills, client_id, status, created_at, updated_at`

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	if p.Status == "" {
		p.Status = models.ProjectOpen
	}
	now := time.Now().UTC()
	id, err := s.insert(ctx,
		`INSERT INTO projects (title, description, budget, deadline, category, skills, client_id, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.Budget, p.Deadline, p.Category, p.Skills, p.ClientID, p.Status, now, now)
	if err != nil {
		return err
	}
	p.ID, p.CreatedAt, p.UpdatedAt = id, now, now
	return nil
}

func (s *Store) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	var p models.Project
	if err := s.get(ctx, &p, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) ListProjects(ctx context.Context, f store.ProjectFilter) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE 1=1`
	var args []interface{}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.ClientID != 0 {
		query += ` AND client_id = ?`
		args = append(args, f.ClientID)
	}
	if len(f.IDs) > 0 {
		query += ` AND id IN (?)`
		args = append(args, f.IDs)
	}

	dir := " DESC"
	if f.Asc {
		dir = " ASC"
	}
	query += ` ORDER BY ` + store.SortColumn(f.SortBy) + dir + `, id` + dir

	var projects []models.Project
	if err := s.selectAll(ctx, &projects, query, args...); err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *Store) UpdateProjectStatus(ctx context.Context, id uint, status models.ProjectStatus) error {
	return s.exec(ctx, `UPDATE projects SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id)
}
