package supabase

import (
	"context"
	"time"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

// profiles keeps Supabase's full_name column; it is aliased onto User.Name.
const profileColumns = `id, full_name AS name, email, password_hash, bio, skills, hourly_rate, is_freelancer, created_at, updated_at`

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	id, err := s.insert(ctx,
		`INSERT INTO profiles (full_name, email, password_hash, bio, skills, hourly_rate, is_freelancer, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.Password, u.Bio, u.Skills, u.HourlyRate, u.IsFreelancer, now, now)
	if err != nil {
		return err
	}
	u.ID, u.CreatedAt, u.UpdatedAt = id, now, now
	return nil
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.get(ctx, &u, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.get(ctx, &u, `SELECT `+profileColumns+` FROM profiles WHERE email = ?`, email); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context, f store.UserFilter) ([]models.User, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE 1=1`
	var args []interface{}
	if f.ExcludeEmail != "" {
		query += ` AND email <> ?`
		args = append(args, f.ExcludeEmail)
	}
	if f.Freelancer != nil {
		query += ` AND is_freelancer = ?`
		args = append(args, *f.Freelancer)
	}

	var users []models.User
	if err := s.selectAll(ctx, &users, query+` ORDER BY id ASC`, args...); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) SetFreelancer(ctx context.Context, id uint, isFreelancer bool) error {
	return s.exec(ctx, `UPDATE profiles SET is_freelancer = ?, updated_at = ? WHERE id = ?`,
		isFreelancer, time.Now().UTC(), id)
}

func (s *Store) UpdateProfile(ctx context.Context, id uint, p store.ProfileUpdate) error {
	return s.exec(ctx, `UPDATE profiles SET full_name = ?, bio = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.Bio, time.Now().UTC(), id)
}

func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return s.Transaction(ctx, func(txs store.Store) error {
		tx := txs.(*Store)
		cleanup := []struct {
			query string
			args  []interface{}
		}{
			{`DELETE FROM applications WHERE user_id = ? OR project_id IN (SELECT id FROM projects WHERE client_id = ?)`, []interface{}{id, id}},
			{`DELETE FROM projects WHERE client_id = ?`, []interface{}{id}},
			{`DELETE FROM freelancer_applications WHERE user_id = ?`, []interface{}{id}},
		}
		for _, step := range cleanup {
			if _, err := tx.q.ExecContext(ctx, tx.q.Rebind(step.query), step.args...); err != nil {
				return translate(err)
			}
		}
		return tx.exec(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	})
}
