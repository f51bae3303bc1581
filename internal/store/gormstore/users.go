package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return translate(s.conn(ctx).Create(u).Error)
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context, f store.UserFilter) ([]models.User, error) {
	q := s.conn(ctx).Model(&models.User{})
	if f.ExcludeEmail != "" {
		q = q.Where("email <> ?", f.ExcludeEmail)
	}
	if f.Freelancer != nil {
		q = q.Where("is_freelancer = ?", *f.Freelancer)
	}

	var users []models.User
	if err := q.Order("id ASC").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (s *Store) SetFreelancer(ctx context.Context, id uint, isFreelancer bool) error {
	return affected(s.conn(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_freelancer", isFreelancer))
}

func (s *Store) UpdateProfile(ctx context.Context, id uint, p store.ProfileUpdate) error {
	return affected(s.conn(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name": p.Name,
		"bio":  p.Bio,
	}))
}

func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		ownProjects := tx.Model(&models.Project{}).Select("id").Where("client_id = ?", id)

		if err := tx.Where("user_id = ? OR project_id IN (?)", id, ownProjects).Delete(&models.Application{}).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.Project{}).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.FreelancerApplication{}).Error; err != nil {
			return translate(err)
		}
		return affected(tx.Where("id = ?", id).Delete(&models.User{}))
	})
}
