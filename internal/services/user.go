package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ravindra230104/EduGather-server/internal/models"
	"github.com/Ravindra230104/EduGather-server/pkg/utils"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Profile returns the user plus their authored links newest-first.
// Password fields never serialize; the model hides them from JSON.
func (s *UserService) Profile(ctx context.Context, userID uint) (*models.User, []models.Link, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Categories").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var links []models.Link
	err = s.db.WithContext(ctx).
		Preload("PostedBy").
		Preload("Categories").
		Where("posted_by_id = ?", userID).
		Order("created_at DESC").
		Find(&links).Error
	if err != nil {
		return nil, nil, err
	}

	return &user, links, nil
}

// Update rotates the password and/or replaces the category subscriptions
// and/or the display name. Every field is optional.
func (s *UserService) Update(ctx context.Context, userID uint, name, password string, categoryIDs []uint) (*models.User, error) {
	if password != "" && len(password) < 6 {
		return nil, ErrWeakPassword
	}

	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if password != "" {
		hash, err := utils.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}

	if categoryIDs != nil {
		var categories []models.Category
		if err := s.db.WithContext(ctx).Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
			return nil, err
		}
		if err := s.db.WithContext(ctx).Model(&user).Association("Categories").Replace(categories); err != nil {
			return nil, err
		}
		user.Categories = categories
	}

	return &user, nil
}
