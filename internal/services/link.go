package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ravindra230104/EduGather-server/internal/models"
	"github.com/Ravindra230104/EduGather-server/pkg/utils"

	"gorm.io/gorm"
)

const popularCount = 3

type LinkDTO struct {
	Title      string
	URL        string
	Type       string
	Medium     string
	Categories []uint
}

type LinkService struct {
	db       *gorm.DB
	notifier *NotifierService
}

func NewLinkService(db *gorm.DB, notifier *NotifierService) *LinkService {
	return &LinkService{
		db:       db,
		notifier: notifier,
	}
}

// Create persists the link and enqueues the subscriber notification without
// waiting on it. The caller gets its response before any email goes out.
func (s *LinkService) Create(ctx context.Context, userID uint, dto LinkDTO) (*models.Link, error) {
	if dto.Type == "" {
		dto.Type = "Free"
	}
	if dto.Medium == "" {
		dto.Medium = "Video"
	}

	slug := utils.Slugify(dto.Title)

	var existing models.Link
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&existing).Error
	if err == nil {
		return nil, ErrSlugTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var categories []models.Category
	if len(dto.Categories) > 0 {
		if err := s.db.WithContext(ctx).Where("id IN ?", dto.Categories).Find(&categories).Error; err != nil {
			return nil, err
		}
	}

	link := models.Link{
		Title:      dto.Title,
		Slug:       slug,
		URL:        dto.URL,
		Type:       dto.Type,
		Medium:     dto.Medium,
		PostedByID: userID,
		Categories: categories,
	}

	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		return nil, fmt.Errorf("failed to save link: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyPublished(link.ID)
	}

	return &link, nil
}

func (s *LinkService) List(ctx context.Context, limit, skip int) ([]models.Link, error) {
	if limit <= 0 {
		limit = 10
	}
	if skip < 0 {
		skip = 0
	}

	var links []models.Link
	err := s.db.WithContext(ctx).
		Preload("PostedBy").
		Preload("Categories").
		Order("created_at DESC").
		Limit(limit).
		Offset(skip).
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

// Read looks a link up by slug, not id.
func (s *LinkService) Read(ctx context.Context, slug string) (*models.Link, error) {
	var link models.Link
	err := s.db.WithContext(ctx).
		Preload("PostedBy").
		Preload("Categories").
		Where("slug = ?", slug).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// Update replaces the supplied fields. The slug stays what it was even when
// the title changes; published URLs keep working.
func (s *LinkService) Update(ctx context.Context, id uint, dto LinkDTO) (*models.Link, error) {
	var link models.Link
	err := s.db.WithContext(ctx).First(&link, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if dto.Title != "" {
		link.Title = dto.Title
	}
	if dto.URL != "" {
		link.URL = dto.URL
	}
	if dto.Type != "" {
		link.Type = dto.Type
	}
	if dto.Medium != "" {
		link.Medium = dto.Medium
	}

	if err := s.db.WithContext(ctx).Save(&link).Error; err != nil {
		return nil, err
	}

	if dto.Categories != nil {
		var categories []models.Category
		if err := s.db.WithContext(ctx).Where("id IN ?", dto.Categories).Find(&categories).Error; err != nil {
			return nil, err
		}
		if err := s.db.WithContext(ctx).Model(&link).Association("Categories").Replace(categories); err != nil {
			return nil, err
		}
		link.Categories = categories
	}

	return &link, nil
}

func (s *LinkService) Remove(ctx context.Context, id uint) error {
	var link models.Link
	err := s.db.WithContext(ctx).First(&link, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Model(&link).Association("Categories").Clear(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Delete(&link).Error
}

// IncrementClicks bumps the counter with a single UPDATE so concurrent
// clicks never lose updates. A missing id is an error; the counter endpoint
// does not create skeleton links.
func (s *LinkService) IncrementClicks(ctx context.Context, id uint) (*models.Link, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Link{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var link models.Link
	if err := s.db.WithContext(ctx).First(&link, id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *LinkService) Popular(ctx context.Context) ([]models.Link, error) {
	var links []models.Link
	err := s.db.WithContext(ctx).
		Preload("PostedBy").
		Order("clicks DESC").
		Limit(popularCount).
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (s *LinkService) PopularInCategory(ctx context.Context, slug string) ([]models.Link, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var links []models.Link
	err = s.db.WithContext(ctx).
		Joins("JOIN link_categories lc ON lc.link_id = links.id").
		Where("lc.category_id = ?", category.ID).
		Order("links.clicks DESC").
		Limit(popularCount).
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

// Approve flips the moderation flag; admin-only, enforced upstream.
func (s *LinkService) Approve(ctx context.Context, id uint) (*models.Link, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Link{}).
		Where("id = ?", id).
		Update("approved", true)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var link models.Link
	if err := s.db.WithContext(ctx).First(&link, id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *LinkService) ListUnapproved(ctx context.Context) ([]models.Link, error) {
	var links []models.Link
	err := s.db.WithContext(ctx).
		Preload("PostedBy").
		Preload("Categories").
		Where("approved = ?", false).
		Order("created_at DESC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}
