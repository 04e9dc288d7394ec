package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Ravindra230104/EduGather-server/internal/models"
	"github.com/Ravindra230104/EduGather-server/internal/storage"
	"github.com/Ravindra230104/EduGather-server/pkg/utils"

	"gorm.io/gorm"
)

type CategoryService struct {
	db     *gorm.DB
	blobs  storage.BlobStore
	logger *slog.Logger
}

func NewCategoryService(db *gorm.DB, blobs storage.BlobStore, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		db:     db,
		blobs:  blobs,
		logger: logger,
	}
}

// Create uploads the image first and persists after. If the insert fails the
// uploaded blob is orphaned; there is no rollback. Known limitation.
func (s *CategoryService) Create(ctx context.Context, userID uint, name, image, content string) (*models.Category, error) {
	data, ext, err := storage.DecodeImage(image)
	if err != nil {
		return nil, err
	}

	slug := utils.Slugify(name)

	var existing models.Category
	err = s.db.WithContext(ctx).Where("slug = ?", slug).First(&existing).Error
	if err == nil {
		return nil, ErrSlugTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	key := storage.ImageKey(ext)
	url, err := s.blobs.Put(ctx, key, data, "image/"+ext)
	if err != nil {
		return nil, fmt.Errorf("failed to upload category image: %w", err)
	}

	category := models.Category{
		Name:       name,
		Slug:       slug,
		ImageURL:   url,
		ImageKey:   key,
		Content:    content,
		PostedByID: userID,
	}

	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	return &category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Read resolves the category and its links newest-first, paginated.
func (s *CategoryService) Read(ctx context.Context, slug string, limit, skip int) (*models.Category, []models.Link, error) {
	if limit <= 0 {
		limit = 10
	}
	if skip < 0 {
		skip = 0
	}

	var category models.Category
	err := s.db.WithContext(ctx).Preload("PostedBy").Where("slug = ?", slug).First(&category).Error
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
		Joins("JOIN link_categories lc ON lc.link_id = links.id").
		Where("lc.category_id = ?", category.ID).
		Order("links.created_at DESC").
		Limit(limit).
		Offset(skip).
		Find(&links).Error
	if err != nil {
		return nil, nil, err
	}

	return &category, links, nil
}

// Update replaces name and content unconditionally. When a new image is
// supplied the old blob is deleted best-effort before the new one is
// uploaded and the row re-saved.
func (s *CategoryService) Update(ctx context.Context, slug, name, content, image string) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Content = content

	if image != "" {
		data, ext, err := storage.DecodeImage(image)
		if err != nil {
			return nil, err
		}

		if category.ImageKey != "" {
			if err := s.blobs.Delete(ctx, category.ImageKey); err != nil {
				s.logger.Warn("Failed to delete old category image", "key", category.ImageKey, "error", err)
			}
		}

		key := storage.ImageKey(ext)
		url, err := s.blobs.Put(ctx, key, data, "image/"+ext)
		if err != nil {
			return nil, fmt.Errorf("failed to upload category image: %w", err)
		}
		category.ImageURL = url
		category.ImageKey = key
	}

	if err := s.db.WithContext(ctx).Save(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	return &category, nil
}

// Remove deletes the row, then the blob best-effort. Links keep their
// references to the gone category; cleaning those up is the caller's
// problem, matching the document-store behavior.
func (s *CategoryService) Remove(ctx context.Context, slug string) error {
	var category models.Category
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&category).Error; err != nil {
		return err
	}

	if category.ImageKey != "" {
		if err := s.blobs.Delete(ctx, category.ImageKey); err != nil {
			s.logger.Warn("Failed to delete category image", "key", category.ImageKey, "error", err)
		}
	}

	return nil
}
