package services

import (
	"context"
	"log/slog"

	"github.com/Ravindra230104/EduGather-server/internal/mailer"
	"github.com/Ravindra230104/EduGather-server/internal/models"

	"gorm.io/gorm"
)

// NotifierService fans out "new link published" emails to subscribers of
// the link's categories. It runs as a background worker so link creation
// never waits on email delivery.
type NotifierService struct {
	db        *gorm.DB
	mail      mailer.Mailer
	logger    *slog.Logger
	clientURL string
	queue     chan uint
}

func NewNotifierService(db *gorm.DB, mail mailer.Mailer, logger *slog.Logger, clientURL string) *NotifierService {
	return &NotifierService{
		db:        db,
		mail:      mail,
		logger:    logger,
		clientURL: clientURL,
		queue:     make(chan uint, 100),
	}
}

func (s *NotifierService) Start(ctx context.Context) {
	s.logger.Info("Notifier worker starting")
	for {
		select {
		case linkID := <-s.queue:
			s.notify(ctx, linkID)
		case <-ctx.Done():
			s.logger.Info("Notifier worker stopping")
			return
		}
	}
}

// NotifyPublished enqueues without blocking; a full queue drops the
// notification rather than stalling the request.
func (s *NotifierService) NotifyPublished(linkID uint) {
	select {
	case s.queue <- linkID:
	default:
		s.logger.Warn("Notifier queue full, dropping link notification", "link_id", linkID)
	}
}

func (s *NotifierService) notify(ctx context.Context, linkID uint) {
	var link models.Link
	if err := s.db.WithContext(ctx).Preload("Categories").First(&link, linkID).Error; err != nil {
		s.logger.Error("Failed to load link for notification", "link_id", linkID, "error", err)
		return
	}

	if len(link.Categories) == 0 {
		return
	}

	categoryIDs := make([]uint, 0, len(link.Categories))
	for _, c := range link.Categories {
		categoryIDs = append(categoryIDs, c.ID)
	}

	var subscribers []models.User
	err := s.db.WithContext(ctx).
		Distinct("users.*").
		Joins("JOIN user_categories uc ON uc.user_id = users.id").
		Where("uc.category_id IN ?", categoryIDs).
		Find(&subscribers).Error
	if err != nil {
		s.logger.Error("Failed to load subscribers", "link_id", linkID, "error", err)
		return
	}

	for _, subscriber := range subscribers {
		email := mailer.LinkPublishedEmail(s.clientURL, subscriber.Email, link, link.Categories)
		if err := s.mail.Send(ctx, email); err != nil {
			// Per-subscriber failures never abort the fan-out.
			s.logger.Error("Failed to send link notification", "email", subscriber.Email, "error", err)
		}
	}

	s.logger.Info("Link notification fan-out complete", "link_id", linkID, "subscribers", len(subscribers))
}
