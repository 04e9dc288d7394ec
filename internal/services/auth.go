package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Ravindra230104/EduGather-server/internal/mailer"
	"github.com/Ravindra230104/EduGather-server/internal/models"
	"github.com/Ravindra230104/EduGather-server/internal/token"
	"github.com/Ravindra230104/EduGather-server/pkg/utils"

	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	tokens    *token.Service
	mail      mailer.Mailer
	logger    *slog.Logger
	clientURL string
}

func NewAuthService(db *gorm.DB, tokens *token.Service, mail mailer.Mailer, logger *slog.Logger, clientURL string) *AuthService {
	return &AuthService{
		db:        db,
		tokens:    tokens,
		mail:      mail,
		logger:    logger,
		clientURL: clientURL,
	}
}

// Register issues a pending-registration token and emails it. No user row
// exists until the token comes back through Activate.
func (s *AuthService) Register(ctx context.Context, name, email, password string, categoryIDs []uint) error {
	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	activationToken, err := s.tokens.SignActivation(name, email, password, categoryIDs)
	if err != nil {
		return fmt.Errorf("failed to sign activation token: %w", err)
	}

	if err := s.mail.Send(ctx, mailer.ActivationEmail(s.clientURL, email, activationToken)); err != nil {
		return fmt.Errorf("failed to send activation email: %w", err)
	}

	s.logger.Info("Activation email sent", "email", email)
	return nil
}

// Activate exchanges an unexpired activation token for a persisted account.
// The email uniqueness check runs again here: someone else may have claimed
// the address between Register and Activate.
func (s *AuthService) Activate(ctx context.Context, activationToken string) (*models.User, error) {
	claims, err := s.tokens.ParseActivation(activationToken)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	var existing models.User
	err = s.db.WithContext(ctx).Where("email = ?", claims.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(claims.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var categories []models.Category
	if len(claims.Categories) > 0 {
		if err := s.db.WithContext(ctx).Where("id IN ?", claims.Categories).Find(&categories).Error; err != nil {
			return nil, err
		}
	}

	user := models.User{
		Username:     utils.GenerateUsername(),
		Name:         claims.Name,
		Email:        claims.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		Categories:   categories,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("Account activated", "email", user.Email, "username", user.Username)
	return &user, nil
}

// Login validates credentials and returns a 7-day session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrNotFound
	}
	if err != nil {
		return "", nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, ErrBadCredentials
	}

	sessionToken, err := s.tokens.SignSession(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return sessionToken, &user, nil
}

// ForgotPassword stores a fresh reset token on the user row and emails it.
// The stored copy makes the token single-use: ResetPassword clears it.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	resetToken, err := s.tokens.SignReset(email)
	if err != nil {
		return fmt.Errorf("failed to sign reset token: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&user).Update("reset_token", resetToken).Error; err != nil {
		return err
	}

	if err := s.mail.Send(ctx, mailer.ResetEmail(s.clientURL, email, resetToken)); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	s.logger.Info("Password reset email sent", "email", email)
	return nil
}

// ResetPassword verifies the token signature first, then resolves the user
// by the stored copy. A consumed or superseded token no longer matches any
// row and fails with ErrTokenStale.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if err := s.tokens.VerifyReset(resetToken); err != nil {
		return ErrTokenInvalid
	}

	if len(newPassword) < 6 {
		return ErrWeakPassword
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("reset_token = ?", resetToken).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTokenStale
	}
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"password_hash": hash,
		"reset_token":   "",
	}).Error
}
