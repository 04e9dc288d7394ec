package services

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/Ravindra230104/EduGather-server/internal/mailer"
	"github.com/Ravindra230104/EduGather-server/internal/models"
	"github.com/Ravindra230104/EduGather-server/internal/repository"
	"github.com/Ravindra230104/EduGather-server/internal/token"
	"github.com/Ravindra230104/EduGather-server/pkg/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Every connection to :memory: is a distinct database; pin the pool to
	// one connection so all queries see the same schema.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := repository.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func testTokens() *token.Service {
	return token.NewService(
		"session-secret-12345678901234567890",
		"activation-secret-1234567890123456",
		"reset-secret-123456789012345678901",
	)
}

// fakeMailer records sends; failTo makes delivery to one address fail.
type fakeMailer struct {
	mu     sync.Mutex
	sent   []mailer.Email
	failTo string
}

func (f *fakeMailer) Send(_ context.Context, email mailer.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTo != "" && email.To == f.failTo {
		return errors.New("ses unavailable")
	}
	f.sent = append(f.sent, email)
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeMailer) lastEmail() (mailer.Email, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return mailer.Email{}, false
	}
	return f.sent[len(f.sent)-1], true
}

// fakeBlobStore keeps blobs in a map.
type fakeBlobStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	deleted    []string
	failPut    bool
	failDelete bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (f *fakeBlobStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut {
		return "", errors.New("s3 unavailable")
	}
	f.objects[key] = data
	return "https://blobs.test/" + key, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	if f.failDelete {
		return errors.New("s3 unavailable")
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeBlobStore) objectCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

func testImageDataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4e, 0x47})
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Username:     utils.GenerateUsername(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &user
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := models.Category{
		Name:     name,
		Slug:     utils.Slugify(name),
		ImageURL: "https://blobs.test/category/seed.png",
		ImageKey: "category/seed-" + utils.Slugify(name) + ".png",
		Content:  "Seeded category content for tests",
	}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return &category
}
