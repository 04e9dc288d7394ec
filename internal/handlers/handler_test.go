package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/Ravindra230104/EduGather-server/internal/chat"
	"github.com/Ravindra230104/EduGather-server/internal/config"
	"github.com/Ravindra230104/EduGather-server/internal/mailer"
	"github.com/Ravindra230104/EduGather-server/internal/models"
	"github.com/Ravindra230104/EduGather-server/internal/repository"
	"github.com/Ravindra230104/EduGather-server/internal/services"
	"github.com/Ravindra230104/EduGather-server/internal/token"
	"github.com/Ravindra230104/EduGather-server/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *token.Service
	mail   *fakeMailer
	blobs  *fakeBlobStore
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	tokens := token.NewService(
		"session-secret-12345678901234567890",
		"activation-secret-1234567890123456",
		"reset-secret-123456789012345678901",
	)
	mail := &fakeMailer{}
	blobs := newFakeBlobStore()
	cfg := config.Config{ClientURL: "http://localhost:3000", Port: "8080"}

	auth := services.NewAuthService(db, tokens, mail, logger, cfg.ClientURL)
	notifier := services.NewNotifierService(db, mail, logger, cfg.ClientURL)
	categories := services.NewCategoryService(db, blobs, logger)
	links := services.NewLinkService(db, notifier)
	users := services.NewUserService(db)
	hub := chat.NewHub(db, nil, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go notifier.Start(ctx)
	go hub.Run(ctx)

	h := NewHandler(cfg, logger, db, tokens, auth, categories, links, users, hub)

	return &testEnv{
		router: h.SetupRouter(),
		db:     db,
		tokens: tokens,
		mail:   mail,
		blobs:  blobs,
	}
}

// doJSON drives a route through the router. An empty token sends no
// Authorization header.
func (e *testEnv) doJSON(t *testing.T, method, path, sessionToken string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+sessionToken)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

func (e *testEnv) seedUser(t *testing.T, email, role string) *models.User {
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
	if err := e.db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &user
}

// sessionFor skips the login round-trip when a test only needs a token.
func (e *testEnv) sessionFor(t *testing.T, user *models.User) string {
	t.Helper()

	tok, err := e.tokens.SignSession(user.ID)
	if err != nil {
		t.Fatalf("failed to sign session: %v", err)
	}
	return tok
}

func (e *testEnv) seedCategory(t *testing.T, name string) *models.Category {
	t.Helper()

	category := models.Category{
		Name:     name,
		Slug:     utils.Slugify(name),
		ImageURL: "https://blobs.test/category/seed.png",
		ImageKey: "category/seed-" + utils.Slugify(name) + ".png",
		Content:  "Seeded category content for tests",
	}
	if err := e.db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return &category
}

func (e *testEnv) seedLink(t *testing.T, title string, userID uint, categories ...*models.Category) *models.Link {
	t.Helper()

	link := models.Link{
		Title:      title,
		Slug:       utils.Slugify(title),
		URL:        "https://example.com/" + utils.Slugify(title),
		Type:       "Free",
		Medium:     "Video",
		PostedByID: userID,
	}
	for _, c := range categories {
		link.Categories = append(link.Categories, *c)
	}
	if err := e.db.Create(&link).Error; err != nil {
		t.Fatalf("failed to seed link: %v", err)
	}
	return &link
}

func testImageDataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4e, 0x47})
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
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (f *fakeBlobStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return "https://blobs.test/" + key, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	delete(f.objects, key)
	return nil
}

func TestHealth(t *testing.T) {
	env := setupTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
