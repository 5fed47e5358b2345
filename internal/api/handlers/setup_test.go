package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shoply/jobboard/internal/api/handlers"
	"github.com/shoply/jobboard/internal/api/routes"
	"github.com/shoply/jobboard/internal/models"
	pgrepo "github.com/shoply/jobboard/internal/repositories/postgres"
	"github.com/shoply/jobboard/internal/services"
	"github.com/shoply/jobboard/internal/storage"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

// memStore is an in-memory stand-in for the Redis token store.
type memStore struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemStore() *memStore { return &memStore{m: map[string]string{}} }

func (s *memStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *memStore) Set(_ context.Context, key, val string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = val
	return nil
}

func (s *memStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.m, k)
	}
	return nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.ShopProfile{},
		&models.JobVacancy{},
		&models.JobApplication{},
		&models.VacancyComment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)

	media := storage.NewLocalUploader(t.TempDir(), "/media")

	userRepo := pgrepo.NewUserRepo(db)
	shopRepo := pgrepo.NewShopRepo(db)
	vacancyRepo := pgrepo.NewVacancyRepo(db)
	applicationRepo := pgrepo.NewApplicationRepo(db)
	commentRepo := pgrepo.NewCommentRepo(db)

	authSvc := services.NewAuthService(userRepo, newMemStore())
	userSvc := services.NewUserService(userRepo)
	shopSvc := services.NewShopService(shopRepo, vacancyRepo, applicationRepo)
	vacancySvc := services.NewVacancyService(vacancyRepo, shopRepo, applicationRepo)
	applicationSvc := services.NewApplicationService(applicationRepo, shopRepo)
	commentSvc := services.NewCommentService(commentRepo, vacancyRepo, shopRepo)

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		Auth:        handlers.NewAuthHandler(authSvc),
		User:        handlers.NewUserHandler(userSvc, media),
		Shop:        handlers.NewShopHandler(shopSvc, userSvc, media),
		Vacancy:     handlers.NewVacancyHandler(vacancySvc, commentSvc, media, media),
		Application: handlers.NewApplicationHandler(applicationSvc, userSvc),
		Comment:     handlers.NewCommentHandler(commentSvc, userSvc),
	})
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// registerUser creates an account over the API and returns its id.
func registerUser(t *testing.T, r *gin.Engine, payload map[string]any) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/users/", "", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("register %v: expected 201 got %d: %s", payload["username"], w.Code, w.Body.String())
	}
	var out struct {
		ID uint `json:"id"`
	}
	decode(t, w, &out)
	return out.ID
}

// login obtains an access token for the user.
func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/token/", "", map[string]any{
		"username": username,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200 got %d: %s", username, w.Code, w.Body.String())
	}
	var pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decode(t, w, &pair)
	return pair.Access
}

// seedOwner registers a shop owner with a complete shop profile, marks
// the shop verified and returns the owner's token and shop id.
func seedOwner(t *testing.T, r *gin.Engine, db *gorm.DB, username string) (string, uint) {
	t.Helper()
	registerUser(t, r, map[string]any{
		"username":     username,
		"email":        username + "@example.com",
		"password":     "str0ng-and-l0ng",
		"role":         "SHOP_OWNER",
		"company_name": username + " shop",
		"description":  "d",
		"location":     "l",
	})
	var shop models.ShopProfile
	if err := db.Joins("JOIN users ON users.id = shop_profiles.user_id").
		Where("users.username = ?", username).Take(&shop).Error; err != nil {
		t.Fatalf("load shop for %s: %v", username, err)
	}
	if err := db.Model(&models.ShopProfile{}).Where("id = ?", shop.ID).
		Update("is_verified", true).Error; err != nil {
		t.Fatalf("verify shop: %v", err)
	}
	return login(t, r, username, "str0ng-and-l0ng"), shop.ID
}

// seedSeeker registers a job seeker and returns their token.
func seedSeeker(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	registerUser(t, r, map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "str0ng-and-l0ng",
		"role":     "JOB_SEEKER",
	})
	return login(t, r, username, "str0ng-and-l0ng")
}

// createJob posts a vacancy as the given owner and returns its id.
func createJob(t *testing.T, r *gin.Engine, token, title string) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/jobs/", token, map[string]any{
		"title":       title,
		"description": "desc",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create job %q: expected 201 got %d: %s", title, w.Code, w.Body.String())
	}
	var out struct {
		ID uint `json:"id"`
	}
	decode(t, w, &out)
	return out.ID
}

func jobPath(id uint, suffix string) string {
	if suffix == "" {
		return fmt.Sprintf("/jobs/%d/", id)
	}
	return fmt.Sprintf("/jobs/%d/%s/", id, suffix)
}
