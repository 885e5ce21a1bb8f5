package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"loye-backend/internal/adapters/http/middleware"
	"loye-backend/internal/adapters/persistence/models"
	"loye-backend/internal/config"
	"loye-backend/internal/pkg/jwt"
	"loye-backend/internal/pkg/password"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// apiResponse mirrors the response envelope for test assertions
type apiResponse struct {
	Success  bool                   `json:"success"`
	Message  string                 `json:"message"`
	Data     map[string]interface{} `json:"data"`
	Error    string                 `json:"error"`
	Redirect string                 `json:"redirect"`
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()
	return newTestAppWithWave(t, "")
}

func newTestAppWithWave(t *testing.T, waveBaseURL string) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "loye-test.db")
	db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		AppMode: "dev",
		Port:    "0",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Cookie: config.CookieConfig{SameSite: "lax"},
		Wave: config.WaveConfig{
			APIKey:     "test-wave-key",
			BaseURL:    waveBaseURL,
			SuccessURL: "https://loye.test/success",
			ErrorURL:   "https://loye.test/error",
		},
	}
	config.AppConfig = cfg
	config.DB = db

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.CustomErrorHandler,
	})
	Setup(app, db, cfg)

	return app, db, cfg
}

// createUser inserts a user directly and returns it with a valid token
func createUser(t *testing.T, db *gorm.DB, cfg *config.Config, name, email, role, loyeRole string) (*models.User, string) {
	t.Helper()

	hashed, err := password.Hash("StrongPass1")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Name:     name,
		Email:    email,
		Phone:    "+225 0700000001",
		Password: hashed,
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	if loyeRole != "" {
		profile := &models.LoyeProfile{UserID: user.ID, Role: loyeRole, Onboarded: true}
		if err := db.Create(profile).Error; err != nil {
			t.Fatalf("create loye profile: %v", err)
		}
	}

	return user, tokenFor(t, cfg, user, loyeRole)
}

// tokenFor builds an access token with the given loye_role claim
func tokenFor(t *testing.T, cfg *config.Config, user *models.User, loyeRole string) string {
	t.Helper()

	token, err := jwt.GenerateAccessToken(user.ID, user.Name, user.Role, loyeRole, cfg.JWT.Secret, cfg.JWT.AccessTokenMins)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// doJSON performs a JSON request against the test app
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, *apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})

	parsed := &apiResponse{}
	if err := json.NewDecoder(response.Body).Decode(parsed); err != nil {
		t.Fatalf("decode %s %s response: %v", method, path, err)
	}
	return response, parsed
}
