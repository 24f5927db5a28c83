// File: /controllers/testutil_test.go
package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rct-connect-api/config"
	"rct-connect-api/database"
	"rct-connect-api/models"
	"rct-connect-api/routes"
	"rct-connect-api/services"
)

const testJWTSecret = "test-secret"

// envelope mirrors the API response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func setupTestAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret: testJWTSecret,
	}

	router := gin.New()
	routes.SetupRoutes(router, db, cfg, services.NewEmailService(cfg))
	return router, db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	env := parseEnvelope(t, w)
	require.True(t, env.Success, "expected success envelope, got error: %s", env.Error)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

// createTestEvent drives the real endpoint so the chat group provisioning
// runs too.
func createTestEvent(t *testing.T, router *gin.Engine, creator models.User, title string, maxParticipants *int) models.Event {
	t.Helper()

	body := map[string]interface{}{
		"title":    title,
		"date":     "2026-10-01",
		"time":     "18:30",
		"location": "Club house",
	}
	if maxParticipants != nil {
		body["max_participants"] = *maxParticipants
	}

	w := doRequest(t, router, http.MethodPost, "/api/v1/events", tokenFor(t, creator), body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var event models.Event
	decodeData(t, w, &event)
	return event
}

func intPtr(v int) *int {
	return &v
}
