// File: /controllers/auth_controller_test.go
package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rct-connect-api/models"
)

func TestRegisterAndLogin(t *testing.T) {
	router, db := setupTestAPI(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"name":     "New Runner",
		"email":    "new@club.test",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeData(t, w, &registered)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, models.RoleMember, registered.User.Role, "self-registration never grants a privileged role")

	// Password is stored hashed, never returned
	var stored models.User
	require.NoError(t, db.First(&stored, "email = ?", "new@club.test").Error)
	assert.NotEqual(t, "supersecret", stored.Password)
	assert.NotContains(t, w.Body.String(), "supersecret")

	w = doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "new@club.test",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var loggedIn struct {
		Token string `json:"token"`
	}
	decodeData(t, w, &loggedIn)
	assert.NotEmpty(t, loggedIn.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, db := setupTestAPI(t)
	createTestUser(t, db, "Existing", "taken@club.test", models.RoleMember)

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"name":     "Copycat",
		"email":    "taken@club.test",
		"password": "supersecret",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	router, db := setupTestAPI(t)
	createTestUser(t, db, "Jane Runner", "jane@club.test", models.RoleMember)

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "jane@club.test",
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _ := setupTestAPI(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/events", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
