package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p9e.in/obstacle/config"
	"p9e.in/obstacle/middleware"
	"p9e.in/obstacle/models"
	"p9e.in/obstacle/utils"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, "POST", "/register", "", map[string]string{
		"name":     "New Pilot",
		"email":    "new@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var stored models.User
	require.NoError(t, config.DB.First(&stored, "email = ?", "new@example.com").Error)
	assert.Equal(t, utils.RolePilot, stored.Role, "role defaults to Pilot")
	assert.NotEqual(t, "hunter22", stored.PasswordHash)

	w = env.do(t, "POST", "/login", "", map[string]string{
		"email":    "new@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, utils.RolePilot, resp.User.Role)

	w = env.do(t, "POST", "/login", "", map[string]string{
		"email":    "new@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupEnv(t)

	body := map[string]string{"name": "A", "email": "dup@example.com", "password": "pw"}
	w := env.do(t, "POST", "/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, "POST", "/register", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminRegistrationAllowList(t *testing.T) {
	env := setupEnv(t)
	t.Setenv("ADMIN_ALLOWED_EMAILS", "boss@example.com, chief@example.com")

	w := env.do(t, "POST", "/register", "", map[string]string{
		"name": "Boss", "email": "Boss@Example.com", "password": "pw", "role": utils.RoleAdmin,
	})
	assert.Equal(t, http.StatusCreated, w.Code, "allow-list match is case-insensitive")

	w = env.do(t, "POST", "/register", "", map[string]string{
		"name": "Imposter", "email": "imposter@example.com", "password": "pw", "role": utils.RoleAdmin,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Other roles are unrestricted
	w = env.do(t, "POST", "/register", "", map[string]string{
		"name": "CW", "email": "cw@example.com", "password": "pw", "role": utils.RoleCaseworker,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAdminSelfDeletionGuard(t *testing.T) {
	env := setupEnv(t)

	admin := models.User{
		Name: "Root", Email: "root@example.com",
		PasswordHash: "x", Role: utils.RoleAdmin, IsActive: true,
	}
	require.NoError(t, config.DB.Create(&admin).Error)
	adminToken, err := middleware.GenerateToken(admin.ID.String(), admin.Role, admin.Name, admin.Email)
	require.NoError(t, err)

	// Deleting your own account is refused and changes nothing.
	w := env.do(t, "DELETE", fmt.Sprintf("/api/v1/admin/users/%s", admin.ID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var still models.User
	assert.NoError(t, config.DB.First(&still, "id = ?", admin.ID).Error)

	// Deleting someone else works.
	w = env.do(t, "DELETE", fmt.Sprintf("/api/v1/admin/users/%s", env.pilot.ID), adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, "DELETE", fmt.Sprintf("/api/v1/admin/users/%s", env.pilot.ID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
