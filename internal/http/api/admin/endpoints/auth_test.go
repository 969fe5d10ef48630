package endpoints

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nimbus-Analytics/stratus/internal/http/api"
)

func setupAuthRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/admin"},
		AuthPublicModule("test-secret", store),
	)
	return r
}

func TestSignupThenLogin(t *testing.T) {
	store := newFakeStore()
	r := setupAuthRouter(store)

	w := doJSON(t, r, http.MethodPost, "/api/admin/auth/signup", map[string]any{
		"email":    "dana@example.com",
		"password": "12345678",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var signupResp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signupResp))
	assert.NotEmpty(t, signupResp["token"])

	w = doJSON(t, r, http.MethodPost, "/api/admin/auth/login", map[string]any{
		"email":    "dana@example.com",
		"password": "12345678",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	assert.NotEmpty(t, loginResp["token"])
}

func TestSignupDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	r := setupAuthRouter(store)

	body := map[string]any{"email": "dana@example.com", "password": "12345678"}
	w := doJSON(t, r, http.MethodPost, "/api/admin/auth/signup", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/admin/auth/signup", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeStore()
	r := setupAuthRouter(store)

	w := doJSON(t, r, http.MethodPost, "/api/admin/auth/signup", map[string]any{
		"email":    "dana@example.com",
		"password": "12345678",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/admin/auth/login", map[string]any{
		"email":    "dana@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
