package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TRIPMATE_BACK-END/internal/config"
	"TRIPMATE_BACK-END/internal/utils"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:         "test-secret-key",
		AccessTokenTTL: time.Hour,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := GenerateToken(userID, "somsri@example.com", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "somsri@example.com", claims.Email)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateToken(uuid.New(), "somsri@example.com", cfg)
	require.NoError(t, err)

	other := &config.JWTConfig{Secret: "different-secret", AccessTokenTTL: time.Hour}
	_, err = ValidateToken(token, other)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret-key", AccessTokenTTL: -time.Minute}
	token, err := GenerateToken(uuid.New(), "somsri@example.com", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, cfg)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-jwt", testJWTConfig())
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	next := func(w http.ResponseWriter, r *http.Request) {
		gotID, ok := utils.GetUserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, userID, gotID)

		email, ok := utils.GetEmailFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "somsri@example.com", email)

		w.WriteHeader(http.StatusOK)
	}
	handler := AuthMiddleware(next, cfg)

	t.Run("valid bearer token passes through", func(t *testing.T) {
		token, err := GenerateToken(userID, "somsri@example.com", cfg)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/trip/all-my-trips", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/trip/all-my-trips", nil)
		rec := httptest.NewRecorder()

		handler(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/trip/all-my-trips", nil)
		req.Header.Set("Authorization", "Token abc123")
		rec := httptest.NewRecorder()

		handler(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/trip/all-my-trips", nil)
		req.Header.Set("Authorization", "Bearer bogus.token.here")
		rec := httptest.NewRecorder()

		handler(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
