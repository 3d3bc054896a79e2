package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steadycalls/opsbrain/internal/models"
)

func testUser() *models.User {
	return &models.User{ID: 7, OpenID: "oid-7", Role: models.RoleManager}
}

func TestNewServiceRequiresSecret(t *testing.T) {
	service, err := NewService("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
	assert.Nil(t, service)
}

func TestIssueAndParse(t *testing.T) {
	service, err := NewService("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := service.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "oid-7", claims.OpenID)
	assert.Equal(t, models.RoleManager, claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer, err := NewService("secret-a", time.Hour)
	require.NoError(t, err)
	verifier, err := NewService("secret-b", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	claims, err := verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	service, err := NewService("test-secret", time.Nanosecond)
	require.NoError(t, err)

	// ttl <= 0 falls back to the default, so use the smallest positive ttl
	// and let it lapse.
	token, err := service.Issue(testUser())
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	claims, err := service.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service, err := NewService("test-secret", time.Hour)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/protected", Middleware(service), func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"open_id": claims.OpenID})
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := service.Issue(testUser())
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "oid-7")
	})
}
