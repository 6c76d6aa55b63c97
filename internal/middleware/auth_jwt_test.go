package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

// ミドルウェアを素のハンドラに被せて実行する
func invokeAuthJWT(t *testing.T, authz string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := AuthJWT(config.Config{JWTSecret: testSecret})(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, c, called
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec, _, called := invokeAuthJWT(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthJWT_MalformedHeader(t *testing.T) {
	for _, authz := range []string{"Bearer", "Basic abc", "Bearer  "} {
		rec, _, called := invokeAuthJWT(t, authz)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "authz=%q", authz)
		assert.False(t, called)
	}
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token := signToken(t, "other_secret", jwt.MapClaims{
		"sub":  "1",
		"role": "USER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	rec, _, called := invokeAuthJWT(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "1",
		"role": "USER",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	rec, _, called := invokeAuthJWT(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

// 有効なトークンはuser_id/roleをcontextに載せて通す
func TestAuthJWT_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "42",
		"role": "USER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	rec, c, called := invokeAuthJWT(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.Equal(t, int64(42), c.Get(CtxUserIDKey))
	assert.Equal(t, "USER", c.Get(CtxUserRoleKey))
}

// subが数値で入っていても読める
func TestAuthJWT_NumericSub(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  42,
		"role": "ADMIN",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	_, c, called := invokeAuthJWT(t, "Bearer "+token)

	assert.True(t, called)
	assert.Equal(t, int64(42), c.Get(CtxUserIDKey))
}

func TestAuthJWT_MissingRole(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	rec, _, called := invokeAuthJWT(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

// =====================
// RoleGuard
// =====================

func invokeRoleGuard(t *testing.T, required string, role interface{}) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/menu", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set(CtxUserRoleKey, role)
	}

	called := false
	h := RoleGuard(required)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, called
}

func TestRoleGuard_EmptyRequiredAllowsAnyRole(t *testing.T) {
	rec, called := invokeRoleGuard(t, "", "USER")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRoleGuard_MatchingRole(t *testing.T) {
	rec, called := invokeRoleGuard(t, "ADMIN", "ADMIN")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRoleGuard_MismatchIs403(t *testing.T) {
	rec, called := invokeRoleGuard(t, "ADMIN", "USER")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestRoleGuard_NoRoleIs401(t *testing.T) {
	rec, called := invokeRoleGuard(t, "ADMIN", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}
