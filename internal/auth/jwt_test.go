package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw, secret string) *jwt.Token {
	t.Helper()
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	return token
}

func TestGenerateTokenClaims(t *testing.T) {
	t.Parallel()

	raw, expiresAt, err := GenerateToken("user-123", "lawyer", "test-secret", time.Hour)
	require.NoError(t, err)

	token := parse(t, raw, "test-secret")
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "user-123", claims[claimSubject])
	assert.Equal(t, "user-123", claims[claimUserID])
	assert.Equal(t, "lawyer", claims[claimRole])
	assert.Equal(t, expiresAt.Unix(), int64(claims["exp"].(float64)))
}

func TestGenerateTokenValidation(t *testing.T) {
	t.Parallel()

	_, _, err := GenerateToken("", "", "s", time.Hour)
	assert.Error(t, err)
	_, _, err = GenerateToken("u", "", "", time.Hour)
	assert.Error(t, err)
	_, _, err = GenerateToken("u", "", "s", 0)
	assert.Error(t, err)
}

func TestUserIDFromContext(t *testing.T) {
	t.Parallel()

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := UserIDFromContext(c)
	require.Error(t, err)

	raw, _, err := GenerateToken("user-123", "", "test-secret", time.Hour)
	require.NoError(t, err)
	c.Set("user", parse(t, raw, "test-secret"))

	userID, err := UserIDFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
	assert.Empty(t, RoleFromContext(c))
}

func TestJWTMiddleware(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.Use(JWTMiddleware("test-secret", func(c echo.Context) bool {
		return c.Request().URL.Path == "/ping"
	}))
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/api/me", func(c echo.Context) error {
		id, err := UserIDFromContext(c)
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, id)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	raw, _, err := GenerateToken("user-7", "", "test-secret", time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-7", rec.Body.String())
}
