package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juhyeon1114/jpashop/configs"
)

func testConfig() configs.Config {
	var cfg configs.Config
	cfg.Security.JWTSecret = "test-secret"
	cfg.Security.Issuer = "shop-api"
	cfg.Security.Audience = "shop-clients"
	return cfg
}

func signToken(t *testing.T, cfg configs.Config, perms []string) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   cfg.Security.Issuer,
		"aud":   cfg.Security.Audience,
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
		"perms": perms,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(cfg.Security.JWTSecret))
	require.NoError(t, err)
	return signed
}

func authzRouter(cfg configs.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded", NewAuthz(cfg).Require("orders.read"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doGuarded(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthzAllowsMatchingPerm(t *testing.T) {
	cfg := testConfig()
	r := authzRouter(cfg)

	w := doGuarded(r, signToken(t, cfg, []string{"orders.read", "orders.write"}))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthzMissingToken(t *testing.T) {
	r := authzRouter(testConfig())

	w := doGuarded(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthzMissingPerm(t *testing.T) {
	cfg := testConfig()
	r := authzRouter(cfg)

	w := doGuarded(r, signToken(t, cfg, []string{"orders.write"}))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthzWrongSecret(t *testing.T) {
	cfg := testConfig()
	r := authzRouter(cfg)

	bad := testConfig()
	bad.Security.JWTSecret = "other-secret"
	w := doGuarded(r, signToken(t, bad, []string{"orders.read"}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthzIssuerMismatch(t *testing.T) {
	cfg := testConfig()
	r := authzRouter(cfg)

	other := testConfig()
	other.Security.Issuer = "someone-else"
	w := doGuarded(r, signToken(t, other, []string{"orders.read"}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
