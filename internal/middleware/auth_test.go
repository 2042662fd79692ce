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
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, claims JWTClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", JWTAuth(testSecret))
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"username": claims.Username, "role": claims.Role})
	})
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validClaims(role string) JWTClaims {
	return JWTClaims{
		UserID:   "3e0170e3-26a4-4b6e-9a5a-3f5e2a6a40b9",
		Username: "marcia",
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestJWTAuth_ValidToken(t *testing.T) {
	r := protectedRouter()
	w := doRequest(r, signToken(t, validClaims("admin"), testSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "marcia")
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	r := protectedRouter()
	w := doRequest(r, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication required")
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	r := protectedRouter()
	w := doRequest(r, signToken(t, validClaims("admin"), "some-other-secret"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token invalid")
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	claims := validClaims("admin")
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	r := protectedRouter()
	w := doRequest(r, signToken(t, claims, testSecret))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	r := protectedRouter("admin")

	w := doRequest(r, signToken(t, validClaims("admin"), testSecret))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, signToken(t, validClaims("agent"), testSecret))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient permissions")
}
