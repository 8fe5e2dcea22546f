package middleware_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	"github.com/SscSPs/academic_docs_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	secret = "middleware-secret-key-long-enough"
	issuer = "docs-test"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.Default()))
	r.GET("/", handlers...)
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_PopulatesActor(t *testing.T) {
	var got domain.Actor
	r := newEngine(middleware.AuthMiddleware(secret, issuer), func(c *gin.Context) {
		got, _ = middleware.GetActorFromContext(c)
		c.Status(http.StatusNoContent)
	})
	token, err := middleware.IssueToken(domain.Actor{ID: "head-cs", Role: domain.RoleDepartmentHead, DepartmentID: "CS"}, secret, issuer, time.Hour)
	require.NoError(t, err)

	w := get(r, token)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "head-cs", got.ID)
	assert.Equal(t, domain.RoleDepartmentHead, got.Role)
	assert.Equal(t, "CS", got.DepartmentID)
	assert.Equal(t, "192.0.2.1", got.IPAddress)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	r := newEngine(middleware.AuthMiddleware(secret, issuer), func(c *gin.Context) { c.Status(http.StatusOK) })

	expired, err := middleware.IssueToken(domain.Actor{ID: "u", Role: domain.RoleTeacher}, secret, issuer, -time.Minute)
	require.NoError(t, err)
	wrongKey, err := middleware.IssueToken(domain.Actor{ID: "u", Role: domain.RoleTeacher}, "another-secret-key-entirely", issuer, time.Hour)
	require.NoError(t, err)
	badRole, err := middleware.IssueToken(domain.Actor{ID: "u", Role: domain.Role("janitor")}, secret, issuer, time.Hour)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"missing":   "",
		"garbage":   "not-a-jwt",
		"expired":   expired,
		"wrong key": wrongKey,
		"bad role":  badRole,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, get(r, token).Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := newEngine(middleware.AuthMiddleware(secret, issuer), middleware.RequireRole(domain.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	admin, _ := middleware.IssueToken(domain.Actor{ID: "root", Role: domain.RoleAdmin}, secret, issuer, time.Hour)
	dean, _ := middleware.IssueToken(domain.Actor{ID: "dean", Role: domain.RoleCollegeDean}, secret, issuer, time.Hour)

	assert.Equal(t, http.StatusOK, get(r, admin).Code)
	assert.Equal(t, http.StatusForbidden, get(r, dean).Code)
}

func TestRateLimit(t *testing.T) {
	limiter, err := middleware.NewRateLimiter("2-M")
	require.NoError(t, err)
	r := newEngine(middleware.RateLimit(limiter), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(r, "").Code)
	assert.Equal(t, http.StatusOK, get(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "").Code)

	_, err = middleware.NewRateLimiter("lots")
	assert.Error(t, err)
}

func TestGetLoggerFromCtx(t *testing.T) {
	assert.Same(t, slog.Default(), middleware.GetLoggerFromCtx(context.Background()))

	custom := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Same(t, custom, middleware.GetLoggerFromCtx(middleware.WithLogger(context.Background(), custom)))
}
