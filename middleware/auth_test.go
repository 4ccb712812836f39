package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fashionstore/auth"
	"fashionstore/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubRevocations struct {
	revoked map[string]bool
	err     error
}

func (s stubRevocations) IsRevoked(_ context.Context, token string) (bool, error) {
	return s.revoked[token], s.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(tokens *auth.TokenManager, rev RevocationChecker, log *zap.Logger, roles ...string) *gin.Engine {
	r := gin.New()
	r.GET("/private", Authenticate(tokens, rev, log), RequireRoles(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString(UserIDKey), "role": c.GetString(RoleKey)})
	})
	return r
}

func doGet(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	tokens := auth.NewTokenManager("s3cret", time.Hour)
	adminToken, err := tokens.Issue("u1", "admin")
	require.NoError(t, err)
	customerToken, err := tokens.Issue("u2", "customer")
	require.NoError(t, err)
	revokedToken, err := tokens.Issue("u3", "admin")
	require.NoError(t, err)

	rev := stubRevocations{revoked: map[string]bool{revokedToken: true}}
	r := newRouter(tokens, rev, zap.NewNop(), "admin", "productManager")

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing token", "", http.StatusUnauthorized, "Token required"},
		{"garbage token", "Bearer nope", http.StatusUnauthorized, "Invalid or expired token"},
		{"revoked token", "Bearer " + revokedToken, http.StatusUnauthorized, "revoked"},
		{"wrong role", "Bearer " + customerToken, http.StatusForbidden, "Access denied"},
		{"admin", "Bearer " + adminToken, http.StatusOK, `"role":"admin"`},
		{"bare token", adminToken, http.StatusOK, `"userId":"u1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(r, tt.header)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestAuthenticate_BlacklistFailure(t *testing.T) {
	tokens := auth.NewTokenManager("s3cret", time.Hour)
	token, err := tokens.Issue("u1", "admin")
	require.NoError(t, err)

	core, logs := observer.New(zapcore.InfoLevel)
	r := newRouter(tokens, stubRevocations{err: errors.New("mongo down")}, zap.New(core), "admin")
	w := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries := logs.FilterMessage("token blacklist lookup failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "mongo down", entries[0].ContextMap()["error"])
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(logger.RequestIDKey))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
}
