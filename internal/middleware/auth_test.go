package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/legalconnect/schedule-service/internal/config"
)

const testSecret = "test-secret"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: testSecret}

	r := gin.New()
	r.GET("/lawyer-only",
		AuthMiddleware(cfg),
		RequireRole(RoleLawyer),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": c.MustGet(ContextUserID)})
		})
	return r
}

func mintToken(t *testing.T, role string, sub uint) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  float64(sub),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestAuthMiddlewareRejectsAnonymous(t *testing.T) {
	r := newAuthRouter()

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"no header", "", "missing_authorization_header"},
		{"wrong scheme", "Basic abc", "invalid_authorization_header"},
		{"garbage token", "Bearer not.a.jwt", "invalid_token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/lawyer-only", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
			if !strings.Contains(w.Body.String(), tc.code) {
				t.Errorf("body = %s, want error_code %s", w.Body.String(), tc.code)
			}
		})
	}
}

func TestAuthMiddlewareRejectsUnknownRole(t *testing.T) {
	r := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/lawyer-only", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "admin", 1))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid_token_payload") {
		t.Errorf("body = %s, want invalid_token_payload", w.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	r := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/lawyer-only", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, RoleCitizen, 1))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), "insufficient_role") {
		t.Errorf("body = %s, want insufficient_role", w.Body.String())
	}
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	r := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/lawyer-only", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, RoleLawyer, 42))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "42") {
		t.Errorf("body = %s, want the subject id", w.Body.String())
	}
}
