package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"kyc-backend/internal/shared/auth"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth())
	router.GET("/api/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": UserIDFromContext(c),
			"email":  UserEmailFromContext(c),
		})
	})
	return router
}

func TestAuthRejectsMissingCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := protectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidTokenAndClearsCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := protectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-token"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	cleared := false
	for _, ck := range resp.Result().Cookies() {
		if ck.Name == CookieName && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("invalid token should clear the session cookie")
	}
}

func TestAuthAcceptsValidCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := protectedRouter()

	token, err := auth.SignJWT(auth.Claims{Sub: "user-1", Email: "owner@example.com"})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	body := resp.Body.String()
	if !strings.Contains(body, "user-1") || !strings.Contains(body, "owner@example.com") {
		t.Fatalf("identity missing from context: %s", body)
	}
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	router := protectedRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/protected", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}
