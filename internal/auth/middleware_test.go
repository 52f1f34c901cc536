package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func adminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", AuthMiddleware(), AdminMiddleware(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return router
}

func request(t *testing.T, router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminRouteAcceptsAdminToken(t *testing.T) {
	InitJWT("test-secret")
	router := adminRouter()

	token, err := GenerateToken(7, true)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	w := request(t, router, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for admin token, got %d: %s", w.Code, w.Body.String())
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 7 || !claims.IsAdmin {
		t.Errorf("claims round-trip: got userID=%d isAdmin=%v", claims.UserID, claims.IsAdmin)
	}
}

func TestAdminRouteRejectsNonAdminToken(t *testing.T) {
	InitJWT("test-secret")
	router := adminRouter()

	token, err := GenerateToken(8, false)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	w := request(t, router, "Bearer "+token)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin token, got %d", w.Code)
	}
}

func TestAdminRouteRejectsBadAuthorization(t *testing.T) {
	InitJWT("test-secret")
	router := adminRouter()

	if w := request(t, router, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for missing header, got %d", w.Code)
	}
	if w := request(t, router, "Bearer not-a-token"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for garbage token, got %d", w.Code)
	}
	if w := request(t, router, "Token abc"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for non-bearer scheme, got %d", w.Code)
	}
}

func TestTokenRejectedUnderDifferentSecret(t *testing.T) {
	InitJWT("first-secret")
	token, err := GenerateToken(9, true)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	InitJWT("second-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Error("expected validation to fail after secret rotation")
	}
}
