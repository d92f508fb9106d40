package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"taxiq/internal/domain"
	"taxiq/internal/middleware"
	"taxiq/internal/service"
)

// ──────────────────────────────────────────────
// 8. ADMIN ROUTE ACCESS
// ──────────────────────────────────────────────

func newAdminRouteFixture(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := service.NewAuthService(NewMockCustomerRepository(), NewMockDriverRepository(),
		"test-secret", time.Hour, "admin@example.com", "admin-pass")

	router := gin.New()
	router.GET("/v1/admin/reports",
		middleware.Auth(authService),
		middleware.RequireRole(domain.RoleAdmin),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"months": []string{}}) },
	)

	return router, authService
}

func adminRouteStatus(router *gin.Engine, token string) int {
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/reports", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec.Code
}

func TestAdminLogin_TokenReachesAdminRoute(t *testing.T) {
	t.Parallel()

	router, authService := newAdminRouteFixture(t)

	result, err := authService.LoginAdmin("admin@example.com", "admin-pass")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}

	if status := adminRouteStatus(router, result.Token); status != http.StatusOK {
		t.Errorf("expected 200 for admin token, got %d", status)
	}
}

func TestAdminRoute_NonAdminRoles_Forbidden(t *testing.T) {
	t.Parallel()

	router, authService := newAdminRouteFixture(t)

	for _, role := range []domain.Role{domain.RoleCustomer, domain.RoleDriver} {
		result, err := authService.IssueToken("subject-1", role)
		if err != nil {
			t.Fatalf("issue %s token: %v", role, err)
		}
		if status := adminRouteStatus(router, result.Token); status != http.StatusForbidden {
			t.Errorf("role %s: expected 403, got %d", role, status)
		}
	}
}

func TestAdminRoute_MissingToken_Unauthorized(t *testing.T) {
	t.Parallel()

	router, _ := newAdminRouteFixture(t)

	if status := adminRouteStatus(router, ""); status != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", status)
	}
}
