package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/ministry-booking-api/internal/models"
)

func performWithClaims(t *testing.T, claims *models.JWTClaims, mw gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	if claims != nil {
		r.Use(func(c *gin.Context) {
			c.Set(ContextUserKey, claims)
			c.Next()
		})
	}
	r.GET("/protected", mw, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	return rec
}

func TestRequireRolesAllows(t *testing.T) {
	claims := &models.JWTClaims{UserID: "u1", Role: models.RoleAdmin}
	rec := performWithClaims(t, claims, RequireRoles(models.RoleSuperAdmin, models.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesForbidsOtherRole(t *testing.T) {
	claims := &models.JWTClaims{UserID: "u1", Role: models.RoleAdmin}
	rec := performWithClaims(t, claims, RequireRoles(models.RoleSuperAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesRejectsAnonymous(t *testing.T) {
	rec := performWithClaims(t, nil, RequireRoles(models.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
