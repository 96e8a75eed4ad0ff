package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pilates_reserva/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func adminRouter(role string, superuser bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// Stand-in for RequireAuth, which normally loads these from the session.
	router.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, uint(1))
		c.Set(middleware.CtxRole, role)
		c.Set(middleware.CtxSuperuser, superuser)
	})
	router.GET("/administrador/", middleware.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		superuser  bool
		wantStatus int
	}{
		{"admin role", "administrador", false, http.StatusOK},
		{"admin role uppercase", "Administrador", false, http.StatusOK},
		{"superuser with client role", "cliente", true, http.StatusOK},
		{"client", "cliente", false, http.StatusForbidden},
		{"empty role", "", false, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := adminRouter(tt.role, tt.superuser)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/administrador/", nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireAuthWithoutCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/usuarios/", middleware.RequireAuth(nil, 0), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/usuarios/", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Debes iniciar sesión.")
}
