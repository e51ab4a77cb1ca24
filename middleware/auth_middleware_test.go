package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAdminRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		setIsAdmin interface{}
		wantStatus int
	}{
		{name: "admin passes", setIsAdmin: true, wantStatus: http.StatusOK},
		{name: "non-admin forbidden", setIsAdmin: false, wantStatus: http.StatusForbidden},
		{name: "missing claim forbidden", setIsAdmin: nil, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(func(c *gin.Context) {
				if tt.setIsAdmin != nil {
					c.Set("is_admin", tt.setIsAdmin)
				}
				c.Next()
			})
			r.Use(AdminRequired())
			r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
