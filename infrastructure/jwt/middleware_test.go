package jwt_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/jwt"
)

const secret = "test-secret"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(jwt.Middleware(secret))
	router.DELETE("/products/:slug", func(c *gin.Context) {
		claims, ok := jwt.GetClaims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, claims.Subject)
	})
	return router
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	valid, err := jwt.Issue(secret, "catalog-admin", time.Hour)
	require.NoError(t, err)
	expired, err := jwt.Issue(secret, "catalog-admin", -time.Minute)
	require.NoError(t, err)
	foreign, err := jwt.Issue("other-secret", "catalog-admin", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid token", header: "Bearer " + valid, want: http.StatusOK},
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, want: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + expired, want: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + foreign, want: http.StatusUnauthorized},
	}

	router := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/products/ecoclean-detergent", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "catalog-admin", w.Body.String())
			}
		})
	}
}

func TestIssue_RequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := jwt.Issue("", "catalog-admin", time.Hour)
	assert.Error(t, err)
}
