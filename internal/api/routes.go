package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	infragin "github.com/jonesrussell/north-cloud/seo-generator/infrastructure/gin"
)

// RouteOptions configures SetupRoutes.
type RouteOptions struct {
	// JWTSecret guards the write routes. Empty leaves them open.
	JWTSecret string
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// Middleware runs before every service route.
	Middleware []gin.HandlerFunc
}

// SetupRoutes registers the service routes on router. Health routes are
// registered by the server builder.
func SetupRoutes(router *gin.Engine, h *Handler, opts RouteOptions) {
	if len(opts.Middleware) > 0 {
		router.Use(opts.Middleware...)
	}

	router.GET("/", h.Root)
	router.GET("/sitemap.xml", h.Sitemap)
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	v1 := router.Group("/api/v1")
	v1.GET("/products", h.List)
	v1.GET("/products/:slug", h.Get)

	v1Write := infragin.ProtectedGroup(v1, "", opts.JWTSecret)
	v1Write.POST("/generate", h.Generate)
	v1Write.DELETE("/products/:slug", h.Delete)
	v1Write.POST("/sitemap/ping", h.Ping)

	// Paths kept for clients of the first release.
	router.GET("/products", h.List)
	router.GET("/product/:slug", h.Get)

	legacyWrite := infragin.ProtectedGroup(router, "", opts.JWTSecret)
	legacyWrite.POST("/generate", h.Generate)
	legacyWrite.DELETE("/product/:slug", h.Delete)
	legacyWrite.POST("/ping-google", h.Ping)
}
