// Package api exposes the page service over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/domain"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/service"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/sitemap"
)

// Response messages shared with existing clients.
const (
	MsgGenerated   = "SEO page generated successfully"
	MsgUpdated     = "Product updated successfully"
	MsgDeleted     = "Product deleted successfully"
	MsgNotFound    = "Product not found"
	MsgPinged      = "Successfully pinged search engines about sitemap update"
	msgPingFailure = "Failed to ping search engines: "
)

// PageService is the behavior the handlers need. *service.PageService
// satisfies it.
type PageService interface {
	Generate(ctx context.Context, in domain.ProductInput) (*service.GenerateResult, error)
	Get(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Product, error)
	Delete(ctx context.Context, slug string) error
	Sitemap(ctx context.Context) ([]byte, error)
	PingSearchEngines(ctx context.Context) error
}

// GenerateResponse is the body of a successful generate call.
type GenerateResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Source  string          `json:"source"`
	Product *domain.Product `json:"product"`
}

// StatusResponse is the body of delete and ping calls.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Handler serves the page endpoints.
type Handler struct {
	svc     PageService
	log     logger.Logger
	version string
}

// NewHandler creates a Handler.
func NewHandler(svc PageService, log logger.Logger, version string) *Handler {
	return &Handler{svc: svc, log: log, version: version}
}

// Root reports the service name and version.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "SEO Page Generator API",
		"version": h.version,
		"status":  "healthy",
	})
}

// Generate builds and stores the page for the posted product.
func (h *Handler) Generate(c *gin.Context) {
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.log.Debug("Invalid request body", logger.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	result, err := h.svc.Generate(c.Request.Context(), in)
	if errors.Is(err, service.ErrInvalidSlug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_SLUG"})
		return
	}
	if err != nil {
		h.log.Error("Failed to generate SEO page",
			logger.String("name", in.Name),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate SEO page"})
		return
	}

	msg := MsgUpdated
	if result.Created {
		msg = MsgGenerated
	}
	c.JSON(http.StatusOK, GenerateResponse{
		Success: true,
		Message: msg,
		Source:  string(result.Source),
		Product: result.Product,
	})
}

// Get returns one page.
func (h *Handler) Get(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.svc.Get(c.Request.Context(), slug)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": MsgNotFound})
		return
	}
	if err != nil {
		h.log.Error("Failed to get product", logger.String("slug", slug), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// List returns pages newest first, optionally paged with limit and offset.
func (h *Handler) List(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset"})
		return
	}

	products, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error("Failed to list products", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// Delete removes one page.
func (h *Handler) Delete(c *gin.Context) {
	slug := c.Param("slug")

	err := h.svc.Delete(c.Request.Context(), slug)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": MsgNotFound})
		return
	}
	if err != nil {
		h.log.Error("Failed to delete product", logger.String("slug", slug), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Success: true, Message: MsgDeleted})
}

// Sitemap serves sitemap.xml.
func (h *Handler) Sitemap(c *gin.Context) {
	body, err := h.svc.Sitemap(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to build sitemap", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sitemap"})
		return
	}
	c.Data(http.StatusOK, sitemap.ContentType, body)
}

// Ping notifies search engines. Failures are reported in the body with a 200.
func (h *Handler) Ping(c *gin.Context) {
	if err := h.svc.PingSearchEngines(c.Request.Context()); err != nil {
		c.JSON(http.StatusOK, StatusResponse{Success: false, Message: msgPingFailure + err.Error()})
		return
	}
	c.JSON(http.StatusOK, StatusResponse{Success: true, Message: MsgPinged})
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New("must be a non-negative integer")
	}
	return n, nil
}
