package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sathishthangasamy/healthcare-product-selector/internal/domain"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/logger"
)

const (
	serviceName    = "healthcare-product-selector"
	serviceVersion = "1.0.0"
)

// ProductFinder is the product use case the handler depends on
type ProductFinder interface {
	Search(ctx context.Context, query domain.ProductQuery, limit int) (*domain.SearchResult[domain.Product], error)
	List(ctx context.Context) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// PlanFinder is the plan use case the handler depends on
type PlanFinder interface {
	Search(ctx context.Context, query domain.PlanQuery, limit int) (*domain.SearchResult[domain.Plan], error)
	List(ctx context.Context) ([]domain.Plan, error)
	PlanType(ctx context.Context, planType string) (*domain.PlanTypeDefinition, error)
}

// CatalogStatus reports which catalogs loaded
type CatalogStatus interface {
	Status() map[string]bool
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products ProductFinder
	plans    PlanFinder
	status   CatalogStatus
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(products ProductFinder, plans PlanFinder, status CatalogStatus, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		products: products,
		plans:    plans,
		status:   status,
		logger:   log,
	}
}

// ProductSearchRequest is the body of POST /api/v1/products/search
type ProductSearchRequest struct {
	Symptom   string `json:"symptom"`
	Condition string `json:"condition"`
	Category  string `json:"category"`
	AgeGroup  string `json:"ageGroup"`
	Limit     int    `json:"limit" binding:"min=0"`
}

// PlanSearchRequest is the body of POST /api/v1/plans/search
type PlanSearchRequest struct {
	PreferredType string   `json:"preferredType"`
	Priorities    []string `json:"priorities"`
	Conditions    string   `json:"conditions"`
	Limit         int      `json:"limit" binding:"min=0"`
}

// HealthCheck returns the health status of the API and of each catalog
func (h *Handler) HealthCheck(c *gin.Context) {
	status := "healthy"
	var catalogs map[string]bool
	if h.status != nil {
		catalogs = h.status.Status()
		for _, ok := range catalogs {
			if !ok {
				status = "degraded"
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"service":  serviceName,
		"version":  serviceVersion,
		"catalogs": catalogs,
	})
}

// ListProducts returns the whole product catalog
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		h.respondUnavailable(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(products),
		"total": len(products),
		"items": products,
	})
}

// SearchProducts filters the product catalog by symptom, condition, category and age group
func (h *Handler) SearchProducts(c *gin.Context) {
	var req ProductSearchRequest
	if !h.bind(c, &req) {
		return
	}

	query := domain.ProductQuery{
		Symptom:   req.Symptom,
		Condition: req.Condition,
		Category:  req.Category,
		AgeGroup:  domain.AgeGroup(req.AgeGroup),
	}

	result, err := h.products.Search(c.Request.Context(), query, req.Limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ProductCategories returns the categories present in the product catalog
func (h *Handler) ProductCategories(c *gin.Context) {
	categories, err := h.products.Categories(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrDataUnavailable) {
			c.JSON(http.StatusOK, gin.H{
				"categories": []string{},
				"notice":     domain.NoticeCatalogUnavailable,
			})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"all":        domain.CategoryAll,
		"categories": categories,
	})
}

// ListPlans returns the whole plan catalog
func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.plans.List(c.Request.Context())
	if err != nil {
		h.respondUnavailable(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(plans),
		"total": len(plans),
		"items": plans,
	})
}

// SearchPlans filters and ranks plans by preferred type, priorities and conditions
func (h *Handler) SearchPlans(c *gin.Context) {
	var req PlanSearchRequest
	if !h.bind(c, &req) {
		return
	}

	priorities := make([]domain.Priority, len(req.Priorities))
	for i, p := range req.Priorities {
		priorities[i] = domain.Priority(p)
	}

	query := domain.PlanQuery{
		PreferredType: req.PreferredType,
		Priorities:    priorities,
		Conditions:    req.Conditions,
	}

	result, err := h.plans.Search(c.Request.Context(), query, req.Limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// PlanPriorities lists the priorities accepted by plan search
func (h *Handler) PlanPriorities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"priorities": domain.Priorities,
	})
}

// GetPlanType returns the definition of one plan type
func (h *Handler) GetPlanType(c *gin.Context) {
	definition, err := h.plans.PlanType(c.Request.Context(), c.Param("type"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, definition)
}

// bind decodes the JSON body into req. An empty body is an empty query.
func (h *Handler) bind(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	h.requestLogger(c).Debug("invalid request body", zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{
		"error": "invalid request body: " + err.Error(),
	})
	return false
}

// respondUnavailable renders a load failure as an empty listing with a notice
func (h *Handler) respondUnavailable(c *gin.Context, err error) {
	if !errors.Is(err, domain.ErrDataUnavailable) {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  0,
		"total":  0,
		"items":  []any{},
		"notice": domain.NoticeCatalogUnavailable,
	})
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrPlanTypeNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrDataUnavailable):
		status, message = http.StatusServiceUnavailable, domain.NoticeCatalogUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status, message = http.StatusServiceUnavailable, "request cancelled"
	}

	log := h.requestLogger(c)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	} else {
		log.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	}

	c.JSON(status, gin.H{"error": message})
}

// requestLogger prefers the request-scoped logger set by RequestIDMiddleware
func (h *Handler) requestLogger(c *gin.Context) *zap.Logger {
	return logger.FromContextOr(c.Request.Context(), h.logger)
}
