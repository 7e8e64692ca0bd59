package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/sathishthangasamy/healthcare-product-selector/internal/domain"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/metrics"
)

// ProductServiceConfig holds configuration for the product service
type ProductServiceConfig struct {
	// ResultLimit caps the number of returned products; 0 means no cap
	ResultLimit int
	Denylist    AgeDenylist
}

// ProductService binds the product catalog to the selection engine
type ProductService struct {
	catalog     domain.ProductCatalog
	normalizer  *QueryNormalizer
	denylist    AgeDenylist
	resultLimit int
	logger      *zap.Logger
}

// NewProductService creates a new product service with dependencies
func NewProductService(catalog domain.ProductCatalog, config ProductServiceConfig, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}

	denylist := config.Denylist
	if denylist == nil {
		denylist = DefaultAgeDenylist()
	}

	limit := config.ResultLimit
	if limit < 0 {
		limit = 0
	}

	return &ProductService{
		catalog:     catalog,
		normalizer:  NewQueryNormalizer(logger),
		denylist:    denylist,
		resultLimit: limit,
		logger:      logger,
	}
}

// Search selects products for a query. limit overrides the configured result limit
// when positive. An unavailable catalog yields an empty result with a notice, not an error.
func (s *ProductService) Search(ctx context.Context, query domain.ProductQuery, limit int) (*domain.SearchResult[domain.Product], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	products, err := s.catalog.Products()
	if err != nil {
		s.logger.Warn("product catalog unavailable", zap.Error(err))
		metrics.ObserveSelection(metrics.CatalogProducts, 0, false)
		return &domain.SearchResult[domain.Product]{
			Items:  []*domain.Product{},
			Notice: domain.NoticeCatalogUnavailable,
		}, nil
	}

	normalized := s.normalizer.NormalizeProductQuery(query, ProductCategories(products))
	matches := SelectProducts(products, normalized, s.denylist)

	s.logger.Debug("selected products",
		zap.String("symptom", normalized.Symptom),
		zap.String("condition", normalized.Condition),
		zap.String("category", normalized.Category),
		zap.String("age_group", string(normalized.AgeGroup)),
		zap.Int("matches", len(matches)),
	)
	metrics.ObserveSelection(metrics.CatalogProducts, len(matches), true)

	result := &domain.SearchResult[domain.Product]{
		Items:            truncate(matches, s.effectiveLimit(limit)),
		Total:            len(matches),
		CatalogAvailable: true,
	}
	result.Count = len(result.Items)
	if result.Total == 0 {
		result.Notice = domain.NoticeNoProducts
	}
	return result, nil
}

// List returns the whole product catalog
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.catalog.Products()
}

// Categories returns the product categories present in the catalog
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return ProductCategories(products), nil
}

func (s *ProductService) effectiveLimit(requested int) int {
	if requested > 0 {
		return requested
	}
	return s.resultLimit
}

// truncate returns at most limit items; limit 0 keeps everything
func truncate[T any](items []*T, limit int) []*T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
