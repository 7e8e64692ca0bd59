package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/sathishthangasamy/healthcare-product-selector/internal/domain"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/metrics"
)

// Sources names the location of each catalog
type Sources struct {
	Products  string
	Plans     string
	PlanTypes string
}

// Store holds the catalogs resident for the process lifetime.
// It is written once by Load or NewStore and only read afterwards, so it is safe
// for concurrent use without locking.
type Store struct {
	products     []domain.Product
	productsErr  error
	plans        []domain.Plan
	plansErr     error
	planTypes    []domain.PlanTypeDefinition
	planTypesErr error
}

// NewStore creates a store over already loaded catalogs
func NewStore(products []domain.Product, plans []domain.Plan, planTypes []domain.PlanTypeDefinition) *Store {
	return &Store{products: products, plans: plans, planTypes: planTypes}
}

// Load reads every catalog once. A catalog that fails to load is kept as unavailable
// and reported through its accessor; Load itself never fails.
func Load(ctx context.Context, reader *Reader, sources Sources, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{}
	s.products, s.productsErr = reader.LoadProducts(ctx, sources.Products)
	s.plans, s.plansErr = reader.LoadPlans(ctx, sources.Plans)
	s.planTypes, s.planTypesErr = reader.LoadPlanTypes(ctx, sources.PlanTypes)

	report(logger, metrics.CatalogProducts, sources.Products, len(s.products), s.productsErr)
	report(logger, metrics.CatalogPlans, sources.Plans, len(s.plans), s.plansErr)
	report(logger, metrics.CatalogPlanTypes, sources.PlanTypes, len(s.planTypes), s.planTypesErr)

	return s
}

func report(logger *zap.Logger, name, location string, count int, err error) {
	metrics.CatalogItems.WithLabelValues(name).Set(float64(count))
	if err != nil {
		metrics.CatalogLoadErrorsTotal.WithLabelValues(name).Inc()
		logger.Warn("catalog unavailable",
			zap.String("catalog", name),
			zap.String("source", location),
			zap.Error(err),
		)
		return
	}
	logger.Info("catalog loaded",
		zap.String("catalog", name),
		zap.String("source", location),
		zap.Int("items", count),
	)
}

// Products implements domain.ProductCatalog
func (s *Store) Products() ([]domain.Product, error) {
	if s.productsErr != nil {
		return nil, s.productsErr
	}
	return s.products, nil
}

// Plans implements domain.PlanCatalog
func (s *Store) Plans() ([]domain.Plan, error) {
	if s.plansErr != nil {
		return nil, s.plansErr
	}
	return s.plans, nil
}

// PlanTypes implements domain.PlanCatalog
func (s *Store) PlanTypes() ([]domain.PlanTypeDefinition, error) {
	if s.planTypesErr != nil {
		return nil, s.planTypesErr
	}
	return s.planTypes, nil
}

// Status reports which catalogs are available
func (s *Store) Status() map[string]bool {
	return map[string]bool{
		metrics.CatalogProducts:  s.productsErr == nil,
		metrics.CatalogPlans:     s.plansErr == nil,
		metrics.CatalogPlanTypes: s.planTypesErr == nil,
	}
}
