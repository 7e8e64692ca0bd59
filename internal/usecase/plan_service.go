package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sathishthangasamy/healthcare-product-selector/internal/domain"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/metrics"
)

// defaultPlanLimit matches the "top 5" display of the plan finder
const defaultPlanLimit = 5

// PlanServiceConfig holds configuration for the plan service
type PlanServiceConfig struct {
	// ResultLimit caps the number of returned plans; 0 selects the default of 5
	ResultLimit int
}

// PlanService binds the plan catalog to the selection engine
type PlanService struct {
	catalog     domain.PlanCatalog
	normalizer  *QueryNormalizer
	resultLimit int
	logger      *zap.Logger
}

// NewPlanService creates a new plan service with dependencies
func NewPlanService(catalog domain.PlanCatalog, config PlanServiceConfig, logger *zap.Logger) *PlanService {
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := config.ResultLimit
	if limit <= 0 {
		limit = defaultPlanLimit
	}

	return &PlanService{
		catalog:     catalog,
		normalizer:  NewQueryNormalizer(logger),
		resultLimit: limit,
		logger:      logger,
	}
}

// Search filters and ranks plans for a query. limit overrides the configured result
// limit when positive. An unavailable catalog yields an empty result with a notice.
func (s *PlanService) Search(ctx context.Context, query domain.PlanQuery, limit int) (*domain.SearchResult[domain.Plan], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plans, err := s.catalog.Plans()
	if err != nil {
		s.logger.Warn("plan catalog unavailable", zap.Error(err))
		metrics.ObserveSelection(metrics.CatalogPlans, 0, false)
		return &domain.SearchResult[domain.Plan]{
			Items:  []*domain.Plan{},
			Notice: domain.NoticeCatalogUnavailable,
		}, nil
	}

	normalized := s.normalizer.NormalizePlanQuery(query, PlanTypes(plans))
	matches := SelectPlans(plans, normalized)

	if ce := s.logger.Check(zap.DebugLevel, "selected plans"); ce != nil {
		ce.Write(
			zap.String("preferred_type", normalized.PreferredType),
			zap.String("priorities", joinPriorities(normalized.Priorities)),
			zap.String("conditions", normalized.Conditions),
			zap.Int("matches", len(matches)),
		)
	}
	metrics.ObserveSelection(metrics.CatalogPlans, len(matches), true)

	effective := s.resultLimit
	if limit > 0 {
		effective = limit
	}

	result := &domain.SearchResult[domain.Plan]{
		Items:            truncate(matches, effective),
		Total:            len(matches),
		CatalogAvailable: true,
	}
	result.Count = len(result.Items)
	if result.Total == 0 {
		result.Notice = domain.NoticeNoPlans
	}
	return result, nil
}

// List returns the whole plan catalog
func (s *PlanService) List(ctx context.Context) ([]domain.Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.catalog.Plans()
}

// PlanType returns the definition of a plan type
func (s *PlanService) PlanType(ctx context.Context, planType string) (*domain.PlanTypeDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	planType = strings.TrimSpace(planType)
	if planType == "" {
		return nil, fmt.Errorf("%w: plan type is required", domain.ErrInvalidRequest)
	}

	definitions, err := s.catalog.PlanTypes()
	if err != nil {
		return nil, err
	}

	return GetPlanTypeDetails(definitions, planType)
}

func joinPriorities(priorities []domain.Priority) string {
	names := make([]string, len(priorities))
	for i, p := range priorities {
		names[i] = string(p)
	}
	return strings.Join(names, ",")
}
