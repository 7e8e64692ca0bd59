package usecase

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sathishthangasamy/healthcare-product-selector/internal/domain"
)

// QueryNormalizer cleans presenter input before it reaches the selection engine.
// Normalization is permissive: unknown selector values are coerced to "no filter"
// and nothing is ever rejected.
type QueryNormalizer struct {
	logger *zap.Logger
}

// NewQueryNormalizer creates a new query normalizer
func NewQueryNormalizer(logger *zap.Logger) *QueryNormalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryNormalizer{logger: logger}
}

// NormalizeProductQuery trims text inputs and drops a category or age group that
// is not recognised. A category is recognised when it is one of domain.KnownCategories
// or appears in catalogCategories; a recognised category with no rows still filters.
func (n *QueryNormalizer) NormalizeProductQuery(q domain.ProductQuery, catalogCategories []string) domain.ProductQuery {
	out := domain.ProductQuery{
		Symptom:   strings.TrimSpace(q.Symptom),
		Condition: strings.TrimSpace(q.Condition),
		Category:  strings.TrimSpace(q.Category),
		AgeGroup:  domain.AgeGroup(strings.TrimSpace(string(q.AgeGroup))),
	}

	if out.Category == domain.CategoryAll || !recognised(out.Category, domain.KnownCategories, catalogCategories) {
		if out.Category != "" && out.Category != domain.CategoryAll {
			n.logger.Debug("ignoring unknown product category", zap.String("category", out.Category))
		}
		out.Category = ""
	}

	if !out.AgeGroup.Valid() {
		n.logger.Debug("ignoring unknown age group", zap.String("age_group", string(out.AgeGroup)))
		out.AgeGroup = domain.AgeGroupNone
	}

	return out
}

// NormalizePlanQuery trims text inputs, drops an unrecognised plan type and
// removes unknown or repeated priorities while keeping their order. A plan type is
// recognised when it is one of domain.KnownPlanTypes or appears in catalogTypes.
func (n *QueryNormalizer) NormalizePlanQuery(q domain.PlanQuery, catalogTypes []string) domain.PlanQuery {
	out := domain.PlanQuery{
		PreferredType: strings.TrimSpace(q.PreferredType),
		Conditions:    strings.TrimSpace(q.Conditions),
	}

	if out.PreferredType == domain.PlanTypeAny || !recognised(out.PreferredType, domain.KnownPlanTypes, catalogTypes) {
		if out.PreferredType != "" && out.PreferredType != domain.PlanTypeAny {
			n.logger.Debug("ignoring unknown plan type", zap.String("plan_type", out.PreferredType))
		}
		out.PreferredType = ""
	}

	seen := make(map[domain.Priority]bool, len(q.Priorities))
	for _, p := range q.Priorities {
		p = domain.Priority(strings.TrimSpace(string(p)))
		if !p.Valid() {
			n.logger.Debug("ignoring unknown priority", zap.String("priority", string(p)))
			continue
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		out.Priorities = append(out.Priorities, p)
	}

	return out
}

func recognised(value string, fixed, fromCatalog []string) bool {
	return contains(fixed, value) || contains(fromCatalog, value)
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
