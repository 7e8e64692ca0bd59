package usecase

import (
	"sort"

	"github.com/sathishthangasamy/healthcare-product-selector/internal/domain"
)

// Scoring constants for plan priorities
const (
	// Premium and deductible terms reach zero at these ceilings
	premiumCeiling    = 1000.0
	premiumDivisor    = 100.0
	deductibleCeiling = 5000.0
	deductibleDivisor = 500.0
	flexibilityWeight = 10.0
	specialistBonus   = 10.0
	broadNetworkBonus = 5.0
)

// scoredPlan pairs a catalog plan with its score while ranking
type scoredPlan struct {
	plan  *domain.Plan
	score float64
}

// SelectPlans filters and ranks the plan catalog for a query.
//
// Plans are kept when their type equals the preferred type (unless empty or "Any")
// and, when conditions text is given, when any of its comma-separated keywords is a
// case-insensitive substring of the good-for-conditions field. With one or more
// priorities the survivors are ordered by descending score; ties keep catalog order.
func SelectPlans(catalog []domain.Plan, query domain.PlanQuery) []*domain.Plan {
	preferred := query.PreferredType
	filterType := preferred != "" && preferred != domain.PlanTypeAny
	keywords := splitKeywords(query.Conditions)

	filtered := make([]*domain.Plan, 0, len(catalog))
	for i := range catalog {
		p := &catalog[i]

		if filterType && p.PlanType != preferred {
			continue
		}
		if len(keywords) > 0 && !matchesAnyKeyword(p.GoodForConditions, keywords) {
			continue
		}

		filtered = append(filtered, p)
	}

	if len(filtered) == 0 || len(query.Priorities) == 0 {
		return filtered
	}

	scored := make([]scoredPlan, len(filtered))
	for i, p := range filtered {
		scored[i] = scoredPlan{plan: p, score: ScorePlan(p, query.Priorities)}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})

	for i := range scored {
		filtered[i] = scored[i].plan
	}
	return filtered
}

// ScorePlan sums the scoring terms of every priority present.
// Unknown priorities contribute nothing and duplicates count once.
func ScorePlan(p *domain.Plan, priorities []domain.Priority) float64 {
	present := make(map[domain.Priority]bool, len(priorities))
	for _, pr := range priorities {
		present[pr] = true
	}

	score := 0.0
	if present[domain.PriorityLowPremium] {
		score += (premiumCeiling - p.MonthlyPremium) / premiumDivisor
	}
	if present[domain.PriorityLowDeductible] {
		score += (deductibleCeiling - p.Deductible) / deductibleDivisor
	}
	if present[domain.PriorityMaxFlexibility] {
		score += p.FlexibilityScore * flexibilityWeight
	}
	if present[domain.PrioritySpecialistAccess] {
		score += specialistBonus
	}
	if present[domain.PriorityBroadNetwork] {
		score += broadNetworkBonus
	}
	return score
}

// GetPlanTypeDetails returns the first definition for planType (exact match)
func GetPlanTypeDetails(definitions []domain.PlanTypeDefinition, planType string) (*domain.PlanTypeDefinition, error) {
	for i := range definitions {
		if definitions[i].PlanType == planType {
			return &definitions[i], nil
		}
	}
	return nil, domain.ErrPlanTypeNotFound
}

// PlanTypes returns the distinct plan types of the catalog in first-seen order
func PlanTypes(catalog []domain.Plan) []string {
	seen := make(map[string]bool, len(catalog))
	types := make([]string, 0)
	for _, p := range catalog {
		if p.PlanType == "" || seen[p.PlanType] {
			continue
		}
		seen[p.PlanType] = true
		types = append(types, p.PlanType)
	}
	return types
}
