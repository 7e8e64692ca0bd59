package catalog

import (
	"context"
	"fmt"

	"github.com/sathishthangasamy/healthcare-product-selector/internal/domain"
)

// Column names are the contract with catalog files
var (
	productColumns = []string{
		"product_id", "name", "category", "suitable_for_conditions", "general_price_range", "description",
	}

	planColumns = []string{
		"PlanName", "Provider", "PlanType", "MonthlyPremium", "Deductible", "OOPMax",
		"NetworkSize", "FlexibilityScore", "SpecialistAccess", "ReferralNeeded", "GoodForConditions",
	}

	planTypeColumns = []string{"PlanType", "Description"}
)

// LoadProducts reads and decodes the product catalog at location.
// Every failure wraps domain.ErrDataUnavailable.
func (r *Reader) LoadProducts(ctx context.Context, location string) ([]domain.Product, error) {
	t, err := r.readTable(ctx, location, productColumns)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(t.rows))
	for _, row := range t.rows {
		products = append(products, domain.Product{
			ID:                    row.text("product_id"),
			Name:                  row.text("name"),
			Category:              row.text("category"),
			SuitableForConditions: row.text("suitable_for_conditions"),
			PriceRange:            row.text("general_price_range"),
			Description:           row.text("description"),
		})
	}
	return products, nil
}

// LoadPlans reads and decodes the insurance plan catalog at location.
// Every failure wraps domain.ErrDataUnavailable.
func (r *Reader) LoadPlans(ctx context.Context, location string) ([]domain.Plan, error) {
	t, err := r.readTable(ctx, location, planColumns)
	if err != nil {
		return nil, err
	}

	plans := make([]domain.Plan, 0, len(t.rows))
	for _, row := range t.rows {
		plan, err := decodePlan(row)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrDataUnavailable, location, err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// LoadPlanTypes reads and decodes the plan type definitions at location.
// Every failure wraps domain.ErrDataUnavailable.
func (r *Reader) LoadPlanTypes(ctx context.Context, location string) ([]domain.PlanTypeDefinition, error) {
	t, err := r.readTable(ctx, location, planTypeColumns)
	if err != nil {
		return nil, err
	}

	definitions := make([]domain.PlanTypeDefinition, 0, len(t.rows))
	for _, row := range t.rows {
		definitions = append(definitions, domain.PlanTypeDefinition{
			PlanType:    row.text("PlanType"),
			FullName:    row.text("FullName"),
			Description: row.text("Description"),
			Pros:        row.text("Pros"),
			Cons:        row.text("Cons"),
			BestFor:     row.text("BestFor"),
		})
	}
	return definitions, nil
}

func (r *Reader) readTable(ctx context.Context, location string, required []string) (*table, error) {
	data, err := r.Read(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}

	t, err := decodeTable(data, formatFor(location), required)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDataUnavailable, location, err)
	}
	return t, nil
}

func decodePlan(row record) (domain.Plan, error) {
	plan := domain.Plan{
		Name:              row.text("PlanName"),
		Provider:          row.text("Provider"),
		PlanType:          row.text("PlanType"),
		NetworkSize:       row.text("NetworkSize"),
		GoodForConditions: row.text("GoodForConditions"),
		Notes:             row.text("Notes"),
	}

	var err error
	if plan.MonthlyPremium, err = row.number("MonthlyPremium"); err != nil {
		return domain.Plan{}, err
	}
	if plan.Deductible, err = row.number("Deductible"); err != nil {
		return domain.Plan{}, err
	}
	if plan.OutOfPocketMax, err = row.number("OOPMax"); err != nil {
		return domain.Plan{}, err
	}
	if plan.FlexibilityScore, err = row.number("FlexibilityScore"); err != nil {
		return domain.Plan{}, err
	}
	if plan.SpecialistAccess, err = row.flag("SpecialistAccess"); err != nil {
		return domain.Plan{}, err
	}
	if plan.ReferralNeeded, err = row.flag("ReferralNeeded"); err != nil {
		return domain.Plan{}, err
	}
	return plan, nil
}
