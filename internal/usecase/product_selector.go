package usecase

import (
	"strings"

	"github.com/sathishthangasamy/healthcare-product-selector/internal/domain"
)

// defaultChildDenylist holds product name fragments considered unsuitable for children.
// This approximates age-appropriateness by name; products carry no age attribute.
var defaultChildDenylist = []string{
	"Blood Pressure Monitor",
	"Glucose Meter Kit",
	"Multivitamin (Adult)",
}

// AgeDenylist maps an age group to product name fragments excluded for it
type AgeDenylist map[domain.AgeGroup][]string

// DefaultAgeDenylist returns the denylist used when none is configured
func DefaultAgeDenylist() AgeDenylist {
	return AgeDenylist{
		domain.AgeGroupChild: append([]string(nil), defaultChildDenylist...),
	}
}

// excludes reports whether name is denied for the age group
func (d AgeDenylist) excludes(group domain.AgeGroup, name string) bool {
	for _, fragment := range d[group] {
		if fragment != "" && containsFold(name, fragment) {
			return true
		}
	}
	return false
}

// SelectProducts filters the product catalog for a query and returns matching
// products in catalog order. The result references catalog rows; the catalog is not modified.
//
// Filters, all of which must pass:
//   - category: exact match unless empty or "All"
//   - symptom: case-insensitive substring of the suitable-for-conditions OR description field
//   - condition: case-insensitive substring of the suitable-for-conditions field
//   - age group: the product name must not contain a denylisted fragment for the group
func SelectProducts(catalog []domain.Product, query domain.ProductQuery, denylist AgeDenylist) []*domain.Product {
	symptom := strings.TrimSpace(query.Symptom)
	condition := strings.TrimSpace(query.Condition)
	category := query.Category
	filterCategory := category != "" && category != domain.CategoryAll

	result := make([]*domain.Product, 0, len(catalog))
	for i := range catalog {
		p := &catalog[i]

		if filterCategory && p.Category != category {
			continue
		}
		if symptom != "" && !containsAnyFold(symptom, p.SuitableForConditions, p.Description) {
			continue
		}
		if condition != "" && !containsFold(p.SuitableForConditions, condition) {
			continue
		}
		if query.AgeGroup != domain.AgeGroupNone && denylist.excludes(query.AgeGroup, p.Name) {
			continue
		}

		result = append(result, p)
	}

	return result
}

// ProductCategories returns the distinct categories of the catalog in first-seen order
func ProductCategories(catalog []domain.Product) []string {
	seen := make(map[string]bool, len(catalog))
	categories := make([]string, 0)
	for _, p := range catalog {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}
