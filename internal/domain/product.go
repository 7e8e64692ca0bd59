package domain

// CategoryAll is the category selector meaning "no category filter"
const CategoryAll = "All"

// KnownCategories lists the product categories offered for selection
var KnownCategories = []string{"OTC Medication", "Medical Device", "Supplement", "General Health"}

// AgeGroup is the user's age bracket
type AgeGroup string

const (
	AgeGroupNone   AgeGroup = ""
	AgeGroupChild  AgeGroup = "Child"
	AgeGroupAdult  AgeGroup = "Adult"
	AgeGroupSenior AgeGroup = "Senior"
)

// AgeGroups lists the recognised age groups in display order
var AgeGroups = []AgeGroup{AgeGroupChild, AgeGroupAdult, AgeGroupSenior}

// Valid reports whether g is a recognised age group (the empty group included)
func (g AgeGroup) Valid() bool {
	if g == AgeGroupNone {
		return true
	}
	for _, known := range AgeGroups {
		if g == known {
			return true
		}
	}
	return false
}

// Product is a single row of the healthcare product catalog
type Product struct {
	ID                    string `json:"productId" yaml:"product_id"`
	Name                  string `json:"name" yaml:"name"`
	Category              string `json:"category" yaml:"category"`
	SuitableForConditions string `json:"suitableForConditions" yaml:"suitable_for_conditions"`
	PriceRange            string `json:"generalPriceRange" yaml:"general_price_range"`
	Description           string `json:"description" yaml:"description"`
}

// ProductQuery holds the user inputs for one product selection
type ProductQuery struct {
	Symptom   string   `json:"symptom,omitempty"`
	Condition string   `json:"condition,omitempty"`
	Category  string   `json:"category,omitempty"`
	AgeGroup  AgeGroup `json:"ageGroup,omitempty"`
}
