package domain

// PlanTypeAny is the plan type selector meaning "no type filter"
const PlanTypeAny = "Any"

// KnownPlanTypes lists the plan types offered for selection
var KnownPlanTypes = []string{"HMO", "PPO", "EPO", "POS", "HDHP"}

// Priority is a named user preference that maps onto a plan scoring term
type Priority string

const (
	PriorityLowPremium       Priority = "Low Monthly Premium"
	PriorityLowDeductible    Priority = "Low Deductible"
	PriorityMaxFlexibility   Priority = "Max Flexibility"
	PrioritySpecialistAccess Priority = "Easy Specialist Access"
	PriorityBroadNetwork     Priority = "Broad Network"
)

// Priorities lists every supported priority in display order
var Priorities = []Priority{
	PriorityLowPremium,
	PriorityLowDeductible,
	PriorityMaxFlexibility,
	PrioritySpecialistAccess,
	PriorityBroadNetwork,
}

// Valid reports whether p is a supported priority
func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// Plan is a single row of the insurance plan catalog
type Plan struct {
	Name              string  `json:"planName" yaml:"PlanName"`
	Provider          string  `json:"provider" yaml:"Provider"`
	PlanType          string  `json:"planType" yaml:"PlanType"`
	MonthlyPremium    float64 `json:"monthlyPremium" yaml:"MonthlyPremium"`
	Deductible        float64 `json:"deductible" yaml:"Deductible"`
	OutOfPocketMax    float64 `json:"outOfPocketMax" yaml:"OOPMax"`
	NetworkSize       string  `json:"networkSize" yaml:"NetworkSize"`
	FlexibilityScore  float64 `json:"flexibilityScore" yaml:"FlexibilityScore"`
	SpecialistAccess  bool    `json:"specialistAccess" yaml:"SpecialistAccess"`
	ReferralNeeded    bool    `json:"referralNeeded" yaml:"ReferralNeeded"`
	GoodForConditions string  `json:"goodForConditions" yaml:"GoodForConditions"`
	Notes             string  `json:"notes,omitempty" yaml:"Notes"`
}

// PlanQuery holds the user inputs for one plan selection
type PlanQuery struct {
	PreferredType string     `json:"preferredType,omitempty"`
	Priorities    []Priority `json:"priorities,omitempty"`
	Conditions    string     `json:"conditions,omitempty"`
}

// PlanTypeDefinition explains one plan type (HMO, PPO, ...)
type PlanTypeDefinition struct {
	PlanType    string `json:"planType" yaml:"PlanType"`
	FullName    string `json:"fullName,omitempty" yaml:"FullName"`
	Description string `json:"description" yaml:"Description"`
	Pros        string `json:"pros,omitempty" yaml:"Pros"`
	Cons        string `json:"cons,omitempty" yaml:"Cons"`
	BestFor     string `json:"bestFor,omitempty" yaml:"BestFor"`
}
