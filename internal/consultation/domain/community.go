// Package domain provides the core data model for the consultation ranking
// pipeline: the community catalog row, the client requirements extracted
// from a consultation, and the result returned to collaborators.
package domain

// Care levels, the closed set a community and a client's requirements must
// agree on.
const (
	CareLevelIndependentLiving = "Independent Living"
	CareLevelAssistedLiving    = "Assisted Living"
	CareLevelMemoryCare        = "Memory Care"
)

// IsKnownCareLevel reports whether level is one of the three supported tiers.
func IsKnownCareLevel(level string) bool {
	switch level {
	case CareLevelIndependentLiving, CareLevelAssistedLiving, CareLevelMemoryCare:
		return true
	default:
		return false
	}
}

// Apartment type tags, the closed set apartment_type_category and
// apartment_preference are normalized into.
const (
	ApartmentStudio           = "studio"
	Apartment1BR              = "1BR"
	Apartment2BR              = "2BR"
	ApartmentDoubleOccupancy  = "double-occupancy"
	ApartmentUnknown          = "unknown"
)

// Timeline buckets a client's urgency is normalized into.
const (
	TimelineImmediate = "immediate"
	TimelineNearTerm  = "near-term"
	TimelineFlexible  = "flexible"
)

// UpfrontCosts holds the one-time charges a community bills on move-in.
type UpfrontCosts struct {
	Deposit         float64
	MoveInFee       float64
	CommunityFee    float64
	PetFee          float64
	SecondPersonFee float64
	// SecondPersonFeeKnown distinguishes "no second-person fee" (0) from
	// "not reported" (infinite cost in the couple-suitability ranker).
	SecondPersonFeeKnown bool
}

// Community is one row of the catalog, with derived fields computed at
// load time (§4.1).
type Community struct {
	CommunityID           int
	CareLevel             string
	MonthlyFee            float64
	Upfront               UpfrontCosts
	ZIPCode               string
	ApartmentTypeCategory string
	WaitlistStatus        string
	AvailabilityScore     int // 0..99, lower = sooner available
	WorksWithPlacement    bool
	ContractRate          float64
	WillingnessScore      int // 0 or 10, derived from WorksWithPlacement
	Enhanced              bool
	Enriched              bool
}

// AmortizedUpfront returns (deposit + move_in_fee + community_fee +
// pet_fee-if-applicable) / 24, per the total-cost ranker (§4.6).
func (c Community) AmortizedUpfront(hasPet bool) float64 {
	total := c.Upfront.Deposit + c.Upfront.MoveInFee + c.Upfront.CommunityFee
	if hasPet {
		total += c.Upfront.PetFee
	}
	return total / 24
}

// ClientRequirements is the output of the Extractor (C5) and the input to
// the filter and rankers (C6-C10).
type ClientRequirements struct {
	ClientName           string
	CareLevel            string
	BudgetMonthly         *float64
	Timeline              string
	LocationPreference    string
	ResolvedZIPCode       string
	NeedsEnhanced         bool
	NeedsEnriched         bool
	IsCouple              bool
	HasPet                bool
	ApartmentPreference   string
	SpecialNotes          string
}

// HasBudget reports whether the client supplied a monthly budget.
func (r ClientRequirements) HasBudget() bool {
	return r.BudgetMonthly != nil
}
