// Package transport defines the HTTP request/response DTOs for the
// consultation HTTP surface (§6).
package transport

import "portal_final_backend/internal/consultation/domain"

// ProcessTextRequest is the JSON body of POST /api/process-text.
type ProcessTextRequest struct {
	Text       string `json:"text" validate:"required"`
	PushToCRM  bool   `json:"push_to_crm"`
	Language   string `json:"language"`
}

// CommunityRequest is the JSON body of POST/PUT /api/communities[/{id}].
type CommunityRequest struct {
	CommunityID         int     `json:"community_id"`
	CareLevel           string  `json:"care_level" validate:"required"`
	MonthlyFee          float64 `json:"monthly_fee" validate:"gte=0"`
	Deposit             float64 `json:"deposit"`
	MoveInFee           float64 `json:"move_in_fee"`
	CommunityFee        float64 `json:"community_fee"`
	PetFee              float64 `json:"pet_fee"`
	SecondPersonFee     float64 `json:"second_person_fee"`
	ZIPCode             string  `json:"zip_code"`
	ApartmentType       string  `json:"apartment_type"`
	WaitlistStatus      string  `json:"waitlist_status"`
	WorksWithPlacement  bool    `json:"works_with_placement"`
	ContractRate        float64 `json:"contract_rate"`
	Enhanced            bool    `json:"enhanced"`
	Enriched            bool    `json:"enriched"`
}

// ToCommunity converts a CommunityRequest into a domain.Community. Derived
// fields (availability_score, willingness_score, normalized apartment type)
// are recomputed by the Catalog Store on Upsert (§4.1).
func (r CommunityRequest) ToCommunity() domain.Community {
	return domain.Community{
		CommunityID:   r.CommunityID,
		CareLevel:     r.CareLevel,
		MonthlyFee:    r.MonthlyFee,
		ZIPCode:       r.ZIPCode,
		WaitlistStatus: r.WaitlistStatus,
		WorksWithPlacement: r.WorksWithPlacement,
		ContractRate:  r.ContractRate,
		Enhanced:      r.Enhanced,
		Enriched:      r.Enriched,
		ApartmentTypeCategory: r.ApartmentType,
		Upfront: domain.UpfrontCosts{
			Deposit:              r.Deposit,
			MoveInFee:            r.MoveInFee,
			CommunityFee:         r.CommunityFee,
			PetFee:               r.PetFee,
			SecondPersonFee:      r.SecondPersonFee,
			SecondPersonFeeKnown: true,
		},
	}
}

// CommunityResponse is the JSON shape of a catalog row in API responses.
type CommunityResponse struct {
	CommunityID           int     `json:"community_id"`
	CareLevel             string  `json:"care_level"`
	MonthlyFee            float64 `json:"monthly_fee"`
	Deposit               float64 `json:"deposit"`
	MoveInFee             float64 `json:"move_in_fee"`
	CommunityFee          float64 `json:"community_fee"`
	PetFee                float64 `json:"pet_fee"`
	SecondPersonFee       float64 `json:"second_person_fee,omitempty"`
	ZIPCode               string  `json:"zip_code"`
	ApartmentTypeCategory string  `json:"apartment_type_category"`
	WaitlistStatus        string  `json:"waitlist_status"`
	AvailabilityScore     int     `json:"availability_score"`
	WorksWithPlacement    bool    `json:"works_with_placement"`
	ContractRate          float64 `json:"contract_rate"`
	WillingnessScore      int     `json:"willingness_score"`
	Enhanced              bool    `json:"enhanced"`
	Enriched              bool    `json:"enriched"`
}

// FromCommunity converts a domain.Community to its wire representation.
func FromCommunity(c domain.Community) CommunityResponse {
	return CommunityResponse{
		CommunityID:           c.CommunityID,
		CareLevel:             c.CareLevel,
		MonthlyFee:            c.MonthlyFee,
		Deposit:               c.Upfront.Deposit,
		MoveInFee:             c.Upfront.MoveInFee,
		CommunityFee:          c.Upfront.CommunityFee,
		PetFee:                c.Upfront.PetFee,
		SecondPersonFee:       c.Upfront.SecondPersonFee,
		ZIPCode:               c.ZIPCode,
		ApartmentTypeCategory: c.ApartmentTypeCategory,
		WaitlistStatus:        c.WaitlistStatus,
		AvailabilityScore:     c.AvailabilityScore,
		WorksWithPlacement:    c.WorksWithPlacement,
		ContractRate:          c.ContractRate,
		WillingnessScore:      c.WillingnessScore,
		Enhanced:              c.Enhanced,
		Enriched:              c.Enriched,
	}
}

// RecommendationResponse is the JSON shape of one ranked community (§3, §6).
type RecommendationResponse struct {
	FinalRank         int                `json:"final_rank"`
	CommunityID       int                `json:"community_id"`
	CombinedRankScore float64            `json:"combined_rank_score"`
	KeyMetrics        KeyMetrics         `json:"key_metrics"`
	Rankings          map[string]*float64 `json:"rankings"`
	Explanations      map[string]string   `json:"explanations"`
}

// KeyMetrics is the "key metric snapshot" carried on each recommendation.
type KeyMetrics struct {
	MonthlyFee    float64  `json:"monthly_fee"`
	DistanceMiles *float64 `json:"distance_miles"`
	EstWaitlist   string   `json:"est_waitlist"`
}

// PerformanceMetricsResponse is the JSON shape of performance_metrics (§6).
type PerformanceMetricsResponse struct {
	Timings          []PhaseMetricResponse `json:"timings"`
	TokenCounts       TokenCounts          `json:"token_counts"`
	Costs             Costs                `json:"costs"`
	AIRankerDegraded  []string             `json:"ai_ranker_degraded"`
}

type PhaseMetricResponse struct {
	Phase      string  `json:"phase"`
	DurationMS float64 `json:"duration_ms"`
}

type TokenCounts struct {
	Input  int `json:"input"`
	Output int `json:"output"`
}

type Costs struct {
	TotalUSD float64 `json:"total_usd"`
}

// ConsultationResultResponse is the top-level result JSON (§6).
type ConsultationResultResponse struct {
	ClientInfo         ClientInfoResponse         `json:"client_info"`
	Recommendations    []RecommendationResponse   `json:"recommendations"`
	PerformanceMetrics PerformanceMetricsResponse `json:"performance_metrics"`
	CRMPushed          bool                       `json:"crm_pushed"`
	ConsultationID     string                     `json:"consultation_id,omitempty"`
	NoMatches          bool                       `json:"no_matches"`
}

// ClientInfoResponse is the extracted client requirements, as returned
// to collaborators.
type ClientInfoResponse struct {
	ClientName          string   `json:"client_name"`
	CareLevel           string   `json:"care_level"`
	BudgetMonthly       *float64 `json:"budget_monthly"`
	Timeline            string   `json:"timeline"`
	LocationPreference  string   `json:"location_preference"`
	NeedsEnhanced       bool     `json:"needs_enhanced"`
	NeedsEnriched       bool     `json:"needs_enriched"`
	IsCouple            bool     `json:"is_couple"`
	HasPet              bool     `json:"has_pet"`
	ApartmentPreference string   `json:"apartment_preference"`
}

// FromConsultationResult converts the domain result to its wire shape.
func FromConsultationResult(r domain.ConsultationResult) ConsultationResultResponse {
	recs := make([]RecommendationResponse, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		recs[i] = RecommendationResponse{
			FinalRank:         rec.FinalRank,
			CommunityID:       rec.CommunityID,
			CombinedRankScore: rec.CombinedRankScore,
			KeyMetrics: KeyMetrics{
				MonthlyFee:    rec.MonthlyFee,
				DistanceMiles: rec.DistanceMiles,
				EstWaitlist:   rec.EstWaitlist,
			},
			Rankings:     rec.Rankings,
			Explanations: rec.Explanations,
		}
	}

	timings := make([]PhaseMetricResponse, len(r.Metrics.Timings))
	for i, t := range r.Metrics.Timings {
		timings[i] = PhaseMetricResponse{Phase: t.Phase, DurationMS: t.DurationMS}
	}

	return ConsultationResultResponse{
		ClientInfo: ClientInfoResponse{
			ClientName:          r.ClientInfo.ClientName,
			CareLevel:           r.ClientInfo.CareLevel,
			BudgetMonthly:       r.ClientInfo.BudgetMonthly,
			Timeline:            r.ClientInfo.Timeline,
			LocationPreference:  r.ClientInfo.LocationPreference,
			NeedsEnhanced:       r.ClientInfo.NeedsEnhanced,
			NeedsEnriched:       r.ClientInfo.NeedsEnriched,
			IsCouple:            r.ClientInfo.IsCouple,
			HasPet:              r.ClientInfo.HasPet,
			ApartmentPreference: r.ClientInfo.ApartmentPreference,
		},
		Recommendations: recs,
		PerformanceMetrics: PerformanceMetricsResponse{
			Timings:          timings,
			TokenCounts:      TokenCounts{Input: r.Metrics.TotalTokensIn, Output: r.Metrics.TotalTokensOut},
			Costs:            Costs{TotalUSD: r.Metrics.TotalCostUSD},
			AIRankerDegraded: r.Metrics.AIRankerDegraded,
		},
		CRMPushed:      r.CRMPushed,
		ConsultationID: r.ConsultationID,
		NoMatches:      r.NoMatches,
	}
}
