package airank

import (
	"fmt"
	"strings"

	"portal_final_backend/internal/consultation/domain"
	"portal_final_backend/internal/consultation/rank"
)

// priorDimensions are the deterministic rankings (C7) already computed by
// the time the holistic ranker runs; availability and amenity run
// concurrently with holistic itself, so they aren't "prior" (§4.8).
var priorDimensions = []string{
	domain.DimensionBusiness,
	domain.DimensionCost,
	domain.DimensionDistance,
	domain.DimensionBudgetEfficiency,
	domain.DimensionCouple,
}

// renderPriorRanks formats each shortlisted community's already-computed
// deterministic ranks, one line per community, for the holistic ranker's
// prompt. A dimension with no signal for this consultation (not applicable)
// is rendered as "n/a" rather than its underlying neutral placeholder.
func renderPriorRanks(dims *rank.Dimensions, shortlist []domain.Community) string {
	var b strings.Builder
	for _, c := range shortlist {
		fmt.Fprintf(&b, "- id=%d", c.CommunityID)
		for _, dim := range priorDimensions {
			if r := dims.RankFor(dim, c.CommunityID); r != nil {
				fmt.Fprintf(&b, " %s=%.2f", dim, *r)
			} else {
				fmt.Fprintf(&b, " %s=n/a", dim)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderShortlist(shortlist []domain.Community) string {
	var b strings.Builder
	for _, c := range shortlist {
		fmt.Fprintf(&b, "- id=%d care_level=%s apartment=%s waitlist=%q availability_score=%d enhanced=%t enriched=%t pet_fee=%.0f\n",
			c.CommunityID, c.CareLevel, c.ApartmentTypeCategory, c.WaitlistStatus, c.AvailabilityScore, c.Enhanced, c.Enriched, c.Upfront.PetFee)
	}
	return b.String()
}

func availabilityInstruction(req domain.ClientRequirements) string {
	return fmt.Sprintf("Client timeline: %s. Judge how well each community's waitlist_status and availability_score match that urgency, beyond the raw numeric bucket.", req.Timeline)
}

func amenityInstruction(req domain.ClientRequirements) string {
	return fmt.Sprintf(
		"Client apartment_preference=%q, has_pet=%t, is_couple=%t, special_notes=%q. Judge fit on apartment type, pet policy, enhanced/enriched programming, and lifestyle amenities.",
		req.ApartmentPreference, req.HasPet, req.IsCouple, req.SpecialNotes,
	)
}

func holisticInstruction(req domain.ClientRequirements, priorRanks string) string {
	return fmt.Sprintf(
		"Full client profile: care_level=%s, timeline=%s, is_couple=%t, has_pet=%t, special_notes=%q.\nPrior per-dimension ranks for this shortlist:\n%s\nProduce an overall ordering reflecting holistic fit, and a short rationale per community.",
		req.CareLevel, req.Timeline, req.IsCouple, req.HasPet, req.SpecialNotes, priorRanks,
	)
}
