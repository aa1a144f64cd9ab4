package rank

import (
	"context"

	"portal_final_backend/internal/consultation/domain"
)

// DistanceResolver is the subset of the Geocoder (C2) the distance ranker
// depends on.
type DistanceResolver interface {
	DistanceMiles(ctx context.Context, fromZIP, toZIP string) (float64, error)
}

// DistanceResult is the distance ranker's RankingResult plus the resolved
// miles per community, for the key_metrics/explanations the aggregator
// needs (§4.9).
type DistanceResult struct {
	Ranking domain.RankingResult
	Miles   map[int]*float64 // nil = unknown
}

// Distance ranks communities ascending by geodesic distance from the
// client's resolved ZIP. A community with no resolvable distance (missing
// client ZIP, missing/unrecognized community ZIP, or a geocode failure)
// sorts to the end, average-tied with any other unknowns (§4.6 "Distance
// ranker", §4.2 "Policy").
func Distance(ctx context.Context, candidates []domain.Community, clientZIP string, geocoder DistanceResolver) DistanceResult {
	miles := make(map[int]*float64, len(candidates))
	var known []scoredCommunity
	var unknown []int

	for _, c := range candidates {
		if clientZIP == "" || c.ZIPCode == "" {
			unknown = append(unknown, c.CommunityID)
			miles[c.CommunityID] = nil
			continue
		}
		d, err := geocoder.DistanceMiles(ctx, clientZIP, c.ZIPCode)
		if err != nil {
			unknown = append(unknown, c.CommunityID)
			miles[c.CommunityID] = nil
			continue
		}
		known = append(known, scoredCommunity{id: c.CommunityID, score: d})
		miles[c.CommunityID] = domain.Rank(d)
	}

	return DistanceResult{
		Ranking: rankAscendingWithTrailingUnknown(known, unknown),
		Miles:   miles,
	}
}
