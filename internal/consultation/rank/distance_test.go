package rank

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"portal_final_backend/internal/consultation/domain"
)

type stubDistanceResolver struct {
	miles map[string]float64
}

func (s *stubDistanceResolver) DistanceMiles(ctx context.Context, fromZIP, toZIP string) (float64, error) {
	d, ok := s.miles[fromZIP+">"+toZIP]
	if !ok {
		return 0, errors.New("unresolvable")
	}
	return d, nil
}

func TestDistance_UnknownSortsToEndAndTies(t *testing.T) {
	resolver := &stubDistanceResolver{miles: map[string]float64{
		"02139>02139": 0,
		"02139>02108": 5,
	}}
	candidates := []domain.Community{
		{CommunityID: 1, ZIPCode: "02139"},
		{CommunityID: 2, ZIPCode: "02108"},
		{CommunityID: 3, ZIPCode: "99999"}, // unresolvable
		{CommunityID: 4, ZIPCode: ""},      // missing
	}

	res := Distance(context.Background(), candidates, "02139", resolver)

	assert.Equal(t, 1.0, *res.Ranking[1])
	assert.Equal(t, 2.0, *res.Ranking[2])
	assert.Equal(t, 3.5, *res.Ranking[3])
	assert.Equal(t, 3.5, *res.Ranking[4])
	assert.Nil(t, res.Miles[3])
	assert.Nil(t, res.Miles[4])
	assert.NotNil(t, res.Miles[1])
}

func TestDistance_NoClientZIPAllUnknown(t *testing.T) {
	resolver := &stubDistanceResolver{}
	candidates := []domain.Community{
		{CommunityID: 1, ZIPCode: "02139"},
		{CommunityID: 2, ZIPCode: "02108"},
	}
	res := Distance(context.Background(), candidates, "", resolver)
	assert.Equal(t, 1.5, *res.Ranking[1])
	assert.Equal(t, 1.5, *res.Ranking[2])
}
