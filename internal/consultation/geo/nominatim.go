package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"portal_final_backend/platform/apperr"
)

const nominatimSearchURL = "https://nominatim.openstreetmap.org/search"

// NominatimResolver is a geo.ExternalResolver backed by the OpenStreetMap
// Nominatim search API, looked up by postal code (§4.2 "Location Resolver").
type NominatimResolver struct {
	client  *http.Client
	baseURL string
}

// NewNominatimResolver builds a resolver with a bounded per-call timeout;
// the Geocoder's own rate limiter is what keeps calls to one per second,
// not this client's timeout.
func NewNominatimResolver() *NominatimResolver {
	return &NominatimResolver{client: &http.Client{Timeout: 5 * time.Second}, baseURL: nominatimSearchURL}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve looks up the centroid of a US postal code via Nominatim.
func (r *NominatimResolver) Resolve(ctx context.Context, postalCode string) (Coordinates, error) {
	base := r.baseURL
	if base == "" {
		base = nominatimSearchURL
	}
	return r.resolveAt(ctx, postalCode, base)
}

func (r *NominatimResolver) resolveAt(ctx context.Context, postalCode, baseURL string) (Coordinates, error) {
	params := url.Values{}
	params.Add("postalcode", postalCode)
	params.Add("country", "us")
	params.Add("format", "json")
	params.Add("limit", "1")

	reqURL := fmt.Sprintf("%s?%s", baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Coordinates{}, err
	}
	req.Header.Set("User-Agent", "ConsultationPipeline/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return Coordinates{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, apperr.Internal(fmt.Sprintf("nominatim upstream error: %d", resp.StatusCode))
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Coordinates{}, err
	}
	if len(results) == 0 {
		return Coordinates{}, apperr.NotFound("postal code not found: " + postalCode)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinates{}, err
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinates{}, err
	}
	return Coordinates{Lat: lat, Lon: lon}, nil
}

var _ ExternalResolver = (*NominatimResolver)(nil)
