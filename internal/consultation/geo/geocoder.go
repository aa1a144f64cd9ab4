// Package geo implements the Geocoder (C2) and Location Resolver (C3):
// postal-code-to-coordinate lookup with caching and throttling, locality
// phrase resolution, and distance-in-miles computation (§4.2, §4.3).
package geo

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"portal_final_backend/platform/apperr"
	"portal_final_backend/platform/logger"
)

// Coordinates is a resolved WGS-84 point.
type Coordinates struct {
	Lat float64
	Lon float64
}

// ExternalResolver is the external geocoding capability (a maps provider, a
// local ZIP centroid table, whatever backs it) that Geocoder wraps with
// caching and rate limiting. Swapping ExternalResolver swaps providers
// without touching the rest of the pipeline.
type ExternalResolver interface {
	Resolve(ctx context.Context, postalCode string) (Coordinates, error)
}

// Geocoder is C2: it memoizes postal-code lookups in a bounded LRU and
// throttles calls that actually reach the external resolver to at most one
// per second (§4.2 "External rate limit").
type Geocoder struct {
	external ExternalResolver
	cache    *geocodeLRU
	limiter  *rate.Limiter
	log      *logger.Logger
}

// NewGeocoder builds a Geocoder. cacheSize and callsPerSecond come from
// GeocodeConfig.
func NewGeocoder(external ExternalResolver, cacheSize int, callsPerSecond float64, log *logger.Logger) *Geocoder {
	if callsPerSecond <= 0 {
		callsPerSecond = 1.0
	}
	return &Geocoder{
		external: external,
		cache:    newGeocodeLRU(cacheSize),
		limiter:  rate.NewLimiter(rate.Limit(callsPerSecond), 1),
		log:      log,
	}
}

// Geocode resolves a 5-digit postal code to coordinates, serving from cache
// when possible and otherwise waiting on the rate limiter before calling
// the external resolver.
func (g *Geocoder) Geocode(ctx context.Context, postalCode string) (Coordinates, error) {
	if postalCode == "" {
		return Coordinates{}, apperr.Validation("postal code is required")
	}
	if lat, lon, ok := g.cache.get(postalCode); ok {
		return Coordinates{Lat: lat, Lon: lon}, nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return Coordinates{}, fmt.Errorf("geocode rate limiter: %w", err)
	}

	coords, err := g.external.Resolve(ctx, postalCode)
	if err != nil {
		if g.log != nil {
			g.log.GeocodeFailed(postalCode, err)
		}
		return Coordinates{}, fmt.Errorf("geocode %s: %w", postalCode, err)
	}

	g.cache.put(postalCode, coords.Lat, coords.Lon)
	return coords, nil
}

// DistanceMiles resolves both postal codes and returns the great-circle
// distance between them. A failure to resolve either side is reported so
// the caller (the distance ranker, C7) can rank the community as an
// unknown distance rather than fail the consultation.
func (g *Geocoder) DistanceMiles(ctx context.Context, fromZIP, toZIP string) (float64, error) {
	from, err := g.Geocode(ctx, fromZIP)
	if err != nil {
		return 0, err
	}
	to, err := g.Geocode(ctx, toZIP)
	if err != nil {
		return 0, err
	}
	return haversineMiles(from.Lat, from.Lon, to.Lat, to.Lon), nil
}
