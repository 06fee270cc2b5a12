package geocode

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// Resolver turns a location name into coordinates. Optional intake
// enrichment: reports arriving without usable coordinates get a lookup by
// their location name before the disaster is stored.
type Resolver interface {
	Resolve(ctx context.Context, locationName string) (lat, lng float64, err error)
}

// MapsResolver resolves through the Google Maps geocoding API.
type MapsResolver struct {
	client *maps.Client
}

func NewMapsResolver(apiKey string) (*MapsResolver, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &MapsResolver{client: client}, nil
}

func (r *MapsResolver) Resolve(ctx context.Context, locationName string) (float64, float64, error) {
	results, err := r.client.Geocode(ctx, &maps.GeocodingRequest{Address: locationName})
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %q: %w", locationName, err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no geocode results for %q", locationName)
	}

	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}
