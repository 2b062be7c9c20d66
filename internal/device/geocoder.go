package device

import (
	"context"
	"fmt"
	"strings"

	"github.com/kelvins/geocoder"
)

// GeocodingLocator resolves a configured street address to coordinates with
// Google geocoding. Permission is granted only when an address is set.
type GeocodingLocator struct {
	address geocoder.Address
	geocode func(geocoder.Address) (geocoder.Location, error)
}

// NewGeocodingLocator parses "City, State, Country" (State optional).
func NewGeocodingLocator(apiKey, address string) *GeocodingLocator {
	geocoder.ApiKey = apiKey
	return &GeocodingLocator{
		address: parseAddress(address),
		geocode: geocoder.Geocoding,
	}
}

func parseAddress(s string) geocoder.Address {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var a geocoder.Address
	switch len(parts) {
	case 1:
		a.City = parts[0]
	case 2:
		a.City, a.Country = parts[0], parts[1]
	default:
		a.City, a.State, a.Country = parts[0], parts[1], strings.Join(parts[2:], ", ")
	}
	return a
}

func (g *GeocodingLocator) RequestPermission(ctx context.Context) (Permission, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if g.address.City == "" {
		return PermissionDenied, nil
	}
	return PermissionGranted, nil
}

// CurrentPosition runs the lookup in its own goroutine since the geocoder
// library takes no context.
func (g *GeocodingLocator) CurrentPosition(ctx context.Context) (Coordinates, error) {
	type result struct {
		loc geocoder.Location
		err error
	}
	ch := make(chan result, 1)
	go func() {
		loc, err := g.geocode(g.address)
		ch <- result{loc, err}
	}()

	select {
	case <-ctx.Done():
		return Coordinates{}, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return Coordinates{}, fmt.Errorf("geocode %s: %w", g.address.City, r.err)
		}
		if r.loc.Latitude == 0 && r.loc.Longitude == 0 {
			return Coordinates{}, ErrPositionUnavailable
		}
		return Coordinates{Lat: r.loc.Latitude, Lon: r.loc.Longitude}, nil
	}
}
