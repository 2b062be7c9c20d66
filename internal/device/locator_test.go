package device

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kelvins/geocoder"
)

func TestParsePermission(t *testing.T) {
	tests := []struct {
		in      string
		want    Permission
		wantErr bool
	}{
		{"", PermissionGranted, false},
		{"granted", PermissionGranted, false},
		{" DENIED ", PermissionDenied, false},
		{"maybe", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePermission(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePermission(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePermission(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStaticLocator(t *testing.T) {
	ctx := context.Background()

	l := StaticLocator{Permission: PermissionDenied}
	if p, _ := l.RequestPermission(ctx); p != PermissionDenied {
		t.Errorf("permission = %q, want denied", p)
	}
	if _, err := l.CurrentPosition(ctx); !errors.Is(err, ErrPositionUnavailable) {
		t.Errorf("CurrentPosition err = %v, want ErrPositionUnavailable", err)
	}

	l = StaticLocator{Coords: &Coordinates{Lat: 51.5, Lon: -0.12}}
	if p, _ := l.RequestPermission(ctx); p != PermissionGranted {
		t.Errorf("default permission = %q, want granted", p)
	}
	c, err := l.CurrentPosition(ctx)
	if err != nil {
		t.Fatalf("CurrentPosition: %v", err)
	}
	if c.Query() != "51.500000,-0.120000" {
		t.Errorf("Query() = %q", c.Query())
	}
}

func TestParseAddress(t *testing.T) {
	a := parseAddress("Lisbon, Portugal")
	if a.City != "Lisbon" || a.Country != "Portugal" || a.State != "" {
		t.Errorf("two-part address = %+v", a)
	}
	a = parseAddress("Austin, Texas, United States")
	if a.City != "Austin" || a.State != "Texas" || a.Country != "United States" {
		t.Errorf("three-part address = %+v", a)
	}
}

func TestGeocodingLocator(t *testing.T) {
	g := &GeocodingLocator{
		address: parseAddress("Lisbon, Portugal"),
		geocode: func(a geocoder.Address) (geocoder.Location, error) {
			if a.City != "Lisbon" {
				t.Errorf("geocode got city %q", a.City)
			}
			return geocoder.Location{Latitude: 38.72, Longitude: -9.14}, nil
		},
	}

	if p, _ := g.RequestPermission(context.Background()); p != PermissionGranted {
		t.Errorf("permission = %q, want granted", p)
	}
	c, err := g.CurrentPosition(context.Background())
	if err != nil {
		t.Fatalf("CurrentPosition: %v", err)
	}
	if c.Lat != 38.72 || c.Lon != -9.14 {
		t.Errorf("coords = %+v", c)
	}
}

func TestGeocodingLocator_NoAddressDenied(t *testing.T) {
	g := &GeocodingLocator{}
	if p, _ := g.RequestPermission(context.Background()); p != PermissionDenied {
		t.Errorf("permission = %q, want denied", p)
	}
}

func TestGeocodingLocator_Errors(t *testing.T) {
	g := &GeocodingLocator{
		address: parseAddress("Atlantis"),
		geocode: func(geocoder.Address) (geocoder.Location, error) {
			return geocoder.Location{}, errors.New("ZERO_RESULTS")
		},
	}
	if _, err := g.CurrentPosition(context.Background()); err == nil {
		t.Error("expected geocode error")
	}

	block := make(chan struct{})
	defer close(block)
	g.geocode = func(geocoder.Address) (geocoder.Location, error) {
		<-block
		return geocoder.Location{}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := g.CurrentPosition(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
}
