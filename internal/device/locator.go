package device

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Permission is the outcome of a location permission request.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// ParsePermission accepts "granted"/"denied" (case-insensitive).
func ParsePermission(s string) (Permission, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "granted", "":
		return PermissionGranted, nil
	case "denied":
		return PermissionDenied, nil
	default:
		return "", fmt.Errorf("invalid location permission %q (allowed: granted, denied)", s)
	}
}

// ErrPositionUnavailable is returned when the device cannot report a fix.
var ErrPositionUnavailable = errors.New("current position unavailable")

// Coordinates is a single high-accuracy position fix.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Query formats the fix the way the weather provider accepts it.
func (c Coordinates) Query() string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lon)
}

// Locator is the device location service.
type Locator interface {
	RequestPermission(ctx context.Context) (Permission, error)
	CurrentPosition(ctx context.Context) (Coordinates, error)
}

// StaticLocator answers from configuration. A nil Coords means the device
// has no fix.
type StaticLocator struct {
	Permission Permission
	Coords     *Coordinates
}

func (s StaticLocator) RequestPermission(ctx context.Context) (Permission, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Permission == "" {
		return PermissionGranted, nil
	}
	return s.Permission, nil
}

func (s StaticLocator) CurrentPosition(ctx context.Context) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, err
	}
	if s.Coords == nil {
		return Coordinates{}, ErrPositionUnavailable
	}
	return *s.Coords, nil
}
