// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

// Package gateway abstracts the external mapping provider. The core only
// depends on the Gateway interface; the Google implementation lives here too,
// alongside a scriptable Recorder double for tests.
package gateway

import (
	"context"
	"net/url"
	"time"

	"github.com/smota/DistanceTrack/internal/geo"
)

// Route is one computed leg between two coordinates.
type Route struct {
	DistanceMeters  int64
	DurationSeconds int64
	TransitHops     int
}

// Gateway performs the actual geocode, Plus Code and route network calls.
// Implementations apply a bounded timeout and do not retry automatically; a
// timeout surfaces as a *TransportError.
type Gateway interface {
	// Geocode resolves a free-text location (address or Plus Code) to
	// coordinates.
	Geocode(ctx context.Context, location string) (geo.Coordinates, error)

	// PlusCode reverse-resolves coordinates to a global Plus Code.
	PlusCode(ctx context.Context, c geo.Coordinates) (string, error)

	// Route computes distance and duration between two resolved points for
	// the given mode, optionally at a requested departure time.
	Route(ctx context.Context, origin, dest geo.Coordinates, mode geo.Mode,
		departure *time.Time) (Route, error)

	// MapsURL builds a shareable directions link. Pure, no network.
	MapsURL(origin, dest geo.Identity, mode geo.Mode) string
}

// MapsURL builds the canonical Google Maps directions URL for two identities.
// Coordinate identities render as "lat,lng"; everything else uses the display
// string verbatim.
func MapsURL(origin, dest geo.Identity, mode geo.Mode) string {
	v := url.Values{}
	v.Set("api", "1")
	v.Set("origin", waypoint(origin))
	v.Set("destination", waypoint(dest))
	v.Set("travelmode", string(mode))
	return "https://www.google.com/maps/dir/?" + v.Encode()
}

func waypoint(id geo.Identity) string {
	if id.Kind == geo.KindCoordinates {
		return id.Coords.String()
	}
	return id.Display
}
