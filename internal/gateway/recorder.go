// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/smota/DistanceTrack/internal/geo"
)

// Recorder is an in-memory Gateway for tests: lookups come from fixed maps,
// every call is counted, and the whole provider can be taken offline to prove
// that a code path never left the cache.
type Recorder struct {
	Coords map[string]geo.Coordinates // by location string
	Plus   map[string]string          // by "lat,lng"
	Legs   map[string]Route           // by "origin|dest|mode"

	Offline bool

	GeocodeCalls  int
	PlusCodeCalls int
	RouteCalls    int
}

var _ Gateway = (*Recorder)(nil)

// LegKey builds the lookup key used by the Legs map.
func LegKey(origin, dest geo.Coordinates, mode geo.Mode) string {
	return origin.String() + "|" + dest.String() + "|" + string(mode)
}

func (r *Recorder) Geocode(_ context.Context, location string) (geo.Coordinates, error) {
	r.GeocodeCalls++
	if r.Offline {
		return geo.Coordinates{}, &TransportError{Err: errors.New("offline")}
	}
	c, ok := r.Coords[location]
	if !ok {
		return geo.Coordinates{}, &GeocodeError{Location: location, Err: errNoResults}
	}
	return c, nil
}

func (r *Recorder) PlusCode(_ context.Context, c geo.Coordinates) (string, error) {
	r.PlusCodeCalls++
	if r.Offline {
		return "", &TransportError{Err: errors.New("offline")}
	}
	code, ok := r.Plus[c.String()]
	if !ok {
		return "", &GeocodeError{Location: c.String(), Err: errNoResults}
	}
	return code, nil
}

func (r *Recorder) Route(_ context.Context, origin, dest geo.Coordinates,
	mode geo.Mode, _ *time.Time) (Route, error) {

	r.RouteCalls++
	if r.Offline {
		return Route{}, &TransportError{Err: errors.New("offline")}
	}
	leg, ok := r.Legs[LegKey(origin, dest, mode)]
	if !ok {
		return Route{}, &RouteError{
			Origin:      origin.String(),
			Destination: dest.String(),
			Err:         errNoResults,
		}
	}
	return leg, nil
}

func (r *Recorder) MapsURL(origin, dest geo.Identity, mode geo.Mode) string {
	return MapsURL(origin, dest, mode)
}
