// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

package gateway

import (
	"errors"
	"fmt"
)

// errNoResults marks a well-formed provider response that carried nothing
// usable (ZERO_RESULTS and friends).
var errNoResults = errors.New("no results")

// GeocodeError means a location could not be resolved to coordinates.
// Recovered per combination; never aborts a batch.
type GeocodeError struct {
	Location string
	Err      error
}

func (e *GeocodeError) Error() string {
	return fmt.Sprintf("geocode %q: %v", e.Location, e.Err)
}

func (e *GeocodeError) Unwrap() error { return e.Err }

// RouteError means the provider rejected or could not satisfy a route
// request. Recovered per combination.
type RouteError struct {
	Origin      string
	Destination string
	Err         error
}

func (e *RouteError) Error() string {
	return fmt.Sprintf("route %s -> %s: %v", e.Origin, e.Destination, e.Err)
}

func (e *RouteError) Unwrap() error { return e.Err }

// TransportError covers network failures, timeouts and provider-side denial
// (quota, auth). Not retried automatically; recovered per combination.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("provider transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
