// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/smota/DistanceTrack/internal/geo"
)

const defaultBaseURL = "https://maps.googleapis.com"

// Google talks to the Google Maps web service APIs (geocoding + directions).
// Requests carry the configured timeout via the underlying http.Client and
// are never retried.
type Google struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

// NewGoogle builds a gateway for the given API key. The timeout bounds every
// provider call; zero or negative falls back to 10s.
func NewGoogle(apiKey string, timeout time.Duration) (*Google, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("maps api key is empty")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second //nolint:mnd
	}
	return &Google{
		client:  &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}, nil
}

// Geocode resolves a free-text location via the geocoding API.
func (g *Google) Geocode(ctx context.Context, location string) (geo.Coordinates, error) {
	q := url.Values{}
	q.Set("address", location)

	doc, err := g.get(ctx, "/maps/api/geocode/json", q)
	if err != nil {
		return geo.Coordinates{}, err
	}
	if err := checkStatus(doc); err != nil {
		if errors.Is(err, errNoResults) {
			return geo.Coordinates{}, &GeocodeError{Location: location, Err: err}
		}
		return geo.Coordinates{}, err
	}

	loc := doc.Get("results.0.geometry.location")
	if !loc.Exists() {
		return geo.Coordinates{}, &GeocodeError{Location: location, Err: errNoResults}
	}
	return geo.Coordinates{
		Lat: loc.Get("lat").Float(),
		Lng: loc.Get("lng").Float(),
	}, nil
}

// PlusCode reverse-geocodes coordinates and extracts the global Plus Code.
func (g *Google) PlusCode(ctx context.Context, c geo.Coordinates) (string, error) {
	q := url.Values{}
	q.Set("latlng", c.String())

	doc, err := g.get(ctx, "/maps/api/geocode/json", q)
	if err != nil {
		return "", err
	}
	if err := checkStatus(doc); err != nil {
		if errors.Is(err, errNoResults) {
			return "", &GeocodeError{Location: c.String(), Err: err}
		}
		return "", err
	}

	// The geocoding API reports the code either at the top level or on the
	// first result, depending on the location type.
	for _, path := range []string{"plus_code.global_code", "results.0.plus_code.global_code"} {
		if code := doc.Get(path).String(); code != "" {
			return code, nil
		}
	}
	return "", &GeocodeError{Location: c.String(), Err: errNoResults}
}

// Route computes one leg via the directions API. Transit requests ask for
// alternatives with a fewer-transfers preference and pick the route with the
// best score; driving takes the provider's first route.
func (g *Google) Route(ctx context.Context, origin, dest geo.Coordinates,
	mode geo.Mode, departure *time.Time) (Route, error) {

	q := url.Values{}
	q.Set("origin", origin.String())
	q.Set("destination", dest.String())
	q.Set("mode", string(mode))
	if departure != nil {
		q.Set("departure_time", strconv.FormatInt(departure.Unix(), 10))
	}
	if mode == geo.ModeTransit {
		q.Set("alternatives", "true")
		q.Set("transit_routing_preference", "fewer_transfers")
	}

	doc, err := g.get(ctx, "/maps/api/directions/json", q)
	if err != nil {
		return Route{}, err
	}
	if err := checkStatus(doc); err != nil {
		if errors.Is(err, errNoResults) {
			return Route{}, &RouteError{
				Origin:      origin.String(),
				Destination: dest.String(),
				Err:         err,
			}
		}
		return Route{}, err
	}

	routes := doc.Get("routes").Array()
	if len(routes) == 0 {
		return Route{}, &RouteError{
			Origin:      origin.String(),
			Destination: dest.String(),
			Err:         errNoResults,
		}
	}

	best := routes[0]
	if mode == geo.ModeTransit {
		for _, r := range routes[1:] {
			if transitScore(r) < transitScore(best) {
				best = r
			}
		}
	}

	leg := best.Get("legs.0")
	if !leg.Exists() {
		return Route{}, &RouteError{
			Origin:      origin.String(),
			Destination: dest.String(),
			Err:         errors.New("route has no legs"),
		}
	}

	out := Route{
		DistanceMeters:  leg.Get("distance.value").Int(),
		DurationSeconds: leg.Get("duration.value").Int(),
	}
	if mode == geo.ModeTransit {
		out.TransitHops = countTransitSteps(leg)
	}
	return out, nil
}

// MapsURL implements Gateway with the package-level builder.
func (g *Google) MapsURL(origin, dest geo.Identity, mode geo.Mode) string {
	return MapsURL(origin, dest, mode)
}

// transitScore ranks a transit alternative: raw minutes, plus a 15 minute
// penalty per transfer, plus half-weighted walking minutes.
func transitScore(route gjson.Result) float64 {
	leg := route.Get("legs.0")
	minutes := leg.Get("duration.value").Float() / 60

	var transfers, walking float64
	leg.Get("steps").ForEach(func(_, step gjson.Result) bool {
		switch step.Get("travel_mode").String() {
		case "TRANSIT":
			transfers++
		case "WALKING":
			walking += step.Get("duration.value").Float() / 60
		}
		return true
	})

	return minutes + transfers*15 + walking*0.5
}

func countTransitSteps(leg gjson.Result) int {
	n := 0
	leg.Get("steps").ForEach(func(_, step gjson.Result) bool {
		if step.Get("travel_mode").String() == "TRANSIT" {
			n++
		}
		return true
	})
	return n
}

// get performs one API call and parses the body. Transport-level failures,
// non-200 responses and unreadable bodies all come back as *TransportError.
func (g *Google) get(ctx context.Context, path string, q url.Values) (gjson.Result, error) {
	q.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return gjson.Result{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, &TransportError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, &TransportError{
			Err: fmt.Errorf("status %d: %s", resp.StatusCode,
				strings.TrimSpace(string(b))),
		}
	}

	return gjson.ParseBytes(b), nil
}

// checkStatus maps the provider's response status field onto error kinds.
// Empty-result statuses are recoverable lookups; everything else non-OK is a
// transport-class failure (quota, auth, malformed request).
func checkStatus(doc gjson.Result) error {
	switch st := doc.Get("status").String(); st {
	case "OK":
		return nil
	case "ZERO_RESULTS", "NOT_FOUND":
		return errNoResults
	default:
		msg := doc.Get("error_message").String()
		if msg == "" {
			msg = st
		}
		return &TransportError{Err: fmt.Errorf("provider status %s: %s", st, msg)}
	}
}
