// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

// Package processor drives the configured pairs through the caches and the
// provider gateway and assembles result rows.
package processor

import (
	"context"
	"time"

	"github.com/apex/log"
	"golang.org/x/sync/singleflight"

	"github.com/smota/DistanceTrack/internal/cache"
	"github.com/smota/DistanceTrack/internal/gateway"
	"github.com/smota/DistanceTrack/internal/geo"
)

// Pair is one configured origin/destination block, resolved to identities at
// the configuration boundary. Transient: consumed within a single run.
type Pair struct {
	ID           string
	Origins      []geo.Identity
	Destinations []geo.Identity
}

// Leg is the per-mode slice of a row. A failed mode leaves the zero value
// and the sink renders blanks.
type Leg struct {
	OK              bool
	DistanceMeters  int64
	DurationSeconds int64
	TransitHops     int
	MapsURL         string
}

// Row is one assembled origin x destination combination. Written once to the
// sink, never mutated after.
type Row struct {
	PairID              string
	OriginIndex         int
	DestinationIndex    int
	OriginAddress       string
	DestinationAddress  string
	OriginPlusCode      string
	DestinationPlusCode string
	Driving             Leg
	Transit             Leg
}

// Options steer one Process invocation.
type Options struct {
	Modes     []geo.Mode
	Departure *time.Time
	Force     bool // bypass cache reads, still refresh writes
}

// Processor owns no cache state; both caches are handed in at construction
// and their load/flush lifecycle stays with the caller.
type Processor struct {
	geocodes *cache.GeocodeCache
	routes   *cache.RouteCache
	gw       gateway.Gateway

	// Misses on the same cache key collapse into one provider call, so a
	// concurrent caller can never double-bill a key.
	flight singleflight.Group
}

func New(geocodes *cache.GeocodeCache, routes *cache.RouteCache, gw gateway.Gateway) *Processor {
	return &Processor{geocodes: geocodes, routes: routes, gw: gw}
}

// Process walks the cartesian product of the pair's origins and destinations
// (origins outer, destinations inner; the ordering is part of the output
// contract) and returns one row per combination. A failed combination gets
// blank mode fields and processing continues; the only returned error is
// context cancellation.
func (p *Processor) Process(ctx context.Context, pair Pair, opts Options) ([]Row, error) {
	rows := make([]Row, 0, len(pair.Origins)*len(pair.Destinations))

	for oi, origin := range pair.Origins {
		for di, dest := range pair.Destinations {
			if err := ctx.Err(); err != nil {
				return rows, err
			}
			rows = append(rows, p.combine(ctx, pair.ID, oi, di, origin, dest, opts))
		}
	}
	return rows, nil
}

func (p *Processor) combine(ctx context.Context, pairID string, oi, di int,
	origin, dest geo.Identity, opts Options) Row {

	row := Row{
		PairID:             pairID,
		OriginIndex:        oi,
		DestinationIndex:   di,
		OriginAddress:      origin.Display,
		DestinationAddress: dest.Display,
	}

	oEntry, oErr := p.locate(ctx, origin, opts.Force)
	dEntry, dErr := p.locate(ctx, dest, opts.Force)
	if oErr != nil {
		log.WithError(oErr).Warnf("%s[%d,%d]: origin unresolvable", pairID, oi, di)
	}
	if dErr != nil {
		log.WithError(dErr).Warnf("%s[%d,%d]: destination unresolvable", pairID, oi, di)
	}
	if oErr != nil || dErr != nil {
		// Addresses stay on the row; every mode field stays blank.
		return row
	}

	row.OriginPlusCode = oEntry.PlusCode
	row.DestinationPlusCode = dEntry.PlusCode

	for _, mode := range opts.Modes {
		leg, err := p.route(ctx, origin, dest,
			oEntry.Coordinates(), dEntry.Coordinates(), mode, opts)
		if err != nil {
			log.WithError(err).Warnf("%s[%d,%d]: %s route failed", pairID, oi, di, mode)
			continue
		}
		switch mode {
		case geo.ModeDriving:
			row.Driving = leg
		case geo.ModeTransit:
			row.Transit = leg
		}
	}
	return row
}

// locate resolves an identity to coordinates plus an optional Plus Code,
// cache first. On a miss the provider result is written back, merging into
// the same entry a later reverse lookup would use.
func (p *Processor) locate(ctx context.Context, id geo.Identity, force bool) (cache.GeocodeEntry, error) {
	if !force {
		if e, ok := p.geocodes.Get(id); ok {
			return e, nil
		}
	}

	v, err, _ := p.flight.Do(id.Key(), func() (any, error) {
		coords := id.Coords
		if id.Kind != geo.KindCoordinates {
			c, err := p.gw.Geocode(ctx, id.Display)
			if err != nil {
				return nil, err
			}
			coords = c
		}

		// Best effort: a location without a Plus Code is still routable.
		plus, err := p.gw.PlusCode(ctx, coords)
		if err != nil {
			log.WithError(err).Debugf("no plus code for %s", id.Key())
			plus = ""
		}

		entry := cache.GeocodeEntry{Lat: coords.Lat, Lng: coords.Lng, PlusCode: plus}
		if err := p.geocodes.Put(id, coords, plus); err != nil {
			log.WithError(err).Warnf("geocode cache write failed for %s", id.Key())
		}
		return entry, nil
	})
	if err != nil {
		return cache.GeocodeEntry{}, err
	}
	return v.(cache.GeocodeEntry), nil
}

// route resolves one leg, cache first unless forced; fresh results are
// written back either way so later runs benefit.
func (p *Processor) route(ctx context.Context, origin, dest geo.Identity,
	oc, dc geo.Coordinates, mode geo.Mode, opts Options) (Leg, error) {

	bucket := cache.BucketFor(opts.Departure)

	if !opts.Force {
		if e, ok := p.routes.Get(origin, dest, mode, bucket); ok {
			log.Debugf("cached %s route %s -> %s", mode, origin.Display, dest.Display)
			return legFrom(e), nil
		}
	}

	key := cache.RouteKey(origin.Key(), dest.Key(), mode, bucket)
	v, err, _ := p.flight.Do(key, func() (any, error) {
		r, err := p.gw.Route(ctx, oc, dc, mode, opts.Departure)
		if err != nil {
			return nil, err
		}
		entry := cache.RouteEntry{
			DistanceMeters:  r.DistanceMeters,
			DurationSeconds: r.DurationSeconds,
			TransitHops:     r.TransitHops,
			MapsURL:         p.gw.MapsURL(origin, dest, mode),
		}
		if err := p.routes.Put(origin, dest, mode, bucket, entry); err != nil {
			log.WithError(err).Warnf("route cache write failed for %s", key)
		}
		return entry, nil
	})
	if err != nil {
		return Leg{}, err
	}
	return legFrom(v.(cache.RouteEntry)), nil
}

func legFrom(e cache.RouteEntry) Leg {
	return Leg{
		OK:              true,
		DistanceMeters:  e.DistanceMeters,
		DurationSeconds: e.DurationSeconds,
		TransitHops:     e.TransitHops,
		MapsURL:         e.MapsURL,
	}
}
