// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

package cache

import (
	"github.com/smota/DistanceTrack/internal/geo"
	"github.com/smota/DistanceTrack/internal/store"
)

// GeocodeEntry is the resolved form of one location identity. Forward
// geocoding and reverse Plus Code lookups both land on the same entry, so a
// round-trip conversion never costs a second provider call.
type GeocodeEntry struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	PlusCode string  `json:"plus_code,omitempty"`
}

// Coordinates returns the entry's lat/lng pair.
func (e GeocodeEntry) Coordinates() geo.Coordinates {
	return geo.Coordinates{Lat: e.Lat, Lng: e.Lng}
}

// GeocodeCache maps location identities to resolved coordinates. Get never
// reaches the network; a miss is the caller's cue to hit the provider and
// write back.
type GeocodeCache struct {
	store *store.Store
}

func NewGeocode(s *store.Store) *GeocodeCache {
	return &GeocodeCache{store: s}
}

// Get returns the cached entry for the identity, if any.
func (c *GeocodeCache) Get(id geo.Identity) (GeocodeEntry, bool) {
	var e GeocodeEntry
	if !c.store.Get(id.Key(), &e) {
		return GeocodeEntry{}, false
	}
	return e, true
}

// Put records coordinates (and optionally a Plus Code) for the identity.
// When the coordinates match an existing entry, a missing Plus Code is
// merged from it rather than erased, so writes stay idempotent.
func (c *GeocodeCache) Put(id geo.Identity, coords geo.Coordinates, plusCode string) error {
	var cur GeocodeEntry
	if c.store.Get(id.Key(), &cur) &&
		cur.Lat == coords.Lat && cur.Lng == coords.Lng && plusCode == "" {
		plusCode = cur.PlusCode
	}
	return c.store.Put(id.Key(), GeocodeEntry{
		Lat:      coords.Lat,
		Lng:      coords.Lng,
		PlusCode: plusCode,
	})
}

// Len reports the number of cached identities.
func (c *GeocodeCache) Len() int {
	return c.store.Len()
}

// Flush persists the cache to durable storage.
func (c *GeocodeCache) Flush() error {
	return c.store.Flush()
}
