// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

package cache

import (
	"strings"
	"time"

	"github.com/smota/DistanceTrack/internal/geo"
	"github.com/smota/DistanceTrack/internal/store"
)

// Bucket is the departure component of a route cache key. Requests with no
// departure time share the distinguished NoBucket value, which can never
// collide with a real weekday/time bucket.
type Bucket string

const NoBucket Bucket = "none"

// BucketFor derives the bucket from an optional departure time. Only the
// weekday and wall-clock time participate, so "next Monday 08:30" hits the
// same entry regardless of which calendar week the run happens in.
func BucketFor(t *time.Time) Bucket {
	if t == nil {
		return NoBucket
	}
	return Bucket(t.Weekday().String() + "_" + t.Format("15:04"))
}

// RouteEntry is one cached route computation. Entries are written whole and
// never partially updated.
type RouteEntry struct {
	DistanceMeters  int64  `json:"distance_m"`
	DurationSeconds int64  `json:"duration_s"`
	TransitHops     int    `json:"transit_hops,omitempty"`
	MapsURL         string `json:"maps_url"`
}

// RouteKey builds the composite cache key. Mode is part of the key: a driving
// miss is never satisfied by a transit entry for the same endpoints.
func RouteKey(originKey, destKey string, mode geo.Mode, b Bucket) string {
	return strings.Join([]string{originKey, destKey, string(mode), string(b)}, "|")
}

// RouteCache maps (origin, destination, mode, bucket) to route results.
type RouteCache struct {
	store *store.Store
}

func NewRoutes(s *store.Store) *RouteCache {
	return &RouteCache{store: s}
}

// Get returns the cached entry for the composite key, if any.
func (c *RouteCache) Get(origin, dest geo.Identity, mode geo.Mode, b Bucket) (RouteEntry, bool) {
	var e RouteEntry
	if !c.store.Get(RouteKey(origin.Key(), dest.Key(), mode, b), &e) {
		return RouteEntry{}, false
	}
	return e, true
}

// Put stores the entry under the composite key.
func (c *RouteCache) Put(origin, dest geo.Identity, mode geo.Mode, b Bucket, e RouteEntry) error {
	return c.store.Put(RouteKey(origin.Key(), dest.Key(), mode, b), e)
}

// Len reports the number of cached routes.
func (c *RouteCache) Len() int {
	return c.store.Len()
}

// Flush persists the cache to durable storage.
func (c *RouteCache) Flush() error {
	return c.store.Flush()
}
