// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smota/DistanceTrack/internal/geo"
	"github.com/smota/DistanceTrack/internal/store"
)

func newGeocode(t *testing.T) *GeocodeCache {
	t.Helper()
	return NewGeocode(store.Open(filepath.Join(t.TempDir(), "geocode_cache.json"), 0))
}

func newRoutes(t *testing.T) *RouteCache {
	t.Helper()
	return NewRoutes(store.Open(filepath.Join(t.TempDir(), "route_cache.json"), 0))
}

func TestGeocodePutGetRoundTrip(t *testing.T) {
	c := newGeocode(t)
	id := geo.Resolve("350 5th Ave, New York")

	require.NoError(t, c.Put(id, geo.Coordinates{Lat: 40.7488, Lng: -73.9854}, "87G8P27Q+JF"))

	got, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, GeocodeEntry{Lat: 40.7488, Lng: -73.9854, PlusCode: "87G8P27Q+JF"}, got)
}

func TestGeocodeCaseInsensitiveHit(t *testing.T) {
	c := newGeocode(t)
	require.NoError(t, c.Put(geo.Resolve("350 5th Ave"), geo.Coordinates{Lat: 1, Lng: 2}, ""))

	_, ok := c.Get(geo.Resolve("350 5TH AVE"))
	assert.True(t, ok)
}

func TestGeocodeMergeKeepsPlusCode(t *testing.T) {
	c := newGeocode(t)
	id := geo.FromCoordinates(40.7488, -73.9854)

	// First write carries the code; a later write of the same coordinates
	// without one must not erase it.
	require.NoError(t, c.Put(id, id.Coords, "87G8P27Q+JF"))
	require.NoError(t, c.Put(id, id.Coords, ""))

	got, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, "87G8P27Q+JF", got.PlusCode)
}

func TestGeocodeOverwriteLastWriteWins(t *testing.T) {
	c := newGeocode(t)
	id := geo.Resolve("Somewhere")

	require.NoError(t, c.Put(id, geo.Coordinates{Lat: 1, Lng: 1}, ""))
	require.NoError(t, c.Put(id, geo.Coordinates{Lat: 2, Lng: 2}, ""))

	got, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, 2.0, got.Lat)
}

func TestBucketFor(t *testing.T) {
	assert.Equal(t, NoBucket, BucketFor(nil))

	dep := time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC) // a Monday
	assert.Equal(t, Bucket("Monday_08:30"), BucketFor(&dep))

	// Same weekday and clock a week later shares the bucket.
	later := dep.AddDate(0, 0, 7)
	assert.Equal(t, BucketFor(&dep), BucketFor(&later))
}

func TestRouteModeIsolation(t *testing.T) {
	c := newRoutes(t)
	o, d := geo.Resolve("A"), geo.Resolve("B")

	require.NoError(t, c.Put(o, d, geo.ModeTransit, NoBucket,
		RouteEntry{DistanceMeters: 100, TransitHops: 2}))

	_, ok := c.Get(o, d, geo.ModeDriving, NoBucket)
	assert.False(t, ok, "a driving miss must not be served by a transit entry")

	got, ok := c.Get(o, d, geo.ModeTransit, NoBucket)
	require.True(t, ok)
	assert.Equal(t, 2, got.TransitHops)
}

func TestRouteBucketIsolation(t *testing.T) {
	c := newRoutes(t)
	o, d := geo.Resolve("A"), geo.Resolve("B")
	dep := time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC)

	require.NoError(t, c.Put(o, d, geo.ModeDriving, BucketFor(&dep), RouteEntry{DistanceMeters: 1}))

	_, ok := c.Get(o, d, geo.ModeDriving, NoBucket)
	assert.False(t, ok, "the no-departure bucket is distinct from any real time")
}

func TestRouteDirectionMatters(t *testing.T) {
	c := newRoutes(t)
	o, d := geo.Resolve("A"), geo.Resolve("B")

	require.NoError(t, c.Put(o, d, geo.ModeDriving, NoBucket, RouteEntry{DistanceMeters: 1}))

	_, ok := c.Get(d, o, geo.ModeDriving, NoBucket)
	assert.False(t, ok)
}

func TestRoutePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "route_cache.json")
	o, d := geo.Resolve("A"), geo.Resolve("B")
	entry := RouteEntry{DistanceMeters: 4200, DurationSeconds: 600, MapsURL: "https://example"}

	c := NewRoutes(store.Open(path, 0))
	require.NoError(t, c.Put(o, d, geo.ModeDriving, NoBucket, entry))
	require.NoError(t, c.Flush())

	c2 := NewRoutes(store.Open(path, 0))
	got, ok := c2.Get(o, d, geo.ModeDriving, NoBucket)
	require.True(t, ok)
	assert.Equal(t, entry, got)
}
