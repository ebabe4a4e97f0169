// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

// Package cache holds the two durable caches that keep repeated provider
// calls off the wire: a geocode cache keyed by location identity and a route
// cache keyed by origin, destination, travel mode and departure bucket.
package cache
