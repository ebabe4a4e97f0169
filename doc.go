// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

// distancetrack computes travel distances and durations between configured
// origin/destination pairs via the Google Maps APIs, caching geocode and
// route lookups on disk so repeated runs stay off the provider's meter.
package main
