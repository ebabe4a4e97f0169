// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

package geo

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind discriminates the three location input shapes.
type Kind int

const (
	KindAddress Kind = iota
	KindCoordinates
	KindPlusCode
)

func (k Kind) String() string {
	switch k {
	case KindCoordinates:
		return "coordinates"
	case KindPlusCode:
		return "pluscode"
	default:
		return "address"
	}
}

// Coordinates is an immutable lat/lng pair.
type Coordinates struct {
	Lat float64
	Lng float64
}

// String renders the pair in the "lat,lng" form the provider accepts.
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// Mode is a travel mode understood by the provider.
type Mode string

const (
	ModeDriving Mode = "driving"
	ModeTransit Mode = "transit"
)

// Modes returns every supported travel mode in output-column order.
func Modes() []Mode {
	return []Mode{ModeDriving, ModeTransit}
}

// Identity is the canonical, comparison-stable representation of a location.
// Raw keeps the string exactly as configured; Display is the canonical form
// handed to the provider and written to output. Two identities differing only
// in incidental whitespace or case produce equal cache keys.
type Identity struct {
	Kind    Kind
	Raw     string
	Display string
	Coords  Coordinates // valid only when Kind == KindCoordinates
}

// Plus Codes use a 20-character digit set and carry a single '+' separating
// the area from the local portion. An optional locality reference may follow
// the code ("9G8F+6X Zurich").
var plusCodeRe = regexp.MustCompile(
	`(?i)^[23456789CFGHJMPQRVWX]{4,8}\+[23456789CFGHJMPQRVWX]{2,7}(\s+\S.*)?$`)

// Resolve normalizes a free-text location into an Identity. It is pure and
// deterministic: coordinate pairs are detected first, then Plus Codes, and
// anything else is treated as a street address.
func Resolve(raw string) Identity {
	trimmed := strings.TrimSpace(raw)

	if c, ok := parseCoordinatePair(trimmed); ok {
		id := FromCoordinates(c.Lat, c.Lng)
		id.Raw = raw
		return id
	}

	if plusCodeRe.MatchString(trimmed) {
		return Identity{
			Kind:    KindPlusCode,
			Raw:     raw,
			Display: canonicalPlusCode(trimmed),
		}
	}

	return Identity{
		Kind:    KindAddress,
		Raw:     raw,
		Display: collapse(trimmed),
	}
}

// FromCoordinates builds a coordinate identity directly, bypassing any string
// parsing. Used for structured {lat, lng} configuration entries.
func FromCoordinates(lat, lng float64) Identity {
	c := Coordinates{Lat: lat, Lng: lng}
	return Identity{
		Kind:    KindCoordinates,
		Raw:     c.String(),
		Display: c.String(),
		Coords:  c,
	}
}

// Key returns the stable cache key for the identity. Address keys are folded
// to lower case so trivial case differences share an entry; the Display form
// keeps the original casing for provider matching.
func (id Identity) Key() string {
	switch id.Kind {
	case KindCoordinates:
		return "coord_" + id.Coords.String()
	case KindPlusCode:
		// The key fragment carries no internal whitespace at all; Display
		// keeps a single space before any locality suffix for the provider.
		return "plus_" + strings.ReplaceAll(id.Display, " ", "")
	default:
		return "addr_" + strings.ToLower(id.Display)
	}
}

func (id Identity) String() string {
	return id.Display
}

func parseCoordinatePair(s string) (Coordinates, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinates{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinates{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinates{}, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Coordinates{}, false
	}
	return Coordinates{Lat: lat, Lng: lng}, true
}

// canonicalPlusCode uppercases the code and collapses whitespace, so
// "9g8f+6x  Zurich" and "9G8F+6X ZURICH" resolve to the same identity.
func canonicalPlusCode(s string) string {
	return strings.ToUpper(collapse(s))
}

// collapse trims and squeezes runs of whitespace to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
