// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/smota/DistanceTrack/internal/geo"
)

// Location is one configured origin or destination: either a free-text
// string (address or Plus Code) or a structured {lat, lng} mapping.
type Location struct {
	Raw      string
	Lat      float64 `validate:"latitude"`
	Lng      float64 `validate:"longitude"`
	IsCoords bool
}

// UnmarshalYAML accepts both shapes of the union.
func (l *Location) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			return errors.New("location string is empty")
		}
		l.Raw = s
		return nil

	case yaml.MappingNode:
		var c struct {
			Lat *float64 `yaml:"lat"`
			Lng *float64 `yaml:"lng"`
		}
		if err := value.Decode(&c); err != nil {
			return err
		}
		if c.Lat == nil || c.Lng == nil {
			return errors.New("coordinate location needs both lat and lng")
		}
		l.Lat, l.Lng = *c.Lat, *c.Lng
		l.IsCoords = true
		return nil

	default:
		return fmt.Errorf("location must be a string or a lat/lng mapping (line %d)", value.Line)
	}
}

// Identity resolves the configured location once, at the boundary.
func (l Location) Identity() geo.Identity {
	if l.IsCoords {
		return geo.FromCoordinates(l.Lat, l.Lng)
	}
	return geo.Resolve(l.Raw)
}

// Pair is one tracked origins x destinations block.
type Pair struct {
	Origins      []Location `yaml:"origins" validate:"required,min=1,dive"`
	Destinations []Location `yaml:"destinations" validate:"required,min=1,dive"`
}

// Pairs is the parsed pairs file. Defaults feeds flag value sources; Pairs
// maps pair_id to its block.
type Pairs struct {
	Defaults map[string]string `yaml:"defaults"`
	Pairs    map[string]Pair   `yaml:"pairs" validate:"required,min=1,dive"`
}

// LoadPairs reads and validates the pairs file. Every failure here is a
// *ConfigError and aborts before any processing.
func LoadPairs(path string) (Pairs, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Pairs{}, &ConfigError{Path: path, Err: err}
	}

	var p Pairs
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Pairs{}, &ConfigError{Path: path, Err: err}
	}
	if err := validator.New().Struct(p); err != nil {
		return Pairs{}, &ConfigError{Path: path, Err: err}
	}
	return p, nil
}
