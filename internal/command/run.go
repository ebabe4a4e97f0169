// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/smota/DistanceTrack/internal/cache"
	"github.com/smota/DistanceTrack/internal/config"
	"github.com/smota/DistanceTrack/internal/gateway"
	"github.com/smota/DistanceTrack/internal/geo"
	"github.com/smota/DistanceTrack/internal/output"
	"github.com/smota/DistanceTrack/internal/processor"
	"github.com/smota/DistanceTrack/internal/store"
)

func run(ctx context.Context, cmd *cli.Command) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	cfgPath := cmd.String("config")
	pairs, err := config.LoadPairs(cfgPath)
	if err != nil {
		return err
	}

	ids, err := selectPairIDs(pairs, cmd.String("pair-id"), cfgPath)
	if err != nil {
		return err
	}

	departure, err := departureFrom(cmd)
	if err != nil {
		return err
	}

	gw, err := gateway.NewGoogle(settings.APIKey, settings.Timeout)
	if err != nil {
		return err
	}

	cacheDir := settings.ResolveCacheDir()
	geocodes := cache.NewGeocode(store.Open(
		filepath.Join(cacheDir, "geocode_cache.json"), settings.Checkpoint))
	routes := cache.NewRoutes(store.Open(
		filepath.Join(cacheDir, "route_cache.json"), settings.Checkpoint))
	defer func() {
		// Best effort: this run's rows are on disk already, only future runs
		// lose the warm cache if persistence fails.
		if err := geocodes.Flush(); err != nil {
			log.WithError(err).Warn("geocode cache not persisted")
		}
		if err := routes.Flush(); err != nil {
			log.WithError(err).Warn("route cache not persisted")
		}
	}()
	log.Debugf("caches loaded: %d geocodes, %d routes", geocodes.Len(), routes.Len())

	proc := processor.New(geocodes, routes, gw)
	sink := output.NewCSV(cmd.String("output"))
	opts := processor.Options{
		Modes:     geo.Modes(),
		Departure: departure,
		Force:     cmd.Bool("force"),
	}

	total := 0
	for _, id := range ids {
		p := pairs.Pairs[id]
		rows, perr := proc.Process(ctx, processor.Pair{
			ID:           id,
			Origins:      identities(p.Origins),
			Destinations: identities(p.Destinations),
		}, opts)

		if err := sink.Append(rows); err != nil {
			return err
		}
		total += len(rows)

		if perr != nil {
			log.Warnf("interrupted after %d rows", total)
			return perr
		}
	}

	log.Infof("added %d rows to %s", total, cmd.String("output"))
	return nil
}

// selectPairIDs picks the pairs for this run in stable order. An unknown
// --pair-id is a configuration error and fatal.
func selectPairIDs(pairs config.Pairs, want, cfgPath string) ([]string, error) {
	if want != "" {
		if _, ok := pairs.Pairs[want]; !ok {
			return nil, &config.ConfigError{
				Path: cfgPath,
				Err:  fmt.Errorf("unknown pair id %q", want),
			}
		}
		return []string{want}, nil
	}

	ids := make([]string, 0, len(pairs.Pairs))
	for id := range pairs.Pairs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// departureFrom combines --departure-day and --departure-time into the next
// matching departure instant. Both or neither must be given.
func departureFrom(cmd *cli.Command) (*time.Time, error) {
	day, clock := cmd.String("departure-day"), cmd.String("departure-time")
	if day == "" && clock == "" {
		return nil, nil
	}
	if day == "" || clock == "" {
		return nil, errors.New("--departure-day and --departure-time must be used together")
	}

	t, err := NextDeparture(time.Now(), day, clock)
	if err != nil {
		return nil, err
	}
	log.Debugf("departure resolved to %s", t.Format("2006-01-02 15:04"))
	return &t, nil
}

func identities(ls []config.Location) []geo.Identity {
	out := make([]geo.Identity, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.Identity())
	}
	return out
}
