// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

package command

import (
	"sort"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/smota/DistanceTrack/internal/config"
)

// InitApp builds the CLI. Flag values resolve flag > env > the defaults
// block of the pairs file, in that order.
func InitApp() *cli.Command {
	// Value sources need the pairs file location before flags are parsed, so
	// only the env override (not --config) can move the defaults block.
	cfgPath := config.DefaultPairsPath()

	app := &cli.Command{
		Name:  "distancetrack",
		Usage: "Track travel distances and durations between configured location pairs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "pairs configuration file",
				Value: cfgPath,
			},
			&cli.StringFlag{
				Name:  "pair-id",
				Usage: "process only this pair id (default: all pairs)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "CSV file to append result rows to",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("DTRACK_OUTPUT"),
					yaml.YAML("defaults.output", altsrc.StringSourcer(cfgPath)),
				),
				Value: "distances.csv",
			},
			&cli.StringFlag{
				Name:  "departure-day",
				Usage: "weekday to leave on (e.g. Monday); requires --departure-time",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("defaults.departure-day", altsrc.StringSourcer(cfgPath)),
				),
				Validator: func(value string) error {
					return FlagValidators(value, WeekdayValidator)
				},
			},
			&cli.StringFlag{
				Name:  "departure-time",
				Usage: "time to leave in HH:MM; requires --departure-day",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("defaults.departure-time", altsrc.StringSourcer(cfgPath)),
				),
				Validator: func(value string) error {
					return FlagValidators(value, ClockValidator)
				},
			},
			&cli.BoolFlag{
				Name:        "force",
				Usage:       "recompute every combination even when cached",
				HideDefault: true,
			},
		},
		Action: run,
	}

	// Make sure flags are sorted for the --help text.
	sort.Slice(app.Flags, func(i, j int) bool {
		return app.Flags[i].Names()[0] < app.Flags[j].Names()[0]
	})

	return app
}
