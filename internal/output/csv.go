// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

// Package output appends assembled result rows to the CSV file. It is the
// only place that decides how failed combinations render (blank fields).
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/smota/DistanceTrack/internal/processor"
)

var header = []string{
	"pair_id", "origin_index", "destination_index",
	"origin_address", "destination_address",
	"origin_plus_code", "destination_plus_code",
	"driving_distance", "driving_duration", "driving_url",
	"transit_distance", "transit_duration", "transit_hops", "transit_url",
}

// CSV appends rows to a single file. An existing file keeps its rows
// untouched and gets no second header; there is no de-duplication against
// prior runs.
type CSV struct {
	path string
}

func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

// Append writes the rows. The header goes out only when the file is empty or
// being created.
func (c *CSV) Append(rows []processor.Row) (err error) {
	if len(rows) == 0 {
		return nil
	}

	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:mnd
	if err != nil {
		return fmt.Errorf("open output %s: %w", c.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output %s: %w", c.path, cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat output %s: %w", c.path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, r := range rows {
		if err := w.Write(record(r)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush output %s: %w", c.path, err)
	}
	return nil
}

func record(r processor.Row) []string {
	return []string{
		r.PairID,
		strconv.Itoa(r.OriginIndex),
		strconv.Itoa(r.DestinationIndex),
		r.OriginAddress,
		r.DestinationAddress,
		r.OriginPlusCode,
		r.DestinationPlusCode,
		distance(r.Driving),
		duration(r.Driving),
		mapsURL(r.Driving),
		distance(r.Transit),
		duration(r.Transit),
		hops(r.Transit),
		mapsURL(r.Transit),
	}
}

func distance(l processor.Leg) string {
	if !l.OK {
		return ""
	}
	if l.DistanceMeters < 1000 {
		return strconv.FormatInt(l.DistanceMeters, 10) + " m"
	}
	return humanize.CommafWithDigits(float64(l.DistanceMeters)/1000, 1) + " km"
}

func duration(l processor.Leg) string {
	if !l.OK {
		return ""
	}
	d := time.Duration(l.DurationSeconds) * time.Second
	mins := int((d + 30*time.Second) / time.Minute)
	if mins < 60 {
		return strconv.Itoa(mins) + " min"
	}
	return fmt.Sprintf("%d h %d min", mins/60, mins%60)
}

func hops(l processor.Leg) string {
	if !l.OK {
		return ""
	}
	return strconv.Itoa(l.TransitHops)
}

func mapsURL(l processor.Leg) string {
	if !l.OK {
		return ""
	}
	return l.MapsURL
}
