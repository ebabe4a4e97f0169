// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smota/DistanceTrack/internal/processor"
)

func sampleRow() processor.Row {
	return processor.Row{
		PairID:              "p1",
		OriginIndex:         0,
		DestinationIndex:    1,
		OriginAddress:       "350 5th Ave",
		DestinationAddress:  "Times Square",
		OriginPlusCode:      "87G8P27Q+JF",
		DestinationPlusCode: "87G8P27X+XX",
		Driving: processor.Leg{
			OK:              true,
			DistanceMeters:  4200,
			DurationSeconds: 660,
			MapsURL:         "https://maps/driving",
		},
		Transit: processor.Leg{
			OK:              true,
			DistanceMeters:  3900,
			DurationSeconds: 1500,
			TransitHops:     2,
			MapsURL:         "https://maps/transit",
		},
	}
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return recs
}

func TestAppendCreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "distances.csv")

	require.NoError(t, NewCSV(path).Append([]processor.Row{sampleRow()}))

	recs := readAll(t, path)
	require.Len(t, recs, 2)
	assert.Equal(t, header, recs[0])
	assert.Equal(t, []string{
		"p1", "0", "1",
		"350 5th Ave", "Times Square",
		"87G8P27Q+JF", "87G8P27X+XX",
		"4.2 km", "11 min", "https://maps/driving",
		"3.9 km", "25 min", "2", "https://maps/transit",
	}, recs[1])
}

func TestAppendPreservesExistingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "distances.csv")
	sink := NewCSV(path)

	require.NoError(t, sink.Append([]processor.Row{sampleRow()}))
	before := readAll(t, path)

	second := sampleRow()
	second.PairID = "p2"
	require.NoError(t, sink.Append([]processor.Row{second}))

	after := readAll(t, path)
	require.Len(t, after, 3)
	assert.Equal(t, before, after[:2], "existing rows untouched, header not repeated")
	assert.Equal(t, "p2", after[2][0])
}

func TestAppendNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "distances.csv")
	require.NoError(t, NewCSV(path).Append(nil))
	assert.NoFileExists(t, path)
}

func TestFailedModesRenderBlank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "distances.csv")
	row := sampleRow()
	row.Transit = processor.Leg{}

	require.NoError(t, NewCSV(path).Append([]processor.Row{row}))

	recs := readAll(t, path)
	got := recs[1]
	assert.Equal(t, "4.2 km", got[7], "driving survives")
	assert.Equal(t, "", got[10])
	assert.Equal(t, "", got[11])
	assert.Equal(t, "", got[12])
	assert.Equal(t, "", got[13])
}

func TestDistanceAndDurationRendering(t *testing.T) {
	tests := []struct {
		name         string
		leg          processor.Leg
		wantDistance string
		wantDuration string
	}{
		{
			name:         "short hop stays in meters",
			leg:          processor.Leg{OK: true, DistanceMeters: 850, DurationSeconds: 120},
			wantDistance: "850 m",
			wantDuration: "2 min",
		},
		{
			name:         "long leg in km with hours",
			leg:          processor.Leg{OK: true, DistanceMeters: 432500, DurationSeconds: 14700},
			wantDistance: "432.5 km",
			wantDuration: "4 h 5 min",
		},
		{
			name:         "seconds round to the nearest minute",
			leg:          processor.Leg{OK: true, DistanceMeters: 1000, DurationSeconds: 95},
			wantDistance: "1 km",
			wantDuration: "2 min",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantDistance, distance(tt.leg))
			assert.Equal(t, tt.wantDuration, duration(tt.leg))
		})
	}
}
