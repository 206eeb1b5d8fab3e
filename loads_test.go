/*
Copyright © 2025 the PlantSim authors.
This file is part of PlantSim.

PlantSim is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

PlantSim is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with PlantSim.  If not, see <http://www.gnu.org/licenses/>.*/

package plantsim

import (
	"math"
	"testing"
	"time"
)

// hourlySeries builds n consecutive hourly timestamps starting at the
// given time.
func hourlySeries(start time.Time, n int) []time.Time {
	ts := make([]time.Time, n)
	for i := range ts {
		ts[i] = start.Add(time.Duration(i) * time.Hour)
	}
	return ts
}

func TestNewStandardLoad(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	ts := hourlySeries(start, 3)
	l, err := NewStandardLoad(ts, []float64{-5, 0, 5}, []float64{1000, 2000, 0}, []float64{0, 0, 3000})
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != 3 {
		t.Errorf("Len() = %d, want 3", l.Len())
	}
	if l.PeakHeatingW() != 2000 || l.PeakCoolingW() != 3000 {
		t.Errorf("peaks = (%g, %g), want (2000, 3000)", l.PeakHeatingW(), l.PeakCoolingW())
	}
}

func TestNewStandardLoadErrors(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	ts := hourlySeries(start, 2)
	tests := []struct {
		name                   string
		ts                     []time.Time
		tOut, heating, cooling []float64
	}{
		{"empty", nil, nil, nil, nil},
		{"length mismatch", ts, []float64{0}, []float64{0, 0}, []float64{0, 0}},
		{"NaN temperature", ts, []float64{math.NaN(), 0}, []float64{0, 0}, []float64{0, 0}},
		{"negative heating", ts, []float64{0, 0}, []float64{-1, 0}, []float64{0, 0}},
		{"negative cooling", ts, []float64{0, 0}, []float64{0, 0}, []float64{0, -1}},
		{"gap in series", []time.Time{start, start.Add(2 * time.Hour)},
			[]float64{0, 0}, []float64{0, 0}, []float64{0, 0}},
		{"out of order", []time.Time{start.Add(time.Hour), start},
			[]float64{0, 0}, []float64{0, 0}, []float64{0, 0}},
	}
	for _, test := range tests {
		if _, err := NewStandardLoad(test.ts, test.tOut, test.heating, test.cooling); err == nil {
			t.Errorf("%s: expected an error", test.name)
		}
	}
}

func TestSliceYear(t *testing.T) {
	// 48 hours straddling a year boundary.
	start := time.Date(2022, time.December, 31, 0, 0, 0, 0, time.UTC)
	n := 48
	ts := hourlySeries(start, n)
	col := make([]float64, n)
	for i := range col {
		col[i] = float64(i)
	}
	zeros := make([]float64, n)
	l, err := NewStandardLoad(ts, col, zeros, zeros)
	if err != nil {
		t.Fatal(err)
	}
	l23, err := l.SliceYear(2023)
	if err != nil {
		t.Fatal(err)
	}
	if l23.Len() != 24 {
		t.Errorf("2023 slice has %d hours, want 24", l23.Len())
	}
	if l23.Time[0].Year() != 2023 || l23.TOutC[0] != 24 {
		t.Errorf("2023 slice starts at %v with t_out %g", l23.Time[0], l23.TOutC[0])
	}
	if _, err := l.SliceYear(2030); err == nil {
		t.Error("slicing an absent year should fail")
	}
}

func TestStats(t *testing.T) {
	start := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	ts := hourlySeries(start, 4)
	l, err := NewStandardLoad(ts,
		[]float64{10, 20, 30, 40},
		[]float64{0, 0, 0, 0},
		[]float64{100, 200, 300, 400})
	if err != nil {
		t.Fatal(err)
	}
	s := l.Stats()["t_out_C"]
	if s.Count != 4 {
		t.Errorf("count = %d, want 4", s.Count)
	}
	if s.Mean != 25 {
		t.Errorf("mean = %g, want 25", s.Mean)
	}
	if s.Min != 10 || s.Max != 40 {
		t.Errorf("range = [%g, %g], want [10, 40]", s.Min, s.Max)
	}
	if s.Median < 20 || s.Median > 30 {
		t.Errorf("median = %g, want within [20, 30]", s.Median)
	}
}
