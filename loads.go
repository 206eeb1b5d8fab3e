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
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// StandardLoad is the canonical hourly load series: outdoor temperature
// and thermal heating/cooling demand, indexed by timestamp. The series
// is strictly hourly and gap-free; it is validated once on construction
// and treated as immutable by the dispatch engine.
type StandardLoad struct {
	Time     []time.Time
	TOutC    []float64 // outdoor air temperature [°C]
	HeatingW []float64 // heating hot water demand [W]
	CoolingW []float64 // chilled water demand [W]
}

// NewStandardLoad validates and wraps an hourly load series. The rows
// must already be in chronological order with no missing hours.
func NewStandardLoad(ts []time.Time, tOut, heating, cooling []float64) (*StandardLoad, error) {
	n := len(ts)
	if n == 0 {
		return nil, fmt.Errorf("plantsim: load series is empty")
	}
	for name, col := range map[string][]float64{
		"t_out_C": tOut, "heating_W": heating, "cooling_W": cooling,
	} {
		if len(col) != n {
			return nil, fmt.Errorf("plantsim: load column %s has %d rows; want %d", name, len(col), n)
		}
		for i, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("plantsim: load column %s has invalid value at row %d", name, i)
			}
		}
	}
	for i, v := range heating {
		if v < 0 {
			return nil, fmt.Errorf("plantsim: negative heating demand %g W at row %d", v, i)
		}
	}
	for i, v := range cooling {
		if v < 0 {
			return nil, fmt.Errorf("plantsim: negative cooling demand %g W at row %d", v, i)
		}
	}
	for i := 1; i < n; i++ {
		if d := ts[i].Sub(ts[i-1]); d != time.Hour {
			return nil, fmt.Errorf("plantsim: load series is not strictly hourly: %v between rows %d and %d",
				d, i-1, i)
		}
	}
	return &StandardLoad{Time: ts, TOutC: tOut, HeatingW: heating, CoolingW: cooling}, nil
}

// Len returns the number of hours in the series.
func (l *StandardLoad) Len() int { return len(l.Time) }

// SliceYear returns the subset of the series falling in the given
// calendar year.
func (l *StandardLoad) SliceYear(year int) (*StandardLoad, error) {
	var ts []time.Time
	var tOut, heating, cooling []float64
	for i, t := range l.Time {
		if t.Year() == year {
			ts = append(ts, t)
			tOut = append(tOut, l.TOutC[i])
			heating = append(heating, l.HeatingW[i])
			cooling = append(cooling, l.CoolingW[i])
		}
	}
	if len(ts) == 0 {
		return nil, fmt.Errorf("plantsim: load series has no hours in year %d", year)
	}
	return NewStandardLoad(ts, tOut, heating, cooling)
}

// ColumnStats summarizes one load column.
type ColumnStats struct {
	Count            int
	Mean, Std        float64
	Min, Max         float64
	P25, Median, P75 float64
}

// Stats returns summary statistics for each load column, keyed by
// column name (t_out_C, heating_W, cooling_W).
func (l *StandardLoad) Stats() map[string]ColumnStats {
	out := make(map[string]ColumnStats, 3)
	for name, col := range map[string][]float64{
		"t_out_C": l.TOutC, "heating_W": l.HeatingW, "cooling_W": l.CoolingW,
	} {
		sorted := append([]float64(nil), col...)
		sort.Float64s(sorted)
		out[name] = ColumnStats{
			Count:  len(col),
			Mean:   stat.Mean(col, nil),
			Std:    stat.StdDev(col, nil),
			Min:    floats.Min(col),
			Max:    floats.Max(col),
			P25:    stat.Quantile(0.25, stat.Empirical, sorted, nil),
			Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
			P75:    stat.Quantile(0.75, stat.Empirical, sorted, nil),
		}
	}
	return out
}

// PeakHeatingW returns the maximum heating demand in the series [W].
func (l *StandardLoad) PeakHeatingW() float64 { return floats.Max(l.HeatingW) }

// PeakCoolingW returns the maximum cooling demand in the series [W].
func (l *StandardLoad) PeakCoolingW() float64 { return floats.Max(l.CoolingW) }
