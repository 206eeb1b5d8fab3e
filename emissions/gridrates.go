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

package emissions

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/ctessum/requestcache"
)

// NoDataError reports that no grid emission-rate data exists for a
// requested (scenario, region, year) combination.
type NoDataError struct {
	GridScenario string
	Region       string
	Year         int
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("emissions: no grid rate data for scenario=%s region=%s year=%d",
		e.GridScenario, e.Region, e.Year)
}

// RateDB holds hourly marginal grid emission rates for one or more
// (grid scenario, region, year) combinations. Rates are in
// g CO2e/kWh: long-run and short-run, combustion (c) and
// precombustion (p).
type RateDB struct {
	GridScenario []string
	Region       []string
	Year         []int
	Time         []time.Time
	LRMERc       []float64
	LRMERp       []float64
	SRMERc       []float64
	SRMERp       []float64

	// sliceCache memoizes per-(scenario, region, year) slices so that
	// repeated emission scenarios do not re-filter the full table.
	sliceCache    *requestcache.Cache
	loadSliceOnce sync.Once
}

// Len returns the number of rate rows.
func (db *RateDB) Len() int { return len(db.Time) }

// RateSet is the hourly rate series for one (grid scenario, region,
// year) combination.
type RateSet struct {
	GridScenario string
	Region       string
	Year         int
	Time         []time.Time
	LRMERc       []float64
	LRMERp       []float64
	SRMERc       []float64
	SRMERp       []float64
}

type sliceKey struct {
	GridScenario string
	Region       string
	Year         int
}

// Slice returns the rate series for the given combination, failing
// with a *NoDataError when none exists.
func (db *RateDB) Slice(gridScenario, region string, year int) (*RateSet, error) {
	db.loadSliceOnce.Do(func() {
		db.sliceCache = requestcache.NewCache(db.slice, runtime.GOMAXPROCS(-1),
			requestcache.Deduplicate(), requestcache.Memory(100))
	})
	key := sliceKey{GridScenario: gridScenario, Region: region, Year: year}
	req := db.sliceCache.NewRequest(context.Background(), key,
		fmt.Sprintf("%s_%s_%d", gridScenario, region, year))
	iface, err := req.Result()
	if err != nil {
		return nil, err
	}
	return iface.(*RateSet), nil
}

// slice filters the table to one (scenario, region, year) combination.
func (db *RateDB) slice(ctx context.Context, request interface{}) (interface{}, error) {
	key := request.(sliceKey)
	rs := &RateSet{GridScenario: key.GridScenario, Region: key.Region, Year: key.Year}
	for i := range db.Time {
		if db.GridScenario[i] != key.GridScenario || db.Region[i] != key.Region || db.Year[i] != key.Year {
			continue
		}
		rs.Time = append(rs.Time, db.Time[i])
		rs.LRMERc = append(rs.LRMERc, db.LRMERc[i])
		rs.LRMERp = append(rs.LRMERp, db.LRMERp[i])
		rs.SRMERc = append(rs.SRMERc, db.SRMERc[i])
		rs.SRMERp = append(rs.SRMERp, db.SRMERp[i])
	}
	if len(rs.Time) == 0 {
		return nil, &NoDataError{GridScenario: key.GridScenario, Region: key.Region, Year: key.Year}
	}
	return rs, nil
}

// MonthHour keys a rate to a month-of-year and hour-of-day. The rate
// data source is a representative year, so rates are grouped to this
// key and broadcast onto every matching hour of the load series.
type MonthHour struct {
	Month time.Month
	Hour  int
}

// BlendedMonthHour computes the blended emission rate [g CO2e/kWh] per
// (month, hour) group. For CombustionOnly the blend is
// lrmer_c·(1−w) + srmer_c·w; for IncludesPrecombustion both numerator
// components carry full life-cycle rates (c+p summed) before the same
// blend is applied. w is the short-run weighting.
func (rs *RateSet) BlendedMonthHour(typ Type, w float64) (map[MonthHour]float64, error) {
	if w < 0 || w > 1 {
		return nil, fmt.Errorf("emissions: shortrun weighting %g outside [0, 1]", w)
	}
	sums := make(map[MonthHour]float64)
	counts := make(map[MonthHour]int)
	for i, t := range rs.Time {
		var lr, sr float64
		switch typ {
		case CombustionOnly:
			lr, sr = rs.LRMERc[i], rs.SRMERc[i]
		case IncludesPrecombustion:
			lr = rs.LRMERc[i] + rs.LRMERp[i]
			sr = rs.SRMERc[i] + rs.SRMERp[i]
		default:
			return nil, fmt.Errorf("emissions: invalid emission type %q", typ)
		}
		key := MonthHour{Month: t.Month(), Hour: t.Hour()}
		sums[key] += lr*(1-w) + sr*w
		counts[key]++
	}
	for key := range sums {
		sums[key] /= float64(counts[key])
	}
	return sums, nil
}

// rateColumns are the required CSV columns for grid rate data.
var rateColumns = []string{
	"emission_scenario", "gea_grid_region", "year", "timestamp",
	"lrmer_co2e_c", "lrmer_co2e_p", "srmer_co2e_c", "srmer_co2e_p",
}

// ReadRatesCSV decodes an hourly grid-rate table from CSV. The header
// must contain the canonical rate columns; extra columns are ignored.
func ReadRatesCSV(r io.Reader) (*RateDB, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("emissions: reading rate CSV header: %v", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range rateColumns {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("emissions: rate CSV is missing required column %s", name)
		}
	}
	db := new(RateDB)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("emissions: reading rate CSV line %d: %v", line, err)
		}
		year, err := strconv.Atoi(rec[idx["year"]])
		if err != nil {
			return nil, fmt.Errorf("emissions: rate CSV line %d: invalid year %q", line, rec[idx["year"]])
		}
		t, err := parseTimestamp(rec[idx["timestamp"]])
		if err != nil {
			return nil, fmt.Errorf("emissions: rate CSV line %d: %v", line, err)
		}
		vals := make([]float64, 4)
		for i, name := range []string{"lrmer_co2e_c", "lrmer_co2e_p", "srmer_co2e_c", "srmer_co2e_p"} {
			v, err := strconv.ParseFloat(rec[idx[name]], 64)
			if err != nil {
				return nil, fmt.Errorf("emissions: rate CSV line %d: invalid %s %q", line, name, rec[idx[name]])
			}
			vals[i] = v
		}
		db.GridScenario = append(db.GridScenario, rec[idx["emission_scenario"]])
		db.Region = append(db.Region, rec[idx["gea_grid_region"]])
		db.Year = append(db.Year, year)
		db.Time = append(db.Time, t)
		db.LRMERc = append(db.LRMERc, vals[0])
		db.LRMERp = append(db.LRMERp, vals[1])
		db.SRMERc = append(db.SRMERc, vals[2])
		db.SRMERp = append(db.SRMERp, vals[3])
	}
	if db.Len() == 0 {
		return nil, fmt.Errorf("emissions: rate CSV holds no data rows")
	}
	return db, nil
}

// timestampFormats are the layouts accepted for rate timestamps.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
