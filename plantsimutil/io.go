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

package plantsimutil

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/ctessum/requestcache"
	"github.com/tealeg/xlsx"

	"github.com/plantmodel/plantsim"
	"github.com/plantmodel/plantsim/emissions"
)

// loadColumns are the required value columns for a load table. The
// table additionally needs a time axis: either a timestamp column, an
// hour_of_year column, or month, day, and hour columns.
var loadColumns = []string{"t_out_C", "heating_W", "cooling_W"}

// loadTimeFormats are the layouts accepted for load timestamps.
var loadTimeFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

func parseLoadTime(s string) (time.Time, error) {
	for _, layout := range loadTimeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// ReadLoadCSV decodes an hourly load table from CSV, normalizing its
// time axis. year is used when the table carries hour_of_year or
// month/day/hour columns instead of timestamps; it is ignored
// otherwise.
func ReadLoadCSV(r io.Reader, year int) (*plantsim.StandardLoad, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("plantsimutil: reading load CSV header: %v", err)
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("plantsimutil: reading load CSV: %v", err)
		}
		rows = append(rows, rec)
	}
	return parseLoadTable(header, rows, year)
}

// parseLoadTable builds a StandardLoad from a header row and data rows,
// shared by the CSV and Excel readers.
func parseLoadTable(header []string, rows [][]string, year int) (*plantsim.StandardLoad, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range loadColumns {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("plantsimutil: load table is missing required column %s", name)
		}
	}
	timeOf, err := timeAxis(idx, year)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("plantsimutil: load table holds no data rows")
	}

	n := len(rows)
	ts := make([]time.Time, n)
	tOut := make([]float64, n)
	heating := make([]float64, n)
	cooling := make([]float64, n)
	for i, rec := range rows {
		line := i + 2
		if ts[i], err = timeOf(rec); err != nil {
			return nil, fmt.Errorf("plantsimutil: load table row %d: %v", line, err)
		}
		for _, col := range []struct {
			name string
			dst  *float64
		}{
			{"t_out_C", &tOut[i]}, {"heating_W", &heating[i]}, {"cooling_W", &cooling[i]},
		} {
			v, err := strconv.ParseFloat(rec[idx[col.name]], 64)
			if err != nil {
				return nil, fmt.Errorf("plantsimutil: load table row %d: invalid %s %q",
					line, col.name, rec[idx[col.name]])
			}
			*col.dst = v
		}
	}
	return plantsim.NewStandardLoad(ts, tOut, heating, cooling)
}

// timeAxis selects the time normalization for a load table based on
// which columns its header carries, in order of preference: timestamp,
// then hour_of_year (1-based), then month/day/hour.
func timeAxis(idx map[string]int, year int) (func([]string) (time.Time, error), error) {
	if i, ok := idx["timestamp"]; ok {
		return func(rec []string) (time.Time, error) {
			return parseLoadTime(rec[i])
		}, nil
	}
	if i, ok := idx["hour_of_year"]; ok {
		if year <= 0 {
			return nil, fmt.Errorf("plantsimutil: load table uses hour_of_year but no year was given")
		}
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return func(rec []string) (time.Time, error) {
			h, err := strconv.Atoi(rec[i])
			if err != nil || h < 1 {
				return time.Time{}, fmt.Errorf("invalid hour_of_year %q", rec[i])
			}
			return start.Add(time.Duration(h-1) * time.Hour), nil
		}, nil
	}
	mi, mok := idx["month"]
	di, dok := idx["day"]
	hi, hok := idx["hour"]
	if mok && dok && hok {
		if year <= 0 {
			return nil, fmt.Errorf("plantsimutil: load table uses month/day/hour but no year was given")
		}
		return func(rec []string) (time.Time, error) {
			m, err1 := strconv.Atoi(rec[mi])
			d, err2 := strconv.Atoi(rec[di])
			h, err3 := strconv.Atoi(rec[hi])
			if err1 != nil || err2 != nil || err3 != nil {
				return time.Time{}, fmt.Errorf("invalid month/day/hour %q/%q/%q", rec[mi], rec[di], rec[hi])
			}
			return time.Date(year, time.Month(m), d, h, 0, 0, 0, time.UTC), nil
		}, nil
	}
	return nil, fmt.Errorf("plantsimutil: load table has no time axis: want a timestamp, hour_of_year, or month/day/hour column set")
}

// excelCache holds previously opened Microsoft Excel files
// to avoid reading the same file multiple times.
var excelCache *requestcache.Cache

var loadExcelCacheOnce sync.Once

// loadExcelFile loads a Microsoft Excel file from disk, utilizing
// a cache to avoid loading the same file more than once.
func loadExcelFile(fileName string) (*xlsx.File, error) {
	loadExcelCacheOnce.Do(func() {
		excelCache = requestcache.NewCache(func(ctx context.Context, req interface{}) (interface{}, error) {
			filename := req.(string)
			f, err := xlsx.OpenFile(filename)
			if err != nil {
				return nil, fmt.Errorf("plantsimutil: opening xlsx file: %v", err)
			}
			return f, nil
		}, runtime.GOMAXPROCS(-1), requestcache.Memory(100))
	})
	r := excelCache.NewRequest(context.Background(), fileName, fileName)
	fI, err := r.Result()
	if err != nil {
		return nil, err
	}
	return fI.(*xlsx.File), nil
}

// ReadLoadXLSX reads an hourly load table from the given sheet of a
// Microsoft Excel file. An empty sheet name selects the first sheet.
// The first row is the header; the same columns are accepted as for
// ReadLoadCSV.
func ReadLoadXLSX(fileName, sheet string, year int) (*plantsim.StandardLoad, error) {
	f, err := loadExcelFile(fileName)
	if err != nil {
		return nil, err
	}
	var s *xlsx.Sheet
	if sheet == "" {
		if len(f.Sheets) == 0 {
			return nil, fmt.Errorf("plantsimutil: xlsx file %s holds no sheets", fileName)
		}
		s = f.Sheets[0]
	} else {
		var ok bool
		if s, ok = f.Sheet[sheet]; !ok {
			return nil, fmt.Errorf("plantsimutil: xlsx file %s has no sheet %s", fileName, sheet)
		}
	}
	if len(s.Rows) == 0 {
		return nil, fmt.Errorf("plantsimutil: xlsx sheet %s is empty", s.Name)
	}
	rowStrings := func(r *xlsx.Row) []string {
		o := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			o[i] = c.Value
		}
		return o
	}
	header := rowStrings(s.Rows[0])
	var rows [][]string
	for _, r := range s.Rows[1:] {
		if len(r.Cells) == 0 {
			continue
		}
		rows = append(rows, rowStrings(r))
	}
	return parseLoadTable(header, rows, year)
}

// fmtCell formats a float for CSV output, writing NaN (the "phase did
// not run" marker) as an empty cell.
func fmtCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteSiteEnergyCSV encodes one or more dispatch result tables as a
// single CSV stream, tagged by scenario id.
func WriteSiteEnergyCSV(w io.Writer, ses []*plantsim.SiteEnergy) error {
	cw := csv.NewWriter(w)
	header := []string{
		"scen_id", "scen_name", "timestamp", "t_out_C", "heating_W", "cooling_W",
		"elec_kWh", "gas_kWh",
		"hr_heating_kW", "hr_cooling_kW", "hr_cop", "hr_elec_kWh",
		"awhp_cap_h_kW", "awhp_cop_h", "awhp_heating_kW", "awhp_elec_h_kWh",
		"boiler_heating_kW", "boiler_gas_kWh",
		"res_heating_kW", "res_elec_kWh",
		"awhp_cap_c_kW", "awhp_cop_c", "awhp_cooling_kW", "awhp_elec_c_kWh",
		"chiller_cop", "chiller_cooling_kW", "chiller_elec_kWh",
		"refrig_inventory_kgCO2e",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("plantsimutil: writing dispatch CSV: %v", err)
	}
	for _, se := range ses {
		for i := 0; i < se.Len(); i++ {
			rec := []string{
				se.ScenarioID, se.ScenarioName,
				se.Time[i].Format("2006-01-02 15:04:05"),
				fmtCell(se.TOutC[i]), fmtCell(se.HeatingW[i]), fmtCell(se.CoolingW[i]),
				fmtCell(se.ElecKWh[i]), fmtCell(se.GasKWh[i]),
				fmtCell(se.HRHeatingKW[i]), fmtCell(se.HRCoolingKW[i]),
				fmtCell(se.HRCOP[i]), fmtCell(se.HRElecKWh[i]),
				fmtCell(se.AWHPCapHKW[i]), fmtCell(se.AWHPCOPH[i]),
				fmtCell(se.AWHPHeatingKW[i]), fmtCell(se.AWHPElecHKWh[i]),
				fmtCell(se.BoilerHeatingKW[i]), fmtCell(se.BoilerGasKWh[i]),
				fmtCell(se.ResHeatingKW[i]), fmtCell(se.ResElecKWh[i]),
				fmtCell(se.AWHPCapCKW[i]), fmtCell(se.AWHPCOPC[i]),
				fmtCell(se.AWHPCoolingKW[i]), fmtCell(se.AWHPElecCKWh[i]),
				fmtCell(se.ChillerCOP[i]), fmtCell(se.ChillerCoolingKW[i]),
				fmtCell(se.ChillerElecKWh[i]),
				fmtCell(se.RefrigInventoryKgCO2e(i)),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("plantsimutil: writing dispatch CSV: %v", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResultsCSV encodes one or more source-emissions tables as a
// single CSV stream, tagged by equipment and emission scenario ids.
func WriteResultsCSV(w io.Writer, results []*emissions.Result) error {
	cw := csv.NewWriter(w)
	header := []string{
		"scen_id", "scen_name", "em_scen_id", "grid_scenario", "grid_region", "year",
		"timestamp", "rate_gCO2e_per_kWh", "elec_kWh", "gas_kWh",
		"elec_emissions_kg", "gas_emissions_kg", "refrig_emissions_kg", "total_emissions_kg",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("plantsimutil: writing emissions CSV: %v", err)
	}
	for _, r := range results {
		for i := 0; i < r.Len(); i++ {
			rec := []string{
				r.EquipScenarioID, r.EquipScenarioName, r.EmScenarioID,
				r.GridScenario, r.GridRegion, strconv.Itoa(r.Year),
				r.Time[i].Format("2006-01-02 15:04:05"),
				fmtCell(r.RateGPerKWh[i]), fmtCell(r.ElecKWh[i]), fmtCell(r.GasKWh[i]),
				fmtCell(r.ElecEmissionsKg[i]), fmtCell(r.GasEmissionsKg[i]),
				fmtCell(r.RefrigEmissionsKg[i]), fmtCell(r.TotalEmissionsKg[i]),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("plantsimutil: writing emissions CSV: %v", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
