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
	"fmt"
	"time"

	"github.com/ctessum/unit"
	"github.com/plantmodel/plantsim"
)

// Result is the per-hour source-emissions table for one (equipment
// scenario, emission scenario) pair. Emissions are in kg CO2e.
type Result struct {
	EquipScenarioID   string
	EquipScenarioName string
	EmScenarioID      string
	GridScenario      string
	GridRegion        string
	Year              int

	// Time carries the emission scenario's year with the load series'
	// month, day, and hour.
	Time []time.Time

	// RateGPerKWh is the blended grid emission rate joined by
	// (month, hour).
	RateGPerKWh []float64

	ElecKWh []float64
	GasKWh  []float64

	ElecEmissionsKg   []float64
	GasEmissionsKg    []float64
	RefrigEmissionsKg []float64
	TotalEmissionsKg  []float64
}

// Len returns the number of hours in the table.
func (r *Result) Len() int { return len(r.Time) }

// SiteToSource converts one dispatch output table into source
// emissions under one emission scenario. The grid-rate data is sliced
// to the scenario's (grid scenario, region, year), blended per
// (month, hour), and broadcast onto every matching hour of the site
// energy series.
func SiteToSource(se *plantsim.SiteEnergy, scen *Scenario, db *RateDB) (*Result, error) {
	if err := scen.Check(); err != nil {
		return nil, err
	}
	rs, err := db.Slice(scen.GridScenario, scen.GridRegion, scen.Year)
	if err != nil {
		return nil, err
	}
	rates, err := rs.BlendedMonthHour(scen.EmissionType, scen.ShortRunWeighting)
	if err != nil {
		return nil, err
	}

	n := se.Len()
	out := &Result{
		EquipScenarioID:   se.ScenarioID,
		EquipScenarioName: se.ScenarioName,
		EmScenarioID:      scen.ID,
		GridScenario:      scen.GridScenario,
		GridRegion:        scen.GridRegion,
		Year:              scen.Year,

		Time:        make([]time.Time, n),
		RateGPerKWh: make([]float64, n),
		ElecKWh:     append([]float64(nil), se.ElecKWh...),
		GasKWh:      append([]float64(nil), se.GasKWh...),

		ElecEmissionsKg:   make([]float64, n),
		GasEmissionsKg:    make([]float64, n),
		RefrigEmissionsKg: make([]float64, n),
		TotalEmissionsKg:  make([]float64, n),
	}

	gasRate := scen.gasRate()
	for i, t := range se.Time {
		rate, ok := rates[MonthHour{Month: t.Month(), Hour: t.Hour()}]
		if !ok {
			return nil, fmt.Errorf("emissions: no grid rate for month=%d hour=%d in scenario=%s region=%s year=%d",
				t.Month(), t.Hour(), scen.GridScenario, scen.GridRegion, scen.Year)
		}
		out.Time[i] = time.Date(scen.Year, t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
		out.RateGPerKWh[i] = rate
		// kWh × g/kWh → g; ÷1000 → kg.
		out.ElecEmissionsKg[i] = se.ElecKWh[i] * rate / 1000
		out.GasEmissionsKg[i] = se.GasKWh[i] * gasRate / 1000
		out.RefrigEmissionsKg[i] = se.RefrigInventoryKgCO2e(i) * scen.AnnualRefrigLeakage / HoursPerYear
		out.TotalEmissionsKg[i] = out.ElecEmissionsKg[i] + out.GasEmissionsKg[i] + out.RefrigEmissionsKg[i]
	}
	return out, nil
}

// SiteToSourceAll runs every (equipment scenario, emission scenario)
// combination, concatenating the results. Scenarios do not interact;
// each pair is computed independently.
func SiteToSourceAll(ses []*plantsim.SiteEnergy, scens []*Scenario, db *RateDB) ([]*Result, error) {
	results := make([]*Result, 0, len(ses)*len(scens))
	for _, se := range ses {
		for _, scen := range scens {
			r, err := SiteToSource(se, scen, db)
			if err != nil {
				return nil, err
			}
			results = append(results, r)
		}
	}
	return results, nil
}

// Summary returns the annual totals of the result as dimensioned
// quantities: per-source and total emissions in kg CO2e, and site
// energy in Joules.
func (r *Result) Summary() map[string]*unit.Unit {
	var elec, gas, refrig, elecKWh, gasKWh float64
	for i := 0; i < r.Len(); i++ {
		elec += r.ElecEmissionsKg[i]
		gas += r.GasEmissionsKg[i]
		refrig += r.RefrigEmissionsKg[i]
		elecKWh += r.ElecKWh[i]
		gasKWh += r.GasKWh[i]
	}
	const joulesPerKWh = 3.6e6
	return map[string]*unit.Unit{
		"elec_emissions":   unit.New(elec, unit.Kilogram),
		"gas_emissions":    unit.New(gas, unit.Kilogram),
		"refrig_emissions": unit.New(refrig, unit.Kilogram),
		"total_emissions":  unit.New(elec+gas+refrig, unit.Kilogram),
		"site_electricity": unit.New(elecKWh*joulesPerKWh, unit.Joule),
		"site_gas":         unit.New(gasKWh*joulesPerKWh, unit.Joule),
	}
}
