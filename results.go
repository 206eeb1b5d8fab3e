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
	"time"
)

// SiteEnergy is the per-hour dispatch output for one equipment
// scenario. Thermal columns are in kW (numerically equal to kWh over an
// hourly step); energy columns are in kWh. Detail columns for phases
// the scenario does not use are left as NaN, matching the convention
// that "did not run" is distinct from "ran and produced zero".
type SiteEnergy struct {
	ScenarioID   string
	ScenarioName string

	Time     []time.Time
	TOutC    []float64
	HeatingW []float64
	CoolingW []float64

	// Totals.
	ElecKWh []float64
	GasKWh  []float64

	// Phase 1: heat-recovery water-to-water heat pump.
	HRHeatingKW []float64
	HRCoolingKW []float64
	HRCOP       []float64
	HRElecKWh   []float64

	// Phase 2: air-to-water heat pump, heating.
	AWHPUnitsH    float64
	AWHPCapHKW    []float64
	AWHPCOPH      []float64
	AWHPHeatingKW []float64
	AWHPElecHKWh  []float64

	// Phase 3: boiler.
	BoilerEff       float64
	BoilerHeatingKW []float64
	BoilerGasKWh    []float64

	// Phase 4: resistance backup.
	ResHeatingKW []float64
	ResElecKWh   []float64

	// Phase 5: air-to-water heat pump, cooling.
	AWHPUnitsC    float64
	AWHPCapCKW    []float64
	AWHPCOPC      []float64
	AWHPCoolingKW []float64
	AWHPElecCKWh  []float64

	// Phase 6: chiller fallback.
	ChillerCOP       []float64
	ChillerCoolingKW []float64
	ChillerElecKWh   []float64

	// Refrigerant leakage inventory per hour [kg CO2e of installed
	// charge], by phase. The emissions engine amortizes these over a
	// year and applies the scenario's annual leakage fraction.
	HRRefrigKgCO2e      []float64
	AWHPRefrigKgCO2e    []float64
	ChillerRefrigKgCO2e []float64
}

// newSiteEnergy allocates a result table for the given load series,
// with detail columns initialized to NaN and totals to zero.
func newSiteEnergy(load *StandardLoad, id, name string) *SiteEnergy {
	n := load.Len()
	nan := func() []float64 {
		s := make([]float64, n)
		for i := range s {
			s[i] = math.NaN()
		}
		return s
	}
	return &SiteEnergy{
		ScenarioID:   id,
		ScenarioName: name,
		Time:         load.Time,
		TOutC:        load.TOutC,
		HeatingW:     load.HeatingW,
		CoolingW:     load.CoolingW,

		ElecKWh: make([]float64, n),
		GasKWh:  make([]float64, n),

		HRHeatingKW: nan(),
		HRCoolingKW: nan(),
		HRCOP:       nan(),
		HRElecKWh:   nan(),

		AWHPCapHKW:    nan(),
		AWHPCOPH:      nan(),
		AWHPHeatingKW: nan(),
		AWHPElecHKWh:  nan(),

		BoilerHeatingKW: nan(),
		BoilerGasKWh:    nan(),

		ResHeatingKW: nan(),
		ResElecKWh:   nan(),

		AWHPCapCKW:    nan(),
		AWHPCOPC:      nan(),
		AWHPCoolingKW: nan(),
		AWHPElecCKWh:  nan(),

		ChillerCOP:       nan(),
		ChillerCoolingKW: nan(),
		ChillerElecKWh:   nan(),

		HRRefrigKgCO2e:      make([]float64, n),
		AWHPRefrigKgCO2e:    make([]float64, n),
		ChillerRefrigKgCO2e: make([]float64, n),
	}
}

// Len returns the number of hours in the table.
func (r *SiteEnergy) Len() int { return len(r.Time) }

// RefrigInventoryKgCO2e returns the total refrigerant leakage inventory
// for hour i [kg CO2e].
func (r *SiteEnergy) RefrigInventoryKgCO2e(i int) float64 {
	return r.HRRefrigKgCO2e[i] + r.AWHPRefrigKgCO2e[i] + r.ChillerRefrigKgCO2e[i]
}

// ServedHeatingKW returns the sum of per-technology served heating load
// for hour i [kW], treating not-run phases as zero.
func (r *SiteEnergy) ServedHeatingKW(i int) float64 {
	return nanZero(r.HRHeatingKW[i]) + nanZero(r.AWHPHeatingKW[i]) +
		nanZero(r.BoilerHeatingKW[i]) + nanZero(r.ResHeatingKW[i])
}

// ServedCoolingKW returns the sum of per-technology served cooling load
// for hour i [kW], treating not-run phases as zero.
func (r *SiteEnergy) ServedCoolingKW(i int) float64 {
	return nanZero(r.HRCoolingKW[i]) + nanZero(r.AWHPCoolingKW[i]) +
		nanZero(r.ChillerCoolingKW[i])
}

func nanZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
