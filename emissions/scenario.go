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

// Package emissions converts dispatched site energy into source
// emissions using hourly marginal grid emission rates, a fixed gas
// emission factor, and refrigerant leakage accounting.
package emissions

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// DefaultGasEmissionRate is the gas combustion emission factor
// [g CO2e/kWh] used when a scenario does not override it.
const DefaultGasEmissionRate = 239.2

// HoursPerYear amortizes annual refrigerant leakage onto hourly rows.
const HoursPerYear = 8760

// Type selects which life-cycle stages of grid electricity are counted.
type Type string

const (
	// CombustionOnly counts combustion emission rates only.
	CombustionOnly Type = "Combustion only"

	// IncludesPrecombustion adds precombustion (fuel supply chain)
	// rates to the combustion rates.
	IncludesPrecombustion Type = "Includes pre-combustion"
)

// Scenario is one emission-accounting configuration. Multiple
// scenarios may exist per session; each is computed independently and
// results are concatenated, tagged by id.
type Scenario struct {
	ID           string `toml:"em_scen_id"`
	GridScenario string `toml:"grid_scenario"`
	GridRegion   string `toml:"grid_region"`
	TimeZone     string `toml:"time_zone"`
	Year         int    `toml:"year"`

	EmissionType Type `toml:"emission_type"`

	// ShortRunWeighting blends short-run against long-run marginal
	// rates; it must be in [0, 1].
	ShortRunWeighting float64 `toml:"shortrun_weighting"`

	// AnnualRefrigLeakage is the fraction of installed refrigerant
	// charge leaked per year.
	AnnualRefrigLeakage float64 `toml:"annual_refrig_leakage"`

	// AnnualGasLeakage is the fraction of gas throughput leaked per
	// year, carried for reporting.
	AnnualGasLeakage float64 `toml:"annual_ng_leakage"`

	// GasEmissionRate overrides DefaultGasEmissionRate [g CO2e/kWh].
	// Zero selects the default.
	GasEmissionRate float64 `toml:"gas_emission_rate"`
}

// Check validates the scenario configuration.
func (s *Scenario) Check() error {
	if s.ID == "" {
		return fmt.Errorf("emissions: scenario is missing an em_scen_id")
	}
	switch s.EmissionType {
	case CombustionOnly, IncludesPrecombustion:
	default:
		return fmt.Errorf("emissions: scenario %s has invalid emission type %q; use %q or %q",
			s.ID, s.EmissionType, CombustionOnly, IncludesPrecombustion)
	}
	if s.ShortRunWeighting < 0 || s.ShortRunWeighting > 1 {
		return fmt.Errorf("emissions: scenario %s shortrun_weighting=%g but must be within [0, 1]",
			s.ID, s.ShortRunWeighting)
	}
	if s.AnnualRefrigLeakage < 0 {
		return fmt.Errorf("emissions: scenario %s has negative refrigerant leakage", s.ID)
	}
	if s.Year <= 0 {
		return fmt.Errorf("emissions: scenario %s is missing a year", s.ID)
	}
	return nil
}

// gasRate returns the gas emission factor for the scenario [g CO2e/kWh].
func (s *Scenario) gasRate() float64 {
	if s.GasEmissionRate > 0 {
		return s.GasEmissionRate
	}
	return DefaultGasEmissionRate
}

// DefaultScenarios returns the default A/B/C scenario set: the MidCase
// grid scenario for the CAISO region at three analysis years.
func DefaultScenarios() []*Scenario {
	mk := func(id string, year int, w float64) *Scenario {
		return &Scenario{
			ID:                  id,
			GridScenario:        "MidCase",
			GridRegion:          "CAISO",
			TimeZone:            "America/Los_Angeles",
			Year:                year,
			EmissionType:        CombustionOnly,
			ShortRunWeighting:   w,
			AnnualRefrigLeakage: 0.01,
			AnnualGasLeakage:    0.005,
		}
	}
	return []*Scenario{
		mk("em_scenario_a", 2025, 1.0),
		mk("em_scenario_b", 2035, 0.5),
		mk("em_scenario_c", 2045, 0.5),
	}
}

// scenarioFile is the TOML document shape for a scenario list.
type scenarioFile struct {
	Scenario []*Scenario `toml:"emission_scenario"`
}

// ReadScenarios decodes a TOML document holding one or more
// [[emission_scenario]] blocks and validates each.
func ReadScenarios(r io.Reader) ([]*Scenario, error) {
	var f scenarioFile
	if _, err := toml.DecodeReader(r, &f); err != nil {
		return nil, fmt.Errorf("emissions: decoding scenario config: %v", err)
	}
	if len(f.Scenario) == 0 {
		return nil, fmt.Errorf("emissions: scenario config holds no [[emission_scenario]] blocks")
	}
	for _, s := range f.Scenario {
		if err := s.Check(); err != nil {
			return nil, err
		}
	}
	return f.Scenario, nil
}
