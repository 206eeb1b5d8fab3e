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

package equipment

import "fmt"

// SizingMode selects how the number of air-to-water heat pump units in
// a scenario is derived.
type SizingMode string

const (
	// SizePeakFractionInteger sizes a whole number of units against the
	// given fraction of peak load, using the unit's capacity at a
	// conservative reference temperature, rounding up.
	SizePeakFractionInteger SizingMode = "peak_load_percentage_integer"

	// SizePeakFractionReal is like SizePeakFractionInteger but allows a
	// non-integer unit count.
	SizePeakFractionReal SizingMode = "peak_load_percentage_fractional"

	// SizeUnitCount uses the sizing value directly as a unit count,
	// rounded up with a floor of zero.
	SizeUnitCount SizingMode = "num_of_units"
)

// Scenario is a named plant configuration: which equipment record fills
// each functional role, and how the heat pump is sized. Roles left
// empty are simply not dispatched. A Scenario is immutable during a
// dispatch call.
type Scenario struct {
	ID   string `json:"eq_scen_id" toml:"eq_scen_id"`
	Name string `json:"eq_scen_name" toml:"eq_scen_name"`

	// Equipment ids per role; empty means the role is unused.
	HRWWHP  string `json:"hr_wwhp,omitempty" toml:"hr_wwhp"`
	AWHP    string `json:"awhp,omitempty" toml:"awhp"`
	Boiler  string `json:"boiler,omitempty" toml:"boiler"`
	Chiller string `json:"chiller,omitempty" toml:"chiller"`

	AWHPSizingMode  SizingMode `json:"awhp_sizing_mode,omitempty" toml:"awhp_sizing_mode"`
	AWHPSizingValue float64    `json:"awhp_sizing_value,omitempty" toml:"awhp_sizing_value"`

	// AWHPUseCooling dispatches the heat pump for cooling during hours
	// it produced no heating output.
	AWHPUseCooling bool `json:"awhp_use_cooling,omitempty" toml:"awhp_use_cooling"`

	// ChillerCOP overrides the fallback chiller COP used when no
	// chiller equipment is configured. Zero selects the package default.
	ChillerCOP float64 `json:"chiller_cop,omitempty" toml:"chiller_cop"`
}

// check validates the scenario's own fields. Referential consistency
// against the equipment list is checked by the library.
func (s *Scenario) check() error {
	if s.ID == "" {
		return fmt.Errorf("equipment: scenario is missing an eq_scen_id")
	}
	if s.AWHP != "" {
		switch s.AWHPSizingMode {
		case SizePeakFractionInteger, SizePeakFractionReal, SizeUnitCount:
		case "":
			return fmt.Errorf("equipment: scenario %s uses an AWHP but has no sizing mode", s.ID)
		default:
			return fmt.Errorf("equipment: scenario %s has invalid sizing mode %q", s.ID, s.AWHPSizingMode)
		}
		if s.AWHPSizingValue <= 0 {
			return fmt.Errorf("equipment: scenario %s has non-positive AWHP sizing value %g", s.ID, s.AWHPSizingValue)
		}
	}
	if s.ChillerCOP < 0 {
		return fmt.Errorf("equipment: scenario %s has negative chiller COP", s.ID)
	}
	return nil
}
