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

	"github.com/plantmodel/plantsim/equipment"
)

// contribution is what one technology phase produces for one hour:
// served thermal load, the energy consumed to produce it, and the
// refrigerant leakage inventory standing behind it.
type contribution struct {
	heatingKW    float64
	coolingKW    float64
	elecKWh      float64
	gasKWh       float64
	refrigKgCO2e float64
}

// technology is one dispatch phase. serve computes the phase's
// contribution for hour i given the heating and cooling demand left
// unserved by earlier phases [kW]; it must never serve more than the
// remainders it is given. Each technology records its own detail
// columns into the result table it was built with.
type technology interface {
	name() string
	serve(i int, heatingRemKW, coolingRemKW float64) contribution
}

// unitCount derives the number of heat pump units from the scenario's
// sizing mode. peakW is the series peak demand for the mode being
// sized; refTempC is the conservative outdoor temperature the per-unit
// reference capacity is evaluated at.
func unitCount(scen *equipment.Scenario, e *equipment.Equipment, m equipment.Mode, peakW, refTempC float64) (float64, error) {
	switch scen.AWHPSizingMode {
	case equipment.SizeUnitCount:
		return math.Max(math.Ceil(scen.AWHPSizingValue), 0), nil
	case equipment.SizePeakFractionInteger, equipment.SizePeakFractionReal:
		capRef := 0.0
		if c := e.CapacityCurve(m); c != nil {
			capRef = c.Value(refTempC)
		} else if e.CapacityW > 0 {
			capRef = e.CapacityW
		}
		if capRef <= 0 {
			return 0, fmt.Errorf("plantsim: heat pump %s has no positive %s capacity reference at %g °C",
				e.ID, m, refTempC)
		}
		n := peakW * scen.AWHPSizingValue / capRef
		if scen.AWHPSizingMode == equipment.SizePeakFractionInteger {
			n = math.Ceil(n)
		}
		return math.Max(n, 0), nil
	default:
		return 0, fmt.Errorf("plantsim: scenario %s has invalid sizing mode %q", scen.ID, scen.AWHPSizingMode)
	}
}
