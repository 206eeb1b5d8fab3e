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

	"github.com/plantmodel/plantsim/equipment"
)

// DefaultChillerCOP is the fallback chiller coefficient of performance
// used when a scenario configures no chiller equipment and no override.
const DefaultChillerCOP = 5.0

// chiller is phase 6: the unconditional cooling fallback. With chiller
// equipment configured it uses the unit's constant efficiency as COP,
// or its COP-vs-temperature curve when no efficiency is set; otherwise
// it runs at a fixed fallback COP.
type chiller struct {
	eq *equipment.Equipment // may be nil

	// fixedCOP is used when eq is nil or eq has a constant efficiency.
	fixedCOP float64
	// useCurve selects per-hour COP interpolation instead of fixedCOP.
	useCurve bool

	refrigKgCO2e float64

	load *StandardLoad
	out  *SiteEnergy
}

func newChiller(scen *equipment.Scenario, eq *equipment.Equipment, load *StandardLoad, out *SiteEnergy) (*chiller, error) {
	c := &chiller{eq: eq, fixedCOP: DefaultChillerCOP, load: load, out: out}
	if scen.ChillerCOP > 0 {
		c.fixedCOP = scen.ChillerCOP
	}
	if eq != nil {
		c.refrigKgCO2e = eq.RefrigerantInventoryKgCO2e()
		if eff, ok := eq.ConstantEfficiency(equipment.Cooling); ok {
			c.fixedCOP = eff
		} else if eq.COPCurve(equipment.Cooling) != nil {
			c.useCurve = true
		} else {
			return nil, fmt.Errorf("plantsim: chiller %s requires a positive efficiency or a cooling COP curve", eq.ID)
		}
	}
	return c, nil
}

func (c *chiller) name() string { return "chiller" }

func (c *chiller) serve(i int, heatingRemKW, coolingRemKW float64) contribution {
	c.out.ChillerRefrigKgCO2e[i] = c.refrigKgCO2e
	cop := c.fixedCOP
	if c.useCurve {
		cop = c.eq.COPAt(equipment.Cooling, c.load.TOutC[i])
	}
	elec := coolingRemKW / cop
	c.out.ChillerCOP[i] = cop
	c.out.ChillerCoolingKW[i] = coolingRemKW
	c.out.ChillerElecKWh[i] = elec
	return contribution{
		coolingKW:    coolingRemKW,
		elecKWh:      elec,
		refrigKgCO2e: c.refrigKgCO2e,
	}
}
