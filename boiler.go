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

// boiler is phase 3: constant-efficiency combustion heating with
// unlimited capacity. It serves all remaining heating demand.
type boiler struct {
	eq  *equipment.Equipment
	eff float64

	out *SiteEnergy
}

func newBoiler(eq *equipment.Equipment, out *SiteEnergy) (*boiler, error) {
	eff, ok := eq.ConstantEfficiency(equipment.Heating)
	if !ok {
		return nil, fmt.Errorf("plantsim: boiler %s requires a positive heating efficiency", eq.ID)
	}
	out.BoilerEff = eff
	return &boiler{eq: eq, eff: eff, out: out}, nil
}

func (b *boiler) name() string { return "boiler" }

func (b *boiler) serve(i int, heatingRemKW, coolingRemKW float64) contribution {
	gas := heatingRemKW / b.eff
	b.out.BoilerHeatingKW[i] = heatingRemKW
	b.out.BoilerGasKWh[i] = gas
	return contribution{
		heatingKW: heatingRemKW,
		gasKWh:    gas,
	}
}

// resistance is phase 4: the unconditional electric backup that closes
// the heating energy balance at COP 1.
type resistance struct {
	out *SiteEnergy
}

func (r *resistance) name() string { return "resistance" }

func (r *resistance) serve(i int, heatingRemKW, coolingRemKW float64) contribution {
	r.out.ResHeatingKW[i] = heatingRemKW
	r.out.ResElecKWh[i] = heatingRemKW
	return contribution{
		heatingKW: heatingRemKW,
		elecKWh:   heatingRemKW,
	}
}
