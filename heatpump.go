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

// Reference outdoor temperatures for unit sizing: a conservative cold
// condition for heating capacity, a conservative hot condition for
// cooling capacity.
const (
	awhpHeatingSizingTempC = 0.0
	awhpCoolingSizingTempC = 35.0
)

// awhpHeating is phase 2: an air-to-water heat pump serving heating
// demand, with per-unit capacity and COP interpolated at the hour's
// outdoor temperature and a scenario-derived unit count.
type awhpHeating struct {
	eq    *equipment.Equipment
	units float64

	refrigKgCO2e float64

	load *StandardLoad
	out  *SiteEnergy
}

func newAWHPHeating(scen *equipment.Scenario, eq *equipment.Equipment, load *StandardLoad, out *SiteEnergy) (*awhpHeating, error) {
	if eq.COPCurve(equipment.Heating) == nil {
		return nil, fmt.Errorf("plantsim: heat pump %s lacks a heating COP curve", eq.ID)
	}
	if _, err := eq.CapacityAt(equipment.Heating, awhpHeatingSizingTempC); err != nil {
		return nil, err
	}
	units, err := unitCount(scen, eq, equipment.Heating, load.PeakHeatingW(), awhpHeatingSizingTempC)
	if err != nil {
		return nil, err
	}
	out.AWHPUnitsH = units
	return &awhpHeating{
		eq:           eq,
		units:        units,
		refrigKgCO2e: eq.RefrigerantInventoryKgCO2e() * units,
		load:         load,
		out:          out,
	}, nil
}

func (p *awhpHeating) name() string { return "awhp_heating" }

func (p *awhpHeating) serve(i int, heatingRemKW, coolingRemKW float64) contribution {
	p.out.AWHPRefrigKgCO2e[i] = p.refrigKgCO2e
	tOut := p.load.TOutC[i]
	capUnitW, err := p.eq.CapacityAt(equipment.Heating, tOut)
	if err != nil {
		// Capacity data was checked at setup; this cannot happen during
		// dispatch.
		panic(err)
	}
	capKW := capUnitW / 1000 * p.units
	cop := p.eq.COPAt(equipment.Heating, tOut)

	served := math.Min(heatingRemKW, capKW)
	elec := 0.0
	if served > 0 {
		elec = served / cop
	}

	p.out.AWHPCapHKW[i] = capKW
	p.out.AWHPCOPH[i] = cop
	p.out.AWHPHeatingKW[i] = served
	p.out.AWHPElecHKWh[i] = elec
	return contribution{
		heatingKW:    served,
		elecKWh:      elec,
		refrigKgCO2e: p.refrigKgCO2e,
	}
}

// awhpCooling is phase 5: the scenario's heat pump serving cooling
// demand. A single reversible unit runs in one mode at a time, so the
// phase only fires during hours the heating phase produced zero output.
type awhpCooling struct {
	eq    *equipment.Equipment
	units float64

	load *StandardLoad
	out  *SiteEnergy
}

func newAWHPCooling(scen *equipment.Scenario, eq *equipment.Equipment, load *StandardLoad, out *SiteEnergy) (*awhpCooling, error) {
	if eq.COPCurve(equipment.Cooling) == nil {
		return nil, fmt.Errorf("plantsim: heat pump %s lacks a cooling COP curve", eq.ID)
	}
	if _, err := eq.CapacityAt(equipment.Cooling, awhpCoolingSizingTempC); err != nil {
		return nil, err
	}
	units, err := unitCount(scen, eq, equipment.Cooling, load.PeakCoolingW(), awhpCoolingSizingTempC)
	if err != nil {
		return nil, err
	}
	out.AWHPUnitsC = units
	return &awhpCooling{eq: eq, units: units, load: load, out: out}, nil
}

func (p *awhpCooling) name() string { return "awhp_cooling" }

func (p *awhpCooling) serve(i int, heatingRemKW, coolingRemKW float64) contribution {
	// One reversible unit, one mode at a time.
	if h := p.out.AWHPHeatingKW[i]; !math.IsNaN(h) && h > 0 {
		return contribution{}
	}
	tOut := p.load.TOutC[i]
	capUnitW, err := p.eq.CapacityAt(equipment.Cooling, tOut)
	if err != nil {
		panic(err)
	}
	capKW := capUnitW / 1000 * p.units
	cop := p.eq.COPAt(equipment.Cooling, tOut)

	served := math.Min(coolingRemKW, capKW)
	elec := 0.0
	if served > 0 {
		elec = served / cop
	}

	p.out.AWHPCapCKW[i] = capKW
	p.out.AWHPCOPC[i] = cop
	p.out.AWHPCoolingKW[i] = served
	p.out.AWHPElecCKWh[i] = elec
	return contribution{
		coolingKW: served,
		elecKWh:   elec,
	}
}
