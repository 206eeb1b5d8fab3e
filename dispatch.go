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

// Package plantsim estimates the site energy consumption of a
// building's heating and cooling plant. It sequentially allocates each
// hour's thermal demand across the technologies named in an equipment
// scenario — heat-recovery heat pump, air-to-water heat pump, boiler,
// resistance backup, and chiller — respecting each technology's
// temperature-dependent capacity, and reports the resulting
// electricity and gas draw per hour. The emissions subpackage converts
// that site energy into source emissions.
package plantsim

import (
	"fmt"

	"github.com/plantmodel/plantsim/equipment"
)

// Dispatch allocates the load series across the technologies of each
// named scenario in the library, returning one site-energy table per
// scenario. With no ids given, every scenario in the library is
// dispatched. Scenarios are independent: dispatching them together or
// one at a time yields identical per-scenario results.
func Dispatch(load *StandardLoad, lib *equipment.Library, scenarioIDs ...string) ([]*SiteEnergy, error) {
	if len(scenarioIDs) == 0 {
		scenarioIDs = lib.ScenarioIDs()
	}
	results := make([]*SiteEnergy, 0, len(scenarioIDs))
	for _, id := range scenarioIDs {
		r, err := dispatchScenario(load, lib, id)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// dispatchScenario runs the six-phase allocation for one scenario.
// Phase order is strict precedence, modeling real plant control
// sequencing: heat recovery first (simultaneous service is free),
// electrified heating next, combustion and resistance as backup, and
// the cooling fallback last. A later phase only ever sees the demand
// earlier phases left unserved.
func dispatchScenario(load *StandardLoad, lib *equipment.Library, scenarioID string) (*SiteEnergy, error) {
	scen, err := lib.Scenario(scenarioID)
	if err != nil {
		return nil, err
	}
	out := newSiteEnergy(load, scen.ID, scen.Name)

	var phases []technology

	if scen.HRWWHP != "" {
		eq, err := lib.Get(scen.HRWWHP)
		if err != nil {
			return nil, err
		}
		hr, err := newHeatRecovery(eq, load, out)
		if err != nil {
			return nil, err
		}
		phases = append(phases, hr)
	}

	if scen.AWHP != "" {
		eq, err := lib.Get(scen.AWHP)
		if err != nil {
			return nil, err
		}
		hp, err := newAWHPHeating(scen, eq, load, out)
		if err != nil {
			return nil, err
		}
		phases = append(phases, hp)
	}

	if scen.Boiler != "" {
		eq, err := lib.Get(scen.Boiler)
		if err != nil {
			return nil, err
		}
		b, err := newBoiler(eq, out)
		if err != nil {
			return nil, err
		}
		phases = append(phases, b)
	}

	// Resistance backup is unconditional; it guarantees the heating
	// balance closes even with no boiler configured.
	phases = append(phases, &resistance{out: out})

	if scen.AWHP != "" && scen.AWHPUseCooling {
		eq, err := lib.Get(scen.AWHP)
		if err != nil {
			return nil, err
		}
		hp, err := newAWHPCooling(scen, eq, load, out)
		if err != nil {
			return nil, err
		}
		phases = append(phases, hp)
	}

	var chillerEq *equipment.Equipment
	if scen.Chiller != "" {
		if chillerEq, err = lib.Get(scen.Chiller); err != nil {
			return nil, err
		}
	}
	ch, err := newChiller(scen, chillerEq, load, out)
	if err != nil {
		return nil, err
	}
	phases = append(phases, ch)

	for i := 0; i < load.Len(); i++ {
		heatingRem := load.HeatingW[i] / 1000
		coolingRem := load.CoolingW[i] / 1000
		for _, p := range phases {
			c := p.serve(i, heatingRem, coolingRem)
			if c.heatingKW > heatingRem+1e-9 || c.coolingKW > coolingRem+1e-9 {
				return nil, fmt.Errorf("plantsim: phase %s overserved hour %d in scenario %s",
					p.name(), i, scen.ID)
			}
			heatingRem -= c.heatingKW
			coolingRem -= c.coolingKW
			// Guard against float jitter accumulating into the next phase.
			if heatingRem < 0 {
				heatingRem = 0
			}
			if coolingRem < 0 {
				coolingRem = 0
			}
			out.ElecKWh[i] += c.elecKWh
			out.GasKWh[i] += c.gasKWh
		}
	}
	return out, nil
}
