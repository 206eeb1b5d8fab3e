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

// heatRecovery is phase 1: a water-to-water heat pump that produces hot
// and chilled water simultaneously. It runs on its part-load
// (capacity-vs-COP) curve; the operating window is the curve's capacity
// domain, and below the minimum capacity the unit does not run at all.
type heatRecovery struct {
	eq  *equipment.Equipment
	plr *equipment.Curve

	// minKW and maxKW bound the heating output the unit can run at.
	minKW, maxKW float64

	// coolPerHeat is the fraction of heating output that converts to
	// usable cooling at the least-waste-heat point (the maximum-COP
	// sample of the part-load curve).
	coolPerHeat float64

	refrigKgCO2e float64

	load *StandardLoad
	out  *SiteEnergy
}

func newHeatRecovery(eq *equipment.Equipment, load *StandardLoad, out *SiteEnergy) (*heatRecovery, error) {
	plr := eq.PartLoadCurve(equipment.Heating)
	if plr == nil {
		return nil, fmt.Errorf("plantsim: heat-recovery unit %s lacks a part-load (capacity-vs-COP) curve", eq.ID)
	}
	_, copStar := plr.MaxYPoint()
	if copStar <= 1 {
		return nil, fmt.Errorf("plantsim: heat-recovery unit %s has maximum COP %g; must exceed 1", eq.ID, copStar)
	}
	return &heatRecovery{
		eq:           eq,
		plr:          plr,
		minKW:        plr.Min() / 1000,
		maxKW:        plr.Max() / 1000,
		coolPerHeat:  1 - 1/copStar,
		refrigKgCO2e: eq.RefrigerantInventoryKgCO2e(),
		load:         load,
		out:          out,
	}, nil
}

func (h *heatRecovery) name() string { return "hr_wwhp" }

func (h *heatRecovery) serve(i int, heatingRemKW, coolingRemKW float64) contribution {
	// The installed charge leaks whether or not the unit runs this hour.
	h.out.HRRefrigKgCO2e[i] = h.refrigKgCO2e
	if !h.eq.InBounds(equipment.Heating, h.load.TOutC[i]) {
		return contribution{refrigKgCO2e: h.refrigKgCO2e}
	}

	// Heating output that keeps both services in simultaneous balance.
	target := math.Min(heatingRemKW, coolingRemKW/h.coolPerHeat)
	if target < h.minKW {
		// Below the unit's minimum the compressor cannot hold a valid
		// operating point.
		return contribution{refrigKgCO2e: h.refrigKgCO2e}
	}
	served := math.Min(target, h.maxKW)

	cop := h.plr.Value(served * 1000)
	cooling := served * (1 - 1/cop)
	// COP at the actual load point can differ from the least-waste-heat
	// point; never claim more cooling than remains.
	cooling = math.Min(cooling, coolingRemKW)
	elec := served / cop

	h.out.HRHeatingKW[i] = served
	h.out.HRCoolingKW[i] = cooling
	h.out.HRCOP[i] = cop
	h.out.HRElecKWh[i] = elec
	return contribution{
		heatingKW:    served,
		coolingKW:    cooling,
		elecKWh:      elec,
		refrigKgCO2e: h.refrigKgCO2e,
	}
}
