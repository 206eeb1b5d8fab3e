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

// Package equipment holds the HVAC equipment catalog: per-equipment
// temperature-dependent performance curves, named plant scenarios, and
// the library document that binds them together.
package equipment

import (
	"fmt"
	"math"
)

// Type identifies the technology class of a piece of equipment.
type Type string

// The technology classes a scenario can dispatch into.
const (
	HeatRecoveryWWHP Type = "hr_wwhp"
	AirToWaterHP     Type = "awhp"
	BoilerType       Type = "boiler"
	ChillerType      Type = "chiller"
	ResistanceHeater Type = "resistance"
)

// Mode selects the heating or cooling performance data of a unit.
type Mode string

// The operating modes a performance map may be keyed by.
const (
	Heating Mode = "heating"
	Cooling Mode = "cooling"
)

// Performance holds the performance data for one operating mode of one
// piece of equipment. Which fields are required depends on the role the
// equipment is dispatched into: heat pumps need Capacity and COP,
// heat-recovery units need PartLoad, and combustion equipment needs
// Efficiency.
type Performance struct {
	// Capacity relates outdoor temperature [°C] to per-unit thermal
	// capacity [W].
	Capacity *Curve `json:"cap_curve,omitempty" toml:"cap_curve"`

	// COP relates outdoor temperature [°C] to coefficient of performance.
	COP *Curve `json:"cop_curve,omitempty" toml:"cop_curve"`

	// PartLoad relates operating capacity [W] to COP at that load point,
	// for heat-recovery equipment.
	PartLoad *Curve `json:"plr_curve,omitempty" toml:"plr_curve"`

	// Efficiency is a constant thermal efficiency for combustion
	// equipment (or a constant COP for a chiller). Zero means unset.
	Efficiency float64 `json:"efficiency,omitempty" toml:"efficiency"`

	// MinTOutC and MaxTOutC bound the outdoor temperatures [°C] at which
	// the unit can run. Outside the bounds the unit's capacity is zero
	// regardless of what its curves would interpolate to. Nil means
	// unbounded.
	MinTOutC *float64 `json:"min_t_out_C,omitempty" toml:"min_t_out_C"`
	MaxTOutC *float64 `json:"max_t_out_C,omitempty" toml:"max_t_out_C"`
}

// Equipment is one catalog record for a physical unit or technology.
type Equipment struct {
	ID           string `json:"eq_id" toml:"eq_id"`
	Type         Type   `json:"eq_type" toml:"eq_type"`
	Model        string `json:"model,omitempty" toml:"model"`
	Manufacturer string `json:"manufacturer,omitempty" toml:"manufacturer"`
	Fuel         string `json:"fuel,omitempty" toml:"fuel"`

	// CapacityW is an optional fixed thermal capacity [W], used when no
	// capacity curve is available.
	CapacityW float64 `json:"capacity_W,omitempty" toml:"capacity_W"`

	// Refrigerant data, for leakage emissions accounting.
	Refrigerant         string  `json:"refrigerant,omitempty" toml:"refrigerant"`
	RefrigerantChargeKg float64 `json:"refrigerant_charge_kg,omitempty" toml:"refrigerant_charge_kg"`
	RefrigerantGWP      float64 `json:"refrigerant_gwp,omitempty" toml:"refrigerant_gwp"`

	// Performance maps operating mode to performance data.
	Performance map[Mode]*Performance `json:"performance,omitempty" toml:"performance"`
}

// perf returns the performance data for the given mode, or nil if the
// equipment carries none.
func (e *Equipment) perf(m Mode) *Performance {
	if e.Performance == nil {
		return nil
	}
	return e.Performance[m]
}

// InBounds reports whether the unit can run at outdoor temperature
// tOut [°C] in the given mode. Outside its declared operating bounds a
// unit cannot run at all, independent of what its curves interpolate to.
func (e *Equipment) InBounds(m Mode, tOut float64) bool {
	p := e.perf(m)
	if p == nil {
		return true
	}
	if p.MinTOutC != nil && tOut < *p.MinTOutC {
		return false
	}
	if p.MaxTOutC != nil && tOut > *p.MaxTOutC {
		return false
	}
	return true
}

// CapacityAt returns the unit's per-unit thermal capacity [W] at outdoor
// temperature tOut [°C] in the given mode. Temperatures outside the
// unit's operating bounds yield zero capacity. An error is returned
// when the equipment carries no capacity information at all.
func (e *Equipment) CapacityAt(m Mode, tOut float64) (float64, error) {
	if !e.InBounds(m, tOut) {
		return 0, nil
	}
	if p := e.perf(m); p != nil && p.Capacity != nil {
		return p.Capacity.Value(tOut), nil
	}
	if e.CapacityW > 0 {
		return e.CapacityW, nil
	}
	return 0, fmt.Errorf("equipment: %s has no %s capacity information (cap_curve or capacity_W)", e.ID, m)
}

// COPAt returns the unit's COP at outdoor temperature tOut [°C] in the
// given mode, or NaN if the equipment has no COP curve. Combustion
// equipment uses Efficiency instead and legitimately returns NaN here.
func (e *Equipment) COPAt(m Mode, tOut float64) float64 {
	if p := e.perf(m); p != nil && p.COP != nil {
		return p.COP.Value(tOut)
	}
	return math.NaN()
}

// PartLoadCurve returns the part-load (capacity-vs-COP) curve for the
// given mode, or nil if the equipment carries none.
func (e *Equipment) PartLoadCurve(m Mode) *Curve {
	if p := e.perf(m); p != nil {
		return p.PartLoad
	}
	return nil
}

// CapacityCurve returns the capacity-vs-temperature curve for the given
// mode, or nil if the equipment carries none.
func (e *Equipment) CapacityCurve(m Mode) *Curve {
	if p := e.perf(m); p != nil {
		return p.Capacity
	}
	return nil
}

// COPCurve returns the COP-vs-temperature curve for the given mode, or
// nil if the equipment carries none.
func (e *Equipment) COPCurve(m Mode) *Curve {
	if p := e.perf(m); p != nil {
		return p.COP
	}
	return nil
}

// ConstantEfficiency returns the constant efficiency for the given mode
// and whether one is set.
func (e *Equipment) ConstantEfficiency(m Mode) (float64, bool) {
	if p := e.perf(m); p != nil && p.Efficiency > 0 {
		return p.Efficiency, true
	}
	return 0, false
}

// RefrigerantInventoryKgCO2e returns the CO2-equivalent mass of the
// unit's refrigerant charge [kg CO2e]. This is the leakage-emissions
// inventory per unit; the emissions engine amortizes it over a year and
// scales it by the scenario's annual leakage fraction.
func (e *Equipment) RefrigerantInventoryKgCO2e() float64 {
	return e.RefrigerantChargeKg * e.RefrigerantGWP
}

// check validates the internal consistency of the record.
func (e *Equipment) check() error {
	if e.ID == "" {
		return fmt.Errorf("equipment: record is missing an eq_id")
	}
	for m, p := range e.Performance {
		if m != Heating && m != Cooling {
			return fmt.Errorf("equipment: %s has invalid performance mode %q", e.ID, m)
		}
		if p == nil {
			continue
		}
		for _, c := range []*Curve{p.Capacity, p.COP, p.PartLoad} {
			if c == nil {
				continue
			}
			if err := c.normalize(); err != nil {
				return fmt.Errorf("equipment: %s %s performance: %v", e.ID, m, err)
			}
		}
		if p.Efficiency < 0 {
			return fmt.Errorf("equipment: %s %s efficiency is negative", e.ID, m)
		}
		if p.MinTOutC != nil && p.MaxTOutC != nil && *p.MinTOutC > *p.MaxTOutC {
			return fmt.Errorf("equipment: %s %s operating bounds are inverted [%g, %g]",
				e.ID, m, *p.MinTOutC, *p.MaxTOutC)
		}
	}
	return nil
}
