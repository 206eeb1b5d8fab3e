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

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// NotFoundError reports a lookup of an equipment or scenario id that
// does not exist in the library.
type NotFoundError struct {
	Kind string // "equipment" or "scenario"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("equipment: %s %q not found in library", e.Kind, e.ID)
}

// Library is the equipment-library document: a list of equipment
// records and a list of named scenarios, with id-keyed lookup.
type Library struct {
	Equipment []*Equipment `json:"equipment" toml:"equipment"`
	Scenarios []*Scenario  `json:"equipment_scenarios" toml:"equipment_scenarios"`

	equipmentByID map[string]*Equipment
	scenarioByID  map[string]*Scenario
}

// NewLibrary creates a library from the given records, validating each
// record and the referential consistency of every scenario.
func NewLibrary(eq []*Equipment, scens []*Scenario) (*Library, error) {
	l := &Library{Equipment: eq, Scenarios: scens}
	if err := l.index(); err != nil {
		return nil, err
	}
	return l, nil
}

// index rebuilds the id lookup maps and validates the document.
func (l *Library) index() error {
	l.equipmentByID = make(map[string]*Equipment, len(l.Equipment))
	for _, e := range l.Equipment {
		if err := e.check(); err != nil {
			return err
		}
		if _, ok := l.equipmentByID[e.ID]; ok {
			return fmt.Errorf("equipment: duplicate equipment id %q", e.ID)
		}
		l.equipmentByID[e.ID] = e
	}
	l.scenarioByID = make(map[string]*Scenario, len(l.Scenarios))
	for _, s := range l.Scenarios {
		if err := s.check(); err != nil {
			return err
		}
		if _, ok := l.scenarioByID[s.ID]; ok {
			return fmt.Errorf("equipment: duplicate scenario id %q", s.ID)
		}
		for _, id := range []string{s.HRWWHP, s.AWHP, s.Boiler, s.Chiller} {
			if id != "" {
				if _, ok := l.equipmentByID[id]; !ok {
					return fmt.Errorf("equipment: scenario %s references unknown equipment %q", s.ID, id)
				}
			}
		}
		l.scenarioByID[s.ID] = s
	}
	return nil
}

// Get returns the equipment record with the given id.
func (l *Library) Get(id string) (*Equipment, error) {
	if e, ok := l.equipmentByID[id]; ok {
		return e, nil
	}
	return nil, &NotFoundError{Kind: "equipment", ID: id}
}

// Scenario returns the scenario with the given id.
func (l *Library) Scenario(id string) (*Scenario, error) {
	if s, ok := l.scenarioByID[id]; ok {
		return s, nil
	}
	return nil, &NotFoundError{Kind: "scenario", ID: id}
}

// ScenarioIDs returns the ids of all scenarios in document order.
func (l *Library) ScenarioIDs() []string {
	ids := make([]string, len(l.Scenarios))
	for i, s := range l.Scenarios {
		ids[i] = s.ID
	}
	return ids
}

// Add inserts an equipment record, failing on a duplicate id.
func (l *Library) Add(e *Equipment) error {
	if err := e.check(); err != nil {
		return err
	}
	if _, ok := l.equipmentByID[e.ID]; ok {
		return fmt.Errorf("equipment: equipment %q already exists", e.ID)
	}
	l.Equipment = append(l.Equipment, e)
	l.equipmentByID[e.ID] = e
	return nil
}

// Remove deletes the equipment record with the given id. Scenarios
// referencing it become invalid and will fail the next AddScenario or
// document reload.
func (l *Library) Remove(id string) error {
	if _, ok := l.equipmentByID[id]; !ok {
		return &NotFoundError{Kind: "equipment", ID: id}
	}
	delete(l.equipmentByID, id)
	for i, e := range l.Equipment {
		if e.ID == id {
			l.Equipment = append(l.Equipment[:i], l.Equipment[i+1:]...)
			break
		}
	}
	return nil
}

// AddScenario inserts a scenario. When overwrite is true an existing
// scenario with the same id is replaced; otherwise a duplicate id is
// an error.
func (l *Library) AddScenario(s *Scenario, overwrite bool) error {
	if err := s.check(); err != nil {
		return err
	}
	for _, id := range []string{s.HRWWHP, s.AWHP, s.Boiler, s.Chiller} {
		if id != "" {
			if _, ok := l.equipmentByID[id]; !ok {
				return fmt.Errorf("equipment: scenario %s references unknown equipment %q", s.ID, id)
			}
		}
	}
	if _, ok := l.scenarioByID[s.ID]; ok {
		if !overwrite {
			return fmt.Errorf("equipment: scenario %q already exists", s.ID)
		}
		for i, old := range l.Scenarios {
			if old.ID == s.ID {
				l.Scenarios[i] = s
				break
			}
		}
		l.scenarioByID[s.ID] = s
		return nil
	}
	l.Scenarios = append(l.Scenarios, s)
	l.scenarioByID[s.ID] = s
	return nil
}

// RemoveScenario deletes the scenario with the given id.
func (l *Library) RemoveScenario(id string) error {
	if _, ok := l.scenarioByID[id]; !ok {
		return &NotFoundError{Kind: "scenario", ID: id}
	}
	delete(l.scenarioByID, id)
	for i, s := range l.Scenarios {
		if s.ID == id {
			l.Scenarios = append(l.Scenarios[:i], l.Scenarios[i+1:]...)
			break
		}
	}
	return nil
}

// ReadLibrary decodes a JSON equipment-library document.
func ReadLibrary(r io.Reader) (*Library, error) {
	l := new(Library)
	if err := json.NewDecoder(r).Decode(l); err != nil {
		return nil, fmt.Errorf("equipment: decoding library: %v", err)
	}
	if err := l.index(); err != nil {
		return nil, err
	}
	return l, nil
}

// ReadLibraryTOML decodes a TOML equipment-library document.
func ReadLibraryTOML(r io.Reader) (*Library, error) {
	l := new(Library)
	if _, err := toml.DecodeReader(r, l); err != nil {
		return nil, fmt.Errorf("equipment: decoding library: %v", err)
	}
	if err := l.index(); err != nil {
		return nil, err
	}
	return l, nil
}

// OpenLibrary reads a library document from a file, selecting the
// decoder from the file content's first non-space byte (JSON documents
// start with '{').
func OpenLibrary(filename string) (*Library, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("equipment: opening library file: %v", err)
	}
	defer f.Close()
	var first [1]byte
	if _, err := io.ReadFull(f, first[:]); err != nil {
		return nil, fmt.Errorf("equipment: reading library file: %v", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if first[0] == '{' {
		return ReadLibrary(f)
	}
	return ReadLibraryTOML(f)
}

// Write encodes the library as an indented JSON document.
func (l *Library) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(struct {
		Equipment []*Equipment `json:"equipment"`
		Scenarios []*Scenario  `json:"equipment_scenarios"`
	}{l.Equipment, l.Scenarios}); err != nil {
		return fmt.Errorf("equipment: encoding library: %v", err)
	}
	return nil
}
