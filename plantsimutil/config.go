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

package plantsimutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"

	"github.com/plantmodel/plantsim"
	"github.com/plantmodel/plantsim/emissions"
	"github.com/plantmodel/plantsim/equipment"
)

// GetStringSlice returns a string-slice configuration variable,
// accepting either a native slice or a comma-separated string as set
// from an environment variable or configuration file.
func GetStringSlice(varName string, cfg *viper.Viper) []string {
	v := cfg.Get(varName)
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		if s == "" {
			return nil
		}
		return strings.Split(s, ",")
	}
	o, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil
	}
	return o
}

// expandStringSlice expands the environment variables in a slice of strings.
func expandStringSlice(s []string) []string {
	for i := 0; i < len(s); i++ {
		s[i] = os.ExpandEnv(s[i])
	}
	return s
}

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`you need to specify an output file configuration variable (for example: OutputFile="output.csv")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("plantsim: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// readLoad reads the load series named by the LoadFile configuration
// variable, choosing the Excel or CSV reader by file extension.
func readLoad(cfg *viper.Viper) (*plantsim.StandardLoad, error) {
	path := os.ExpandEnv(cfg.GetString("LoadFile"))
	if path == "" {
		return nil, fmt.Errorf("plantsim: the LoadFile configuration variable is not set")
	}
	year := cfg.GetInt("LoadYear")
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return ReadLoadXLSX(path, cfg.GetString("LoadSheet"), year)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("plantsim: opening LoadFile: %v", err)
		}
		defer f.Close()
		return ReadLoadCSV(f, year)
	}
}

// readLibrary reads the equipment library named by the LibraryFile
// configuration variable.
func readLibrary(cfg *viper.Viper) (*equipment.Library, error) {
	path := os.ExpandEnv(cfg.GetString("LibraryFile"))
	if path == "" {
		return nil, fmt.Errorf("plantsim: the LibraryFile configuration variable is not set")
	}
	return equipment.OpenLibrary(path)
}

// readRates reads the grid emission-rate table named by the RatesFile
// configuration variable.
func readRates(cfg *viper.Viper) (*emissions.RateDB, error) {
	path := os.ExpandEnv(cfg.GetString("RatesFile"))
	if path == "" {
		return nil, fmt.Errorf("plantsim: the RatesFile configuration variable is not set")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("plantsim: opening RatesFile: %v", err)
	}
	defer f.Close()
	return emissions.ReadRatesCSV(f)
}

// readEmissionScenarios reads the emission scenarios named by the
// EmissionScenarioFile configuration variable, falling back to the
// default scenario set when none is given.
func readEmissionScenarios(cfg *viper.Viper) ([]*emissions.Scenario, error) {
	path := os.ExpandEnv(cfg.GetString("EmissionScenarioFile"))
	if path == "" {
		return emissions.DefaultScenarios(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("plantsim: opening EmissionScenarioFile: %v", err)
	}
	defer f.Close()
	return emissions.ReadScenarios(f)
}
