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

// Package plantsimutil holds the configuration surface and command-line
// interface for the PlantSim model.
package plantsimutil

import (
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/plantmodel/plantsim"
	"github.com/plantmodel/plantsim/emissions"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to PlantSim.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LoadFile",
			usage: `
              LoadFile is the path to the hourly load series: outdoor
              temperature and heating and cooling demand. CSV and Excel
              (.xlsx) files are accepted. It can contain environment
              variables.`,
			defaultVal: "loads.csv",
			flagsets:   []*pflag.FlagSet{dispatchCmd.Flags(), emissionsCmd.Flags(), statsCmd.Flags()},
		},
		{
			name: "LoadSheet",
			usage: `
              LoadSheet names the worksheet holding the load series when
              LoadFile is an Excel file. The default is the first sheet.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{dispatchCmd.Flags(), emissionsCmd.Flags(), statsCmd.Flags()},
		},
		{
			name: "LoadYear",
			usage: `
              LoadYear is the calendar year assigned to load tables whose
              time axis is given as hour_of_year or month/day/hour columns
              instead of timestamps.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{dispatchCmd.Flags(), emissionsCmd.Flags(), statsCmd.Flags()},
		},
		{
			name: "LibraryFile",
			usage: `
              LibraryFile is the path to the equipment library holding
              equipment records and equipment scenarios. JSON and TOML
              files are accepted. It can contain environment variables.`,
			defaultVal: "library.json",
			flagsets:   []*pflag.FlagSet{dispatchCmd.Flags(), emissionsCmd.Flags()},
		},
		{
			name: "Scenarios",
			usage: `
              Scenarios lists the ids of the equipment scenarios to
              dispatch. An empty list dispatches every scenario in the
              library.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{dispatchCmd.Flags(), emissionsCmd.Flags()},
		},
		{
			name: "RatesFile",
			usage: `
              RatesFile is the path to the hourly marginal grid
              emission-rate CSV table. It can contain environment
              variables.`,
			defaultVal: "rates.csv",
			flagsets:   []*pflag.FlagSet{emissionsCmd.Flags()},
		},
		{
			name: "EmissionScenarioFile",
			usage: `
              EmissionScenarioFile is the path to a TOML file of
              [[emission_scenario]] blocks. When empty, the default
              scenario set is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{emissionsCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path where the result CSV should be
              created. It can contain environment variables.`,
			shorthand:  "o",
			defaultVal: "output.csv",
			flagsets:   []*pflag.FlagSet{dispatchCmd.Flags(), emissionsCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("PLANTSIM")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(dispatchCmd)
	Root.AddCommand(emissionsCmd)
	Root.AddCommand(statsCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("plantsim: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "plantsim",
	Short: "A heating and cooling plant energy and emissions model.",
	Long: `PlantSim estimates the hourly site energy consumption of a building's
heating and cooling plant and the source emissions of that energy.
Use the subcommands specified below to access the model functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'PLANTSIM_var' where 'var'
is the name of the variable to be set. Many configuration variables are
additionally allowed to contain environment variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of PlantSim.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("PlantSim v%s\n", plantsim.Version)
	},
	DisableAutoGenTag: true,
}

// dispatchCmd runs the load allocation and writes the per-hour site
// energy table.
var dispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Allocate the load series across the plant equipment.",
	Long: `dispatch allocates each hour of the load series across the technologies
of the configured equipment scenarios and writes the resulting site
energy table to OutputFile as CSV.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ses, err := runDispatch()
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		return writeCSV(outputFile, func(f *os.File) error {
			return WriteSiteEnergyCSV(f, ses)
		})
	},
	DisableAutoGenTag: true,
}

// emissionsCmd runs the load allocation followed by site-to-source
// emissions accounting.
var emissionsCmd = &cobra.Command{
	Use:   "emissions",
	Short: "Compute source emissions of the dispatched site energy.",
	Long: `emissions allocates the load series across the configured equipment
scenarios, converts the resulting site energy into source emissions
under each emission scenario, and writes the per-hour emissions table
to OutputFile as CSV.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ses, err := runDispatch()
		if err != nil {
			return err
		}
		db, err := readRates(Cfg)
		if err != nil {
			return err
		}
		scens, err := readEmissionScenarios(Cfg)
		if err != nil {
			return err
		}
		results, err := emissions.SiteToSourceAll(ses, scens, db)
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		return writeCSV(outputFile, func(f *os.File) error {
			return WriteResultsCSV(f, results)
		})
	},
	DisableAutoGenTag: true,
}

// statsCmd summarizes the load series.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the load series.",
	Long: `stats prints summary statistics (count, mean, spread, and quartiles)
for each column of the load series.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		load, err := readLoad(Cfg)
		if err != nil {
			return err
		}
		stats := load.Stats()
		for _, name := range []string{"t_out_C", "heating_W", "cooling_W"} {
			s := stats[name]
			cmd.Printf("%s: n=%d mean=%.4g std=%.4g min=%.4g p25=%.4g median=%.4g p75=%.4g max=%.4g\n",
				name, s.Count, s.Mean, s.Std, s.Min, s.P25, s.Median, s.P75, s.Max)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// runDispatch reads the configured load series and equipment library
// and dispatches the configured scenarios.
func runDispatch() ([]*plantsim.SiteEnergy, error) {
	load, err := readLoad(Cfg)
	if err != nil {
		return nil, err
	}
	lib, err := readLibrary(Cfg)
	if err != nil {
		return nil, err
	}
	ids := expandStringSlice(GetStringSlice("Scenarios", Cfg))
	return plantsim.Dispatch(load, lib, ids...)
}

// writeCSV creates path and streams a CSV table into it.
func writeCSV(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plantsim: creating output file: %v", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
