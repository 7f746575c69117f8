/*
Copyright © 2019 the oilfate authors.
This file is part of oilfate.

oilfate is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

oilfate is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with oilfate.  If not, see <http://www.gnu.org/licenses/>.
*/

package oilfateutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/oilfate"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to oilfate.
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
			name: "LogLevel",
			usage: `
              LogLevel specifies the minimum level of log messages to print.
              Valid options are debug, info, warning, and error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "StartTime",
			usage: `
              StartTime is the model start time, in RFC 3339 format.`,
			defaultVal: "2019-01-01T00:00:00Z",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Duration",
			usage: `
              Duration is the length of the simulation, e.g. "24h".`,
			defaultVal: "24h",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "TimeStep",
			usage: `
              TimeStep is the model time step, e.g. "15m".`,
			shorthand:  "t",
			defaultVal: "15m",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Uncertain",
			usage: `
              Uncertain specifies whether to run an uncertain realization
              alongside the certain one.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Seed",
			usage: `
              Seed seeds the random number generators. If 0, the
              generators are seeded from the clock.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "SubstanceFile",
			usage: `
              SubstanceFile is the path to a TOML file holding substance
              reference data. If empty, the built-in substances are used.
              It can include environment variables.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), substancesCmd.Flags()},
		},
		{
			name: "Environment.WindSpeed",
			usage: `
              Environment.WindSpeed is the wind speed [m/s].`,
			defaultVal: 5.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Environment.WindDirection",
			usage: `
              Environment.WindDirection is the direction the wind blows
              from [degrees clockwise from north].`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Environment.WaterTemperature",
			usage: `
              Environment.WaterTemperature is the water temperature [K].`,
			defaultVal: 288.15,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Environment.WaterDensity",
			usage: `
              Environment.WaterDensity is the water density [kg/m³].`,
			defaultVal: 1025.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Environment.WaterViscosity",
			usage: `
              Environment.WaterViscosity is the kinematic viscosity of the
              water [m²/s].`,
			defaultVal: 1.0e-6,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Environment.CurrentU",
			usage: `
              Environment.CurrentU is the eastward current velocity [m/s].`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Environment.CurrentV",
			usage: `
              Environment.CurrentV is the northward current velocity [m/s].`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Map.LandGeoJSON",
			usage: `
              Map.LandGeoJSON is the path to a GeoJSON file holding land
              polygons in longitude/latitude coordinates. If empty, there
              is no land. It can include environment variables.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Map.BoundsGeoJSON",
			usage: `
              Map.BoundsGeoJSON is the path to a GeoJSON file holding the
              model domain polygon. If empty, the domain is unbounded.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables specifies which quantities to report after
              each step. It is a map of names to expressions of mass
              balance keys. It can be set in the configuration file or as
              a JSON string on the command line.`,
			defaultVal: map[string]string{
				"Released": "amount_released",
				"Floating": "floating",
			},
			flagsets: []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("OILFATE")

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
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				s := string(b.Bytes())
				if option.shorthand == "" {
					set.String(option.name, s, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, s, option.usage)
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
	Root.AddCommand(runCmd)
	Root.AddCommand(substancesCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets up logging.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("oilfate: problem reading configuration file: %v", err)
		}
	}
	return setLogger(Cfg.GetString("LogLevel"))
}

// setLogger configures the standard logger.
func setLogger(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("oilfate: invalid LogLevel: %v", err)
	}
	log := logrus.StandardLogger()
	log.SetLevel(lvl)
	log.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "oilfate",
	Short: "A model of the transport and weathering of spilled oil.",
	Long: `oilfate simulates the transport and weathering of oil and other
contaminants spilled into water, using a population of Lagrangian elements.
Use the subcommands specified below to access the model functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'OILFATE_var' where 'var' is the
name of the variable to be set. Spills, Movers, and Weatherers can only be
specified in the configuration file.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of oilfate.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("oilfate v%s\n", oilfate.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the model.",
	Long: `run assembles the scenario specified by the configuration and runs it
to completion, reporting the requested output variables after each step.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := NewModel(Cfg)
		if err != nil {
			return err
		}
		vars, err := GetStringMapString("OutputVariables", Cfg)
		if err != nil {
			return err
		}
		o, err := NewOutputter(vars)
		if err != nil {
			return err
		}
		m.Log.WithField("scenario", ScenarioHash(Cfg)).Info("starting run")
		return Run(context.Background(), m, o, cmd)
	},
	DisableAutoGenTag: true,
}

var substancesCmd = &cobra.Command{
	Use:   "substances",
	Short: "List the available substances.",
	Long: `substances loads and validates the substance library specified by
SubstanceFile, or the built-in library if SubstanceFile is empty, and
lists the substances it contains.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		subs, err := loadSubstances(Cfg)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(subs))
		for n := range subs {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			s := subs[n]
			cmd.Printf("%s: %d components, density %g kg/m³ at %g K\n", n, s.Len(), s.ReferenceDensity, s.ReferenceTemp)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// Run runs model m to completion, reporting the output variables
// calculated by o after each step.
func Run(ctx context.Context, m *oilfate.Model, o *Outputter, cmd *cobra.Command) error {
	return m.Run(ctx, func(r *oilfate.StepResult) error {
		vals, err := o.Evaluate(r.MassBalance)
		if err != nil {
			return err
		}
		fields := make(logrus.Fields, len(vals)+1)
		fields["step"] = r.Step
		for k, v := range vals {
			fields[k] = v
		}
		m.Log.WithFields(fields).Info("output")
		if cmd != nil {
			cmd.Printf("%s\t%s\n", r.Time.Format(time.RFC3339), o.Format(vals))
		}
		return nil
	})
}
