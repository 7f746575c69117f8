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
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/spatialmodel/oilfate"
)

// DefaultSubstances is the built-in substance library, in the format
// read by LoadSubstances.
const DefaultSubstances = `
[[Substance]]
Name = "light crude"
ReferenceDensity = 870.0
ReferenceTemp = 288.15

  [[Substance.Component]]
  Name = "light saturates"
  Type = "Saturates"
  BoilingPoint = 447.0
  MolecularWeight = 0.142
  MassFraction = 0.35

  [[Substance.Component]]
  Name = "heavy saturates"
  Type = "Saturates"
  BoilingPoint = 750.0
  MolecularWeight = 0.45
  MassFraction = 0.25

  [[Substance.Component]]
  Name = "light aromatics"
  Type = "Aromatics"
  BoilingPoint = 500.0
  MolecularWeight = 0.128
  MassFraction = 0.15

  [[Substance.Component]]
  Name = "heavy aromatics"
  Type = "Aromatics"
  BoilingPoint = 680.0
  MolecularWeight = 0.25
  MassFraction = 0.10

  [[Substance.Component]]
  Name = "resins"
  Type = "Resins"
  BoilingPoint = 800.0
  MolecularWeight = 0.8
  MassFraction = 0.10

  [[Substance.Component]]
  Name = "asphaltenes"
  Type = "Asphaltenes"
  BoilingPoint = 900.0
  MolecularWeight = 1.0
  MassFraction = 0.05

[[Substance]]
Name = "diesel"
ReferenceDensity = 840.0
ReferenceTemp = 288.15

  [[Substance.Component]]
  Name = "saturates"
  Type = "Saturates"
  BoilingPoint = 520.0
  MolecularWeight = 0.2
  MassFraction = 0.7

  [[Substance.Component]]
  Name = "aromatics"
  Type = "Aromatics"
  BoilingPoint = 530.0
  MolecularWeight = 0.16
  MassFraction = 0.3
`

type substanceLibrary struct {
	Substance []struct {
		Name             string
		ReferenceDensity float64
		ReferenceTemp    float64
		ThermalExpansion float64
		Component        []struct {
			Name            string
			Type            string
			BoilingPoint    float64
			MolecularWeight float64
			MassFraction    float64
		}
	}
}

// LoadSubstances reads a substance library from a TOML file.
func LoadSubstances(file string) (map[string]*oilfate.Substance, error) {
	var lib substanceLibrary
	md, err := toml.DecodeFile(os.ExpandEnv(file), &lib)
	if err != nil {
		return nil, fmt.Errorf("oilfate: reading substance file: %v", err)
	}
	return lib.substances(md)
}

// ParseSubstances reads a substance library from a TOML string.
func ParseSubstances(data string) (map[string]*oilfate.Substance, error) {
	var lib substanceLibrary
	md, err := toml.Decode(data, &lib)
	if err != nil {
		return nil, fmt.Errorf("oilfate: parsing substances: %v", err)
	}
	return lib.substances(md)
}

func (lib *substanceLibrary) substances(md toml.MetaData) (map[string]*oilfate.Substance, error) {
	if u := md.Undecoded(); len(u) > 0 {
		return nil, fmt.Errorf("oilfate: unknown substance fields %v", u)
	}
	o := make(map[string]*oilfate.Substance, len(lib.Substance))
	for _, s := range lib.Substance {
		if _, ok := o[s.Name]; ok {
			return nil, &oilfate.InvalidSubstanceError{Substance: s.Name, Reason: "defined more than once"}
		}
		sub := &oilfate.Substance{
			Name:             s.Name,
			ReferenceDensity: s.ReferenceDensity,
			ReferenceTemp:    s.ReferenceTemp,
			ThermalExpansion: s.ThermalExpansion,
		}
		for _, c := range s.Component {
			t := oilfate.ComponentType(c.Type)
			switch t {
			case oilfate.Saturates, oilfate.Aromatics, oilfate.Resins, oilfate.Asphaltenes:
			default:
				return nil, &oilfate.InvalidSubstanceError{Substance: s.Name,
					Reason: fmt.Sprintf("invalid component type %q for %s; valid options are Saturates, Aromatics, Resins, and Asphaltenes", c.Type, c.Name)}
			}
			sub.Components = append(sub.Components, oilfate.Component{
				Name:            c.Name,
				Type:            t,
				BoilingPoint:    c.BoilingPoint,
				MolecularWeight: c.MolecularWeight,
				MassFraction:    c.MassFraction,
			})
		}
		if err := sub.Validate(); err != nil {
			return nil, err
		}
		o[s.Name] = sub
	}
	return o, nil
}

// loadSubstances loads the substance library specified by the
// SubstanceFile configuration variable, or the built-in library if it
// is empty.
func loadSubstances(cfg *viper.Viper) (map[string]*oilfate.Substance, error) {
	if f := cfg.GetString("SubstanceFile"); f != "" {
		return LoadSubstances(f)
	}
	return ParseSubstances(DefaultSubstances)
}
