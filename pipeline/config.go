/*
 * config.go, part of goLigPrep.
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package pipeline

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	chem "github.com/rmera/goligprep"
	"github.com/rmera/goligprep/acpype"
	"github.com/rmera/goligprep/babel"
	"github.com/rmera/goligprep/fetch"
)

// Config holds one run's worth of options. The yaml tags match the
// configuration file read by the command-line frontend.
type Config struct {
	Ligand    string  `yaml:"ligand"`     //3-letter code
	Charge    int     `yaml:"charge"`     //net formal charge
	PH        float64 `yaml:"ph"`
	Method    string  `yaml:"method"`     //sd or cg
	Criterion float64 `yaml:"criterion"`  //minimization convergence
	Steps     int     `yaml:"steps"`      //minimization step cap
	FF        string  `yaml:"forcefield"` //minimization force field
	Flavor    string  `yaml:"flavor"`     //gmx or cns
	Dir       string  `yaml:"dir"`        //working directory
	//tool command overrides, empty means "find it in the PATH"
	Obabel     string `yaml:"obabel"`
	Obminimize string `yaml:"obminimize"`
	Acpype     string `yaml:"acpype"`
}

// DefaultConfig returns a config with the usual ligand-prep choices
// filled in. The ligand code has no default; it must come from the user.
func DefaultConfig() *Config {
	return &Config{
		PH:        7.4,
		Method:    "sd",
		Criterion: 1e-10,
		Steps:     2500,
		FF:        "GAFF",
		Flavor:    "gmx",
		Dir:       ".",
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Check validates the config before anything is downloaded or run.
func (c *Config) Check() error {
	if _, err := chem.ParseCode(c.Ligand); err != nil {
		return err
	}
	if c.Flavor != "gmx" && c.Flavor != "cns" {
		return fmt.Errorf("flavor must be gmx or cns, not %q", c.Flavor)
	}
	if c.Method != "sd" && c.Method != "cg" {
		return fmt.Errorf("minimization method must be sd or cg, not %q", c.Method)
	}
	if c.PH < 0 || c.PH > 14 {
		return fmt.Errorf("pH %.2f out of range", c.PH)
	}
	return nil
}

// FromConfig assembles the standard four-stage pipeline and its initial
// state from a validated config.
func FromConfig(c *Config, log *zap.SugaredLogger) (*Pipeline, *State, error) {
	if err := c.Check(); err != nil {
		return nil, nil, err
	}
	code, err := chem.ParseCode(c.Ligand)
	if err != nil {
		return nil, nil, err
	}
	ob := babel.NewOBHandle()
	ob.SetCommand(c.Obabel, c.Obminimize)
	ap := acpype.NewAPHandle()
	ap.SetCommand(c.Acpype)
	flavor := acpype.GMX
	if c.Flavor == "cns" {
		flavor = acpype.CNS
	}
	minOpt := babel.MinOptions{
		Method:     c.Method,
		Criterion:  c.Criterion,
		ForceField: c.FF,
		Steps:      c.Steps,
	}
	p, err := New(log,
		NewFetchStage(fetch.NewFetcher()),
		NewHydrogenStage(ob, c.PH),
		NewMinimizeStage(ob, minOpt),
		NewParamStage(ap, c.Charge, flavor),
	)
	if err != nil {
		return nil, nil, err
	}
	return p, &State{Code: code, Dir: c.Dir}, nil
}
