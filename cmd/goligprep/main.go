/*
 * main.go, part of goLigPrep.
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

//goligprep downloads a ligand by its 3-letter code, protonates it at a
//given pH, minimizes it and parameterizes it with AM1-BCC/GAFF, leaving a
//Gromacs or CNS topology bundle in the working directory.
//
//	goligprep -code IBP -charge -1 -ph 7.4
//
//OpenBabel and ACPype must be installed; see the babel and acpype
//package docs.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	chem "github.com/rmera/goligprep"
	"github.com/rmera/goligprep/pipeline"
	"github.com/rmera/goligprep/view"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	//normalize the cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	stop()
	os.Exit(code)
}

func run(ctx context.Context, argv []string, out, errw io.Writer) int {
	fs := flag.NewFlagSet("goligprep", flag.ContinueOnError)
	fs.SetOutput(errw)
	var (
		conf      = fs.String("conf", "", "YAML configuration file; flags override it")
		code      = fs.String("code", "", "3-letter ligand code (required here or in the config)")
		charge    = fs.Int("charge", 0, "net formal charge of the ligand")
		ph        = fs.Float64("ph", 7.4, "pH for hydrogen addition")
		method    = fs.String("method", "sd", "minimization method: sd or cg")
		criterion = fs.Float64("criterion", 1e-10, "minimization convergence criterion")
		steps     = fs.Int("steps", 2500, "maximum minimization steps")
		ff        = fs.String("ff", "GAFF", "minimization force field")
		flavor    = fs.String("flavor", "gmx", "topology flavor: gmx or cns")
		dir       = fs.String("dir", ".", "working directory for the run")
		jsonOut   = fs.Bool("json", false, "print the produced artifacts as JSON")
		sketch    = fs.Bool("sketch", false, "also draw a PNG sketch of the minimized structure")
		verbose   = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	c := pipeline.DefaultConfig()
	if *conf != "" {
		var err error
		c, err = pipeline.LoadConfig(*conf)
		if err != nil {
			fmt.Fprintln(errw, err)
			return 2
		}
	}
	//explicitly given flags beat the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "code":
			c.Ligand = *code
		case "charge":
			c.Charge = *charge
		case "ph":
			c.PH = *ph
		case "method":
			c.Method = *method
		case "criterion":
			c.Criterion = *criterion
		case "steps":
			c.Steps = *steps
		case "ff":
			c.FF = *ff
		case "flavor":
			c.Flavor = *flavor
		case "dir":
			c.Dir = *dir
		}
	})

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(errw, err)
		return 1
	}
	defer logger.Sync()

	p, st, err := pipeline.FromConfig(c, logger)
	if err != nil {
		fmt.Fprintln(errw, err)
		return 2
	}
	if err := p.Run(ctx, st); err != nil {
		fmt.Fprintln(errw, err)
		return 1
	}
	if st.EnergyFirst != 0 || st.EnergyLast != 0 {
		logger.Infow("minimization energies", "initial", st.EnergyFirst, "final", st.EnergyLast)
	}

	if *sketch {
		if err := drawSketch(st); err != nil {
			//the sketch is a side channel; its failure doesn't fail the run.
			fmt.Fprintln(errw, "sketch:", err)
		}
	}
	if *jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(st.Artifacts); err != nil {
			fmt.Fprintln(errw, err)
			return 1
		}
		return 0
	}
	for _, a := range st.Artifacts {
		fmt.Fprintln(out, a.Path)
	}
	return 0
}

// drawSketch renders the minimized structure of a finished run.
func drawSketch(st *pipeline.State) error {
	var min *pipeline.Artifact
	for i := range st.Artifacts {
		if st.Artifacts[i].Kind == pipeline.Minimized {
			min = &st.Artifacts[i]
		}
	}
	if min == nil {
		return fmt.Errorf("no minimized structure among the artifacts")
	}
	mol, err := chem.PDBFileRead(min.Path)
	if err != nil {
		return err
	}
	return view.Sketch(mol, st.Code.String(), min.Path+".png")
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	if verbose {
		z := zap.NewDevelopmentConfig()
		logger, err := z.Build()
		if err != nil {
			return nil, err
		}
		return logger.Sugar(), nil
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
