/*
 * stages.go, part of goLigPrep.
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
	"context"
	"fmt"
	"path/filepath"

	chem "github.com/rmera/goligprep"
	"github.com/rmera/goligprep/acpype"
	"github.com/rmera/goligprep/babel"
	"github.com/rmera/goligprep/fetch"
	"github.com/rmera/goligprep/top"
)

// The file-naming convention of the pipeline. Everything downstream of the
// run (Gromacs includes, people's scripts) relies on these names, so they
// are fixed, not configurable.
func fetchedName(code chem.Code) string { return code.String() + ".pdb" }
func hydroName(code chem.Code) string   { return code.String() + ".H.mol2" }
func minName(code chem.Code) string     { return code.String() + ".H.min.pdb" }
func paramsBase(code chem.Code) string  { return code.String() + "params" }

// FetchStage downloads the ligand structure.
type FetchStage struct {
	F *fetch.Fetcher
}

func NewFetchStage(f *fetch.Fetcher) *FetchStage {
	if f == nil {
		f = fetch.NewFetcher()
	}
	return &FetchStage{F: f}
}

func (s *FetchStage) Name() string   { return "fetch" }
func (s *FetchStage) Consumes() Kind { return Nothing }
func (s *FetchStage) Produces() Kind { return Fetched }

func (s *FetchStage) Run(ctx context.Context, st *State) error {
	out := filepath.Join(st.Dir, fetchedName(st.Code))
	if err := s.F.Structure(ctx, st.Code, out); err != nil {
		return err
	}
	st.Put(Artifact{Kind: Fetched, Format: "pdb", Path: out})
	return nil
}

// HydrogenStage protonates the structure with OpenBabel at the given pH.
type HydrogenStage struct {
	H  *babel.OBHandle
	PH float64
}

func NewHydrogenStage(h *babel.OBHandle, pH float64) *HydrogenStage {
	if h == nil {
		h = babel.NewOBHandle()
	}
	return &HydrogenStage{H: h, PH: pH}
}

func (s *HydrogenStage) Name() string   { return "hydrogenate" }
func (s *HydrogenStage) Consumes() Kind { return Fetched }
func (s *HydrogenStage) Produces() Kind { return Hydrogenated }

func (s *HydrogenStage) Run(ctx context.Context, st *State) error {
	in := st.Last()
	out := filepath.Join(st.Dir, hydroName(st.Code))
	s.H.SetName(st.Code.String())
	s.H.SetWorkDir(st.Dir)
	//the handle runs inside st.Dir, so it gets bare file names.
	err := s.H.Hydrogenate(ctx, filepath.Base(in.Path), filepath.Base(out), &babel.HOptions{PH: s.PH, InFormat: in.Format})
	if err != nil {
		return err
	}
	//hydrogen addition only ever adds atoms. A smaller output means the
	//tool dropped part of the structure on the floor.
	if before, err2 := chem.PDBFileRead(in.Path); err2 == nil {
		if after, err3 := chem.Mol2FileRead(out); err3 == nil && after.Len() < before.Len() {
			return fmt.Errorf("hydrogenation lost atoms: %d before, %d after", before.Len(), after.Len())
		}
	}
	st.Put(Artifact{Kind: Hydrogenated, Format: "mol2", Path: out})
	return nil
}

// MinimizeStage relaxes the structure with obminimize.
type MinimizeStage struct {
	H   *babel.OBHandle
	Opt babel.MinOptions
}

func NewMinimizeStage(h *babel.OBHandle, opt babel.MinOptions) *MinimizeStage {
	if h == nil {
		h = babel.NewOBHandle()
	}
	return &MinimizeStage{H: h, Opt: opt}
}

func (s *MinimizeStage) Name() string   { return "minimize" }
func (s *MinimizeStage) Consumes() Kind { return Hydrogenated }
func (s *MinimizeStage) Produces() Kind { return Minimized }

func (s *MinimizeStage) Run(ctx context.Context, st *State) error {
	in := st.Last()
	out := filepath.Join(st.Dir, minName(st.Code))
	s.H.SetName(st.Code.String())
	s.H.SetWorkDir(st.Dir)
	opt := s.Opt //keep the configured options pristine across runs
	if err := s.H.Minimize(ctx, filepath.Base(in.Path), filepath.Base(out), &opt); err != nil {
		return err
	}
	//an unreadable trace is not fatal, the energies are diagnostic only.
	if first, last, err := s.H.Energies(); err == nil {
		st.EnergyFirst, st.EnergyLast = first, last
	}
	st.Put(Artifact{Kind: Minimized, Format: "pdb", Path: out})
	return nil
}

// Energies returns the initial and final energies of the last minimization,
// straight from the tool's own trace.
func (s *MinimizeStage) Energies() (first, last float64, err error) {
	return s.H.Energies()
}

// ParamStage runs ACPype and validates the resulting bundle: every file
// present and non-empty, and (for a Gromacs bundle) the summed partial
// charges of the itp matching the requested net charge.
type ParamStage struct {
	A         *acpype.APHandle
	Charge    int
	Flavor    acpype.Flavor
	ChargeTol float64
}

func NewParamStage(a *acpype.APHandle, charge int, flavor acpype.Flavor) *ParamStage {
	if a == nil {
		a = acpype.NewAPHandle()
	}
	return &ParamStage{A: a, Charge: charge, Flavor: flavor, ChargeTol: 0.01}
}

func (s *ParamStage) Name() string   { return "parameterize" }
func (s *ParamStage) Consumes() Kind { return Minimized }
func (s *ParamStage) Produces() Kind { return Parameterized }

func (s *ParamStage) Run(ctx context.Context, st *State) error {
	in := st.Last()
	s.A.SetName(st.Code.String())
	s.A.SetWorkDir(st.Dir)
	opt := &acpype.Options{Charge: s.Charge, Basename: paramsBase(st.Code)}
	var B *acpype.Bundle
	var err error
	switch s.Flavor {
	case acpype.CNS:
		B, err = s.A.RunCNS(ctx, filepath.Base(in.Path), opt)
	default:
		B, err = s.A.RunGMX(ctx, filepath.Base(in.Path), opt)
	}
	if err != nil {
		return err
	}
	if err := B.Check(); err != nil {
		return err
	}
	if itp := B.ITP(); itp != "" {
		T, err2 := top.ReadFile(itp)
		if err2 != nil {
			return err2
		}
		if err2 := top.ValidateCharge(T, s.Charge, s.ChargeTol); err2 != nil {
			return err2
		}
	}
	st.Bundle = B
	for _, f := range B.Files {
		st.Put(Artifact{Kind: Parameterized, Format: filepath.Ext(f)[1:], Path: f})
	}
	return nil
}
