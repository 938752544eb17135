/*
 * pipeline.go, part of goLigPrep.
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

/*
Package pipeline chains the preparation stages: fetch, hydrogen addition,
minimization, parameterization. The chain is strictly linear and
fail-fast; what stage N writes is, by construction, what stage N+1
declared it reads, and that is checked once, when the pipeline is
assembled, instead of being rediscovered at run time from file names.
*/
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	chem "github.com/rmera/goligprep"
	"github.com/rmera/goligprep/acpype"
)

// Kind tags what a pipeline artifact is, independently of its file format.
type Kind int

const (
	Nothing Kind = iota //what the first stage consumes
	Fetched
	Hydrogenated
	Minimized
	Parameterized
)

func (k Kind) String() string {
	switch k {
	case Nothing:
		return "nothing"
	case Fetched:
		return "fetched structure"
	case Hydrogenated:
		return "hydrogenated structure"
	case Minimized:
		return "minimized structure"
	case Parameterized:
		return "topology bundle"
	}
	return "unknown"
}

// Artifact is one file produced by a stage.
type Artifact struct {
	Kind   Kind   `json:"kind"`
	Format string `json:"format"` //pdb, mol2, itp...
	Path   string `json:"path"`
}

// State is the data a run threads through the stages.
type State struct {
	Code      chem.Code
	Dir       string //working directory of the run
	Artifacts []Artifact
	Bundle    *acpype.Bundle //set by the parameterization stage
	//initial and final minimization energies, straight from the tool's
	//trace. Both zero when the trace couldn't be read.
	EnergyFirst float64
	EnergyLast  float64
}

// Put records an artifact.
func (st *State) Put(a Artifact) {
	st.Artifacts = append(st.Artifacts, a)
}

// Last returns the most recent artifact, or nil before the first stage.
func (st *State) Last() *Artifact {
	if len(st.Artifacts) == 0 {
		return nil
	}
	return &st.Artifacts[len(st.Artifacts)-1]
}

// A Stage is one pipeline step. Consumes and Produces declare the artifact
// kinds at its boundaries; Run does the work, reading the input artifact
// from the state and recording its output there.
type Stage interface {
	Name() string
	Consumes() Kind
	Produces() Kind
	Run(ctx context.Context, st *State) error
}

// Pipeline is an assembled, validated chain of stages.
type Pipeline struct {
	stages []Stage
	log    *zap.SugaredLogger
	runID  string
}

// New assembles a pipeline, checking that each stage consumes exactly what
// the previous one produces and that the first one starts from nothing.
func New(log *zap.SugaredLogger, stages ...Stage) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("pipeline with no stages")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	prev := Nothing
	for _, s := range stages {
		if s.Consumes() != prev {
			return nil, fmt.Errorf("stage %s consumes %q but the previous stage produces %q", s.Name(), s.Consumes(), prev)
		}
		prev = s.Produces()
	}
	return &Pipeline{stages: stages, log: log, runID: uuid.NewString()}, nil
}

// RunID identifies this assembled pipeline's run in the logs.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Run executes the stages in order against st. The first failure stops the
// run; there is no retry and no partial recovery, the artifacts produced so
// far are simply left in the working directory.
func (p *Pipeline) Run(ctx context.Context, st *State) error {
	if st.Dir != "" {
		if err := os.MkdirAll(st.Dir, 0755); err != nil {
			return fmt.Errorf("run %s: %w", p.runID, err)
		}
	}
	p.log.Infow("pipeline run starting", "run", p.runID, "ligand", st.Code, "dir", st.Dir, "stages", len(p.stages))
	for i, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run %s interrupted before stage %s: %w", p.runID, s.Name(), err)
		}
		p.log.Infow("stage starting", "run", p.runID, "stage", s.Name(), "step", i+1)
		recorded := len(st.Artifacts)
		if err := s.Run(ctx, st); err != nil {
			p.log.Errorw("stage failed", "run", p.runID, "stage", s.Name(), "error", err)
			return fmt.Errorf("stage %s: %w", s.Name(), err)
		}
		if len(st.Artifacts) == recorded {
			return fmt.Errorf("stage %s reported success but recorded no artifact", s.Name())
		}
		out := st.Last()
		p.log.Infow("stage done", "run", p.runID, "stage", s.Name(), "artifact", out.Path, "kind", out.Kind.String())
	}
	p.log.Infow("pipeline run finished", "run", p.runID, "artifacts", len(st.Artifacts))
	return nil
}
