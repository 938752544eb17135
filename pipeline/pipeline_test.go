/*
 * pipeline_test.go, part of goLigPrep.
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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/rmera/goligprep"
)

// a fake stage that just touches its output file and records the artifact.
type fakeStage struct {
	name     string
	consumes Kind
	produces Kind
	suffix   string
	ran      *[]string
	fail     bool
}

func (s *fakeStage) Name() string   { return s.name }
func (s *fakeStage) Consumes() Kind { return s.consumes }
func (s *fakeStage) Produces() Kind { return s.produces }

func (s *fakeStage) Run(ctx context.Context, st *State) error {
	if s.fail {
		return errors.New("deliberate failure")
	}
	*s.ran = append(*s.ran, s.name)
	path := filepath.Join(st.Dir, st.Code.String()+s.suffix)
	if err := os.WriteFile(path, []byte(s.name+"\n"), 0644); err != nil {
		return err
	}
	st.Put(Artifact{Kind: s.produces, Format: strings.TrimPrefix(filepath.Ext(path), "."), Path: path})
	return nil
}

func fakeChain(ran *[]string) []Stage {
	return []Stage{
		&fakeStage{name: "fetch", consumes: Nothing, produces: Fetched, suffix: ".pdb", ran: ran},
		&fakeStage{name: "hydrogenate", consumes: Fetched, produces: Hydrogenated, suffix: ".H.mol2", ran: ran},
		&fakeStage{name: "minimize", consumes: Hydrogenated, produces: Minimized, suffix: ".H.min.pdb", ran: ran},
		&fakeStage{name: "parameterize", consumes: Minimized, produces: Parameterized, suffix: "params.itp", ran: ran},
	}
}

func TestRunOrderAndNaming(t *testing.T) {
	var ran []string
	p, err := New(nil, fakeChain(&ran)...)
	if err != nil {
		t.Fatal(err)
	}
	st := &State{Code: chem.Code("IBP"), Dir: t.TempDir()}
	if err := p.Run(context.Background(), st); err != nil {
		t.Fatal(err)
	}
	want := []string{"fetch", "hydrogenate", "minimize", "parameterize"}
	if strings.Join(ran, ",") != strings.Join(want, ",") {
		t.Errorf("stages ran as %v, want %v", ran, want)
	}
	wantFiles := []string{"IBP.pdb", "IBP.H.mol2", "IBP.H.min.pdb", "IBPparams.itp"}
	if len(st.Artifacts) != len(wantFiles) {
		t.Fatalf("expected %d artifacts, got %d", len(wantFiles), len(st.Artifacts))
	}
	for i, a := range st.Artifacts {
		if filepath.Base(a.Path) != wantFiles[i] {
			t.Errorf("artifact %d named %s, want %s", i, filepath.Base(a.Path), wantFiles[i])
		}
		if fi, err := os.Stat(a.Path); err != nil || fi.Size() == 0 {
			t.Errorf("artifact %s missing or empty", a.Path)
		}
	}
	if p.RunID() == "" {
		t.Error("run has no ID")
	}
}

func TestNewRejectsBrokenChain(t *testing.T) {
	var ran []string
	stages := fakeChain(&ran)
	//drop the hydrogenation stage: minimize now consumes what fetch
	//doesn't produce.
	_, err := New(nil, stages[0], stages[2], stages[3])
	if err == nil {
		t.Fatal("expected a chain mismatch error")
	}
	if !strings.Contains(err.Error(), "consumes") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunFailFast(t *testing.T) {
	var ran []string
	stages := fakeChain(&ran)
	stages[1].(*fakeStage).fail = true
	p, err := New(nil, stages...)
	if err != nil {
		t.Fatal(err)
	}
	st := &State{Code: chem.Code("IBP"), Dir: t.TempDir()}
	if err := p.Run(context.Background(), st); err == nil {
		t.Fatal("expected the run to fail")
	}
	if strings.Join(ran, ",") != "fetch" {
		t.Errorf("stages after the failure still ran: %v", ran)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	var ran []string
	p, err := New(nil, fakeChain(&ran)...)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st := &State{Code: chem.Code("IBP"), Dir: t.TempDir()}
	if err := p.Run(ctx, st); err == nil {
		t.Fatal("expected a cancellation error")
	}
	if len(ran) != 0 {
		t.Errorf("stages ran despite cancellation: %v", ran)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	conf := `ligand: ibp
charge: -1
ph: 7.4
flavor: gmx
dir: /tmp/run
`
	if err := os.WriteFile(path, []byte(conf), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Ligand != "ibp" || c.Charge != -1 || c.PH != 7.4 {
		t.Errorf("config read wrong: %+v", c)
	}
	//defaults survive a partial file
	if c.Method != "sd" || c.Steps != 2500 || c.FF != "GAFF" {
		t.Errorf("defaults lost: %+v", c)
	}
	if err := c.Check(); err != nil {
		t.Error(err)
	}
}

func TestConfigCheck(t *testing.T) {
	c := DefaultConfig()
	if err := c.Check(); err == nil {
		t.Error("config without a ligand code accepted")
	}
	c.Ligand = "IBP"
	if err := c.Check(); err != nil {
		t.Error(err)
	}
	c.Flavor = "charmm"
	if err := c.Check(); err == nil {
		t.Error("unknown flavor accepted")
	}
	c.Flavor = "gmx"
	c.PH = 15
	if err := c.Check(); err == nil {
		t.Error("impossible pH accepted")
	}
}

func TestFromConfig(t *testing.T) {
	c := DefaultConfig()
	c.Ligand = "IBP"
	c.Charge = -1
	c.Flavor = "cns"
	p, st, err := FromConfig(c, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p == nil || st == nil {
		t.Fatal("nil pipeline or state")
	}
	if st.Code != chem.Code("IBP") {
		t.Errorf("wrong code in state: %s", st.Code)
	}
}
