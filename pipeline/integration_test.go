/*
 * integration_test.go, part of goLigPrep.
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
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rmera/goligprep/top"
)

// The end-to-end run needs OpenBabel, ACPype (with Antechamber behind it)
// and network access to the RCSB, so it only runs when the tools are
// around and -short is not given.
func TestEndToEndIbuprofen(t *testing.T) {
	if testing.Short() {
		t.Skip("end-to-end run skipped in short mode")
	}
	for _, tool := range []string{"obabel", "obminimize", "acpype"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not installed", tool)
		}
	}
	c := DefaultConfig()
	c.Ligand = "IBP"
	c.Charge = -1
	c.Dir = t.TempDir()
	p, st, err := FromConfig(c, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Run(context.Background(), st); err != nil {
		t.Fatal(err)
	}
	want := []string{"IBP.pdb", "IBP.H.mol2", "IBP.H.min.pdb", "IBPparams.gro", "IBPparams.itp", "IBPparams.top"}
	if len(st.Artifacts) != len(want) {
		t.Fatalf("expected %d artifacts, got %d", len(want), len(st.Artifacts))
	}
	for i, a := range st.Artifacts {
		if filepath.Base(a.Path) != want[i] {
			t.Errorf("artifact %d named %s, want %s", i, filepath.Base(a.Path), want[i])
		}
	}
	//a convergent minimization never ends above where it started.
	if st.EnergyLast > st.EnergyFirst {
		t.Errorf("minimization went uphill: %f -> %f", st.EnergyFirst, st.EnergyLast)
	}
	//the summed partial charges of the itp must round to the requested
	//net charge.
	T, err := top.ReadFile(st.Bundle.ITP())
	if err != nil {
		t.Fatal(err)
	}
	if err := top.ValidateCharge(T, c.Charge, 0.01); err != nil {
		t.Error(err)
	}
}
