/*
 * stages_test.go, part of goLigPrep.
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
	"os"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/rmera/goligprep"
	"github.com/rmera/goligprep/babel"
)

const twoAtomPDB = `HETATM    1  C1  IBP A   1       1.234   0.500  -0.120  1.00  0.00           C
HETATM    2  O1  IBP A   1       2.100   1.300   0.340  1.00  0.00           O
END
`

// mol2Fixture builds a minimal protonation output with n carbon atoms.
func mol2Fixture(n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@<TRIPOS>MOLECULE\nIBP\n%6d %5d %5d %5d %5d\n", n, 0, 1, 0, 0)
	b.WriteString("SMALL\nUSER_CHARGES\n@<TRIPOS>ATOM\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "%7d C%-7d %9.4f %9.4f %9.4f C.3 %3d IBP1 %9.4f\n", i, i, 0.0, 0.0, 0.0, 1, 0.0)
	}
	return b.String()
}

// hydrogenRun sets up a fetched 2-atom structure and a pre-written
// "protonated" output with nAfter atoms, then runs the stage with a dry
// handle so only the atom-count check is exercised.
func hydrogenRun(t *testing.T, nAfter int) (*State, error) {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "IBP.pdb")
	if err := os.WriteFile(in, []byte(twoAtomPDB), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "IBP.H.mol2")
	if err := os.WriteFile(out, []byte(mol2Fixture(nAfter)), 0644); err != nil {
		t.Fatal(err)
	}
	h := babel.NewOBHandle()
	h.SetDryRun(true)
	s := NewHydrogenStage(h, 7.4)
	st := &State{Code: chem.Code("IBP"), Dir: dir}
	st.Put(Artifact{Kind: Fetched, Format: "pdb", Path: in})
	return st, s.Run(context.Background(), st)
}

func TestHydrogenStageRejectsAtomLoss(t *testing.T) {
	_, err := hydrogenRun(t, 1)
	if err == nil {
		t.Fatal("an output with fewer atoms than the input was accepted")
	}
	if !strings.Contains(err.Error(), "lost atoms") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHydrogenStageAcceptsGrownOutput(t *testing.T) {
	st, err := hydrogenRun(t, 3)
	if err != nil {
		t.Fatal(err)
	}
	last := st.Last()
	if last == nil || last.Kind != Hydrogenated || filepath.Base(last.Path) != "IBP.H.mol2" {
		t.Errorf("wrong artifact recorded: %+v", last)
	}
}
