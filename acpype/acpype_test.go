/*
 * acpype_test.go, part of goLigPrep.
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

package acpype

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestArgs(t *testing.T) {
	A := NewAPHandle()
	A.SetDryRun(true)
	opt := &Options{Charge: -1, Basename: "IBPparams"}
	if _, err := A.RunGMX(context.Background(), "IBP.H.min.pdb", opt); err != nil {
		t.Fatal(err)
	}
	want := []string{"-i", "IBP.H.min.pdb", "-b", "IBPparams", "-n", "-1", "-c", "bcc", "-a", "gaff", "-o", "all"}
	if !reflect.DeepEqual(A.LastArgs(), want) {
		t.Errorf("wrong acpype args:\n got %v\nwant %v", A.LastArgs(), want)
	}
}

// fakeACPypeDir lays out a finished <basename>.acpype directory the way
// ACPype leaves it.
func fakeACPypeDir(t *testing.T, dir, basename string) {
	t.Helper()
	out := filepath.Join(dir, basename+".acpype")
	if err := os.MkdirAll(out, 0755); err != nil {
		t.Fatal(err)
	}
	for _, suffix := range []string{"_GMX.gro", "_GMX.itp", "_GMX.top", "_CNS.inp", "_CNS.par", "_CNS.top", "_NEW.pdb"} {
		err := os.WriteFile(filepath.Join(out, basename+suffix), []byte("content of "+suffix+"\n"), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}
}

func TestCollectGMX(t *testing.T) {
	dir := t.TempDir()
	fakeACPypeDir(t, dir, "IBPparams")
	A := NewAPHandle()
	A.SetWorkDir(dir)
	B, err := A.Collect("IBPparams", GMX)
	if err != nil {
		t.Fatal(err)
	}
	if len(B.Files) != 3 {
		t.Fatalf("expected 3 files in the Gromacs bundle, got %d", len(B.Files))
	}
	for _, ext := range []string{".gro", ".itp", ".top"} {
		want := filepath.Join(dir, "IBPparams"+ext)
		found := false
		for _, f := range B.Files {
			if f == want {
				found = true
			}
		}
		if !found {
			t.Errorf("bundle is missing %s", want)
		}
	}
	if err := B.Check(); err != nil {
		t.Error(err)
	}
	if B.ITP() == "" || B.Topology() == "" {
		t.Error("bundle accessors came back empty")
	}
}

func TestCollectCNS(t *testing.T) {
	dir := t.TempDir()
	fakeACPypeDir(t, dir, "IBPparams")
	A := NewAPHandle()
	A.SetWorkDir(dir)
	B, err := A.Collect("IBPparams", CNS)
	if err != nil {
		t.Fatal(err)
	}
	if len(B.Files) != 4 {
		t.Fatalf("expected 4 files in the CNS bundle, got %d", len(B.Files))
	}
	if err := B.Check(); err != nil {
		t.Error(err)
	}
	if B.ITP() != "" {
		t.Error("a CNS bundle should have no itp")
	}
}

func TestCollectMissingOutput(t *testing.T) {
	A := NewAPHandle()
	A.SetWorkDir(t.TempDir())
	if _, err := A.Collect("IBPparams", GMX); err == nil {
		t.Error("expected an error when the acpype directory is missing")
	}
}

// A failed run must not keep reporting the previous run's warnings.
func TestWarningsClearedOnFailure(t *testing.T) {
	A := NewAPHandle()
	A.SetWorkDir(t.TempDir())
	A.warnings = []string{"WARNING: left over from an earlier run"}
	A.SetCommand("false")
	if _, err := A.RunGMX(context.Background(), "IBP.H.min.pdb", nil); err == nil {
		t.Fatal("expected the run to fail")
	}
	if w := A.Warnings(); len(w) != 0 {
		t.Errorf("stale warnings survived a failed run: %v", w)
	}
}

func TestScanWarnings(t *testing.T) {
	log := strings.NewReader(`==> Executing Antechamber...
WARNING: The unperturbed charge of the unit (-0.998000) is not zero
==> * Antechamber OK *
WARNING: residue name will be truncated
done
`)
	w := scanWarnings(log)
	if len(w) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(w), w)
	}
	if !strings.Contains(w[0], "unperturbed charge") {
		t.Errorf("unexpected first warning: %s", w[0])
	}
}
