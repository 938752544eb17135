/*
 * mol2.go, part of goLigPrep.
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

package ligprep

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/rmera/goligprep/v3"
)

// Tripos Mol2 is what OpenBabel emits after hydrogen addition, since PDB
// can't carry the assigned atom types and charges. We read the MOLECULE
// and ATOM blocks and ignore the rest (BOND included: the pipeline never
// needs connectivity, the wrapped programs perceive it themselves).

// Mol2Read reads a molecule from a Tripos Mol2 stream. Only the first
// molecule of a multi-molecule file is read.
func Mol2Read(r io.Reader) (*Molecule, error) {
	buf := bufio.NewReader(r)
	var inAtoms, seenAtoms bool
	atoms := make([]*Atom, 0, 30)
	coords := make([]float64, 0, 90)
	for {
		line, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, DecorateErr(err, "Mol2Read")
		}
		s := strings.TrimSpace(line)
		if strings.HasPrefix(s, "@<TRIPOS>") {
			if inAtoms {
				break //first molecule only
			}
			inAtoms = s == "@<TRIPOS>ATOM"
			if inAtoms {
				seenAtoms = true
			}
		} else if inAtoms && s != "" {
			at, xyz, err2 := readMol2Atom(s)
			if err2 != nil {
				return nil, DecorateErr(err2, "Mol2Read")
			}
			atoms = append(atoms, at)
			coords = append(coords, xyz...)
		}
		if err == io.EOF {
			break
		}
	}
	if !seenAtoms || len(atoms) == 0 {
		return nil, NewErr("Mol2Read", "no @<TRIPOS>ATOM block found")
	}
	c, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, DecorateErr(err, "Mol2Read")
	}
	return NewMolecule(atoms, c, 0)
}

// An ATOM line is: id name x y z sybyl_type [subst_id [subst_name [charge]]].
// The element is the part of the SYBYL type before the dot (C.3 -> C).
func readMol2Atom(line string) (*Atom, []float64, error) {
	f := strings.Fields(line)
	if len(f) < 6 {
		return nil, nil, Errorf("readMol2Atom", "atom line with %d fields: %q", len(f), line)
	}
	errs := make([]error, 4)
	coords := make([]float64, 3)
	atom := new(Atom)
	atom.ID, errs[0] = strconv.Atoi(f[0])
	atom.Name = f[1]
	coords[0], errs[1] = strconv.ParseFloat(f[2], 64)
	coords[1], errs[2] = strconv.ParseFloat(f[3], 64)
	coords[2], errs[3] = strconv.ParseFloat(f[4], 64)
	for _, e := range errs {
		if e != nil {
			return nil, nil, Errorf("readMol2Atom", "malformed atom line %q: %v", line, e)
		}
	}
	atom.Symbol = strings.SplitN(f[5], ".", 2)[0]
	if len(f) >= 7 {
		atom.Molid, _ = strconv.Atoi(f[6])
	}
	if len(f) >= 8 {
		atom.Molname = strings.TrimRight(f[7], "0123456789")
	}
	if len(f) >= 9 {
		atom.Charge, _ = strconv.ParseFloat(f[8], 64)
	}
	atom.Mass = symbolMass[atom.Symbol]
	atom.Het = true
	return atom, coords, nil
}

// Mol2FileRead reads a molecule from the Mol2 file name.
func Mol2FileRead(name string) (*Molecule, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, DecorateErr(err, "Mol2FileRead")
	}
	defer f.Close()
	mol, err := Mol2Read(f)
	if err != nil {
		return nil, DecorateErr(err, "Mol2FileRead")
	}
	return mol, nil
}

// Mol2Write writes mol to w as a single-molecule Mol2 file with no bond
// block. Atom types are just element symbols; good enough for programs
// that re-perceive types on reading, which is all we feed it to.
func Mol2Write(w io.Writer, mol *Molecule, name string) error {
	out := bufio.NewWriter(w)
	fmt.Fprintln(out, "@<TRIPOS>MOLECULE")
	if name == "" {
		name = "LIG"
	}
	fmt.Fprintln(out, name)
	fmt.Fprintf(out, "%5d %5d %5d %5d %5d\n", mol.Len(), 0, 1, 0, 0)
	fmt.Fprintln(out, "SMALL")
	fmt.Fprintln(out, "USER_CHARGES")
	fmt.Fprintln(out, "@<TRIPOS>ATOM")
	for i := 0; i < mol.Len(); i++ {
		a := mol.Atom(i)
		x, y, z := mol.Coords.Row(i)
		molname := a.Molname
		if molname == "" {
			molname = name
		}
		_, err := fmt.Fprintf(out, "%7d %-8s %9.4f %9.4f %9.4f %-5s %3d %-7s %9.4f\n",
			a.ID, a.Name, x, y, z, a.Symbol, a.Molid, molname, a.Charge)
		if err != nil {
			return DecorateErr(err, "Mol2Write")
		}
	}
	return DecorateErr(out.Flush(), "Mol2Write")
}

// Mol2FileWrite writes mol to the file fname in Mol2 format.
func Mol2FileWrite(fname string, mol *Molecule, name string) error {
	f, err := os.Create(fname)
	if err != nil {
		return DecorateErr(err, "Mol2FileWrite")
	}
	defer f.Close()
	return DecorateErr(Mol2Write(f, mol, name), "Mol2FileWrite")
}
