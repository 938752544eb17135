/*
 * ligand.go, part of goLigPrep.
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
	"strings"

	v3 "github.com/rmera/goligprep/v3"
)

// Code is a short chemical-component identifier, as used by the PDB
// (e.g. "IBP" for ibuprofen). Codes are 1 to 3 alphanumeric characters
// and are kept uppercase.
type Code string

// ParseCode validates and normalizes a ligand code.
func ParseCode(s string) (Code, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 1 || len(s) > 3 {
		return "", Errorf("ParseCode", "ligand code %q: must be 1-3 characters", s)
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", Errorf("ParseCode", "ligand code %q: only letters and digits allowed", s)
		}
	}
	return Code(s), nil
}

func (c Code) String() string {
	return string(c)
}

// Atom contains the data for one atom, except for the coordinates, which
// are kept in a v3.Matrix, one row per atom.
type Atom struct {
	Name      string  //PDB/Mol2 atom name, e.g. "CA", "O2"
	ID        int     //Atom serial number, 1-based
	Symbol    string  //Element symbol
	Molname   string  //Residue/component name, normally the ligand code
	Molid     int     //Residue number
	Chain     string
	Occupancy float64
	Bfactor   float64
	Charge    float64 //Partial charge, when the format carries one (Mol2, itp)
	Mass      float64
	Het       bool //was this a HETATM record in the PDB file?
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("attempted to copy a nil Atom")
	}
	N := new(Atom)
	*N = *A
	return N
}

// Molecule is a small molecule: its atoms and one set of coordinates.
// Unlike a full chemistry library we keep only one conformation per
// molecule, as every pipeline stage works on exactly one structure.
type Molecule struct {
	Atoms  []*Atom
	Coords *v3.Matrix
	charge int //formal net charge, user-supplied, not derived
}

// NewMolecule builds a molecule from atoms and coordinates. It returns an
// error if either slice is nil or their lengths don't match.
func NewMolecule(atoms []*Atom, coords *v3.Matrix, charge int) (*Molecule, error) {
	if atoms == nil || coords == nil {
		return nil, NewErr("NewMolecule", "nil atoms or coordinates")
	}
	if len(atoms) != coords.NVecs() {
		return nil, Errorf("NewMolecule", "%d atoms but %d coordinate rows", len(atoms), coords.NVecs())
	}
	return &Molecule{Atoms: atoms, Coords: coords, charge: charge}, nil
}

// Len returns the number of atoms. Part of the sort-friendly convention,
// and what every atom-count check in the pipeline uses.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}

// Atom returns the ith atom. Panics if out of range, as this is considered
// a fundamental function (if the index is wrong the program is way-most
// likely wrong anyway).
func (M *Molecule) Atom(i int) *Atom {
	if i >= M.Len() {
		panic("requested atom out of range")
	}
	return M.Atoms[i]
}

// Charge returns the formal net charge of the molecule.
func (M *Molecule) Charge() int {
	return M.charge
}

// SetCharge sets the formal net charge to i. It is never derived from the
// structure; whoever builds the molecule is responsible for it being the
// true formal charge, or downstream parameterization will be chemically
// invalid.
func (M *Molecule) SetCharge(i int) {
	M.charge = i
}

// SumPartial returns the sum of the partial charges of all atoms. For a
// file format without charges it will just be 0.
func (M *Molecule) SumPartial() float64 {
	sum := 0.0
	for _, a := range M.Atoms {
		sum += a.Charge
	}
	return sum
}

// Hydrogens returns how many atoms in the molecule are hydrogens.
func (M *Molecule) Hydrogens() int {
	n := 0
	for _, a := range M.Atoms {
		if a.Symbol == "H" {
			n++
		}
	}
	return n
}

// Masses returns a slice with the masses of all atoms, filling them from
// the element table if the atom doesn't carry one.
func (M *Molecule) Masses() ([]float64, error) {
	m := make([]float64, M.Len())
	for i, a := range M.Atoms {
		if a.Mass > 0 {
			m[i] = a.Mass
			continue
		}
		mass, ok := symbolMass[a.Symbol]
		if !ok {
			return nil, Errorf("Masses", "no mass for element %q (atom %d, %s)", a.Symbol, a.ID, a.Name)
		}
		m[i] = mass
	}
	return m, nil
}
