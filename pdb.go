/*
 * pdb.go, part of goLigPrep.
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

// Parses one ATOM/HETATM line. Column positions are fixed by the PDB
// format. Fields past the B-factor are optional in practice, so those are
// read without error checking.
func readPDBLine(line string) (*Atom, []float64, error) {
	if len(line) < 54 {
		return nil, nil, Errorf("readPDBLine", "line too short for an atom record: %q", line)
	}
	errs := make([]error, 5)
	coords := make([]float64, 3)
	atom := new(Atom)
	atom.Het = strings.HasPrefix(line, "HETATM")
	atom.ID, errs[0] = strconv.Atoi(strings.TrimSpace(line[6:11]))
	atom.Name = strings.TrimSpace(line[12:16])
	atom.Molname = strings.TrimSpace(line[17:20])
	atom.Chain = strings.TrimSpace(line[21:22])
	atom.Molid, errs[1] = strconv.Atoi(strings.TrimSpace(line[22:26]))
	coords[0], errs[2] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	coords[1], errs[3] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	coords[2], errs[4] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	if len(line) >= 60 {
		atom.Occupancy, _ = strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64)
	}
	if len(line) >= 66 {
		atom.Bfactor, _ = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	}
	if len(line) >= 78 {
		atom.Symbol = strings.TrimSpace(line[76:78])
		if len(atom.Symbol) == 2 {
			atom.Symbol = atom.Symbol[:1] + strings.ToLower(atom.Symbol[1:])
		}
	}
	for _, e := range errs {
		if e != nil {
			return nil, nil, Errorf("readPDBLine", "malformed atom record %q: %v", line, e)
		}
	}
	//guess the symbol from the atom name if the element column was empty.
	if atom.Symbol == "" {
		atom.Symbol, _ = SymbolFromName(atom.Name)
	}
	if atom.Symbol != "" {
		atom.Mass = symbolMass[atom.Symbol] //no error checking, 0 for the exotic ones.
	}
	return atom, coords, nil
}

// PDBRead reads a molecule from a PDB-formatted stream. Both ATOM and
// HETATM records are taken; ligands downloaded from the PDB come as
// HETATM but OpenBabel writes plain ATOM records back. Only the first
// model of a multi-model file is read.
func PDBRead(r io.Reader) (*Molecule, error) {
	buf := bufio.NewReader(r)
	atoms := make([]*Atom, 0, 30)
	coords := make([]float64, 0, 90)
	for {
		line, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, DecorateErr(err, "PDBRead")
		}
		if strings.HasPrefix(line, "ENDMDL") || strings.TrimSpace(line) == "END" {
			break
		}
		if strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM") {
			at, xyz, err2 := readPDBLine(strings.TrimRight(line, "\n"))
			if err2 != nil {
				return nil, DecorateErr(err2, "PDBRead")
			}
			atoms = append(atoms, at)
			coords = append(coords, xyz...)
		}
		if err == io.EOF {
			break
		}
	}
	if len(atoms) == 0 {
		return nil, NewErr("PDBRead", "no atom records found")
	}
	c, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, DecorateErr(err, "PDBRead")
	}
	return NewMolecule(atoms, c, 0)
}

// PDBFileRead reads a molecule from the PDB file pdbname.
func PDBFileRead(pdbname string) (*Molecule, error) {
	f, err := os.Open(pdbname)
	if err != nil {
		return nil, DecorateErr(err, "PDBFileRead")
	}
	defer f.Close()
	mol, err := PDBRead(f)
	if err != nil {
		return nil, DecorateErr(err, "PDBFileRead")
	}
	return mol, nil
}

// Formats an atom name into its 4-column field. Names shorter than 4
// characters start at the second column, unless they begin with a
// two-letter element symbol.
func pdbAtomName(name, symbol string) string {
	if len(name) >= 4 {
		return name[:4]
	}
	if len(symbol) == 2 {
		return fmt.Sprintf("%-4s", name)
	}
	return fmt.Sprintf(" %-3s", name)
}

// PDBWrite writes mol to w in PDB format, one record per atom, finishing
// with END. Atoms flagged Het are written as HETATM.
func PDBWrite(w io.Writer, mol *Molecule) error {
	out := bufio.NewWriter(w)
	for i := 0; i < mol.Len(); i++ {
		a := mol.Atom(i)
		rec := "ATOM  "
		if a.Het {
			rec = "HETATM"
		}
		chain := a.Chain
		if chain == "" {
			chain = " "
		}
		x, y, z := mol.Coords.Row(i)
		_, err := fmt.Fprintf(out, "%s%5d %s %-3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
			rec, a.ID, pdbAtomName(a.Name, a.Symbol), a.Molname, chain, a.Molid, x, y, z, a.Occupancy, a.Bfactor, strings.ToUpper(a.Symbol))
		if err != nil {
			return DecorateErr(err, "PDBWrite")
		}
	}
	fmt.Fprintln(out, "END")
	return DecorateErr(out.Flush(), "PDBWrite")
}

// PDBFileWrite writes mol to the file pdbname in PDB format.
func PDBFileWrite(pdbname string, mol *Molecule) error {
	f, err := os.Create(pdbname)
	if err != nil {
		return DecorateErr(err, "PDBFileWrite")
	}
	defer f.Close()
	return DecorateErr(PDBWrite(f, mol), "PDBFileWrite")
}
