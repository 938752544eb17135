/*
 * view.go, part of goLigPrep.
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
Package view is the visualization side channel of the pipeline. It never
feeds anything back: it encodes a structure as JSON for an external 3D
viewer (one atom per line, so a plugin can stream it), or draws a quick 2D
sketch of it to a PNG file for an eyeball check of an intermediate.
*/
package view

import (
	"bufio"
	"encoding/json"
	"image/color"
	"io"

	chem "github.com/rmera/goligprep"
	v3 "github.com/rmera/goligprep/v3"
)

// JSONAtom is one atom with its coordinates, as sent to a viewer.
type JSONAtom struct {
	A      *chem.Atom
	Coords []float64
}

// JSONInfo is the header sent before the atoms, so the receiving plugin
// can allocate.
type JSONInfo struct {
	Atoms  int
	Charge int
}

// Transmit encodes mol on out: a JSONInfo line followed by one JSONAtom
// line per atom.
func Transmit(mol *chem.Molecule, out io.Writer) error {
	buf := bufio.NewWriter(out)
	enc := json.NewEncoder(buf)
	if err := enc.Encode(JSONInfo{Atoms: mol.Len(), Charge: mol.Charge()}); err != nil {
		return chem.DecorateErr(err, "view.Transmit")
	}
	for i := 0; i < mol.Len(); i++ {
		x, y, z := mol.Coords.Row(i)
		j := JSONAtom{A: mol.Atom(i), Coords: []float64{x, y, z}}
		if err := enc.Encode(j); err != nil {
			return chem.DecorateErr(err, "view.Transmit")
		}
	}
	return chem.DecorateErr(buf.Flush(), "view.Transmit")
}

// Receive decodes a stream produced by Transmit back into a molecule.
func Receive(in io.Reader) (*chem.Molecule, error) {
	dec := json.NewDecoder(in)
	info := new(JSONInfo)
	if err := dec.Decode(info); err != nil {
		return nil, chem.DecorateErr(err, "view.Receive")
	}
	atoms := make([]*chem.Atom, 0, info.Atoms)
	coords := make([]float64, 0, 3*info.Atoms)
	for i := 0; i < info.Atoms; i++ {
		j := new(JSONAtom)
		if err := dec.Decode(j); err != nil {
			return nil, chem.DecorateErr(err, "view.Receive")
		}
		atoms = append(atoms, j.A)
		coords = append(coords, j.Coords...)
	}
	c, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, chem.DecorateErr(err, "view.Receive")
	}
	return chem.NewMolecule(atoms, c, info.Charge)
}

// CPK-ish colors for the elements we expect in a ligand. Anything unknown
// is drawn pink, which is at least noticeable.
var elementColors = map[string]color.RGBA{
	"C":  {R: 0x55, G: 0x55, B: 0x55, A: 0xff},
	"H":  {R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff},
	"O":  {R: 0xee, G: 0x20, B: 0x10, A: 0xff},
	"N":  {R: 0x20, G: 0x30, B: 0xee, A: 0xff},
	"S":  {R: 0xee, G: 0xc8, B: 0x10, A: 0xff},
	"P":  {R: 0xee, G: 0x90, B: 0x10, A: 0xff},
	"F":  {R: 0x30, G: 0xc0, B: 0x30, A: 0xff},
	"Cl": {R: 0x30, G: 0xc0, B: 0x30, A: 0xff},
	"Br": {R: 0x90, G: 0x40, B: 0x20, A: 0xff},
	"I":  {R: 0x70, G: 0x20, B: 0x90, A: 0xff},
}

var unknownColor = color.RGBA{R: 0xee, G: 0x60, B: 0xb0, A: 0xff}

func colorFor(symbol string) color.RGBA {
	if c, ok := elementColors[symbol]; ok {
		return c
	}
	return unknownColor
}
