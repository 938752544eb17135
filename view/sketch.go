/*
 * sketch.go, part of goLigPrep.
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

package view

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	chem "github.com/rmera/goligprep"
	v3 "github.com/rmera/goligprep/v3"
)

// Sketch draws a 2D sketch of mol to the image file fname (the extension
// picks the format, normally .png): the xy projection of the centered
// structure, one point per atom, CPK colors, hydrogens drawn smaller. Not
// a substitute for a molecular viewer, just enough to spot a mangled
// structure between pipeline stages.
func Sketch(mol *chem.Molecule, title, fname string) error {
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "x (A)"
	p.Y.Label.Text = "y (A)"
	p.Add(plotter.NewGrid())

	centered := v3.Zeros(mol.Coords.NVecs())
	centered.SubVec(mol.Coords, mol.Coords.Centroid())

	//one scatter per element so each gets its color and a legend entry.
	byElement := make(map[string]plotter.XYs)
	for i := 0; i < mol.Len(); i++ {
		x, y, _ := centered.Row(i)
		s := mol.Atom(i).Symbol
		byElement[s] = append(byElement[s], plotter.XY{X: x, Y: y})
	}
	for symbol, xys := range byElement {
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return chem.DecorateErr(err, "view.Sketch")
		}
		sc.GlyphStyle.Color = colorFor(symbol)
		sc.GlyphStyle.Radius = vg.Points(4)
		if symbol == "H" {
			sc.GlyphStyle.Radius = vg.Points(2)
		}
		p.Add(sc)
		p.Legend.Add(symbol, sc)
	}
	p.Legend.Top = true
	if err := p.Save(12*vg.Centimeter, 12*vg.Centimeter, fname); err != nil {
		return chem.DecorateErr(err, "view.Sketch")
	}
	return nil
}
