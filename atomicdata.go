/*
 * atomicdata.go, part of goLigPrep.
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

import "strings"

// A map for assigning mass to elements.
// Note that just common organic/bio elements are present, which covers
// drug-like ligands. Metals in cofactors are on their own.
var symbolMass = map[string]float64{
	"H":  1.0,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"F":  18.998,
	"Cl": 35.45,
	"Br": 79.904,
	"I":  126.90,
	"B":  10.81,
	"Si": 28.08,
}

// The two-letter elements we may find in a ligand, for symbol deduction.
var twoLetterSymbols = []string{"Cl", "Br", "Se", "Si"}

// SymbolFromName tries to guess a chemical element symbol from a PDB/Mol2
// atom name, for files that lack a proper element column. It only deals
// with elements common in small organic molecules; for anything fancier
// the file had better carry the element itself.
func SymbolFromName(name string) (string, error) {
	name = strings.TrimLeft(strings.TrimSpace(name), "0123456789")
	if name == "" {
		return "", NewErr("SymbolFromName", "empty atom name")
	}
	for _, s := range twoLetterSymbols {
		if strings.HasPrefix(strings.ToUpper(name), strings.ToUpper(s)) {
			return s, nil
		}
	}
	one := strings.ToUpper(name[:1])
	if _, ok := symbolMass[one]; !ok {
		return "", Errorf("SymbolFromName", "can't deduce an element from atom name %q", name)
	}
	return one, nil
}
