/*
 * energies.go, part of goLigPrep.
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

package babel

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ParseEnergies scans an obminimize energy trace for the step table, whose
// rows are "STEP  E(n)  E(n-1)", and returns the first and last total
// energies. The header lines around the table vary between OpenBabel
// versions, so we just take every line whose first field is an integer and
// whose second parses as a float.
func ParseEnergies(r io.Reader) (first, last float64, err error) {
	scan := bufio.NewScanner(r)
	found := false
	for scan.Scan() {
		f := strings.Fields(scan.Text())
		if len(f) < 2 {
			continue
		}
		if _, err2 := strconv.Atoi(f[0]); err2 != nil {
			continue
		}
		e, err2 := strconv.ParseFloat(f[1], 64)
		if err2 != nil {
			continue
		}
		if !found {
			first = e
			found = true
		}
		last = e
	}
	if err2 := scan.Err(); err2 != nil {
		return 0, 0, &Error{ErrNoEnergy, "obminimize", "", err2.Error(), []string{"ParseEnergies"}}
	}
	if !found {
		return 0, 0, &Error{ErrNoEnergy, "obminimize", "", "no step/energy rows in trace", []string{"ParseEnergies"}}
	}
	return first, last, nil
}
