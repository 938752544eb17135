/*
 * v3_test.go, part of goLigPrep.
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

package v3

import (
	"math"
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	_, err := NewMatrix([]float64{1, 2, 3, 4})
	if err == nil {
		Te.Error("expected an error for a slice not divisible by 3")
	}
	A, err := NewMatrix([]float64{0, 0, 0, 2, 0, 0, 0, 4, 0})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 3 {
		Te.Errorf("expected 3 vectors, got %d", A.NVecs())
	}
	x, y, z := A.Row(2)
	if x != 0 || y != 4 || z != 0 {
		Te.Errorf("wrong third vector: %5.2f %5.2f %5.2f", x, y, z)
	}
}

func TestCentroid(Te *testing.T) {
	A, err := NewMatrix([]float64{0, 0, 0, 2, 0, 0, 0, 4, 0, 2, 4, 0})
	if err != nil {
		Te.Fatal(err)
	}
	c := A.Centroid()
	x, y, z := c.Row(0)
	if math.Abs(x-1) > 1e-12 || math.Abs(y-2) > 1e-12 || z != 0 {
		Te.Errorf("wrong centroid: %5.2f %5.2f %5.2f", x, y, z)
	}
	B := Zeros(A.NVecs())
	B.SubVec(A, c)
	bx, by, _ := B.Row(0)
	if math.Abs(bx+1) > 1e-12 || math.Abs(by+2) > 1e-12 {
		Te.Errorf("wrong centered vector: %5.2f %5.2f", bx, by)
	}
}
