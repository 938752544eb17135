/*
 * gonum.go, part of goLigPrep.
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

//Package v3 wraps the gonum dense matrix into an N-vectors-in-3D-space
//container. Within the package it is understood that a "vector" is a row,
//i.e. the cartesian coordinates of a point in 3D space.
package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a set of vectors in 3D space, backed by a gonum Dense matrix,
// so it can be handed to any gonum facility.
type Matrix struct {
	*mat.Dense
}

// Matrix2Dense gives access to the underlying gonum matrix.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

// Dense2Matrix wraps a gonum matrix. It panics if the matrix doesn't have
// 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

// NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, &Error{fmt.Sprintf("input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}}
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

// Zeros returns a vecs*3 matrix filled with zeros.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

// NVecs returns the number of vectors in the matrix.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// Row returns the components of the ith vector.
func (F *Matrix) Row(i int) (x, y, z float64) {
	return F.At(i, 0), F.At(i, 1), F.At(i, 2)
}

// SetVec sets the ith vector to x, y, z.
func (F *Matrix) SetVec(i int, x, y, z float64) {
	F.Set(i, 0, x)
	F.Set(i, 1, y)
	F.Set(i, 2, z)
}

// VecView returns a view of the ith vector of the matrix. Changes in the
// view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	return &Matrix{F.Slice(i, i+1, 0, 3).(*mat.Dense)}
}

// SubVec subtracts the vector vec from every vector of A, putting the
// result in the receiver. Used to center a molecule on a point.
func (F *Matrix) SubVec(A, vec *Matrix) {
	n := A.NVecs()
	vx, vy, vz := vec.Row(0)
	for i := 0; i < n; i++ {
		x, y, z := A.Row(i)
		F.SetVec(i, x-vx, y-vy, z-vz)
	}
}

// Centroid returns the geometric center of the vectors of F as a 1*3
// matrix.
func (F *Matrix) Centroid() *Matrix {
	n := F.NVecs()
	c := Zeros(1)
	var sx, sy, sz float64
	for i := 0; i < n; i++ {
		x, y, z := F.Row(i)
		sx += x
		sy += y
		sz += z
	}
	c.SetVec(0, sx/float64(n), sy/float64(n), sz/float64(n))
	return c
}

// String returns a neat representation of the matrix, for debugging.
func (F *Matrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(F.Dense, mat.Squeeze()))
}

// PanicMsg is a message used for panics. For recoverable conditions use
// Error instead.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix = PanicMsg("goLigPrep/v3: a Matrix must have 3 columns")
)

// Error implements the ligprep.Error interface without importing the root
// package (which would be circular). It is handed around as a pointer so
// decorations stick.
type Error struct {
	message string
	deco    []string
}

// Error returns a string with an error message.
func (err *Error) Error() string {
	return err.message
}

// Decorate adds the dec string to the decoration slice of strings of the
// error, and returns the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}
