/*
 * groio.go, part of goLigPrep.
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

package top

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

var fi = strings.Fields

// Atom is one row of the [ atoms ] section.
type Atom struct {
	ID          int
	Type        string
	Resnr       int
	Resname     string
	Name        string
	ChargeGroup int
	Charge      float64
	Mass        float64
}

// AtomType is one row of the [ atomtypes ] section. Only the identifying
// fields are kept; the Lennard-Jones numbers are not this package's
// business.
type AtomType struct {
	Name string
	Mass float64
}

// Topology holds the parts of an itp/top file needed to check a
// parameterization.
type Topology struct {
	Name          string //from [ moleculetype ]
	Atoms         []*Atom
	ATypes        []*AtomType
	currentHeader string
}

// a function to read conditional parts of gromacs topologies depending on
// the defined flags that should be in 'defines'
type cond struct {
	reading bool
}

func newCond() *cond {
	c := new(cond)
	c.reading = true
	return c
}

func (c *cond) read(line string, defines []string) bool {
	if strings.HasPrefix(line, "#ifdef") {
		c.reading = slices.Contains(defines, fi(line)[1])
		return false
	}
	if strings.HasPrefix(line, "#else") {
		c.reading = !c.reading
		return false
	}
	if strings.HasPrefix(line, "#endif") {
		c.reading = true
		return false
	}
	return c.reading
}

// The section headers we know. Everything recognized but not handled is
// skipped silently; an unrecognized header is an error, as it likely means
// the file isn't a Gromacs topology at all.
var knownHeaders = []string{
	"moleculetype", "atoms", "atomtypes", "defaults", "bonds", "pairs",
	"angles", "dihedrals", "impropers", "exclusions", "constraints",
	"settles", "system", "molecules", "nonbond_params", "pairtypes",
	"bondtypes", "angletypes", "dihedraltypes", "virtual_sitesn",
	"position_restraints",
}

func header(s string) (string, bool) {
	if !strings.HasPrefix(s, "[") {
		return "", false
	}
	h := strings.Trim(s, "[] \t")
	return h, true
}

// Read fills a Topology from r, which must be in Gromacs itp/top format.
// #include statements are not followed: an ACPype ligand itp is
// self-contained. Conditional blocks are resolved against defines.
func Read(r io.Reader, defines ...string) (*Topology, error) {
	T := new(Topology)
	buf := bufio.NewReader(r)
	read := newCond()
	var err error
	var s string
	for s, err = buf.ReadString('\n'); err == nil || (err == io.EOF && s != ""); s, err = buf.ReadString('\n') {
		stop := err == io.EOF
		s = cleanString(s)
		if s == "" {
			if stop {
				break
			}
			continue
		}
		if !read.read(s, defines) {
			continue
		}
		if strings.HasPrefix(s, "#") {
			continue //includes and defines, not followed
		}
		if h, ok := header(s); ok {
			if !slices.Contains(knownHeaders, h) {
				return nil, fmt.Errorf("unknown topology header %q", h)
			}
			T.currentHeader = h
			continue
		}
		switch T.currentHeader {
		case "moleculetype":
			T.Name = fi(s)[0]
		case "atoms":
			err2 := T.atomFromGro(s)
			if err2 != nil {
				return nil, fmt.Errorf("couldn't read header %s. Line: %s. Error: %w", T.currentHeader, s, err2)
			}
		case "atomtypes":
			err2 := T.atomTypeFromGro(s)
			if err2 != nil {
				return nil, fmt.Errorf("couldn't read header %s. Line: %s. Error: %w", T.currentHeader, s, err2)
			}
		default:
			continue
		}
		if stop {
			break
		}
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if len(T.Atoms) == 0 {
		return nil, fmt.Errorf("no [ atoms ] section found")
	}
	return T, nil
}

// ReadFile fills a Topology from the file name.
func ReadFile(name string, defines ...string) (*Topology, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	T, err := Read(f, defines...)
	if err != nil {
		return nil, fmt.Errorf("reading topology %s: %w", name, err)
	}
	return T, nil
}

// an [ atoms ] row: nr type resnr residue atom cgnr charge [mass ...]
func (T *Topology) atomFromGro(s string) error {
	f := fi(s)
	if len(f) < 7 {
		return fmt.Errorf("atom row with only %d fields", len(f))
	}
	a := new(Atom)
	var err error
	if a.ID, err = strconv.Atoi(f[0]); err != nil {
		return err
	}
	a.Type = f[1]
	if a.Resnr, err = strconv.Atoi(f[2]); err != nil {
		return err
	}
	a.Resname = f[3]
	a.Name = f[4]
	if a.ChargeGroup, err = strconv.Atoi(f[5]); err != nil {
		return err
	}
	if a.Charge, err = strconv.ParseFloat(f[6], 64); err != nil {
		return err
	}
	if len(f) >= 8 {
		if a.Mass, err = strconv.ParseFloat(f[7], 64); err != nil {
			return err
		}
	}
	T.Atoms = append(T.Atoms, a)
	return nil
}

// an [ atomtypes ] row. ACPype writes: name btype mass charge ptype sigma
// epsilon; some force fields drop btype, so the mass is found by looking
// for the first float after the name.
func (T *Topology) atomTypeFromGro(s string) error {
	f := fi(s)
	if len(f) < 2 {
		return fmt.Errorf("atomtype row with only %d fields", len(f))
	}
	at := new(AtomType)
	at.Name = f[0]
	for _, v := range f[1:] {
		if m, err := strconv.ParseFloat(v, 64); err == nil {
			at.Mass = m
			break
		}
	}
	T.ATypes = append(T.ATypes, at)
	return nil
}

// TotalCharge returns the sum of the partial charges of all atoms.
func (T *Topology) TotalCharge() float64 {
	sum := 0.0
	for _, a := range T.Atoms {
		sum += a.Charge
	}
	return sum
}

// ValidateCharge checks that the summed partial charges of T round to the
// expected net charge within tol. On failure the returned error aggregates
// every diagnostic worth reporting: the deviation itself, plus any atom
// with a suspiciously large partial charge, which usually points at the
// culprit.
func ValidateCharge(T *Topology, want int, tol float64) error {
	dev := T.TotalCharge() - float64(want)
	if math.Abs(dev) <= tol {
		return nil
	}
	err := fmt.Errorf("topology %s: summed charge %.6f deviates from expected %d by %.6f (tolerance %g)",
		T.Name, T.TotalCharge(), want, dev, tol)
	for _, a := range T.Atoms {
		if math.Abs(a.Charge) > 1.5 {
			err = multierr.Append(err, fmt.Errorf("atom %d (%s, type %s) has partial charge %.4f", a.ID, a.Name, a.Type, a.Charge))
		}
	}
	return err
}

func cleanString(s string) string {
	f := strings.Split(s, ";")[0]
	return strings.Trim(f, "\n\t ")
}
