/*
 * doc.go, part of goLigPrep.
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
Package ligprep prepares small-molecule ligands for molecular dynamics.

It drives a linear pipeline of external programs: a ligand structure is
downloaded by its short code, protonated at a given pH and energy-minimized
with OpenBabel, and finally parameterized with ACPype (AM1-BCC charges,
GAFF force field) into a Gromacs or CNS topology bundle.

	**goLigPrep capabilities**

    Downloads ligand structures from the RCSB by their 3-letter code.

    Reads/writes PDB and Mol2 files for small molecules.

    Wraps OpenBabel (obabel/obminimize) for hydrogen addition at a target
	pH and for force-field energy minimization. The OpenBabel programs
	must be obtained separately (http://openbabel.org).

    Wraps ACPype for AM1-BCC/GAFF parameterization, producing either
	Gromacs (gro/itp/top) or CNS (inp/par/top/pdb) topology bundles.
	ACPype must be obtained separately and needs Antechamber from
	AmberTools.

    Reads Gromacs itp/top files back, to check the total charge of a
	generated topology against the expected net charge of the ligand.

    Exports molecules as JSON for external viewers, and draws quick 2D
	sketches of a structure (uses the gonum plot library).

None of the chemistry is done here. Protonation states, minimization and
charge fitting are entirely owned by the wrapped programs; this library
only sequences them, names the intermediate files consistently and checks
that each step left behind what the next one needs.

The subpackage pipeline assembles the whole thing; the cmd/goligprep
program is a command-line frontend to it.
*/
package ligprep
