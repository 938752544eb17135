/*
 * acpype.go, part of goLigPrep.
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

//In order to use this package you need ACPype (Sousa da Silva & Vranken,
//BMC Res. Notes 5, 367, 2012), which in turn needs Antechamber from
//AmberTools. Both must be obtained separately. Please cite them if you use
//this package.

//Package acpype wraps the ACPype program, which assigns AM1-BCC partial
//charges and GAFF force-field parameters to a small molecule and emits
//simulation topologies. Both ACPype output flavors are supported: Gromacs
//(gro/itp/top) and CNS/XPLOR (inp/par/top/pdb).
package acpype

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Flavor selects which of the two topology bundles a run produces.
type Flavor string

const (
	GMX Flavor = "gmx"
	CNS Flavor = "cns"
)

// Options for a parameterization run. Charge is the net formal charge of
// the molecule; ACPype passes it to Antechamber and the resulting partial
// charges will sum to it. It must be the true formal charge or the
// parameters are chemically invalid, which nothing here can detect.
type Options struct {
	Charge       int
	ChargeMethod string //"bcc" (default), "gas", "user"
	ForceField   string //"gaff" (default), "gaff2", "amber"
	Basename     string //basename for the output files
}

func (opt *Options) setDefaults() {
	if opt.ChargeMethod == "" {
		opt.ChargeMethod = "bcc"
	}
	if opt.ForceField == "" {
		opt.ForceField = "gaff"
	}
	if opt.Basename == "" {
		opt.Basename = "ligparams"
	}
}

// A Bundle is the terminal artifact of the pipeline: the set of files of
// one topology flavor, under the caller's naming convention.
type Bundle struct {
	Flavor   Flavor
	Basename string
	Files    []string
}

// Check returns an error unless every file of the bundle exists and is
// non-empty.
func (B *Bundle) Check() error {
	for _, f := range B.Files {
		fi, err := os.Stat(f)
		if err != nil {
			return &Error{ErrIncompleteBundle, B.Basename, err.Error(), []string{"Bundle.Check"}}
		}
		if fi.Size() == 0 {
			return &Error{ErrIncompleteBundle, B.Basename, f + " is empty", []string{"Bundle.Check"}}
		}
	}
	return nil
}

// Topology returns the path of the bundle's topology file (.top for both
// flavors).
func (B *Bundle) Topology() string {
	for _, f := range B.Files {
		if strings.HasSuffix(f, ".top") {
			return f
		}
	}
	return ""
}

// ITP returns the path of the Gromacs include topology, or "" for a CNS
// bundle.
func (B *Bundle) ITP() string {
	for _, f := range B.Files {
		if strings.HasSuffix(f, ".itp") {
			return f
		}
	}
	return ""
}

// APHandle runs ACPype. Get one with NewAPHandle.
type APHandle struct {
	command  string
	name     string
	workdir  string
	dryrun   bool
	lastArgs []string
	warnings []string
}

func NewAPHandle() *APHandle {
	A := new(APHandle)
	A.SetDefaults()
	return A
}

// SetDefaults expects acpype in the PATH.
func (A *APHandle) SetDefaults() {
	A.command = "acpype"
	A.name = "ligand"
}

func (A *APHandle) SetName(name string) {
	A.name = name
}

func (A *APHandle) SetCommand(command string) {
	if command != "" {
		A.command = command
	}
}

func (A *APHandle) SetWorkDir(dir string) {
	A.workdir = dir
}

// SetDryRun makes the handle build command lines without running anything.
func (A *APHandle) SetDryRun(dry bool) {
	A.dryrun = dry
}

// LastArgs returns the argument list of the last (possibly dry) run.
func (A *APHandle) LastArgs() []string {
	return A.lastArgs
}

// Warnings returns the WARNING lines ACPype logged in the last run. A
// typical one is the net charge not balancing to the requested value;
// following the tool's own behavior this is surfaced, not acted upon.
func (A *APHandle) Warnings() []string {
	return A.warnings
}

// args builds the acpype command line. ACPype always generates every
// flavor; selection happens when the bundle is collected.
func (A *APHandle) args(in string, opt *Options) []string {
	return []string{
		"-i", in,
		"-b", opt.Basename,
		"-n", strconv.Itoa(opt.Charge),
		"-c", opt.ChargeMethod,
		"-a", opt.ForceField,
		"-o", "all",
	}
}

// RunGMX parameterizes the structure in and collects the Gromacs bundle:
// <basename>.gro, <basename>.itp and <basename>.top.
func (A *APHandle) RunGMX(ctx context.Context, in string, opt *Options) (*Bundle, error) {
	return A.run(ctx, in, opt, GMX)
}

// RunCNS parameterizes the structure in and collects the CNS bundle:
// <basename>.inp, <basename>.par, <basename>.top and <basename>.pdb.
func (A *APHandle) RunCNS(ctx context.Context, in string, opt *Options) (*Bundle, error) {
	return A.run(ctx, in, opt, CNS)
}

func (A *APHandle) run(ctx context.Context, in string, opt *Options, flavor Flavor) (*Bundle, error) {
	A.warnings = nil //never report a previous run's warnings
	if opt == nil {
		opt = new(Options)
	}
	opt.setDefaults()
	A.lastArgs = A.args(in, opt)
	if A.dryrun {
		return &Bundle{Flavor: flavor, Basename: opt.Basename}, nil
	}
	logname := A.path(A.name + ".acpype.log")
	cmd := A.command + " " + strings.Join(A.lastArgs, " ") + " > " + A.name + ".acpype.log 2>&1"
	command := exec.CommandContext(ctx, "sh", "-c", cmd)
	command.Dir = A.workdir
	if err := command.Run(); err != nil {
		return nil, &Error{ErrNotRunning, A.name, err.Error() + "; see " + logname, []string{"run"}}
	}
	if f, err := os.Open(logname); err == nil {
		A.warnings = scanWarnings(f)
		f.Close()
	}
	return A.Collect(opt.Basename, flavor)
}

// The files ACPype leaves under <basename>.acpype/, per flavor, and the
// extensions they get in the collected bundle.
var flavorFiles = map[Flavor][][2]string{
	GMX: {
		{"_GMX.gro", ".gro"},
		{"_GMX.itp", ".itp"},
		{"_GMX.top", ".top"},
	},
	CNS: {
		{"_CNS.inp", ".inp"},
		{"_CNS.par", ".par"},
		{"_CNS.top", ".top"},
		{"_NEW.pdb", ".pdb"},
	},
}

// Collect copies the flavor's files out of the <basename>.acpype output
// directory into the working directory, renamed to <basename><ext>, and
// returns the resulting bundle. It is split from the run so a finished
// ACPype directory can be re-collected without re-running Antechamber.
func (A *APHandle) Collect(basename string, flavor Flavor) (*Bundle, error) {
	outdir := A.path(basename + ".acpype")
	wanted, ok := flavorFiles[flavor]
	if !ok {
		return nil, &Error{ErrBadFlavor, A.name, string(flavor), []string{"Collect"}}
	}
	B := &Bundle{Flavor: flavor, Basename: basename}
	for _, w := range wanted {
		src := filepath.Join(outdir, basename+w[0])
		dst := A.path(basename + w[1])
		if err := copyFile(src, dst); err != nil {
			return nil, &Error{ErrIncompleteBundle, A.name, err.Error(), []string{"Collect"}}
		}
		B.Files = append(B.Files, dst)
	}
	return B, nil
}

func (A *APHandle) path(name string) string {
	if A.workdir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(A.workdir, name)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

func scanWarnings(r io.Reader) []string {
	var w []string
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if strings.HasPrefix(line, "WARNING") {
			w = append(w, line)
		}
	}
	return w
}

// Errors

const (
	ErrNotRunning       = "ACPype failed to run or finished with an error status"
	ErrIncompleteBundle = "The topology bundle is incomplete"
	ErrBadFlavor        = "Unknown topology flavor"
)

// Error carries the job name along with the message, and implements the
// goLigPrep Error interface. It is handed around as a pointer so
// decorations stick.
type Error struct {
	message string //one of the Err* constants
	name    string
	extra   string
	deco    []string
}

func (err *Error) Error() string {
	s := fmt.Sprintf("%s. Job: %s", err.message, err.name)
	if err.extra != "" {
		s = s + ". " + err.extra
	}
	return s
}

// Decorate adds dec to the decoration slice and returns the result.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}
