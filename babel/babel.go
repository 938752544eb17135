/*
 * babel.go, part of goLigPrep.
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

//In order to use this package you need the OpenBabel programs (obabel and
//obminimize), which must be obtained from http://openbabel.org. Please cite
//the OpenBabel reference (O'Boyle et al., J. Cheminf. 3, 33, 2011) if you
//use them.

//Package babel wraps the OpenBabel command-line programs for the two
//structure transforms of the preparation pipeline: hydrogen addition at a
//given pH and force-field energy minimization.
package babel

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// OBHandle runs the OpenBabel programs. The zero value is not usable; get
// one with NewOBHandle.
type OBHandle struct {
	obabel     string
	obminimize string
	name       string
	workdir    string
	dryrun     bool
	lastArgs   []string
}

func NewOBHandle() *OBHandle {
	O := new(OBHandle)
	O.SetDefaults()
	return O
}

// SetDefaults expects the OpenBabel programs to be in the PATH under their
// usual names.
func (O *OBHandle) SetDefaults() {
	O.obabel = "obabel"
	O.obminimize = "obminimize"
	O.name = "ligand"
}

// SetName sets the job name, used to name the captured tool logs.
func (O *OBHandle) SetName(name string) {
	O.name = name
}

// SetCommand overrides the paths of both programs. An empty string leaves
// the current value.
func (O *OBHandle) SetCommand(obabel, obminimize string) {
	if obabel != "" {
		O.obabel = obabel
	}
	if obminimize != "" {
		O.obminimize = obminimize
	}
}

// SetWorkDir makes the handle run the programs in dir instead of the
// current directory.
func (O *OBHandle) SetWorkDir(dir string) {
	O.workdir = dir
}

// SetDryRun makes the handle build command lines without running anything.
// Mostly for tests, also handy to see what would be run.
func (O *OBHandle) SetDryRun(dry bool) {
	O.dryrun = dry
}

// LastArgs returns the argument list of the last (possibly dry) run.
func (O *OBHandle) LastArgs() []string {
	return O.lastArgs
}

// HOptions controls hydrogen addition. Formats are OpenBabel format names
// (pdb, mol2, ...); left empty they are deduced from the file extensions.
type HOptions struct {
	PH        float64
	InFormat  string
	OutFormat string
}

// formatFromPath maps a file extension to an OpenBabel format name.
func formatFromPath(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "pdb"
	}
	return strings.ToLower(ext)
}

// hydrogenArgs builds the obabel argument list. Split from the run so it
// can be checked without OpenBabel installed.
func (O *OBHandle) hydrogenArgs(in, out string, opt *HOptions) []string {
	inf := opt.InFormat
	if inf == "" {
		inf = formatFromPath(in)
	}
	outf := opt.OutFormat
	if outf == "" {
		outf = formatFromPath(out)
	}
	args := []string{
		"-i" + inf, in,
		"-o" + outf,
		"-O", out,
		"-p", strconv.FormatFloat(opt.PH, 'f', -1, 64),
	}
	return args
}

// Hydrogenate reads the structure in, adds hydrogens according to
// OpenBabel's protonation model for the pH in opt, and writes the result
// to out. The protonation rules themselves are entirely OpenBabel's; we
// pass the pH through and nothing else.
func (O *OBHandle) Hydrogenate(ctx context.Context, in, out string, opt *HOptions) error {
	if opt == nil {
		opt = &HOptions{PH: 7.4}
	}
	O.lastArgs = O.hydrogenArgs(in, out, opt)
	if O.dryrun {
		return nil
	}
	logname := O.name + ".obabel.log"
	if err := O.run(ctx, O.obabel, O.lastArgs, "", logname); err != nil {
		return &Error{ErrNotRunning, "obabel", O.name, err.Error(), []string{"Hydrogenate"}}
	}
	if !nonEmpty(O.path(out)) {
		return &Error{ErrNoOutput, "obabel", O.name, "expected " + out, []string{"Hydrogenate"}}
	}
	return nil
}

// MinOptions controls the minimization. The iteration machinery is
// obminimize's own; we only select method, criterion, force field and the
// step cap.
type MinOptions struct {
	Method     string  //"sd" (steepest descent) or "cg" (conjugate gradients)
	Criterion  float64 //convergence criterion for the energy
	ForceField string  //GAFF, MMFF94, UFF, Ghemical
	Steps      int     //maximum number of steps
	OutFormat  string
}

// SetDefaults fills the zero fields of opt with the usual choices for
// ligand preparation.
func (opt *MinOptions) SetDefaults() {
	if opt.Method == "" {
		opt.Method = "sd"
	}
	if opt.Criterion == 0 {
		opt.Criterion = 1e-10
	}
	if opt.ForceField == "" {
		opt.ForceField = "GAFF"
	}
	if opt.Steps == 0 {
		opt.Steps = 2500
	}
}

// minimizeArgs builds the obminimize argument list.
func (O *OBHandle) minimizeArgs(in, out string, opt *MinOptions) []string {
	outf := opt.OutFormat
	if outf == "" {
		outf = formatFromPath(out)
	}
	args := []string{
		"-" + opt.Method,
		"-c", strconv.FormatFloat(opt.Criterion, 'e', -1, 64),
		"-n", strconv.Itoa(opt.Steps),
		"-ff", opt.ForceField,
		"-o" + outf,
		in,
	}
	return args
}

// Minimize runs a local energy minimization on the structure in, writing
// the minimized structure to out. obminimize prints the structure on
// stdout and the energy trace on stderr; the trace is kept as
// <name>.min.log so Energies can read it back.
func (O *OBHandle) Minimize(ctx context.Context, in, out string, opt *MinOptions) error {
	if opt == nil {
		opt = new(MinOptions)
	}
	opt.SetDefaults()
	O.lastArgs = O.minimizeArgs(in, out, opt)
	if O.dryrun {
		return nil
	}
	if err := O.run(ctx, O.obminimize, O.lastArgs, out, O.minLogName()); err != nil {
		return &Error{ErrNotRunning, "obminimize", O.name, err.Error(), []string{"Minimize"}}
	}
	if !nonEmpty(O.path(out)) {
		return &Error{ErrNoOutput, "obminimize", O.name, "expected " + out, []string{"Minimize"}}
	}
	return nil
}

func (O *OBHandle) minLogName() string {
	return O.name + ".min.log"
}

// Energies parses the captured minimization trace and returns the first
// and last reported total energies. For a convergent run first >= last;
// per-step monotonic decrease is not guaranteed by the minimizer.
func (O *OBHandle) Energies() (first, last float64, err error) {
	f, err := os.Open(O.path(O.minLogName()))
	if err != nil {
		return 0, 0, &Error{ErrNoEnergy, "obminimize", O.name, err.Error(), []string{"Energies"}}
	}
	defer f.Close()
	return ParseEnergies(f)
}

// run executes program with args, with stdout and stderr sent to the given
// files. An empty stdout name discards nothing: stdout then shares the
// stderr log, which is what obabel wants (it writes the structure to -O
// and chatter to both streams).
func (O *OBHandle) run(ctx context.Context, program string, args []string, stdout, stderr string) error {
	parts := make([]string, 0, len(args)+4)
	parts = append(parts, program)
	parts = append(parts, args...)
	if stdout != "" {
		parts = append(parts, ">", stdout)
		parts = append(parts, "2>", stderr)
	} else {
		parts = append(parts, ">", stderr, "2>&1")
	}
	command := exec.CommandContext(ctx, "sh", "-c", strings.Join(parts, " "))
	command.Dir = O.workdir
	return command.Run()
}

func (O *OBHandle) path(name string) string {
	if O.workdir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(O.workdir, name)
}

func nonEmpty(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Size() > 0
}

// Errors

const (
	ErrNotRunning = "Program failed to run or finished with an error status"
	ErrNoOutput   = "Program ran but didn't produce the expected output file"
	ErrNoEnergy   = "Can't read energies from the minimization trace"
)

// Error gives the failing program and job along with the message, and
// implements the goLigPrep Error interface. It is handed around as a
// pointer so decorations stick.
type Error struct {
	message string //one of the Err* constants
	program string
	name    string
	extra   string
	deco    []string
}

func (err *Error) Error() string {
	s := fmt.Sprintf("%s. Program: %s, job: %s", err.message, err.program, err.name)
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
