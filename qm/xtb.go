/*
 * xtb.go, part of molequle.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 *
 */

package qm

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

//Note that the default methods vary with each program, and even
//for a given program they are NOT considered part of the API, so they can always change.
type XTBHandle struct {
	command   string
	inputname string
	dir       string
	nCPU      int
	options   []string
	logger    *zap.Logger
}

func NewXTBHandle() *XTBHandle {
	run := new(XTBHandle)
	run.SetDefaults()
	return run
}

//XTBHandle methods

//SetnCPU sets the number of CPU to be used
func (O *XTBHandle) SetnCPU(cpu int) {
	O.nCPU = cpu
}

func (O *XTBHandle) Command() string {
	return O.command
}

func (O *XTBHandle) SetName(name string) {
	O.inputname = name
}

func (O *XTBHandle) SetCommand(name string) {
	O.command = name
}

//SetDir sets the directory where inputs are written and xtb is run. xtb always writes
//some outputs with fixed names, so concurrent calculations need different directories.
func (O *XTBHandle) SetDir(dir string) {
	O.dir = dir
}

func (O *XTBHandle) SetLogger(l *zap.Logger) {
	O.logger = l
}

func (O *XTBHandle) SetDefaults() {
	O.command = "xtb"
	O.inputname = "molequle"
	O.dir = "."
	cpu := runtime.NumCPU() / 2
	if cpu < 1 {
		cpu = 1
	}
	O.nCPU = cpu
	O.logger = zap.NewNop()
}

func (O *XTBHandle) path(name string) string {
	return filepath.Join(O.dir, name)
}

var dielectric2Solvent = map[int]string{
	80: "h2o",
	5:  "chcl3",
	9:  "ch2cl2",
	21: "acetone",
	37: "acetonitrile",
	33: "methanol",
	2:  "toluene",
	7:  "thf",
	47: "dmso",
	38: "dmf",
}

//BuildInput writes the geometry for XTB and prepares the command line. Only unconstrained
//optimizations, single points and Hessians are supported.
func (O *XTBHandle) BuildInput(G *Geometry, Q *Calc) error {
	if G == nil || G.Len() == 0 {
		return newError(ErrMissingAtoms, XTB, O.inputname, nil, "BuildInput")
	}
	if err := G.Check(); err != nil {
		return newError(ErrCantInput, XTB, O.inputname, err, "Check", "BuildInput")
	}
	if Q == nil {
		Q = new(Calc)
		Q.SetDefaults()
	}
	f, err := os.Create(O.path(O.inputname + ".xyz"))
	if err != nil {
		return newError(ErrCantInput, XTB, O.inputname, err, "os.Create", "BuildInput")
	}
	err = G.WriteXYZ(f, "written by molequle")
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return newError(ErrCantInput, XTB, O.inputname, err, "WriteXYZ", "BuildInput")
	}
	O.options = make([]string, 0, 12)
	O.options = append(O.options, O.inputname+".xyz")
	O.options = append(O.options, "--chrg", strconv.Itoa(G.Charge))
	O.options = append(O.options, "--uhf", strconv.Itoa(G.Multiplicity()-1))
	cpu := O.nCPU
	if Q.CPUs > 0 {
		cpu = Q.CPUs
	}
	if cpu > 1 {
		O.options = append(O.options, "-P", strconv.Itoa(cpu))
	}
	switch {
	case Q.Method == "gfnff":
		O.options = append(O.options, "--gfnff")
	case isInString([]string{"gfn0", "gfn1", "gfn2"}, Q.Method):
		O.options = append(O.options, "--gfn", strings.TrimPrefix(Q.Method, "gfn"))
	default:
		O.options = append(O.options, "--gfn", "2") //default method
	}
	//as of the current version, gfn0 doesn't support implicit solvation
	if Q.Dielectric > 0 && Q.Method != "gfn0" {
		if solvent, ok := dielectric2Solvent[int(Q.Dielectric)]; ok {
			O.options = append(O.options, "--alpb", solvent)
		} else {
			O.logger.Warn("no xtb solvent for dielectric, running in gas phase", zap.Float64("dielectric", Q.Dielectric))
		}
	}
	switch {
	case Q.Optimize && Q.Hessian:
		O.options = append(O.options, "--ohess")
	case Q.Hessian:
		O.options = append(O.options, "--hess")
	case Q.Optimize:
		O.options = append(O.options, "--opt")
	}
	return nil
}

//Args returns the command line arguments prepared by BuildInput.
func (O *XTBHandle) Args() []string {
	return append([]string(nil), O.options...)
}

//Run runs the command given by O.command in O.dir, with the output going to inputname.out.
//If wait is false, the program is started and Run returns immediately. In that case
//the context is ignored.
func (O *XTBHandle) Run(ctx context.Context, wait bool) error {
	if O.options == nil {
		return newError(ErrNotRunning, XTB, O.inputname, fmt.Errorf("BuildInput was not called"), "Run")
	}
	out, err := os.Create(O.path(O.inputname + ".out"))
	if err != nil {
		return newError(ErrNotRunning, XTB, O.inputname, err, "os.Create", "Run")
	}
	var command *exec.Cmd
	if wait {
		command = exec.CommandContext(ctx, O.command, O.options...)
	} else {
		command = exec.Command(O.command, O.options...)
	}
	command.Dir = O.dir
	command.Stdout = out
	command.Stderr = out
	O.logger.Info("running xtb", zap.String("command", O.command), zap.Strings("args", O.options), zap.String("dir", O.dir))
	if !wait {
		if err := command.Start(); err != nil {
			out.Close()
			return newError(ErrNotRunning, XTB, O.inputname, err, "exec.Start", "Run")
		}
		go func() {
			command.Wait()
			out.Close()
		}()
		return nil
	}
	err = command.Run()
	out.Close()
	if err != nil {
		return newError(ErrNotRunning, XTB, O.inputname, err, "exec.Run", "Run")
	}
	os.Remove(O.path("xtbrestart"))
	return nil
}

//normalTermination checks that an xtb calculation has terminated normally
func (O *XTBHandle) normalTermination() bool {
	return searchLast("normal termination of x", O.path(O.inputname+".out")) != "" &&
		searchLast("abnormal termination of x", O.path(O.inputname+".out")) == ""
}

//searchLast returns the last line in the file that contains str, or an empty string.
func searchLast(str, filename string) string {
	f, err := os.Open(filename)
	if err != nil {
		return ""
	}
	defer f.Close()
	last := ""
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.Contains(sc.Text(), str) {
			last = sc.Text()
		}
	}
	return last
}

//Energy gets the energy, in Hartree, of a previous XTB calculation.
//Returns error if problem, and also if the energy returned is the product of an
//abnormally-terminated calculation. In that case, the energy is returned
//together with a non-critical ErrProbableProblem error.
func (O *XTBHandle) Energy() (float64, error) {
	energyline := searchLast("TOTAL ENERGY", O.path(O.inputname+".out"))
	if energyline == "" {
		return 0, newError(ErrNoEnergy, XTB, O.inputname, nil, "searchLast", "Energy")
	}
	split := strings.Fields(strings.Trim(energyline, " |"))
	var energy float64
	var err error
	found := false
	for i, v := range split {
		if v == "Eh" && i > 0 {
			energy, err = strconv.ParseFloat(split[i-1], 64)
			found = true
			break
		}
	}
	if !found {
		return 0, newError(ErrNoEnergy, XTB, O.inputname, fmt.Errorf("malformed line %q", energyline), "Energy")
	}
	if err != nil {
		return 0, newError(ErrNoEnergy, XTB, O.inputname, err, "strconv.ParseFloat", "Energy")
	}
	if !O.normalTermination() {
		e := newError(ErrProbableProblem, XTB, O.inputname, nil, "Energy")
		e.critical = false
		return energy, e
	}
	return energy, nil
}

//Frequencies reads the vibrational frequencies (cm^-1) from the vibspectrum file
//of a previous XTB Hessian calculation, without the translations and rotations.
func (O *XTBHandle) Frequencies() ([]float64, error) {
	f, err := os.Open(O.path("vibspectrum"))
	if err != nil {
		return nil, newError(ErrNoFrequencies, XTB, O.inputname, err, "os.Open", "Frequencies")
	}
	defer f.Close()
	all, err := ReadVibspectrum(f)
	if err != nil {
		return nil, newError(ErrNoFrequencies, XTB, O.inputname, err, "ReadVibspectrum", "Frequencies")
	}
	return DropZeroModes(all), nil
}
