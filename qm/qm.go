/*
 * qm.go, part of molequle.
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
	"context"
)

//Handle allows to set QM calculations using different programs.
type Handle interface {

	//Sets the name for the job, used for input
	//and output files. The extentions will depend on the program.
	SetName(name string)

	//BuildInput builds an input for the QM program based on the geometry G
	//and the settings in Q.
	BuildInput(G *Geometry, Q *Calc) error

	//Run runs the QM program for a calculation previously set.
	//it waits or not for the result depending of the value of
	//wait. The context only bounds runs that are waited for.
	Run(ctx context.Context, wait bool) error

	//Energy gets the last energy, in Hartree, for a calculation by parsing the
	//QM program's output. Returns an error with ErrProbableProblem
	//if there is an energy but the calculation didnt end properly.
	Energy() (float64, error)

	//Frequencies returns the vibrational frequencies, in cm^-1, from a calculation
	//that included a Hessian. Translations and rotations are not included.
	Frequencies() ([]float64, error)
}

//Calc contains the settings for a calculation.
type Calc struct {
	Method     string  //gfn0, gfn1, gfn2 or gfnff for xtb
	Optimize   bool    //optimize the geometry before anything else
	Hessian    bool    //compute vibrational frequencies
	Dielectric float64 //implicit solvent, 0 means gas phase
	CPUs       int     //0 lets the handle decide
}

//SetDefaults sets a single point plus frequencies with gfn2.
func (Q *Calc) SetDefaults() {
	Q.Method = "gfn2"
	Q.Hessian = true
}

//Analyze runs the calculation Q (with frequencies always enabled) for G, using the handle H,
//and returns the ground state energy (Hartree) and the vibrational frequencies (cm^-1).
//These can be fed directly to molequle.ClassifyStability. If the program didn't end
//normally, but left both results, they are returned with a non-critical Error.
func Analyze(ctx context.Context, H Handle, G *Geometry, Q *Calc) (float64, []float64, error) {
	var calc Calc
	if Q == nil {
		calc.SetDefaults()
	} else {
		calc = *Q
	}
	calc.Hessian = true
	if err := H.BuildInput(G, &calc); err != nil {
		return 0, nil, decorate(err, "Analyze")
	}
	if err := H.Run(ctx, true); err != nil {
		return 0, nil, decorate(err, "Analyze")
	}
	E, eerr := H.Energy()
	if eerr != nil {
		if e, ok := eerr.(Error); !ok || e.Critical() {
			return 0, nil, decorate(eerr, "Analyze")
		}
	}
	freqs, err := H.Frequencies()
	if err != nil {
		return E, nil, decorate(err, "Analyze")
	}
	if eerr != nil {
		return E, freqs, decorate(eerr, "Analyze")
	}
	return E, freqs, nil
}

//decorate adds caller to the call chain of err if err is an Error,
//and returns it.
func decorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.deco = e.Decorate(caller)
		return e
	}
	return err
}

//Utilities here

//isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	if container == nil {
		return false
	}
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
