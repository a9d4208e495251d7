/*
 * errors.go, part of molequle.
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
	"fmt"
	"strings"
)

//Programs
const (
	XTB = "XTB"
)

//Error messages
const (
	ErrNoEnergy        = "Energy not found in QM output"
	ErrNoFrequencies   = "Vibrational frequencies not found in QM output"
	ErrNotRunning      = "Couldn't run the QM program"
	ErrCantInput       = "Couldn't write the QM input"
	ErrMissingAtoms    = "No atoms given"
	ErrProbableProblem = "The calculation didn't end normally"
)

//Error is the error type for the qm package. It fulfills molequle.Error.
type Error struct {
	message    string
	program    string
	inputname  string
	additional string
	deco       []string
	critical   bool
	wrapped    error
}

func newError(message, program, inputname string, wrapped error, deco ...string) Error {
	add := ""
	if wrapped != nil {
		add = wrapped.Error()
	}
	return Error{message: message, program: program, inputname: inputname, additional: add, deco: deco, critical: true, wrapped: wrapped}
}

func (err Error) Error() string {
	s := fmt.Sprintf("%s (%s, input %s)", err.message, err.program, err.inputname)
	if err.additional != "" {
		s += ": " + err.additional
	}
	if len(err.deco) > 0 {
		s += " [" + strings.Join(err.deco, " <- ") + "]"
	}
	return s
}

//Decorate adds deco to the call chain of the error. As Error is a value, the
//returned slice is the only way to see the result.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Message returns the base message, one of the Err* constants.
func (err Error) Message() string { return err.message }

//Program returns the QM program that produced the error.
func (err Error) Program() string { return err.program }

//InputName returns the name of the calculation.
func (err Error) InputName() string { return err.inputname }

//Critical is false when the results can still be used with care.
func (err Error) Critical() bool { return err.critical }

func (err Error) Unwrap() error { return err.wrapped }
