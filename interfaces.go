/*
 * interfaces.go, part of molequle.
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

package molequle

import (
	"errors"
	"fmt"
	"strings"
)

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Adds the caller (and optionally extra info, as "FunctionName: info") to the error. An empty string just returns the current slice.
}

// Kind classifies the errors returned by the core.
type Kind int

const (
	// InvalidParameter is returned for out-of-domain numeric inputs.
	InvalidParameter Kind = iota + 1
)

func (K Kind) String() string {
	switch K {
	case InvalidParameter:
		return "InvalidParameter"
	default:
		return "Unknown"
	}
}

// ErrInvalidParameter can be used with errors.Is to recognize any
// *ParameterError, regardless of the parameter involved.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParameterError reports a numeric input outside the domain of a calculation.
// It fulfills Error.
type ParameterError struct {
	Param   string  //name of the offending parameter
	Value   float64 //the value given
	Index   int     //position in a sequence, or -1
	Message string
	deco    []string
}

func newParameterError(caller, param string, value float64, msg string) *ParameterError {
	return &ParameterError{Param: param, Value: value, Index: -1, Message: msg, deco: []string{caller}}
}

func (E *ParameterError) Error() string {
	where := E.Param
	if E.Index >= 0 {
		where = fmt.Sprintf("%s[%d]", E.Param, E.Index)
	}
	s := fmt.Sprintf("molequle: %s: %s=%g %s", InvalidParameter, where, E.Value, E.Message)
	if len(E.deco) > 0 {
		s = fmt.Sprintf("%s (%s)", s, strings.Join(E.deco, " <- "))
	}
	return s
}

// Decorate adds deco to the call chain of the error and returns the chain.
func (E *ParameterError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// Kind always returns InvalidParameter.
func (E *ParameterError) Kind() Kind { return InvalidParameter }

// Is makes errors.Is(err, ErrInvalidParameter) true for every *ParameterError.
func (E *ParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// IsInvalidParameter returns true if err is, or wraps, an InvalidParameter error.
func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}
