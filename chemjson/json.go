/*
 * json.go, part of molequle.
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

package chemjson

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rmera/molequle"
	"github.com/rmera/molequle/refdata"
)

//Request kinds
const (
	KindShelfLife = "shelflife"
	KindStability = "stability"
	KindMolecule  = "molecule"
)

//An easily JSON-serializable error type,
type Error struct {
	deco       []string
	IsError    bool //If this is false (no error) all the other fields will be at their zero-values.
	InDecoding bool //If error, was it in decoding the request?
	InProcess  bool
	Kind       string //InvalidParameter, NotFound or empty
	Function   string //which go function gave the error
	Message    string //the error itself
}

//Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - ")) // Yo, dawg, I heard you like errors, so I got an error while serializing your error so you can... you know the drill.
	}
	return ret
}

//Takes an error and some additional info to create a json-marshal-ble error
func NewError(where, function string, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	switch where {
	case "decoding":
		jerr.InDecoding = true
	default:
		jerr.InProcess = true
	}
	if molequle.IsInvalidParameter(err) {
		jerr.Kind = molequle.InvalidParameter.String()
	}
	jerr.Function = function
	jerr.Message = err.Error()
	return jerr
}

//Request is one job sent by the calling program. Which fields are used
//depends on Kind.
type Request struct {
	Kind string `json:"kind"`

	//shelflife and molecule. If Molecule is given, the kinetic parameters are taken
	//from the dataset and the ones below are ignored.
	Molecule             string  `json:"molecule,omitempty"`
	ActivationEnergy     float64 `json:"activation_energy_kjmol,omitempty"`
	FrequencyFactor      float64 `json:"frequency_factor_per_s,omitempty"`
	ReferenceShelfLife   float64 `json:"reference_shelf_life_days,omitempty"`
	ReferenceTemperature float64 `json:"reference_temperature_K,omitempty"`
	Temperature          float64 `json:"temperature_K,omitempty"`

	//stability
	GroundStateEnergy float64   `json:"ground_state_energy_hartree,omitempty"`
	Frequencies       []float64 `json:"vibrational_frequencies_cm1,omitempty"`
}

//Response is the answer to one Request.
type Response struct {
	Kind       string               `json:"kind"`
	Assessment *molequle.Assessment `json:"assessment,omitempty"`
	Verdict    *molequle.Verdict    `json:"verdict,omitempty"`
	Qualifier  string               `json:"qualifier,omitempty"`
	Record     *refdata.Record      `json:"record,omitempty"`
	Error      *Error               `json:"error,omitempty"`
}

//Send Marshals the response and writes to out, returns an error or nil
func (J *Response) Send(out io.Writer) *Error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(J); err != nil {
		return NewError("process", "Response.Send", err)
	}
	return nil
}

//DecodeRequest decodes one line from stdin into a Request. Blank lines are skipped.
//It returns io.EOF when there is nothing more to read, and the reader's own error,
//unchanged, if reading fails. Lines that can't be decoded give an *Error.
func DecodeRequest(stdin *bufio.Reader) (*Request, error) {
	var line []byte
	for {
		l, err := stdin.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if len(bytes.TrimSpace(l)) != 0 {
			line = l
			break
		}
		if err == io.EOF {
			return nil, io.EOF
		}
	}
	ret := new(Request)
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.DisallowUnknownFields()
	if err := dec.Decode(ret); err != nil {
		return nil, NewError("decoding", "DecodeRequest", err)
	}
	return ret, nil
}

//Process answers the request R using the dataset D and the policy P.
//Errors are returned inside the response.
func Process(R *Request, D *refdata.Dataset, P molequle.Policy) *Response {
	ret := &Response{Kind: R.Kind}
	switch R.Kind {
	case KindMolecule:
		rec, ok := D.Get(R.Molecule)
		if !ok {
			ret.Error = notFound(R.Molecule)
			return ret
		}
		ret.Record = &rec
	case KindShelfLife:
		A := molequle.Arrhenius{ActivationEnergy: R.ActivationEnergy, FrequencyFactor: R.FrequencyFactor}
		ref := R.ReferenceShelfLife
		if R.ReferenceTemperature != 0 {
			P.ReferenceTemperature = R.ReferenceTemperature
		}
		if R.Molecule != "" {
			rec, ok := D.Get(R.Molecule)
			if !ok {
				ret.Error = notFound(R.Molecule)
				return ret
			}
			A = rec.Arrhenius()
			ref = rec.ReferenceShelfLife
			P.ReferenceTemperature = D.Temperature()
		}
		a, err := P.Assess(A, ref, R.Temperature)
		if err != nil {
			ret.Error = NewError("process", "Policy.Assess", err)
			return ret
		}
		ret.Assessment = &a
	case KindStability:
		v, err := molequle.ClassifyStability(R.GroundStateEnergy, R.Frequencies)
		if err != nil {
			ret.Error = NewError("process", "ClassifyStability", err)
			return ret
		}
		ret.Verdict = &v
		ret.Qualifier = v.Qualifier()
	default:
		ret.Error = NewError("decoding", "Process", fmt.Errorf("unknown request kind %q", R.Kind))
	}
	return ret
}

func notFound(name string) *Error {
	e := NewError("process", "Process", fmt.Errorf("molecule %q not in the dataset", name))
	e.Kind = "NotFound"
	return e
}

//Serve reads requests from in, one per line, and writes one response per line to out,
//until in is exhausted or ctx is cancelled. Malformed requests get an error response,
//only failures to read or write stop the loop.
func Serve(ctx context.Context, in io.Reader, out io.Writer, D *refdata.Dataset, P molequle.Policy) error {
	stdin := bufio.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		R, err := DecodeRequest(stdin)
		if err == io.EOF {
			return nil
		}
		var resp *Response
		if err != nil {
			jerr, ok := err.(*Error)
			if !ok {
				return err
			}
			resp = &Response{Error: jerr}
		} else {
			resp = Process(R, D, P)
		}
		if serr := resp.Send(out); serr != nil {
			return serr
		}
	}
}
