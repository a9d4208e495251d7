/*
 * stability.go, part of molequle.
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
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

//Stability is the categorical outcome of ClassifyStability.
type Stability int

const (
	Stable Stability = iota
	Unstable
)

func (S Stability) String() string {
	if S == Unstable {
		return "Unstable"
	}
	return "Stable"
}

func (S Stability) MarshalJSON() ([]byte, error) {
	return json.Marshal(S.String())
}

func (S *Stability) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "Stable":
		*S = Stable
	case "Unstable":
		*S = Unstable
	default:
		return fmt.Errorf("molequle: unknown stability %q", s)
	}
	return nil
}

//Verdict is the result of ClassifyStability. For unstable structures, Imaginary
//contains the negative (imaginary) frequencies found, in the order given.
type Verdict struct {
	Class             Stability `json:"class"`
	Imaginary         []float64 `json:"imaginary_cm1,omitempty"`
	GroundStateEnergy float64   `json:"ground_state_energy_hartree"` //carried along, not used in the decision
}

//Qualifier returns the human-readable form of the verdict, including its cause
//for unstable structures.
func (V Verdict) Qualifier() string {
	if V.Class == Unstable {
		return "Unstable (imaginary frequencies)"
	}
	return "Thermodynamically Stable"
}

func (V Verdict) String() string {
	return V.Qualifier()
}

//LargestImaginary returns the absolute value of the most negative frequency,
//or 0 for a stable structure.
func (V Verdict) LargestImaginary() float64 {
	if len(V.Imaginary) == 0 {
		return 0
	}
	return -floats.Min(V.Imaginary)
}

//ClassifyStability labels a structure as Unstable if and only if at least one of the
//vibrational frequencies (in cm^-1) is strictly negative, which means the geometry is a
//saddle point rather than an energy minimum. An empty set of frequencies gives Stable.
//
//The ground state energy (Hartree) is accepted and copied into the verdict, but it plays
//no role in the decision. Non-finite frequencies give an InvalidParameter error.
func ClassifyStability(groundStateEnergyHartree float64, vibrationalFrequenciesCM1 []float64) (Verdict, error) {
	ret := Verdict{Class: Stable, GroundStateEnergy: groundStateEnergyHartree}
	for i, f := range vibrationalFrequenciesCM1 {
		if !finite(f) {
			err := newParameterError("ClassifyStability", "vibrational_frequencies_cm1", f, "must be finite")
			err.Index = i
			return Verdict{}, err
		}
		if f < 0 {
			ret.Imaginary = append(ret.Imaginary, f)
		}
	}
	if len(ret.Imaginary) > 0 {
		ret.Class = Unstable
	}
	return ret, nil
}
