/*
 * kinetics.go, part of molequle.
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
	"math"

	"gonum.org/v1/gonum/floats"
)

//Arrhenius contains the parameters of the Arrhenius relation
//for one reaction.
type Arrhenius struct {
	ActivationEnergy float64 `json:"activation_energy_kjmol"` //kJ/mol
	FrequencyFactor  float64 `json:"frequency_factor_per_s"`  //1/s
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

//checkPositive returns a *ParameterError if v is not a finite, strictly positive number.
func checkPositive(caller, param string, v float64) error {
	if !finite(v) {
		return newParameterError(caller, param, v, "must be finite")
	}
	if v <= 0 {
		return newParameterError(caller, param, v, "must be > 0")
	}
	return nil
}

//check validates the parameters. Negative activation energies are allowed,
//only non-finite ones are rejected.
func (A Arrhenius) check(caller string) error {
	if !finite(A.ActivationEnergy) {
		return newParameterError(caller, "activation_energy_kjmol", A.ActivationEnergy, "must be finite")
	}
	return checkPositive(caller, "frequency_factor_per_s", A.FrequencyFactor)
}

//Rate returns the rate constant, in 1/s, at the absolute temperature T (K).
//The result can underflow to 0 for large barriers at low temperature.
func (A Arrhenius) Rate(T float64) (float64, error) {
	if err := A.check("Rate"); err != nil {
		return 0, err
	}
	if err := checkPositive("Rate", "temperature_K", T); err != nil {
		return 0, err
	}
	return A.FrequencyFactor * math.Exp(-KJToJ(A.ActivationEnergy)/(R*T)), nil
}

//rateRatio returns rate(Tref)/rate(T). The frequency factor cancels, so the
//ratio is computed directly in the exponent, which avoids underflow of the
//individual constants. It is exactly 1 when T == Tref.
func (A Arrhenius) rateRatio(T, Tref float64) float64 {
	if T == Tref {
		return 1
	}
	return math.Exp(KJToJ(A.ActivationEnergy) / R * (1/T - 1/Tref))
}

//ShelfLife returns the time, in days, for potency to fall to 90% at temperature T,
//given the reference shelf life refDays, measured at Tref. Under first-order kinetics
//the shelf life is inversely proportional to the rate constant, so
//shelf(T) = refDays * rate(Tref) / rate(T).
func (A Arrhenius) ShelfLife(refDays, T, Tref float64) (float64, error) {
	const caller = "Arrhenius.ShelfLife"
	if err := A.check(caller); err != nil {
		return 0, err
	}
	if err := checkPositive(caller, "reference_shelf_life_days", refDays); err != nil {
		return 0, err
	}
	if err := checkPositive(caller, "temperature_K", T); err != nil {
		return 0, err
	}
	if err := checkPositive(caller, "reference_temperature_K", Tref); err != nil {
		return 0, err
	}
	days := refDays * A.rateRatio(T, Tref)
	if !finite(days) || days <= 0 {
		return 0, newParameterError(caller, "temperature_K", T, "gives a shelf life that can't be represented")
	}
	return days, nil
}

//ComputeShelfLife returns the shelf life in days at temperatureK for a reaction with the given
//activation energy (kJ/mol) and frequency factor (1/s), using referenceShelfLifeDays, measured at
//referenceTemperatureK, as the calibration anchor. Use DefaultReferenceTemperature when in doubt.
//It fails with an InvalidParameter error if either temperature, the frequency factor or the reference
//shelf life are not positive, or if any input is not finite. Negative activation energies
//are accepted; validating them is the caller's job.
func ComputeShelfLife(activationEnergyKJmol, frequencyFactorPerS, referenceShelfLifeDays, temperatureK, referenceTemperatureK float64) (float64, error) {
	A := Arrhenius{ActivationEnergy: activationEnergyKJmol, FrequencyFactor: frequencyFactorPerS}
	days, err := A.ShelfLife(referenceShelfLifeDays, temperatureK, referenceTemperatureK)
	if err != nil {
		err.(Error).Decorate("ComputeShelfLife")
		return 0, err
	}
	return days, nil
}

//CurvePoint is one point of a shelf life vs. temperature curve.
type CurvePoint struct {
	Temperature float64   `json:"temperature_K"`
	ShelfLife   ShelfLife `json:"shelf_life"`
}

//ShelfLifeCurve evaluates the shelf life, following the policy P, at n temperatures evenly
//spaced between tmin and tmax (both included). n must be at least 2.
func (P Policy) ShelfLifeCurve(A Arrhenius, refDays, tmin, tmax float64, n int) ([]CurvePoint, error) {
	const caller = "Policy.ShelfLifeCurve"
	if n < 2 {
		return nil, newParameterError(caller, "n", float64(n), "must be >= 2")
	}
	if err := checkPositive(caller, "tmin", tmin); err != nil {
		return nil, err
	}
	if err := checkPositive(caller, "tmax", tmax); err != nil {
		return nil, err
	}
	if tmax <= tmin {
		return nil, newParameterError(caller, "tmax", tmax, "must be larger than tmin")
	}
	temps := floats.Span(make([]float64, n), tmin, tmax)
	ret := make([]CurvePoint, 0, n)
	for _, T := range temps {
		s, err := P.ShelfLife(A, refDays, T)
		if err != nil {
			err.(Error).Decorate(caller)
			return nil, err
		}
		ret = append(ret, CurvePoint{Temperature: T, ShelfLife: s})
	}
	return ret, nil
}
