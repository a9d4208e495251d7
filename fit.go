/*
 * fit.go, part of molequle.
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
	"gonum.org/v1/gonum/stat"
)

//FitArrhenius obtains Arrhenius parameters from rate constants (1/s) measured at
//the given temperatures (K), by least squares on ln(k) = ln(A) - Ea/(R T).
//It also returns the coefficient of determination of the fit.
//At least 2 different temperatures are needed.
func FitArrhenius(temperatures, rates []float64) (Arrhenius, float64, error) {
	const caller = "FitArrhenius"
	if len(temperatures) != len(rates) {
		return Arrhenius{}, 0, newParameterError(caller, "rates", float64(len(rates)), "must have one element per temperature")
	}
	if len(temperatures) < 2 {
		return Arrhenius{}, 0, newParameterError(caller, "temperatures", float64(len(temperatures)), "at least 2 points needed")
	}
	x := make([]float64, len(temperatures))
	y := make([]float64, len(rates))
	for i := range temperatures {
		if err := checkPositive(caller, "temperatures", temperatures[i]); err != nil {
			err.(*ParameterError).Index = i
			return Arrhenius{}, 0, err
		}
		if err := checkPositive(caller, "rates", rates[i]); err != nil {
			err.(*ParameterError).Index = i
			return Arrhenius{}, 0, err
		}
		x[i] = 1 / temperatures[i]
		y[i] = math.Log(rates[i])
	}
	if floats.Max(x) == floats.Min(x) {
		return Arrhenius{}, 0, newParameterError(caller, "temperatures", temperatures[0], "all temperatures are equal")
	}
	intercept, slope := stat.LinearRegression(x, y, nil, false)
	r2 := stat.RSquared(x, y, nil, intercept, slope)
	ret := Arrhenius{
		ActivationEnergy: -slope * R * J2KJ,
		FrequencyFactor:  math.Exp(intercept),
	}
	return ret, r2, nil
}
