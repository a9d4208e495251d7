/*
 * conversion.go, part of molequle.
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

//This provides the conversion factors and physical constants used everywhere
//in the library. Nothing else in molequle should carry a bare unit factor.

//Energy conversions
const (
	KJ2J    = 1000.0 //kJ/mol to J/mol
	J2KJ    = 1 / KJ2J
	H2KJ    = 2625.5 //Hartree to kJ/mol
	KJ2H    = 1 / H2KJ
	H2Kcal  = 627.509 //Hartree to kcal/mol
	Kcal2H  = 1 / H2Kcal
	KJ2Kcal = 1 / 4.184
	Kcal2KJ = 4.184
)

//Time conversions. Months and years are the calendar approximations
//used for shelf-life reporting, not astronomical values.
const (
	Day2Hour   = 24.0
	Hour2Day   = 1 / Day2Hour
	Day2Second = 86400.0
	Second2Day = 1 / Day2Second
	Month2Day  = 30.0
	Day2Month  = 1 / Month2Day
	Year2Day   = 365.0
	Day2Year   = 1 / Year2Day
)

//Others
const (
	R                           = 8.314 //gas constant, J/(mol K)
	DefaultReferenceTemperature = 298.0 //K
)

//YearsToDays converts a duration in years to days.
func YearsToDays(years float64) float64 {
	return years * Year2Day
}

//KJToJ converts an energy in kJ/mol to J/mol.
func KJToJ(kj float64) float64 {
	return kj * KJ2J
}

//HartreeToKJ converts an energy in Hartree to kJ/mol.
func HartreeToKJ(h float64) float64 {
	return h * H2KJ
}
