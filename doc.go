/*
 * doc.go, part of molequle.
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
 */

/*Package molequle is the main package of the MoleQule library. It estimates degradation
kinetics and structural stability for small molecules.



	**MoleQule Capabilities**


    Computes Arrhenius rate constants and temperature-adjusted shelf lives (t90, the
	time to 90% potency) by scaling an empirically known shelf life at a reference
	temperature.

    Decides, by policy, when a molecule is kinetically inert enough that its shelf
	life should be reported as effectively infinite, and labels the result.

    Formats shelf lives in hours, days, months or years.

    Fits Arrhenius parameters to measured rate constants.

    Classifies a structure as stable or unstable from its vibrational
	frequencies (a negative frequency marks a saddle point, not a minimum).

    Computes barriers and reaction energies from reactant, transition state and
	product energies.

The subpackages provide the reference dataset (refdata), a driver for the xtb
program that supplies energies and frequencies (qm), plots (chemplot), a JSON
pipe protocol (chemjson) and an HTTP dashboard API (dashboard).

All the functions in this package are pure and can be called concurrently.*/
package molequle
