/*
 * profile.go, part of molequle.
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

//EnergyProfile holds the energies (Hartree) of the stationary points
//along a degradation reaction.
type EnergyProfile struct {
	Reactant        float64 `json:"reactant_hartree" yaml:"reactant_hartree"`
	TransitionState float64 `json:"transition_state_hartree" yaml:"transition_state_hartree"`
	Product         float64 `json:"product_hartree" yaml:"product_hartree"`
}

//ProfileLabels are the names of the stationary points, in the order
//returned by EnergyProfile.Energies.
var ProfileLabels = []string{"Reactant", "TS", "Product"}

//Energies returns the reactant, TS and product energies, in that order.
func (E EnergyProfile) Energies() []float64 {
	return []float64{E.Reactant, E.TransitionState, E.Product}
}

//Barrier returns the forward barrier in kJ/mol.
func (E EnergyProfile) Barrier() float64 {
	return HartreeToKJ(E.TransitionState - E.Reactant)
}

//ReverseBarrier returns the barrier from the product side in kJ/mol.
func (E EnergyProfile) ReverseBarrier() float64 {
	return HartreeToKJ(E.TransitionState - E.Product)
}

//ReactionEnergy returns product minus reactant energy in kJ/mol. Negative
//values mean exothermic degradation.
func (E EnergyProfile) ReactionEnergy() float64 {
	return HartreeToKJ(E.Product - E.Reactant)
}
