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

package cli

import (
	"fmt"
	"io"

	"github.com/rmera/molequle"
	"github.com/spf13/cobra"
)

//Read through the variables, not GetFloat64Slice, which rounds to 6 decimals.
var fitTemps, fitRates []float64

func init() {
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit Arrhenius parameters to measured rate constants",
		Args:  cobra.NoArgs,
		RunE:  runFit,
	}
	cmd.Flags().Float64SliceVarP(&fitTemps, "temperatures", "T", nil, "Temperatures (K), comma separated")
	cmd.Flags().Float64SliceVarP(&fitRates, "rates", "k", nil, "Rate constants (1/s), comma separated, in the same order")
	cmd.MarkFlagRequired("temperatures")
	cmd.MarkFlagRequired("rates")
	RootCmd.AddCommand(cmd)
}

//FitResult is what the fit command prints.
type FitResult struct {
	Arrhenius molequle.Arrhenius `json:"arrhenius"`
	RSquared  float64            `json:"r_squared"`
}

func runFit(cmd *cobra.Command, args []string) error {
	A, r2, err := molequle.FitArrhenius(fitTemps, fitRates)
	if err != nil {
		return err
	}
	return output(cmd.OutOrStdout(), FitResult{Arrhenius: A, RSquared: r2}, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Ea = %.2f kJ/mol\nA = %.3e 1/s\nR^2 = %.4f\n", A.ActivationEnergy, A.FrequencyFactor, r2)
		return err
	})
}
