/*
 * shelflife.go, part of molequle.
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

func init() {
	cmd := &cobra.Command{
		Use:   "shelflife",
		Short: "Shelf life at a temperature",
		Long: "Computes the shelf life (t90) at the given temperature, either for a molecule\n" +
			"of the dataset or for the given Arrhenius parameters and reference shelf life.",
		Args: cobra.NoArgs,
		RunE: runShelfLife,
	}
	cmd.Flags().StringP("molecule", "m", "", "Molecule from the dataset")
	cmd.Flags().Float64("ea", 0, "Activation energy (kJ/mol)")
	cmd.Flags().Float64("factor", 0, "Frequency factor (1/s)")
	cmd.Flags().Float64("ref-days", 0, "Shelf life at the reference temperature (days)")
	cmd.Flags().Float64("ref-temperature", 0, "Reference temperature (K) of --ref-days. Default: the configured one")
	cmd.Flags().Float64P("temperature", "t", 0, "Temperature (K). Default: the reference temperature")
	cmd.MarkFlagsMutuallyExclusive("molecule", "ea")
	cmd.MarkFlagsMutuallyExclusive("molecule", "factor")
	cmd.MarkFlagsMutuallyExclusive("molecule", "ref-days")
	cmd.MarkFlagsMutuallyExclusive("molecule", "ref-temperature")
	RootCmd.AddCommand(cmd)
}

//ShelfLifeResult is what the shelflife command prints.
type ShelfLifeResult struct {
	Molecule             string  `json:"molecule,omitempty"`
	ReferenceTemperature float64 `json:"reference_temperature_K"`
	molequle.Assessment
}

func runShelfLife(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("molecule")
	ea, _ := cmd.Flags().GetFloat64("ea")
	factor, _ := cmd.Flags().GetFloat64("factor")
	ref, _ := cmd.Flags().GetFloat64("ref-days")
	refT, _ := cmd.Flags().GetFloat64("ref-temperature")
	T, _ := cmd.Flags().GetFloat64("temperature")

	P := cfg.Kinetics.Policy()
	if refT != 0 {
		P.ReferenceTemperature = refT
	}
	A := molequle.Arrhenius{ActivationEnergy: ea, FrequencyFactor: factor}
	if name != "" {
		P = datasetPolicy()
		rec, ok := dataset.Get(name)
		if !ok {
			return fmt.Errorf("molecule %q not in the dataset", name)
		}
		name = rec.Name
		A = rec.Arrhenius()
		ref = rec.ReferenceShelfLife
	}
	if !cmd.Flags().Changed("temperature") {
		T = P.ReferenceTemperature
	}
	checkRange(T)
	a, err := P.Assess(A, ref, T)
	if err != nil {
		return err
	}
	res := ShelfLifeResult{Molecule: name, ReferenceTemperature: P.ReferenceTemperature, Assessment: a}
	return output(cmd.OutOrStdout(), res, func(w io.Writer) error {
		who := name
		if who == "" {
			who = "Shelf life"
		}
		_, err := fmt.Fprintf(w, "%s at %.1f K: %s (%s), k = %.3e 1/s\n", who, T, a.ShelfLife, a.Label, a.Rate)
		return err
	})
}
