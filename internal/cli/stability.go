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

package cli

import (
	"fmt"
	"io"

	"github.com/rmera/molequle"
	"github.com/spf13/cobra"
)

//Bound to the flag directly: the pflag getter goes through a %f string and
//would turn small imaginary modes into zeros.
var stabilityFreqs []float64

func init() {
	cmd := &cobra.Command{
		Use:   "stability",
		Short: "Classify a structure from its vibrational frequencies",
		Args:  cobra.NoArgs,
		RunE:  runStability,
	}
	cmd.Flags().Float64P("energy", "e", 0, "Ground state energy (Hartree)")
	cmd.Flags().Float64SliceVarP(&stabilityFreqs, "frequencies", "q", nil, "Vibrational frequencies (1/cm), comma separated. Imaginary ones as negative numbers")
	RootCmd.AddCommand(cmd)
}

//StabilityResult is what the stability and qm commands print.
type StabilityResult struct {
	Verdict   molequle.Verdict `json:"verdict"`
	Qualifier string           `json:"qualifier"`
}

func runStability(cmd *cobra.Command, args []string) error {
	E, _ := cmd.Flags().GetFloat64("energy")
	V, err := molequle.ClassifyStability(E, stabilityFreqs)
	if err != nil {
		return err
	}
	return printVerdict(cmd.OutOrStdout(), V)
}

func printVerdict(out io.Writer, V molequle.Verdict) error {
	return output(out, StabilityResult{Verdict: V, Qualifier: V.Qualifier()}, func(w io.Writer) error {
		if _, err := fmt.Fprintln(w, V.Qualifier()); err != nil {
			return err
		}
		if V.Class == molequle.Unstable {
			_, err := fmt.Fprintf(w, "%d imaginary mode(s), largest %.2f cm^-1\n", len(V.Imaginary), V.LargestImaginary())
			return err
		}
		return nil
	})
}
