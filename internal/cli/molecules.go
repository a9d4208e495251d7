/*
 * molecules.go, part of molequle.
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
	"text/tabwriter"

	"github.com/rmera/molequle/dashboard"
	"github.com/rmera/molequle/refdata"
	"github.com/spf13/cobra"
)

func init() {
	list := &cobra.Command{
		Use:   "molecules",
		Short: "List the molecules in the dataset",
		Args:  cobra.NoArgs,
		RunE:  runMolecules,
	}
	RootCmd.AddCommand(list)

	report := &cobra.Command{
		Use:   "report MOLECULE",
		Short: "Degradation parameters and shelf life of a molecule",
		Args:  cobra.ExactArgs(1),
		RunE:  runReport,
	}
	report.Flags().Float64P("temperature", "t", 0, "Temperature (K). Default: the reference temperature")
	RootCmd.AddCommand(report)
}

func runMolecules(cmd *cobra.Command, args []string) error {
	recs := make([]refdata.Record, 0, dataset.Len())
	for _, n := range dataset.Names() {
		r, _ := dataset.Get(n)
		recs = append(recs, r)
	}
	return output(cmd.OutOrStdout(), recs, func(out io.Writer) error {
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "NAME\tEa (kJ/mol)\tA (1/s)\tSHELF LIFE AT %.0f K\tPRODUCT\n", dataset.Temperature())
		for _, r := range recs {
			fmt.Fprintf(w, "%s\t%.1f\t%.2e\t%.1f days\t%s\n", r.Name, r.ActivationEnergy, r.FrequencyFactor, r.ReferenceShelfLife, r.Product)
		}
		return w.Flush()
	})
}

func runReport(cmd *cobra.Command, args []string) error {
	rec, ok := dataset.Get(args[0])
	if !ok {
		return fmt.Errorf("molecule %q not in the dataset", args[0])
	}
	P := datasetPolicy()
	T := P.ReferenceTemperature
	if cmd.Flags().Changed("temperature") {
		T, _ = cmd.Flags().GetFloat64("temperature")
	}
	checkRange(T)
	rep, err := dashboard.BuildReport(rec, P, T)
	if err != nil {
		return err
	}
	return output(cmd.OutOrStdout(), rep, func(out io.Writer) error {
		fmt.Fprintf(out, "%s\n\n", rep.Molecule)
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, r := range rep.Rows {
			fmt.Fprintf(w, "%s\t%s\n", r.Parameter, r.Value)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(out, "\nStability: %s\n", rep.Qualifier)
		return err
	})
}
