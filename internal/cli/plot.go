/*
 * plot.go, part of molequle.
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

	"github.com/rmera/molequle"
	"github.com/rmera/molequle/chemplot"
	"github.com/rmera/molequle/refdata"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
)

func init() {
	cmd := &cobra.Command{
		Use:   "plot MOLECULE [MOLECULE...]",
		Short: "Plot the energy profile or the shelf life curve of a molecule",
		Long: "Plots the reaction energy profile (--kind profile) or the shelf life vs. temperature\n" +
			"curve over the configured temperature range (--kind curve). Several molecules\n" +
			"can be given for profiles, they share the axes. The format is\n" +
			"taken from the extension of the output file.",
		Args: cobra.MinimumNArgs(1),
		RunE: runPlot,
	}
	cmd.Flags().StringP("kind", "k", "profile", "What to plot: profile or curve")
	cmd.Flags().StringP("output", "o", "", "Output file, e.g. aspirin.png (default: MOLECULE_KIND.png)")
	RootCmd.AddCommand(cmd)
}

func runPlot(cmd *cobra.Command, args []string) error {
	kind, _ := cmd.Flags().GetString("kind")
	name, _ := cmd.Flags().GetString("output")
	recs := make([]refdata.Record, 0, len(args))
	for _, a := range args {
		rec, ok := dataset.Get(a)
		if !ok {
			return fmt.Errorf("molecule %q not in the dataset", a)
		}
		recs = append(recs, rec)
	}
	rec := recs[0]
	if name == "" {
		name = fmt.Sprintf("%s_%s.png", rec.Name, kind)
	}
	var p *plot.Plot
	var err error
	switch kind {
	case "profile":
		if len(recs) == 1 {
			p, err = chemplot.EnergyProfilePlot(rec.Energies, rec.Name+": reaction energy profile")
			break
		}
		profs := make([]molequle.EnergyProfile, len(recs))
		names := make([]string, len(recs))
		for i, r := range recs {
			profs[i] = r.Energies
			names[i] = r.Name
		}
		p, err = chemplot.EnergyProfilesPlot(profs, names, "Reaction energy profiles")
	case "curve":
		if len(recs) > 1 {
			return fmt.Errorf("curves are plotted one molecule at a time")
		}
		K := cfg.Kinetics
		curve, cerr := datasetPolicy().ShelfLifeCurve(rec.Arrhenius(), rec.ReferenceShelfLife, K.MinTemperature, K.MaxTemperature, K.CurvePoints)
		if cerr != nil {
			return cerr
		}
		p, err = chemplot.ShelfLifePlot(curve, rec.Name+": shelf life vs. temperature")
	default:
		return fmt.Errorf("unknown plot kind %q", kind)
	}
	if err != nil {
		return err
	}
	if err := chemplot.Save(p, name); err != nil {
		return err
	}
	logger.Info("plot written", zap.String("file", name))
	fmt.Fprintln(cmd.OutOrStdout(), name)
	return nil
}
