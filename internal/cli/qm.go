/*
 * qm.go, part of molequle.
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
	"os"
	"os/signal"

	"github.com/rmera/molequle"
	"github.com/rmera/molequle/qm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	cmd := &cobra.Command{
		Use:   "qm",
		Short: "Run xtb on a structure and classify its stability",
		Long: "Runs a frequency calculation with xtb for the structure given as an XYZ file\n" +
			"or as atom specifications (\"H 0 0 0; F 0 0 0.92\"), and classifies the structure\n" +
			"from the resulting vibrational frequencies.",
		Args: cobra.NoArgs,
		RunE: runQM,
	}
	cmd.Flags().String("xyz", "", "XYZ file with the structure")
	cmd.Flags().StringP("atoms", "a", "", "Atom specifications, separated by ';'")
	cmd.Flags().Int("charge", 0, "Total charge")
	cmd.Flags().Int("multiplicity", 1, "Spin multiplicity")
	cmd.Flags().String("method", "", "xtb method: gfn0, gfn1, gfn2 or gfnff (default from the configuration)")
	cmd.Flags().Bool("optimize", false, "Optimize the geometry before the frequency calculation")
	cmd.Flags().Float64("dielectric", 0, "Dielectric constant of an implicit solvent. 0 is gas phase")
	cmd.Flags().String("dir", ".", "Working directory for xtb")
	cmd.Flags().String("name", "molequle", "Base name for the xtb files")
	cmd.MarkFlagsMutuallyExclusive("xyz", "atoms")
	cmd.MarkFlagsOneRequired("xyz", "atoms")
	RootCmd.AddCommand(cmd)
}

//QMResult is what the qm command prints.
type QMResult struct {
	Energy float64 `json:"energy_hartree"`
	Mass   float64 `json:"mass_gmol"`
	StabilityResult
	Warning string `json:"warning,omitempty"`
}

func readGeometry(cmd *cobra.Command) (*qm.Geometry, error) {
	xyz, _ := cmd.Flags().GetString("xyz")
	atoms, _ := cmd.Flags().GetString("atoms")
	var G *qm.Geometry
	var err error
	if xyz != "" {
		f, ferr := os.Open(xyz)
		if ferr != nil {
			return nil, ferr
		}
		defer f.Close()
		G, err = qm.ReadXYZ(f)
	} else {
		G, err = qm.ParseAtoms(atoms)
	}
	if err != nil {
		return nil, err
	}
	G.Charge, _ = cmd.Flags().GetInt("charge")
	G.Multi, _ = cmd.Flags().GetInt("multiplicity")
	return G, nil
}

func runQM(cmd *cobra.Command, args []string) error {
	G, err := readGeometry(cmd)
	if err != nil {
		return err
	}
	calc := &qm.Calc{Method: cfg.QM.Method, CPUs: cfg.QM.CPUs}
	if m, _ := cmd.Flags().GetString("method"); m != "" {
		calc.Method = m
	}
	calc.Optimize, _ = cmd.Flags().GetBool("optimize")
	calc.Dielectric, _ = cmd.Flags().GetFloat64("dielectric")
	dir, _ := cmd.Flags().GetString("dir")
	name, _ := cmd.Flags().GetString("name")

	H := qm.NewXTBHandle()
	H.SetCommand(cfg.QM.Command)
	H.SetDir(dir)
	H.SetName(name)
	H.SetLogger(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	var warning string
	E, freqs, err := qm.Analyze(ctx, H, G, calc)
	if err != nil {
		//xtb may complain at the end and still give usable results.
		qerr, ok := err.(qm.Error)
		if !ok || qerr.Critical() || freqs == nil {
			return err
		}
		warning = qerr.Error()
		logger.Warn("xtb did not end normally", zap.Error(err))
	}
	V, err := molequle.ClassifyStability(E, freqs)
	if err != nil {
		return err
	}
	res := QMResult{Energy: E, Mass: G.Mass(), StabilityResult: StabilityResult{Verdict: V, Qualifier: V.Qualifier()}, Warning: warning}
	return output(cmd.OutOrStdout(), res, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Energy: %.6f Hartree\nMass: %.3f g/mol\n", E, G.Mass()); err != nil {
			return err
		}
		if warning != "" {
			if _, err := fmt.Fprintf(w, "Warning: %s\n", warning); err != nil {
				return err
			}
		}
		return printVerdict(w, V)
	})
}
