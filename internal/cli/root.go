/*
 * root.go, part of molequle.
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

// Package cli implements the molequle commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rmera/molequle"
	"github.com/rmera/molequle/internal/config"
	"github.com/rmera/molequle/refdata"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgPath     string
	datasetPath string
	formatFlag  string
	logLevel    string
)

//set up by the root command before any subcommand runs.
var (
	cfg     *config.Config
	logger  = zap.NewNop()
	dataset *refdata.Dataset
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "molequle",
	Short: "Shelf life and stability of drug molecules",
	Long: "MoleQule estimates the shelf life of molecules from Arrhenius kinetics and classifies\n" +
		"their stability from vibrational frequencies. It can drive xtb to get the frequencies.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Configuration file (YAML)")
	RootCmd.PersistentFlags().StringVarP(&datasetPath, "dataset", "d", "", "Dataset file (.yaml, .json, optionally .zst). Default: $MOLEQULE_DATASET or the built-in one")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: json or text")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

func setup(cmd *cobra.Command, args []string) error {
	if formatFlag != "json" && formatFlag != "text" {
		return fmt.Errorf("unknown output format %q", formatFlag)
	}
	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if datasetPath != "" {
		cfg.Dataset = datasetPath
	}
	logger, err = cfg.Log.Logger()
	if err != nil {
		return err
	}
	if cfg.Dataset == "" {
		dataset = refdata.Default()
		return nil
	}
	dataset, err = refdata.Load(cfg.Dataset)
	if err != nil {
		return err
	}
	logger.Debug("dataset loaded", zap.String("path", cfg.Dataset), zap.Int("molecules", dataset.Len()))
	return nil
}

//datasetPolicy returns the configured policy with the reference temperature of the
//dataset, the one the reference shelf lives of its molecules were measured at.
//The configured reference temperature only applies to raw parameters.
func datasetPolicy() molequle.Policy {
	P := cfg.Kinetics.Policy()
	P.ReferenceTemperature = dataset.Temperature()
	return P
}

//checkRange warns if T is outside of the configured range. Nothing
//stops the calculation, though.
func checkRange(T float64) {
	if !cfg.Kinetics.InRange(T) {
		logger.Warn("temperature outside the usual range",
			zap.Float64("temperature_K", T),
			zap.Float64("min_K", cfg.Kinetics.MinTemperature),
			zap.Float64("max_K", cfg.Kinetics.MaxTemperature))
	}
}

//output writes v as indented JSON if so requested, or calls text otherwise.
func output(w io.Writer, v interface{}, text func(io.Writer) error) error {
	if formatFlag == "json" {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	return text(w)
}
