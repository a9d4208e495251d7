/*
 * serve.go, part of molequle.
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
	"os"
	"os/signal"
	"syscall"

	"github.com/rmera/molequle/dashboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().String("addr", "", "Address to listen on (default from the configuration)")
	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.Server.Addr
	}
	S := dashboard.New(dashboard.Options{
		Dataset:        dataset,
		Policy:         cfg.Kinetics.Policy(),
		MinTemperature: cfg.Kinetics.MinTemperature,
		MaxTemperature: cfg.Kinetics.MaxTemperature,
		CurvePoints:    cfg.Kinetics.CurvePoints,
		AllowedOrigins: cfg.Server.CORS,
		Logger:         logger,
	})
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logger.Sync()
	logger.Info("starting dashboard", zap.String("addr", addr), zap.Int("molecules", dataset.Len()))
	return S.ListenAndServe(ctx, addr)
}
