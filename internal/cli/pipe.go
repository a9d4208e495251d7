/*
 * pipe.go, part of molequle.
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

	"github.com/rmera/molequle/chemjson"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Answer JSON requests read from stdin, one per line",
		Long: "Reads one JSON request per line from the standard input and writes one JSON\n" +
			"response per line to the standard output, until the input is closed.\n" +
			"Request kinds: shelflife, stability and molecule.",
		Args: cobra.NoArgs,
		RunE: runPipe,
	}
	RootCmd.AddCommand(cmd)
}

func runPipe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return chemjson.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), dataset, cfg.Kinetics.Policy())
}
