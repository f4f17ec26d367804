/*
 * install.go, part of goimodfit.
 *
 *
 * Copyright 2024 The goimodfit authors
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
 */

package commands

import (
	"fmt"

	imodfit "github.com/rmera/goimodfit"
	"github.com/spf13/cobra"
)

// NewInstallCommand creates the install command
func NewInstallCommand() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Download and install iMODfit and the MKL libraries",
		RunE: func(cmd *cobra.Command, args []string) error {
			P := plugin()
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "cd %s && %s\n", P.Home(), P.InstallCommand())
				return nil
			}
			if err := P.Install(cmd.Context()); err != nil {
				return err
			}
			imodfit.Logger().WithField("binary", P.Binary(imodfit.Program)).Info("iMODfit installed")
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only print the installation command")
	return cmd
}
