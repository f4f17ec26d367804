/*
 * view.go, part of goimodfit.
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
	imodfit "github.com/rmera/goimodfit"
	"github.com/rmera/goimodfit/viewer"
	"github.com/spf13/cobra"
)

// NewViewCommand creates the view command
func NewViewCommand() *cobra.Command {
	var (
		workDir, output, program string
		wait                     bool
	)
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Display the fitted structure or the fitting trajectory",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlag("viewer", cmd.Flags().Lookup("with")); err != nil {
				return err
			}
			return bindFlags(cmd.Flags(), "basename")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := viewer.ParseChoice(output)
			if err != nil {
				return err
			}
			V, err := viewer.ParseViewer(v.GetString("viewer"), program)
			if err != nil {
				return err
			}
			out := imodfit.WrapOutputs(workDir, v.GetString("basename"), nil)
			return viewer.Show(V, c, out, workDir, wait)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&workDir, "workdir", "w", ".", "working directory of the fitting")
	f.StringVar(&output, "output", "movie", "output to display: fitted or movie")
	f.String("with", "vmd", "viewer: vmd or chimerax")
	f.StringP("basename", "o", imodfit.DefaultBasename, "basename of the output files")
	f.StringVar(&program, "program", "", "viewer executable (default vmd or chimerax in the PATH)")
	f.BoolVar(&wait, "wait", false, "wait for the viewer to exit")
	return cmd
}
