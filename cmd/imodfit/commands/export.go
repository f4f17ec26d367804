/*
 * export.go, part of goimodfit.
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
	"path/filepath"

	imodfit "github.com/rmera/goimodfit"
	"github.com/spf13/cobra"
)

// NewExportMovieCommand creates the export-movie command
func NewExportMovieCommand() *cobra.Command {
	var workDir, basename string
	cmd := &cobra.Command{
		Use:   "export-movie",
		Short: "Convert the fitting trajectory to DCD, with a PDB topology",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := imodfit.WrapOutputs(workDir, basename, nil)
			dcdName := filepath.Join(workDir, basename+"_movie.dcd")
			pdbName := filepath.Join(workDir, basename+"_movie_top.pdb")
			frames, err := imodfit.ExportMovie(out, dcdName, pdbName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d frames written to %s (topology: %s)\n", frames, dcdName, pdbName)
			return nil
		},
	}
	cmd.Flags().StringVarP(&workDir, "workdir", "w", ".", "working directory of the fitting")
	cmd.Flags().StringVarP(&basename, "basename", "o", imodfit.DefaultBasename, "basename of the output files")
	return cmd
}
