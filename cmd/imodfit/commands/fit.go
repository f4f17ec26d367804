/*
 * fit.go, part of goimodfit.
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
	"strconv"
	"strings"

	imodfit "github.com/rmera/goimodfit"
	"github.com/spf13/cobra"
)

//paramFlags are the flags of the fit command that set fitting parameters.
var paramFlags = []string{"resolution", "cutoff", "max-iter", "cg-model", "dihedral", "modes-range",
	"excited-modes-range", "basename", "full-atom", "movie", "extra"}

// NewFitCommand creates the fit command
func NewFitCommand() *cobra.Command {
	var (
		mapFile, structFile, workDir, origin string
		sampling                             float64
		summary                              bool
	)
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit an atomic structure into a density map",
		Example: "  imodfit fit --map emd_1234.map --structure 1abc.cif --resolution 8 --sampling 1.2\n" +
			"  imodfit fit --map emd_1234.ccp4 --structure 1abc.pdb --cg-model CA --extra \"-S 3\"",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(cmd.Flags(), paramFlags...)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			P, err := params()
			if err != nil {
				return err
			}
			vol, err := volumeSource(mapFile, sampling, origin)
			if err != nil {
				return err
			}
			plug := plugin()
			if !plug.Installed() {
				imodfit.Logger().WithField("home", plug.Home()).Warn("iMODfit doesn't seem to be installed, run 'imodfit install'")
			}
			J := imodfit.NewJob(plug, P, vol, imodfit.StructFile{FileName: structFile})
			if workDir != "" {
				J.WorkDir = workDir
			}
			if err = J.Run(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Fitted structure: %s\n", J.Outputs.Fitted.FileName)
			if P.Movie {
				fmt.Fprintf(out, "Fitting trajectory: %s\n", J.Outputs.Movie.FileName)
			}
			if summary {
				input, _ := J.Input()
				S, err := imodfit.Summarize(input, J.Outputs)
				if err != nil {
					return err
				}
				fmt.Fprint(out, S)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&mapFile, "map", "v", "", "density map (MRC/CCP4, possibly .gz or .zst)")
	f.StringVarP(&structFile, "structure", "s", "", "atomic structure (PDB or mmCIF, possibly .gz or .zst)")
	f.StringVarP(&workDir, "workdir", "w", "", "working directory (default imodfit-<job id>)")
	f.Float64Var(&sampling, "sampling", 0, "sampling rate of the map, in A/voxel, written to the map header if given")
	f.StringVar(&origin, "origin", "0,0,0", "origin of the map, in A, used with --sampling")
	f.BoolVar(&summary, "summary", false, "compare the fitted structure with the input")
	cmd.MarkFlagRequired("map")
	cmd.MarkFlagRequired("structure")

	d := imodfit.DefaultParams()
	f.IntP("resolution", "r", d.Resolution, "resolution of the map, in A")
	f.Float64("cutoff", d.Cutoff, "density threshold, 0 for none")
	f.IntP("max-iter", "i", d.MaxIter, "maximum number of iterations")
	f.StringP("cg-model", "m", d.CGModel.String(), "coarse-grained model: CA, 3BB2R, Full-Atom or NCAC, or its index")
	f.BoolP("dihedral", "x", d.Dihedral, "also fit the omega dihedral angles")
	f.Float64P("modes-range", "n", d.ModesRange, "modes to use: ratio if < 1, number of modes otherwise")
	f.Float64P("excited-modes-range", "e", d.ExcitedModesRange, "modes to excite: ratio if < 1, number of modes otherwise")
	f.StringP("basename", "o", d.Basename, "basename of the output files")
	f.BoolP("full-atom", "F", d.FullAtom, "full atom output, even with coarse-grained models")
	f.BoolP("movie", "t", d.Movie, "save the fitting trajectory")
	f.String("extra", d.Extra, "extra arguments for imodfit_mkl")
	return cmd
}

func volumeSource(fname string, sampling float64, origin string) (imodfit.VolumeSource, error) {
	if sampling <= 0 {
		return imodfit.VolumeFile{FileName: fname}, nil
	}
	vol := &imodfit.Volume{FileName: fname, SamplingRate: sampling}
	fields := strings.Split(origin, ",")
	if len(fields) != 3 {
		return nil, fmt.Errorf("origin must be given as x,y,z, got %q", origin)
	}
	for i, s := range fields {
		o, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid origin %q: %w", origin, err)
		}
		vol.Origin[i] = o
	}
	return imodfit.VolumeObject{Volume: vol}, nil
}
