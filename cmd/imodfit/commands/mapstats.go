/*
 * mapstats.go, part of goimodfit.
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
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/rmera/goimodfit/histo"
	"github.com/rmera/goimodfit/mapplot"
	"github.com/rmera/goimodfit/mrc"
	"github.com/spf13/cobra"
)

//mapReport is the JSON form of the mapstats output.
type mapReport struct {
	Grid      [3]int32    `json:"grid"`
	Mode      int32       `json:"mode"`
	Sampling  [3]float64  `json:"sampling"`
	Origin    [3]float32  `json:"origin"`
	Min       float64     `json:"min"`
	Max       float64     `json:"max"`
	Mean      float64     `json:"mean"`
	StdDev    float64     `json:"stddev"`
	Cutoff    float64     `json:"cutoff"`
	Above     float64     `json:"above"`
	Histogram *histo.Data `json:"histogram"`
}

// NewMapStatsCommand creates the mapstats command
func NewMapStatsCommand() *cobra.Command {
	var (
		sigmas   float64
		bins     int
		plotFile string
		text     bool
		jsonOut  bool
	)
	cmd := &cobra.Command{
		Use:   "mapstats <map>",
		Short: "Print density statistics of a map and suggest a cutoff",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			M, err := mrc.ReadFile(args[0])
			if err != nil {
				return err
			}
			S := M.Stats()
			cutoff := M.SuggestCutoff(sigmas)
			dividers := histo.Dividers(S.Min, S.Max, bins)
			//the cutoff is a divider here, so the fraction above it is exact.
			above := histo.NewData(histo.AddDivider(dividers, cutoff), M.Data).Above(cutoff)
			H := histo.NewData(dividers, M.Data)
			H.Normalize()
			out := cmd.OutOrStdout()
			s := M.Sampling()
			if jsonOut {
				r := mapReport{
					Grid:      [3]int32{M.NX, M.NY, M.NZ},
					Mode:      M.Mode,
					Sampling:  s,
					Origin:    M.Origin,
					Min:       S.Min,
					Max:       S.Max,
					Mean:      S.Mean,
					StdDev:    S.StdDev,
					Cutoff:    cutoff,
					Above:     above,
					Histogram: H,
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(r); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "Grid: %d x %d x %d, mode %d\n", M.NX, M.NY, M.NZ, M.Mode)
				fmt.Fprintf(out, "Sampling: %.3f %.3f %.3f A/voxel\n", s[0], s[1], s[2])
				fmt.Fprintf(out, "Origin: %.3f %.3f %.3f A\n", M.Origin[0], M.Origin[1], M.Origin[2])
				fmt.Fprintf(out, "Min: %g Max: %g Mean: %g StdDev: %g\n", S.Min, S.Max, S.Mean, S.StdDev)
				fmt.Fprintf(out, "Suggested cutoff (mean + %g sigma): %g\n", sigmas, cutoff)
				fmt.Fprintf(out, "Voxels at or above the cutoff: %.1f%%\n", 100*above)
				if text {
					fmt.Fprintln(out, H)
				}
			}
			if plotFile != "" {
				title := fmt.Sprintf("Density of %s", filepath.Base(args[0]))
				if err := mapplot.Histogram(M.Data, bins, cutoff, title, plotFile); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&sigmas, "sigmas", 1, "standard deviations above the mean for the suggested cutoff")
	cmd.Flags().IntVar(&bins, "bins", 50, "bins of the histogram")
	cmd.Flags().BoolVar(&text, "text", false, "print a text histogram of the densities")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the statistics and the histogram as JSON")
	cmd.Flags().StringVar(&plotFile, "plot", "", "write a density histogram to this file (png, svg, pdf)")
	return cmd
}
