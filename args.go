/*
 * args.go, part of goimodfit.
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

package imodfit

import (
	"path/filepath"
	"strconv"
	"strings"
)

//Args returns the command line arguments for imodfit_mkl, to fit the structure
//into densityMap, with the options in P. The map path is made absolute.
//Args doesn't validate P.
func Args(structure, densityMap string, P *Params) []string {
	if abs, err := filepath.Abs(densityMap); err == nil {
		densityMap = abs
	}
	cg := P.CGModel
	if cg == nil {
		cg = CGFullAtom{}
	}
	args := []string{structure, densityMap, strconv.Itoa(P.Resolution), ftoa(P.Cutoff),
		"-i", strconv.Itoa(P.MaxIter), "-m", strconv.Itoa(cg.Index())}
	if P.Dihedral {
		args = append(args, "-x")
	}
	args = append(args, "-n", ftoa(P.ModesRange), "-e", ftoa(P.ExcitedModesRange))
	if P.Basename != "" && P.Basename != DefaultBasename {
		args = append(args, "-o", P.Basename)
	}
	if P.FullAtom {
		args = append(args, "-F")
	}
	if P.Movie {
		args = append(args, "-t")
	}
	return append(args, strings.Fields(P.Extra)...)
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
