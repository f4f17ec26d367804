/*
 * doc.go, part of goimodfit.
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

/*Package imodfit drives iMODfit (imodfit_mkl), a program for the flexible fitting of atomic
structures into electron microscopy density maps using normal mode analysis in internal
coordinates (López-Blanco and Chacón, J. Struct. Biol. 184, 261-270, 2013).

iMODfit must be obtained from its authors; goimodfit can download and install it (Plugin.Install).

A fitting Job runs three steps, in order:

    ConvertInput: the map is copied into the job directory as a CCP4 file, fixing its
    sampling and origin from the volume metadata when needed, and mmCIF structures are
    converted to PDB.

    Fit: imodfit_mkl is run on the converted files, with the command line built by Args
    from a set of Params.

    CreateOutput: the fitted structure (<basename>_fitted.pdb) and the fitting trajectory
    (<basename>_movie.pdb) are wrapped as AtomStructs.

A Job stops at the first step that fails, and produces no outputs in that case.
*/
package imodfit
