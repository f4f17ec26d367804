/*
 * outputs.go, part of goimodfit.
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
)

//Outputs are the structures produced by a fitting.
type Outputs struct {
	Fitted *AtomStruct
	Movie  *AtomStruct //the fitting trajectory, one model per frame
}

//FittedFile returns the name imodfit_mkl gives to the fitted structure.
func FittedFile(workDir, basename string) string {
	return filepath.Join(workDir, basename+"_fitted.pdb")
}

//MovieFile returns the name imodfit_mkl gives to the fitting trajectory.
func MovieFile(workDir, basename string) string {
	return filepath.Join(workDir, basename+"_movie.pdb")
}

//WrapOutputs returns the outputs of a fitting run in workDir with the given basename.
//vol, which can be nil, is attached to both structures. The files are not checked.
func WrapOutputs(workDir, basename string, vol *Volume) *Outputs {
	return &Outputs{
		Fitted: &AtomStruct{FileName: FittedFile(workDir, basename), Volume: vol},
		Movie:  &AtomStruct{FileName: MovieFile(workDir, basename), Volume: vol},
	}
}
