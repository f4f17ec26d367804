/*
 * summary.go, part of goimodfit.
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
	"fmt"
	"os"
	"strings"

	"github.com/rmera/goimodfit/chem"
	v3 "github.com/rmera/goimodfit/v3"
)

//Summary compares the input and fitted structures of a fitting.
type Summary struct {
	Atoms       int //atoms in the input structure
	FittedAtoms int
	Matched     int //atoms present in both structures
	RMSD        float64
	Frames      int //models in the trajectory, 0 if there is none
}

//String returns a short report.
func (S *Summary) String() string {
	return fmt.Sprintf("Atoms: %d (fitted: %d, matched: %d)\nRMSD: %.3f A\nTrajectory frames: %d\n",
		S.Atoms, S.FittedAtoms, S.Matched, S.RMSD, S.Frames)
}

//ReadStructure reads a PDB or PDBx/mmCIF file, possibly compressed.
func ReadStructure(fname string) (*chem.Molecule, error) {
	switch chem.Ext(fname) {
	case ".cif", ".mmcif":
		return chem.PDBxFileRead(fname)
	}
	return chem.PDBFileRead(fname)
}

//Summarize compares the input structure with the fitted one in out, matching atoms by chain,
//residue and name, and counts the frames of the trajectory, if there is one.
//A missing or unreadable fitted structure is an error.
func Summarize(input string, out *Outputs) (*Summary, error) {
	if out == nil || out.Fitted == nil {
		return nil, Error{message: ErrNoOutput, program: Name, additional: "no outputs", deco: []string{"Summarize"}, critical: true}
	}
	ref, err := ReadStructure(input)
	if err != nil {
		return nil, newError(ErrMissingInput, Name, input, err, "ReadStructure", "Summarize")
	}
	fitted, err := ReadStructure(out.Fitted.FileName)
	if err != nil {
		return nil, newError(ErrNoOutput, Name, out.Fitted.FileName, err, "ReadStructure", "Summarize")
	}
	S := &Summary{Atoms: ref.Len(), FittedAtoms: fitted.Len()}
	ri, fi := chem.MatchAtoms(ref, fitted)
	S.Matched = len(ri)
	if S.Matched > 0 {
		a := v3.Zeros(len(ri))
		a.SomeVecs(ref.Coords[0], ri)
		b := v3.Zeros(len(fi))
		b.SomeVecs(fitted.Coords[0], fi)
		if S.RMSD, err = chem.RMSD(a, b); err != nil {
			return nil, newError(ErrNoOutput, Name, out.Fitted.FileName, err, "chem.RMSD", "Summarize")
		}
	}
	if out.Movie != nil {
		if _, err := os.Stat(out.Movie.FileName); err == nil {
			S.Frames, err = countModels(out.Movie.FileName)
			if err != nil {
				return nil, newError(ErrNoOutput, Name, out.Movie.FileName, err, "countModels", "Summarize")
			}
		}
	}
	return S, nil
}

func countModels(fname string) (int, error) {
	mol, err := ReadStructure(fname)
	if err != nil {
		return 0, err
	}
	return mol.LenFrames(), nil
}

//Citation is the reference for iMODfit, in BibTeX format.
var Citation = strings.TrimSpace(`
@article{LopezBlanco2013,
  title = {iMODFIT: Efficient and robust flexible fitting based on vibrational analysis in internal coordinates},
  author = {L{\'o}pez-Blanco, Jos{\'e} Ram{\'o}n and Chac{\'o}n, Pablo},
  journal = {Journal of Structural Biology},
  volume = {184},
  number = {2},
  pages = {261--270},
  year = {2013},
  doi = {10.1016/j.jsb.2013.08.010},
  url = {https://doi.org/10.1016/j.jsb.2013.08.010}
}`)
