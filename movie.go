/*
 * movie.go, part of goimodfit.
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
	"github.com/rmera/goimodfit/chem"
	"github.com/rmera/goimodfit/dcd"
)

//ExportMovie writes the fitting trajectory in out as the DCD trajectory dcdName, and its
//first frame as the PDB file pdbName, which gives the topology to load the trajectory
//on. It returns the number of frames written.
func ExportMovie(out *Outputs, dcdName, pdbName string) (int, error) {
	if out == nil || out.Movie == nil {
		return 0, Error{message: ErrNoOutput, program: Name, additional: "no fitting trajectory", deco: []string{"ExportMovie"}, critical: true}
	}
	mol, err := ReadStructure(out.Movie.FileName)
	if err != nil {
		return 0, newError(ErrNoOutput, Name, out.Movie.FileName, err, "ReadStructure", "ExportMovie")
	}
	W, err := dcd.NewWriter(dcdName, mol.Len())
	if err != nil {
		return 0, newError(ErrCantConvert, Name, dcdName, err, "dcd.NewWriter", "ExportMovie")
	}
	for _, c := range mol.Coords {
		if err = W.WNext(c); err != nil {
			W.Close()
			return 0, newError(ErrCantConvert, Name, dcdName, err, "dcd.WNext", "ExportMovie")
		}
	}
	if err = W.Close(); err != nil {
		return 0, newError(ErrCantConvert, Name, dcdName, err, "dcd.Close", "ExportMovie")
	}
	first, err := chem.NewMolecule(mol.Coords[:1], mol.Topology, mol.Bfactors[:1])
	if err != nil {
		return 0, newError(ErrCantConvert, Name, pdbName, err, "chem.NewMolecule", "ExportMovie")
	}
	if err = chem.PDBFileWrite(pdbName, first); err != nil {
		return 0, newError(ErrCantConvert, Name, pdbName, err, "chem.PDBFileWrite", "ExportMovie")
	}
	logger.WithField("frames", mol.LenFrames()).Infof("Trajectory written to %s", dcdName)
	return mol.LenFrames(), nil
}
