/*
 * chem.go, part of goimodfit.
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

package chem

import (
	"fmt"

	v3 "github.com/rmera/goimodfit/v3"
)

//Atom contains the atoms read except for the coordinates, which will be in a matrix
//and the b-factors, which are in a separate slice of float64.
type Atom struct {
	Name      string
	ID        int
	MolName   string
	MolName1  byte //the one letter name for residues and nucleotids
	MolID     int
	Chain     string
	Char16    byte //alternate location, or 0 if none.
	InsCode   byte
	Mass      float64
	Occupancy float64
	Charge    float64
	Symbol    string
	Het       bool // is hetatm in the pdb file?
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	at := *A
	return &at
}

//Topology contains information about a molecule which is not expected to change in
//time (i.e. everything except for coordinates and b-factors)
type Topology struct {
	Atoms []*Atom
}

//NewTopology returns a topology with the given atoms. The slice is not copied.
func NewTopology(ats []*Atom) *Topology {
	if ats == nil {
		ats = make([]*Atom, 0)
	}
	return &Topology{Atoms: ats}
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.Atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//Molecule contains all the info for a molecule in many states. The info that is expected to change between states,
//Coordinates and b-factors are stored separately from other atomic info.
type Molecule struct {
	*Topology
	Coords   []*v3.Matrix
	Bfactors [][]float64
}

//NewMolecule makes a molecule with ats atoms, coords coordinates and bfactors b-factors,
//and returns it. It checks that the number of coordinates and, when present, b-factors
//in each frame matches the number of atoms.
func NewMolecule(coords []*v3.Matrix, ats *Topology, bfactors [][]float64) (*Molecule, error) {
	if ats == nil || len(coords) == 0 {
		return nil, Error{"Supplied a nil Topology or no coordinates", "", []string{"NewMolecule"}, true}
	}
	mol := &Molecule{Topology: ats, Coords: coords, Bfactors: bfactors}
	if err := mol.Corrupted(); err != nil {
		return nil, errDecorate(err, "NewMolecule")
	}
	return mol, nil
}

//LenFrames returns the number of frames (models) in the molecule.
func (M *Molecule) LenFrames() int {
	return len(M.Coords)
}

//Corrupted checks whether the molecule is corrupted, i.e. the
//coordinates don't match the number of atoms. It also checks
//the b-factors, completing them with zeroes when missing.
func (M *Molecule) Corrupted() error {
	if len(M.Bfactors) > len(M.Coords) {
		return Error{"More b-factor frames than coordinate frames", "", []string{"Corrupted"}, true}
	}
	if M.Bfactors == nil {
		M.Bfactors = make([][]float64, 0, len(M.Coords))
	}
	for i := range M.Coords {
		if M.Len() != M.Coords[i].NVecs() {
			return Error{fmt.Sprintf("Inconsistent coordinates/atoms in frame %d: Atoms %d, coords: %d", i, M.Len(), M.Coords[i].NVecs()), "", []string{"Corrupted"}, true}
		}
		if len(M.Bfactors) <= i {
			M.Bfactors = append(M.Bfactors, make([]float64, M.Len()))
			continue
		}
		if M.Len() != len(M.Bfactors[i]) {
			return Error{fmt.Sprintf("Inconsistent b-factors/atoms in frame %d: Atoms %d, b-factors: %d", i, M.Len(), len(M.Bfactors[i])), "", []string{"Corrupted"}, true}
		}
	}
	return nil
}
