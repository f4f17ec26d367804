/*
 * geometric.go, part of goimodfit.
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
	"math"

	v3 "github.com/rmera/goimodfit/v3"
	"gonum.org/v1/gonum/mat"
)

//RMSD returns the root mean square deviation between the coordinates in test and
//template, which must have the same number of atoms. No superposition is performed.
func RMSD(test, template *v3.Matrix) (float64, error) {
	if test.NVecs() != template.NVecs() {
		return 0, Error{fmt.Sprintf("Ill formed matrices for RMSD calculation: %d and %d atoms", test.NVecs(), template.NVecs()), "", []string{"RMSD"}, true}
	}
	var diff mat.Dense
	diff.Sub(test.Dense, template.Dense)
	//The 2-norm of a matrix in gonum is the Frobenius norm.
	return mat.Norm(&diff, 2) / math.Sqrt(float64(test.NVecs())), nil
}

//MatchAtoms pairs the atoms in a and b that share chain, residue number, insertion
//code and atom name. It returns the indexes of the paired atoms in each reference,
//in the order of a. Atoms present in only one of the references are left out.
func MatchAtoms(a, b Atomer) ([]int, []int) {
	key := func(at *Atom) string {
		return fmt.Sprintf("%s|%d|%c|%s", at.Chain, at.MolID, blank(at.InsCode), at.Name)
	}
	inb := make(map[string]int, b.Len())
	for i := b.Len() - 1; i >= 0; i-- { //the first occurrence wins
		inb[key(b.Atom(i))] = i
	}
	ia := make([]int, 0, a.Len())
	ib := make([]int, 0, a.Len())
	for i := 0; i < a.Len(); i++ {
		if j, ok := inb[key(a.Atom(i))]; ok {
			ia = append(ia, i)
			ib = append(ib, j)
		}
	}
	return ia, ib
}
