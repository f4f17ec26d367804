/*
 * pdb.go, part of goimodfit.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/rmera/goimodfit/v3"
)

//PDBFileRead reads a (possibly compressed) pdb file. Returns a Molecule with one coordinate
//frame per MODEL in the file.
func PDBFileRead(pdbname string) (*Molecule, error) {
	f, err := OpenAny(pdbname)
	if err != nil {
		return nil, errDecorate(err, "PDBFileRead")
	}
	defer f.Close()
	mol, err := pdbBufIORead(bufio.NewReader(f))
	if err != nil {
		return nil, Error{err.Error(), pdbname, []string{"PDBFileRead"}, true}
	}
	return mol, nil
}

//PDBRead reads a pdb file from an io.Reader. Returns a Molecule. If there is one frame in the PDB
//the coordinates array will be of lenght 1.
func PDBRead(pdb io.Reader) (*Molecule, error) {
	mol, err := pdbBufIORead(bufio.NewReader(pdb))
	return mol, errDecorate(err, "PDBRead")
}

//field returns the trimmed columns [i,j) of line, or the empty string if the line is too short.
func field(line string, i, j int) string {
	if len(line) < j {
		if len(line) <= i {
			return ""
		}
		j = len(line)
	}
	return strings.TrimSpace(line[i:j])
}

//readFullPDBLine parses a valid ATOM or HETATM line of a PDB file, returns an Atom
//object with the info except for the coordinates and b-factors, which  are returned
//separately as a slice of 3 float64 and a float64, respectively
func readFullPDBLine(line string, contlines int) (*Atom, []float64, float64, error) {
	var err error
	atom := new(Atom)
	atom.Het = strings.HasPrefix(line, "HETATM")
	atom.ID, err = strconv.Atoi(field(line, 6, 11))
	if err != nil {
		return nil, nil, 0, fmt.Errorf("line %d: can't read atom serial: %w", contlines, err)
	}
	atom.Name = field(line, 12, 16)
	if c := line[16]; c != ' ' {
		atom.Char16 = c
	}
	atom.MolName = field(line, 17, 20)
	atom.MolName1 = three2OneLetter[atom.MolName]
	atom.Chain = field(line, 21, 22)
	atom.MolID, err = strconv.Atoi(field(line, 22, 26))
	if err != nil {
		return nil, nil, 0, fmt.Errorf("line %d: can't read residue number: %w", contlines, err)
	}
	if c := line[26]; c != ' ' {
		atom.InsCode = c
	}
	coords, bfactor, err := readOnlyCoordsPDBLine(line, contlines)
	if err != nil {
		return nil, nil, 0, err
	}
	atom.Occupancy = 1.0
	if occ := field(line, 54, 60); occ != "" {
		atom.Occupancy, err = strconv.ParseFloat(occ, 64)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("line %d: can't read occupancy: %w", contlines, err)
		}
	}
	//The element and charge columns are often missing, so
	//no errors are reported for them.
	atom.Symbol = field(line, 76, 78)
	if ch := field(line, 78, 80); len(ch) == 2 {
		q, err := strconv.Atoi(ch[:1])
		if err == nil {
			atom.Charge = float64(q)
			if ch[1] == '-' {
				atom.Charge *= -1
			}
		}
	}
	if atom.Symbol == "" {
		atom.Symbol, _ = symbolFromName(atom.Name)
	}
	atom.Mass = symbolMass[atom.Symbol]
	return atom, coords, bfactor, nil
}

//readOnlyCoordsPDBLine parses a PDB line if only the coordinates and bfactors are to be read.
func readOnlyCoordsPDBLine(line string, contlines int) ([]float64, float64, error) {
	var err error
	coords := make([]float64, 3)
	for i := range coords {
		coords[i], err = strconv.ParseFloat(field(line, 30+8*i, 38+8*i), 64)
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: can't read coordinate %d: %w", contlines, i, err)
		}
	}
	var bfactor float64
	if bf := field(line, 60, 66); bf != "" {
		bfactor, err = strconv.ParseFloat(bf, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: can't read b-factor: %w", contlines, err)
		}
	}
	return coords, bfactor, nil
}

func pdbBufIORead(pdb *bufio.Reader) (*Molecule, error) {
	molecule := make([]*Atom, 0)
	coords := make([][]float64, 1)
	coords[0] = make([]float64, 0)
	bfactors := make([][]float64, 1)
	bfactors[0] = make([]float64, 0)
	firstModel := true //are we reading the first model? if not we only save coordinates
	contlines := 0     //count the lines read to better report errors
	for {
		line, err := pdb.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		contlines++
		last := err == io.EOF
		line = strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
			if len(line) < 54 {
				return nil, fmt.Errorf("line %d: ATOM/HETATM record too short", contlines)
			}
			var c []float64
			var bfac float64
			if !firstModel {
				c, bfac, err = readOnlyCoordsPDBLine(line, contlines)
			} else {
				var atomtmp *Atom
				atomtmp, c, bfac, err = readFullPDBLine(line, contlines)
				if err == nil {
					//atom data other than coords is the same in all models so just read for the first.
					molecule = append(molecule, atomtmp)
				}
			}
			if err != nil {
				return nil, err
			}
			//coords are appended for all the models
			coords[len(coords)-1] = append(coords[len(coords)-1], c...)
			bfactors[len(bfactors)-1] = append(bfactors[len(bfactors)-1], bfac)
		case strings.HasPrefix(line, "MODEL"):
			//a new frame starts only if the current one already has atoms.
			if len(coords[len(coords)-1]) > 0 {
				firstModel = false
				coords = append(coords, make([]float64, 0, len(coords[0])))
				bfactors = append(bfactors, make([]float64, 0, len(bfactors[0])))
			}
		}
		if last {
			break
		}
	}
	//a trailing MODEL record with no atoms.
	if len(coords) > 1 && len(coords[len(coords)-1]) == 0 {
		coords = coords[:len(coords)-1]
		bfactors = bfactors[:len(bfactors)-1]
	}
	if len(molecule) == 0 {
		return nil, fmt.Errorf("no ATOM or HETATM records found")
	}
	frames := len(coords)
	mcoords := make([]*v3.Matrix, frames)
	var err error
	for i := 0; i < frames; i++ {
		mcoords[i], err = v3.NewMatrix(coords[i])
		if err != nil {
			return nil, fmt.Errorf("can't build coordinates for frame %d: %w", i, err)
		}
	}
	return NewMolecule(mcoords, NewTopology(molecule), bfactors)
}

//PDBFileWrite writes all the frames of mol to a PDB file with the file name pdbname.
//The file is created or truncated.
func PDBFileWrite(pdbname string, mol *Molecule) error {
	out, err := os.Create(pdbname)
	if err != nil {
		return Error{err.Error(), pdbname, []string{"os.Create", "PDBFileWrite"}, true}
	}
	defer out.Close()
	if err = PDBWrite(out, mol.Coords, mol, mol.Bfactors); err != nil {
		return Error{err.Error(), pdbname, []string{"PDBFileWrite"}, true}
	}
	return out.Close()
}

//PDBWrite writes the frames in coords for the atoms in mol to out in PDB format. If there is
//more than one frame, each of them is enclosed in MODEL/ENDMDL records. bfact can be nil
//or contain one slice per frame.
func PDBWrite(out io.Writer, coords []*v3.Matrix, mol Atomer, bfact [][]float64) error {
	if len(coords) == 0 || mol.Len() == 0 {
		return fmt.Errorf("PDBWrite: nothing to write")
	}
	w := bufio.NewWriter(out)
	fmt.Fprint(w, "REMARK     WRITTEN WITH GOIMODFIT\n")
	models := len(coords) > 1
	for j, c := range coords {
		if c.NVecs() != mol.Len() {
			return fmt.Errorf("PDBWrite: Reference (%d) and Coords (%d) in frame %d don't have the same number of atoms", mol.Len(), c.NVecs(), j)
		}
		if models {
			fmt.Fprintf(w, "MODEL     %4d\n", j+1)
		}
		chainprev := mol.Atom(0).Chain //this is to know when the chain changes.
		for i := 0; i < mol.Len(); i++ {
			at := mol.Atom(i)
			if at.Chain != chainprev {
				fmt.Fprintln(w, "TER")
				chainprev = at.Chain
			}
			var bf float64
			if len(bfact) > j && len(bfact[j]) > i {
				bf = bfact[j][i]
			}
			if err := writePDBLine(w, at, c.At(i, 0), c.At(i, 1), c.At(i, 2), bf); err != nil {
				return err
			}
		}
		if models {
			fmt.Fprint(w, "ENDMDL\n")
		}
	}
	fmt.Fprint(w, "END\n")
	return w.Flush()
}

func writePDBLine(w io.Writer, at *Atom, x, y, z, bf float64) error {
	first := "ATOM"
	if at.Het {
		first = "HETATM"
	}
	var name string
	switch {
	case len(at.Name) < 4:
		name = " " + at.Name //4 chars for the atom name are used when hydrogens are included.
	case len(at.Name) == 4:
		name = at.Name
	default:
		return fmt.Errorf("Cant print PDB line for atom %d: name %q too long", at.ID, at.Name)
	}
	chain := byte(' ')
	if at.Chain != "" {
		chain = at.Chain[0]
	}
	charge := "  "
	if at.Charge != 0 {
		sign := "+"
		if at.Charge < 0 {
			sign = "-"
		}
		charge = fmt.Sprintf("%1d%s", int(abs(at.Charge)), sign)
	}
	_, err := fmt.Fprintf(w, "%-6s%5d %-4s%c%3s %c%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s%2s\n",
		first, at.ID%100000, name, blank(at.Char16), at.MolName, chain, at.MolID%10000, blank(at.InsCode),
		x, y, z, at.Occupancy, bf, at.Symbol, charge)
	return err
}

func blank(c byte) byte {
	if c == 0 {
		return ' '
	}
	return c
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
