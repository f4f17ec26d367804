/*
 * pdb_test.go, part of goimodfit.
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
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestPDBRead(Te *testing.T) {
	mol, err := PDBFileRead("testdata/small.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 8 || mol.LenFrames() != 1 {
		Te.Fatalf("expected 8 atoms in 1 frame, got %d atoms in %d frames", mol.Len(), mol.LenFrames())
	}
	at := mol.Atom(1)
	if at.Name != "CA" || at.MolName != "MET" || at.Chain != "A" || at.MolID != 1 || at.Symbol != "C" {
		Te.Errorf("wrong atom read: %+v", at)
	}
	if at.MolName1 != 'M' {
		Te.Errorf("wrong one-letter residue name %c", at.MolName1)
	}
	if x := mol.Coords[0].At(7, 0); x != 11.458 {
		Te.Errorf("wrong x coordinate for the last atom: %f", x)
	}
	if mol.Bfactors[0][3] != 20.0 {
		Te.Errorf("wrong b-factor %f", mol.Bfactors[0][3])
	}
}

func TestPDBReadModels(Te *testing.T) {
	mol, err := PDBFileRead("testdata/movie.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.LenFrames() != 3 {
		Te.Fatalf("expected 3 frames, got %d", mol.LenFrames())
	}
	rmsd, err := RMSD(mol.Coords[0], mol.Coords[2])
	if err != nil {
		Te.Fatal(err)
	}
	//every atom is displaced by 1 A along x in the third model.
	if rmsd < 0.999 || rmsd > 1.001 {
		Te.Errorf("expected RMSD of 1.0, got %f", rmsd)
	}
}

func TestPDBReadMissing(Te *testing.T) {
	_, err := PDBFileRead("testdata/nothere.pdb")
	if err == nil {
		Te.Fatal("reading a missing file should fail")
	}
	if e, ok := err.(Error); !ok || e.FileName() != "testdata/nothere.pdb" {
		Te.Errorf("expected a chem.Error carrying the file name, got %v", err)
	}
}

func TestPDBxToPDB(Te *testing.T) {
	cif, err := PDBxFileRead("testdata/small.cif")
	if err != nil {
		Te.Fatal(err)
	}
	if cif.Len() != 8 {
		Te.Fatalf("expected 8 atoms, got %d", cif.Len())
	}
	if cif.Atom(1).Name != "CA" {
		Te.Errorf("quoted atom name not read properly: %q", cif.Atom(1).Name)
	}
	out := filepath.Join(Te.TempDir(), "small.pdb")
	if err := PDBFileWrite(out, cif); err != nil {
		Te.Fatal(err)
	}
	pdb, err := PDBFileRead(out)
	if err != nil {
		Te.Fatal(err)
	}
	ref, err := PDBFileRead("testdata/small.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	ia, ib := MatchAtoms(pdb, ref)
	if len(ia) != ref.Len() {
		Te.Fatalf("only %d of %d atoms matched", len(ia), ref.Len())
	}
	for k := range ia {
		if ia[k] != ib[k] {
			Te.Errorf("atom %d matched to %d", ia[k], ib[k])
		}
	}
	rmsd, err := RMSD(pdb.Coords[0], ref.Coords[0])
	if err != nil {
		Te.Fatal(err)
	}
	if rmsd > 1e-6 {
		Te.Errorf("converted coordinates differ, RMSD %f", rmsd)
	}
}

func TestOpenAnyGzip(Te *testing.T) {
	raw, err := os.ReadFile("testdata/small.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "small.pdb.gz")
	f, err := os.Create(name)
	if err != nil {
		Te.Fatal(err)
	}
	w := gzip.NewWriter(f)
	w.Write(raw)
	w.Close()
	f.Close()
	if Ext(name) != ".pdb" || Compression(name) != ".gz" {
		Te.Errorf("wrong extensions for %s: %s %s", name, Ext(name), Compression(name))
	}
	mol, err := PDBFileRead(name)
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 8 {
		Te.Errorf("expected 8 atoms from the compressed file, got %d", mol.Len())
	}
}
