/*
 * convert_test.go, part of goimodfit.
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
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/rmera/goimodfit/mrc"
)

//writeMap writes a little-endian float32 map with n*n*n voxels and 1 Å sampling.
func writeMap(Te *testing.T, fname string, n int32) {
	H := &mrc.Header{NX: n, NY: n, NZ: n, Mode: mrc.ModeFloat32, MX: n, MY: n, MZ: n, MapC: 1, MapR: 2, MapS: 3}
	H.CellA = [3]float32{float32(n), float32(n), float32(n)}
	H.CellB = [3]float32{90, 90, 90}
	H.MachSt = [4]byte{0x44, 0x44, 0, 0}
	var buf bytes.Buffer
	if err := mrc.WriteHeader(&buf, H); err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < int(n*n*n); i++ {
		binary.Write(&buf, binary.LittleEndian, float32(i%7))
	}
	if err := os.WriteFile(fname, buf.Bytes(), 0644); err != nil {
		Te.Fatal(err)
	}
}

func TestConvertLegacyVolume(Te *testing.T) {
	dir := Te.TempDir()
	src := filepath.Join(dir, "emd_1234.ccp4")
	writeMap(Te, src, 4)
	work := filepath.Join(dir, "work")
	os.Mkdir(work, 0755)
	vol := &Volume{FileName: src, SamplingRate: 2.5, Origin: [3]float64{10, 20, 30}}
	target, err := ConvertVolume(VolumeObject{vol}, work)
	if err != nil {
		Te.Fatal(err)
	}
	if target != filepath.Join(work, "emd_1234.ccp4") {
		Te.Errorf("unexpected target %s", target)
	}
	orig, _ := os.ReadFile(src)
	conv, _ := os.ReadFile(target)
	if !bytes.Equal(orig, conv) {
		Te.Error("a .ccp4 map was modified")
	}
}

func TestConvertVolumeObject(Te *testing.T) {
	dir := Te.TempDir()
	src := filepath.Join(dir, "emd_1234.mrc")
	writeMap(Te, src, 4)
	vol := &Volume{FileName: src, SamplingRate: 1.5, Origin: [3]float64{-3, 4.5, 12}}
	target, err := ConvertVolume(VolumeObject{vol}, dir)
	if err != nil {
		Te.Fatal(err)
	}
	if filepath.Ext(target) != ".ccp4" {
		Te.Errorf("unexpected target %s", target)
	}
	H, err := mrc.FileHeader(target)
	if err != nil {
		Te.Fatal(err)
	}
	for i, v := range H.Sampling() {
		if v != 1.5 {
			Te.Errorf("sampling %d is %f, expected 1.5", i, v)
		}
		if float64(H.Origin[i]) != vol.Origin[i] {
			Te.Errorf("origin %d is %f, expected %f", i, H.Origin[i], vol.Origin[i])
		}
	}
	orig, _ := os.ReadFile(src)
	conv, _ := os.ReadFile(target)
	if len(orig) != len(conv) || !bytes.Equal(orig[mrc.HeaderSize:], conv[mrc.HeaderSize:]) {
		Te.Error("map data changed by the conversion")
	}
}

func TestConvertCompressedVolume(Te *testing.T) {
	dir := Te.TempDir()
	plain := filepath.Join(dir, "plain.map")
	writeMap(Te, plain, 3)
	data, _ := os.ReadFile(plain)
	src := filepath.Join(dir, "emd_5.map.gz")
	f, err := os.Create(src)
	if err != nil {
		Te.Fatal(err)
	}
	w := gzip.NewWriter(f)
	w.Write(data)
	w.Close()
	f.Close()
	work := Te.TempDir()
	target, err := ConvertVolume(VolumeFile{src}, work)
	if err != nil {
		Te.Fatal(err)
	}
	if target != filepath.Join(work, "emd_5.ccp4") {
		Te.Errorf("unexpected target %s", target)
	}
	conv, _ := os.ReadFile(target)
	if !bytes.Equal(conv, data) {
		Te.Error("decompressed map differs from the original")
	}
}

func TestConvertMissing(Te *testing.T) {
	work := Te.TempDir()
	if _, err := ConvertVolume(VolumeFile{"does/not/exist.ccp4"}, work); err == nil {
		Te.Error("missing map accepted")
	}
	if _, err := ConvertVolume(VolumeObject{}, work); err == nil {
		Te.Error("empty volume accepted")
	}
	if _, err := ConvertStructure(StructFile{"does/not/exist.pdb"}, work); err == nil {
		Te.Error("missing structure accepted")
	}
	notmap := filepath.Join(work, "notamap.mrc")
	os.WriteFile(notmap, []byte("ATOM"), 0644)
	if _, err := ConvertVolume(VolumeFile{notmap}, Te.TempDir()); err == nil {
		Te.Error("invalid map accepted")
	}
}

func TestConvertStructure(Te *testing.T) {
	work := Te.TempDir()
	pdb, err := ConvertStructure(StructFile{"chem/testdata/small.pdb"}, work)
	if err != nil {
		Te.Fatal(err)
	}
	if abs, _ := filepath.Abs("chem/testdata/small.pdb"); pdb != abs {
		Te.Errorf("PDB file should be used in place, got %s", pdb)
	}
	st := &AtomStruct{FileName: "chem/testdata/small.cif"}
	pdb, err = ConvertStructure(StructObject{st}, work)
	if err != nil {
		Te.Fatal(err)
	}
	if pdb != filepath.Join(work, "small.pdb") {
		Te.Errorf("unexpected converted file %s", pdb)
	}
	mol, err := ReadStructure(pdb)
	if err != nil {
		Te.Fatal(err)
	}
	cif, err := ReadStructure("chem/testdata/small.cif")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != cif.Len() {
		Te.Errorf("converted structure has %d atoms, expected %d", mol.Len(), cif.Len())
	}
}

func TestConvertStructureModels(Te *testing.T) {
	b, err := os.ReadFile("chem/testdata/small.cif")
	if err != nil {
		Te.Fatal(err)
	}
	//a second model, with the first atom moved.
	var lines, second []string
	last := 0
	for i, l := range strings.Split(string(b), "\n") {
		lines = append(lines, l)
		if strings.HasPrefix(l, "ATOM") {
			l = strings.Replace(l, " 1.000 2.000 3.000 ", " 9.000 2.000 3.000 ", 1)
			second = append(second, strings.TrimSuffix(l, " 1")+" 2")
			last = i
		}
	}
	lines = append(lines[:last+1], append(second, lines[last+1:]...)...)
	work := Te.TempDir()
	cif := filepath.Join(work, "models.cif")
	if err := os.WriteFile(cif, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		Te.Fatal(err)
	}
	orig, err := ReadStructure(cif)
	if err != nil {
		Te.Fatal(err)
	}
	if orig.LenFrames() != 2 {
		Te.Fatalf("test file has %d models, expected 2", orig.LenFrames())
	}
	pdb, err := ConvertStructure(StructFile{cif}, work)
	if err != nil {
		Te.Fatal(err)
	}
	mol, err := ReadStructure(pdb)
	if err != nil {
		Te.Fatal(err)
	}
	if mol.LenFrames() != 1 || mol.Len() != 8 {
		Te.Errorf("converted structure has %d models and %d atoms, expected 1 and 8", mol.LenFrames(), mol.Len())
	}
	if x := mol.Coords[0].At(0, 0); x != 1 {
		Te.Errorf("first atom at x=%f, expected the first model (x=1)", x)
	}
}
