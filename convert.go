/*
 * convert.go, part of goimodfit.
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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rmera/goimodfit/chem"
	"github.com/rmera/goimodfit/mrc"
)

//ConvertVolume puts the density map of src in workDir, as <name>.ccp4, and returns
//the path of the new file. Compressed maps are decompressed. Maps that were not
//already .ccp4 files get the sampling rate and origin of the Volume written to their
//header, when src carries a Volume.
func ConvertVolume(src VolumeSource, workDir string) (string, error) {
	if src == nil || src.Path() == "" {
		return "", Error{message: ErrMissingInput, program: Name, additional: "no density map given", deco: []string{"ConvertVolume"}, critical: true}
	}
	path := src.Path()
	target := filepath.Join(workDir, stem(path)+LegacyMapExt)
	if err := place(path, target); err != nil {
		return "", errDecorate(err, "ConvertVolume")
	}
	if chem.Ext(path) != LegacyMapExt {
		if v := src.Metadata(); v != nil {
			if v.SamplingRate <= 0 {
				return "", Error{message: ErrCantConvert, program: Name, name: path, additional: fmt.Sprintf("invalid sampling rate %g", v.SamplingRate), deco: []string{"ConvertVolume"}, critical: true}
			}
			if err := mrc.Rewrite(target, v.SamplingRate, v.Origin); err != nil {
				return "", newError(ErrCantConvert, Name, path, err, "mrc.Rewrite", "ConvertVolume")
			}
			return target, nil
		}
	}
	//the map is not modified, but we still want to know it is one.
	if _, err := mrc.FileHeader(target); err != nil {
		return "", newError(ErrCantConvert, Name, path, err, "mrc.FileHeader", "ConvertVolume")
	}
	return target, nil
}

//ConvertStructure returns the path of a PDB file for the structure in src.
//PDB files are used in place. PDBx/mmCIF files are converted to PDB in workDir,
//keeping only their first model, and compressed files are decompressed there.
func ConvertStructure(src StructSource, workDir string) (string, error) {
	if src == nil || src.Path() == "" {
		return "", Error{message: ErrMissingInput, program: Name, additional: "no atomic structure given", deco: []string{"ConvertStructure"}, critical: true}
	}
	path := src.Path()
	switch chem.Ext(path) {
	case ".cif", ".mmcif":
		mol, err := chem.PDBxFileRead(path)
		if err != nil {
			return "", newError(ErrCantConvert, Name, path, err, "chem.PDBxFileRead", "ConvertStructure")
		}
		if n := mol.LenFrames(); n > 1 {
			logger.WithField("models", n).Warnf("Only the first model of %s will be fitted", path)
			mol, err = chem.NewMolecule(mol.Coords[:1], mol.Topology, mol.Bfactors[:1])
			if err != nil {
				return "", newError(ErrCantConvert, Name, path, err, "chem.NewMolecule", "ConvertStructure")
			}
		}
		target := filepath.Join(workDir, stem(path)+".pdb")
		if err = chem.PDBFileWrite(target, mol); err != nil {
			return "", newError(ErrCantConvert, Name, path, err, "chem.PDBFileWrite", "ConvertStructure")
		}
		return target, nil
	}
	if chem.Compression(path) != "" {
		target := filepath.Join(workDir, filepath.Base(chem.TrimCompression(path)))
		if err := place(path, target); err != nil {
			return "", errDecorate(err, "ConvertStructure")
		}
		return target, nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", newError(ErrMissingInput, Name, path, err, "os.Stat", "ConvertStructure")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", newError(ErrMissingInput, Name, path, err, "filepath.Abs", "ConvertStructure")
	}
	return abs, nil
}

//stem returns the base name of fname without its extensions, compression included.
func stem(fname string) string {
	base := filepath.Base(chem.TrimCompression(fname))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

//place writes the (decompressed) contents of src to target.
func place(src, target string) error {
	if _, err := os.Stat(src); err != nil {
		return newError(ErrMissingInput, Name, src, err, "os.Stat", "place")
	}
	if same(src, target) {
		return nil
	}
	if chem.Compression(src) != "" {
		if err := chem.Decompress(src, target); err != nil {
			return newError(ErrCantConvert, Name, src, err, "chem.Decompress", "place")
		}
		return nil
	}
	return copyFile(src, target)
}

//same returns true if a and b are the same file.
func same(a, b string) bool {
	ia, err := os.Stat(a)
	if err != nil {
		return false
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ia, ib)
}

func copyFile(src, target string) error {
	in, err := os.Open(src)
	if err != nil {
		return newError(ErrMissingInput, Name, src, err, "os.Open", "copyFile")
	}
	defer in.Close()
	out, err := os.Create(target)
	if err != nil {
		return newError(ErrCantConvert, Name, target, err, "os.Create", "copyFile")
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return newError(ErrCantConvert, Name, src, err, "io.Copy", "copyFile")
	}
	if err = out.Close(); err != nil {
		return newError(ErrCantConvert, Name, target, err, "Close", "copyFile")
	}
	return nil
}
