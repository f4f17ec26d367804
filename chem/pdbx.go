/*
 * pdbx.go, part of goimodfit.
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
	"strconv"
	"strings"

	v3 "github.com/rmera/goimodfit/v3"
)

var tl func(string) string = strings.ToLower

//PDBxRead reads a PDBx/mmCIF file from an io.Reader. Returns a Molecule with one
//coordinate frame per model in the _atom_site loop.
func PDBxRead(pdb io.Reader) (*Molecule, error) {
	mol, err := pdbxBufIORead(bufio.NewReader(pdb))
	return mol, errDecorate(err, "PDBxRead")
}

//PDBxFileRead reads a (possibly compressed) PDBx/mmCIF file.
func PDBxFileRead(pdbname string) (*Molecule, error) {
	f, err := OpenAny(pdbname)
	if err != nil {
		return nil, errDecorate(err, "PDBxFileRead")
	}
	defer f.Close()
	mol, err := pdbxBufIORead(bufio.NewReader(f))
	if err != nil {
		return nil, Error{err.Error(), pdbname, []string{"PDBxFileRead"}, true}
	}
	return mol, nil
}

func pdbxNextLoop(pdb *bufio.Reader) (*bufio.Reader, string, error) {
	for {
		line, err := pdb.ReadString('\n')
		if err != nil {
			return pdb, line, err
		}
		if strings.HasPrefix(tl(line), "loop_") {
			return pdb, line, nil
		}
	}
}

type pdbxmap map[string]int

//newPdbxmap returns a map with all the _atom_site items goimodfit reads,
//none of them present yet.
func newPdbxmap() pdbxmap {
	m := make(pdbxmap, len(atomSiteItems))
	for _, v := range atomSiteItems {
		m[v] = -1
	}
	return m
}

//adds i to the map[string] entry, if it exists. If not,
//does nothing. Returns the map.
func (m pdbxmap) add(s string, i int) pdbxmap {
	s = strings.TrimSpace(s)
	if _, ok := m[s]; ok {
		m[s] = i
	}
	return m
}

//returns the integer corresponding to the given string in the map
//or -1 if the string is not a key in the map.
func (m pdbxmap) get(s string) int {
	if i, ok := m[s]; ok {
		return i
	}
	return -1
}

//value returns the data for the item s, and whether it is present and not
//one of the CIF placeholders for missing values ("?" and ".").
func (m pdbxmap) value(s string, data []string) (string, bool) {
	k := m.get(s)
	if k < 0 || k >= len(data) {
		return "", false
	}
	if data[k] == "?" || data[k] == "." {
		return "", false
	}
	return data[k], true
}

//cifFields splits a CIF data line in white-space separated tokens, keeping
//single or double quoted tokens (such as "O5'") together.
func cifFields(line string) []string {
	fields := make([]string, 0, 20)
	line = strings.TrimSpace(line)
	for len(line) > 0 {
		var tok string
		if q := line[0]; q == '\'' || q == '"' {
			//a closing quote only counts if followed by white space or the end of the line.
			end := -1
			for i := 1; i < len(line); i++ {
				if line[i] == q && (i == len(line)-1 || line[i+1] == ' ' || line[i+1] == '\t') {
					end = i
					break
				}
			}
			if end < 0 {
				tok, line = line[1:], ""
			} else {
				tok, line = line[1:end], line[end+1:]
			}
		} else {
			end := strings.IndexAny(line, " \t")
			if end < 0 {
				tok, line = line, ""
			} else {
				tok, line = line[:end], line[end:]
			}
		}
		fields = append(fields, tok)
		line = strings.TrimLeft(line, " \t")
	}
	return fields
}

func pdbxFillAtom(at *Atom, data []string, m pdbxmap) error {
	var err error
	if s, ok := m.value("_atom_site.type_symbol", data); ok {
		at.Symbol = s
	}
	//author names are preferred, as those are the ones in legacy PDB files.
	for _, k := range []string{"_atom_site.auth_atom_id", "_atom_site.label_atom_id"} {
		if s, ok := m.value(k, data); ok {
			at.Name = s
			break
		}
	}
	if at.Symbol == "" {
		at.Symbol, _ = symbolFromName(at.Name)
	}
	at.Mass = symbolMass[at.Symbol]
	for _, k := range []string{"_atom_site.auth_comp_id", "_atom_site.label_comp_id"} {
		if s, ok := m.value(k, data); ok {
			at.MolName = s
			break
		}
	}
	at.MolName1 = three2OneLetter[at.MolName]
	if s, ok := m.value("_atom_site.label_alt_id", data); ok {
		at.Char16 = s[0]
	}
	if s, ok := m.value("_atom_site.pdbx_pdb_ins_code", data); ok {
		at.InsCode = s[0]
	}
	for _, k := range []string{"_atom_site.auth_asym_id", "_atom_site.label_asym_id"} {
		if s, ok := m.value(k, data); ok {
			at.Chain = s
			break
		}
	}
	//Now the integer fields
	if s, ok := m.value("_atom_site.id", data); ok {
		if at.ID, err = strconv.Atoi(s); err != nil {
			return fmt.Errorf("pdbxFillAtom: Couldn't parse ID from %s: %w", s, err)
		}
	}
	for _, k := range []string{"_atom_site.auth_seq_id", "_atom_site.label_seq_id"} {
		if s, ok := m.value(k, data); ok {
			if at.MolID, err = strconv.Atoi(s); err != nil {
				return fmt.Errorf("pdbxFillAtom: Couldn't parse MolID from %s: %w", s, err)
			}
			break
		}
	}
	at.Occupancy = 1.0
	if s, ok := m.value("_atom_site.occupancy", data); ok {
		if at.Occupancy, err = strconv.ParseFloat(s, 64); err != nil {
			return fmt.Errorf("pdbxFillAtom: Couldn't parse Occupancy from %s: %w", s, err)
		}
	}
	//Charge, but we won't do anything if we somehow can't read it.
	if s, ok := m.value("_atom_site.pdbx_formal_charge", data); ok {
		if q, err := strconv.ParseFloat(s, 64); err == nil {
			at.Charge = q
		}
	}
	if s, ok := m.value("_atom_site.group_pdb", data); ok {
		at.Het = s != "ATOM"
	}
	return nil
}

func pdbxFillBfac(data []string, bf []float64, m pdbxmap) ([]float64, error) {
	v := "_atom_site.b_iso_or_equiv"
	s, ok := m.value(v, data)
	if !ok {
		return append(bf, 0), nil
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return bf, fmt.Errorf("pdbxFillBfac: Couldn't parse bfactor from %s: %w", s, err)
	}
	return append(bf, fl), nil
}

func pdbxFillCoords(data []string, coord []float64, m pdbxmap) ([]float64, error) {
	c := []string{"_atom_site.cartn_x", "_atom_site.cartn_y", "_atom_site.cartn_z"}
	for j, v := range c {
		s, ok := m.value(v, data)
		if !ok {
			return coord, fmt.Errorf("pdbxFillCoord: Field %s not present in data %v", v, data)
		}
		fl, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return coord, fmt.Errorf("pdbxFillCoord: Couldn't parse %d cartesian coordinate from %s: %w", j, s, err)
		}
		coord = append(coord, fl)
	}
	return coord, nil
}

func pdbxBufIORead(pdb *bufio.Reader) (*Molecule, error) {
	m := newPdbxmap()
	molecule := make([]*Atom, 0)
	coords := make([][]float64, 1)
	coords[0] = make([]float64, 0, 3)
	bfactors := make([][]float64, 1)
	bfactors[0] = make([]float64, 0)
	currentmodel := -1
	var reading, done bool
	var field int = 0
	hp := strings.HasPrefix
	for !done {
		line, err := pdb.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			done = true
		}
		line = strings.TrimSpace(line)
		if hp(line, "#") || hp(line, ";") || line == "" {
			continue
		}
		if !reading && hp(tl(line), "_atom_site.") {
			reading = true
			field = 0
		}
		if !reading {
			if hp(tl(line), "loop_") {
				continue
			}
			if pdb, _, err = pdbxNextLoop(pdb); err != nil {
				done = true
			}
			continue
		}
		if hp(tl(line), "loop_") { //new section
			reading = false
			continue
		}
		if hp(line, "_") {
			if !hp(tl(line), "_atom_site.") { //a new section started
				reading = false
				continue
			}
			m.add(tl(line), field)
			field++
			continue
		}
		//Here we should be reading the content lines.
		fields := cifFields(line)
		if s, ok := m.value("_atom_site.pdbx_pdb_model_num", fields); ok {
			model, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("pdbxBufIORead: Couldn't parse model number from %s: %w", s, err)
			}
			if currentmodel < 0 {
				currentmodel = model
			}
			if model != currentmodel {
				nats := len(coords[len(coords)-1])
				coords = append(coords, make([]float64, 0, nats))
				bfactors = append(bfactors, make([]float64, 0, nats/3))
				currentmodel = model
			}
		}
		//we don't read the atoms again for the next models.
		if len(coords) == 1 {
			at := new(Atom)
			if err := pdbxFillAtom(at, fields, m); err != nil {
				return nil, fmt.Errorf("pdbxBufIORead: Couldn't read atom %d: %w", len(molecule)+1, err)
			}
			molecule = append(molecule, at)
		}
		c := len(coords) - 1
		coords[c], err = pdbxFillCoords(fields, coords[c], m)
		if err != nil {
			return nil, fmt.Errorf("pdbxBufIORead: Couldn't read %d th coordinates for frame %d: %w", len(coords[c])/3+1, c, err)
		}
		bfactors[c], err = pdbxFillBfac(fields, bfactors[c], m)
		if err != nil {
			return nil, fmt.Errorf("pdbxBufIORead: %w", err)
		}
	}
	if len(molecule) == 0 {
		return nil, fmt.Errorf("pdbxBufIORead: no _atom_site records found")
	}
	frames := len(coords)
	mcoords := make([]*v3.Matrix, frames)
	var err error
	for i := 0; i < frames; i++ {
		mcoords[i], err = v3.NewMatrix(coords[i])
		if err != nil {
			return nil, fmt.Errorf("pdbxBufIORead: Couldn't transform coordinates from frame %d: %w", i, err)
		}
	}
	return NewMolecule(mcoords, NewTopology(molecule), bfactors)
}

var atomSiteItems = []string{
	"_atom_site.group_pdb",
	"_atom_site.id",
	"_atom_site.type_symbol",
	"_atom_site.label_atom_id",
	"_atom_site.label_alt_id",
	"_atom_site.label_comp_id",
	"_atom_site.label_asym_id",
	"_atom_site.label_entity_id",
	"_atom_site.label_seq_id",
	"_atom_site.pdbx_pdb_ins_code",
	"_atom_site.cartn_x",
	"_atom_site.cartn_y",
	"_atom_site.cartn_z",
	"_atom_site.occupancy",
	"_atom_site.b_iso_or_equiv",
	"_atom_site.pdbx_formal_charge",
	"_atom_site.auth_seq_id",
	"_atom_site.auth_comp_id",
	"_atom_site.auth_asym_id",
	"_atom_site.auth_atom_id",
	"_atom_site.pdbx_pdb_model_num",
}
