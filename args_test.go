/*
 * args_test.go, part of goimodfit.
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
	"reflect"
	"strings"
	"testing"
)

func TestArgsDefaults(Te *testing.T) {
	P := DefaultParams()
	P.Resolution = 8
	P.Cutoff = 0.05
	args := Args("/data/input.pdb", "map.ccp4", P)
	abs, _ := filepath.Abs("map.ccp4")
	expected := []string{"/data/input.pdb", abs, "8", "0.05", "-i", "10000", "-m", "2", "-n", "0.2", "-e", "0.02", "-t"}
	if !reflect.DeepEqual(args, expected) {
		Te.Errorf("got %v, expected %v", args, expected)
	}
	if strings.Join(args, " ") != strings.Join(Args("/data/input.pdb", "map.ccp4", P), " ") {
		Te.Error("Args is not repeatable")
	}
}

func TestArgsModels(Te *testing.T) {
	for i, m := range CGModels {
		P := DefaultParams()
		P.CGModel = m
		args := Args("s.pdb", "/m.ccp4", P)
		if args[6] != "-m" || args[7] != []string{"0", "1", "2", "3"}[i] {
			Te.Errorf("model %s gave %v", m, args[6:8])
		}
	}
}

func TestArgsFlags(Te *testing.T) {
	has := func(args []string, flag string) bool {
		for _, v := range args {
			if v == flag {
				return true
			}
		}
		return false
	}
	P := DefaultParams()
	P.Movie = false
	args := Args("s.pdb", "/m.ccp4", P)
	for _, v := range []string{"-x", "-o", "-F", "-t"} {
		if has(args, v) {
			Te.Errorf("%s present in %v", v, args)
		}
	}
	P.Dihedral = true
	P.FullAtom = true
	P.Basename = "run1"
	P.Extra = " -S 3   -P 1\t-v"
	args = Args("s.pdb", "/m.ccp4", P)
	expected := []string{"s.pdb", "/m.ccp4", "10", "0", "-i", "10000", "-m", "2", "-x", "-n", "0.2", "-e", "0.02", "-o", "run1", "-F", "-S", "3", "-P", "1", "-v"}
	if !reflect.DeepEqual(args, expected) {
		Te.Errorf("got %v, expected %v", args, expected)
	}
	P.Basename = DefaultBasename
	if has(Args("s.pdb", "/m.ccp4", P), "-o") {
		Te.Error("-o given for the default basename")
	}
}

func TestArgsModesAsCounts(Te *testing.T) {
	P := DefaultParams()
	P.ModesRange = 20
	P.ExcitedModesRange = 4
	args := Args("s.pdb", "/m.ccp4", P)
	if args[8] != "-n" || args[9] != "20" || args[10] != "-e" || args[11] != "4" {
		Te.Errorf("unexpected modes in %v", args)
	}
}
