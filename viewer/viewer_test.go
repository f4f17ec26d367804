/*
 * viewer_test.go, part of goimodfit.
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

package viewer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	imodfit "github.com/rmera/goimodfit"
)

func TestParse(Te *testing.T) {
	if c, err := ParseChoice("Movie"); err != nil || c != (Movie{}) {
		Te.Errorf("got %v, %v", c, err)
	}
	if _, err := ParseChoice("volume"); err == nil {
		Te.Error("unknown choice accepted")
	}
	if v, err := ParseViewer("VMD", ""); err != nil || v.String() != "VMD" {
		Te.Errorf("got %v, %v", v, err)
	}
	if v, err := ParseViewer("chimerax", "/opt/chimerax"); err != nil || v.(ChimeraX).Program != "/opt/chimerax" {
		Te.Errorf("got %v, %v", v, err)
	}
	if _, err := ParseViewer("pymol", ""); err == nil {
		Te.Error("unknown viewer accepted")
	}
}

func TestValidate(Te *testing.T) {
	Te.Setenv("PATH", Te.TempDir())
	for _, v := range []Viewer{ChimeraX{}, VMD{}} {
		msgs := v.Validate()
		if len(msgs) != 1 || !strings.Contains(msgs[0], "not available") {
			Te.Errorf("%s: unexpected messages %v", v, msgs)
		}
		out := imodfit.WrapOutputs(Te.TempDir(), "imodfit", nil)
		if err := Show(v, Fitted{}, out, Te.TempDir(), true); err == nil {
			Te.Errorf("%s: Show ran a missing program", v)
		}
	}
}

func TestWriteScript(Te *testing.T) {
	dir := Te.TempDir()
	out := imodfit.WrapOutputs(dir, "imodfit", nil)
	for _, c := range []Choice{Fitted{}, Movie{}} {
		script, err := WriteScript(c.Structure(out).FileName, dir, c)
		if err != nil {
			Te.Fatal(err)
		}
		if filepath.Base(script) != c.String()+".tcl" {
			Te.Errorf("unexpected script name %s", script)
		}
		b, err := os.ReadFile(script)
		if err != nil {
			Te.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(string(b)), "\n")
		expected := fmt.Sprintf("mol new {%s} type {pdb} first 0 last -1 step 1 waitfor 1", c.Structure(out).FileName)
		if len(lines) != 4 || lines[0] != "display resetview" || lines[3] != expected {
			Te.Errorf("unexpected script:\n%s", b)
		}
	}
}

func TestShowVMD(Te *testing.T) {
	fakeViewer(Te, "vmd", "echo \"$@\" > vmd_args.txt\n")
	dir := Te.TempDir()
	out := imodfit.WrapOutputs(dir, "imodfit", nil)
	if err := Show(VMD{}, Movie{}, out, dir, true); err != nil {
		Te.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "vmd_args.txt"))
	if err != nil {
		Te.Fatal(err)
	}
	if strings.TrimSpace(string(b)) != "-e "+filepath.Join(dir, "movie.tcl") {
		Te.Errorf("unexpected arguments %q", b)
	}
	if err := Show(VMD{}, Movie{}, nil, dir, true); err == nil {
		Te.Error("Show accepted missing outputs")
	}
}

//fakeViewer puts a shell script named program, with the given body, first in the PATH.
func fakeViewer(Te *testing.T, program, body string) {
	bin := Te.TempDir()
	if err := os.WriteFile(filepath.Join(bin, program), []byte("#!/bin/sh\n"+body), 0755); err != nil {
		Te.Fatal(err)
	}
	Te.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
}

//inTempDir runs the rest of the test in a new temporary directory.
func inTempDir(Te *testing.T) string {
	prev, err := os.Getwd()
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	if err := os.Chdir(dir); err != nil {
		Te.Fatal(err)
	}
	Te.Cleanup(func() { os.Chdir(prev) })
	//the temporary directory may be behind a symlink.
	if dir, err = os.Getwd(); err != nil {
		Te.Fatal(err)
	}
	return dir
}

func TestShowVMDRelativeDir(Te *testing.T) {
	fakeViewer(Te, "vmd", "if [ -f \"$2\" ]; then echo ok > vmd_check.txt; else echo \"missing:$2\" > vmd_check.txt; fi\n")
	dir := inTempDir(Te)
	if err := os.Mkdir("imodfit-job", 0755); err != nil {
		Te.Fatal(err)
	}
	out := imodfit.WrapOutputs("imodfit-job", "imodfit", nil)
	if err := Show(VMD{}, Movie{}, out, "imodfit-job", true); err != nil {
		Te.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "imodfit-job", "vmd_check.txt"))
	if err != nil {
		Te.Fatal(err)
	}
	if strings.TrimSpace(string(b)) != "ok" {
		Te.Errorf("VMD didn't find its script: %s", b)
	}
	script, err := os.ReadFile(filepath.Join(dir, "imodfit-job", "movie.tcl"))
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(string(script), "{"+filepath.Join(dir, "imodfit-job", "imodfit_movie.pdb")+"}") {
		Te.Errorf("script doesn't load the absolute movie path:\n%s", script)
	}
}

func TestShowChimeraX(Te *testing.T) {
	fakeViewer(Te, "chimerax", "echo \"$@\" > chimerax_args.txt\n")
	dir := inTempDir(Te)
	if err := os.Mkdir("imodfit-job", 0755); err != nil {
		Te.Fatal(err)
	}
	out := imodfit.WrapOutputs("imodfit-job", "imodfit", nil)
	if err := Show(ChimeraX{}, Fitted{}, out, "imodfit-job", true); err != nil {
		Te.Fatal(err)
	}
	//written in the working directory of the viewer
	b, err := os.ReadFile(filepath.Join(dir, "imodfit-job", "chimerax_args.txt"))
	if err != nil {
		Te.Fatal(err)
	}
	if expected := filepath.Join(dir, "imodfit-job", "imodfit_fitted.pdb"); strings.TrimSpace(string(b)) != expected {
		Te.Errorf("got arguments %q, expected %q", b, expected)
	}
	if _, err := os.Stat(filepath.Join(dir, "imodfit-job", "fitted.tcl")); err == nil {
		Te.Error("a script was written for ChimeraX")
	}
}
