/*
 * viewer.go, part of goimodfit.
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

//Package viewer displays the structures produced by a fitting with
//ChimeraX or VMD.
package viewer

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	imodfit "github.com/rmera/goimodfit"
)

//Choice selects which output of a fitting to display. It is either Fitted or Movie.
type Choice interface {
	//Structure returns the selected structure, or nil.
	Structure(out *imodfit.Outputs) *imodfit.AtomStruct
	//Script is the name of the VMD script for the choice.
	Script() string
	String() string
	choice()
}

//Fitted is the fitted structure.
type Fitted struct{}

//Movie is the fitting trajectory.
type Movie struct{}

func (Fitted) Structure(out *imodfit.Outputs) *imodfit.AtomStruct {
	if out == nil {
		return nil
	}
	return out.Fitted
}
func (Fitted) Script() string { return "fitted.tcl" }
func (Fitted) String() string { return "fitted" }
func (Fitted) choice()        {}

func (Movie) Structure(out *imodfit.Outputs) *imodfit.AtomStruct {
	if out == nil {
		return nil
	}
	return out.Movie
}
func (Movie) Script() string { return "movie.tcl" }
func (Movie) String() string { return "movie" }
func (Movie) choice()        {}

//ParseChoice returns the Choice named s ("fitted" or "movie").
func ParseChoice(s string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fitted", "fit":
		return Fitted{}, nil
	case "movie", "trajectory":
		return Movie{}, nil
	}
	return nil, Error{fmt.Sprintf("Unknown output %q", s), "", []string{"ParseChoice"}}
}

//Viewer is a molecular viewer. It is either ChimeraX or VMD.
type Viewer interface {
	//Validate returns the problems that would prevent the viewer
	//from running, or nil if there are none.
	Validate() []string
	//Command prepares the command that shows fname. Files needed
	//for that are written in outDir.
	Command(fname, outDir string, c Choice) (*exec.Cmd, error)
	String() string
	viewer()
}

//ChimeraX displays the structure file directly with ChimeraX.
type ChimeraX struct {
	Program string
}

func (V ChimeraX) program() string {
	if V.Program == "" {
		return "chimerax"
	}
	return V.Program
}

//Validate checks that the ChimeraX program can be found.
func (V ChimeraX) Validate() []string {
	return lookPath(V.program(), "ChimeraX")
}

//Command returns a command that opens fname in ChimeraX.
func (V ChimeraX) Command(fname, outDir string, c Choice) (*exec.Cmd, error) {
	abs, err := filepath.Abs(fname)
	if err != nil {
		return nil, Error{err.Error(), fname, []string{"filepath.Abs", "ChimeraX.Command"}}
	}
	command := exec.Command(V.program(), abs)
	command.Dir = outDir
	return command, nil
}

func (V ChimeraX) String() string { return "ChimeraX" }
func (V ChimeraX) viewer()        {}

//VMD displays the structure with VMD, through a Tcl script.
type VMD struct {
	Program string
}

func (V VMD) program() string {
	if V.Program == "" {
		return "vmd"
	}
	return V.Program
}

//Validate checks that the VMD program can be found.
func (V VMD) Validate() []string {
	return lookPath(V.program(), "VMD")
}

//Command writes the VMD script for fname in outDir, and returns a command that runs it.
func (V VMD) Command(fname, outDir string, c Choice) (*exec.Cmd, error) {
	script, err := WriteScript(fname, outDir, c)
	if err != nil {
		return nil, errDecorate(err, "VMD.Command")
	}
	command := exec.Command(V.program(), "-e", script)
	command.Dir = outDir
	return command, nil
}

func (V VMD) String() string { return "VMD" }
func (V VMD) viewer()        {}

//ParseViewer returns the Viewer named s ("chimerax" or "vmd"), which will run program,
//or the default program if program is empty.
func ParseViewer(s, program string) (Viewer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chimerax", "chimera":
		return ChimeraX{program}, nil
	case "vmd":
		return VMD{program}, nil
	}
	return nil, Error{fmt.Sprintf("Unknown viewer %q", s), "", []string{"ParseViewer"}}
}

//vmdScript loads a PDB file, with all its models, in VMD.
const vmdScript = `display resetview
mol addrep 0
display resetview
mol new {%s} type {pdb} first 0 last -1 step 1 waitfor 1
`

//WriteScript writes, in outDir, the VMD script that loads fname, and returns its path.
func WriteScript(fname, outDir string, c Choice) (string, error) {
	abs, err := filepath.Abs(fname)
	if err != nil {
		return "", Error{err.Error(), fname, []string{"filepath.Abs", "WriteScript"}}
	}
	//the viewer runs in outDir, so a relative script path would be resolved twice.
	dir, err := filepath.Abs(outDir)
	if err != nil {
		return "", Error{err.Error(), outDir, []string{"filepath.Abs", "WriteScript"}}
	}
	script := filepath.Join(dir, c.Script())
	if err = os.WriteFile(script, []byte(fmt.Sprintf(vmdScript, abs)), 0o644); err != nil {
		return "", Error{err.Error(), script, []string{"os.WriteFile", "WriteScript"}}
	}
	return script, nil
}

func lookPath(program, name string) []string {
	if _, err := exec.LookPath(program); err != nil {
		return []string{fmt.Sprintf("%s is not available (%s not found). Either install it or choose another viewer.", name, program)}
	}
	return nil
}
