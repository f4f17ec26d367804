/*
 * handle.go, part of goimodfit.
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
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

//Handle runs imodfit_mkl once. The program runs in the working directory, with its
//standard output and error saved to <name>.out and <name>.err there.
type Handle struct {
	command   string
	inputname string
	dir       string
	env       []string
	options   []string
}

//NewHandle returns a Handle for the program installed by P.
func NewHandle(P *Plugin) *Handle {
	H := new(Handle)
	H.SetDefaults()
	if P != nil {
		H.command = P.Binary(Program)
		//a relative path would be taken as relative to the working directory.
		if abs, err := filepath.Abs(H.command); err == nil {
			H.command = abs
		}
		H.env = P.Environ()
	}
	return H
}

//SetDefaults sets the program to imodfit_mkl in the PATH, the name to
//the default basename and the working directory to the current one.
func (O *Handle) SetDefaults() {
	O.command = Program
	O.inputname = DefaultBasename
	O.dir = "."
	O.env = nil
}

//Command returns the program to be run.
func (O *Handle) Command() string {
	return O.command
}

//SetCommand sets the program to be run.
func (O *Handle) SetCommand(name string) {
	O.command = name
}

//SetName sets the name for the log files of the run.
func (O *Handle) SetName(name string) {
	O.inputname = name
}

//SetDir sets the working directory.
func (O *Handle) SetDir(dir string) {
	O.dir = dir
}

//SetEnv sets the environment of the program. A nil env means the
//environment of the current process.
func (O *Handle) SetEnv(env []string) {
	O.env = env
}

//Options returns the arguments the program will be run with.
func (O *Handle) Options() []string {
	return O.options
}

//BuildInput checks P and prepares the arguments to fit the structure into densityMap.
func (O *Handle) BuildInput(structure, densityMap string, P *Params) error {
	if err := P.Validate(); err != nil {
		return errDecorate(err, "BuildInput")
	}
	O.options = Args(structure, densityMap, P)
	return nil
}

//Run runs the program and waits for it to finish. A program that can't be started, or
//that exits with an error, gives a critical Error. In the latter case, the
//Error's ExitCode method returns the exit code of the program.
func (O *Handle) Run() error {
	stdout, err := os.Create(filepath.Join(O.dir, O.inputname+".out"))
	if err != nil {
		return newError(ErrNotRunning, O.command, O.inputname, err, "os.Create", "Run")
	}
	defer stdout.Close()
	stderr, err := os.Create(filepath.Join(O.dir, O.inputname+".err"))
	if err != nil {
		return newError(ErrNotRunning, O.command, O.inputname, err, "os.Create", "Run")
	}
	defer stderr.Close()
	command := exec.Command(O.command, O.options...)
	command.Dir = O.dir
	command.Env = O.env
	command.Stdout = stdout
	command.Stderr = stderr
	logger.WithField("dir", O.dir).Debugf("%s %s", O.command, strings.Join(O.options, " "))
	if err = command.Start(); err != nil {
		return newError(ErrNotRunning, O.command, O.inputname, err, "exec.Start", "Run")
	}
	if err = command.Wait(); err != nil {
		return newError(ErrFailed, O.command, O.inputname, err, "exec.Wait", "Run")
	}
	return nil
}
