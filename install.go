/*
 * install.go, part of goimodfit.
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
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"
)

//NeededPrograms are the programs the installation uses.
var NeededPrograms = []string{"wget", "tar"}

//InstallCommand returns the shell command line that downloads and unpacks iMODfit
//and installs the MKL libraries it needs. It is meant to be run in the installation
//directory.
func (P *Plugin) InstallCommand() string {
	return fmt.Sprintf("wget %q -O %s && tar -xf %s --strip-components 1 && rm %s && "+
		"wget %s -O %s && chmod +x %s && sh %s -a -s --eula accept && touch %s",
		imodfitURL, imodfitArchive, imodfitArchive, imodfitArchive,
		mklURL, mklInstaller, mklInstaller, mklInstaller, sentinel)
}

//Installed returns true if a complete installation exists in the home directory.
func (P *Plugin) Installed() bool {
	_, err := os.Stat(P.Home(sentinel))
	return err == nil
}

//MissingPrograms returns the needed programs that are not in the PATH.
func MissingPrograms() []string {
	var missing []string
	for _, v := range NeededPrograms {
		if _, err := exec.LookPath(v); err != nil {
			missing = append(missing, v)
		}
	}
	return missing
}

//Install downloads and installs iMODfit and the MKL libraries in the home directory.
//It does nothing if iMODfit is already installed. The output of the installation goes
//to the package logger.
func (P *Plugin) Install(ctx context.Context) error {
	if P.Installed() {
		logger.WithField("home", P.Home()).Info("iMODfit already installed")
		return nil
	}
	if missing := MissingPrograms(); len(missing) > 0 {
		return Error{message: ErrMissingProgram, program: Name, additional: fmt.Sprint(missing), deco: []string{"Install"}, critical: true}
	}
	if err := os.MkdirAll(P.Home(), 0o755); err != nil {
		return newError(ErrNotRunning, Name, P.Home(), err, "os.MkdirAll", "Install")
	}
	logger.WithField("home", P.Home()).Info("Installing iMODfit")
	out := logger.WriterLevel(logrus.InfoLevel)
	defer out.Close()
	command := exec.CommandContext(ctx, "sh", "-c", P.InstallCommand())
	command.Dir = P.Home()
	command.Stdout = out
	command.Stderr = out
	if err := command.Run(); err != nil {
		return newError(ErrFailed, "sh", P.Home(), err, "exec.Run", "Install")
	}
	if !P.Installed() {
		return Error{message: ErrNotInstalled, program: Name, name: P.Home(), deco: []string{"Install"}, critical: true}
	}
	return nil
}
