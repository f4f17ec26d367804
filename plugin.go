/*
 * plugin.go, part of goimodfit.
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
	"os"
	"path/filepath"
	"strings"
)

//Plugin describes an iMODfit installation: where it lives, and what
//the program needs from the environment to run.
type Plugin struct {
	EMRoot  string   //root of the installed EM software.
	HomeDir string   //overrides EMRoot/iMODfit-Version if not empty.
	Version string   //iMODfit version
	MKLDirs []string //directories with the MKL runtime libraries.
}

//NewPlugin returns a Plugin for the default version of iMODfit, taking
//the EM root and the home override from the process environment.
func NewPlugin() *Plugin {
	root := os.Getenv(EMRootVar)
	if root == "" {
		root = filepath.Join("software", "em")
	}
	P := &Plugin{EMRoot: root, HomeDir: os.Getenv(HomeVar), Version: DefaultVersion}
	P.MKLDirs = append([]string(nil), defaultMKLDirs...)
	return P
}

//Home returns the installation directory, or the path of parts inside it.
func (P *Plugin) Home(parts ...string) string {
	home := P.HomeDir
	if home == "" {
		version := P.Version
		if version == "" {
			version = DefaultVersion
		}
		home = filepath.Join(P.EMRoot, fmt.Sprintf("%s-%s", Name, version))
	}
	return filepath.Join(append([]string{home}, parts...)...)
}

//Binary returns the full path of program in the installation.
func (P *Plugin) Binary(program string) string {
	return P.Home("bin", program)
}

//LibraryPath returns the value LD_LIBRARY_PATH must have to run the programs:
//the MKL directories, followed by the current value, if any.
func (P *Plugin) LibraryPath() string {
	dirs := make([]string, 0, len(P.MKLDirs)+1)
	for _, v := range P.MKLDirs {
		dirs = append(dirs, expandHome(v))
	}
	if prev := os.Getenv("LD_LIBRARY_PATH"); prev != "" {
		dirs = append(dirs, prev)
	}
	return strings.Join(dirs, string(os.PathListSeparator))
}

//Environ returns the process environment, with LD_LIBRARY_PATH set
//to the value given by LibraryPath.
func (P *Plugin) Environ() []string {
	env := os.Environ()
	ret := make([]string, 0, len(env)+1)
	for _, v := range env {
		if strings.HasPrefix(v, "LD_LIBRARY_PATH=") {
			continue
		}
		ret = append(ret, v)
	}
	return append(ret, "LD_LIBRARY_PATH="+P.LibraryPath())
}

//expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
