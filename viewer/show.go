/*
 * show.go, part of goimodfit.
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
	"strings"

	imodfit "github.com/rmera/goimodfit"
	"github.com/sirupsen/logrus"
)

//Show displays the output of a fitting chosen by c with the viewer V. Scripts, if needed, are
//written in outDir, which is also the working directory of the viewer. Show returns
//as soon as the viewer starts, unless wait is true.
func Show(V Viewer, c Choice, out *imodfit.Outputs, outDir string, wait bool) error {
	if msgs := V.Validate(); len(msgs) > 0 {
		return Error{strings.Join(msgs, " "), "", []string{"Show"}}
	}
	st := c.Structure(out)
	if st == nil || st.FileName == "" {
		return Error{"No " + c.String() + " structure to show", "", []string{"Show"}}
	}
	command, err := V.Command(st.FileName, outDir, c)
	if err != nil {
		return errDecorate(err, "Show")
	}
	imodfit.Logger().WithFields(logrus.Fields{"viewer": V.String(), "file": st.FileName}).Info("Launching viewer")
	if wait {
		if err = command.Run(); err != nil {
			return Error{err.Error(), st.FileName, []string{"exec.Run", "Show"}}
		}
		return nil
	}
	if err = command.Start(); err != nil {
		return Error{err.Error(), st.FileName, []string{"exec.Start", "Show"}}
	}
	return command.Process.Release()
}
