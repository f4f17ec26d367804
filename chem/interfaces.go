/*
 * interfaces.go, part of goimodfit.
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

import "fmt"

//Atomer is the basic interface for a topology.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//of the Atom slice in the Topology. Should panic if
	//out of range.
	Atom(i int) *Atom

	Len() int
}

//Errors

//Error is the error type of the package. The Decorate method allows to add and retrieve info from the
//error, without changing it's type or wrapping it around something else.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("%s (%v)", err.message, err.deco)
	}
	return fmt.Sprintf("%s: %s (%v)", err.filename, err.message, err.deco)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//FileName returns the name of the file involved in the error, if any.
func (err Error) FileName() string { return err.filename }

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//errDecorate decorates a chem Error with the caller's name before returning it.
//Errors of other types are wrapped.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case Error:
		e.Decorate(caller)
		return e
	case *Error:
		e.Decorate(caller)
		return e
	}
	return fmt.Errorf("%s: %w", caller, err)
}
