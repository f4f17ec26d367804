/*
 * errors.go, part of goimodfit.
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
	"errors"
	"fmt"
	"os/exec"
)

//Error messages
const (
	ErrNotInstalled   = "iMODfit is not installed"
	ErrMissingProgram = "Program needed for the installation not found"
	ErrInvalidParams  = "Invalid fitting parameters"
	ErrCantConvert    = "Input can't be converted"
	ErrMissingInput   = "Input file missing"
	ErrNotRunning     = "Program can't be run"
	ErrFailed         = "Program finished with an error"
	ErrNoOutput       = "Output file missing or unreadable"
)

//Error is the error type of the package. It carries the name of the program or step
//involved, the file or job name, and, for failed runs, the exit code of the program.
//The Decorate method allows to add and retrieve info from the error, without changing
//its type or wrapping it around something else.
type Error struct {
	message    string
	program    string
	name       string
	additional string
	deco       []string
	critical   bool
	exitCode   int
	cause      error
}

//Error returns a string with an error message.
func (err Error) Error() string {
	s := fmt.Sprintf("%s: %s", err.program, err.message)
	if err.name != "" {
		s = fmt.Sprintf("%s (%s)", s, err.name)
	}
	if err.exitCode != 0 {
		s = fmt.Sprintf("%s, exit code %d", s, err.exitCode)
	}
	if err.additional != "" {
		s = s + ": " + err.additional
	}
	return fmt.Sprintf("%s %v", s, err.deco)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored.
func (err Error) Critical() bool { return err.critical }

//ExitCode returns the exit code of the failed program, or 0 if the error
//didn't come from a program exiting with an error.
func (err Error) ExitCode() int { return err.exitCode }

//Message returns the error message, without the additional information. It can
//be compared with the Err* constants of the package.
func (err Error) Message() string { return err.message }

//Unwrap returns the underlying error, if any.
func (err Error) Unwrap() error { return err.cause }

//newError builds a critical Error from a lower level one.
func newError(message, program, name string, cause error, deco ...string) Error {
	e := Error{message: message, program: program, name: name, deco: deco, critical: true, cause: cause}
	if cause != nil {
		e.additional = cause.Error()
		var exit *exec.ExitError
		if errors.As(cause, &exit) {
			e.exitCode = exit.ExitCode()
		}
	}
	return e
}

//errDecorate adds the caller's name to an Error before returning it.
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
