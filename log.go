/*
 * log.go, part of goimodfit.
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
	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

//SetLogger replaces the logger used by the package. A nil logger is ignored.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		logger = l
	}
}

//Logger returns the logger used by the package.
func Logger() *logrus.Logger {
	return logger
}
