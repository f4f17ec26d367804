/*
 * dcd_test.go, part of goimodfit.
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

package dcd

import (
	"errors"
	"path/filepath"
	"testing"

	v3 "github.com/rmera/goimodfit/v3"
)

func TestWriteRead(Te *testing.T) {
	fname := filepath.Join(Te.TempDir(), "movie.dcd")
	W, err := NewWriter(fname, 2)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		c, _ := v3.NewMatrix([]float64{float64(i), 1, 2, 3, 4, 5.5})
		if err := W.WNext(c); err != nil {
			Te.Fatal(err)
		}
	}
	wrong := v3.Zeros(3)
	if err := W.WNext(wrong); err == nil {
		Te.Error("frame with the wrong number of atoms accepted")
	}
	if err := W.Close(); err != nil {
		Te.Fatal(err)
	}
	R, err := NewDCD(fname)
	if err != nil {
		Te.Fatal(err)
	}
	if !R.Readable() {
		Te.Error("trajectory not readable after opening it")
	}
	if R.Len() != 2 || R.Frames() != 3 {
		Te.Errorf("got %d atoms and %d frames, expected 2 and 3", R.Len(), R.Frames())
	}
	keep := v3.Zeros(2)
	read := 0
	for ; ; read++ {
		err := R.Next(keep)
		if errors.Is(err, ErrNoMoreFrames) {
			break
		}
		if err != nil {
			Te.Fatal(err)
		}
		if keep.At(0, 0) != float64(read) || keep.At(1, 2) != 5.5 {
			Te.Errorf("frame %d: unexpected coordinates\n%v", read, keep)
		}
	}
	if read != 3 {
		Te.Errorf("read %d frames, expected 3", read)
	}
	if err := R.Close(); err != nil {
		Te.Fatal(err)
	}
	if R.Readable() {
		Te.Error("trajectory still readable after closing it")
	}
	if err := R.Next(keep); err == nil || errors.Is(err, ErrNoMoreFrames) {
		Te.Errorf("reading a closed trajectory gave %v", err)
	}
}

func TestNotDCD(Te *testing.T) {
	if _, err := NewDCD("dcd_test.go"); err == nil {
		Te.Error("a Go file was read as a trajectory")
	}
}
