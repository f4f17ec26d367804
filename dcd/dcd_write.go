/*
 * dcd_write.go, part of goimodfit.
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
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"

	v3 "github.com/rmera/goimodfit/v3"
)

//DCDWObj is a DCD trajectory open for writing, in the CHARMM flavor, little endian.
//Close must be called after the last frame, to set the number of frames in the header.
type DCDWObj struct {
	natoms    int32
	frames    int32
	writable  bool
	filename  string
	dcd       *os.File
	w         *bufio.Writer
	dcdFields [][]float32
	endian    binary.ByteOrder
}

//NewWriter creates filename and writes the header of a trajectory of natoms atoms.
func NewWriter(filename string, natoms int) (*DCDWObj, error) {
	if natoms <= 0 {
		return nil, Error{"the number of atoms must be positive", filename, []string{"NewWriter"}, true}
	}
	D := &DCDWObj{natoms: int32(natoms), filename: filename, endian: binary.LittleEndian}
	if err := D.initWrite(filename); err != nil {
		return nil, errDecorate(err, "NewWriter")
	}
	return D, nil
}

func (D *DCDWObj) initWrite(name string) error {
	var err error
	D.dcd, err = os.Create(name)
	if err != nil {
		return Error{err.Error(), name, []string{"os.Create", "initWrite"}, true}
	}
	D.w = bufio.NewWriter(D.dcd)
	var icntrl [20]int32
	//icntrl[0] is the number of frames, written on Close.
	icntrl[1] = 1 //first step
	icntrl[2] = 1 //steps between frames
	icntrl[3] = 1 //total steps
	//The timestep is a float32 in the integer array. Fixed atoms (8), unit cell (10) and
	//4th dimension (11) stay at 0. The last one is the CHARMM version.
	icntrl[9] = int32(math.Float32bits(1.0))
	icntrl[19] = 24
	title := make([]byte, MAXTITLE)
	copy(title, "Created by goimodfit")
	blocks := []interface{}{
		int32(84), []byte("CORD"), icntrl, int32(84),
		int32(4 + MAXTITLE), int32(1), title, int32(4 + MAXTITLE),
		int32(4), D.natoms, int32(4),
	}
	for _, v := range blocks {
		if err := binary.Write(D.w, D.endian, v); err != nil {
			D.dcd.Close()
			return Error{err.Error(), name, []string{"binary.Write", "initWrite"}, true}
		}
	}
	D.writable = true
	return nil
}

//WNext writes the next frame to the trajectory.
func (D *DCDWObj) WNext(towrite *v3.Matrix) error {
	if !D.writable {
		return Error{"trajectory not open for writing", D.filename, []string{"WNext"}, true}
	}
	if towrite == nil || int32(towrite.NVecs()) != D.natoms {
		return Error{"coordinates don't match the trajectory size", D.filename, []string{"WNext"}, true}
	}
	if D.dcdFields == nil {
		D.dcdFields = [][]float32{make([]float32, D.natoms), make([]float32, D.natoms), make([]float32, D.natoms)}
	}
	for k := 0; k < int(D.natoms); k++ {
		D.dcdFields[0][k] = float32(towrite.At(k, 0))
		D.dcdFields[1][k] = float32(towrite.At(k, 1))
		D.dcdFields[2][k] = float32(towrite.At(k, 2))
	}
	for _, block := range D.dcdFields {
		if err := D.writeFloat32Block(block); err != nil {
			return errDecorate(err, "WNext")
		}
	}
	D.frames++
	return nil
}

//Writes a block of float32s to the file, surrounded by its size in bytes.
func (D *DCDWObj) writeFloat32Block(block []float32) error {
	size := int32(4 * len(block))
	for _, v := range []interface{}{size, block, size} {
		if err := binary.Write(D.w, D.endian, v); err != nil {
			return Error{err.Error(), D.filename, []string{"binary.Write", "writeFloat32Block"}, true}
		}
	}
	return nil
}

//Close writes the number of frames to the header and closes the file.
func (D *DCDWObj) Close() error {
	if !D.writable {
		return nil
	}
	D.writable = false
	if err := D.w.Flush(); err != nil {
		D.dcd.Close()
		return Error{err.Error(), D.filename, []string{"Flush", "Close"}, true}
	}
	//the frame count is right after the first size marker and the magic word.
	if _, err := D.dcd.Seek(8, io.SeekStart); err != nil {
		D.dcd.Close()
		return Error{err.Error(), D.filename, []string{"Seek", "Close"}, true}
	}
	if err := binary.Write(D.dcd, D.endian, D.frames); err != nil {
		D.dcd.Close()
		return Error{err.Error(), D.filename, []string{"binary.Write", "Close"}, true}
	}
	if err := D.dcd.Close(); err != nil {
		return Error{err.Error(), D.filename, []string{"os.File.Close", "Close"}, true}
	}
	return nil
}
