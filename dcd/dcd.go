/*
 * dcd.go, part of goimodfit.
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

//Package dcd reads and writes CHARMM/NAMD DCD trajectories, the binary
//trajectory format VMD and most MD analysis tools read.
package dcd

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	v3 "github.com/rmera/goimodfit/v3"
)

//MAXTITLE is the length of each title line in the header.
const MAXTITLE int32 = 80

//ErrNoMoreFrames is returned by Next when the trajectory has been read completely.
var ErrNoMoreFrames = errors.New("no more frames")

//DCDObj is a DCD trajectory open for reading. Only trajectories without fixed atoms, unit
//cell or 4th dimension blocks are supported, which is what DCDWObj writes.
type DCDObj struct {
	natoms    int32
	frames    int32
	readable  bool
	filename  string
	dcd       *os.File
	r         *bufio.Reader
	dcdFields [][]float32
	endian    binary.ByteOrder
}

//NewDCD opens the DCD file filename and reads its header.
func NewDCD(filename string) (*DCDObj, error) {
	D := &DCDObj{filename: filename}
	if err := D.initRead(filename); err != nil {
		return nil, errDecorate(err, "NewDCD")
	}
	return D, nil
}

//Readable returns true if the object is ready to be read from.
func (D *DCDObj) Readable() bool {
	return D.readable
}

//Len returns the number of atoms per frame.
func (D *DCDObj) Len() int {
	return int(D.natoms)
}

//Frames returns the number of frames declared in the header.
func (D *DCDObj) Frames() int {
	return int(D.frames)
}

//Close closes the underlying file.
func (D *DCDObj) Close() error {
	D.readable = false
	return D.dcd.Close()
}

func (D *DCDObj) initRead(name string) error {
	var err error
	D.dcd, err = os.Open(name)
	if err != nil {
		return Error{err.Error(), name, []string{"os.Open", "initRead"}, true}
	}
	D.r = bufio.NewReader(D.dcd)
	var first int32
	if err = binary.Read(D.r, binary.LittleEndian, &first); err != nil {
		D.dcd.Close()
		return Error{err.Error(), name, []string{"binary.Read", "initRead"}, true}
	}
	D.endian = binary.LittleEndian
	if first != 84 {
		D.endian = binary.BigEndian
		if swap32(first) != 84 {
			D.dcd.Close()
			return Error{"not a DCD file", name, []string{"initRead"}, true}
		}
	}
	var head struct {
		Magic  [4]byte
		Icntrl [20]int32
		End    int32
	}
	if err = binary.Read(D.r, D.endian, &head); err != nil || string(head.Magic[:]) != "CORD" {
		D.dcd.Close()
		return Error{"not a DCD file", name, []string{"initRead"}, true}
	}
	D.frames = head.Icntrl[0]
	if head.Icntrl[8] != 0 || head.Icntrl[10] != 0 || head.Icntrl[11] != 0 {
		D.dcd.Close()
		return Error{"fixed atoms, unit cells and 4D trajectories are not supported", name, []string{"initRead"}, true}
	}
	var titlesize int32
	if err = binary.Read(D.r, D.endian, &titlesize); err != nil {
		D.dcd.Close()
		return Error{err.Error(), name, []string{"binary.Read", "initRead"}, true}
	}
	//the title block, plus its closing size marker
	if _, err = D.r.Discard(int(titlesize) + 4); err != nil {
		D.dcd.Close()
		return Error{err.Error(), name, []string{"Discard", "initRead"}, true}
	}
	var natoms [3]int32
	if err = binary.Read(D.r, D.endian, &natoms); err != nil || natoms[0] != 4 || natoms[2] != 4 {
		D.dcd.Close()
		return Error{"corrupted atom number block", name, []string{"initRead"}, true}
	}
	D.natoms = natoms[1]
	D.readable = true
	return nil
}

//Next reads the next frame into keep, which must have enough rows for all the atoms.
//If keep is nil, the frame is skipped. It returns ErrNoMoreFrames at the end of the trajectory.
func (D *DCDObj) Next(keep *v3.Matrix) error {
	if !D.Readable() {
		return Error{"trajectory not open for reading", D.filename, []string{"Next"}, true}
	}
	if D.dcdFields == nil {
		D.dcdFields = [][]float32{make([]float32, D.natoms), make([]float32, D.natoms), make([]float32, D.natoms)}
	}
	for i, block := range D.dcdFields {
		if err := D.readFloat32Block(block); err != nil {
			if i == 0 && errors.Is(err, io.EOF) {
				return ErrNoMoreFrames
			}
			return errDecorate(err, "Next")
		}
	}
	if keep == nil {
		return nil
	}
	if keep.NVecs() < int(D.natoms) {
		return Error{fmt.Sprintf("matrix has %d rows for %d atoms", keep.NVecs(), D.natoms), D.filename, []string{"Next"}, true}
	}
	for k := 0; k < int(D.natoms); k++ {
		keep.Set(k, 0, float64(D.dcdFields[0][k]))
		keep.Set(k, 1, float64(D.dcdFields[1][k]))
		keep.Set(k, 2, float64(D.dcdFields[2][k]))
	}
	return nil
}

//readFloat32Block reads a block of float32 surrounded by its size in bytes.
func (D *DCDObj) readFloat32Block(block []float32) error {
	var size, end int32
	if err := binary.Read(D.r, D.endian, &size); err != nil {
		return err
	}
	if int(size) != 4*len(block) {
		return Error{fmt.Sprintf("block of %d bytes, expected %d", size, 4*len(block)), D.filename, []string{"readFloat32Block"}, true}
	}
	if err := binary.Read(D.r, D.endian, block); err != nil {
		return Error{err.Error(), D.filename, []string{"binary.Read", "readFloat32Block"}, true}
	}
	if err := binary.Read(D.r, D.endian, &end); err != nil || end != size {
		return Error{"corrupted block", D.filename, []string{"readFloat32Block"}, true}
	}
	return nil
}

func swap32(i int32) int32 {
	u := uint32(i)
	return int32(u>>24 | (u>>8)&0xff00 | (u<<8)&0xff0000 | u<<24)
}

//Error is the error type of the package.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
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

//Critical returns whether the error is critical or it can be ignored.
func (err Error) Critical() bool { return err.critical }

func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
		return e
	}
	return fmt.Errorf("%s: %w", caller, err)
}
