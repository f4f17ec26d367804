/*
 * header.go, part of goimodfit.
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

package mrc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

//HeaderSize is the size in bytes of the main MRC/CCP4 header.
const HeaderSize = 1024

//Data modes
const (
	ModeInt8    int32 = 0
	ModeInt16   int32 = 1
	ModeFloat32 int32 = 2
	ModeUint16  int32 = 6
)

//Header is the main MRC/CCP4 header. The field layout matches the file layout,
//so it can be read and written with encoding/binary.
type Header struct {
	NX, NY, NZ                int32
	Mode                      int32
	NXStart, NYStart, NZStart int32
	MX, MY, MZ                int32
	CellA                     [3]float32 //cell dimensions, in Angstroms
	CellB                     [3]float32 //cell angles, in degrees
	MapC, MapR, MapS          int32
	DMin, DMax, DMean         float32
	ISpg                      int32
	NSymBT                    int32 //size of the extended header, in bytes
	Extra                     [100]byte
	Origin                    [3]float32
	Map                       [4]byte
	MachSt                    [4]byte
	RMS                       float32
	NLabl                     int32
	Labels                    [10][80]byte
}

//Order returns the byte order declared by the machine stamp of the header.
func (H *Header) Order() binary.ByteOrder {
	if H.MachSt[0] == 0x11 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

//grid returns the sampling intervals along each axis. Some programs leave
//MX, MY and MZ at zero, in which case the map dimensions are used.
func (H *Header) grid() [3]int32 {
	m := [3]int32{H.MX, H.MY, H.MZ}
	n := [3]int32{H.NX, H.NY, H.NZ}
	for i := range m {
		if m[i] <= 0 {
			m[i] = n[i]
		}
	}
	return m
}

//Sampling returns the voxel size along x, y and z in Angstroms.
func (H *Header) Sampling() [3]float64 {
	var s [3]float64
	m := H.grid()
	for i := range s {
		if m[i] > 0 {
			s[i] = float64(H.CellA[i]) / float64(m[i])
		}
	}
	return s
}

//SetSampling sets the cell dimensions so the voxel size is s Angstroms along every axis.
func (H *Header) SetSampling(s float64) {
	m := H.grid()
	H.MX, H.MY, H.MZ = m[0], m[1], m[2]
	for i := range m {
		H.CellA[i] = float32(s * float64(m[i]))
	}
}

//SetOrigin sets the origin of the map, in Angstroms.
func (H *Header) SetOrigin(o [3]float64) {
	for i := range o {
		H.Origin[i] = float32(o[i])
	}
}

//Voxels returns the number of voxels in the map.
func (H *Header) Voxels() int {
	return int(H.NX) * int(H.NY) * int(H.NZ)
}

//ModeSize returns the size in bytes of one voxel for the header's mode.
func (H *Header) ModeSize() (int, error) {
	switch H.Mode {
	case ModeInt8:
		return 1, nil
	case ModeInt16, ModeUint16:
		return 2, nil
	case ModeFloat32:
		return 4, nil
	}
	return 0, Error{fmt.Sprintf("unsupported data mode %d", H.Mode), "", []string{"ModeSize"}}
}

//sane reports whether the header looks like a valid MRC header.
func (H *Header) sane() bool {
	if H.NX <= 0 || H.NY <= 0 || H.NZ <= 0 || H.NSymBT < 0 {
		return false
	}
	return H.Mode >= 0 && H.Mode <= 16
}

//ReadHeader reads the main header from r. The byte order is taken from the machine
//stamp, and guessed from the map dimensions when the stamp is missing or wrong.
func ReadHeader(r io.Reader) (*Header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, Error{err.Error(), "", []string{"io.ReadFull", "ReadHeader"}}
	}
	orders := []binary.ByteOrder{binary.LittleEndian, binary.BigEndian}
	if buf[212] == 0x11 {
		orders[0], orders[1] = orders[1], orders[0]
	}
	for _, o := range orders {
		H := new(Header)
		if err := binary.Read(bytes.NewReader(buf), o, H); err != nil {
			return nil, Error{err.Error(), "", []string{"binary.Read", "ReadHeader"}}
		}
		if H.sane() {
			H.setStamp(o)
			return H, nil
		}
	}
	return nil, Error{"not an MRC/CCP4 file", "", []string{"ReadHeader"}}
}

//setStamp makes the machine stamp agree with the byte order o.
func (H *Header) setStamp(o binary.ByteOrder) {
	if o == binary.BigEndian {
		H.MachSt = [4]byte{0x11, 0x11, 0, 0}
		return
	}
	if H.MachSt[0] != 0x44 {
		H.MachSt = [4]byte{0x44, 0x44, 0, 0}
	}
}

//WriteHeader writes H to w in the byte order given by its machine stamp.
func WriteHeader(w io.Writer, H *Header) error {
	copy(H.Map[:], "MAP ")
	if err := binary.Write(w, H.Order(), H); err != nil {
		return Error{err.Error(), "", []string{"binary.Write", "WriteHeader"}}
	}
	return nil
}

//Rewrite sets, in place, the sampling and origin of the map in the file fname.
//Only the header is touched.
func Rewrite(fname string, sampling float64, origin [3]float64) error {
	f, err := os.OpenFile(fname, os.O_RDWR, 0)
	if err != nil {
		return Error{err.Error(), fname, []string{"os.OpenFile", "Rewrite"}}
	}
	defer f.Close()
	H, err := ReadHeader(f)
	if err != nil {
		return errDecorate(err, fname, "Rewrite")
	}
	H.SetSampling(sampling)
	H.SetOrigin(origin)
	if _, err = f.Seek(0, io.SeekStart); err != nil {
		return Error{err.Error(), fname, []string{"Seek", "Rewrite"}}
	}
	if err = WriteHeader(f, H); err != nil {
		return errDecorate(err, fname, "Rewrite")
	}
	return f.Close()
}

//Error is the error type of the package.
type Error struct {
	message  string
	filename string
	deco     []string
}

func (err Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("mrc: %s (%v)", err.message, err.deco)
	}
	return fmt.Sprintf("mrc: %s: %s (%v)", err.filename, err.message, err.deco)
}

//FileName returns the name of the file involved in the error, if any.
func (err Error) FileName() string { return err.filename }

func errDecorate(err error, fname, caller string) error {
	if e, ok := err.(Error); ok {
		if e.filename == "" {
			e.filename = fname
		}
		e.deco = append(e.deco, caller)
		return e
	}
	return fmt.Errorf("mrc: %s: %s: %w", caller, fname, err)
}
