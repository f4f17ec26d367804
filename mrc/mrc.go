/*
 * mrc.go, part of goimodfit.
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
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/rmera/goimodfit/chem"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Map is a density map: its header and its voxels, x running fastest.
type Map struct {
	*Header
	Data []float64
}

//ReadFile reads a (possibly gzip or zstd compressed) MRC/CCP4 file.
func ReadFile(fname string) (*Map, error) {
	f, err := chem.OpenAny(fname)
	if err != nil {
		return nil, Error{err.Error(), fname, []string{"chem.OpenAny", "ReadFile"}}
	}
	defer f.Close()
	M, err := Read(f)
	if err != nil {
		return nil, errDecorate(err, fname, "ReadFile")
	}
	return M, nil
}

//FileHeader reads only the main header of the (possibly compressed) file fname.
func FileHeader(fname string) (*Header, error) {
	f, err := chem.OpenAny(fname)
	if err != nil {
		return nil, Error{err.Error(), fname, []string{"chem.OpenAny", "FileHeader"}}
	}
	defer f.Close()
	H, err := ReadHeader(f)
	if err != nil {
		return nil, errDecorate(err, fname, "FileHeader")
	}
	return H, nil
}

//Read reads a map from r.
func Read(r io.Reader) (*Map, error) {
	br := bufio.NewReader(r)
	H, err := ReadHeader(br)
	if err != nil {
		return nil, err
	}
	size, err := H.ModeSize()
	if err != nil {
		return nil, err
	}
	if _, err := br.Discard(int(H.NSymBT)); err != nil {
		return nil, Error{err.Error(), "", []string{"Discard", "Read"}}
	}
	n := H.Voxels()
	o := H.Order()
	data := make([]float64, n)
	buf := make([]byte, size)
	for i := range data {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, Error{"truncated voxel data: " + err.Error(), "", []string{"io.ReadFull", "Read"}}
		}
		data[i] = voxel(buf, H.Mode, o)
	}
	return &Map{Header: H, Data: data}, nil
}

func voxel(b []byte, mode int32, o binary.ByteOrder) float64 {
	switch mode {
	case ModeInt8:
		return float64(int8(b[0]))
	case ModeInt16:
		return float64(int16(o.Uint16(b)))
	case ModeUint16:
		return float64(o.Uint16(b))
	}
	return float64(math.Float32frombits(o.Uint32(b)))
}

//Statistics summarizes the densities in a map.
type Statistics struct {
	Min, Max, Mean, StdDev float64
}

//Stats returns the minimum, maximum, mean and standard deviation of the densities in M.
func (M *Map) Stats() Statistics {
	if len(M.Data) == 0 {
		return Statistics{}
	}
	mean, std := stat.MeanStdDev(M.Data, nil)
	return Statistics{
		Min:    floats.Min(M.Data),
		Max:    floats.Max(M.Data),
		Mean:   mean,
		StdDev: std,
	}
}

//SuggestCutoff returns mean + sigmas*standard deviation of the densities in M, a
//common starting point for the imodfit density threshold.
func (M *Map) SuggestCutoff(sigmas float64) float64 {
	s := M.Stats()
	return s.Mean + sigmas*s.StdDev
}
