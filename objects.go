/*
 * objects.go, part of goimodfit.
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

//Volume is a density map, with the metadata a processing platform keeps for it.
type Volume struct {
	FileName     string
	SamplingRate float64    //Å per voxel
	Origin       [3]float64 //Å
}

//AtomStruct is an atomic structure file. Volume, if not nil, is the map
//the structure was fitted into.
type AtomStruct struct {
	FileName string
	Volume   *Volume
}

//VolumeSource is the origin of the density map for a fitting: either a bare
//file (VolumeFile) or a Volume with metadata (VolumeObject).
type VolumeSource interface {
	Path() string
	//Metadata returns the volume, or nil for a bare file.
	Metadata() *Volume
	volumeSource()
}

//VolumeFile is a density map given only as a file.
type VolumeFile struct {
	FileName string
}

func (V VolumeFile) Path() string      { return V.FileName }
func (V VolumeFile) Metadata() *Volume { return nil }
func (V VolumeFile) volumeSource()     {}

//VolumeObject is a density map with sampling rate and origin.
type VolumeObject struct {
	*Volume
}

func (V VolumeObject) Path() string {
	if V.Volume == nil {
		return ""
	}
	return V.Volume.FileName
}
func (V VolumeObject) Metadata() *Volume { return V.Volume }
func (V VolumeObject) volumeSource()     {}

//StructSource is the origin of the atomic structure for a fitting: either
//a bare file (StructFile) or an AtomStruct (StructObject).
type StructSource interface {
	Path() string
	structSource()
}

//StructFile is a structure given only as a file.
type StructFile struct {
	FileName string
}

func (S StructFile) Path() string  { return S.FileName }
func (S StructFile) structSource() {}

//StructObject is a structure as kept by a processing platform.
type StructObject struct {
	*AtomStruct
}

func (S StructObject) Path() string {
	if S.AtomStruct == nil {
		return ""
	}
	return S.AtomStruct.FileName
}
func (S StructObject) structSource() {}
