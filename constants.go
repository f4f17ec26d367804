/*
 * constants.go, part of goimodfit.
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

const (
	//Name is the name of the package, as installed.
	Name = "iMODfit"

	//HomeVar is the environment variable that overrides the installation directory.
	HomeVar = "IMODFIT_HOME"

	//EMRootVar is the environment variable with the root of the installed EM software.
	EMRootVar = "EM_ROOT"

	//Supported versions.
	V1_51          = "1.51"
	DefaultVersion = V1_51

	//Program is the fitting program, in the bin directory of the installation.
	Program = "imodfit_mkl"

	//DefaultBasename is the output basename imodfit_mkl uses unless told otherwise.
	DefaultBasename = "imodfit"

	//LegacyMapExt is the extension of the density maps given to imodfit_mkl.
	LegacyMapExt = ".ccp4"
)

//Downloads
const (
	imodfitArchive = "iMODFIT_v1.51_Linux_20190228.txz"
	imodfitURL     = "https://chaconlab.org/hybrid4em/imodfit/imodfit-donwload?task=callelement&format=raw&item_id=23&element=f85c494b-2b32-4109-b8c1-083cca2b7db6&method=download&args[0]=d3da3168d547801010043ca84f4b3d2f"
	mklInstaller   = "intel_mkl_lib.sh"
	mklURL         = "https://registrationcenter-download.intel.com/akdlm/irc_nas/17757/l_onemkl_p_2021.2.0.296_offline.sh"
)

//sentinel is the file whose presence signals a complete installation.
var sentinel = Name + "_installed"

//defaultMKLDirs are the directories where the oneMKL installer puts the runtime libraries.
var defaultMKLDirs = []string{
	"~/intel/oneapi/mkl/latest/lib/intel64",
	"~/intel/oneapi/mkl/latest/lib/ia32",
}
