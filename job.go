/*
 * job.go, part of goimodfit.
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
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

//Job is a fitting of a structure into a density map. It runs in its own working
//directory, in three steps: ConvertInput, Fit and CreateOutput.
type Job struct {
	ID        string
	WorkDir   string
	Plugin    *Plugin
	Params    *Params
	Volume    VolumeSource
	Structure StructSource
	//Outputs is nil until the job has finished successfully.
	Outputs *Outputs

	densityMap string
	structure  string
}

//NewJob returns a job to fit st into vol with the given parameters. The job
//gets a new ID, and the working directory imodfit-<ID>.
func NewJob(P *Plugin, params *Params, vol VolumeSource, st StructSource) *Job {
	id := uuid.NewString()
	return &Job{
		ID:        id,
		WorkDir:   DefaultBasename + "-" + id,
		Plugin:    P,
		Params:    params,
		Volume:    vol,
		Structure: st,
	}
}

func (J *Job) log(step string) *logrus.Entry {
	return logger.WithFields(logrus.Fields{"job": J.ID, "step": step})
}

//Input returns the converted structure and density map, once ConvertInput has run.
func (J *Job) Input() (structure, densityMap string) {
	return J.structure, J.densityMap
}

//ConvertInput checks the parameters, creates the working directory and
//puts the inputs there in the formats imodfit_mkl reads.
func (J *Job) ConvertInput() error {
	if J.Params == nil {
		J.Params = DefaultParams()
	}
	if err := J.Params.Validate(); err != nil {
		return errDecorate(err, "ConvertInput")
	}
	if J.ID == "" {
		J.ID = uuid.NewString()
	}
	if J.WorkDir == "" {
		J.WorkDir = DefaultBasename + "-" + J.ID
	}
	dir, err := filepath.Abs(J.WorkDir)
	if err != nil {
		return newError(ErrCantConvert, Name, J.WorkDir, err, "filepath.Abs", "ConvertInput")
	}
	J.WorkDir = dir
	if err = os.MkdirAll(J.WorkDir, 0o755); err != nil {
		return newError(ErrCantConvert, Name, J.WorkDir, err, "os.MkdirAll", "ConvertInput")
	}
	if J.densityMap, err = ConvertVolume(J.Volume, J.WorkDir); err != nil {
		return errDecorate(err, "ConvertInput")
	}
	J.log("ConvertInput").WithField("file", J.densityMap).Info("Density map ready")
	if J.structure, err = ConvertStructure(J.Structure, J.WorkDir); err != nil {
		return errDecorate(err, "ConvertInput")
	}
	J.log("ConvertInput").WithField("file", J.structure).Info("Structure ready")
	return nil
}

//Fit runs imodfit_mkl on the converted inputs, in the working directory.
func (J *Job) Fit() error {
	if J.structure == "" || J.densityMap == "" {
		return Error{message: ErrMissingInput, program: Name, name: J.ID, additional: "inputs not converted", deco: []string{"Fit"}, critical: true}
	}
	plugin := J.Plugin
	if plugin == nil {
		plugin = NewPlugin()
	}
	H := NewHandle(plugin)
	H.SetDir(J.WorkDir)
	H.SetName(J.Params.Basename)
	if err := H.BuildInput(J.structure, J.densityMap, J.Params); err != nil {
		return errDecorate(err, "Fit")
	}
	J.log("Fit").WithField("command", H.Command()).Info("Running")
	if err := H.Run(); err != nil {
		return errDecorate(err, "Fit")
	}
	return nil
}

//CreateOutput registers the fitted structure and the fitting trajectory.
func (J *Job) CreateOutput() error {
	var vol *Volume
	if J.Volume != nil {
		vol = J.Volume.Metadata()
	}
	J.Outputs = WrapOutputs(J.WorkDir, J.Params.Basename, vol)
	J.log("CreateOutput").WithField("file", J.Outputs.Fitted.FileName).Info("Fitted structure")
	return nil
}

//Run runs all the steps of the job, in order, and stops at the first that
//fails. In that case, J.Outputs is nil.
func (J *Job) Run() error {
	J.Outputs = nil
	steps := []struct {
		name string
		run  func() error
	}{
		{"ConvertInput", J.ConvertInput},
		{"Fit", J.Fit},
		{"CreateOutput", J.CreateOutput},
	}
	for _, s := range steps {
		J.log(s.name).Debug("Starting step")
		if err := s.run(); err != nil {
			J.Outputs = nil
			J.log(s.name).WithError(err).Error("Step failed")
			return errDecorate(err, "Run")
		}
	}
	return nil
}
