/*
 * params.go, part of goimodfit.
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
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

//CGModel is the coarse-grained model used for the normal mode analysis.
//The set of models is closed: CGCA, CG3BB2R, CGFullAtom and CGNCAC.
type CGModel interface {
	//Index is the number imodfit_mkl uses for the model.
	Index() int
	String() string
	cgModel()
}

//CGCA uses only the C-alpha atoms.
type CGCA struct{}

//CG3BB2R uses 3 backbone atoms and up to 2 side chain pseudo-atoms per residue.
type CG3BB2R struct{}

//CGFullAtom uses all the heavy atoms.
type CGFullAtom struct{}

//CGNCAC uses the N, CA and C backbone atoms.
type CGNCAC struct{}

func (CGCA) Index() int           { return 0 }
func (CGCA) String() string       { return "CA" }
func (CGCA) cgModel()             {}
func (CG3BB2R) Index() int        { return 1 }
func (CG3BB2R) String() string    { return "3BB2R" }
func (CG3BB2R) cgModel()          {}
func (CGFullAtom) Index() int     { return 2 }
func (CGFullAtom) String() string { return "Full-Atom" }
func (CGFullAtom) cgModel()       {}
func (CGNCAC) Index() int         { return 3 }
func (CGNCAC) String() string     { return "NCAC" }
func (CGNCAC) cgModel()           {}

//CGModels contains all the coarse-grained models, in index order.
var CGModels = []CGModel{CGCA{}, CG3BB2R{}, CGFullAtom{}, CGNCAC{}}

//ParseCGModel returns the model with the given index or name. Names are not
//case sensitive and the dash in "Full-Atom" is optional.
func ParseCGModel(s string) (CGModel, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		if i < 0 || i >= len(CGModels) {
			return nil, Error{message: ErrInvalidParams, program: Name, additional: fmt.Sprintf("no coarse-grained model with index %d", i), deco: []string{"ParseCGModel"}, critical: true}
		}
		return CGModels[i], nil
	}
	norm := func(n string) string { return strings.ToLower(strings.ReplaceAll(n, "-", "")) }
	for _, v := range CGModels {
		if norm(v.String()) == norm(s) {
			return v, nil
		}
	}
	return nil, Error{message: ErrInvalidParams, program: Name, additional: fmt.Sprintf("unknown coarse-grained model %q", s), deco: []string{"ParseCGModel"}, critical: true}
}

//Params contains the options for a fitting with imodfit_mkl.
type Params struct {
	//Resolution of the map, in Å.
	Resolution int `mapstructure:"resolution" validate:"gt=0"`
	//Density threshold, 0 for none.
	Cutoff  float64 `mapstructure:"cutoff"`
	MaxIter int     `mapstructure:"max_iter" validate:"gt=0"`
	CGModel CGModel `mapstructure:"-" validate:"required"`
	//Also fit the omega dihedral angles.
	Dihedral bool `mapstructure:"dihedral"`
	//Ratio of modes to use if < 1, otherwise number of modes.
	ModesRange        float64 `mapstructure:"modes_range" validate:"gte=0"`
	ExcitedModesRange float64 `mapstructure:"excited_modes_range" validate:"gte=0"`
	Basename          string  `mapstructure:"basename" validate:"required,basename"`
	//Full atom output, even with coarse-grained models.
	FullAtom bool `mapstructure:"full_atom"`
	//Save the fitting trajectory.
	Movie bool `mapstructure:"movie"`
	//Appended verbatim to the command line.
	Extra string `mapstructure:"extra"`
}

//DefaultParams returns a Params with the iMODfit defaults.
func DefaultParams() *Params {
	return &Params{
		Resolution:        10,
		Cutoff:            0,
		MaxIter:           10000,
		CGModel:           CGFullAtom{},
		ModesRange:        0.2,
		ExcitedModesRange: 0.02,
		Basename:          DefaultBasename,
		Movie:             true,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("basename", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s != "." && s != ".." && s == filepath.Base(s) && !strings.ContainsAny(s, "/\\ \t\n")
	})
	return v
}

//Validate returns an error describing all the invalid fields of P, or nil.
func (P *Params) Validate() error {
	err := validate.Struct(P)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return newError(ErrInvalidParams, Name, "", err, "Validate")
	}
	msgs := make([]string, 0, len(verrs))
	for _, v := range verrs {
		if v.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must be %s %s (got %v)", v.Field(), v.Tag(), v.Param(), v.Value()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s fails %q (got %v)", v.Field(), v.Tag(), v.Value()))
	}
	return Error{message: ErrInvalidParams, program: Name, additional: strings.Join(msgs, "; "), deco: []string{"Validate"}, critical: true, cause: err}
}
