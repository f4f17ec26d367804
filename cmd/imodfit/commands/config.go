/*
 * config.go, part of goimodfit.
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

package commands

import (
	"errors"
	"fmt"
	"strings"

	imodfit "github.com/rmera/goimodfit"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var v = viper.New()

//loadConfig reads the configuration file, if any, and the IMODFIT_* environment variables.
//Command line flags, bound by each command, take precedence over both.
func loadConfig(configFile string) error {
	d := imodfit.DefaultParams()
	v.SetDefault("resolution", d.Resolution)
	v.SetDefault("cutoff", d.Cutoff)
	v.SetDefault("max_iter", d.MaxIter)
	v.SetDefault("cg_model", d.CGModel.String())
	v.SetDefault("dihedral", d.Dihedral)
	v.SetDefault("modes_range", d.ModesRange)
	v.SetDefault("excited_modes_range", d.ExcitedModesRange)
	v.SetDefault("basename", d.Basename)
	v.SetDefault("full_atom", d.FullAtom)
	v.SetDefault("movie", d.Movie)
	v.SetDefault("extra", d.Extra)
	v.SetDefault("log_level", "info")
	v.SetDefault("viewer", "vmd")

	v.SetEnvPrefix("IMODFIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("imodfit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/imodfit")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

//params returns the fitting parameters from the configuration.
func params() (*imodfit.Params, error) {
	P := imodfit.DefaultParams()
	if err := v.Unmarshal(P); err != nil {
		return nil, fmt.Errorf("failed to decode parameters: %w", err)
	}
	cg, err := imodfit.ParseCGModel(v.GetString("cg_model"))
	if err != nil {
		return nil, err
	}
	P.CGModel = cg
	return P, P.Validate()
}

//plugin returns the iMODfit installation from the environment and the configuration.
func plugin() *imodfit.Plugin {
	P := imodfit.NewPlugin()
	if root := v.GetString("em_root"); root != "" {
		P.EMRoot = root
	}
	if home := v.GetString("home"); home != "" {
		P.HomeDir = home
	}
	if dirs := v.GetStringSlice("mkl_dirs"); len(dirs) > 0 {
		P.MKLDirs = dirs
	}
	return P
}

//bindFlags binds the named flags to the configuration keys with the same name,
//with underscores instead of dashes. Flags are bound when their command runs, as
//several commands have flags for the same keys.
func bindFlags(fs *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		fl := fs.Lookup(name)
		if fl == nil {
			return fmt.Errorf("no flag %q", name)
		}
		if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), fl); err != nil {
			return err
		}
	}
	return nil
}
