/*
 * root.go, part of goimodfit.
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
	"fmt"

	imodfit "github.com/rmera/goimodfit"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//Version of the imodfit command.
const Version = "0.3.0"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var configFile string
	rootCmd := &cobra.Command{
		Use:           "imodfit",
		Short:         "Flexible fitting of atomic structures into EM maps with iMODfit",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(configFile); err != nil {
				return err
			}
			return setupLogger(v.GetString("log_level"))
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default: imodfit.yaml in . or $HOME/.config/imodfit)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		NewInstallCommand(),
		NewFitCommand(),
		NewViewCommand(),
		NewMapStatsCommand(),
		NewExportMovieCommand(),
		NewCiteCommand(),
		NewVersionCommand(),
	)
	return rootCmd
}

func setupLogger(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(lvl)
	imodfit.SetLogger(logger)
	return nil
}

// NewCiteCommand creates the cite command
func NewCiteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cite",
		Short: "Print the reference to cite when using iMODfit",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), imodfit.Citation)
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			P := plugin()
			fmt.Fprintf(cmd.OutOrStdout(), "imodfit %s (%s %s, %s)\n", Version, imodfit.Name, P.Version, P.Home())
		},
	}
}
