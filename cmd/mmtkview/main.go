/*
 * main.go, part of mmtk.
 *
 *
 * Copyright 2024 The mmtk developers.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public
 * License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

//mmtkview displays molecular structures and trajectories with external
//visualization programs.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jeetmj/MMTK/visual"
)

var (
	version = "dev"

	cfgFile    string
	pdbViewer  string
	vrmlViewer string
	tempDir    string
	label      string
)

var rootCmd = &cobra.Command{
	Use:   "mmtkview",
	Short: "Display molecules and trajectories with external viewers",
	Long: `mmtkview writes molecular structures to temporary files and opens
them with an external visualization program.

The viewers come from the PDBVIEWER and VRMLVIEWER environment
variables, each naming an executable, from a TOML settings file, or
from flags; flags win over the file, and the file over the
environment. If the PDB viewer is one of the known programs (vmd,
xmol, imol), trajectories and mode oscillations can be animated.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"TOML settings file with pdb_viewer, vrml_viewer and temp_dir keys")
	rootCmd.PersistentFlags().StringVar(&pdbViewer, "pdb-viewer", "",
		"executable used to view PDB files")
	rootCmd.PersistentFlags().StringVar(&vrmlViewer, "vrml-viewer", "",
		"executable used to view VRML files")
	rootCmd.PersistentFlags().StringVar(&tempDir, "tempdir", "",
		"directory for temporary files (default: the system one)")
	rootCmd.PersistentFlags().StringVarP(&label, "label", "l", "",
		"description passed to interfaces that can use one")
}

//newViewer resolves the settings layers and builds the viewer.
func newViewer() (*visual.Viewer, error) {
	s := visual.EnvSettings()
	if cfgFile != "" {
		fs, err := visual.ReadSettings(cfgFile)
		if err != nil {
			return nil, err
		}
		if fs.PDBViewer != "" {
			s.PDBViewer = fs.PDBViewer
		}
		if fs.VRMLViewer != "" {
			s.VRMLViewer = fs.VRMLViewer
		}
		if fs.TempDir != "" {
			s.TempDir = fs.TempDir
		}
	}
	if pdbViewer != "" {
		s.PDBViewer = pdbViewer
	}
	if vrmlViewer != "" {
		s.VRMLViewer = vrmlViewer
	}
	if tempDir != "" {
		s.TempDir = tempDir
	}
	return visual.NewFromSettings(s), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
