/*
 * show.go, part of mmtk.
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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	mmtk "github.com/jeetmj/MMTK"
)

var (
	showFormat string
	showFrame  int
)

var showCmd = &cobra.Command{
	Use:   "show FILE",
	Short: "Display one configuration of a structure",
	Long: `Show reads a structure from a PDB file (gzip-compressed or not) and
displays it with the configured viewer. For files with several MODEL
blocks, --frame picks the configuration shown.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "pdb",
		"format handed to the viewer (pdb or vrml)")
	showCmd.Flags().IntVar(&showFrame, "frame", 0,
		"index of the configuration to show")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	viewer, err := newViewer()
	if err != nil {
		return err
	}
	u, err := mmtk.PDBRead(args[0])
	if err != nil {
		return err
	}
	if showFrame < 0 || showFrame >= u.LenFrames() {
		return fmt.Errorf("frame %d out of range: %s has %d configurations",
			showFrame, args[0], u.LenFrames())
	}
	u.SetCurrent(showFrame)
	return viewer.ShowConfiguration(u, nil, showFormat, label)
}
