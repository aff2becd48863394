/*
 * animate.go, part of mmtk.
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
	"github.com/spf13/cobra"

	mmtk "github.com/jeetmj/MMTK"
)

var (
	animDCD   string
	animFirst int
	animLast  int
	animSkip  int
	animLoop  bool
)

var animateCmd = &cobra.Command{
	Use:   "animate FILE",
	Short: "Animate a trajectory",
	Long: `Animate displays a trajectory with the configured viewer, which must
be one of the programs with animation support (vmd, xmol, imol).

FILE is a multi-MODEL PDB file carrying the whole trajectory, or, with
--dcd, the reference structure whose trajectory frames come from the
DCD file. --first, --last and --skip select the frames shown: a
negative --last counts from the end, and 0 means the full length.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnimate,
}

func init() {
	animateCmd.Flags().StringVar(&animDCD, "dcd", "",
		"DCD trajectory matching the reference structure in FILE")
	animateCmd.Flags().IntVar(&animFirst, "first", 0,
		"first frame shown")
	animateCmd.Flags().IntVar(&animLast, "last", 0,
		"first frame not shown (0: full length, negative: from the end)")
	animateCmd.Flags().IntVar(&animSkip, "skip", 1,
		"distance between consecutive frames shown")
	animateCmd.Flags().BoolVar(&animLoop, "loop", false,
		"loop the animation instead of playing it once")
	rootCmd.AddCommand(animateCmd)
}

func runAnimate(cmd *cobra.Command, args []string) error {
	viewer, err := newViewer()
	if err != nil {
		return err
	}
	var traj *mmtk.Trajectory
	if animDCD != "" {
		u, err := mmtk.PDBRead(args[0])
		if err != nil {
			return err
		}
		traj, err = mmtk.ReadDCD(u, animDCD)
		if err != nil {
			return err
		}
	} else {
		traj, err = mmtk.ReadPDBTrajectory(args[0])
		if err != nil {
			return err
		}
	}
	if animLoop {
		confs := traj.Slice(animFirst, animLast, animSkip)
		return viewer.ShowSequence(traj.Universe(), confs, true, label)
	}
	return viewer.ShowTrajectory(traj, animFirst, animLast, animSkip, nil, label)
}
