/*
 * doc.go, part of mmtk.
 *
 * Copyright 2024 The mmtk developers
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

/*Package mmtk is the main package of the MMTK-for-Go library: the object
model of the Molecular Modelling Toolkit plus the plumbing needed to hand
chemical systems to external visualization programs.


	**Capabilities**

    Universes (full scenes of atoms with one or more configurations and an
	optional periodic cell) and ordered selections within them.

    Reads and writes PDB files, including multi-MODEL files, with
	transparent gzip compression when the name ends in ".gz".

    Writes VRML97 (".wrl") scene files of element-colored spheres.

    Reads and writes DCD binary trajectories (the format read by VMD and
	written by CHARMM/NAMD/X-PLOR), through the traj/dcd subpackage.

    Trajectories over a universe, loadable from multi-MODEL PDB files or
	from a reference universe plus a DCD file.

    Normal modes (per-atom displacement vectors) and the arithmetic to
	build oscillation sequences from them.

    Launches external viewers (VMD, XMol, iMol, OS default openers or any
	user-configured program) on configurations, sequences, trajectories and
	normal-mode oscillations, through the visual subpackage.


Coordinates are held in the v3.Matrix type of the v3 subpackage, based on
gonum.org/v1/gonum/mat, with one row per point in space. All lengths are in
Angstroms.*/
package mmtk
