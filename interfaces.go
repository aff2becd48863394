/*
 * interfaces.go, part of mmtk.
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

package mmtk

import (
	v3 "github.com/jeetmj/MMTK/v3"
)

//Atomer is the interface for any container of atoms, whether a full
//universe or a selection within one.
type Atomer interface {
	//Atom returns the Atom corresponding to the index i of the container.
	//It panics if the atom is out of range.
	Atom(i int) *Atom

	//Len returns the number of atoms in the container.
	Len() int
}

//Viewable is the contract between chemical objects and the visual package:
//anything that knows its atoms, its owning universe, and how to serialize
//itself to a structure or scene file can be handed to an external viewer.
type Viewable interface {
	Atomer

	//Universe returns the full scene the object belongs to. A universe
	//returns itself.
	Universe() *Universe

	//Indices returns the universe indexes of the object's atoms, in the
	//object's own order.
	Indices() []int

	//WriteToFile serializes the object at the given configuration into
	//path. A nil conf means the object's current configuration. The format
	//is a lowercase string ("pdb", "vrml") or a dotted variant whose prefix
	//before the first "." is the effective format.
	WriteToFile(path string, conf *v3.Matrix, format string) error
}

//Traj is an interface for trajectory sources, i.e. absolutely anything
//that can produce a sequence of configurations for a known number of atoms.
type Traj interface {
	//Readable returns true if the trajectory is fit to be read.
	Readable() bool

	//Next reads the next frame into the given matrix, which must have
	//NVecs == Len(). If given a box slice of at least 3 elements, the
	//dimensions of the unit cell are filled in when the source has them.
	Next(output *v3.Matrix, box ...[]float64) error

	//Len returns the number of atoms per frame.
	Len() int
}

//Errors

//Error is the interface for errors that all packages in this library
//implement. The Decorate method allows adding and retrieving info from the
//error without changing its type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Decorate appends the given string, typically the caller's name, to the decoration trail and returns the trail. An empty string only retrieves.
}

//TrajError is the interface for errors in trajectories.
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

//LastFrameError has a useless function to distinguish the harmless
//end-of-trajectory errors so they can be filtered in a typeswitch that
//looks for this interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination()
}
