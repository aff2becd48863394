/*
 * traj.go, part of mmtk.
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
	"fmt"

	"github.com/jeetmj/MMTK/traj/dcd"
	v3 "github.com/jeetmj/MMTK/v3"
)

//Trajectory is a stored, ordered sequence of configurations of a universe.
type Trajectory struct {
	u      *Universe
	frames []*v3.Matrix
}

//NewTrajectory builds a trajectory over u from the given frames, which
//must each hold one vector per atom of u.
func NewTrajectory(u *Universe, frames []*v3.Matrix) (*Trajectory, error) {
	if u == nil || len(frames) == 0 {
		return nil, CError{"a trajectory needs a universe and at least one frame", []string{"NewTrajectory"}}
	}
	for i, f := range frames {
		if f == nil || f.NVecs() != u.Len() {
			return nil, CError{fmt.Sprintf("frame %d does not match the %d atoms of the universe", i, u.Len()), []string{"NewTrajectory"}}
		}
	}
	return &Trajectory{u: u, frames: frames}, nil
}

//Universe returns the universe the trajectory belongs to.
func (T *Trajectory) Universe() *Universe {
	return T.u
}

//Len returns the number of configurations in the trajectory.
func (T *Trajectory) Len() int {
	return len(T.frames)
}

//Configuration returns the configuration of index i.
//Panics if out of range.
func (T *Trajectory) Configuration(i int) *v3.Matrix {
	if i < 0 || i >= len(T.frames) {
		panic(ErrFrameOutOfBounds)
	}
	return T.frames[i]
}

//Frames returns the underlying frame slice, without copying.
func (T *Trajectory) Frames() []*v3.Matrix {
	return T.frames
}

//Slice returns the configurations of indexes [first:last:skip]. A last
//of 0, or past the end, means the trajectory's full length; a negative
//first or last counts from the end. A skip under 1 becomes 1. The
//returned configurations are shared with the trajectory, not copied.
func (T *Trajectory) Slice(first, last, skip int) []*v3.Matrix {
	n := len(T.frames)
	switch {
	case last == 0 || last > n:
		last = n
	case last < 0:
		last = n + last
	}
	if first < 0 {
		first = n + first
	}
	if first < 0 {
		first = 0
	}
	if skip <= 0 {
		skip = 1
	}
	ret := make([]*v3.Matrix, 0, n)
	for i := first; i < last; i += skip {
		ret = append(ret, T.frames[i])
	}
	return ret
}

//ReadPDBTrajectory reads a multi-MODEL PDB file as a trajectory: the atoms
//and the first model form the universe, and every model is a frame.
func ReadPDBTrajectory(path string) (*Trajectory, error) {
	U, err := PDBRead(path)
	if err != nil {
		return nil, errDecorate(err, "ReadPDBTrajectory")
	}
	T, err := NewTrajectory(U, U.coords)
	if err != nil {
		return nil, errDecorate(err, "ReadPDBTrajectory")
	}
	return T, nil
}

//ReadDCD loads every frame of the DCD file in path as a trajectory over
//the universe u, whose atoms must match the DCD's atom count.
func ReadDCD(u *Universe, path string) (*Trajectory, error) {
	if u == nil {
		return nil, CError{"a trajectory needs a universe", []string{"ReadDCD"}}
	}
	d, err := dcd.New(path)
	if err != nil {
		return nil, errDecorate(err, "ReadDCD")
	}
	if d.Len() != u.Len() {
		return nil, CError{fmt.Sprintf("DCD %s holds %d atoms per frame, universe has %d", path, d.Len(), u.Len()), []string{"ReadDCD"}}
	}
	frames := make([]*v3.Matrix, 0, 100)
	for {
		f := v3.Zeros(u.Len())
		err := d.Next(f)
		if err != nil {
			if _, ok := err.(LastFrameError); ok {
				break
			}
			return nil, errDecorate(err, "ReadDCD")
		}
		frames = append(frames, f)
	}
	T, err := NewTrajectory(u, frames)
	if err != nil {
		return nil, errDecorate(err, "ReadDCD")
	}
	return T, nil
}
