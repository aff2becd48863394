/*
 * modes.go, part of mmtk.
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

	v3 "github.com/jeetmj/MMTK/v3"
)

//Mode is a normal mode of a universe: one displacement vector per atom,
//optionally with the vibrational frequency it was obtained at.
type Mode struct {
	u         *Universe
	disp      *v3.Matrix
	Frequency float64 //in 1/cm. Zero when unknown.
}

//NewMode builds a normal mode over u from the given per-atom displacement
//vectors.
func NewMode(u *Universe, displacements *v3.Matrix) (*Mode, error) {
	if u == nil || displacements == nil {
		return nil, CError{string(ErrNilData), []string{"NewMode"}}
	}
	if displacements.NVecs() != u.Len() {
		return nil, CError{fmt.Sprintf("%d displacement vectors for %d atoms", displacements.NVecs(), u.Len()), []string{"NewMode"}}
	}
	return &Mode{u: u, disp: displacements}, nil
}

//Universe returns the universe the mode belongs to.
func (M *Mode) Universe() *Universe {
	return M.u
}

//Displacements returns the per-atom displacement vectors of the mode.
func (M *Mode) Displacements() *v3.Matrix {
	return M.disp
}

//Displaced returns conf + factor*displacements as a new configuration.
//A nil conf means the universe's current configuration.
func (M *Mode) Displaced(conf *v3.Matrix, factor float64) (*v3.Matrix, error) {
	if conf == nil {
		conf = M.u.Configuration()
	}
	if conf.NVecs() != M.disp.NVecs() {
		return nil, CError{fmt.Sprintf("configuration has %d vectors, mode has %d", conf.NVecs(), M.disp.NVecs()), []string{"Displaced"}}
	}
	out := v3.Zeros(conf.NVecs())
	out.Scale(factor, M.disp)
	out.Add(out, conf)
	return out, nil
}
