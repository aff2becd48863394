/*
 * errors.go, part of mmtk.
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

//CError is the concrete error type for the package. It implements the
//Error interface, so callers up the stack can decorate it with their names.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

//Decorate adds dec to the decoration trail of the error and returns the
//resulting trail. An empty dec only retrieves the trail.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//errDecorate asserts that err implements Error, decorates it with the
//caller's name and returns it. It panics on a non-conforming error, as
//that means the program itself is wrong.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//PanicMsg is a message used for panics on fundamental misuses, even though
//it does satisfy the error interface. For recoverable conditions use CError.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilData          = PanicMsg("mmtk: nil data given")
	ErrAtomOutOfBounds  = PanicMsg("mmtk: requested Atom out of bounds")
	ErrFrameOutOfBounds = PanicMsg("mmtk: requested frame out of bounds")
)
