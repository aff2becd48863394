/*
 * errors.go, part of mmtk.
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

package visual

import (
	"fmt"

	mmtk "github.com/jeetmj/MMTK"
)

//Error is the general type for errors preparing files for, or
//launching, external viewers. It implements the mmtk Error interface.
type Error struct {
	message string
	program string //canonical name of the viewer involved, or an empty string.
	deco    []string
}

func (err Error) Error() string {
	if err.program == "" {
		return fmt.Sprintf("visual error: %s", err.message)
	}
	return fmt.Sprintf("visual error (viewer %s): %s", err.program, err.message)
}

//Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	//Even though the receiver is not a pointer, the method can alter
	//it, as err.deco is a slice, and hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Viewer returns the canonical name of the viewer the error relates to,
//or an empty string when no viewer was involved.
func (err Error) Viewer() string { return err.program }

//Errors the package returns.
const (
	EmptySequence    = "Empty configuration sequence"
	NilConfiguration = "Given nil configuration"
)

//decorate adds the caller's name to errors that support decoration,
//and wraps any other error in a package Error.
func decorate(err error, caller string) error {
	if err2, ok := err.(mmtk.Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return Error{message: err.Error(), deco: []string{caller}}
}
