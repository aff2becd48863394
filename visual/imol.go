/*
 * imol.go, part of mmtk.
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
	"strings"

	mmtk "github.com/jeetmj/MMTK"
	v3 "github.com/jeetmj/MMTK/v3"
)

//iMol is macOS software, launched through "open -a". It animates the
//models of a multi-model PDB file by itself, so a sequence becomes a
//single combined file and no control script is needed. The files are
//left behind: there is no hook to delete them once iMol has read them.

//imolConfiguration displays a single configuration with iMol. Formats
//other than PDB go back to the generic path.
func (V *Viewer) imolConfiguration(entry Entry, obj mmtk.Viewable, conf *v3.Matrix, format, label string) error {
	format = strings.ToLower(format)
	if viewerFormat(format) != "pdb" {
		return V.genericConfiguration(obj, conf, format, label)
	}
	filename, err := V.tempFile(".pdb")
	if err != nil {
		return Error{err.Error(), entry.Name, []string{"imolConfiguration"}}
	}
	if err := obj.WriteToFile(filename, conf, format); err != nil {
		discard(filename)
		return decorate(err, "imolConfiguration")
	}
	return V.imolOpen(entry, filename)
}

//imolSequence writes the whole sequence as one multi-model PDB file
//and opens it with iMol.
func (V *Viewer) imolSequence(entry Entry, obj mmtk.Viewable, confs []*v3.Matrix, periodic bool, label string) error {
	frames, err := objectFrames(obj, confs)
	if err != nil {
		return decorate(err, "imolSequence")
	}
	filename, err := V.tempFile(".pdb")
	if err != nil {
		return Error{err.Error(), entry.Name, []string{"imolSequence"}}
	}
	if err := mmtk.MultiPDBWrite(filename, frames, obj); err != nil {
		discard(filename)
		return decorate(err, "imolSequence")
	}
	return V.imolOpen(entry, filename)
}

func (V *Viewer) imolOpen(entry Entry, filename string) error {
	if _, err := V.runner.Start([]string{"open", "-a", entry.Path, filename}); err != nil {
		discard(filename)
		return Error{err.Error(), entry.Name, []string{"imolOpen"}}
	}
	return nil
}

//objectFrames maps each configuration onto the object's own atoms:
//full-universe configurations get the object's rows extracted, and
//already object-sized ones pass through unchanged.
func objectFrames(obj mmtk.Viewable, confs []*v3.Matrix) ([]*v3.Matrix, error) {
	u := obj.Universe()
	ret := make([]*v3.Matrix, 0, len(confs))
	for i, conf := range confs {
		switch {
		case conf == nil:
			return nil, Error{NilConfiguration, "", []string{"objectFrames"}}
		case conf.NVecs() == obj.Len():
			ret = append(ret, conf)
		case conf.NVecs() == u.Len():
			sub := v3.Zeros(obj.Len())
			if err := sub.SomeVecsSafe(conf, obj.Indices()); err != nil {
				return nil, decorate(err, "objectFrames")
			}
			ret = append(ret, sub)
		default:
			return nil, Error{fmt.Sprintf("configuration %d has %d vectors for an object of %d atoms", i, conf.NVecs(), obj.Len()), "", []string{"objectFrames"}}
		}
	}
	return ret, nil
}
