/*
 * vrml.go, part of mmtk.
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

//vrmlSphereScale shrinks van der Waals radii for display, so that dense
//chains remain readable in the scene.
const vrmlSphereScale = 0.25

//VRMLWrite writes mol at the coordinates coords to path as a VRML97 scene
//(a ".wrl" file): one sphere per atom, element-colored, with a scaled van
//der Waals radius. Paths ending in ".gz" are gzip-compressed.
func VRMLWrite(path string, coords *v3.Matrix, mol Atomer) error {
	if coords == nil || mol == nil {
		return CError{string(ErrNilData), []string{"VRMLWrite"}}
	}
	if coords.NVecs() != mol.Len() {
		return CError{fmt.Sprintf("coordinates for %d atoms given for a molecule of %d", coords.NVecs(), mol.Len()), []string{"VRMLWrite"}}
	}
	out, closer, err := createMaybeGz(path)
	if err != nil {
		return errDecorate(err, "VRMLWrite")
	}
	fmt.Fprint(out, "#VRML V2.0 utf8\n")
	fmt.Fprintf(out, "# %d atoms, written with mmtk\n", mol.Len())
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		col := at.color()
		rad := at.VdwRad()
		if rad == 0 {
			rad = symbolVdwrad["C"]
		}
		_, err := fmt.Fprintf(out,
			"Transform { translation %.3f %.3f %.3f children Shape { appearance Appearance { material Material { diffuseColor %.2f %.2f %.2f } } geometry Sphere { radius %.3f } } }\n",
			coords.At(i, 0), coords.At(i, 1), coords.At(i, 2),
			col[0], col[1], col[2], rad*vrmlSphereScale)
		if err != nil {
			closer()
			return CError{err.Error(), []string{"VRMLWrite"}}
		}
	}
	if err := closer(); err != nil {
		return CError{err.Error(), []string{"VRMLWrite"}}
	}
	return nil
}
