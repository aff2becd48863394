/*
 * universe.go, part of mmtk.
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
	"strings"

	v3 "github.com/jeetmj/MMTK/v3"
)

/**Note: several functions here panic instead of returning errors. They are
 * "fundamental" functions whose misuse means the program is most likely
 * wrong and should crash, rather than recoverable runtime conditions.**/

//Atom contains the static properties of one atom. Coordinates are not
//here: they live in per-configuration matrices owned by the universe.
type Atom struct {
	Name      string //PDB-style atom name, e.g. "CA"
	ID        int
	MolName   string //residue or molecule name, e.g. "ALA"
	MolID     int
	Chain     string
	Occupancy float64
	Bfactor   float64
	Symbol    string
	Het       bool //is this a HETATM in the pdb file?
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic(ErrNilData)
	}
	at := *A
	return &at
}

//Universe is a full scene: an ordered set of atoms plus one or more
//configurations (snapshots of all atom positions), and an optional
//periodic cell. The configuration of index current is "the" configuration
//of the universe at any given time.
type Universe struct {
	atoms   []*Atom
	coords  []*v3.Matrix
	current int
	cell    *v3.Matrix //3 basis vectors, one per row. nil for a non-periodic universe.
}

//NewUniverse builds a universe from atoms and at least one configuration.
//Every configuration must have exactly one vector per atom.
func NewUniverse(atoms []*Atom, frames ...*v3.Matrix) (*Universe, error) {
	if atoms == nil || len(frames) == 0 {
		return nil, CError{"universe needs atoms and at least one configuration", []string{"NewUniverse"}}
	}
	for i, f := range frames {
		if f == nil || f.NVecs() != len(atoms) {
			return nil, CError{fmt.Sprintf("configuration %d does not match the %d atoms", i, len(atoms)), []string{"NewUniverse"}}
		}
	}
	U := new(Universe)
	U.atoms = atoms
	U.coords = frames
	return U, nil
}

//Len returns the number of atoms in the universe.
func (U *Universe) Len() int {
	return len(U.atoms)
}

//Atom returns the Atom corresponding to the index i.
//Panics if out of range.
func (U *Universe) Atom(i int) *Atom {
	if i >= U.Len() {
		panic(ErrAtomOutOfBounds)
	}
	return U.atoms[i]
}

//Universe returns the universe itself, so a full scene satisfies the same
//Viewable contract as its subsets.
func (U *Universe) Universe() *Universe {
	return U
}

//Configuration returns the current configuration of the universe.
func (U *Universe) Configuration() *v3.Matrix {
	return U.coords[U.current]
}

//Frame returns the configuration of index i. Panics if out of range.
func (U *Universe) Frame(i int) *v3.Matrix {
	if i < 0 || i >= len(U.coords) {
		panic(ErrFrameOutOfBounds)
	}
	return U.coords[i]
}

//LenFrames returns the number of configurations stored in the universe.
func (U *Universe) LenFrames() int {
	return len(U.coords)
}

//Current returns the index of the current configuration.
func (U *Universe) Current() int {
	if U == nil {
		return -1
	}
	return U.current
}

//SetCurrent sets the current configuration to the one of index i.
//Panics if out of range.
func (U *Universe) SetCurrent(i int) {
	if i < 0 || i >= len(U.coords) {
		panic(ErrFrameOutOfBounds)
	}
	U.current = i
}

//AddFrame appends a configuration to the universe. It checks that the
//number of vectors matches the number of atoms.
func (U *Universe) AddFrame(newframe *v3.Matrix) {
	if newframe == nil {
		panic(ErrNilData)
	}
	if U.Len() != newframe.NVecs() {
		panic(PanicMsg(fmt.Sprintf("mmtk: wrong number of coordinates (%d) for %d atoms", newframe.NVecs(), U.Len())))
	}
	U.coords = append(U.coords, newframe)
}

//Indices returns the universe indexes of the atoms, 0 to Len()-1.
func (U *Universe) Indices() []int {
	ret := make([]int, U.Len())
	for i := range ret {
		ret[i] = i
	}
	return ret
}

//Cell returns the basis vectors of the periodic cell, one per row, or nil
//for a non-periodic universe.
func (U *Universe) Cell() *v3.Matrix {
	return U.cell
}

//SetCell makes the universe periodic with the given 3 basis vectors, one
//per row. A nil cell makes the universe non-periodic.
func (U *Universe) SetCell(cell *v3.Matrix) error {
	if cell != nil && cell.NVecs() != 3 {
		return CError{"a periodic cell takes exactly 3 basis vectors", []string{"SetCell"}}
	}
	U.cell = cell
	return nil
}

//Select returns a Selection containing the atoms of U whose indexes are
//given in indices, in that order. The selection shares atoms and
//coordinates with the universe; it is a view, not a copy.
func (U *Universe) Select(indices []int) (*Selection, error) {
	for k, j := range indices {
		if j < 0 || j >= U.Len() {
			return nil, CError{fmt.Sprintf("index %d (position %d) out of range", j, k), []string{"Select"}}
		}
	}
	return &Selection{u: U, indices: indices}, nil
}

//WriteToFile serializes the universe at conf (nil meaning the current
//configuration) into path, in the given format ("pdb", "vrml" or a dotted
//variant of either).
func (U *Universe) WriteToFile(path string, conf *v3.Matrix, format string) error {
	if conf == nil {
		conf = U.Configuration()
	}
	if conf.NVecs() != U.Len() {
		return CError{fmt.Sprintf("configuration has %d vectors for %d atoms", conf.NVecs(), U.Len()), []string{"Universe.WriteToFile"}}
	}
	err := writeFormatted(path, conf, U, format)
	if err != nil {
		return errDecorate(err, "Universe.WriteToFile")
	}
	return nil
}

//Selection is a subset of the atoms of a universe, in a caller-defined
//order. It satisfies the same Viewable contract as the universe itself.
type Selection struct {
	u       *Universe
	indices []int
}

//Len returns the number of atoms in the selection.
func (S *Selection) Len() int {
	return len(S.indices)
}

//Atom returns the Atom corresponding to the index i of the selection.
//Panics if out of range.
func (S *Selection) Atom(i int) *Atom {
	if i >= S.Len() {
		panic(ErrAtomOutOfBounds)
	}
	return S.u.atoms[S.indices[i]]
}

//Universe returns the universe the selection belongs to.
func (S *Selection) Universe() *Universe {
	return S.u
}

//Indices returns the universe indexes of the selected atoms.
func (S *Selection) Indices() []int {
	return S.indices
}

//WriteToFile serializes the selection at conf into path in the given
//format. conf may be a full-universe configuration, from which the
//selection extracts its own rows, an already-extracted matrix with one
//vector per selected atom, or nil for the universe's current configuration.
func (S *Selection) WriteToFile(path string, conf *v3.Matrix, format string) error {
	if conf == nil {
		conf = S.u.Configuration()
	}
	switch conf.NVecs() {
	case S.u.Len():
		sub := v3.Zeros(S.Len())
		if err := sub.SomeVecsSafe(conf, S.indices); err != nil {
			return errDecorate(err, "Selection.WriteToFile")
		}
		conf = sub
	case S.Len():
		//already extracted
	default:
		return CError{fmt.Sprintf("configuration has %d vectors: want %d (universe) or %d (selection)", conf.NVecs(), S.u.Len(), S.Len()), []string{"Selection.WriteToFile"}}
	}
	err := writeFormatted(path, conf, S, format)
	if err != nil {
		return errDecorate(err, "Selection.WriteToFile")
	}
	return nil
}

//writeFormatted dispatches to the writer for the effective format, the
//part of the lowercased format string before the first ".".
func writeFormatted(path string, conf *v3.Matrix, mol Atomer, format string) error {
	format = strings.ToLower(format)
	effective, _, _ := strings.Cut(format, ".")
	switch effective {
	case "pdb":
		return PDBWrite(path, conf, mol, nil)
	case "vrml":
		return VRMLWrite(path, conf, mol)
	default:
		return CError{fmt.Sprintf("no writer for format %q", format), []string{"writeFormatted"}}
	}
}

//IsAlphaCarbonOnly returns whether every atom of the object is a CA alpha
//carbon, i.e. whether the object is a backbone-only chain that viewers
//should draw with a reduced representation.
func IsAlphaCarbonOnly(mol Atomer) bool {
	if mol.Len() == 0 {
		return false
	}
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		if at.Name != "CA" || at.Symbol == "Ca" {
			return false
		}
	}
	return true
}
