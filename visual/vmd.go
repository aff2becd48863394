/*
 * vmd.go, part of mmtk.
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
	"os"
	"strings"

	mmtk "github.com/jeetmj/MMTK"
	"github.com/jeetmj/MMTK/traj/dcd"
	v3 "github.com/jeetmj/MMTK/v3"
)

//VMD is driven through a generated Tcl control script, launched with
//"vmd -nt -e script". The script loads the structure, sets up the
//animation, and ends by deleting the files it consumed. Deleting a
//script from inside its own interpreter fails on some hosts; there the
//script file is left behind, a known limitation.

//tclScript accumulates the control commands for one VMD launch.
type tclScript struct {
	lines []string
}

func (s *tclScript) add(format string, args ...interface{}) {
	s.lines = append(s.lines, fmt.Sprintf(format, args...))
}

func (s *tclScript) loadPDB(path string) {
	s.add("mol load pdb %s", tclPath(path))
}

//traceStyle switches to the reduced "trace" representation, the one
//that makes sense for backbone-only chains.
func (s *tclScript) traceStyle() {
	s.add("mol modstyle 0 all trace")
}

//whiteDummyNames recolors the numbered dummy atom names white.
func (s *tclScript) whiteDummyNames() {
	for i := 1; i <= 3; i++ {
		s.add("color Name %d white", i)
	}
}

func (s *tclScript) readPDBFrame(path string) {
	s.add("animate read pdb %s", tclPath(path))
}

func (s *tclScript) readDCD(path string) {
	s.add("animate read dcd %s", tclPath(path))
}

func (s *tclScript) playbackStyle(periodic bool) {
	if periodic {
		s.add("animate style loop")
	} else {
		s.add("animate style once")
	}
}

func (s *tclScript) play() {
	s.add("animate forward")
}

func (s *tclScript) deleteFile(path string) {
	s.add("file delete %s", tclPath(path))
}

//cellEdges draws the 12 edges of the periodic cell spanned by the
//basis vectors in cell (one per row), centered on the origin.
func (s *tclScript) cellEdges(cell *v3.Matrix) {
	a, b, c := rowVec(cell, 0), rowVec(cell, 1), rowVec(cell, 2)
	p := scaleVec(addVec(addVec(a, b), c), -0.5)
	pa, pb, pc := addVec(p, a), addVec(p, b), addVec(p, c)
	pab := addVec(pa, b)
	pac := addVec(pa, c)
	pbc := addVec(pb, c)
	pabc := addVec(pab, c)
	edges := [][2][3]float64{
		{p, pa}, {p, pb}, {pa, pab}, {pb, pab},
		{p, pc}, {pa, pac}, {pb, pbc}, {pab, pabc},
		{pc, pac}, {pc, pbc}, {pac, pabc}, {pbc, pabc},
	}
	for _, e := range edges {
		s.add("graphics 0 line {%f %f %f} {%f %f %f}",
			e[0][0], e[0][1], e[0][2], e[1][0], e[1][1], e[1][2])
	}
}

func (s *tclScript) writeTo(path string) error {
	return os.WriteFile(path, []byte(strings.Join(s.lines, "\n")+"\n"), 0644)
}

//tclPath escapes backslashes so Windows paths survive Tcl parsing.
func tclPath(path string) string {
	return strings.ReplaceAll(path, `\`, `\\`)
}

func rowVec(m *v3.Matrix, i int) [3]float64 {
	return [3]float64{m.At(i, 0), m.At(i, 1), m.At(i, 2)}
}

func addVec(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func scaleVec(a [3]float64, f float64) [3]float64 {
	return [3]float64{f * a[0], f * a[1], f * a[2]}
}

//vmdConfiguration displays a single configuration with VMD. Formats
//other than PDB go back to the generic path, as VMD is only wired up
//for PDB input here.
func (V *Viewer) vmdConfiguration(entry Entry, obj mmtk.Viewable, conf *v3.Matrix, format, label string) error {
	format = strings.ToLower(format)
	if viewerFormat(format) != "pdb" {
		return V.genericConfiguration(obj, conf, format, label)
	}
	filename, err := V.tempFile(".pdb")
	if err != nil {
		return Error{err.Error(), entry.Name, []string{"vmdConfiguration"}}
	}
	script, err := V.tempFile(".tcl")
	if err != nil {
		discard(filename)
		return Error{err.Error(), entry.Name, []string{"vmdConfiguration"}}
	}
	if err := obj.WriteToFile(filename, conf, format); err != nil {
		discard(filename, script)
		return decorate(err, "vmdConfiguration")
	}
	s := new(tclScript)
	s.loadPDB(filename)
	if mmtk.IsAlphaCarbonOnly(obj) {
		s.traceStyle()
	}
	s.whiteDummyNames()
	if cell := obj.Universe().Cell(); cell != nil {
		s.cellEdges(cell)
	}
	s.deleteFile(filename)
	if V.platform.CanDeleteRunningScript() {
		s.deleteFile(script)
	}
	if err := s.writeTo(script); err != nil {
		discard(filename, script)
		return Error{err.Error(), entry.Name, []string{"vmdConfiguration"}}
	}
	if _, err := V.runner.Start([]string{entry.Path, "-nt", "-e", script}); err != nil {
		discard(filename, script)
		return Error{err.Error(), entry.Name, []string{"vmdConfiguration"}}
	}
	return nil
}

//vmdSequence displays an animation with VMD. When the object covers
//the whole scene and the sequence is longer than two frames, it writes
//one reference structure plus a compact binary trajectory, which is
//much cheaper than one structure file per frame on long sequences;
//otherwise it writes one file per frame. Either way the generated
//script deletes the data files once loaded.
func (V *Viewer) vmdSequence(entry Entry, obj mmtk.Viewable, confs []*v3.Matrix, periodic bool, label string) error {
	u := obj.Universe()
	script, err := V.tempFile(".tcl")
	if err != nil {
		return Error{err.Error(), entry.Name, []string{"vmdSequence"}}
	}
	s := new(tclScript)
	var cleanup []string //data files the script deletes after loading them
	if obj.Len() == u.Len() && len(confs) > 2 {
		pdbfile, dcdfile, err := V.writeReferenceAndDCD(u, confs)
		if err != nil {
			discard(script)
			return decorate(err, "vmdSequence")
		}
		s.loadPDB(pdbfile)
		if mmtk.IsAlphaCarbonOnly(obj) {
			s.traceStyle()
		}
		s.readDCD(dcdfile)
		cleanup = []string{pdbfile, dcdfile}
	} else {
		files, err := V.writeFrameFiles(obj, confs)
		if err != nil {
			discard(script)
			return decorate(err, "vmdSequence")
		}
		s.loadPDB(files[0])
		for _, f := range files[1:] {
			s.readPDBFrame(f)
		}
		cleanup = files
	}
	s.playbackStyle(periodic)
	s.play()
	for _, f := range cleanup {
		s.deleteFile(f)
	}
	if V.platform.CanDeleteRunningScript() {
		s.deleteFile(script)
	}
	if err := s.writeTo(script); err != nil {
		discard(append(cleanup, script)...)
		return Error{err.Error(), entry.Name, []string{"vmdSequence"}}
	}
	if _, err := V.runner.Start([]string{entry.Path, "-nt", "-e", script}); err != nil {
		discard(append(cleanup, script)...)
		return Error{err.Error(), entry.Name, []string{"vmdSequence"}}
	}
	return nil
}

//writeReferenceAndDCD writes the first configuration as a PDB
//reference structure and the rest as a DCD trajectory.
func (V *Viewer) writeReferenceAndDCD(u *mmtk.Universe, confs []*v3.Matrix) (string, string, error) {
	pdbfile, err := V.tempFile(".pdb")
	if err != nil {
		return "", "", Error{err.Error(), "", []string{"writeReferenceAndDCD"}}
	}
	dcdfile, err := V.tempFile(".dcd")
	if err != nil {
		discard(pdbfile)
		return "", "", Error{err.Error(), "", []string{"writeReferenceAndDCD"}}
	}
	if err := u.WriteToFile(pdbfile, confs[0], "pdb"); err != nil {
		discard(pdbfile, dcdfile)
		return "", "", decorate(err, "writeReferenceAndDCD")
	}
	w, err := dcd.NewWriter(dcdfile, u.Len())
	if err != nil {
		discard(pdbfile, dcdfile)
		return "", "", decorate(err, "writeReferenceAndDCD")
	}
	for _, conf := range confs[1:] {
		if err := w.WNext(conf); err != nil {
			w.Close()
			discard(pdbfile, dcdfile)
			return "", "", decorate(err, "writeReferenceAndDCD")
		}
	}
	if err := w.Close(); err != nil {
		discard(pdbfile, dcdfile)
		return "", "", decorate(err, "writeReferenceAndDCD")
	}
	return pdbfile, dcdfile, nil
}

//writeFrameFiles writes one PDB file per configuration and returns the
//paths, in sequence order.
func (V *Viewer) writeFrameFiles(obj mmtk.Viewable, confs []*v3.Matrix) ([]string, error) {
	files := make([]string, 0, len(confs))
	for _, conf := range confs {
		f, err := V.tempFile(".pdb")
		if err != nil {
			discard(files...)
			return nil, Error{err.Error(), "", []string{"writeFrameFiles"}}
		}
		files = append(files, f)
		if err := obj.WriteToFile(f, conf, "pdb"); err != nil {
			discard(files...)
			return nil, decorate(err, "writeFrameFiles")
		}
	}
	return files, nil
}
