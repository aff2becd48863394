/*
 * mmtk_test.go, part of mmtk.
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
	"math"
	"path/filepath"
	"testing"

	"github.com/jeetmj/MMTK/traj/dcd"
	v3 "github.com/jeetmj/MMTK/v3"
)

func TestSelectionWrite(Te *testing.T) {
	u := testProtein()
	sel, err := u.Select([]int{1, 3})
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := u.Select([]int{0, 99}); err == nil {
		Te.Error("selecting out-of-range atoms should give an error")
	}
	dir := Te.TempDir()
	//a full-universe configuration: the selection extracts its own rows.
	full := filepath.Join(dir, "full.pdb")
	if err := sel.WriteToFile(full, u.Configuration(), "pdb"); err != nil {
		Te.Fatal(err)
	}
	r, err := PDBRead(full)
	if err != nil {
		Te.Fatal(err)
	}
	if r.Len() != 2 {
		Te.Fatalf("wrote %d atoms, want the 2 selected ones", r.Len())
	}
	if r.Atom(0).Name != "O" || r.Atom(1).Name != "MG" {
		Te.Errorf("selected atoms written as %q and %q, want O and MG", r.Atom(0).Name, r.Atom(1).Name)
	}
	for k, idx := range sel.Indices() {
		for j := 0; j < 3; j++ {
			got := r.Configuration().At(k, j)
			want := u.Configuration().At(idx, j)
			if math.Abs(got-want) > 1e-3 {
				Te.Errorf("selected atom %d coordinate %d is %f, want %f", k, j, got, want)
			}
		}
	}
	//an already-extracted configuration goes through as-is.
	extracted, _ := v3.NewMatrix([]float64{
		7.0, 8.0, 9.0,
		-1.0, -2.0, -3.0,
	})
	own := filepath.Join(dir, "own.pdb")
	if err := sel.WriteToFile(own, extracted, "pdb"); err != nil {
		Te.Fatal(err)
	}
	r, err = PDBRead(own)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(r.Configuration().At(0, 0)-7.0) > 1e-3 || math.Abs(r.Configuration().At(1, 2)+3.0) > 1e-3 {
		Te.Error("an extracted configuration should be written unchanged")
	}
	//anything else is a size mismatch.
	if err := sel.WriteToFile(filepath.Join(dir, "bad.pdb"), v3.Zeros(3), "pdb"); err == nil {
		Te.Error("a configuration matching neither universe nor selection should give an error")
	}
}

func TestIsAlphaCarbonOnly(Te *testing.T) {
	ca := func(id int) *Atom {
		return &Atom{Name: "CA", ID: id, MolName: "ALA", MolID: id, Chain: "A", Symbol: "C"}
	}
	backbone, err := NewUniverse([]*Atom{ca(1), ca(2), ca(3)}, v3.Zeros(3))
	if err != nil {
		Te.Fatal(err)
	}
	if !IsAlphaCarbonOnly(backbone) {
		Te.Error("an all-CA chain should count as alpha-carbon only")
	}
	mixed, _ := NewUniverse([]*Atom{ca(1), {Name: "N", Symbol: "N"}}, v3.Zeros(2))
	if IsAlphaCarbonOnly(mixed) {
		Te.Error("a chain with non-CA atoms should not count as alpha-carbon only")
	}
	//a calcium ion is also named CA, but it is no alpha carbon.
	calcium, _ := NewUniverse([]*Atom{{Name: "CA", Symbol: "Ca"}}, v3.Zeros(1))
	if IsAlphaCarbonOnly(calcium) {
		Te.Error("a calcium ion should not count as an alpha carbon")
	}
}

func TestTrajectorySlice(Te *testing.T) {
	u, err := NewUniverse([]*Atom{{Name: "CA", Symbol: "C"}}, v3.Zeros(1))
	if err != nil {
		Te.Fatal(err)
	}
	frames := make([]*v3.Matrix, 10)
	for i := range frames {
		f := v3.Zeros(1)
		f.Set(0, 0, float64(i))
		frames[i] = f
	}
	traj, err := NewTrajectory(u, frames)
	if err != nil {
		Te.Fatal(err)
	}
	cases := []struct {
		first, last, skip int
		want              []float64
	}{
		{0, 0, 1, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{2, -1, 2, []float64{2, 4, 6, 8}},
		{-3, 0, 1, []float64{7, 8, 9}},
		{0, 99, 3, []float64{0, 3, 6, 9}},
		{0, 0, 0, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{5, 3, 1, []float64{}},
	}
	for _, c := range cases {
		got := traj.Slice(c.first, c.last, c.skip)
		if len(got) != len(c.want) {
			Te.Errorf("Slice(%d, %d, %d) gave %d frames, want %d",
				c.first, c.last, c.skip, len(got), len(c.want))
			continue
		}
		for i, f := range got {
			if f.At(0, 0) != c.want[i] {
				Te.Errorf("Slice(%d, %d, %d) frame %d is %v, want %v",
					c.first, c.last, c.skip, i, f.At(0, 0), c.want[i])
			}
		}
	}
}

func TestModeDisplaced(Te *testing.T) {
	atoms := []*Atom{{Name: "CA", Symbol: "C"}, {Name: "O", Symbol: "O"}}
	conf0, _ := v3.NewMatrix([]float64{
		1.0, 2.0, 3.0,
		4.0, 5.0, 6.0,
	})
	conf1, _ := v3.NewMatrix([]float64{
		10.0, 20.0, 30.0,
		40.0, 50.0, 60.0,
	})
	u, err := NewUniverse(atoms, conf0, conf1)
	if err != nil {
		Te.Fatal(err)
	}
	disp, _ := v3.NewMatrix([]float64{
		0.5, 0.0, 0.0,
		0.0, -0.25, 0.0,
	})
	mode, err := NewMode(u, disp)
	if err != nil {
		Te.Fatal(err)
	}
	out, err := mode.Displaced(conf0, 2.0)
	if err != nil {
		Te.Fatal(err)
	}
	if out.At(0, 0) != 2.0 || out.At(0, 1) != 2.0 || out.At(1, 1) != 4.5 || out.At(1, 2) != 6.0 {
		Te.Errorf("Displaced(conf, 2) gave %v", out)
	}
	//a nil configuration means the universe's current one.
	u.SetCurrent(1)
	out, err = mode.Displaced(nil, 1.0)
	if err != nil {
		Te.Fatal(err)
	}
	if out.At(0, 0) != 10.5 {
		Te.Errorf("Displaced(nil, 1) should start from the current configuration, got %v", out.At(0, 0))
	}
	if _, err := mode.Displaced(v3.Zeros(3), 1.0); err == nil {
		Te.Error("a configuration/mode size mismatch should give an error")
	}
	if _, err := NewMode(u, v3.Zeros(5)); err == nil {
		Te.Error("a mode needs one displacement vector per atom")
	}
}

func TestReadDCD(Te *testing.T) {
	const atoms, nframes = 5, 4
	ats := make([]*Atom, atoms)
	for i := range ats {
		ats[i] = &Atom{Name: "CA", ID: i + 1, MolName: "GLY", MolID: i + 1, Chain: "A", Symbol: "C"}
	}
	u, err := NewUniverse(ats, v3.Zeros(atoms))
	if err != nil {
		Te.Fatal(err)
	}
	path := filepath.Join(Te.TempDir(), "traj.dcd")
	w, err := dcd.NewWriter(path, atoms)
	if err != nil {
		Te.Fatal(err)
	}
	for f := 0; f < nframes; f++ {
		frame := v3.Zeros(atoms)
		for i := 0; i < atoms; i++ {
			for j := 0; j < 3; j++ {
				frame.Set(i, j, float64(f*100+i*10+j))
			}
		}
		if err := w.WNext(frame); err != nil {
			Te.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
	traj, err := ReadDCD(u, path)
	if err != nil {
		Te.Fatal(err)
	}
	if traj.Len() != nframes {
		Te.Fatalf("read %d frames, want %d", traj.Len(), nframes)
	}
	fmt.Println("DCD read:", traj.Len(), "frames")
	for f := 0; f < nframes; f++ {
		for i := 0; i < atoms; i++ {
			for j := 0; j < 3; j++ {
				got := traj.Configuration(f).At(i, j)
				want := float64(f*100 + i*10 + j)
				if math.Abs(got-want) > 1e-4 {
					Te.Fatalf("frame %d atom %d coordinate %d is %f, want %f", f, i, j, got, want)
				}
			}
		}
	}
	if traj.Universe() != u {
		Te.Error("the trajectory should keep the universe it was read onto")
	}
	small, _ := NewUniverse(ats[:3], v3.Zeros(3))
	if _, err := ReadDCD(small, path); err == nil {
		Te.Error("reading a DCD onto a universe with the wrong atom count should give an error")
	}
}

func TestReadPDBTrajectory(Te *testing.T) {
	u := testProtein()
	frames := make([]*v3.Matrix, 3)
	for k := range frames {
		f := v3.Zeros(u.Len())
		for i := 0; i < u.Len(); i++ {
			for j := 0; j < 3; j++ {
				f.Set(i, j, u.Configuration().At(i, j)+float64(k))
			}
		}
		frames[k] = f
	}
	path := filepath.Join(Te.TempDir(), "anim.pdb")
	if err := MultiPDBWrite(path, frames, u); err != nil {
		Te.Fatal(err)
	}
	traj, err := ReadPDBTrajectory(path)
	if err != nil {
		Te.Fatal(err)
	}
	if traj.Len() != 3 {
		Te.Fatalf("read %d frames, want 3", traj.Len())
	}
	if traj.Universe().Len() != u.Len() {
		Te.Errorf("read a universe of %d atoms, want %d", traj.Universe().Len(), u.Len())
	}
	got := traj.Configuration(2).At(0, 0)
	if math.Abs(got-(1.234+2.0)) > 1e-3 {
		Te.Errorf("frame 2 first coordinate is %f, want %f", got, 1.234+2.0)
	}
}
