/*
 * files_test.go, part of mmtk.
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
	"os"
	"path/filepath"
	"strings"
	"testing"

	v3 "github.com/jeetmj/MMTK/v3"
)

//testProtein returns a 4-atom universe spanning two chains, with a
//HETATM magnesium at the end.
func testProtein() *Universe {
	atoms := []*Atom{
		{Name: "CA", ID: 1, MolName: "ALA", MolID: 1, Chain: "A", Occupancy: 1.0, Bfactor: 10.50, Symbol: "C"},
		{Name: "O", ID: 2, MolName: "ALA", MolID: 1, Chain: "A", Occupancy: 1.0, Bfactor: 12.25, Symbol: "O"},
		{Name: "N", ID: 3, MolName: "GLY", MolID: 2, Chain: "B", Occupancy: 0.5, Bfactor: 9.75, Symbol: "N"},
		{Name: "MG", ID: 4, MolName: "MG", MolID: 3, Chain: "B", Occupancy: 1.0, Bfactor: 30.00, Symbol: "Mg", Het: true},
	}
	coords, err := v3.NewMatrix([]float64{
		1.234, 5.678, 9.012,
		-2.500, 0.125, 3.750,
		10.000, -20.250, 30.500,
		0.001, 0.002, -0.003,
	})
	if err != nil {
		panic(err.Error())
	}
	u, err := NewUniverse(atoms, coords)
	if err != nil {
		panic(err.Error())
	}
	return u
}

func TestPDBReadWrite(Te *testing.T) {
	u := testProtein()
	path := filepath.Join(Te.TempDir(), "out.pdb")
	if err := PDBWrite(path, u.Configuration(), u, nil); err != nil {
		Te.Fatal(err)
	}
	r, err := PDBRead(path)
	if err != nil {
		Te.Fatal(err)
	}
	if r.Len() != u.Len() || r.LenFrames() != 1 {
		Te.Fatalf("read %d atoms in %d frames, want %d in 1", r.Len(), r.LenFrames(), u.Len())
	}
	for i := 0; i < u.Len(); i++ {
		w, g := u.Atom(i), r.Atom(i)
		if g.Name != w.Name || g.ID != w.ID || g.MolName != w.MolName ||
			g.MolID != w.MolID || g.Chain != w.Chain || g.Symbol != w.Symbol || g.Het != w.Het {
			Te.Errorf("atom %d read back as %+v, want %+v", i, g, w)
		}
		if math.Abs(g.Occupancy-w.Occupancy) > 0.01 || math.Abs(g.Bfactor-w.Bfactor) > 0.01 {
			Te.Errorf("atom %d occupancy/bfactor %.2f/%.2f, want %.2f/%.2f",
				i, g.Occupancy, g.Bfactor, w.Occupancy, w.Bfactor)
		}
		for j := 0; j < 3; j++ {
			if math.Abs(r.Configuration().At(i, j)-u.Configuration().At(i, j)) > 1e-3 {
				Te.Errorf("atom %d coordinate %d read back as %f, want %f",
					i, j, r.Configuration().At(i, j), u.Configuration().At(i, j))
			}
		}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		Te.Fatal(err)
	}
	text := string(raw)
	fmt.Println(text)
	if strings.Count(text, "TER\n") != 1 {
		Te.Error("want exactly one TER, at the A/B chain change")
	}
	if strings.Count(text, "HETATM") != 1 {
		Te.Error("want the magnesium as the only HETATM")
	}
	if !strings.HasSuffix(text, "END\n") {
		Te.Error("a PDB file should finish with END")
	}
}

func TestPDBGzip(Te *testing.T) {
	u := testProtein()
	path := filepath.Join(Te.TempDir(), "out.pdb.gz")
	if err := PDBWrite(path, u.Configuration(), u, nil); err != nil {
		Te.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		Te.Fatal(err)
	}
	if len(raw) < 2 || raw[0] != 0x1f || raw[1] != 0x8b {
		Te.Fatalf("%s does not start with the gzip magic bytes", path)
	}
	r, err := PDBRead(path)
	if err != nil {
		Te.Fatal(err)
	}
	if r.Len() != u.Len() {
		Te.Fatalf("read %d atoms, want %d", r.Len(), u.Len())
	}
	if math.Abs(r.Configuration().At(0, 0)-1.234) > 1e-3 {
		Te.Errorf("first coordinate read back as %f, want 1.234", r.Configuration().At(0, 0))
	}
}

func TestMultiModelPDB(Te *testing.T) {
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
	raw, err := os.ReadFile(path)
	if err != nil {
		Te.Fatal(err)
	}
	text := string(raw)
	if strings.Count(text, "MODEL") != 3 || strings.Count(text, "ENDMDL") != 3 {
		Te.Errorf("want 3 MODEL/ENDMDL pairs:\n%s", text)
	}
	r, err := PDBRead(path)
	if err != nil {
		Te.Fatal(err)
	}
	if r.LenFrames() != 3 {
		Te.Fatalf("read back %d frames, want 3", r.LenFrames())
	}
	for k := 0; k < 3; k++ {
		got := r.Frame(k).At(0, 0)
		want := 1.234 + float64(k)
		if math.Abs(got-want) > 1e-3 {
			Te.Errorf("frame %d first coordinate %f, want %f", k, got, want)
		}
	}
	//some generators finish a file with an atom-less MODEL record, which
	//should not become an empty frame.
	appender, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Fprint(appender, "MODEL        4\nENDMDL\n")
	appender.Close()
	r, err = PDBRead(path)
	if err != nil {
		Te.Fatal(err)
	}
	if r.LenFrames() != 3 {
		Te.Errorf("a trailing empty MODEL produced %d frames, want still 3", r.LenFrames())
	}
}

func TestCryst1(Te *testing.T) {
	u := testProtein()
	dir := Te.TempDir()
	plain := filepath.Join(dir, "plain.pdb")
	if err := PDBWrite(plain, u.Configuration(), u, nil); err != nil {
		Te.Fatal(err)
	}
	raw, err := os.ReadFile(plain)
	if err != nil {
		Te.Fatal(err)
	}
	ortho := fmt.Sprintf("CRYST1%9.3f%9.3f%9.3f%7.2f%7.2f%7.2f P 1\n", 10.5, 20.25, 30.0, 90.0, 90.0, 90.0)
	periodic := filepath.Join(dir, "periodic.pdb")
	if err := os.WriteFile(periodic, append([]byte(ortho), raw...), 0644); err != nil {
		Te.Fatal(err)
	}
	r, err := PDBRead(periodic)
	if err != nil {
		Te.Fatal(err)
	}
	cell := r.Cell()
	if cell == nil {
		Te.Fatal("an orthorhombic CRYST1 record should make the universe periodic")
	}
	fmt.Println("cell read:", cell)
	want := [3]float64{10.5, 20.25, 30.0}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := cell.At(i, j)
			if i == j && math.Abs(v-want[i]) > 1e-3 {
				Te.Errorf("cell[%d][%d] = %f, want %f", i, j, v, want[i])
			}
			if i != j && v != 0 {
				Te.Errorf("cell[%d][%d] = %f, want 0", i, j, v)
			}
		}
	}
	//non-orthorhombic cells are not representable and must be dropped.
	tric := fmt.Sprintf("CRYST1%9.3f%9.3f%9.3f%7.2f%7.2f%7.2f P 1\n", 10.5, 20.25, 30.0, 90.0, 90.0, 120.0)
	triclinic := filepath.Join(dir, "triclinic.pdb")
	if err := os.WriteFile(triclinic, append([]byte(tric), raw...), 0644); err != nil {
		Te.Fatal(err)
	}
	r, err = PDBRead(triclinic)
	if err != nil {
		Te.Fatal(err)
	}
	if r.Cell() != nil {
		Te.Error("a triclinic CRYST1 record should leave the universe non-periodic")
	}
}

func TestSymbolGuess(Te *testing.T) {
	good := map[string]string{
		"CA":   "C",
		"CB":   "C",
		"OXT":  "O",
		"N":    "N",
		"SD":   "S",
		"P":    "P",
		"HB2":  "H",
		"HD11": "H",
		"NA":   "Na",
		"MG":   "Mg",
		"FE":   "Fe",
	}
	for name, want := range good {
		got, err := symbolFromName(name)
		if err != nil {
			Te.Errorf("symbolFromName(%q): %v", name, err)
			continue
		}
		if got != want {
			Te.Errorf("symbolFromName(%q) = %q, want %q", name, got, want)
		}
	}
	if _, err := symbolFromName("XX"); err == nil {
		Te.Error("an unguessable name should give an error")
	}
}

func TestVRMLWrite(Te *testing.T) {
	atoms := []*Atom{
		{Name: "C1", ID: 1, MolName: "LIG", MolID: 1, Chain: "A", Symbol: "C"},
		{Name: "O1", ID: 2, MolName: "LIG", MolID: 1, Chain: "A", Symbol: "O"},
	}
	coords, _ := v3.NewMatrix([]float64{
		0.0, 0.0, 0.0,
		1.5, 0.0, 0.0,
	})
	u, err := NewUniverse(atoms, coords)
	if err != nil {
		Te.Fatal(err)
	}
	path := filepath.Join(Te.TempDir(), "scene.wrl")
	if err := VRMLWrite(path, coords, u); err != nil {
		Te.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		Te.Fatal(err)
	}
	text := string(raw)
	fmt.Println(text)
	if !strings.HasPrefix(text, "#VRML V2.0 utf8\n") {
		Te.Error("a VRML97 file must start with the #VRML V2.0 utf8 header")
	}
	if strings.Count(text, "geometry Sphere") != 2 {
		Te.Error("want one sphere per atom")
	}
	//scaled van der Waals radii: 0.25*1.70 for carbon, 0.25*1.52 for oxygen.
	if !strings.Contains(text, "radius 0.425") {
		Te.Error("carbon sphere radius should be 0.425")
	}
	if !strings.Contains(text, "radius 0.380") {
		Te.Error("oxygen sphere radius should be 0.380")
	}
	if !strings.Contains(text, "diffuseColor 0.50 0.50 0.50") {
		Te.Error("carbon should come out CPK grey")
	}
	if !strings.Contains(text, "diffuseColor 1.00 0.05 0.05") {
		Te.Error("oxygen should come out CPK red")
	}
	if err := VRMLWrite(filepath.Join(Te.TempDir(), "bad.wrl"), v3.Zeros(1), u); err == nil {
		Te.Error("a coordinate/atom count mismatch should give an error")
	}
}
