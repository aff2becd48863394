/*
 * pdb.go, part of mmtk.
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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	v3 "github.com/jeetmj/MMTK/v3"
)

//openMaybeGz opens path for reading, transparently decompressing when the
//name ends in ".gz".
func openMaybeGz(path string) (io.Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, CError{err.Error(), []string{"os.Open", "openMaybeGz"}}
	}
	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return f, f.Close, nil
	}
	gz, err := gzip.NewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, nil, CError{err.Error(), []string{"gzip.NewReader", "openMaybeGz"}}
	}
	closer := func() error {
		gz.Close()
		return f.Close()
	}
	return gz, closer, nil
}

//createMaybeGz creates path for writing, compressing transparently when
//the name ends in ".gz". The returned closer flushes and closes everything.
func createMaybeGz(path string) (io.Writer, func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, CError{err.Error(), []string{"os.Create", "createMaybeGz"}}
	}
	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return f, f.Close, nil
	}
	gz := gzip.NewWriter(f)
	closer := func() error {
		err := gz.Close()
		if err2 := f.Close(); err == nil {
			err = err2
		}
		return err
	}
	return gz, closer, nil
}

//symbolFromName tries to guess a chemical element symbol from a PDB atom
//name. Mostly based on AMBER names; it only deals with common bio-elements.
func symbolFromName(name string) (string, error) {
	switch name {
	case "CU":
		return "Cu", nil
	case "CO":
		return "Co", nil
	case "CL":
		return "Cl", nil
	case "NA":
		return "Na", nil
	case "SE":
		return "Se", nil
	case "ZN":
		return "Zn", nil
	case "MG":
		return "Mg", nil
	case "FE":
		return "Fe", nil
	case "MN":
		return "Mn", nil
	}
	if len(name) == 4 || (len(name) > 0 && name[0] == 'H') {
		return "H", nil //only hydrogens tend to get 4-char names
	}
	if len(name) > 0 && strings.ContainsRune("CNOPS", rune(name[0])) {
		return name[:1], nil
	}
	return "", CError{fmt.Sprintf("could not guess an element from the PDB name %q", name), []string{"symbolFromName"}}
}

//readFullPDBLine parses a valid ATOM or HETATM line, returning an Atom with
//everything except the coordinates, which are returned separately.
func readFullPDBLine(line string) (*Atom, []float64, error) {
	if len(line) < 54 {
		return nil, nil, CError{"ATOM/HETATM line too short", []string{"readFullPDBLine"}}
	}
	err := make([]error, 5)
	coords := make([]float64, 3)
	atom := new(Atom)
	atom.Het = strings.HasPrefix(line, "HETATM")
	atom.ID, err[0] = strconv.Atoi(strings.TrimSpace(line[6:12]))
	atom.Name = strings.TrimSpace(line[12:16])
	atom.MolName = strings.TrimSpace(line[17:20])
	atom.Chain = strings.TrimSpace(line[21:22])
	atom.MolID, err[1] = strconv.Atoi(strings.TrimSpace(line[22:26]))
	coords[0], err[2] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	coords[1], err[3] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	coords[2], err[4] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	//occupancy, temperature factor and symbol are not always present, so
	//missing or unparseable ones are just left zero-valued.
	if len(line) >= 60 {
		atom.Occupancy, _ = strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64)
	}
	if len(line) >= 66 {
		atom.Bfactor, _ = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	}
	if len(line) >= 78 {
		atom.Symbol = strings.TrimSpace(line[76:78])
	}
	if atom.Symbol == "" {
		atom.Symbol, _ = symbolFromName(atom.Name) //a failed guess just leaves it empty
	}
	for i := range err {
		if err[i] != nil {
			return nil, nil, CError{err[i].Error(), []string{"readFullPDBLine"}}
		}
	}
	return atom, coords, nil
}

//readCoordsPDBLine parses an ATOM/HETATM line of which only the
//coordinates are wanted, i.e. one from any MODEL after the first.
func readCoordsPDBLine(line string) ([]float64, error) {
	if len(line) < 54 {
		return nil, CError{"ATOM/HETATM line too short", []string{"readCoordsPDBLine"}}
	}
	err := make([]error, 3)
	coords := make([]float64, 3)
	coords[0], err[0] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	coords[1], err[1] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	coords[2], err[2] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	for i := range err {
		if err[i] != nil {
			return nil, CError{err[i].Error(), []string{"readCoordsPDBLine"}}
		}
	}
	return coords, nil
}

//readCryst1 parses a CRYST1 record into 3 cell basis vectors. Only
//orthorhombic cells (all angles 90) are representable; anything else
//returns nil.
func readCryst1(line string) *v3.Matrix {
	if len(line) < 54 {
		return nil
	}
	var abc [3]float64
	var angles [3]float64
	var err error
	cols := [6][2]int{{6, 15}, {15, 24}, {24, 33}, {33, 40}, {40, 47}, {47, 54}}
	for i, c := range cols {
		v, perr := strconv.ParseFloat(strings.TrimSpace(line[c[0]:c[1]]), 64)
		if perr != nil {
			err = perr
			break
		}
		if i < 3 {
			abc[i] = v
		} else {
			angles[i-3] = v
		}
	}
	if err != nil {
		return nil
	}
	for _, ang := range angles {
		if math.Abs(ang-90.0) > 0.01 {
			return nil
		}
	}
	cell := v3.Zeros(3)
	for i := 0; i < 3; i++ {
		cell.Set(i, i, abc[i])
	}
	return cell
}

//PDBRead reads the PDB file in path and returns a universe holding one
//configuration per MODEL in the file (a single one for MODEL-less files).
//Files whose name ends in ".gz" are decompressed transparently. An
//orthorhombic CRYST1 record makes the universe periodic.
func PDBRead(path string) (*Universe, error) {
	in, closer, err := openMaybeGz(path)
	if err != nil {
		return nil, errDecorate(err, "PDBRead")
	}
	defer closer()
	atoms := make([]*Atom, 0, 100)
	frames := make([][]float64, 1)
	frames[0] = make([]float64, 0, 300)
	var cell *v3.Matrix
	firstModel := true
	pdb := bufio.NewReader(in)
	for {
		line, rerr := pdb.ReadString('\n')
		if rerr != nil && len(line) == 0 {
			break
		}
		switch {
		case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
			var c []float64
			if firstModel {
				var at *Atom
				at, c, err = readFullPDBLine(line)
				if err == nil {
					atoms = append(atoms, at)
				}
			} else {
				c, err = readCoordsPDBLine(line)
			}
			if err != nil {
				return nil, errDecorate(err, fmt.Sprintf("PDBRead %s", path))
			}
			last := len(frames) - 1
			frames[last] = append(frames[last], c...)
		case strings.HasPrefix(line, "MODEL"):
			modelnumber := 1 //in PDBs the count starts from 1
			if len(line) > 6 {
				modelnumber, _ = strconv.Atoi(strings.TrimSpace(line[6:]))
			}
			if modelnumber > 1 {
				firstModel = false
				frames = append(frames, make([]float64, 0, len(frames[0])))
			}
		case strings.HasPrefix(line, "CRYST1"):
			cell = readCryst1(line)
		}
		if rerr != nil {
			break
		}
	}
	mframes := make([]*v3.Matrix, 0, len(frames))
	for i, f := range frames {
		if len(f) == 0 && i == len(frames)-1 {
			continue //a trailing MODEL record with no atoms
		}
		m, err := v3.NewMatrix(f)
		if err != nil {
			return nil, errDecorate(err, "PDBRead")
		}
		mframes = append(mframes, m)
	}
	U, err := NewUniverse(atoms, mframes...)
	if err != nil {
		return nil, errDecorate(err, "PDBRead")
	}
	U.SetCell(cell)
	return U, nil
}

//writePDBFrame writes one configuration of mol as ATOM/HETATM records,
//with TER records at chain changes. bfact overrides the atoms' own
//temperature factors when not nil.
func writePDBFrame(out io.Writer, coords *v3.Matrix, mol Atomer, bfact []float64) error {
	if coords == nil || mol == nil {
		return CError{string(ErrNilData), []string{"writePDBFrame"}}
	}
	if coords.NVecs() != mol.Len() {
		return CError{fmt.Sprintf("coordinates for %d atoms given for a molecule of %d", coords.NVecs(), mol.Len()), []string{"writePDBFrame"}}
	}
	if bfact != nil && len(bfact) != mol.Len() {
		return CError{"one temperature factor per atom is needed", []string{"writePDBFrame"}}
	}
	chainprev := mol.Atom(0).Chain //to know when the chain changes
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		if at.Chain != chainprev {
			fmt.Fprintln(out, "TER")
			chainprev = at.Chain
		}
		first := "ATOM"
		if at.Het {
			first = "HETATM"
		}
		chain := at.Chain
		if chain == "" {
			chain = " "
		}
		bf := at.Bfactor
		if bfact != nil {
			bf = bfact[i]
		}
		var err error
		if len(at.Name) < 4 {
			_, err = fmt.Fprintf(out, "%-6s%5d  %-3s %3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n",
				first, at.ID, at.Name, at.MolName, chain, at.MolID,
				coords.At(i, 0), coords.At(i, 1), coords.At(i, 2), at.Occupancy, bf, at.Symbol)
		} else if len(at.Name) == 4 {
			_, err = fmt.Fprintf(out, "%-6s%5d %4s %3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n",
				first, at.ID, at.Name, at.MolName, chain, at.MolID,
				coords.At(i, 0), coords.At(i, 1), coords.At(i, 2), at.Occupancy, bf, at.Symbol)
		} else {
			err = CError{fmt.Sprintf("atom name %q too long for a PDB line", at.Name), []string{"writePDBFrame"}}
		}
		if err != nil {
			return CError{err.Error(), []string{"writePDBFrame"}}
		}
	}
	return nil
}

//PDBWrite writes mol at the coordinates coords to path in PDB format.
//bfact, when not nil, gives the temperature factor for each atom,
//overriding the atoms' own. Paths ending in ".gz" are gzip-compressed.
func PDBWrite(path string, coords *v3.Matrix, mol Atomer, bfact []float64) error {
	out, closer, err := createMaybeGz(path)
	if err != nil {
		return errDecorate(err, "PDBWrite")
	}
	fmt.Fprint(out, "REMARK     WRITTEN WITH MMTK FOR GO\n")
	if err := writePDBFrame(out, coords, mol, bfact); err != nil {
		closer()
		return errDecorate(err, "PDBWrite")
	}
	fmt.Fprint(out, "END\n")
	if err := closer(); err != nil {
		return CError{err.Error(), []string{"PDBWrite"}}
	}
	return nil
}

//MultiPDBWrite writes mol to path with one MODEL block per given frame, so
//viewers that read multi-model PDBs can play the frames as an animation.
//Paths ending in ".gz" are gzip-compressed.
func MultiPDBWrite(path string, frames []*v3.Matrix, mol Atomer) error {
	if len(frames) == 0 {
		return CError{"no frames given", []string{"MultiPDBWrite"}}
	}
	out, closer, err := createMaybeGz(path)
	if err != nil {
		return errDecorate(err, "MultiPDBWrite")
	}
	fmt.Fprint(out, "REMARK     WRITTEN WITH MMTK FOR GO\n")
	for j, f := range frames {
		fmt.Fprintf(out, "MODEL     %4d\n", j+1)
		if err := writePDBFrame(out, f, mol, nil); err != nil {
			closer()
			return errDecorate(err, "MultiPDBWrite")
		}
		fmt.Fprint(out, "ENDMDL\n")
	}
	fmt.Fprint(out, "END\n")
	if err := closer(); err != nil {
		return CError{err.Error(), []string{"MultiPDBWrite"}}
	}
	return nil
}
