/*
 * dcd_test.go, part of mmtk.
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

package dcd

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	v3 "github.com/jeetmj/MMTK/v3"
)

//testFrames builds deterministic frames for a small system.
func testFrames(atoms, frames int) []*v3.Matrix {
	ret := make([]*v3.Matrix, 0, frames)
	for f := 0; f < frames; f++ {
		m := v3.Zeros(atoms)
		for i := 0; i < atoms; i++ {
			for j := 0; j < 3; j++ {
				m.Set(i, j, float64(f*100+i*3+j)/10.0)
			}
		}
		ret = append(ret, m)
	}
	return ret
}

//Writes a short trajectory and reads it back frame by frame.
func TestDCDRoundTrip(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "roundtrip.dcd")
	frames := testFrames(7, 3)
	w, err := NewWriter(name, 7)
	if err != nil {
		Te.Fatal(err)
	}
	for _, v := range frames {
		if err := w.WNext(v); err != nil {
			Te.Error(err)
		}
	}
	if err := w.Close(); err != nil {
		Te.Error(err)
	}
	r, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	if r.Len() != 7 {
		Te.Errorf("wrong atom count: got %d, want 7", r.Len())
	}
	read := 0
	got := v3.Zeros(7)
	for {
		err := r.Next(got)
		if err != nil {
			if _, ok := err.(interface{ NormalLastFrameTermination() }); ok {
				break
			}
			Te.Fatal(err)
		}
		want := frames[read]
		for i := 0; i < 7; i++ {
			for j := 0; j < 3; j++ {
				if math.Abs(got.At(i, j)-want.At(i, j)) > 1e-4 {
					Te.Errorf("frame %d atom %d dim %d: got %5.3f, want %5.3f", read, i, j, got.At(i, j), want.At(i, j))
				}
			}
		}
		read++
	}
	if read != 3 {
		Te.Errorf("read %d frames, want 3", read)
	}
	fmt.Println("DCD round trip read", read, "frames")
}

//A nil destination must skip frames without losing sync.
func TestDCDSkip(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "skip.dcd")
	frames := testFrames(5, 4)
	w, err := NewWriter(name, 5)
	if err != nil {
		Te.Fatal(err)
	}
	for _, v := range frames {
		if err := w.WNext(v); err != nil {
			Te.Error(err)
		}
	}
	w.Close()
	r, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	if err := r.Next(nil); err != nil {
		Te.Fatal(err)
	}
	got := v3.Zeros(5)
	if err := r.Next(got); err != nil {
		Te.Fatal(err)
	}
	if math.Abs(got.At(0, 0)-frames[1].At(0, 0)) > 1e-4 {
		Te.Errorf("skipped read out of sync: got %5.3f, want %5.3f", got.At(0, 0), frames[1].At(0, 0))
	}
}

//Reads back a gzip-compressed trajectory.
func TestDCDCompressed(Te *testing.T) {
	dir := Te.TempDir()
	plain := filepath.Join(dir, "traj.dcd")
	frames := testFrames(4, 2)
	w, err := NewWriter(plain, 4)
	if err != nil {
		Te.Fatal(err)
	}
	for _, v := range frames {
		w.WNext(v)
	}
	w.Close()
	compressed := plain + ".gz"
	src, err := os.Open(plain)
	if err != nil {
		Te.Fatal(err)
	}
	dst, err := os.Create(compressed)
	if err != nil {
		Te.Fatal(err)
	}
	gz := gzip.NewWriter(dst)
	if _, err := io.Copy(gz, src); err != nil {
		Te.Fatal(err)
	}
	gz.Close()
	dst.Close()
	src.Close()
	r, err := New(compressed)
	if err != nil {
		Te.Fatal(err)
	}
	read := 0
	got := v3.Zeros(4)
	for {
		err := r.Next(got)
		if err != nil {
			if _, ok := err.(interface{ NormalLastFrameTermination() }); ok {
				break
			}
			Te.Fatal(err)
		}
		read++
	}
	if read != 2 {
		Te.Errorf("read %d compressed frames, want 2", read)
	}
}
