/*
 * v3_test.go, part of mmtk.
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

package v3

import (
	"fmt"
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	a, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Fatal(err)
	}
	if a.NVecs() != 2 {
		Te.Errorf("wrong number of vectors: %d", a.NVecs())
	}
	_, err = NewMatrix([]float64{1, 2, 3, 4})
	if err == nil {
		Te.Error("a slice of length 4 should not yield a matrix")
	}
	fmt.Println("matrix built:", a)
}

func TestViewsAndSubsets(Te *testing.T) {
	a, _ := NewMatrix([]float64{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3})
	v := a.VecView(2)
	if v.At(0, 0) != 2 {
		Te.Errorf("view of vector 2 reads %v", v.At(0, 0))
	}
	v.Set(0, 0, 9)
	if a.At(2, 0) != 9 {
		Te.Error("changes in a view should be reflected in the viewed matrix")
	}
	sub := Zeros(2)
	sub.SomeVecs(a, []int{1, 3})
	if sub.At(0, 1) != 1 || sub.At(1, 2) != 3 {
		Te.Errorf("SomeVecs copied the wrong rows:\n%v", sub)
	}
	if err := sub.SomeVecsSafe(a, []int{0, 1, 2}); err == nil {
		Te.Error("SomeVecsSafe must fail when the receiver size does not match")
	}
}

func TestArithmetic(Te *testing.T) {
	c, _ := NewMatrix([]float64{1, 0, 0, 0, 1, 0})
	d, _ := NewMatrix([]float64{0.5, 0, 0, 0, 0.5, 0})
	scaled := Zeros(2)
	scaled.Scale(2.0, d)
	sum := Zeros(2)
	sum.Add(c, scaled)
	if sum.At(0, 0) != 2 || sum.At(1, 1) != 2 {
		Te.Errorf("wrong sum:\n%v", sum)
	}
}
