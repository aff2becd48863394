/*
 * atomicdata.go, part of mmtk.
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

//A map for assigning mass to elements.
//Note that just common "bio-elements" are present
var symbolMass = map[string]float64{
	"H":  1.0,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Co": 58.93,
	"Fe": 55.84,
	"Mn": 54.94,
	"Cr": 51.996,
	"Si": 28.08,
	"Be": 9.012,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
}

//A map for assigning van der Waals radii to elements, in A.
//Values from Bondi 1964 (10.1021/j100785a001),
//metal radii from 10.1023/A:1011625728803.
//Note that just common "bio-elements" are present
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"C":  1.70,
	"O":  1.52,
	"N":  1.55,
	"P":  1.80,
	"S":  1.80,
	"Se": 1.90,
	"K":  2.75,
	"Ca": 2.31,
	"Mg": 1.73,
	"Cl": 1.75,
	"Na": 2.27,
	"Cu": 2.00,
	"Zn": 2.02,
	"Co": 1.95,
	"Fe": 1.96,
	"Mn": 1.96,
	"Cr": 1.97,
	"Si": 2.10,
	"Be": 1.53,
	"F":  1.47,
	"Br": 1.83,
	"I":  1.98,
}

//CPK-style display colors per element, as RGB in [0,1], used when writing
//VRML scenes. Elements not in the map get carbon grey.
var symbolColor = map[string][3]float64{
	"H":  {1.00, 1.00, 1.00},
	"C":  {0.50, 0.50, 0.50},
	"O":  {1.00, 0.05, 0.05},
	"N":  {0.05, 0.05, 1.00},
	"P":  {1.00, 0.50, 0.00},
	"S":  {1.00, 1.00, 0.19},
	"Se": {1.00, 0.63, 0.00},
	"K":  {0.56, 0.25, 0.83},
	"Ca": {0.24, 1.00, 0.00},
	"Mg": {0.54, 1.00, 0.00},
	"Cl": {0.12, 0.94, 0.12},
	"Na": {0.67, 0.36, 0.95},
	"Cu": {0.78, 0.50, 0.20},
	"Zn": {0.49, 0.50, 0.69},
	"Co": {0.94, 0.56, 0.63},
	"Fe": {0.88, 0.40, 0.20},
	"Mn": {0.61, 0.48, 0.78},
	"F":  {0.56, 0.88, 0.31},
	"Br": {0.65, 0.16, 0.16},
	"I":  {0.58, 0.00, 0.58},
}

//Mass returns the mass of the atom's element, or 0 if the element is not
//among the tabulated ones.
func (A *Atom) Mass() float64 {
	return symbolMass[A.Symbol]
}

//VdwRad returns the van der Waals radius of the atom's element in A, or 0
//if the element is not among the tabulated ones.
func (A *Atom) VdwRad() float64 {
	return symbolVdwrad[A.Symbol]
}

//color returns the display color for the atom's element, defaulting to
//carbon grey for anything not tabulated.
func (A *Atom) color() [3]float64 {
	if c, ok := symbolColor[A.Symbol]; ok {
		return c
	}
	return symbolColor["C"]
}
