/*
 * geometry.go, part of molequle.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 *
 */

package qm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

//Atom is an element symbol with cartesian coordinates in Angstrom.
type Atom struct {
	Symbol string     `json:"symbol"`
	Coords [3]float64 `json:"coords"`
}

//Geometry is the minimal molecular description a QM program needs.
type Geometry struct {
	Atoms  []Atom `json:"atoms"`
	Charge int    `json:"charge"`
	Multi  int    `json:"multiplicity"` //0 is taken as a singlet
}

func (G *Geometry) Len() int {
	return len(G.Atoms)
}

//Multiplicity returns the spin multiplicity, defaulting to 1.
func (G *Geometry) Multiplicity() int {
	if G.Multi <= 0 {
		return 1
	}
	return G.Multi
}

//checkSymbol returns an error if s is not one of the elements we know about.
func checkSymbol(s string) error {
	if _, ok := symbolZ[s]; !ok {
		return fmt.Errorf("unknown element symbol %q", s)
	}
	return nil
}

//Mass returns the molecular mass in g/mol.
func (G *Geometry) Mass() float64 {
	var m float64
	for _, at := range G.Atoms {
		m += symbolMass[at.Symbol]
	}
	return m
}

//Electrons returns the number of electrons, taking the charge into account.
func (G *Geometry) Electrons() int {
	n := -G.Charge
	for _, at := range G.Atoms {
		n += symbolZ[at.Symbol]
	}
	return n
}

//Check verifies that all the elements are known and that the number of
//electrons can give the multiplicity of G.
func (G *Geometry) Check() error {
	for i, at := range G.Atoms {
		if err := checkSymbol(at.Symbol); err != nil {
			return fmt.Errorf("atom %d: %w", i, err)
		}
	}
	e := G.Electrons()
	if e < 0 {
		return fmt.Errorf("charge %d leaves %d electrons", G.Charge, e)
	}
	unpaired := G.Multiplicity() - 1
	if unpaired > e || (e-unpaired)%2 != 0 {
		return fmt.Errorf("%d electrons can't give multiplicity %d", e, G.Multiplicity())
	}
	return nil
}

func parseAtom(fields []string) (Atom, error) {
	var at Atom
	if len(fields) < 4 {
		return at, fmt.Errorf("expected a symbol and 3 coordinates, got %q", strings.Join(fields, " "))
	}
	at.Symbol = fields[0]
	if err := checkSymbol(at.Symbol); err != nil {
		return at, err
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return at, fmt.Errorf("bad coordinate for %s: %w", at.Symbol, err)
		}
		at.Coords[i] = v
	}
	return at, nil
}

//ParseAtoms reads a geometry given as semicolon-separated atoms, each one an element
//symbol followed by x, y and z in Angstrom, for instance "H 0 0 0; F 0 0 1.1".
//The geometry is neutral and singlet.
func ParseAtoms(spec string) (*Geometry, error) {
	G := new(Geometry)
	for i, part := range strings.Split(spec, ";") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		at, err := parseAtom(fields)
		if err != nil {
			return nil, fmt.Errorf("qm: ParseAtoms: atom %d: %w", i, err)
		}
		G.Atoms = append(G.Atoms, at)
	}
	if G.Len() == 0 {
		return nil, fmt.Errorf("qm: ParseAtoms: %s", ErrMissingAtoms)
	}
	return G, nil
}

//ReadXYZ reads the first frame of an XYZ file.
func ReadXYZ(r io.Reader) (*Geometry, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return nil, fmt.Errorf("qm: ReadXYZ: empty input")
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("qm: ReadXYZ: bad atom count %q", sc.Text())
	}
	sc.Scan() //comment line
	G := &Geometry{Atoms: make([]Atom, 0, n)}
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("qm: ReadXYZ: expected %d atoms, got %d", n, i)
		}
		at, err := parseAtom(strings.Fields(sc.Text()))
		if err != nil {
			return nil, fmt.Errorf("qm: ReadXYZ: atom %d: %w", i, err)
		}
		G.Atoms = append(G.Atoms, at)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("qm: ReadXYZ: %w", err)
	}
	return G, nil
}

//WriteXYZ writes the geometry in XYZ format.
func (G *Geometry) WriteXYZ(w io.Writer, comment string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%s\n", G.Len(), strings.ReplaceAll(comment, "\n", " "))
	for _, at := range G.Atoms {
		fmt.Fprintf(bw, "%-2s %12.6f %12.6f %12.6f\n", at.Symbol, at.Coords[0], at.Coords[1], at.Coords[2])
	}
	return bw.Flush()
}
