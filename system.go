/*
 * system.go, part of TakeA-REST2.
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

package rest2

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Atom contains the per-atom data read from a coordinate file. Coordinates
// are not here; they live in per-frame matrices owned by the System.
type Atom struct {
	Name    string // atom name, e.g. CA
	ID      int    // 1-based serial number from the file
	MolName string // residue name
	MolID   int    // residue number
	Chain   string
	Symbol  string
}

// Copy returns a copy of the Atom.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("attempted to copy a nil atom")
	}
	na := new(Atom)
	*na = *A
	return na
}

// Atomer is the basic read-only view of a set of atoms.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i.
	//Panics if out of range.
	Atom(i int) *Atom

	Len() int
}

// Structure is the capability consumed by the proximity analysis and the
// solute set builder: atom selection by query, per-frame positions and
// residue lookups. It is injected at construction time; there is exactly one
// code path per operation, with no optional-helper branches.
type Structure interface {
	Atomer

	//SelectAtoms resolves a selection query to a sorted set of 0-based atom
	//indices. Returns ErrEmptySelection when nothing matches.
	SelectAtoms(query string) ([]int, error)

	//Position returns the coordinates, in Angstroms, of the given atom in
	//the given frame.
	Position(atom, frame int) (x, y, z float64)

	//ResidueOf returns the residue number of the given atom.
	ResidueOf(atom int) int

	//AtomsOfResidue returns the sorted 0-based indices of every atom in the
	//given residue.
	AtomsOfResidue(resid int) []int

	//FrameCount returns the number of coordinate frames loaded, 1 when only
	//a static structure was supplied.
	FrameCount() int
}

// System is the concrete Structure built from a coordinate file, plus any
// number of trajectory frames. It is read-only after construction.
type System struct {
	atoms  []*Atom
	frames []*mat.Dense //each Len() x 3, Angstroms
	byRes  map[int][]int
}

// NewSystem builds a System from atoms and at least one coordinate frame.
// Every frame must have one 3-column row per atom.
func NewSystem(atoms []*Atom, frames []*mat.Dense) (*System, error) {
	if len(atoms) == 0 {
		return nil, fmt.Errorf("rest2/NewSystem: no atoms given")
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("rest2/NewSystem: no coordinate frames given")
	}
	for i, f := range frames {
		r, c := f.Dims()
		if r != len(atoms) || c != 3 {
			return nil, fmt.Errorf("rest2/NewSystem: frame %d is %dx%d, want %dx3", i, r, c, len(atoms))
		}
	}
	S := &System{atoms: atoms, frames: frames, byRes: make(map[int][]int)}
	for i, at := range atoms {
		S.byRes[at.MolID] = append(S.byRes[at.MolID], i)
	}
	return S, nil
}

// Len returns the number of atoms per frame.
func (S *System) Len() int {
	return len(S.atoms)
}

// Atom returns the atom at index i. Panics if out of range, as this
// indicates a programming error upstream.
func (S *System) Atom(i int) *Atom {
	if i < 0 || i >= len(S.atoms) {
		panic(fmt.Sprintf("system: requested atom %d out of bounds (%d)", i, len(S.atoms)))
	}
	return S.atoms[i]
}

// FrameCount returns the number of coordinate frames.
func (S *System) FrameCount() int {
	return len(S.frames)
}

// Position returns the coordinates of atom in frame, in Angstroms.
// Panics if either index is out of range.
func (S *System) Position(atom, frame int) (x, y, z float64) {
	if frame < 0 || frame >= len(S.frames) {
		panic(fmt.Sprintf("system: requested frame %d out of range (%d)", frame, len(S.frames)))
	}
	f := S.frames[frame]
	return f.At(atom, 0), f.At(atom, 1), f.At(atom, 2)
}

// ResidueOf returns the residue number of the given atom.
func (S *System) ResidueOf(atom int) int {
	return S.Atom(atom).MolID
}

// AtomsOfResidue returns the sorted indices of all atoms in residue resid.
// An unknown residue yields an empty slice, not an error.
func (S *System) AtomsOfResidue(resid int) []int {
	idx := S.byRes[resid]
	out := make([]int, len(idx))
	copy(out, idx)
	sort.Ints(out)
	return out
}

// SelectAtoms resolves a selection query against this system.
func (S *System) SelectAtoms(query string) ([]int, error) {
	return EvalSelection(query, S)
}

// Frame returns the coordinate matrix for one frame. The returned matrix is
// shared, not copied; callers must not modify it.
func (S *System) Frame(i int) *mat.Dense {
	if i < 0 || i >= len(S.frames) {
		panic(fmt.Sprintf("system: requested frame %d out of range (%d)", i, len(S.frames)))
	}
	return S.frames[i]
}
