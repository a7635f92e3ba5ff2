package rest2

import (
	"fmt"
	"sort"
)

// SoluteSet is the full set of atoms whose interactions REST2 will scale:
// every atom of every target residue and every environment residue, plus any
// target atoms selected at finer than residue granularity. Read-only after
// construction; both the topology annotator and the replica planner consume
// the same set.
type SoluteSet struct {
	Atoms    []int //sorted, 0-based
	Residues []int //sorted
}

// BuildSolute expands target and environment residues to their atoms,
// unions in the target atoms themselves, deduplicates and sorts.
// Fails with ErrEmptySolute if the result is empty.
func BuildSolute(s Structure, target *Target, env *Environment) (*SoluteSet, error) {
	resSeen := make(map[int]bool)
	var residues []int
	add := func(rr []int) {
		for _, r := range rr {
			if !resSeen[r] {
				resSeen[r] = true
				residues = append(residues, r)
			}
		}
	}
	add(target.Residues)
	if env != nil {
		add(env.Residues)
	}
	sort.Ints(residues)

	atomSeen := make(map[int]bool)
	var atoms []int
	for _, r := range residues {
		for _, a := range s.AtomsOfResidue(r) {
			if !atomSeen[a] {
				atomSeen[a] = true
				atoms = append(atoms, a)
			}
		}
	}
	for _, a := range target.Atoms {
		if !atomSeen[a] {
			atomSeen[a] = true
			atoms = append(atoms, a)
		}
	}
	if len(atoms) == 0 {
		return nil, fmt.Errorf("rest2/BuildSolute: %w", ErrEmptySolute)
	}
	sort.Ints(atoms)
	return &SoluteSet{Atoms: atoms, Residues: residues}, nil
}

// Contains reports whether the 0-based atom index is part of the solute.
func (S *SoluteSet) Contains(atom int) bool {
	i := sort.SearchInts(S.Atoms, atom)
	return i < len(S.Atoms) && S.Atoms[i] == atom
}

// FileAtoms returns the solute atom numbers in 1-based file numbering, for
// topology and PLUMED consumption.
func (S *SoluteSet) FileAtoms() []int {
	out := make([]int, len(S.Atoms))
	for i, a := range S.Atoms {
		out[i] = FileIndex(a)
	}
	return out
}
