/*
 * proximity.go, part of TakeA-REST2.
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
	"math"
	"sort"
)

// Target is a resolved selection query: the atoms it matched and the
// residues those atoms belong to. Immutable once resolved.
type Target struct {
	Query    string
	Atoms    []int //sorted, 0-based
	Residues []int //sorted
}

// Environment is the set of residues found near a target, either in one
// frame or in enough trajectory frames to pass an occupancy threshold.
type Environment struct {
	Residues []int //sorted
	Frames   int   //frames scanned, 1 for a static analysis
}

// Analyzer finds the residues spatially close to a target selection.
// Candidate atoms are the protein atoms of the structure; distances are
// plain Euclidean, with no minimum-image convention (inputs are expected to
// be whole molecules, not wrapped periodic images).
type Analyzer struct {
	str        Structure
	candidates []int
}

// NewAnalyzer builds an Analyzer over the given structure. A structure with
// no protein atoms is fine; every environment set will just come out empty.
func NewAnalyzer(s Structure) *Analyzer {
	cand, err := s.SelectAtoms("protein")
	if err != nil {
		cand = nil
	}
	return &Analyzer{str: s, candidates: cand}
}

// ResolveTarget resolves a selection query into a Target.
// Fails with ErrEmptySelection if the query matches no atoms.
func (A *Analyzer) ResolveTarget(query string) (*Target, error) {
	atoms, err := A.str.SelectAtoms(query)
	if err != nil {
		return nil, fmt.Errorf("rest2/ResolveTarget: %w", err)
	}
	seen := make(map[int]bool)
	var residues []int
	for _, i := range atoms {
		r := A.str.ResidueOf(i)
		if !seen[r] {
			seen[r] = true
			residues = append(residues, r)
		}
	}
	sort.Ints(residues)
	return &Target{Query: query, Atoms: atoms, Residues: residues}, nil
}

// NearbyStatic returns the residues with any candidate atom within cutoff
// Angstroms of any target atom, in the first frame. A target atom's own
// residue is never part of its environment.
func (A *Analyzer) NearbyStatic(target *Target, cutoff float64) (*Environment, error) {
	if cutoff <= 0 {
		return nil, fmt.Errorf("rest2/NearbyStatic: cutoff %g: %w", cutoff, ErrInvalidParameter)
	}
	contacts := A.frameContacts(target, cutoff, 0)
	return &Environment{Residues: sortedKeys(contacts), Frames: 1}, nil
}

// NearbyTrajectory scans every loaded frame and returns the residues that
// are within cutoff of the target in at least occupancy (0,1] of the
// frames. The occupancy boundary is inclusive: a residue in contact for
// exactly occupancy*frames frames is kept. Every frame is scanned fully;
// there is no early exit.
func (A *Analyzer) NearbyTrajectory(target *Target, cutoff, occupancy float64) (*Environment, error) {
	if cutoff <= 0 {
		return nil, fmt.Errorf("rest2/NearbyTrajectory: cutoff %g: %w", cutoff, ErrInvalidParameter)
	}
	if occupancy <= 0 || occupancy > 1 {
		return nil, fmt.Errorf("rest2/NearbyTrajectory: occupancy threshold %g not in (0,1]: %w", occupancy, ErrInvalidParameter)
	}
	frames := A.str.FrameCount()
	if frames < 2 {
		return nil, fmt.Errorf("rest2/NearbyTrajectory: %w", ErrTrajectoryUnavailable)
	}
	counts := make(map[int]int)
	for f := 0; f < frames; f++ {
		for r := range A.frameContacts(target, cutoff, f) {
			counts[r]++
		}
	}
	var residues []int
	for r, n := range counts {
		if float64(n)/float64(frames) >= occupancy {
			residues = append(residues, r)
		}
	}
	sort.Ints(residues)
	return &Environment{Residues: residues, Frames: frames}, nil
}

// frameContacts computes the per-frame contact residue set: candidates
// within cutoff of any target atom, excluding each target atom's own
// residue. Brute force over |target| x |candidates|.
func (A *Analyzer) frameContacts(target *Target, cutoff float64, frame int) map[int]bool {
	contacts := make(map[int]bool)
	cut2 := cutoff * cutoff
	for _, t := range target.Atoms {
		tres := A.str.ResidueOf(t)
		tx, ty, tz := A.str.Position(t, frame)
		for _, c := range A.candidates {
			cres := A.str.ResidueOf(c)
			if cres == tres {
				continue
			}
			if contacts[cres] {
				continue
			}
			cx, cy, cz := A.str.Position(c, frame)
			dx, dy, dz := cx-tx, cy-ty, cz-tz
			if dx*dx+dy*dy+dz*dz <= cut2 {
				contacts[cres] = true
			}
		}
	}
	return contacts
}

// Dist returns the Euclidean distance between two atoms in one frame.
func Dist(s Structure, i, j, frame int) float64 {
	xi, yi, zi := s.Position(i, frame)
	xj, yj, zj := s.Position(j, frame)
	dx, dy, dz := xi-xj, yi-yj, zi-zj
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
