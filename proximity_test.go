package rest2

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

//testSystem builds a small in-memory system: a two-atom ALA target on chain
//A, three single-atom protein residues on chain B at 3, 5 and 50 Angstroms
//from the target, and one water. With nframes > 1, residue 3 moves out of
//range for the second half of the trajectory.
func testSystem(Te *testing.T, nframes int) *System {
	atoms := []*Atom{
		{Name: "CA", ID: 1, MolName: "ALA", MolID: 1, Chain: "A"},
		{Name: "CB", ID: 2, MolName: "ALA", MolID: 1, Chain: "A"},
		{Name: "CA", ID: 3, MolName: "GLY", MolID: 2, Chain: "B"},
		{Name: "CA", ID: 4, MolName: "SER", MolID: 3, Chain: "B"},
		{Name: "CA", ID: 5, MolName: "LYS", MolID: 4, Chain: "B"},
		{Name: "OW", ID: 6, MolName: "SOL", MolID: 5, Chain: "B"},
	}
	var frames []*mat.Dense
	for f := 0; f < nframes; f++ {
		res3x := 5.0
		if nframes > 1 && f >= nframes/2 {
			res3x = 20.0
		}
		frames = append(frames, mat.NewDense(6, 3, []float64{
			0, 0, 0,
			1, 0, 0,
			3, 0, 0,
			res3x, 0, 0,
			50, 0, 0,
			2, 2, 0,
		}))
	}
	mol, err := NewSystem(atoms, frames)
	if err != nil {
		Te.Fatal(err)
	}
	return mol
}

func TestResolveTarget(Te *testing.T) {
	an := NewAnalyzer(testSystem(Te, 1))
	target, err := an.ResolveTarget("chain A")
	if err != nil {
		Te.Fatal(err)
	}
	if len(target.Atoms) != 2 || target.Atoms[0] != 0 || target.Atoms[1] != 1 {
		Te.Errorf("target atoms %v, want [0 1]", target.Atoms)
	}
	if len(target.Residues) != 1 || target.Residues[0] != 1 {
		Te.Errorf("target residues %v, want [1]", target.Residues)
	}
	_, err = an.ResolveTarget("resname NONE")
	if !errors.Is(err, ErrEmptySelection) {
		Te.Errorf("expected ErrEmptySelection, got %v", err)
	}
}

//TestNearbyStatic also checks the self-exclusion rule: the target residue is
//itself protein and at zero distance from itself, yet never "nearby".
func TestNearbyStatic(Te *testing.T) {
	an := NewAnalyzer(testSystem(Te, 1))
	target, err := an.ResolveTarget("chain A")
	if err != nil {
		Te.Fatal(err)
	}
	env, err := an.NearbyStatic(target, 6.0)
	if err != nil {
		Te.Fatal(err)
	}
	want := []int{2, 3}
	if len(env.Residues) != len(want) {
		Te.Fatalf("environment %v, want %v", env.Residues, want)
	}
	for i := range want {
		if env.Residues[i] != want[i] {
			Te.Fatalf("environment %v, want %v", env.Residues, want)
		}
	}
	for _, r := range env.Residues {
		if r == 1 {
			Te.Error("target residue leaked into its own environment")
		}
	}
	if _, err = an.NearbyStatic(target, -1); !errors.Is(err, ErrInvalidParameter) {
		Te.Errorf("negative cutoff: expected ErrInvalidParameter, got %v", err)
	}
}

//TestOccupancyBoundary: residue 3 contacts in exactly 5 of 10 frames, so a
//0.5 threshold keeps it (inclusive boundary) and 0.51 drops it.
func TestOccupancyBoundary(Te *testing.T) {
	an := NewAnalyzer(testSystem(Te, 10))
	target, err := an.ResolveTarget("chain A")
	if err != nil {
		Te.Fatal(err)
	}
	env, err := an.NearbyTrajectory(target, 6.0, 0.5)
	if err != nil {
		Te.Fatal(err)
	}
	if !containsInt(env.Residues, 3) {
		Te.Errorf("occupancy 0.5: residue 3 missing from %v", env.Residues)
	}
	if !containsInt(env.Residues, 2) {
		Te.Errorf("occupancy 0.5: residue 2 missing from %v", env.Residues)
	}
	env, err = an.NearbyTrajectory(target, 6.0, 0.51)
	if err != nil {
		Te.Fatal(err)
	}
	if containsInt(env.Residues, 3) {
		Te.Errorf("occupancy 0.51: residue 3 should be excluded, got %v", env.Residues)
	}
	if env.Frames != 10 {
		Te.Errorf("scanned %d frames, want 10", env.Frames)
	}
}

func TestTrajectoryErrors(Te *testing.T) {
	an := NewAnalyzer(testSystem(Te, 1))
	target, err := an.ResolveTarget("chain A")
	if err != nil {
		Te.Fatal(err)
	}
	if _, err = an.NearbyTrajectory(target, 6.0, 0.5); !errors.Is(err, ErrTrajectoryUnavailable) {
		Te.Errorf("expected ErrTrajectoryUnavailable, got %v", err)
	}
	an = NewAnalyzer(testSystem(Te, 10))
	if _, err = an.NearbyTrajectory(target, 6.0, 0); !errors.Is(err, ErrInvalidParameter) {
		Te.Errorf("occupancy 0: expected ErrInvalidParameter, got %v", err)
	}
	if _, err = an.NearbyTrajectory(target, 6.0, 1.2); !errors.Is(err, ErrInvalidParameter) {
		Te.Errorf("occupancy 1.2: expected ErrInvalidParameter, got %v", err)
	}
}

func TestBuildSolute(Te *testing.T) {
	mol := testSystem(Te, 1)
	an := NewAnalyzer(mol)
	target, err := an.ResolveTarget("chain A")
	if err != nil {
		Te.Fatal(err)
	}
	env, err := an.NearbyStatic(target, 6.0)
	if err != nil {
		Te.Fatal(err)
	}
	sol, err := BuildSolute(mol, target, env)
	if err != nil {
		Te.Fatal(err)
	}
	//residues 1 (target), 2 and 3 (environment) -> atoms 0,1,2,3
	want := []int{0, 1, 2, 3}
	if len(sol.Atoms) != len(want) {
		Te.Fatalf("solute atoms %v, want %v", sol.Atoms, want)
	}
	for i := range want {
		if sol.Atoms[i] != want[i] {
			Te.Fatalf("solute atoms %v, want %v", sol.Atoms, want)
		}
	}
	//target atoms must be a subset of the solute
	for _, a := range target.Atoms {
		if !sol.Contains(a) {
			Te.Errorf("target atom %d missing from solute", a)
		}
	}
	fa := sol.FileAtoms()
	if fa[0] != 1 || fa[len(fa)-1] != 4 {
		Te.Errorf("file numbering %v, want 1..4", fa)
	}
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
