package rest2

import (
	"errors"
	"testing"
)

//TestGRORead checks that a two-frame GRO file is read as a system with a
//trajectory, with nanometers converted to Angstroms.
func TestGRORead(Te *testing.T) {
	mol, err := ReadStructure("test/minimal.gro")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 6 {
		Te.Errorf("read %d atoms, want 6", mol.Len())
	}
	if mol.FrameCount() != 2 {
		Te.Errorf("read %d frames, want 2", mol.FrameCount())
	}
	at := mol.Atom(2)
	if at.Name != "CA" || at.MolName != "GLY" || at.MolID != 2 {
		Te.Errorf("atom 2 parsed as %+v", at)
	}
	x, y, z := mol.Position(2, 0)
	if x != 3.0 || y != 0 || z != 0 {
		Te.Errorf("atom 2 at (%g,%g,%g), want (3,0,0) Angstrom", x, y, z)
	}
	//second frame moved residue 3
	x, _, _ = mol.Position(3, 1)
	if x != 20.0 {
		Te.Errorf("atom 3 frame 1 x = %g, want 20", x)
	}
}

func TestPDBRead(Te *testing.T) {
	mol, err := ReadStructure("test/minimal.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 6 {
		Te.Fatalf("read %d atoms, want 6", mol.Len())
	}
	at := mol.Atom(0)
	if at.Chain != "A" || at.Name != "CA" || at.MolName != "ALA" {
		Te.Errorf("atom 0 parsed as %+v", at)
	}
	if mol.FrameCount() != 1 {
		Te.Errorf("read %d frames, want 1", mol.FrameCount())
	}
	x, _, _ := mol.Position(4, 0)
	if x != 50.0 {
		Te.Errorf("atom 4 x = %g, want 50", x)
	}
}

func TestReadTrajectoryMismatch(Te *testing.T) {
	mol, err := ReadStructure("test/minimal.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	//minimal.gro frames match (6 atoms), so appending works
	if err := mol.ReadTrajectory("test/minimal.gro"); err != nil {
		Te.Fatal(err)
	}
	if mol.FrameCount() != 3 {
		Te.Errorf("got %d frames after append, want 3", mol.FrameCount())
	}
}

func TestSelection(Te *testing.T) {
	mol, err := ReadStructure("test/minimal.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	cases := []struct {
		query string
		want  []int
	}{
		{"chain A", []int{0, 1}},
		{"protein", []int{0, 1, 2, 3, 4}},
		{"resname SOL", []int{5}},
		{"resid 2-3", []int{2, 3}},
		{"name CA and chain B", []int{2, 3, 4}},
		{"chain A or resid 4", []int{0, 1, 4}},
		{"protein and not name CB", []int{0, 2, 3, 4}},
		{"backbone", []int{0, 2, 3, 4}},
		{"name C*", []int{0, 1, 2, 3, 4}}, //wildcard atom names
		{"not name C?", []int{5}},
		{"name OW CB", []int{1, 5}},
	}
	for _, c := range cases {
		got, err := mol.SelectAtoms(c.query)
		if err != nil {
			Te.Errorf("query %q: %v", c.query, err)
			continue
		}
		if len(got) != len(c.want) {
			Te.Errorf("query %q: got %v, want %v", c.query, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				Te.Errorf("query %q: got %v, want %v", c.query, got, c.want)
				break
			}
		}
	}
}

func TestSelectionEmpty(Te *testing.T) {
	mol, err := ReadStructure("test/minimal.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	_, err = mol.SelectAtoms("resname XXX")
	if !errors.Is(err, ErrEmptySelection) {
		Te.Errorf("expected ErrEmptySelection, got %v", err)
	}
	_, err = mol.SelectAtoms("bogus keyword")
	if err == nil {
		Te.Error("expected a parse error for an unknown keyword")
	}
}

func TestIndexConversion(Te *testing.T) {
	if FileIndex(0) != 1 || MemIndex(1) != 0 {
		Te.Error("index base conversion is broken")
	}
	if MemIndex(FileIndex(41)) != 41 {
		Te.Error("conversion round-trip is broken")
	}
}
