package gro

import (
	"errors"
	"strings"
	"testing"

	rest2 "github.com/myxu95/TakeA-REST2"
)

func loadTop(Te *testing.T) *Document {
	D, err := Load("testdata/protein.top")
	if err != nil {
		Te.Fatal(err)
	}
	return D
}

func TestAnnotate(Te *testing.T) {
	D := loadTop(Te)
	before := D.String()
	//file atoms 1, 2 and 4 of the Protein molecule
	sol := &rest2.SoluteSet{Atoms: []int{0, 1, 3}}
	st, err := Annotate(D, sol, "")
	if err != nil {
		Te.Fatal(err)
	}
	if st.Molecule != "Protein" {
		Te.Errorf("annotated molecule %q, want Protein", st.Molecule)
	}
	if len(st.Molecules) != 2 {
		Te.Errorf("found molecules %v, want 2", st.Molecules)
	}
	if st.TotalAtoms != 6 {
		Te.Errorf("saw %d atom lines, want 6", st.TotalAtoms)
	}
	if st.Modified != 3 {
		Te.Errorf("modified %d atoms, want 3", st.Modified)
	}
	//the 6-field line for atom 5 is reported, not rewritten
	if len(st.Warnings) != 1 || !strings.Contains(st.Warnings[0], "fields") {
		Te.Errorf("warnings %v, want one short-line warning", st.Warnings)
	}
	after := D.String()
	for _, want := range []string{"N3_", "CT_", "C_"} {
		if !strings.Contains(after, want) {
			Te.Errorf("marked type %s missing from output", want)
		}
	}
	//atom 3 is not in the set, its type stays bare (only atom 2's CT gains
	//the marker, so exactly one CT_ shows up)
	if n := strings.Count(after, "CT_"); n != 1 {
		Te.Errorf("found %d CT_ types, want 1", n)
	}
	//the SOL molecule shares atom numbers with the protein but is out of
	//scope, so it must come through untouched
	if strings.Contains(after, "OW_") || strings.Contains(after, "HW_") {
		Te.Error("solvent atom types were marked")
	}
	//each modified line is the original plus one inserted character
	if len(after) != len(before)+3 {
		Te.Errorf("output grew by %d bytes, want 3", len(after)-len(before))
	}
}

func TestAnnotateIdempotent(Te *testing.T) {
	D := loadTop(Te)
	sol := &rest2.SoluteSet{Atoms: []int{0, 1, 3}}
	if _, err := Annotate(D, sol, ""); err != nil {
		Te.Fatal(err)
	}
	once := D.String()
	st, err := Annotate(D, sol, "")
	if err != nil {
		Te.Fatal(err)
	}
	if st.Modified != 0 || st.AlreadyMarked != 3 {
		Te.Errorf("second pass modified %d, already marked %d; want 0 and 3", st.Modified, st.AlreadyMarked)
	}
	if D.String() != once {
		Te.Error("second pass changed the document")
	}
}

func TestAnnotateByName(Te *testing.T) {
	D := loadTop(Te)
	sol := &rest2.SoluteSet{Atoms: []int{0, 1}}
	st, err := Annotate(D, sol, "SOL")
	if err != nil {
		Te.Fatal(err)
	}
	if st.Molecule != "SOL" {
		Te.Errorf("annotated molecule %q, want SOL", st.Molecule)
	}
	if st.Modified != 2 {
		Te.Errorf("modified %d atoms, want 2", st.Modified)
	}
	after := D.String()
	if !strings.Contains(after, "OW_") || !strings.Contains(after, "HW_") {
		Te.Error("solvent atom types were not marked")
	}
	if strings.Contains(after, "N3_") {
		Te.Error("protein atom types were marked when scoping SOL")
	}
}

func TestAnnotatePassthrough(Te *testing.T) {
	D := loadTop(Te)
	before := D.String()
	//empty set: nothing to mark, output byte-identical
	st, err := Annotate(D, &rest2.SoluteSet{}, "")
	if err != nil {
		Te.Fatal(err)
	}
	if st.Modified != 0 {
		Te.Errorf("modified %d atoms with an empty set", st.Modified)
	}
	if D.String() != before {
		Te.Error("annotation with an empty set altered the document")
	}
	//a molecule that isn't there
	_, err = Annotate(D, &rest2.SoluteSet{Atoms: []int{0}}, "DPPC")
	if !errors.Is(err, rest2.ErrNoAtomsSection) {
		Te.Errorf("expected ErrNoAtomsSection, got %v", err)
	}
}

func TestVerify(Te *testing.T) {
	D := loadTop(Te)
	sol := &rest2.SoluteSet{Atoms: []int{0, 1, 3}}
	if err := Verify(D, sol, ""); err == nil {
		Te.Error("verify passed on an unannotated topology")
	}
	if _, err := Annotate(D, sol, ""); err != nil {
		Te.Fatal(err)
	}
	if err := Verify(D, sol, ""); err != nil {
		Te.Errorf("verify failed on a freshly annotated topology: %v", err)
	}
	//a marker outside the set is also an error
	if err := Verify(D, &rest2.SoluteSet{Atoms: []int{0, 1}}, ""); err == nil {
		Te.Error("verify missed a stray marker")
	}
}

func TestMarkType(Te *testing.T) {
	in := "     1    N3      1     ALA     N     1   -0.30   14.01\n"
	out := markType(in)
	if !strings.Contains(out, "N3_ ") {
		Te.Errorf("marker not appended to the type field: %q", out)
	}
	if len(out) != len(in)+1 {
		Te.Errorf("line changed by %d bytes, want 1", len(out)-len(in))
	}
}
