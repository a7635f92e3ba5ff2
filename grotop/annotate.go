package gro

import (
	"fmt"
	"strconv"
	"strings"

	rest2 "github.com/myxu95/TakeA-REST2"
)

// Marker is the suffix appended to the atom-type field of solute atoms.
// Force-field files for solute tempering duplicate every scaled type under
// its underscored name, and PLUMED's partial_tempering keys on it.
const Marker = "_"

// Anything with a solute-membership test over 0-based atom indices.
// *rest2.SoluteSet satisfies it.
type Membership interface {
	Contains(i int) bool
}

// Stats reports what an annotation pass did. Per-line anomalies go into
// Warnings instead of aborting the pass, the caller decides whether to log
// them.
type Stats struct {
	Molecule      string   //the moleculetype that was annotated
	Molecules     []string //every moleculetype found in the document
	TotalAtoms    int      //atom lines seen in the annotated molecule
	Modified      int      //atom lines that got the marker this pass
	AlreadyMarked int      //solute atoms whose type carried the marker already
	Warnings      []string
}

// The per-molecule scan state. An atomLine callback runs for every data line
// inside an in-scope [ atoms ] section.
type scanner struct {
	header   *topHeader
	molecule string //"" means annotate the first moleculetype only
}

func (S *scanner) run(D *Document, st *Stats, atomLine func(i int, clean string)) {
	inMoltype := false
	inAtoms := false
	inScope := false
	scoped := false //have we already picked our molecule?
	for i := 0; i < D.Len(); i++ {
		line := D.Line(i)
		clean := cleanString(line)
		if S.header.Is(line) {
			switch S.header.Which(line) {
			case "moleculetype":
				inMoltype = true
				inAtoms = false
			case "atoms":
				inMoltype = false
				inAtoms = true
			default:
				inMoltype = false
				inAtoms = false
			}
			continue
		}
		if clean == "" || strings.HasPrefix(clean, "#") {
			continue
		}
		if inMoltype {
			//first data line after [ moleculetype ] names the molecule
			name := fi(clean)[0]
			st.Molecules = append(st.Molecules, name)
			if S.molecule == "" {
				inScope = !scoped
			} else {
				inScope = name == S.molecule
			}
			if inScope {
				st.Molecule = name
				scoped = true
			}
			inMoltype = false
			continue
		}
		if inAtoms && inScope {
			atomLine(i, clean)
		}
	}
}

// Annotate appends the marker suffix to the atom-type field of every atom in
// the solute set, inside the [ atoms ] section of the given moleculetype (or
// of the first moleculetype in the document, if molecule is empty). Every
// other line, and every untouched byte of modified lines, is preserved.
// Running it twice is the same as running it once. Atom lines it cannot
// parse are passed through and reported in the returned Stats.
func Annotate(D *Document, solute Membership, molecule string) (*Stats, error) {
	st := new(Stats)
	sc := &scanner{header: NewTopHeader(), molecule: molecule}
	seenAtoms := false
	sc.run(D, st, func(i int, clean string) {
		seenAtoms = true
		st.TotalAtoms++
		f := fi(clean)
		if len(f) < 8 {
			st.Warnings = append(st.Warnings, sf("line %d: atom line has %d fields, left unchanged", i+1, len(f)))
			return
		}
		nr, err := strconv.Atoi(f[0])
		if err != nil {
			st.Warnings = append(st.Warnings, sf("line %d: can't read atom number %q, left unchanged", i+1, f[0]))
			return
		}
		if !solute.Contains(rest2.MemIndex(nr)) {
			return
		}
		if strings.HasSuffix(f[1], Marker) {
			st.AlreadyMarked++
			return
		}
		D.setLine(i, markType(D.Line(i)))
		st.Modified++
	})
	if !seenAtoms {
		return st, fmt.Errorf("gro/Annotate: molecule %q: %w", molecule, rest2.ErrNoAtomsSection)
	}
	return st, nil
}

// Verify re-scans an annotated document and errors if any solute atom in
// scope is missing the marker, or any atom outside the set carries it.
func Verify(D *Document, solute Membership, molecule string) error {
	st := new(Stats)
	sc := &scanner{header: NewTopHeader(), molecule: molecule}
	var missing, stray []int
	seenAtoms := false
	sc.run(D, st, func(i int, clean string) {
		seenAtoms = true
		f := fi(clean)
		if len(f) < 8 {
			return
		}
		nr, err := strconv.Atoi(f[0])
		if err != nil {
			return
		}
		marked := strings.HasSuffix(f[1], Marker)
		if solute.Contains(rest2.MemIndex(nr)) {
			if !marked {
				missing = append(missing, nr)
			}
		} else if marked {
			stray = append(stray, nr)
		}
	})
	if !seenAtoms {
		return fmt.Errorf("gro/Verify: molecule %q: %w", molecule, rest2.ErrNoAtomsSection)
	}
	if len(missing) > 0 || len(stray) > 0 {
		return fmt.Errorf("gro/Verify: %d solute atoms unmarked %v, %d non-solute atoms marked %v", len(missing), missing, len(stray), stray)
	}
	return nil
}

// Appends the marker right after the second whitespace-separated field,
// leaving every other byte of the line where it was.
func markType(line string) string {
	field := 0
	inField := false
	for i, r := range line {
		white := r == ' ' || r == '\t' || r == '\n' || r == '\r'
		if !white && !inField {
			inField = true
			field++
		}
		if white && inField {
			inField = false
			if field == 2 {
				return line[:i] + Marker + line[i:]
			}
		}
	}
	//type was the last field on the line, no trailing newline
	return line + Marker
}
