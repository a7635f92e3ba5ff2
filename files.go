/*
 * files.go, part of TakeA-REST2.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"gonum.org/v1/gonum/mat"
)

const nm2A = 10.0 //GRO files store nanometers, we keep Angstroms

// ReadStructure reads a GRO or PDB coordinate file, possibly gzip-compressed
// (".gro", ".pdb", ".gro.gz", ".pdb.gz"). Concatenated GRO frames and PDB
// MODEL records become trajectory frames of the returned System.
func ReadStructure(name string) (*System, error) {
	r, err := openMaybeGzip(name)
	if err != nil {
		return nil, fmt.Errorf("rest2/ReadStructure: %w", err)
	}
	defer r.Close()
	atoms, frames, err := readFrames(name, r)
	if err != nil {
		return nil, fmt.Errorf("rest2/ReadStructure: %s: %w", name, err)
	}
	return NewSystem(atoms, frames)
}

// ReadTrajectory appends the frames of a GRO or PDB file to the system.
// The file must contain the same number of atoms per frame as the system.
func (S *System) ReadTrajectory(name string) error {
	r, err := openMaybeGzip(name)
	if err != nil {
		return fmt.Errorf("rest2/ReadTrajectory: %w", err)
	}
	defer r.Close()
	atoms, frames, err := readFrames(name, r)
	if err != nil {
		return fmt.Errorf("rest2/ReadTrajectory: %s: %w", name, err)
	}
	if len(atoms) != S.Len() {
		return fmt.Errorf("rest2/ReadTrajectory: %s has %d atoms per frame, system has %d", name, len(atoms), S.Len())
	}
	S.frames = append(S.frames, frames...)
	return nil
}

func openMaybeGzip(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(name, ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzipFile{gz: gz, f: f}, nil
}

type gzipFile struct {
	gz *gzip.Reader
	f  *os.File
}

func (g *gzipFile) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipFile) Close() error {
	err := g.gz.Close()
	if err2 := g.f.Close(); err == nil {
		err = err2
	}
	return err
}

func readFrames(name string, r io.Reader) ([]*Atom, []*mat.Dense, error) {
	base := strings.TrimSuffix(name, ".gz")
	switch filepath.Ext(base) {
	case ".gro":
		return groFrames(r)
	case ".pdb", ".ent":
		return pdbFrames(r)
	}
	return nil, nil, fmt.Errorf("unsupported coordinate format %q", filepath.Ext(base))
}

/*** GRO reading ***/

// groFrames reads one or more concatenated GRO frames. Atom data is taken
// from the first frame; later frames contribute coordinates only.
func groFrames(r io.Reader) ([]*Atom, []*mat.Dense, error) {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 1024*1024), 1024*1024)
	var atoms []*Atom
	var frames []*mat.Dense
	for {
		if !scan.Scan() { //title line, EOF here is a normal end
			break
		}
		if !scan.Scan() {
			return nil, nil, fmt.Errorf("gro frame %d truncated before atom count", len(frames))
		}
		natoms, err := strconv.Atoi(strings.TrimSpace(scan.Text()))
		if err != nil || natoms <= 0 {
			return nil, nil, fmt.Errorf("gro frame %d: bad atom count line %q", len(frames), scan.Text())
		}
		if atoms != nil && natoms != len(atoms) {
			return nil, nil, fmt.Errorf("gro frame %d has %d atoms, first frame had %d", len(frames), natoms, len(atoms))
		}
		first := atoms == nil
		coords := mat.NewDense(natoms, 3, nil)
		for i := 0; i < natoms; i++ {
			if !scan.Scan() {
				return nil, nil, fmt.Errorf("gro frame %d truncated at atom %d of %d", len(frames), i+1, natoms)
			}
			at, x, y, z, err := parseGroLine(scan.Text())
			if err != nil {
				return nil, nil, fmt.Errorf("gro frame %d atom %d: %w", len(frames), i+1, err)
			}
			coords.Set(i, 0, x*nm2A)
			coords.Set(i, 1, y*nm2A)
			coords.Set(i, 2, z*nm2A)
			if first {
				atoms = append(atoms, at)
			}
		}
		if !scan.Scan() {
			return nil, nil, fmt.Errorf("gro frame %d truncated before box line", len(frames))
		}
		frames = append(frames, coords)
	}
	if err := scan.Err(); err != nil {
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("no frames found")
	}
	return atoms, frames, nil
}

// GRO fixed columns: resid 0:5, resname 5:10, atom name 10:15, serial 15:20,
// then three 8-column floats in nm. Velocities, if present, are ignored.
func parseGroLine(line string) (*Atom, float64, float64, float64, error) {
	if len(line) < 44 {
		return nil, 0, 0, 0, fmt.Errorf("line too short: %q", line)
	}
	at := new(Atom)
	var err error
	at.MolID, err = strconv.Atoi(strings.TrimSpace(line[0:5]))
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("bad residue number in %q", line)
	}
	at.MolName = strings.TrimSpace(line[5:10])
	at.Name = strings.TrimSpace(line[10:15])
	at.ID, err = strconv.Atoi(strings.TrimSpace(line[15:20]))
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("bad atom number in %q", line)
	}
	at.Symbol = elementFromName(at.Name)
	var xyz [3]float64
	for i := 0; i < 3; i++ {
		field := line[20+8*i : 28+8*i]
		xyz[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, 0, 0, 0, fmt.Errorf("bad coordinate %q in %q", field, line)
		}
	}
	return at, xyz[0], xyz[1], xyz[2], nil
}

/*** PDB reading ***/

// pdbFrames reads ATOM/HETATM records; MODEL/ENDMDL blocks become frames.
func pdbFrames(r io.Reader) ([]*Atom, []*mat.Dense, error) {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 1024*1024), 1024*1024)
	var atoms []*Atom
	var frames []*mat.Dense
	var cur []float64
	first := true
	endFrame := func() error {
		if len(cur) == 0 {
			return nil
		}
		if len(cur) != 3*len(atoms) {
			return fmt.Errorf("pdb frame %d has %d atoms, first frame had %d", len(frames), len(cur)/3, len(atoms))
		}
		frames = append(frames, mat.NewDense(len(atoms), 3, cur))
		cur = nil
		first = false
		return nil
	}
	for scan.Scan() {
		line := scan.Text()
		switch {
		case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
			at, x, y, z, err := parsePdbLine(line)
			if err != nil {
				return nil, nil, err
			}
			if first {
				atoms = append(atoms, at)
			}
			cur = append(cur, x, y, z)
		case strings.HasPrefix(line, "ENDMDL"), strings.HasPrefix(line, "END"):
			if err := endFrame(); err != nil {
				return nil, nil, err
			}
		}
	}
	if err := scan.Err(); err != nil {
		return nil, nil, err
	}
	if err := endFrame(); err != nil { //file without a trailing END
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("no frames found")
	}
	return atoms, frames, nil
}

func parsePdbLine(line string) (*Atom, float64, float64, float64, error) {
	if len(line) < 54 {
		return nil, 0, 0, 0, fmt.Errorf("pdb record too short: %q", line)
	}
	at := new(Atom)
	var err error
	at.ID, err = strconv.Atoi(strings.TrimSpace(line[6:11]))
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("bad serial in %q", line)
	}
	at.Name = strings.TrimSpace(line[12:16])
	at.MolName = strings.TrimSpace(line[17:20])
	at.Chain = strings.TrimSpace(line[21:22])
	at.MolID, err = strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("bad residue number in %q", line)
	}
	var xyz [3]float64
	for i := 0; i < 3; i++ {
		field := line[30+8*i : 38+8*i]
		xyz[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, 0, 0, 0, fmt.Errorf("bad coordinate %q in %q", field, line)
		}
	}
	if len(line) >= 78 {
		at.Symbol = strings.TrimSpace(line[76:78])
	}
	if at.Symbol == "" {
		at.Symbol = elementFromName(at.Name)
	}
	return at, xyz[0], xyz[1], xyz[2], nil
}

// elementFromName guesses the element from an atom name, which is all the
// GRO format gives us. Index-set building never needs more than that.
func elementFromName(name string) string {
	for _, c := range name {
		if c >= 'A' && c <= 'Z' {
			return string(c)
		}
	}
	return ""
}
