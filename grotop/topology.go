/*
 * topology.go, part of TakeA-REST2
 *
 *
 * Copyright 2026 The TakeA-REST2 developers
 *
 *
 *  This program is free software; you can redistribute it and/or modify
 *  it under the terms of the GNU Lesser General Public License as published by
 *  the Free Software Foundation; either version 3 of the License, or
 *  (at your option) any later version.
 *
 *  This program is distributed in the hope that it will be useful,
 *  but WITHOUT ANY WARRANTY; without even the implied warranty of
 *  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 *  GNU General Public License for more details.
 *
 *  You should have received a copy of the GNU General Public License along
 *  with this program; if not, write to the Free Software Foundation, Inc.,
 *  51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 *
 *
 */

/*
Package gro reads, annotates and writes Gromacs topology (top/itp) files
for solute tempering. Files are kept as lines of text, never as a parsed
tree, so everything the annotator does not touch survives byte for byte.
*/
package gro

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var fi func(string) []string = strings.Fields
var sf func(string, ...any) string = fmt.Sprintf

// Returns a string without gromacs comments (sequences starting with ';'),
// trailing and leading spaces, tabs and newlines
func cleanString(s string) string {
	f := strings.Split(s, ";")[0]
	return strings.Trim(f, "\n\t ")

}

type topHeader struct {
	wany *regexp.Regexp
	spec map[string]*regexp.Regexp
}

func NewTopHeader() *topHeader {
	R := new(topHeader)
	R.wany = regexp.MustCompile(`\[\p{Zs}*.*\p{Zs}*\]`)
	R.spec = map[string]*regexp.Regexp{
		"moleculetype": regexp.MustCompile(`\[\p{Zs}*moleculetype\p{Zs}*\]`),
		"atoms":        regexp.MustCompile(`\[\p{Zs}*atoms\p{Zs}*\]`),
		"molecules":    regexp.MustCompile(`\[\p{Zs}*molecules\p{Zs}*\]`),
	}
	return R

}

// Returns true if the line is a Gromacs header. It discards comments.
func (T *topHeader) Is(line string) bool {
	return T.wany.MatchString(cleanString(line))
}

// Returns a string indicating which Gromacs top file header
// the line is, or an empty string if the line is not a header.
func (T *topHeader) Which(line string) string {
	line = cleanString(line)
	if !T.wany.MatchString(line) {
		return ""
	}
	for k, v := range T.spec {
		if v.MatchString(line) {
			return k
		}
	}
	return ""
}

// A Gromacs topology held in memory as its lines, newlines included.
// Lines the annotator leaves alone are written back unchanged.
type Document struct {
	lines []string
}

// Reads a topology from r. The only transformation applied is splitting
// into lines, so Write reproduces the input exactly.
func Read(r io.Reader) (*Document, error) {
	D := new(Document)
	buf := bufio.NewReader(r)
	var l string
	var err error
	for l, err = buf.ReadString('\n'); err == nil; l, err = buf.ReadString('\n') {
		D.lines = append(D.lines, l)
	}
	if err != io.EOF {
		return nil, fmt.Errorf("gro/Read: %w", err)
	}
	if l != "" {
		// file didn't end in a newline
		D.lines = append(D.lines, l)
	}
	return D, nil
}

// Reads a topology from the file name.
func Load(name string) (*Document, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("gro/Load: %w", err)
	}
	defer f.Close()
	D, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("gro/Load: %s: %w", name, err)
	}
	return D, nil
}

// The number of lines in the document.
func (D *Document) Len() int {
	return len(D.lines)
}

// Returns the ith (0-based) line, newline included.
func (D *Document) Line(i int) string {
	return D.lines[i]
}

func (D *Document) setLine(i int, s string) {
	D.lines[i] = s
}

// Writes the document to w.
func (D *Document) Write(w io.Writer) error {
	for i, v := range D.lines {
		if _, err := io.WriteString(w, v); err != nil {
			return fmt.Errorf("gro/Document.Write: line %d: %w", i+1, err)
		}
	}
	return nil
}

// Writes the document to the file name, creating or truncating it.
func (D *Document) WriteFile(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("gro/Document.WriteFile: %w", err)
	}
	defer f.Close()
	return D.Write(f)
}

func (D *Document) String() string {
	return strings.Join(D.lines, "")
}
