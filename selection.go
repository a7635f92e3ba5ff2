/*
 * selection.go, part of TakeA-REST2.
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
	"path"
	"strconv"
	"strings"
)

//The selection grammar understood by EvalSelection:
//
//  protein | backbone | all
//  chain <id> [<id>...]
//  resname <name> [<name>...]
//  resid <n|a-b> [<n|a-b>...]
//  name <atomname> [<atomname>...]
//
//Atom names accept * and ? wildcards, so "name H*" matches every
//hydrogen.
//Clauses can be combined with "and" / "or" (evaluated left to right, no
//precedence) and any clause can be prefixed with "not". Queries like
//"chain A", "resname LIG" or "protein and not name H*" cover what a REST2
//target selection needs; anything fancier belongs in a proper selection
//engine, not here.

// residue names treated as protein by the "protein" keyword.
var proteinResnames = map[string]bool{
	"ALA": true, "ARG": true, "ASN": true, "ASP": true, "CYS": true,
	"GLN": true, "GLU": true, "GLY": true, "HIS": true, "ILE": true,
	"LEU": true, "LYS": true, "MET": true, "PHE": true, "PRO": true,
	"SER": true, "THR": true, "TRP": true, "TYR": true, "VAL": true,
	//protonation variants and caps seen in Amber/Charmm topologies
	"HID": true, "HIE": true, "HIP": true, "HSD": true, "HSE": true,
	"HSP": true, "CYX": true, "ASH": true, "GLH": true, "LYN": true,
	"ACE": true, "NME": true, "NMA": true,
}

var backboneNames = map[string]bool{"N": true, "CA": true, "C": true, "O": true}

type selClause struct {
	or     bool //joined to the previous clause with "or" instead of "and"
	negate bool
	match  func(*Atom) bool
}

// EvalSelection resolves a selection query against mol and returns the sorted
// 0-based indices of the matching atoms. A syntactically valid query that
// matches nothing returns ErrEmptySelection.
func EvalSelection(query string, mol Atomer) ([]int, error) {
	clauses, err := parseSelection(query)
	if err != nil {
		return nil, fmt.Errorf("rest2/EvalSelection: %w", err)
	}
	ret := make([]int, 0, mol.Len()/4)
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		ok := false
		for j, c := range clauses {
			m := c.match(at)
			if c.negate {
				m = !m
			}
			if j == 0 {
				ok = m
			} else if c.or {
				ok = ok || m
			} else {
				ok = ok && m
			}
		}
		if ok {
			ret = append(ret, i)
		}
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("rest2/EvalSelection: query %q: %w", query, ErrEmptySelection)
	}
	return ret, nil
}

func parseSelection(query string) ([]selClause, error) {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty selection query")
	}
	var clauses []selClause
	i := 0
	for i < len(fields) {
		var c selClause
		if len(clauses) > 0 {
			switch strings.ToLower(fields[i]) {
			case "and":
				i++
			case "or":
				c.or = true
				i++
			default:
				return nil, fmt.Errorf("expected and/or before %q", fields[i])
			}
			if i >= len(fields) {
				return nil, fmt.Errorf("query %q ends with a conjunction", query)
			}
		}
		if strings.EqualFold(fields[i], "not") {
			c.negate = true
			i++
			if i >= len(fields) {
				return nil, fmt.Errorf("query %q ends with \"not\"", query)
			}
		}
		keyword := strings.ToLower(fields[i])
		i++
		args, next := clauseArgs(fields, i)
		i = next
		match, err := buildClause(keyword, args)
		if err != nil {
			return nil, err
		}
		c.match = match
		clauses = append(clauses, c)
	}
	return clauses, nil
}

// clauseArgs collects the argument tokens of a clause, stopping at the next
// conjunction or "not".
func clauseArgs(fields []string, i int) ([]string, int) {
	var args []string
	for i < len(fields) {
		lf := strings.ToLower(fields[i])
		if lf == "and" || lf == "or" || lf == "not" {
			break
		}
		args = append(args, fields[i])
		i++
	}
	return args, i
}

func buildClause(keyword string, args []string) (func(*Atom) bool, error) {
	switch keyword {
	case "all":
		return func(*Atom) bool { return true }, nil
	case "protein":
		return func(a *Atom) bool { return proteinResnames[a.MolName] }, nil
	case "backbone":
		return func(a *Atom) bool { return proteinResnames[a.MolName] && backboneNames[a.Name] }, nil
	case "chain":
		if len(args) == 0 {
			return nil, fmt.Errorf("chain clause needs at least one chain id")
		}
		set := stringSet(args)
		return func(a *Atom) bool { return set[a.Chain] }, nil
	case "resname":
		if len(args) == 0 {
			return nil, fmt.Errorf("resname clause needs at least one residue name")
		}
		set := stringSet(args)
		return func(a *Atom) bool { return set[a.MolName] }, nil
	case "name":
		if len(args) == 0 {
			return nil, fmt.Errorf("name clause needs at least one atom name")
		}
		return nameMatcher(args), nil
	case "resid":
		if len(args) == 0 {
			return nil, fmt.Errorf("resid clause needs at least one residue number or range")
		}
		ids, err := parseResidArgs(args)
		if err != nil {
			return nil, err
		}
		return func(a *Atom) bool { return ids[a.MolID] }, nil
	}
	return nil, fmt.Errorf("unknown selection keyword %q", keyword)
}

// nameMatcher matches atom names. Arguments holding * or ? are treated
// as glob patterns, the rest match exactly.
func nameMatcher(args []string) func(*Atom) bool {
	exact := make(map[string]bool, len(args))
	var globs []string
	for _, a := range args {
		if strings.ContainsAny(a, "*?") {
			globs = append(globs, a)
		} else {
			exact[a] = true
		}
	}
	return func(a *Atom) bool {
		if exact[a.Name] {
			return true
		}
		for _, g := range globs {
			if ok, _ := path.Match(g, a.Name); ok {
				return true
			}
		}
		return false
	}
}

func parseResidArgs(args []string) (map[int]bool, error) {
	ids := make(map[int]bool)
	for _, a := range args {
		if lo, hi, ok := strings.Cut(a, "-"); ok && lo != "" {
			l, err1 := strconv.Atoi(lo)
			h, err2 := strconv.Atoi(hi)
			if err1 != nil || err2 != nil || h < l {
				return nil, fmt.Errorf("bad resid range %q", a)
			}
			for r := l; r <= h; r++ {
				ids[r] = true
			}
			continue
		}
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("bad resid %q", a)
		}
		ids[n] = true
	}
	return ids, nil
}

func stringSet(s []string) map[string]bool {
	set := make(map[string]bool, len(s))
	for _, v := range s {
		set[v] = true
	}
	return set
}
