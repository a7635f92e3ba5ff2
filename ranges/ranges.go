/*
Package ranges compresses sorted atom-number lists into the comma-separated
run notation PLUMED uses for ATOMS= lists ("1-3,5-6,9"), and parses that
notation back. Long encodings are wrapped with line continuations so the
directive stays readable.
*/
package ranges

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	rest2 "github.com/myxu95/TakeA-REST2"
)

// Width is the column limit after which Encode starts a continuation line.
const Width = 80

const continuation = " \\\n    "

// Encode writes the given atom numbers as run notation, wrapping lines
// longer than Width with a backslash continuation. The input need not be
// sorted and may hold duplicates, the output is canonical either way.
func Encode(indices []int) (string, error) {
	if len(indices) == 0 {
		return "", fmt.Errorf("ranges/Encode: %w", rest2.ErrEmptyIndexSet)
	}
	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Ints(sorted)
	var runs []string
	start := sorted[0]
	end := start
	flush := func() {
		if start == end {
			runs = append(runs, strconv.Itoa(start))
		} else {
			runs = append(runs, fmt.Sprintf("%d-%d", start, end))
		}
	}
	for _, v := range sorted[1:] {
		if v == end || v == end+1 {
			end = v
			continue
		}
		flush()
		start = v
		end = v
	}
	flush()
	joined := strings.Join(runs, ",")
	if len(joined) <= Width {
		return joined, nil
	}
	//wrap into continuation lines
	var lines []string
	cur := ""
	for _, r := range runs {
		if cur != "" && len(cur)+len(r)+1 > Width {
			lines = append(lines, cur)
			cur = r
			continue
		}
		if cur == "" {
			cur = r
		} else {
			cur += "," + r
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return strings.Join(lines, continuation), nil
}

// Decode parses run notation back into the full sorted list of atom
// numbers. Continuation markers act as separators between runs, whether
// or not the line break also carries a comma.
func Decode(s string) ([]int, error) {
	s = strings.ReplaceAll(s, "\\", ",")
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, " ", "")
	for strings.Contains(s, ",,") {
		s = strings.ReplaceAll(s, ",,", ",")
	}
	s = strings.Trim(s, ",")
	if s == "" {
		return nil, fmt.Errorf("ranges/Decode: %w", rest2.ErrEmptyIndexSet)
	}
	var out []int
	for _, run := range strings.Split(s, ",") {
		a, b, found := strings.Cut(run, "-")
		lo, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("ranges/Decode: bad run %q: %w", run, err)
		}
		hi := lo
		if found {
			hi, err = strconv.Atoi(b)
			if err != nil {
				return nil, fmt.Errorf("ranges/Decode: bad run %q: %w", run, err)
			}
		}
		if hi < lo {
			return nil, fmt.Errorf("ranges/Decode: descending run %q", run)
		}
		for i := lo; i <= hi; i++ {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out, nil
}
