/*
Package ladder builds the replica temperature ladder for solute tempering
and the per-replica scaling factors derived from it. Replica 0 always runs
at the reference temperature, so its scaling factor is exactly 1.
*/
package ladder

import (
	"fmt"
	"math"

	rest2 "github.com/myxu95/TakeA-REST2"
	"gonum.org/v1/gonum/floats"
)

// Supported ladder spacing methods.
const (
	Linear      = "linear"
	Exponential = "exponential"
)

// A Ladder holds one temperature and one scaling factor per replica, in
// replica order. Scalings[i] is Tref/Temperatures[i], the factor PLUMED's
// partial_tempering applies to solute-solute interactions.
type Ladder struct {
	Method       string
	Temperatures []float64 //K
	Scalings     []float64
	Tref         float64 //K, the lowest temperature in the ladder
}

// New builds an n-replica ladder spanning [tmin, tmax] with the given
// spacing method. All parameters are checked before anything is computed.
func New(tmin, tmax float64, n int, method string) (*Ladder, error) {
	if tmin <= 0 {
		return nil, fmt.Errorf("ladder/New: minimum temperature %.2f K: %w", tmin, rest2.ErrInvalidParameter)
	}
	if tmax <= tmin {
		return nil, fmt.Errorf("ladder/New: maximum temperature %.2f K not above minimum %.2f K: %w", tmax, tmin, rest2.ErrInvalidParameter)
	}
	if n < 1 {
		return nil, fmt.Errorf("ladder/New: %d replicas: %w", n, rest2.ErrInvalidParameter)
	}
	if method != Linear && method != Exponential {
		return nil, fmt.Errorf("ladder/New: unknown spacing method %q: %w", method, rest2.ErrInvalidParameter)
	}
	L := &Ladder{Method: method}
	switch {
	case n == 1:
		//a single replica just runs at the reference temperature
		L.Temperatures = []float64{tmin}
	case method == Linear:
		L.Temperatures = floats.Span(make([]float64, n), tmin, tmax)
	default:
		ratio := math.Pow(tmax/tmin, 1.0/float64(n-1))
		L.Temperatures = make([]float64, n)
		for i := range L.Temperatures {
			L.Temperatures[i] = tmin * math.Pow(ratio, float64(i))
		}
	}
	L.Tref = floats.Min(L.Temperatures)
	L.Scalings = make([]float64, n)
	for i, T := range L.Temperatures {
		L.Scalings[i] = L.Tref / T
	}
	return L, nil
}

// The number of replicas in the ladder.
func (L *Ladder) Len() int {
	return len(L.Temperatures)
}

// SqrtScalings returns sqrt(lambda) per replica, the factor applied to
// solute-solvent interactions. Solvent-solvent stays at 1.
func (L *Ladder) SqrtScalings() []float64 {
	r := make([]float64, len(L.Scalings))
	for i, v := range L.Scalings {
		r[i] = math.Sqrt(v)
	}
	return r
}
