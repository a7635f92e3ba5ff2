/*
Package plan assembles a replica-exchange run from a temperature ladder and
a solute atom set: the per-replica PLUMED partial-tempering directives, the
replica directory tree with its input files, the run scripts and a machine
readable plan.yaml.
*/
package plan

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	rest2 "github.com/myxu95/TakeA-REST2"
	"github.com/myxu95/TakeA-REST2/ladder"
	"github.com/myxu95/TakeA-REST2/ranges"
)

// A Replica is one rung of the exchange: its ladder position, its effective
// temperature and the interaction scaling that realizes it.
type Replica struct {
	Index       int     `yaml:"index"`
	Temperature float64 `yaml:"temperature"`
	Scaling     float64 `yaml:"scaling"`
	Dir         string  `yaml:"dir"`
}

// A Plan ties the ladder to the solute atoms it will scale. SoluteAtoms are
// 1-based file numbers, ready for PLUMED.
type Plan struct {
	Tref        float64   `yaml:"t_ref"`
	Method      string    `yaml:"method"`
	Replex      int       `yaml:"replex"`
	SoluteAtoms []int     `yaml:"solute_atoms,flow"`
	Replicas    []Replica `yaml:"replicas"`
}

// Build pairs every ladder rung with a replica directory name and attaches
// the solute set. soluteAtoms must already be in file numbering, replex is
// the exchange attempt interval in steps.
func Build(L *ladder.Ladder, soluteAtoms []int, replex int) (*Plan, error) {
	if len(soluteAtoms) == 0 {
		return nil, fmt.Errorf("plan/Build: %w", rest2.ErrEmptySolute)
	}
	if replex < 1 {
		return nil, fmt.Errorf("plan/Build: exchange interval %d: %w", replex, rest2.ErrInvalidParameter)
	}
	P := &Plan{
		Tref:        L.Tref,
		Method:      L.Method,
		Replex:      replex,
		SoluteAtoms: soluteAtoms,
	}
	for i, T := range L.Temperatures {
		P.Replicas = append(P.Replicas, Replica{
			Index:       i,
			Temperature: T,
			Scaling:     L.Scalings[i],
			Dir:         fmt.Sprintf("replica_%d", i),
		})
	}
	return P, nil
}

// Directive returns the PLUMED partial-tempering block for the ith replica.
// TEMP is always the reference temperature, the effective temperature of
// the rung enters only through LAMBDA.
func (P *Plan) Directive(i int) (string, error) {
	if i < 0 || i >= len(P.Replicas) {
		return "", fmt.Errorf("plan/Directive: replica %d of %d: %w", i, len(P.Replicas), rest2.ErrInvalidParameter)
	}
	atoms, err := ranges.Encode(P.SoluteAtoms)
	if err != nil {
		return "", fmt.Errorf("plan/Directive: %w", err)
	}
	return fmt.Sprintf(`PARTIAL_TEMPERING ...
  ATOMS=%s
  TEMP=%.1f
  LAMBDA=%.6f
  LABEL=rest2_scaling
... PARTIAL_TEMPERING

`, atoms, P.Tref, P.Replicas[i].Scaling), nil
}

// Multidir returns the replica directories space separated, as mdrun's
// -multidir flag wants them.
func (P *Plan) Multidir() string {
	s := ""
	for i, r := range P.Replicas {
		if i > 0 {
			s += " "
		}
		s += r.Dir
	}
	return s
}

// Summary writes the ladder as a table, one row per replica.
func (P *Plan) Summary(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Replica", "T (K)", "Lambda", "Directory"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	for _, r := range P.Replicas {
		table.Append([]string{
			fmt.Sprintf("%d", r.Index),
			fmt.Sprintf("%.1f", r.Temperature),
			fmt.Sprintf("%.6f", r.Scaling),
			r.Dir,
		})
	}
	table.Render()
}

// WriteYAML saves the plan to name for later tooling.
func (P *Plan) WriteYAML(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("plan/WriteYAML: %w", err)
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	defer enc.Close()
	if err := enc.Encode(P); err != nil {
		return fmt.Errorf("plan/WriteYAML: %w", err)
	}
	return nil
}

// ReadYAML loads a plan previously saved with WriteYAML.
func ReadYAML(name string) (*Plan, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("plan/ReadYAML: %w", err)
	}
	P := new(Plan)
	if err := yaml.Unmarshal(b, P); err != nil {
		return nil, fmt.Errorf("plan/ReadYAML: %w", err)
	}
	return P, nil
}
