/*
Package gmx shells out to GROMACS for the one preprocessing step the
annotator needs: gmx grompp -pp, which folds every #include of a topology
into a single self-contained top file.
*/
package gmx

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	rest2 "github.com/myxu95/TakeA-REST2"
)

// A Grompp runs the preprocessor. The zero value uses the gmx binary from
// PATH and requires an MDP file to be set.
type Grompp struct {
	Command string //the GROMACS wrapper binary, "gmx" if empty
	MDP     string //run-parameter file handed to -f, any valid one does
	Force   bool   //regenerate even if the output already exists
}

// Preprocess writes the fully expanded form of topology to output, using
// structure for atom-count checks. If output already exists it is kept,
// unless Force is set. The temp.tpr grompp insists on producing goes to a
// scratch directory and is discarded.
func (G *Grompp) Preprocess(ctx context.Context, structure, topology, output string) error {
	if _, err := os.Stat(output); err == nil && !G.Force {
		return nil
	}
	for _, f := range []string{structure, topology, G.MDP} {
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("gmx/Preprocess: %w", err)
		}
	}
	cmd := G.Command
	if cmd == "" {
		cmd = "gmx"
	}
	structure, topology, output, mdp, err := absAll(structure, topology, output, G.MDP)
	if err != nil {
		return fmt.Errorf("gmx/Preprocess: %w", err)
	}
	scratch, err := os.MkdirTemp("", "grompp")
	if err != nil {
		return fmt.Errorf("gmx/Preprocess: %w", err)
	}
	defer os.RemoveAll(scratch)
	c := exec.CommandContext(ctx, cmd, "grompp",
		"-c", structure,
		"-p", topology,
		"-f", mdp,
		"-o", "temp.tpr",
		"-pp", output)
	c.Dir = scratch
	var stderr bytes.Buffer
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("gmx/Preprocess: %s grompp: %v: %s: %w", cmd, err, tail(stderr.String()), rest2.ErrExternalTool)
	}
	if _, err := os.Stat(output); err != nil {
		return fmt.Errorf("gmx/Preprocess: grompp exited cleanly but wrote no output: %w", rest2.ErrExternalTool)
	}
	return nil
}

func absAll(paths ...string) (string, string, string, string, error) {
	out := make([]string, len(paths))
	for i, p := range paths {
		a, err := filepath.Abs(p)
		if err != nil {
			return "", "", "", "", err
		}
		out[i] = a
	}
	return out[0], out[1], out[2], out[3], nil
}

// grompp is chatty, keep only the end of stderr where the actual error is
func tail(s string) string {
	const keep = 500
	if len(s) <= keep {
		return s
	}
	return "..." + s[len(s)-keep:]
}

// MinimalMDP is a run-parameter file sufficient for preprocessing. The
// parameters never make it into the expanded topology.
const MinimalMDP = `; minimal mdp for gmx grompp -pp
integrator  = md
nsteps      = 0
dt          = 0.002
cutoff-scheme = Verlet
`

// WriteMDP writes MinimalMDP to name so a Grompp can run without the user
// providing an MDP of their own.
func WriteMDP(name string) error {
	if err := os.WriteFile(name, []byte(MinimalMDP), 0644); err != nil {
		return fmt.Errorf("gmx/WriteMDP: %w", err)
	}
	return nil
}
