package plan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/sync/errgroup"
)

// Inputs names the files every replica starts from. Topology should already
// be annotated. TPR and Plumed may be empty, in which case they are skipped
// (the plumed.dat still gets the partial-tempering directive).
type Inputs struct {
	Topology string //annotated top file, copied as topol.top
	TPR      string //equilibrated tpr, copied as input.tpr
	Plumed   string //extra PLUMED input appended after the directive
}

var plumedFile = regexp.MustCompile(`FILE=(\w+)\.(\w+)`)

// WriteInputs lays out base/replica_<i>/{input,output} for every replica,
// writing input/plumed.dat, input/topol.top, input/input.tpr and
// replica_info.txt. Replicas are written in parallel, the first error wins.
func (P *Plan) WriteInputs(base string, in Inputs) error {
	var plumedExtra []byte
	if in.Plumed != "" {
		var err error
		plumedExtra, err = os.ReadFile(in.Plumed)
		if err != nil {
			return fmt.Errorf("plan/WriteInputs: %w", err)
		}
	}
	var g errgroup.Group
	for i := range P.Replicas {
		i := i
		g.Go(func() error {
			return P.writeReplica(base, i, in, plumedExtra)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("plan/WriteInputs: %w", err)
	}
	return nil
}

func (P *Plan) writeReplica(base string, i int, in Inputs, plumedExtra []byte) error {
	r := P.Replicas[i]
	dir := filepath.Join(base, r.Dir)
	input := filepath.Join(dir, "input")
	if err := os.MkdirAll(input, 0755); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(dir, "output"), 0755); err != nil {
		return err
	}
	directive, err := P.Directive(i)
	if err != nil {
		return err
	}
	//PLUMED output files get a per-replica suffix so -multidir runs don't
	//collide when post-processing
	extra := plumedFile.ReplaceAll(plumedExtra, []byte(fmt.Sprintf("FILE=${1}_replica%d.${2}", i)))
	pl := append([]byte(directive), '\n')
	pl = append(pl, extra...)
	if err := os.WriteFile(filepath.Join(input, "plumed.dat"), pl, 0644); err != nil {
		return err
	}
	if in.Topology != "" {
		if err := copyFile(in.Topology, filepath.Join(input, "topol.top")); err != nil {
			return err
		}
	}
	if in.TPR != "" {
		if err := copyFile(in.TPR, filepath.Join(input, "input.tpr")); err != nil {
			return err
		}
	}
	info := fmt.Sprintf(`# Replica %d Information
Replica Index: %d
Temperature: %.1f K
REST2 Scaling Factor: %.6f
`, i, i, r.Temperature, r.Scaling)
	return os.WriteFile(filepath.Join(dir, "replica_info.txt"), []byte(info), 0644)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
