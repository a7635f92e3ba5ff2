package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// ScriptOptions holds the knobs for the generated run scripts.
type ScriptOptions struct {
	Command string //mdrun binary, usually gmx_mpi
	CPUs    int    //0 means one per replica
	GPUs    int
	Nsteps  int
	Plumed  bool //pass -plumed input/plumed.dat
}

type scriptData struct {
	ScriptOptions
	Replicas int
	Replex   int
	Multidir string
}

var slurmScript = template.Must(template.New("slurm").Parse(`#!/bin/bash
#SBATCH --job-name=REST2
#SBATCH --ntasks=1
#SBATCH --cpus-per-task={{.CPUs}}
#SBATCH --gres=gpu:{{.GPUs}}
#SBATCH --time=48:00:00
#SBATCH --mem-per-cpu=4G

# module load gromacs/2023
# module load plumed/2.8

echo "REST2 run started at $(date)"
echo "  Replicas: {{.Replicas}}"
echo "  Exchange interval: {{.Replex}} steps"

mpirun -np {{.Replicas}} --oversubscribe {{.Command}} mdrun \
    -v -deffnm output/rest2 \
    -s input/input.tpr \
    -multidir {{.Multidir}} \
    -replex {{.Replex}} \
    -hrex{{if .Plumed}} -plumed input/plumed.dat{{end}} \
    -nsteps {{.Nsteps}}

echo "REST2 run finished at $(date)"
`))

var localScript = template.Must(template.New("local").Parse(`#!/bin/bash

echo "REST2 local run, {{.Replicas}} replicas"
echo "Start time: $(date)"

if ! command -v {{.Command}} &> /dev/null; then
    echo "Error: {{.Command}} not found"
    exit 1
fi

for i in $(seq 0 {{.LastReplica}}); do
    if [ ! -f "replica_$i/input/input.tpr" ]; then
        echo "Error: replica_$i/input/input.tpr not found"
        exit 1
    fi
done

mpirun -np {{.Replicas}} --oversubscribe {{.Command}} mdrun \
    -v -deffnm output/rest2 \
    -s input/input.tpr \
    -multidir {{.Multidir}} \
    -replex {{.Replex}} \
    -hrex{{if .Plumed}} -plumed input/plumed.dat{{end}} \
    -nsteps {{.Nsteps}}

if [ $? -eq 0 ]; then
    echo "Run completed at $(date)"
else
    echo "Run failed"
    exit 1
fi
`))

var testScript = template.Must(template.New("test").Parse(`#!/bin/bash

echo "REST2 test run (1000 steps)"

for i in $(seq 0 {{.LastReplica}}); do
    if [ ! -f "replica_$i/input/input.tpr" ]; then
        echo "Error: replica_$i/input/input.tpr not found"
        exit 1
    fi
done

mpirun -np {{.Replicas}} --oversubscribe {{.Command}} mdrun \
    -v -deffnm output/test \
    -s input/input.tpr \
    -multidir {{.Multidir}} \
    -replex {{.Replex}} \
    -hrex{{if .Plumed}} -plumed input/plumed.dat{{end}} \
    -nsteps 1000
`))

func (d scriptData) LastReplica() int {
	return d.Replicas - 1
}

// WriteScripts renders run_rest2.slurm, run_rest2_local.sh and test_rest2.sh
// into base, all executable.
func (P *Plan) WriteScripts(base string, opt ScriptOptions) error {
	if opt.Command == "" {
		opt.Command = "gmx_mpi"
	}
	if opt.CPUs == 0 {
		opt.CPUs = len(P.Replicas)
	}
	d := scriptData{
		ScriptOptions: opt,
		Replicas:      len(P.Replicas),
		Replex:        P.Replex,
		Multidir:      P.Multidir(),
	}
	for name, tmpl := range map[string]*template.Template{
		"run_rest2.slurm":    slurmScript,
		"run_rest2_local.sh": localScript,
		"test_rest2.sh":      testScript,
	} {
		f, err := os.OpenFile(filepath.Join(base, name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
		if err != nil {
			return fmt.Errorf("plan/WriteScripts: %w", err)
		}
		err = tmpl.Execute(f, d)
		f.Close()
		if err != nil {
			return fmt.Errorf("plan/WriteScripts: %s: %w", name, err)
		}
	}
	return nil
}
