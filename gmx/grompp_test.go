package gmx

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rest2 "github.com/myxu95/TakeA-REST2"
)

// writes a shell script standing in for gmx. It copies the -p file to the
// -pp path, like grompp -pp does modulo preprocessing.
func stubGmx(Te *testing.T, dir, body string) string {
	if runtime.GOOS == "windows" {
		Te.Skip("stub scripts need a POSIX shell")
	}
	name := filepath.Join(dir, "gmx")
	require.NoError(Te, os.WriteFile(name, []byte("#!/bin/sh\n"+body), 0755))
	return name
}

func setup(Te *testing.T) (dir, structure, topology, mdp string) {
	dir = Te.TempDir()
	structure = filepath.Join(dir, "md.gro")
	topology = filepath.Join(dir, "topol.top")
	mdp = filepath.Join(dir, "temp.mdp")
	require.NoError(Te, os.WriteFile(structure, []byte("t\n0\n   0.0 0.0 0.0\n"), 0644))
	require.NoError(Te, os.WriteFile(topology, []byte("[ system ]\ntest\n"), 0644))
	require.NoError(Te, WriteMDP(mdp))
	return dir, structure, topology, mdp
}

func TestPreprocess(Te *testing.T) {
	dir, structure, topology, mdp := setup(Te)
	script := `
while [ $# -gt 0 ]; do
  case "$1" in
    -p) top="$2"; shift 2;;
    -pp) out="$2"; shift 2;;
    *) shift;;
  esac
done
cp "$top" "$out"
touch temp.tpr
`
	G := &Grompp{Command: stubGmx(Te, dir, script), MDP: mdp}
	out := filepath.Join(dir, "processed.top")
	require.NoError(Te, G.Preprocess(context.Background(), structure, topology, out))
	b, err := os.ReadFile(out)
	require.NoError(Te, err)
	assert.Contains(Te, string(b), "[ system ]")
	//the scratch temp.tpr must not leak into the working directory
	_, err = os.Stat(filepath.Join(dir, "temp.tpr"))
	assert.True(Te, os.IsNotExist(err))
}

func TestPreprocessSkipsExisting(Te *testing.T) {
	dir, structure, topology, mdp := setup(Te)
	out := filepath.Join(dir, "processed.top")
	require.NoError(Te, os.WriteFile(out, []byte("already here\n"), 0644))
	//a command that would fail if invoked
	G := &Grompp{Command: stubGmx(Te, dir, "exit 1\n"), MDP: mdp}
	require.NoError(Te, G.Preprocess(context.Background(), structure, topology, out))
	b, err := os.ReadFile(out)
	require.NoError(Te, err)
	assert.Equal(Te, "already here\n", string(b))
}

func TestPreprocessFailure(Te *testing.T) {
	dir, structure, topology, mdp := setup(Te)
	G := &Grompp{Command: stubGmx(Te, dir, "echo 'Fatal error' >&2\nexit 1\n"), MDP: mdp}
	err := G.Preprocess(context.Background(), structure, topology, filepath.Join(dir, "processed.top"))
	require.ErrorIs(Te, err, rest2.ErrExternalTool)
	assert.Contains(Te, err.Error(), "Fatal error")
}

func TestPreprocessNoOutput(Te *testing.T) {
	dir, structure, topology, mdp := setup(Te)
	//exits cleanly but writes nothing
	G := &Grompp{Command: stubGmx(Te, dir, "exit 0\n"), MDP: mdp}
	err := G.Preprocess(context.Background(), structure, topology, filepath.Join(dir, "processed.top"))
	require.ErrorIs(Te, err, rest2.ErrExternalTool)
}

func TestPreprocessMissingInput(Te *testing.T) {
	dir, _, topology, mdp := setup(Te)
	G := &Grompp{Command: "gmx", MDP: mdp}
	err := G.Preprocess(context.Background(), filepath.Join(dir, "nope.gro"), topology, filepath.Join(dir, "out.top"))
	require.Error(Te, err)
}
