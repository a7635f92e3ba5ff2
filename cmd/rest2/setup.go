package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	rest2 "github.com/myxu95/TakeA-REST2"
	"github.com/myxu95/TakeA-REST2/gmx"
	gro "github.com/myxu95/TakeA-REST2/grotop"
	"github.com/myxu95/TakeA-REST2/ladder"
	"github.com/myxu95/TakeA-REST2/plan"
)

var noGromppFlag bool

var setupCmd = newSetupCmd()

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Run the full REST2 preparation pipeline",
		Long: `Select the solute, annotate the topology and write the replica workspace.

The pipeline reads the structure (and trajectory, if configured), resolves
the target selection, collects environment residues within the cutoff,
preprocesses the topology with gmx grompp -pp, marks the solute atom types
and writes one directory per replica plus the run scripts and plan.yaml.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, outcome, err := LoadConfig()
			if err != nil {
				return err
			}
			if outcome == TemplateWritten {
				cmd.Printf("No %s found, wrote a template. Edit it and re-run.\n", configFileName)
				return nil
			}
			configureLogger(verboseFlag)
			return runSetup(cmd, cfg)
		},
	}
	cmd.Flags().BoolVar(&noGromppFlag, "no-grompp", false, "treat files.topology as already preprocessed, do not call gmx")
	return cmd
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, cfg Config) error {
	outDir := viper.GetString(outputDirKey)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	mol, err := rest2.ReadStructure(cfg.Structure)
	if err != nil {
		return err
	}
	if cfg.Trajectory != "" {
		if err := mol.ReadTrajectory(cfg.Trajectory); err != nil {
			return err
		}
	}
	slog.Info("structure loaded", "file", cfg.Structure, "atoms", mol.Len(), "frames", mol.FrameCount())

	an := rest2.NewAnalyzer(mol)
	target, err := an.ResolveTarget(cfg.Target)
	if err != nil {
		return err
	}
	var env *rest2.Environment
	if mol.FrameCount() > 1 {
		env, err = an.NearbyTrajectory(target, cfg.Cutoff, cfg.Occupancy)
	} else {
		env, err = an.NearbyStatic(target, cfg.Cutoff)
	}
	if err != nil {
		return err
	}
	sol, err := rest2.BuildSolute(mol, target, env)
	if err != nil {
		return err
	}
	slog.Info("solute selected", "target_residues", len(target.Residues),
		"environment_residues", len(env.Residues), "solute_atoms", len(sol.Atoms))
	cmd.Printf("Target %q: %d residues, %d environment residues, %d solute atoms\n",
		cfg.Target, len(target.Residues), len(env.Residues), len(sol.Atoms))

	processed, err := preprocessTopology(cmd, cfg, outDir)
	if err != nil {
		return err
	}

	doc, err := gro.Load(processed)
	if err != nil {
		return err
	}
	st, err := gro.Annotate(doc, sol, cfg.Molecule)
	if err != nil {
		return err
	}
	for _, w := range st.Warnings {
		slog.Warn("topology parse", "detail", w)
	}
	if err := gro.Verify(doc, sol, cfg.Molecule); err != nil {
		return err
	}
	annotated := filepath.Join(outDir, "topol_rest2.top")
	if err := doc.WriteFile(annotated); err != nil {
		return err
	}
	cmd.Printf("Annotated molecule %q: %d of %d atoms marked (%s)\n",
		st.Molecule, st.Modified+st.AlreadyMarked, st.TotalAtoms, annotated)

	L, err := ladder.New(cfg.TMin, cfg.TMax, cfg.Replicas, cfg.Method)
	if err != nil {
		return err
	}
	P, err := plan.Build(L, sol.FileAtoms(), cfg.Replex)
	if err != nil {
		return err
	}
	if err := P.WriteInputs(outDir, plan.Inputs{Topology: annotated, TPR: cfg.TPR, Plumed: cfg.Plumed}); err != nil {
		return err
	}
	if err := P.WriteScripts(outDir, plan.ScriptOptions{
		Command: cfg.MpiCommand,
		Nsteps:  cfg.Nsteps,
		Plumed:  true,
	}); err != nil {
		return err
	}
	if err := P.WriteYAML(filepath.Join(outDir, "plan.yaml")); err != nil {
		return err
	}
	P.Summary(cmd.OutOrStdout())
	cmd.Printf("Replica workspace ready under %s\n", outDir)
	return nil
}

// preprocessTopology expands the configured topology's #includes with
// grompp so the annotator sees every atom. With --no-grompp the topology
// is used as is.
func preprocessTopology(cmd *cobra.Command, cfg Config, outDir string) (string, error) {
	if noGromppFlag {
		return cfg.Topology, nil
	}
	mdp := cfg.MDP
	if mdp == "" {
		mdp = filepath.Join(outDir, "temp.mdp")
		if err := gmx.WriteMDP(mdp); err != nil {
			return "", err
		}
	}
	processed := filepath.Join(outDir, "processed.top")
	G := &gmx.Grompp{Command: cfg.GmxCommand, MDP: mdp}
	if err := G.Preprocess(cmd.Context(), cfg.Structure, cfg.Topology, processed); err != nil {
		return "", err
	}
	return processed, nil
}
