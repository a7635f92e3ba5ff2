// Command rest2 prepares a REST2 (replica exchange with solute tempering)
// simulation: it selects the solute, annotates the topology and lays out
// the per-replica run directories.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var verboseFlag bool
var outputDirFlag string

const rootLongDescription = `rest2 prepares GROMACS+PLUMED replica-exchange solute-tempering runs.

Starting from an equilibrated system it selects the target molecule and its
environment residues, marks their atom types in the processed topology,
builds the temperature ladder and writes one ready-to-run directory per
replica, including the PLUMED partial-tempering input.

Configuration lives in rest2.yaml; run "rest2 init" to create a template.`

var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rest2",
		Short: "REST2 simulation preparation for GROMACS+PLUMED",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func init() {
	configureRootFlags(rootCmd)
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVarP(&outputDirFlag, "output", "o", defaultOutputDir, "output directory for the replica workspace")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("output"), outputDirKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
