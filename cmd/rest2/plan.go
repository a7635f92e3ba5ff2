package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/myxu95/TakeA-REST2/plan"
)

var planDirectiveFlag int

var planCmd = newPlanCmd()

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [plan.yaml]",
		Short: "Inspect a generated replica plan",
		Long: `Print the replica table of a plan.yaml written by "rest2 setup". With
--directive the PLUMED partial-tempering block of one replica is printed
instead, ready to paste into a plumed.dat.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := filepath.Join(viper.GetString(outputDirKey), "plan.yaml")
			if len(args) > 0 {
				name = args[0]
			}
			P, err := plan.ReadYAML(name)
			if err != nil {
				return err
			}
			if planDirectiveFlag >= 0 {
				d, err := P.Directive(planDirectiveFlag)
				if err != nil {
					return err
				}
				cmd.Print(d)
				return nil
			}
			P.Summary(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().IntVar(&planDirectiveFlag, "directive", -1, "print the partial-tempering directive of this replica")
	return cmd
}

func init() {
	rootCmd.AddCommand(planCmd)
}
