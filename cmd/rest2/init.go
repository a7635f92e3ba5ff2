package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default rest2.yaml configuration file",
		Long: `Create a rest2.yaml in the current working directory populated with the
current defaults so it can be edited manually.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := viper.SafeWriteConfigAs(configFileName); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}
			cmd.Printf("Wrote %s, edit it and run \"rest2 setup\"\n", configFileName)
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
