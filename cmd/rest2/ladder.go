package main

import (
	"errors"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/myxu95/TakeA-REST2/ladder"
)

var ladderPlotFlag string

var ladderCmd = newLadderCmd()

func newLadderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ladder",
		Short: "Show the replica temperature ladder and scaling factors",
		Long: `Compute the temperature ladder and the REST2 scaling factors from the
configured range and spacing method, without touching any input files.
λ scales solute-solute interactions, √λ solute-solvent ones.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			//a missing config file is fine here, the defaults describe a
			//complete ladder on their own
			if err := viper.ReadInConfig(); err != nil {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					return err
				}
			}
			L, err := ladder.New(
				viper.GetFloat64(tMinKey),
				viper.GetFloat64(tMaxKey),
				viper.GetInt(replicasKey),
				viper.GetString(methodKey),
			)
			if err != nil {
				return err
			}
			renderLadder(cmd, L)
			if ladderPlotFlag != "" {
				if err := L.Plot("REST2 temperature ladder", ladderPlotFlag); err != nil {
					return err
				}
				cmd.Printf("Wrote %s.png\n", ladderPlotFlag)
			}
			return nil
		},
	}
	configureLadderFlags(cmd)
	return cmd
}

func renderLadder(cmd *cobra.Command, L *ladder.Ladder) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Replica", "T (K)", "Lambda", "Sqrt(Lambda)"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	sq := L.SqrtScalings()
	for i, T := range L.Temperatures {
		table.Append([]string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%.1f", T),
			fmt.Sprintf("%.6f", L.Scalings[i]),
			fmt.Sprintf("%.6f", sq[i]),
		})
	}
	table.Render()
}

func configureLadderFlags(cmd *cobra.Command) {
	cmd.Flags().Float64(tMinKey, defaultTMin, "lowest (reference) temperature in K")
	bindFlagToConfig(cmd.Flags().Lookup(tMinKey), tMinKey)
	cmd.Flags().Float64(tMaxKey, defaultTMax, "highest temperature in K")
	bindFlagToConfig(cmd.Flags().Lookup(tMaxKey), tMaxKey)
	cmd.Flags().IntP(replicasKey, "n", defaultReplicas, "number of replicas")
	bindFlagToConfig(cmd.Flags().Lookup(replicasKey), replicasKey)
	cmd.Flags().String(methodKey, ladder.Linear, "ladder spacing, linear or exponential")
	bindFlagToConfig(cmd.Flags().Lookup(methodKey), methodKey)
	cmd.Flags().StringVar(&ladderPlotFlag, "plot", "", "also write a PNG plot with the given base name")
}

func init() {
	rootCmd.AddCommand(ladderCmd)
}
