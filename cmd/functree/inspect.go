package main

import (
	"github.com/aretw0/functree/internal/cli"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Generate one expression and show a report about it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setupEnv(cmd)
		if err != nil {
			return err
		}
		seed, _ := cmd.Flags().GetUint64("seed")
		style, _ := cmd.Flags().GetString("style")
		noBanner, _ := cmd.Flags().GetBool("no-banner")

		return cli.Inspect(env, cmd.OutOrStdout(), cli.InspectOptions{
			Seed:     seed,
			Seeded:   cmd.Flags().Changed("seed"),
			Style:    style,
			NoBanner: noBanner,
		})
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the available presets and their thresholds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setupEnv(cmd)
		if err != nil {
			return err
		}
		return cli.ListPresets(env, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(presetsCmd)

	inspectCmd.Flags().Uint64("seed", 0, "Seed to replay (random when omitted)")
	inspectCmd.Flags().String("style", "", "Glamour style: dark, light, notty... (auto when empty)")
	inspectCmd.Flags().Bool("no-banner", false, "Do not print the banner")
}
