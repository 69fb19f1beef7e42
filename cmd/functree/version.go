package main

import (
	"fmt"

	"github.com/aretw0/functree"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of functree",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "functree v%s\n", functree.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
