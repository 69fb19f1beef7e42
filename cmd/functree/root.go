package main

import (
	"fmt"
	"os"

	"github.com/aretw0/functree/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "functree",
	Short: "functree generates random FunctionTree expressions",
	Long: `functree builds a random expression tree and prints it as a FunctionTree
constructor statement, ready to paste into a test or a fuzzing corpus:

  new FunctionTree.Add(new FunctionTree.Const(42), new FunctionTree.Variable("x"));

Use --seed to replay an expression and --format to print it as infix, TeX, JSON or Mermaid.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setupEnv(cmd)
		if err != nil {
			return err
		}
		seed, _ := cmd.Flags().GetUint64("seed")
		format, _ := cmd.Flags().GetString("format")

		return cli.Run(env, cmd.OutOrStdout(), cli.RunOptions{
			Seed:   seed,
			Seeded: cmd.Flags().Changed("seed"),
			Format: format,
		})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (YAML or JSON)")
	rootCmd.PersistentFlags().String("presets", "", "File with additional presets")
	rootCmd.PersistentFlags().String("preset", "", "Preset to generate with (general, binaryOnly or a custom one)")
	rootCmd.PersistentFlags().String("namespace", "", "Constructor namespace (default \"new FunctionTree\")")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.Flags().Uint64("seed", 0, "Seed to replay (random when omitted)")
	rootCmd.Flags().StringP("format", "f", "construct", "Output format: construct, infix, tex, json or mermaid")
}

// setupEnv resolves the persistent flags into a command environment.
func setupEnv(cmd *cobra.Command) (*cli.Env, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	presetsPath, _ := flags.GetString("presets")
	preset, _ := flags.GetString("preset")
	namespace, _ := flags.GetString("namespace")
	logLevel, _ := flags.GetString("log-level")

	return cli.Setup(cli.Options{
		ConfigPath:  configPath,
		PresetsPath: presetsPath,
		Preset:      preset,
		Namespace:   namespace,
		LogLevel:    logLevel,
		Stderr:      cmd.ErrOrStderr(),
	})
}
