package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/functree/internal/cli"
	"github.com/spf13/cobra"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Generate a deduplicated corpus of expressions",
	Long: `Generates --count expressions with the seeds S, S+1, ... and saves them in
the selected store. Statements the store already holds are skipped, the new ones
are printed one per line.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setupEnv(cmd)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetUint64("seed")
		store, _ := cmd.Flags().GetString("store")
		out, _ := cmd.Flags().GetString("out")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")
		if redisAddr != "" {
			env.Config.Redis.Addr = redisAddr
		}
		dir, _ := cmd.Flags().GetString("dir")
		if dir != "" {
			env.Config.Corpus.Dir = dir
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		_, err = cli.RunCorpus(ctx, env, cmd.OutOrStdout(), cli.CorpusOptions{
			Count:  count,
			Seed:   seed,
			Seeded: cmd.Flags().Changed("seed"),
			Store:  store,
			Out:    out,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(corpusCmd)
	corpusCmd.Flags().IntP("count", "n", 100, "Number of expressions to generate")
	corpusCmd.Flags().Uint64("seed", 0, "First seed (random when omitted)")
	corpusCmd.Flags().String("store", cli.StoreMemory, "Fixture store: memory, file or redis")
	corpusCmd.Flags().String("redis-addr", "", "Redis address (default redis.addr)")
	corpusCmd.Flags().String("dir", "", "Directory of the file store (default corpus.dir)")
	corpusCmd.Flags().StringP("out", "o", "", "Write the statements to a file instead of stdout")
}
