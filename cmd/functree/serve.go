package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/functree/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP fixture server",
	Long: `Starts an HTTP server that generates fixtures on demand.

Routes: GET /fixture, /stream (SSE), /presets, /healthz, /info and /metrics.
With --store, generated fixtures can be saved (?save=true) and read back
from /fixtures and /fixtures/{id}.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setupEnv(cmd)
		if err != nil {
			return err
		}
		port, _ := cmd.Flags().GetInt("port")
		store, _ := cmd.Flags().GetString("store")
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

		if err := cli.Serve(ctx, env, cli.ServeOptions{Port: port, Store: store}); err != nil {
			return err
		}
		env.Logger.Info("server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (default server.port, 8080)")
	serveCmd.Flags().String("store", "", "Fixture store: memory, file or redis (disabled when empty)")
	serveCmd.Flags().String("redis-addr", "", "Redis address (default redis.addr)")
	serveCmd.Flags().String("dir", "", "Directory of the file store (default corpus.dir)")
}
