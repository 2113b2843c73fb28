package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stevehazel/DUO/core"
	"github.com/stevehazel/DUO/internal/config"
	"github.com/stevehazel/DUO/server"
)

func main() {
	rootCmd := &cobra.Command{Use: "duo"}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(chainCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "run the HTTP adapter over the local chain directory",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				logrus.WithError(err).Fatal("load config")
			}

			if err := os.MkdirAll(cfg.ChainPath, 0o755); err != nil {
				logrus.WithError(err).Fatal("create chain directory")
			}

			store := server.NewChainStore(cfg)
			registry := server.NewRegistryHandle(store)
			srv := server.New(cfg, store, registry)

			logrus.WithField("addr", cfg.ListenAddr).Info("duo listening")
			if err := http.ListenAndServe(cfg.ListenAddr, srv.Router()); err != nil {
				logrus.WithError(err).Fatal("server stopped")
			}
		},
	}
}

func chainCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "chain"}
	cmd.AddCommand(chainInitCmd())
	cmd.AddCommand(chainStatsCmd())
	return cmd
}

func chainInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [uuid]",
		Short: "create a new empty chain on disk",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				logrus.WithError(err).Fatal("load config")
			}
			if err := os.MkdirAll(cfg.ChainPath, 0o755); err != nil {
				logrus.WithError(err).Fatal("create chain directory")
			}

			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			store := server.NewChainStore(cfg)
			chain, err := store.Init(id)
			if err != nil {
				logrus.WithError(err).Fatal("init chain")
			}
			fmt.Printf("created chain %s\n", chain.UUID)
		},
	}
}

func chainStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <uuid>",
		Short: "print a chain's balance and block count",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				logrus.WithError(err).Fatal("load config")
			}

			chain, err := core.LoadChain(fmt.Sprintf("%s/chain_%s.json", cfg.ChainPath, args[0]))
			if err != nil {
				logrus.WithError(err).Fatal("load chain")
			}

			stats := chain.Stats()
			fmt.Printf("uuid=%s balance=%s blocks=%d\n", chain.UUID, stats.Balance, stats.NumBlocks)
		},
	}
}
