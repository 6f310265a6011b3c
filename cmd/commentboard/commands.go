package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MosinFAM/comment-board/internal/config"
	"github.com/MosinFAM/comment-board/internal/logger"
	"github.com/MosinFAM/comment-board/internal/server"
	"github.com/MosinFAM/comment-board/internal/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version задаётся при сборке через -ldflags
var Version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "commentboard",
		Short:         "Minimal web comment board",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

func newServeCmd() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the comment board HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			log, err := logger.New(cfg.Log)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			// Одно хранилище на процесс, его получают все обработчики
			stores := storage.NewHolder(func() storage.Storage {
				return storage.NewMemoryStorage(log.Named("storage"))
			})
			server.SeedPage(stores, cfg.Seed.Page)
			if cfg.Seed.Page != "" {
				log.Info("seeded page", zap.String("page", cfg.Seed.Page))
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.New(cfg, stores, log).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a config file (yaml, json or toml)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	return cmd
}
