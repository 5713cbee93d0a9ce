package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/Francis-Komizu/Tacotron2/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the text cleaning HTTP server",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			cleaner, err := buildCleaner(cfg)
			if err != nil {
				return err
			}

			srv := server.New(cfg, cleaner)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}
}
