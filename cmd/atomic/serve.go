package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-atomic/internal/logging"
	"github.com/goliatone/go-atomic/internal/polls"
	"github.com/goliatone/go-atomic/internal/server"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo polls application",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if watch {
				cfg.Assets.Watch = true
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := polls.Open(ctx, cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer store.Close()

			if cfg.Database.Seed {
				if err := store.Seed(ctx); err != nil {
					return err
				}
			}

			srv, err := server.New(cfg, store, server.WithLogger(logging.Component(logger, "http")))
			if err != nil {
				return err
			}
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides server.addr")
	cmd.Flags().BoolVar(&watch, "watch", false, "Invalidate asset manifests when files under static/ change")

	return cmd
}
