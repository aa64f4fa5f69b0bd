package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aigit-dev/examboard/internal/projectconfig"
	"github.com/aigit-dev/examboard/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var host string
	var port int
	var data string
	var noBrowser bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transcript dashboard locally",
		Long: `Serve the transcript dashboard locally.

On startup the server attempts to load the configured data bundle (default
data.json, produced by the external export command). If no bundle is found
the dashboard still starts and waits for a manual upload.

Settings come from .examboard.yaml (found by walking up from the current
directory), EXAMBOARD_* environment variables, and flags, in that order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := projectconfig.Load(".")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("data") {
				cfg.Data = data
			}
			if cmd.Flags().Changed("no-browser") {
				cfg.Server.NoBrowser = &noBrowser
			}

			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&host, "host", projectconfig.DefaultServerHost, "Address to bind")
	cmd.Flags().IntVar(&port, "port", projectconfig.DefaultServerPort, "Port to listen on")
	cmd.Flags().StringVar(&data, "data", projectconfig.DefaultData, "Bundle path or URL to load at startup")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open the dashboard in a browser")

	return cmd
}

func runServe(ctx context.Context, cfg *projectconfig.ProjectConfig) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.Default()
	session := webserver.NewSession(cfg.Title, cfg.Data, logger)
	defer session.Close()

	srv := webserver.New(webserver.Config{
		Host:      cfg.Server.Host,
		Port:      cfg.Server.Port,
		NoBrowser: cfg.Server.NoBrowser != nil && *cfg.Server.NoBrowser,
		Logger:    logger,
	}, session)

	// The bootstrap load and the server run concurrently: the UI is usable
	// while the initial load is in flight.
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		session.Bootstrap(ctx)
		return nil
	})
	g.Go(func() error {
		return srv.ListenAndServe(ctx)
	})
	return g.Wait()
}
