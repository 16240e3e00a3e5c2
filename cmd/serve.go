package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cfb-realignment/realign-cli/internal/api"
	"github.com/cfb-realignment/realign-cli/internal/conference"
	"github.com/cfb-realignment/realign-cli/internal/dataset"
	"github.com/cfb-realignment/realign-cli/internal/geo"
	"github.com/cfb-realignment/realign-cli/internal/store"
)

var (
	servePort    int
	serveNoStore bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		var cities []geo.City
		if cfg.Data.CitiesPath != "" {
			c, err := dataset.LoadCities(cfg.Data.CitiesPath)
			if err != nil {
				return err
			}
			cities = c
		}

		var st store.Store
		if !serveNoStore {
			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close() //nolint:errcheck
			st = s
		}

		handler := api.New(api.Options{
			Cities:         cities,
			Analyzer:       conference.NewAnalyzer(cities, conference.WithConcurrency(cfg.Analysis.Concurrency)),
			Store:          st,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		}).Handler()

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server",
			zap.Int("port", cfg.Server.Port),
			zap.Int("cities", len(cities)),
			zap.Bool("store", st != nil),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().BoolVar(&serveNoStore, "no-store", false, "serve without the run store (disables /v1/runs)")
	rootCmd.AddCommand(serveCmd)
}
