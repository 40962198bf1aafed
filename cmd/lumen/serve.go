package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/solsticehq/lumen/internal/api"
	"github.com/solsticehq/lumen/internal/classification"
	"github.com/solsticehq/lumen/internal/extraction"
	"github.com/solsticehq/lumen/internal/signals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Serve the classification, extraction, synthesis, and suggestion
endpoints under /api/v1.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8080", "Listen address")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	db, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	syn, err := newSynthesizer(db)
	if err != nil {
		return err
	}

	handler := api.NewHandler(
		classification.NewDefault(),
		extraction.New(),
		signals.New(),
		syn,
		db,
		version,
	)

	srv := &http.Server{
		Addr:              viper.GetString("server.addr"),
		Handler:           api.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-cmd.Context().Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		slog.Info("HTTP server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}
