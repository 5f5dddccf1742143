package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/XavierBriggs/fortuna/services/slate-dashboard/internal/handlers"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		loadCtx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		index, err := loadIndex(loadCtx, cfg.Dataset)
		cancel()
		if err != nil {
			return eris.Wrap(err, "load slates")
		}

		handler := handlers.NewHandler(index, cfg.Server.PagePath)

		srv := &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      handlers.NewRouter(handler, cfg.Server.CORSOrigins),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		}

		// Graceful shutdown
		serverErrors := make(chan error, 1)
		go func() {
			fmt.Printf("✓ Slate dashboard listening on %s\n", cfg.Server.Addr)
			fmt.Println("  Endpoints:")
			for _, route := range handlers.Routes {
				fmt.Printf("    %s\n", route)
			}

			serverErrors <- srv.ListenAndServe()
		}()

		// Wait for interrupt signal
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return eris.Wrap(err, "server error")

		case sig := <-shutdown:
			zap.L().Info("received signal", zap.String("signal", sig.String()))

			// Give outstanding requests a deadline for completion
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				zap.L().Warn("graceful shutdown failed", zap.Error(err))
				if err := srv.Close(); err != nil {
					return eris.Wrap(err, "could not stop server")
				}
			}
		}

		zap.L().Info("shutdown complete")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}
