package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edvin/grantsync/internal/api"
	"github.com/edvin/grantsync/internal/config"
	"github.com/edvin/grantsync/internal/converge"
	"github.com/edvin/grantsync/internal/logging"
	"github.com/edvin/grantsync/internal/mysql"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.ResolveCredentials()

	logger := logging.NewLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn, err := mysql.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mysql")
	}
	defer conn.Close()

	ex := mysql.NewExecutor(conn, logger)
	engine := converge.NewEngine(ex, logger)
	srv := api.NewServer(logger, engine, ex, conn)

	httpServer := &http.Server{
		Addr:         cfg.HTTPListenAddr,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPListenAddr).Msg("starting grantsync API server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
}
