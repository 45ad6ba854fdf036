/*
Package main is the entry point for the LAN Signal Server.

It loads configuration, initializes the global logging system, sets up the
HTTP (or HTTPS) server with the signaling directory, and handles operating
system interrupt signals (SIGINT, SIGTERM) for a graceful shutdown that first
releases all parked long-polls.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"lansignal/internal/app/directory"
	"lansignal/internal/configs"
	"lansignal/internal/handler"
	"lansignal/internal/pkg/logx"
)

func main() {
	// Optional .env file for local development; real deployments use plain
	// environment variables.
	_ = godotenv.Load()

	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Bool("tls", cfg.TLSEnabled()).
		Str("static_dir", cfg.StaticDir).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir := directory.New()

	router := handler.Router(&handler.AppDeps{
		Directory: dir,
		Config:    cfg,
	})

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
		// WriteTimeout stays zero: a wait request is held open indefinitely
		// until a message arrives or the client disconnects.
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		var serveErr error
		if cfg.TLSEnabled() {
			logx.Info(fmt.Sprintf("LAN Signal Server starting on https://localhost%s", serverAddr))
			serveErr = server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			logx.Info(fmt.Sprintf("LAN Signal Server starting on http://localhost%s", serverAddr))
			serveErr = server.ListenAndServe()
		}

		if serveErr != nil && serveErr != http.ErrServerClosed {
			logx.Fatal(serveErr, "Server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	// Flush parked long-polls first so held-open wait responses can complete
	// inside the shutdown window.
	dir.Shutdown()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
