/*
Package main is the entry point for the chat server.

It loads configuration, initializes the global logging system, opens the
journal store, starts the chat core's accept loop, the HTTP status surface,
and the administrative console, and handles operating system interrupt
signals (SIGINT, SIGTERM) for a graceful shutdown.
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

	"github.com/shadoomedia/chat-server/internal/app/chat"
	"github.com/shadoomedia/chat-server/internal/app/journal"
	"github.com/shadoomedia/chat-server/internal/configs"
	"github.com/shadoomedia/chat-server/internal/console"
	"github.com/shadoomedia/chat-server/internal/handler"
	"github.com/shadoomedia/chat-server/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Int("http_port", cfg.HTTPPort).
		Str("journal_path", cfg.JournalPath).
		Int("history_depth", cfg.HistoryDepth).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the journal store; it lives for the whole server lifetime.
	store, err := journal.Open(cfg.JournalPath)
	if err != nil {
		logx.Fatal(err, "Failed to open journal store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logx.Error(err, "Failed to close journal store")
		}
	}()

	// Initialize the chat core
	core := chat.NewCore(cfg, store)

	// Chat accept loop. A bind failure is fatal: the server does not start.
	go func() {
		logx.Info(fmt.Sprintf("Chat server starting on %s:%d", cfg.Host, cfg.Port))
		if err := core.ListenAndServe(); err != nil {
			logx.Fatal(err, "Chat server failed to start")
		}
	}()

	// HTTP status surface and WebSocket bridge
	router := handler.Router(&handler.AppDeps{
		Core:    core,
		Journal: store,
		Config:  cfg,
	})

	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:         httpAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("HTTP surface starting on http://localhost%s", httpAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "HTTP surface failed to start")
		}
	}()

	// Administrative console on stdin
	adminConsole := console.New(core, os.Stdin, os.Stdout)
	go adminConsole.Run()

	// Wait for interrupt signal to gracefully shutdown with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "HTTP surface forced to shutdown")
	}

	core.Shutdown()

	logx.Info("Server gracefully stopped.")
}
