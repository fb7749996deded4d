package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wikiwho/authgraph"
	"github.com/wikiwho/authgraph/persist"
)

func main() {
	dbPath := flag.String("db", "", "Path to sqlite3 export database (empty disables persistence)")
	addr := flag.String("addr", ":8080", "Listen address")
	flag.Parse()

	// Structured JSON logging.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg := authgraph.DefaultConfig()

	if v := os.Getenv("AUTHGRAPHD_DB_PATH"); v != "" {
		*dbPath = v
	}

	var store *persist.Store
	if *dbPath != "" {
		var err error
		store, err = persist.Open(context.Background(), *dbPath)
		if err != nil {
			slog.Error("opening store", "error", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	apiKey := os.Getenv("AUTHGRAPHD_API_KEY")
	corsOrigins := os.Getenv("AUTHGRAPHD_CORS_ORIGINS")

	h := newHandler(cfg, store)
	mux := http.NewServeMux()

	mux.HandleFunc("POST /analyse", h.handleAnalyse)
	mux.HandleFunc("GET /health", h.handleHealth)

	// Middleware chain: recovery -> cors -> auth -> logging -> mux
	var handler http.Handler = mux
	handler = logMiddleware(handler)
	handler = authMiddleware(apiKey, handler)
	handler = corsMiddleware(corsOrigins, handler)
	handler = recoveryMiddleware(handler)

	srv := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // analysing a large dump can take a while
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}
