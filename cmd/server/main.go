package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/prlsite/starters/internal/config"
	"github.com/prlsite/starters/internal/db"
	"github.com/prlsite/starters/internal/pdf"
	"github.com/prlsite/starters/internal/query"
	"github.com/prlsite/starters/internal/server"
	"github.com/prlsite/starters/internal/store"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if cfg.Env == "development" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	dbConn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("store unavailable", zap.Error(err))
	}
	if *migrateOnlyFlag {
		logger.Info("migrations completed; exiting as requested")
		return
	}

	starters := store.NewStarterStore(dbConn, logger)
	clients := store.NewClientDirectory(dbConn)

	// Duplicate cleanup runs once per startup; repeat runs are no-ops.
	removed, err := starters.Deduplicate(context.Background())
	if err != nil {
		logger.Fatal("startup dedup failed", zap.Error(err))
	}
	if removed > 0 {
		logger.Info("startup dedup removed rows", zap.Int64("count", removed))
	}

	renderer, err := pdf.NewRenderer()
	if err != nil {
		// Stored data stays usable; downloads answer render_unavailable.
		logger.Warn("document renderer unavailable", zap.Error(err))
		renderer = pdf.Unavailable(err)
	}

	var adapter query.Adapter
	if cfg.GeminiKey != "" {
		gem, err := query.NewGemini(context.Background(), cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("query adapter disabled", zap.Error(err))
		} else {
			adapter = gem
		}
	} else {
		logger.Info("GEMINI_API_KEY not set; /query disabled")
	}

	handler := server.New(dbConn, starters, clients, renderer, adapter, logger)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
	logger.Info("server gracefully stopped")
}
