package main

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-sentiment/analysis"
	"stock-sentiment/config"
	"stock-sentiment/observability"
	"stock-sentiment/presentation"
	"stock-sentiment/services"

	"github.com/joho/godotenv"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		observability.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		observability.Fatal("invalid configuration", "error", err)
	}

	observability.InitLogger(cfg.Log.Production)
	observability.InitMetrics()

	// Price provider: Alpaca when credentials are configured, Yahoo otherwise
	var prices analysis.PriceFetcher
	if cfg.HasAlpaca() {
		prices = services.NewAlpacaService(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret)
		observability.Info("using Alpaca as price provider")
	} else {
		prices = services.NewYahooService()
		observability.Info("Alpaca credentials not set, using Yahoo Finance as price provider")
	}

	sentiment := services.NewSentimentAPIService(
		cfg.Sentiment.BaseURL,
		time.Duration(cfg.Sentiment.TimeoutSec)*time.Second,
	)

	pipeline := analysis.NewPipeline(prices, sentiment, cfg.Sentiment.Limit, nil)
	presenter := presentation.NewAdapter(presentation.DefaultConfig())

	app := NewApp(cfg, pipeline, presenter)
	handler := NewAPIHandler(app, cfg)

	dist, err := fs.Sub(assets, "frontend/dist")
	if err != nil {
		observability.Fatal("embedded frontend missing", "error", err)
	}

	router := NewRouter(handler, cfg, dist)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		observability.Info("starting stock sentiment dashboard", "port", cfg.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			observability.Fatal("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	observability.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		observability.Error("shutdown error", "error", err)
	}
}
