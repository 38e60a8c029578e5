package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"assetwatch/internal/asset"
	"assetwatch/internal/asset/cache"
	"assetwatch/internal/config"
	"assetwatch/internal/httpx"
	"assetwatch/internal/logger"
	"assetwatch/internal/source/fundamentus"
	"assetwatch/internal/source/stockanalysis"
	"assetwatch/internal/source/yahoo"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	sourceTimeout := time.Duration(cfg.Sources.TimeoutSec) * time.Second
	httpClient := httpx.New(sourceTimeout)

	quotes := yahoo.New(yahoo.Config{BaseURL: cfg.Sources.YahooBaseURL}, httpClient)
	funda := fundamentus.New(fundamentus.Config{BaseURL: cfg.Sources.FundamentusBaseURL}, httpClient)

	var divOpts []stockanalysis.ClientOption
	if cfg.Sources.StockAnalysisBaseURL != "" {
		divOpts = append(divOpts, stockanalysis.WithBaseURL(cfg.Sources.StockAnalysisBaseURL))
	}
	if cfg.Sources.Exchange != "" {
		divOpts = append(divOpts, stockanalysis.WithExchange(cfg.Sources.Exchange))
	}
	divOpts = append(divOpts, stockanalysis.WithHTTPClient(httpClient.HTTP))
	dividends, err := stockanalysis.NewClient(divOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("stockanalysis client")
	}

	snapshots := cache.New(time.Duration(cfg.Cache.TTLSeconds)*time.Second, cfg.Cache.MaxItems)
	svc := asset.NewService(quotes, funda, dividends, snapshots, log)

	requestTimeout := time.Duration(cfg.Server.RequestTimeoutSec) * time.Second

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/asset/{symbol}", handleGetAsset(svc, requestTimeout))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info().Msg("server stopped")
}
