// Command fetch prints the merged snapshot for one symbol as JSON.
// It talks to the upstreams directly, without the query service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

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
	var symbol string
	var timeoutSec int
	flag.StringVar(&symbol, "symbol", "PETR4", "B3 ticker to fetch")
	flag.IntVar(&timeoutSec, "timeout", 10, "per-source timeout in seconds")
	flag.Parse()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: "warn", Pretty: true})

	httpClient := httpx.New(time.Duration(timeoutSec) * time.Second)

	quotes := yahoo.New(yahoo.Config{BaseURL: cfg.Sources.YahooBaseURL}, httpClient)
	funda := fundamentus.New(fundamentus.Config{BaseURL: cfg.Sources.FundamentusBaseURL}, httpClient)
	dividends, err := stockanalysis.NewClient(stockanalysis.WithHTTPClient(httpClient.HTTP))
	if err != nil {
		fmt.Fprintln(os.Stderr, "stockanalysis:", err)
		os.Exit(1)
	}

	snapshots := cache.New(time.Duration(cfg.Cache.TTLSeconds)*time.Second, cfg.Cache.MaxItems)
	svc := asset.NewService(quotes, funda, dividends, snapshots, log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec+5)*time.Second)
	defer cancel()

	snap, err := svc.Get(ctx, strings.ToUpper(symbol))
	if err != nil {
		fmt.Fprintln(os.Stderr, "fetch:", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	_ = enc.Encode(snap)
}
