package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assetwatch/internal/config"
	"assetwatch/internal/httpx"
	"assetwatch/internal/logger"
	"assetwatch/internal/monitor"
	"assetwatch/internal/monitor/ratelimit"
	"assetwatch/internal/scheduler"
)

// cycleJob adapts the monitor to the scheduler, binding the process
// lifetime context so a signal stops an in-flight cycle between
// tickers.
type cycleJob struct {
	ctx context.Context
	m   *monitor.Monitor
}

func (j cycleJob) Name() string { return "sync-cycle" }
func (j cycleJob) Run() error   { return j.m.Cycle(j.ctx) }

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	if cfg.Monitor.SymbolsURL == "" || cfg.Monitor.PushURL == "" {
		log.Fatal().Msg("SYMBOLS_URL and PUSH_URL must be set")
	}

	httpClient := httpx.New(time.Duration(cfg.Monitor.TimeoutSec) * time.Second)

	m := monitor.New(
		&monitor.HTTPSymbols{URL: cfg.Monitor.SymbolsURL, Client: httpClient},
		&monitor.HTTPAssets{BaseURL: cfg.Monitor.AssetBaseURL, Client: httpClient},
		&monitor.HTTPPusher{URL: cfg.Monitor.PushURL, Client: httpClient},
		ratelimit.New(time.Duration(cfg.Monitor.DelayMs)*time.Millisecond),
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	job := cycleJob{ctx: ctx, m: m}

	sched := scheduler.New(log)
	schedule := fmt.Sprintf("@every %ds", cfg.Monitor.IntervalSec)
	if err := sched.AddJob(schedule, job); err != nil {
		log.Fatal().Err(err).Msg("schedule job")
	}

	// First cycle runs right away; the schedule covers the rest.
	if err := sched.RunNow(job); err != nil {
		log.Error().Err(err).Msg("initial cycle failed")
	}

	sched.Start()
	<-ctx.Done()
	sched.Stop()
	log.Info().Msg("monitor stopped")
}
