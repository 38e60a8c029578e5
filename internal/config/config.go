package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Server struct {
	Port              string `json:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type Cache struct {
	TTLSeconds int `json:"ttl_sec"`
	MaxItems   int `json:"max_items"`
}

type Sources struct {
	TimeoutSec           int    `json:"timeout_sec"`
	YahooBaseURL         string `json:"yahoo_base_url"`
	FundamentusBaseURL   string `json:"fundamentus_base_url"`
	StockAnalysisBaseURL string `json:"stockanalysis_base_url"`
	Exchange             string `json:"exchange"`
}

type Monitor struct {
	SymbolsURL   string `json:"symbols_url"`
	AssetBaseURL string `json:"asset_base_url"`
	PushURL      string `json:"push_url"`
	DelayMs      int    `json:"delay_ms"`
	IntervalSec  int    `json:"interval_sec"`
	TimeoutSec   int    `json:"timeout_sec"`
}

type Log struct {
	Level  string `json:"level"`
	Pretty bool   `json:"pretty"`
}

type Config struct {
	Server  Server  `json:"server"`
	Cache   Cache   `json:"cache"`
	Sources Sources `json:"sources"`
	Monitor Monitor `json:"monitor"`
	Log     Log     `json:"log"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "3000", RequestTimeoutSec: 10},
		Cache:  Cache{TTLSeconds: 20, MaxItems: 10000},
		Sources: Sources{
			TimeoutSec: 10,
			Exchange:   "bvmf",
		},
		Monitor: Monitor{
			AssetBaseURL: "http://localhost:3000/asset",
			DelayMs:      1500,
			IntervalSec:  300,
			TimeoutSec:   15,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads JSON config from path. If path is empty it falls back to
// config.json when present; missing files yield defaults. A .env file
// and environment variables override select fields.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		if x := atoi(v); x > 0 {
			cfg.Server.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("CACHE_TTL_SEC"); v != "" {
		if x := atoi(v); x > 0 {
			cfg.Cache.TTLSeconds = x
		}
	}
	if v := os.Getenv("CACHE_MAX_ITEMS"); v != "" {
		if x := atoi(v); x > 0 {
			cfg.Cache.MaxItems = x
		}
	}
	if v := os.Getenv("SOURCE_TIMEOUT_SEC"); v != "" {
		if x := atoi(v); x > 0 {
			cfg.Sources.TimeoutSec = x
		}
	}
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.Sources.YahooBaseURL = v
	}
	if v := os.Getenv("FUNDAMENTUS_BASE_URL"); v != "" {
		cfg.Sources.FundamentusBaseURL = v
	}
	if v := os.Getenv("STOCKANALYSIS_BASE_URL"); v != "" {
		cfg.Sources.StockAnalysisBaseURL = v
	}
	if v := os.Getenv("EXCHANGE"); v != "" {
		cfg.Sources.Exchange = v
	}
	if v := os.Getenv("SYMBOLS_URL"); v != "" {
		cfg.Monitor.SymbolsURL = v
	}
	if v := os.Getenv("ASSET_BASE_URL"); v != "" {
		cfg.Monitor.AssetBaseURL = v
	}
	if v := os.Getenv("PUSH_URL"); v != "" {
		cfg.Monitor.PushURL = v
	}
	if v := os.Getenv("MONITOR_DELAY_MS"); v != "" {
		if x := atoi(v); x >= 0 {
			cfg.Monitor.DelayMs = x
		}
	}
	if v := os.Getenv("MONITOR_INTERVAL_SEC"); v != "" {
		if x := atoi(v); x > 0 {
			cfg.Monitor.IntervalSec = x
		}
	}
	if v := os.Getenv("MONITOR_TIMEOUT_SEC"); v != "" {
		if x := atoi(v); x > 0 {
			cfg.Monitor.TimeoutSec = x
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		switch v {
		case "1", "true", "yes", "y":
			cfg.Log.Pretty = true
		case "0", "false", "no", "n":
			cfg.Log.Pretty = false
		}
	}
}

func atoi(s string) int {
	var x int
	_, _ = fmt.Sscanf(s, "%d", &x)
	return x
}
