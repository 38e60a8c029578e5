// Package yahoo fetches real-time quotes from the Yahoo Finance v8
// chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"assetwatch/internal/httpx"
	"assetwatch/internal/source"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// marketSuffix is appended to bare B3 tickers for the quote fetch
// only; the suffixed form is never stored as the canonical symbol.
const marketSuffix = ".SA"

type Config struct {
	Name    string
	BaseURL string
}

type Client struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Client {
	if cfg.Name == "" {
		cfg.Name = "Yahoo"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{cfg: cfg, client: hc}
}

func (c *Client) Name() string { return c.cfg.Name }

// chartResponse mirrors the subset of the v8 chart payload we need.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
			} `json:"meta"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// Quote fetches the latest price and computes the day change against
// the chart previous close, formatted as "1.23%".
func (c *Client) Quote(ctx context.Context, symbol string) (source.Quote, error) {
	ticker := symbol
	if !strings.HasSuffix(ticker, marketSuffix) {
		ticker += marketSuffix
	}
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1m&range=1d", c.cfg.BaseURL, ticker)

	resp, err := c.client.Get(ctx, url, nil)
	if err != nil {
		return source.Quote{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<10))
		return source.Quote{}, fmt.Errorf("GET %s -> %d: %s", url, resp.StatusCode, string(b))
	}

	var api chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return source.Quote{}, fmt.Errorf("decode: %w", err)
	}
	if len(api.Chart.Result) == 0 {
		return source.Quote{}, fmt.Errorf("%s: %w", symbol, source.ErrNotFound)
	}

	meta := api.Chart.Result[0].Meta
	price := meta.RegularMarketPrice
	prev := meta.ChartPreviousClose

	change := ""
	if prev != 0 {
		change = fmt.Sprintf("%.2f%%", (price-prev)/prev*100)
	}
	return source.Quote{Price: price, Change: change}, nil
}
