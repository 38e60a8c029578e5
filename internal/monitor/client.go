package monitor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"assetwatch/internal/asset"
	"assetwatch/internal/httpx"
)

// SymbolLister supplies the ordered ticker list for one cycle.
type SymbolLister interface {
	List(ctx context.Context) ([]string, error)
}

// SnapshotFetcher fetches the merged snapshot for one symbol.
type SnapshotFetcher interface {
	Snapshot(ctx context.Context, symbol string) (asset.Snapshot, error)
}

// Pusher forwards one normalized payload downstream.
type Pusher interface {
	Push(ctx context.Context, p Payload) error
}

// HTTPSymbols fetches the ticker list from an endpoint returning a
// JSON array of strings.
type HTTPSymbols struct {
	URL    string
	Client *httpx.Client
}

func (s *HTTPSymbols) List(ctx context.Context) ([]string, error) {
	resp, err := s.Client.Get(ctx, s.URL, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s -> %d", s.URL, resp.StatusCode)
	}
	var symbols []string
	if err := json.NewDecoder(resp.Body).Decode(&symbols); err != nil {
		return nil, fmt.Errorf("decode symbols: %w", err)
	}
	return symbols, nil
}

// HTTPAssets fetches snapshots from the query service.
type HTTPAssets struct {
	BaseURL string
	Client  *httpx.Client
}

func (a *HTTPAssets) Snapshot(ctx context.Context, symbol string) (asset.Snapshot, error) {
	u := a.BaseURL + "/" + url.PathEscape(symbol)
	resp, err := a.Client.Get(ctx, u, nil)
	if err != nil {
		return asset.Snapshot{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return asset.Snapshot{}, fmt.Errorf("GET %s -> %d: %s", u, resp.StatusCode, string(b))
	}
	var snap asset.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return asset.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// HTTPPusher POSTs payloads to the downstream store.
type HTTPPusher struct {
	URL    string
	Client *httpx.Client
}

func (p *HTTPPusher) Push(ctx context.Context, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.Client.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return fmt.Errorf("POST %s -> %d: %s", p.URL, resp.StatusCode, string(b))
	}
	return nil
}
