// Package fundamentus scrapes valuation ratios from the Fundamentus
// detail page. The page is a grid of label/value table cells; each
// wanted label's value is the text of the cell that follows it.
package fundamentus

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"assetwatch/internal/httpx"
	"assetwatch/internal/source"
)

const defaultBaseURL = "https://www.fundamentus.com.br"

// labels maps the Portuguese page labels to the fixed result keys.
var labels = map[string]string{
	"P/L":                 source.KeyPL,
	"ROE":                 source.KeyROE,
	"Div. Yield":          source.KeyDY,
	"P/VP":                source.KeyPVP,
	"Dividendo":           source.KeyDividend,
	"Último Dividendo":    source.KeyLastDividend,
	"Data Últ. Pagamento": source.KeyLastPaymentDate,
	"Valor Patrimonial":   source.KeyPatrimonialValue,
}

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
		cfg.Name = "Fundamentus"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{cfg: cfg, client: hc}
}

func (c *Client) Name() string { return c.cfg.Name }

// Fundamentals scrapes the detail page for symbol. Labels missing
// from the page yield empty strings; every fixed key is present in a
// successful result.
func (c *Client) Fundamentals(ctx context.Context, symbol string) (source.Fundamentals, error) {
	url := fmt.Sprintf("%s/detalhes.php?papel=%s", c.cfg.BaseURL, symbol)

	resp, err := c.client.Get(ctx, url, map[string]string{
		"Referer": c.cfg.BaseURL + "/",
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s -> %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	out := source.Fundamentals{}
	for _, key := range labels {
		out[key] = ""
	}
	doc.Find("td").Each(func(_ int, cell *goquery.Selection) {
		key, ok := labels[strings.TrimSpace(cell.Text())]
		if !ok {
			return
		}
		out[key] = strings.TrimSpace(cell.Next().Text())
	})
	return out, nil
}
