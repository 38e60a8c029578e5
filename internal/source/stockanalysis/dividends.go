package stockanalysis

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"assetwatch/internal/source"
)

// Dividends scrapes the dividend history table for symbol. Rows are
// returned in page order (most recent first) with all cells kept as
// raw strings. An empty page yields an empty slice, not an error.
func (c *Client) Dividends(ctx context.Context, symbol string) ([]source.DividendRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.dividendURL(symbol), nil)
	if err != nil {
		return nil, err
	}
	for key, values := range c.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s -> %d", req.URL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	var history []source.DividendRecord
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}
		history = append(history, source.DividendRecord{
			ExDate:     strings.TrimSpace(cells.Eq(0).Text()),
			Amount:     strings.TrimSpace(cells.Eq(1).Text()),
			RecordDate: strings.TrimSpace(cells.Eq(2).Text()),
			PayDate:    strings.TrimSpace(cells.Eq(3).Text()),
		})
	})
	return history, nil
}
