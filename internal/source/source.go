package source

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an upstream has no data for a symbol.
var ErrNotFound = errors.New("symbol not found")

// Quote is the normalized real-time quote shape returned by the
// quote source. Change is the day change formatted as e.g. "1.23%".
type Quote struct {
	Price  float64 `json:"price"`
	Change string  `json:"change"`
}

// Fundamentals maps fixed label keys to raw scraped values.
// A successful fetch always carries all keys; labels missing from the
// page map to an empty string. A degraded fetch yields an empty map.
type Fundamentals map[string]string

// Fixed Fundamentals keys.
const (
	KeyPL               = "pl"
	KeyROE              = "roe"
	KeyDY               = "dy"
	KeyPVP              = "pvp"
	KeyDividend         = "dividend"
	KeyLastDividend     = "lastDividend"
	KeyLastPaymentDate  = "lastPaymentDate"
	KeyPatrimonialValue = "patrimonialValue"
)

// DividendRecord is one row of the dividend history, all raw strings
// exactly as scraped.
type DividendRecord struct {
	ExDate     string `json:"exDate"`
	Amount     string `json:"amount"`
	RecordDate string `json:"recordDate"`
	PayDate    string `json:"payDate"`
}

// QuoteSource fetches the real-time quote for one symbol.
type QuoteSource interface {
	Quote(ctx context.Context, symbol string) (Quote, error)
}

// FundamentalsSource fetches valuation ratios for one symbol.
type FundamentalsSource interface {
	Fundamentals(ctx context.Context, symbol string) (Fundamentals, error)
}

// DividendSource fetches the dividend history for one symbol,
// most recent first as published by the upstream.
type DividendSource interface {
	Dividends(ctx context.Context, symbol string) ([]DividendRecord, error)
}
