// Package monitor implements the synchronization cycle: enumerate
// tickers, fetch each merged snapshot, normalize its fields and push
// the result downstream. Every per-ticker and per-cycle failure is
// logged and swallowed so the process keeps running.
package monitor

import (
	"context"

	"github.com/rs/zerolog"

	"assetwatch/internal/asset"
	"assetwatch/internal/monitor/ratelimit"
	"assetwatch/internal/normalize"
	"assetwatch/internal/source"
)

// Payload is the downstream shape. Numeric fields carry the
// normalizer's output (number or null); textual fields pass through
// raw or null when absent.
type Payload struct {
	Symbol string `json:"symbol"`

	Price  *float64 `json:"price"`
	Change *float64 `json:"change"`

	FundamentalsPL  *float64 `json:"fundamentals_pl"`
	FundamentalsROE *float64 `json:"fundamentals_roe"`
	FundamentalsDY  *float64 `json:"fundamentals_dy"`
	FundamentalsPVP *float64 `json:"fundamentals_pvp"`

	FundamentalsDividend        *string `json:"fundamentals_dividend"`
	FundamentalsLastDividend    *string `json:"fundamentals_last_dividend"`
	FundamentalsLastPaymentDate *string `json:"fundamentals_last_payment_date"`

	FundamentalsPatrimonialValue *float64 `json:"fundamentals_patrimonial_value"`

	LastDividendExDate     *string  `json:"last_dividend_ex_date"`
	LastDividendAmount     *float64 `json:"last_dividend_amount"`
	LastDividendRecordDate *string  `json:"last_dividend_record_date"`
	LastDividendPayDate    *string  `json:"last_dividend_pay_date"`

	DividendsHistory []source.DividendRecord `json:"dividends_history"`
}

// BuildPayload maps a snapshot to the downstream shape.
func BuildPayload(snap asset.Snapshot) Payload {
	p := Payload{
		Symbol: snap.Symbol,
		Price:  normalize.Float(snap.Price),
		Change: normalize.Number(snap.Change),

		FundamentalsPL:  normalize.Number(snap.Fundamentals[source.KeyPL]),
		FundamentalsROE: normalize.Number(snap.Fundamentals[source.KeyROE]),
		FundamentalsDY:  normalize.Number(snap.Fundamentals[source.KeyDY]),
		FundamentalsPVP: normalize.Number(snap.Fundamentals[source.KeyPVP]),

		FundamentalsDividend:        normalize.String(snap.Fundamentals[source.KeyDividend]),
		FundamentalsLastDividend:    normalize.String(snap.Fundamentals[source.KeyLastDividend]),
		FundamentalsLastPaymentDate: normalize.String(snap.Fundamentals[source.KeyLastPaymentDate]),

		FundamentalsPatrimonialValue: normalize.Number(snap.Fundamentals[source.KeyPatrimonialValue]),

		DividendsHistory: snap.Dividends.History,
	}
	if last := snap.Dividends.Last; last != nil {
		p.LastDividendExDate = normalize.String(last.ExDate)
		p.LastDividendAmount = normalize.Number(last.Amount)
		p.LastDividendRecordDate = normalize.String(last.RecordDate)
		p.LastDividendPayDate = normalize.String(last.PayDate)
	}
	return p
}

// Monitor runs sync cycles. Tickers are processed sequentially with a
// fixed-interval gate between fetches; nothing runs in parallel by
// design.
type Monitor struct {
	symbols SymbolLister
	assets  SnapshotFetcher
	pusher  Pusher
	gate    *ratelimit.Gate
	log     zerolog.Logger
}

func New(symbols SymbolLister, assets SnapshotFetcher, pusher Pusher, gate *ratelimit.Gate, log zerolog.Logger) *Monitor {
	return &Monitor{
		symbols: symbols,
		assets:  assets,
		pusher:  pusher,
		gate:    gate,
		log:     log.With().Str("component", "monitor").Logger(),
	}
}

// Cycle performs one full pass over the ticker list. A failing ticker
// is logged and skipped; only context cancellation or a failed ticker
// list stops the pass early.
func (m *Monitor) Cycle(ctx context.Context) error {
	m.log.Info().Msg("cycle started")

	symbols, err := m.symbols.List(ctx)
	if err != nil {
		return err
	}

	for _, sym := range symbols {
		if err := m.gate.Wait(ctx); err != nil {
			return err
		}
		if err := m.syncOne(ctx, sym); err != nil {
			m.log.Warn().Err(err).Str("symbol", sym).Msg("sync failed")
			continue
		}
		m.log.Info().Str("symbol", sym).Msg("synced")
	}

	m.log.Info().Int("symbols", len(symbols)).Msg("cycle finished")
	return nil
}

func (m *Monitor) syncOne(ctx context.Context, symbol string) error {
	snap, err := m.assets.Snapshot(ctx, symbol)
	if err != nil {
		return err
	}
	return m.pusher.Push(ctx, BuildPayload(snap))
}
