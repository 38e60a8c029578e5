package asset

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"assetwatch/internal/source"
)

// ErrPriceUnavailable is returned when no price could be obtained for
// a symbol. Price is the one field callers cannot function without;
// fundamentals and dividends are enrichment.
var ErrPriceUnavailable = errors.New("price unavailable")

// maxDividendHistory caps the dividend history kept in a snapshot.
const maxDividendHistory = 12

// Dividends groups the most recent record with the capped history.
type Dividends struct {
	Last    *source.DividendRecord  `json:"last"`
	History []source.DividendRecord `json:"history"`
}

// Snapshot is the merged point-in-time record for one symbol.
type Snapshot struct {
	Symbol       string              `json:"symbol"`
	Price        float64             `json:"price"`
	Change       string              `json:"change"`
	Fundamentals source.Fundamentals `json:"fundamentals"`
	Dividends    Dividends           `json:"dividends"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// SnapshotCache is the TTL store consulted before hitting upstreams.
type SnapshotCache interface {
	Get(key string) (Snapshot, bool)
	Set(key string, snap Snapshot)
}

// Service aggregates the three sources into snapshots. Concurrent
// misses for the same symbol are coalesced into a single upstream
// round trip.
type Service struct {
	quotes       source.QuoteSource
	fundamentals source.FundamentalsSource
	dividends    source.DividendSource
	cache        SnapshotCache
	log          zerolog.Logger

	sf singleflight.Group
}

func NewService(q source.QuoteSource, f source.FundamentalsSource, d source.DividendSource, c SnapshotCache, log zerolog.Logger) *Service {
	return &Service{
		quotes:       q,
		fundamentals: f,
		dividends:    d,
		cache:        c,
		log:          log.With().Str("component", "asset").Logger(),
	}
}

// Get returns the merged snapshot for symbol, from cache when fresh.
// A quote failure makes the whole call fail with ErrPriceUnavailable
// and nothing is cached; fundamentals and dividend failures degrade
// those fields to their empty forms.
func (s *Service) Get(ctx context.Context, symbol string) (Snapshot, error) {
	key := "asset:" + symbol
	if snap, ok := s.cache.Get(key); ok {
		return snap, nil
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		return s.fetch(ctx, symbol, key)
	})
	if err != nil {
		return Snapshot{}, err
	}
	return v.(Snapshot), nil
}

func (s *Service) fetch(ctx context.Context, symbol, key string) (Snapshot, error) {
	type quoteResult struct {
		quote source.Quote
		err   error
	}
	type fundaResult struct {
		funda source.Fundamentals
		err   error
	}
	type divResult struct {
		history []source.DividendRecord
		err     error
	}

	quoteCh := make(chan quoteResult, 1)
	fundaCh := make(chan fundaResult, 1)
	divCh := make(chan divResult, 1)

	go func() {
		q, err := s.quotes.Quote(ctx, symbol)
		quoteCh <- quoteResult{q, err}
	}()
	go func() {
		f, err := s.fundamentals.Fundamentals(ctx, symbol)
		fundaCh <- fundaResult{f, err}
	}()
	go func() {
		h, err := s.dividends.Dividends(ctx, symbol)
		divCh <- divResult{h, err}
	}()

	qr := <-quoteCh
	fr := <-fundaCh
	dr := <-divCh

	// Non-mandatory sources degrade to their empty forms.
	funda := fr.funda
	if fr.err != nil {
		s.log.Warn().Err(fr.err).Str("symbol", symbol).Msg("fundamentals fetch failed")
		funda = source.Fundamentals{}
	}
	history := dr.history
	if dr.err != nil {
		s.log.Warn().Err(dr.err).Str("symbol", symbol).Msg("dividends fetch failed")
		history = nil
	}

	if qr.err != nil || qr.quote.Price == 0 {
		if qr.err != nil {
			s.log.Warn().Err(qr.err).Str("symbol", symbol).Msg("quote fetch failed")
		}
		return Snapshot{}, ErrPriceUnavailable
	}

	if len(history) > maxDividendHistory {
		history = history[:maxDividendHistory]
	}
	var last *source.DividendRecord
	if len(history) > 0 {
		last = &history[0]
	}
	if history == nil {
		history = []source.DividendRecord{}
	}

	snap := Snapshot{
		Symbol:       symbol,
		Price:        qr.quote.Price,
		Change:       qr.quote.Change,
		Fundamentals: funda,
		Dividends:    Dividends{Last: last, History: history},
		UpdatedAt:    time.Now().UTC(),
	}
	s.cache.Set(key, snap)
	return snap, nil
}
