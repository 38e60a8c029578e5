package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetwatch/internal/asset"
	"assetwatch/internal/monitor/ratelimit"
	"assetwatch/internal/source"
)

type fakeLister struct {
	symbols []string
	err     error
}

func (f *fakeLister) List(_ context.Context) ([]string, error) { return f.symbols, f.err }

type fakeFetcher struct {
	snaps   map[string]asset.Snapshot
	failing map[string]error
	fetched []string
	times   []time.Time
}

func (f *fakeFetcher) Snapshot(_ context.Context, symbol string) (asset.Snapshot, error) {
	f.fetched = append(f.fetched, symbol)
	f.times = append(f.times, time.Now())
	if err, ok := f.failing[symbol]; ok {
		return asset.Snapshot{}, err
	}
	return f.snaps[symbol], nil
}

type fakePusher struct {
	pushed []Payload
	err    error
}

func (f *fakePusher) Push(_ context.Context, p Payload) error {
	if f.err != nil {
		return f.err
	}
	f.pushed = append(f.pushed, p)
	return nil
}

func testSnapshot(symbol string) asset.Snapshot {
	return asset.Snapshot{
		Symbol: symbol,
		Price:  38.52,
		Change: "1.37%",
		Fundamentals: source.Fundamentals{
			source.KeyPL:               "5,44",
			source.KeyROE:              "22,4%",
			source.KeyDY:               "13,9%",
			source.KeyPVP:              "1,22",
			source.KeyDividend:         "R$ 5,35",
			source.KeyLastDividend:     "R$ 0,29",
			source.KeyLastPaymentDate:  "12/09/2025",
			source.KeyPatrimonialValue: "31,58",
		},
		Dividends: asset.Dividends{
			Last: &source.DividendRecord{
				ExDate: "Aug 22, 2025", Amount: "R$0.2917",
				RecordDate: "Aug 22, 2025", PayDate: "Sep 12, 2025",
			},
			History: []source.DividendRecord{
				{ExDate: "Aug 22, 2025", Amount: "R$0.2917", RecordDate: "Aug 22, 2025", PayDate: "Sep 12, 2025"},
			},
		},
		UpdatedAt: time.Now().UTC(),
	}
}

func TestBuildPayload(t *testing.T) {
	p := BuildPayload(testSnapshot("PETR4"))

	assert.Equal(t, "PETR4", p.Symbol)
	require.NotNil(t, p.Price)
	assert.Equal(t, 38.52, *p.Price)
	require.NotNil(t, p.Change)
	assert.Equal(t, 1.37, *p.Change)

	require.NotNil(t, p.FundamentalsPL)
	assert.Equal(t, 5.44, *p.FundamentalsPL)
	require.NotNil(t, p.FundamentalsROE)
	assert.Equal(t, 22.4, *p.FundamentalsROE)
	require.NotNil(t, p.FundamentalsDY)
	assert.Equal(t, 13.9, *p.FundamentalsDY)
	require.NotNil(t, p.FundamentalsPVP)
	assert.Equal(t, 1.22, *p.FundamentalsPVP)
	require.NotNil(t, p.FundamentalsPatrimonialValue)
	assert.Equal(t, 31.58, *p.FundamentalsPatrimonialValue)

	// Textual fields pass through raw.
	require.NotNil(t, p.FundamentalsDividend)
	assert.Equal(t, "R$ 5,35", *p.FundamentalsDividend)
	require.NotNil(t, p.FundamentalsLastPaymentDate)
	assert.Equal(t, "12/09/2025", *p.FundamentalsLastPaymentDate)

	require.NotNil(t, p.LastDividendExDate)
	assert.Equal(t, "Aug 22, 2025", *p.LastDividendExDate)
	require.NotNil(t, p.LastDividendAmount)
	assert.Equal(t, 0.2917, *p.LastDividendAmount)
	require.NotNil(t, p.LastDividendPayDate)
	assert.Equal(t, "Sep 12, 2025", *p.LastDividendPayDate)

	assert.Len(t, p.DividendsHistory, 1)
}

func TestBuildPayload_DegradedSnapshot(t *testing.T) {
	p := BuildPayload(asset.Snapshot{
		Symbol:       "XPTO3",
		Price:        10,
		Fundamentals: source.Fundamentals{},
		Dividends:    asset.Dividends{History: []source.DividendRecord{}},
	})

	require.NotNil(t, p.Price)
	assert.Nil(t, p.Change)
	assert.Nil(t, p.FundamentalsPL)
	assert.Nil(t, p.FundamentalsDividend)
	assert.Nil(t, p.LastDividendExDate)
	assert.Nil(t, p.LastDividendAmount)
	assert.Empty(t, p.DividendsHistory)
}

func TestCycle_SingleFailureDoesNotStopTheCycle(t *testing.T) {
	lister := &fakeLister{symbols: []string{"PETR4", "VALE3"}}
	fetcher := &fakeFetcher{
		snaps:   map[string]asset.Snapshot{"VALE3": testSnapshot("VALE3")},
		failing: map[string]error{"PETR4": errors.New("price unavailable")},
	}
	pusher := &fakePusher{}
	m := New(lister, fetcher, pusher, ratelimit.New(0), zerolog.Nop())

	err := m.Cycle(t.Context())
	require.NoError(t, err)

	assert.Equal(t, []string{"PETR4", "VALE3"}, fetcher.fetched)
	require.Len(t, pusher.pushed, 1)
	assert.Equal(t, "VALE3", pusher.pushed[0].Symbol)
}

func TestCycle_PushFailureIsSwallowed(t *testing.T) {
	lister := &fakeLister{symbols: []string{"PETR4"}}
	fetcher := &fakeFetcher{snaps: map[string]asset.Snapshot{"PETR4": testSnapshot("PETR4")}}
	pusher := &fakePusher{err: errors.New("downstream 500")}
	m := New(lister, fetcher, pusher, ratelimit.New(0), zerolog.Nop())

	require.NoError(t, m.Cycle(t.Context()))
	assert.Empty(t, pusher.pushed)
}

func TestCycle_DelayBetweenTickers(t *testing.T) {
	delay := 50 * time.Millisecond
	lister := &fakeLister{symbols: []string{"PETR4", "VALE3"}}
	fetcher := &fakeFetcher{snaps: map[string]asset.Snapshot{
		"PETR4": testSnapshot("PETR4"),
		"VALE3": testSnapshot("VALE3"),
	}}
	m := New(lister, fetcher, &fakePusher{}, ratelimit.New(delay), zerolog.Nop())

	require.NoError(t, m.Cycle(t.Context()))
	require.Len(t, fetcher.times, 2)
	if gap := fetcher.times[1].Sub(fetcher.times[0]); gap < delay {
		t.Fatalf("gap between fetches %v, want at least %v", gap, delay)
	}
}

func TestCycle_TickerListFailure(t *testing.T) {
	lister := &fakeLister{err: errors.New("symbols endpoint down")}
	m := New(lister, &fakeFetcher{}, &fakePusher{}, ratelimit.New(0), zerolog.Nop())

	err := m.Cycle(t.Context())
	require.Error(t, err)
}

func TestCycle_CanceledContextStopsBetweenTickers(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	lister := &fakeLister{symbols: []string{"PETR4", "VALE3"}}
	fetcher := &fakeFetcher{snaps: map[string]asset.Snapshot{}}
	m := New(lister, fetcher, &fakePusher{}, ratelimit.New(time.Hour), zerolog.Nop())

	err := m.Cycle(ctx)
	require.Error(t, err)
	assert.Empty(t, fetcher.fetched)
}
