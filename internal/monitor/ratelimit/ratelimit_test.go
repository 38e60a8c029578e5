package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWait_FirstCallPassesImmediately(t *testing.T) {
	g := New(time.Second)
	start := time.Now()
	if err := g.Wait(t.Context()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Fatal("first call should not block")
	}
}

func TestWait_EnforcesInterval(t *testing.T) {
	interval := 60 * time.Millisecond
	g := New(interval)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := g.Wait(t.Context()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 2*interval {
		t.Fatalf("three releases took %v, want at least %v", elapsed, 2*interval)
	}
}

func TestWait_CanceledContext(t *testing.T) {
	g := New(time.Minute)
	if err := g.Wait(t.Context()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if err := g.Wait(ctx); err == nil {
		t.Fatal("want error when context is canceled")
	}
}

func TestWait_ZeroIntervalNeverBlocks(t *testing.T) {
	g := New(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := g.Wait(t.Context()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Fatal("zero interval gate must not block")
	}
}
