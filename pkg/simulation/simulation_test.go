package simulation

import (
	"context"
	"sync"
	"testing"
	"time"
)

func newTestSimulation(t *testing.T) *Simulation {
	t.Helper()
	settings := DefaultSettings()
	sim := New(settings, 42, 1_893_456_000)
	if err := sim.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return sim
}

func TestInit_PopulatesDeterministicUniverse(t *testing.T) {
	sim := newTestSimulation(t)

	if got := len(sim.Exchange.Companies); got != initialCompanyCount+initialIpoCount {
		t.Errorf("Companies = %d, want %d (listed + IPO)", got, initialCompanyCount+initialIpoCount)
	}
	if got := len(sim.Exchange.ListedCompanies); got != initialCompanyCount {
		t.Errorf("ListedCompanies = %d, want %d", got, initialCompanyCount)
	}
	if got := len(sim.Exchange.Ipos); got != initialIpoCount {
		t.Errorf("Ipos = %d, want %d", got, initialIpoCount)
	}
	if got := sim.Exchange.Investors.Len(); got != initialInvestorCount {
		t.Errorf("Investors = %d, want %d", got, initialInvestorCount)
	}
	if got := sim.Exchange.MarketMakers.Len(); got != initialMakerCount {
		t.Errorf("MarketMakers = %d, want %d", got, initialMakerCount)
	}

	for _, symbol := range sim.Exchange.ListedCompanies.Symbols() {
		if _, ok := sim.Exchange.Prices.Get(symbol); !ok {
			t.Errorf("listed symbol %q has no initial price", symbol)
		}
	}
}

func TestInit_IsDeterministicForAFixedSeed(t *testing.T) {
	a := New(DefaultSettings(), 7, 1_893_456_000)
	if err := a.Init(); err != nil {
		t.Fatalf("Init a: %v", err)
	}
	b := New(DefaultSettings(), 7, 1_893_456_000)
	if err := b.Init(); err != nil {
		t.Fatalf("Init b: %v", err)
	}

	if len(a.Exchange.Companies) != len(b.Exchange.Companies) {
		t.Fatalf("company counts diverged: %d vs %d", len(a.Exchange.Companies), len(b.Exchange.Companies))
	}
	for symbol, ca := range a.Exchange.Companies {
		cb, ok := b.Exchange.Companies[symbol]
		if !ok || ca.Name != cb.Name {
			t.Errorf("company %q diverged between identically seeded runs", symbol)
		}
	}
}

func TestRunTick_SharesConservedWhenMarketClosed(t *testing.T) {
	sim := newTestSimulation(t)

	var totalBefore int64
	for _, symbol := range sim.Exchange.ListedCompanies.Symbols() {
		totalBefore += sim.Exchange.Stocks.TotalQuantity(symbol)
	}

	// Force the market closed regardless of the current virtual time by
	// clearing the trading-hours window.
	sim.Exchange.Settings.TradingHours = nil

	if err := sim.RunTick(); err != nil {
		t.Fatalf("RunTick: %v", err)
	}

	var totalAfter int64
	for _, symbol := range sim.Exchange.ListedCompanies.Symbols() {
		totalAfter += sim.Exchange.Stocks.TotalQuantity(symbol)
	}

	if totalBefore != totalAfter {
		t.Errorf("share count changed while market closed: %d -> %d", totalBefore, totalAfter)
	}
	if sim.Exchange.Book.Len() != 0 {
		t.Errorf("expected book to be flushed while market closed, got %d live orders", sim.Exchange.Book.Len())
	}
}

// TestRun_ConcurrentReadsDoNotRace drives Run on its own goroutine while
// hammering BuildStatus/BuildMetrics from the caller, the same shape as
// an HTTP handler racing the driver's tick loop. Run under `go test
// -race` this must stay clean; §5's single RWMutex is what makes it so.
func TestRun_ConcurrentReadsDoNotRace(t *testing.T) {
	sim := newTestSimulation(t)
	sim.Settings.WaitMillis = 1

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := sim.Run(ctx); err != nil {
			t.Errorf("Run: %v", err)
		}
	}()

	deadline := time.Now().Add(50 * time.Millisecond)
	for time.Now().Before(deadline) {
		sim.BuildStatus()
		sim.BuildMetrics()
	}

	wg.Wait()
}
