package fakedata

import (
	"testing"

	"github.com/hkex/market-sim/pkg/clock"
	"github.com/hkex/market-sim/pkg/investor"
	"github.com/hkex/market-sim/pkg/rng"
)

func testClock() *clock.Handler {
	return clock.New(1_893_456_000, 1000, 2700)
}

func TestGenerateCompanies_UniqueSymbols(t *testing.T) {
	gen := New(rng.New(1))
	companies, err := gen.GenerateCompanies(50)
	if err != nil {
		t.Fatalf("GenerateCompanies: %v", err)
	}
	if len(companies) != 50 {
		t.Fatalf("got %d companies, want 50", len(companies))
	}
	for symbol, c := range companies {
		if c.Symbol != symbol {
			t.Errorf("company keyed at %q has Symbol %q", symbol, c.Symbol)
		}
		if err := c.Validate(); err != nil {
			t.Errorf("invalid company %+v: %v", c, err)
		}
	}
}

func TestGenerateListings_DivisibleByLotSize(t *testing.T) {
	gen := New(rng.New(2))
	companies, err := gen.GenerateCompanies(20)
	if err != nil {
		t.Fatalf("GenerateCompanies: %v", err)
	}
	listed := gen.GenerateListings(companies.Symbols())
	for _, lc := range listed {
		if err := lc.Validate(); err != nil {
			t.Errorf("invalid listing %+v: %v", lc, err)
		}
	}
}

func TestGenerateInvestors_UniqueNamesAndValidAge(t *testing.T) {
	now := testClock()
	gen := New(rng.New(3))
	investors, err := gen.GenerateInvestors(100, now)
	if err != nil {
		t.Fatalf("GenerateInvestors: %v", err)
	}
	if investors.Len() != 100 {
		t.Fatalf("got %d investors, want 100", investors.Len())
	}
	seen := make(map[string]bool)
	investors.Each(func(inv *investor.Investor) {
		if seen[inv.Name] {
			t.Errorf("duplicate investor name %q", inv.Name)
		}
		seen[inv.Name] = true
		if err := inv.Validate(now); err != nil {
			t.Errorf("invalid investor %+v: %v", inv, err)
		}
	})
}

func TestGenerateMarketMakers_ValidPermitWindow(t *testing.T) {
	now := testClock()
	gen := New(rng.New(4))
	makers, err := gen.GenerateMarketMakers(10, now)
	if err != nil {
		t.Fatalf("GenerateMarketMakers: %v", err)
	}
	if makers.Len() != 10 {
		t.Fatalf("got %d market makers, want 10", makers.Len())
	}
}

func TestSymbolFromName_FourUppercaseAlphaChars(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Lee Holdings", "LEEH"},
		{"Ng Capital", "NGCA"},
		{"Al Ventures", "ALVE"},
	}
	for _, tt := range tests {
		got := string(symbolFromName(tt.name))
		if len(got) != 4 {
			t.Errorf("symbolFromName(%q) = %q, want length 4", tt.name, got)
		}
		if got != tt.want {
			t.Errorf("symbolFromName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
