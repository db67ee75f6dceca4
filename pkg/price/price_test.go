package price

import (
	"testing"

	"github.com/hkex/market-sim/pkg/market"
	"github.com/hkex/market-sim/pkg/money"
)

func TestPrice_Average(t *testing.T) {
	ask, _ := money.New(money.HKD, 42)
	bid, _ := money.New(money.HKD, 38)
	p := Price{Ask: ask, Bid: bid}
	if got := p.Average().Value(); got != 40 {
		t.Errorf("Average() = %v, want 40", got)
	}
}

func TestPrices_SymbolsSorted(t *testing.T) {
	p := NewPrices()
	zero, _ := money.New(money.HKD, 0)
	p.Set(market.CompanySymbol("ZETA"), Price{Ask: zero, Bid: zero})
	p.Set(market.CompanySymbol("ALPHA"), Price{Ask: zero, Bid: zero})

	got := p.Symbols()
	want := []market.CompanySymbol{"ALPHA", "ZETA"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Symbols() = %v, want %v", got, want)
		}
	}
}

func TestPrices_LowestBid(t *testing.T) {
	p := NewPrices()
	low, _ := money.New(money.HKD, 5)
	high, _ := money.New(money.HKD, 50)
	p.Set(market.CompanySymbol("A"), Price{Ask: high, Bid: high})
	p.Set(market.CompanySymbol("B"), Price{Ask: low, Bid: low})

	got, ok := p.LowestBid()
	if !ok {
		t.Fatal("expected LowestBid to find a value")
	}
	if got.Value() != 5 {
		t.Errorf("LowestBid() = %v, want 5", got.Value())
	}
}

func TestPrices_LowestBid_EmptyIsNotOk(t *testing.T) {
	p := NewPrices()
	if _, ok := p.LowestBid(); ok {
		t.Error("expected LowestBid on empty book to report not-ok")
	}
}
