// Package price models per-symbol quotes and their ordered container.
package price

import (
	"encoding/json"
	"sort"

	"github.com/hkex/market-sim/pkg/market"
	"github.com/hkex/market-sim/pkg/money"
)

// Price is a quote: an ask and a bid. Average is derived, never stored,
// so it can never drift out of sync with ask/bid.
type Price struct {
	Ask money.Money `json:"ask"`
	Bid money.Money `json:"bid"`
}

// Average returns (ask+bid)/2, the mid used throughout matching.
func (p Price) Average() money.Money {
	return money.Average([]money.Money{p.Ask, p.Bid})
}

// Prices is the symbol-keyed quote book. Iteration is always in sorted
// symbol order — the engine relies on this for determinism, never on
// Go's randomized map order.
type Prices struct {
	bySymbol map[market.CompanySymbol]Price
}

// NewPrices builds an empty quote book.
func NewPrices() *Prices {
	return &Prices{bySymbol: make(map[market.CompanySymbol]Price)}
}

// Set records the quote for symbol.
func (p *Prices) Set(symbol market.CompanySymbol, price Price) {
	p.bySymbol[symbol] = price
}

// Get returns the quote for symbol, if any.
func (p *Prices) Get(symbol market.CompanySymbol) (Price, bool) {
	v, ok := p.bySymbol[symbol]
	return v, ok
}

// Symbols returns every symbol with a recorded quote, sorted.
func (p *Prices) Symbols() []market.CompanySymbol {
	out := make([]market.CompanySymbol, 0, len(p.bySymbol))
	for s := range p.bySymbol {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LowestBid returns the smallest bid across every symbol, used by order
// generation's can_buy check. ok is false when no quotes exist yet.
func (p *Prices) LowestBid() (money.Money, bool) {
	var lowest money.Money
	found := false
	for _, symbol := range p.Symbols() {
		bid := p.bySymbol[symbol].Bid
		if !found || bid.Cents() < lowest.Cents() {
			lowest = bid
			found = true
		}
	}
	return lowest, found
}

// Each invokes fn for every symbol in sorted order.
func (p *Prices) Each(fn func(symbol market.CompanySymbol, price Price)) {
	for _, symbol := range p.Symbols() {
		fn(symbol, p.bySymbol[symbol])
	}
}

type wirePrices map[market.CompanySymbol]Price

// MarshalJSON renders the quote book for the simulation-state snapshot.
func (p *Prices) MarshalJSON() ([]byte, error) {
	return json.Marshal(wirePrices(p.bySymbol))
}

// UnmarshalJSON restores a quote book from a snapshot.
func (p *Prices) UnmarshalJSON(data []byte) error {
	var w wirePrices
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w == nil {
		w = make(wirePrices)
	}
	p.bySymbol = map[market.CompanySymbol]Price(w)
	return nil
}
