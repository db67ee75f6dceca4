// Package order implements the central order book: an append-only,
// arrival-order sequence of orders and the matching-candidate query
// the engine drives off of it.
package order

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hkex/market-sim/pkg/market"
	"github.com/hkex/market-sim/pkg/money"
	"github.com/hkex/market-sim/pkg/stock"
)

// Side is the buy/sell direction of an order.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "buy"
	}
	return "sell"
}

// Type discriminates Market orders from Limit orders; Limit carries a
// price bound.
type Type struct {
	IsLimit bool
	Limit   money.Money
}

// MarketType builds a Market order type.
func MarketType() Type { return Type{} }

// LimitType builds a Limit order type with the given price bound.
func LimitType(limit money.Money) Type {
	return Type{IsLimit: true, Limit: limit}
}

// Status is the lifecycle state of an order.
type Status uint8

const (
	Init Status = iota
	Pending
	Filled
)

// Order is one resting or matched instruction in the book. ID is a
// synthetic tracking identifier (not part of the matching algorithm),
// grounded on the rest of the retrieval pack's use of uuid for
// trade/order identifiers.
type Order struct {
	ID      string               `json:"id"`
	OwnerID stock.Owner          `json:"owner_id"`
	Symbol  market.CompanySymbol `json:"symbol"`
	Side    Side                 `json:"side"`
	Type    Type                 `json:"type"`
	Shares  int64                `json:"shares"`
	Status  Status               `json:"status"`
}

// New builds an order with a fresh ID and Pending status.
func New(owner stock.Owner, symbol market.CompanySymbol, side Side, typ Type, shares int64) (Order, error) {
	if shares <= 0 {
		return Order{}, fmt.Errorf("order: shares must be > 0, got %d", shares)
	}
	return Order{
		ID:      uuid.NewString(),
		OwnerID: owner,
		Symbol:  symbol,
		Side:    side,
		Type:    typ,
		Shares:  shares,
		Status:  Pending,
	}, nil
}

// Book is the CentralOrderBook: an append-only, arrival-order sequence
// of live orders.
type Book struct {
	orders []Order
}

// NewBook builds an empty book.
func NewBook() *Book {
	return &Book{}
}

// Place appends an order in arrival order.
func (b *Book) Place(o Order) {
	b.orders = append(b.orders, o)
}

// HasLiveOrder reports whether owner already holds an order in the
// book — callers use this to enforce the one-live-order-per-owner rule
// during order generation.
func (b *Book) HasLiveOrder(owner stock.Owner) bool {
	for _, o := range b.orders {
		if o.OwnerID == owner {
			return true
		}
	}
	return false
}

// MatchingCandidates yields every order that shares o's symbol, sits on
// the opposite side, belongs to a different owner, and is not already
// in skipped. Arrival order is preserved.
func (b *Book) MatchingCandidates(o Order, skipped map[int]bool) []int {
	var out []int
	for i, cand := range b.orders {
		if skipped[i] {
			continue
		}
		if cand.Symbol != o.Symbol {
			continue
		}
		if cand.Side == o.Side {
			continue
		}
		if cand.OwnerID == o.OwnerID {
			continue
		}
		out = append(out, i)
	}
	return out
}

// All returns the live orders in arrival order. Callers must not mutate
// the returned slice's elements in place to change book state; use
// Place/Flush/RemoveIndexes.
func (b *Book) All() []Order {
	return b.orders
}

// Len returns the number of live orders.
func (b *Book) Len() int {
	return len(b.orders)
}

// RemoveIndexes drops every order whose index is in removed, in a
// single sweep, preserving the relative order of survivors.
func (b *Book) RemoveIndexes(removed map[int]bool) {
	out := b.orders[:0:0]
	for i, o := range b.orders {
		if !removed[i] {
			out = append(out, o)
		}
	}
	b.orders = out
}

// Flush empties the book unconditionally. Called when the market is
// closed this tick — no order persists across a closed interval.
func (b *Book) Flush() {
	b.orders = nil
}

// MarshalJSON renders the book for the simulation-state snapshot.
func (b *Book) MarshalJSON() ([]byte, error) {
	if b.orders == nil {
		return json.Marshal([]Order{})
	}
	return json.Marshal(b.orders)
}

// UnmarshalJSON restores a book from a snapshot.
func (b *Book) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &b.orders)
}
