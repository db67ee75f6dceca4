// Package stock models share lots and who holds them. Ownership is
// always by ID through the Owner sum type, never by pointer.
package stock

import (
	"encoding/json"
	"fmt"

	"github.com/hkex/market-sim/pkg/market"
	"github.com/hkex/market-sim/pkg/money"
)

// Stock is a lot of shares of one symbol held by one owner at the
// price it was acquired at.
type Stock struct {
	Owner    Owner                `json:"owner"`
	Symbol   market.CompanySymbol `json:"symbol"`
	Quantity int64                `json:"quantity"`
	Price    money.Money          `json:"price"`
}

// Validate enforces quantity > 0 — a lot that drains to zero must be
// removed from its owner's inventory, never kept at zero.
func (s Stock) Validate() error {
	if s.Quantity <= 0 {
		return fmt.Errorf("stock: quantity must be > 0, got %d", s.Quantity)
	}
	return nil
}

// OwnedStocks aggregates every lot held by every owner, preserving
// insertion order within each owner's slice so "iteration order"
// consuming (§4.5 settlement) is deterministic.
type OwnedStocks struct {
	byOwner map[string][]Stock
	owners  []string // insertion order of owner keys, for deterministic Each
}

// NewOwnedStocks builds an empty ledger.
func NewOwnedStocks() *OwnedStocks {
	return &OwnedStocks{byOwner: make(map[string][]Stock)}
}

// Append adds a new lot to the owner's inventory.
func (s *OwnedStocks) Append(lot Stock) {
	key := lot.Owner.String()
	if _, ok := s.byOwner[key]; !ok {
		s.owners = append(s.owners, key)
	}
	s.byOwner[key] = append(s.byOwner[key], lot)
}

// Lots returns the live lots held by owner, in acquisition order.
func (s *OwnedStocks) Lots(owner Owner) []Stock {
	return s.byOwner[owner.String()]
}

// HasAny reports whether owner holds any stock at all.
func (s *OwnedStocks) HasAny(owner Owner) bool {
	return len(s.byOwner[owner.String()]) > 0
}

// QuantityOf sums the owner's holdings of one symbol.
func (s *OwnedStocks) QuantityOf(owner Owner, symbol market.CompanySymbol) int64 {
	var total int64
	for _, lot := range s.byOwner[owner.String()] {
		if lot.Symbol == symbol {
			total += lot.Quantity
		}
	}
	return total
}

// Deduct removes qty shares of symbol from owner's inventory, consuming
// lots in acquisition order and removing any lot that drains to zero.
// It is the caller's responsibility to ensure qty does not exceed the
// owner's holdings of that symbol.
func (s *OwnedStocks) Deduct(owner Owner, symbol market.CompanySymbol, qty int64) {
	key := owner.String()
	lots := s.byOwner[key]
	remaining := qty
	out := lots[:0:0]
	for _, lot := range lots {
		if remaining <= 0 || lot.Symbol != symbol {
			out = append(out, lot)
			continue
		}
		if lot.Quantity <= remaining {
			remaining -= lot.Quantity
			continue // lot fully drained, dropped
		}
		lot.Quantity -= remaining
		remaining = 0
		out = append(out, lot)
	}
	s.byOwner[key] = out
}

// TotalQuantity sums every live lot of symbol across all owners. Used
// to verify the share-conservation invariant.
func (s *OwnedStocks) TotalQuantity(symbol market.CompanySymbol) int64 {
	var total int64
	for _, lots := range s.byOwner {
		for _, lot := range lots {
			if lot.Symbol == symbol {
				total += lot.Quantity
			}
		}
	}
	return total
}

// Each invokes fn for every owner with at least one live lot, in
// first-seen order.
func (s *OwnedStocks) Each(fn func(owner string, lots []Stock)) {
	for _, key := range s.owners {
		if lots := s.byOwner[key]; len(lots) > 0 {
			fn(key, lots)
		}
	}
}

// Count returns the number of distinct owners currently holding stock.
func (s *OwnedStocks) Count() int {
	n := 0
	for _, lots := range s.byOwner {
		if len(lots) > 0 {
			n++
		}
	}
	return n
}

// LotCount returns the total number of live lots held across every
// owner — the actual count of stock holdings, as opposed to Count's
// count of distinct holders.
func (s *OwnedStocks) LotCount() int {
	n := 0
	for _, lots := range s.byOwner {
		n += len(lots)
	}
	return n
}

type wireOwnedStocks struct {
	ByOwner map[string][]Stock `json:"by_owner"`
	Owners  []string           `json:"owners"`
}

// MarshalJSON renders the ledger for the simulation-state snapshot.
func (s *OwnedStocks) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireOwnedStocks{ByOwner: s.byOwner, Owners: s.owners})
}

// UnmarshalJSON restores a ledger from a snapshot.
func (s *OwnedStocks) UnmarshalJSON(data []byte) error {
	var w wireOwnedStocks
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.ByOwner == nil {
		w.ByOwner = make(map[string][]Stock)
	}
	s.byOwner = w.ByOwner
	s.owners = w.Owners
	return nil
}
