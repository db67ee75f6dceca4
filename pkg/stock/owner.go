package stock

import (
	"encoding/json"
	"fmt"

	"github.com/hkex/market-sim/pkg/investor"
	"github.com/hkex/market-sim/pkg/marketmaker"
)

// OwnerKind discriminates the two variants of StockOwner.
type OwnerKind uint8

const (
	// KindInvestor tags an investor owner.
	KindInvestor OwnerKind = iota
	// KindMarketMaker tags a market maker owner.
	KindMarketMaker
)

// Owner is the StockOwner tagged union: either an investor or a market
// maker, identified by its own ID space. It is a sum type rather than
// an interface so it stays trivially comparable and hashable as a map
// key — no pointers, no dynamic dispatch.
type Owner struct {
	Kind          OwnerKind
	InvestorID    investor.ID
	MarketMakerID marketmaker.ID
}

// NewInvestorOwner wraps an investor ID as an Owner.
func NewInvestorOwner(id investor.ID) Owner {
	return Owner{Kind: KindInvestor, InvestorID: id}
}

// NewMarketMakerOwner wraps a market maker ID as an Owner.
func NewMarketMakerOwner(id marketmaker.ID) Owner {
	return Owner{Kind: KindMarketMaker, MarketMakerID: id}
}

// IsInvestor reports whether this owner is an investor.
func (o Owner) IsInvestor() bool {
	return o.Kind == KindInvestor
}

// IsMarketMaker reports whether this owner is a market maker.
func (o Owner) IsMarketMaker() bool {
	return o.Kind == KindMarketMaker
}

// String renders the wire form: "I<id>" or "M<id>".
func (o Owner) String() string {
	switch o.Kind {
	case KindInvestor:
		return fmt.Sprintf("I%d", o.InvestorID)
	case KindMarketMaker:
		return fmt.Sprintf("M%d", o.MarketMakerID)
	default:
		return "?"
	}
}

// MarshalJSON renders the owner as its prefixed string form.
func (o Owner) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON decodes the prefixed string form. Any prefix other than
// "I" or "M" is a decoding error.
func (o *Owner) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if len(s) < 2 {
		return fmt.Errorf("stock: invalid owner encoding %q", s)
	}
	var id uint64
	if _, err := fmt.Sscanf(s[1:], "%d", &id); err != nil {
		return fmt.Errorf("stock: invalid owner id in %q: %w", s, err)
	}
	switch s[0] {
	case 'I':
		o.Kind = KindInvestor
		o.InvestorID = investor.ID(id)
	case 'M':
		o.Kind = KindMarketMaker
		o.MarketMakerID = marketmaker.ID(id)
	default:
		return fmt.Errorf("stock: unknown owner prefix %q", s)
	}
	return nil
}
