package stock

import (
	"testing"

	"github.com/hkex/market-sim/pkg/investor"
	"github.com/hkex/market-sim/pkg/market"
	"github.com/hkex/market-sim/pkg/money"
)

func TestOwner_JSONRoundTrip(t *testing.T) {
	tests := []Owner{
		NewInvestorOwner(investor.ID(42)),
	}
	for _, o := range tests {
		data, err := o.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON: %v", err)
		}
		var got Owner
		if err := got.UnmarshalJSON(data); err != nil {
			t.Fatalf("UnmarshalJSON: %v", err)
		}
		if got != o {
			t.Errorf("round-trip = %+v, want %+v", got, o)
		}
	}
}

func TestOwner_UnmarshalJSON_RejectsUnknownPrefix(t *testing.T) {
	var o Owner
	if err := o.UnmarshalJSON([]byte(`"X42"`)); err == nil {
		t.Error("expected error for unknown owner prefix")
	}
}

func TestOwnedStocks_DeductConsumesInAcquisitionOrder(t *testing.T) {
	s := NewOwnedStocks()
	owner := NewInvestorOwner(investor.ID(1))
	symbol := market.CompanySymbol("TEST")
	price, _ := money.New(money.HKD, 10)

	s.Append(Stock{Owner: owner, Symbol: symbol, Quantity: 5, Price: price})
	s.Append(Stock{Owner: owner, Symbol: symbol, Quantity: 10, Price: price})

	s.Deduct(owner, symbol, 7)

	lots := s.Lots(owner)
	if len(lots) != 1 {
		t.Fatalf("got %d lots, want 1 (first lot fully drained)", len(lots))
	}
	if lots[0].Quantity != 8 {
		t.Errorf("remaining lot quantity = %d, want 8", lots[0].Quantity)
	}
}

func TestOwnedStocks_QuantityOfAndTotalQuantity(t *testing.T) {
	s := NewOwnedStocks()
	a := NewInvestorOwner(investor.ID(1))
	b := NewInvestorOwner(investor.ID(2))
	symbol := market.CompanySymbol("TEST")
	price, _ := money.New(money.HKD, 10)

	s.Append(Stock{Owner: a, Symbol: symbol, Quantity: 5, Price: price})
	s.Append(Stock{Owner: b, Symbol: symbol, Quantity: 3, Price: price})

	if got := s.QuantityOf(a, symbol); got != 5 {
		t.Errorf("QuantityOf(a) = %d, want 5", got)
	}
	if got := s.TotalQuantity(symbol); got != 8 {
		t.Errorf("TotalQuantity = %d, want 8", got)
	}
}

func TestOwnedStocks_CountVsLotCount(t *testing.T) {
	s := NewOwnedStocks()
	a := NewInvestorOwner(investor.ID(1))
	b := NewInvestorOwner(investor.ID(2))
	price, _ := money.New(money.HKD, 10)

	s.Append(Stock{Owner: a, Symbol: "AAAA", Quantity: 5, Price: price})
	s.Append(Stock{Owner: a, Symbol: "BBBB", Quantity: 2, Price: price})
	s.Append(Stock{Owner: b, Symbol: "AAAA", Quantity: 1, Price: price})

	if got := s.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2 (distinct holders)", got)
	}
	if got := s.LotCount(); got != 3 {
		t.Errorf("LotCount() = %d, want 3 (total lots)", got)
	}
}
