package simulation

import (
	"github.com/hkex/market-sim/pkg/investor"
	"github.com/hkex/market-sim/pkg/market"
	"github.com/hkex/market-sim/pkg/order"
	"github.com/hkex/market-sim/pkg/stock"
)

// generateOrders emits rand(0, max_orders_per_tick) candidate orders,
// one randomly chosen investor at a time, honoring the affordability
// and one-live-order-per-owner constraints from the engine's order
// generation contract.
func (s *Simulation) generateOrders() error {
	count := s.rng.IntRange(0, int(s.Settings.MaxOrdersPerTick))
	investorIDs := s.Exchange.Investors.IDs()
	if len(investorIDs) == 0 {
		return nil
	}

	for i := 0; i < count; i++ {
		id := investorIDs[s.rng.Intn(len(investorIDs))]
		inv, ok := s.Exchange.Investors.Get(id)
		if !ok {
			continue
		}
		owner := stock.NewInvestorOwner(id)
		if s.Exchange.Book.HasLiveOrder(owner) {
			continue
		}

		lowestBid, havePrices := s.Exchange.Prices.LowestBid()
		canBuy := !havePrices || inv.LiquidCash.Value() > lowestBid.Value()
		hasStocks := s.Exchange.Stocks.HasAny(owner)

		var side order.Side
		switch {
		case canBuy && hasStocks:
			if s.rng.Bool() {
				side = order.Buy
			} else {
				side = order.Sell
			}
		case canBuy:
			side = order.Buy
		case hasStocks:
			side = order.Sell
		default:
			continue
		}

		var o order.Order
		var err error
		var skip bool
		if side == order.Sell {
			o, skip, err = s.generateSellOrder(owner)
		} else {
			o, skip, err = s.generateBuyOrder(owner, inv)
		}
		if err != nil {
			return err
		}
		if skip {
			continue
		}
		if err := s.Exchange.PlaceOrder(s.Clock, o); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) generateSellOrder(owner stock.Owner) (order.Order, bool, error) {
	lots := s.Exchange.Stocks.Lots(owner)
	if len(lots) == 0 {
		return order.Order{}, true, nil
	}
	lot := lots[s.rng.Intn(len(lots))]

	listed, ok := s.Exchange.ListedCompanies[lot.Symbol]
	if !ok || listed.LotSize <= 0 {
		return order.Order{}, true, nil
	}
	maxLots := int(lot.Quantity / listed.LotSize)
	if maxLots < 1 {
		return order.Order{}, true, nil
	}
	lotCount := int64(s.rng.IntRange(1, maxLots))
	shares := lotCount * listed.LotSize

	o, err := order.New(owner, lot.Symbol, order.Sell, order.MarketType(), shares)
	if err != nil {
		return order.Order{}, true, nil
	}
	return o, false, nil
}

// generateBuyOrder picks among listed companies the investor can afford
// at least one lot of, and emits a Market buy for a random lot count up
// to what liquid cash allows.
func (s *Simulation) generateBuyOrder(owner stock.Owner, inv *investor.Investor) (order.Order, bool, error) {
	var affordable []market.CompanySymbol
	for _, symbol := range s.Exchange.ListedCompanies.Symbols() {
		listed := s.Exchange.ListedCompanies[symbol]
		quote, ok := s.Exchange.Prices.Get(symbol)
		if !ok {
			continue
		}
		lotCost := quote.Ask.Value() * float64(listed.LotSize)
		if lotCost < inv.LiquidCash.Value() {
			affordable = append(affordable, symbol)
		}
	}
	if len(affordable) == 0 {
		return order.Order{}, true, nil
	}

	symbol := affordable[s.rng.Intn(len(affordable))]
	listed := s.Exchange.ListedCompanies[symbol]
	quote, _ := s.Exchange.Prices.Get(symbol)
	lotCost := quote.Ask.Value() * float64(listed.LotSize)

	maxLots := int(inv.LiquidCash.Value() / lotCost)
	if maxLots < 1 {
		return order.Order{}, true, nil
	}
	lotCount := int64(s.rng.IntRange(1, maxLots))
	shares := lotCount * listed.LotSize

	o, err := order.New(owner, symbol, order.Buy, order.MarketType(), shares)
	if err != nil {
		return order.Order{}, true, nil
	}
	return o, false, nil
}
