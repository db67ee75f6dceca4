package fakedata

import (
	"github.com/hkex/market-sim/pkg/investor"
	"github.com/hkex/market-sim/pkg/market"
	"github.com/hkex/market-sim/pkg/money"
	"github.com/hkex/market-sim/pkg/price"
	"github.com/hkex/market-sim/pkg/stock"
)

// AssignStocks distributes every listed company's total_stocks across
// randomly chosen investors in randomly sized lot grants, until the
// company's full float is depleted.
func (g *Generator) AssignStocks(listed market.ListedCompanies, investors *investor.Investors) *stock.OwnedStocks {
	owned := stock.NewOwnedStocks()
	investorIDs := investors.IDs()
	if len(investorIDs) == 0 {
		return owned
	}

	for _, symbol := range listed.Symbols() {
		lc := listed[symbol]
		remaining := lc.TotalStocks
		for remaining > 0 {
			remainingLots := remaining / lc.LotSize
			if remainingLots < 1 {
				remainingLots = 1
			}
			lots := int64(g.rng.IntRange(1, int(remainingLots)))
			shares := lots * lc.LotSize
			if shares > remaining {
				shares = remaining
			}

			ownerID := investorIDs[g.rng.Intn(len(investorIDs))]
			owner := stock.NewInvestorOwner(ownerID)
			lotPrice, _ := money.New(money.HKD, g.rng.FloatRange(1.0, 100.0))

			owned.Append(stock.Stock{
				Owner:    owner,
				Symbol:   symbol,
				Quantity: shares,
				Price:    lotPrice,
			})
			remaining -= shares
		}
	}
	return owned
}

// InitialPrices computes each symbol's opening quote as the simple
// average acquisition price across all outstanding stock of that
// symbol, with ask and bid both set to that average.
func InitialPrices(listed market.ListedCompanies, owned *stock.OwnedStocks) *price.Prices {
	prices := price.NewPrices()
	for _, symbol := range listed.Symbols() {
		var values []money.Money
		owned.Each(func(_ string, lots []stock.Stock) {
			for _, lot := range lots {
				if lot.Symbol == symbol {
					values = append(values, lot.Price)
				}
			}
		})
		if len(values) == 0 {
			continue
		}
		avg := money.Average(values)
		prices.Set(symbol, price.Price{Ask: avg, Bid: avg})
	}
	return prices
}
