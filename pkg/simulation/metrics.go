package simulation

import "github.com/hkex/market-sim/pkg/storage"

// MetricsPrefix is prepended to every emitted metric name.
const MetricsPrefix = "market_sim"

// BuildMetrics renders the current exchange/clock state as the
// engine's documented metric set.
func (s *Simulation) BuildMetrics() []storage.Metric {
	s.mu.RLock()
	defer s.mu.RUnlock()

	se := s.Exchange
	tradingNow := 0.0
	if se.CanTradeNow(s.Clock) {
		tradingNow = 1.0
	}

	stocksCount := se.Stocks.LotCount()

	metrics := []storage.Metric{
		storage.Simple("time_weekday", float64(s.Clock.Weekday())),
		storage.Simple("time_day_hour", float64(s.Clock.Hour())),
		storage.Simple("running_simulation_seconds", float64(s.Clock.RunningSeconds())),
		storage.Simple("companies_count", float64(len(se.Companies))),
		storage.Simple("investors_count", float64(se.Investors.Len())),
		storage.Simple("listed_companies_count", float64(len(se.ListedCompanies))),
		storage.Simple("market_makers_count", float64(se.MarketMakers.Len())),
		storage.Simple("stocks_count", float64(stocksCount)),
		storage.Simple("ipos_count", float64(len(se.Ipos))),
		storage.Simple("trading_now", tradingNow),
	}

	if se.Investors.Len() > 0 {
		avg := float64(stocksCount) / float64(se.Investors.Len())
		metrics = append(metrics, storage.Simple("average_stocks_per_investor", avg))
	}

	for _, symbol := range se.Prices.Symbols() {
		quote, _ := se.Prices.Get(symbol)
		company, ok := se.Companies[symbol]
		if !ok {
			continue
		}
		metrics = append(metrics, storage.Metric{
			Name:  "price_ask",
			Value: quote.Ask.Value(),
			Labels: map[string]string{
				"name":   company.Name,
				"symbol": string(symbol),
			},
		})
	}

	return metrics
}
