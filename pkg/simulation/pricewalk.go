package simulation

import (
	"math"

	"github.com/hkex/market-sim/pkg/money"
	"github.com/hkex/market-sim/pkg/price"
)

const (
	midStepBound    = 0.10
	minSpread       = 0.10
	maxSpread       = 2.00
)

// updatePrices runs the per-tick random walk unconditionally, even when
// the market is closed. The bid's absolute value is preserved from the
// source: it guarantees a non-negative bid even when the walk crosses
// zero, rather than clamping at zero directly.
func (s *Simulation) updatePrices() error {
	for _, symbol := range s.Exchange.Prices.Symbols() {
		current, _ := s.Exchange.Prices.Get(symbol)
		mid := current.Average().Value()

		newMid := round2(mid + s.rng.FloatRange(-midStepBound, midStepBound))
		spread := round2(s.rng.FloatRange(minSpread, maxSpread))

		ask, err := money.New(current.Ask.Currency, newMid+spread)
		if err != nil {
			return err
		}
		bid, err := money.New(current.Ask.Currency, math.Abs(newMid-spread))
		if err != nil {
			return err
		}

		s.Exchange.Prices.Set(symbol, price.Price{Ask: ask, Bid: bid})

		if s.History != nil {
			avg := price.Price{Ask: ask, Bid: bid}.Average().Value()
			if err := s.History.SaveHistoricPrice(s.Clock.NowUnix(), string(symbol), avg); err != nil {
				return err
			}
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
