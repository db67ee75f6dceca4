package exchange

import "github.com/hkex/market-sim/pkg/money"

// Settings carries the exchange's static configuration: its currency,
// where it's notionally located, its trading calendar, and its trading
// hours. Ported from the original's StockExchangeSettings so the
// calendar isn't hard-coded into the engine.
type Settings struct {
	Currency     money.Currency `json:"currency"`
	Location     string         `json:"location"`
	Name         string         `json:"name"`
	Timezone     string         `json:"timezone"`
	TradingDays  []int          `json:"trading_days"`  // 0=Monday .. 6=Sunday
	TradingHours []int          `json:"trading_hours"` // hour-of-day, 0-23
}

// DefaultSettings matches the engine's documented defaults: Monday
// through Friday, 09:00-15:59.
func DefaultSettings() Settings {
	hours := make([]int, 0, 7)
	for h := 9; h <= 15; h++ {
		hours = append(hours, h)
	}
	return Settings{
		Currency:     money.HKD,
		Location:     "Hong Kong",
		Name:         "HKEX Simulator",
		Timezone:     "Asia/Hong_Kong",
		TradingDays:  []int{0, 1, 2, 3, 4},
		TradingHours: hours,
	}
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
