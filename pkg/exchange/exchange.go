// Package exchange is the StockExchange facade: it aggregates every
// piece of exchange state (companies, listings, IPOs, investors,
// market makers, owned stocks, prices, the order book, and the holiday
// calendar) and exposes the operations the simulation driver needs:
// CanTradeNow, PlaceOrder, FlushOrders, ExecuteOrders.
package exchange

import (
	"errors"
	"fmt"

	"github.com/hkex/market-sim/pkg/broker"
	"github.com/hkex/market-sim/pkg/clock"
	"github.com/hkex/market-sim/pkg/investor"
	"github.com/hkex/market-sim/pkg/market"
	"github.com/hkex/market-sim/pkg/marketmaker"
	"github.com/hkex/market-sim/pkg/order"
	"github.com/hkex/market-sim/pkg/price"
	"github.com/hkex/market-sim/pkg/stock"
)

// ErrCantTradeNow is returned by PlaceOrder when the trading gate is
// closed.
var ErrCantTradeNow = errors.New("exchange: market is closed")

// ErrInvalidOrder is returned by PlaceOrder for a structurally invalid
// order (zero shares, unknown symbol).
var ErrInvalidOrder = errors.New("exchange: invalid order")

// StockExchange is the full mutable state of the simulated market.
type StockExchange struct {
	Settings        Settings                 `json:"settings"`
	Companies       market.Companies         `json:"companies"`
	ListedCompanies market.ListedCompanies   `json:"listed_companies"`
	Ipos            market.Ipos              `json:"ipos"`
	Investors       *investor.Investors      `json:"investors"`
	MarketMakers    *marketmaker.MarketMakers `json:"market_makers"`
	Brokers         *broker.Brokers          `json:"brokers"`
	Stocks          *stock.OwnedStocks       `json:"stocks"`
	Prices          *price.Prices            `json:"prices"`
	Book            *order.Book              `json:"book"`
	Holidays        map[string]map[string]bool `json:"holidays"` // year -> set of "YYYY-MM-DD"
}

// New builds an empty exchange with the given settings, ready for Init.
func New(settings Settings) *StockExchange {
	return &StockExchange{
		Settings:        settings,
		Companies:       make(market.Companies),
		ListedCompanies: make(market.ListedCompanies),
		Ipos:            make(market.Ipos),
		Investors:       investor.NewInvestors(),
		MarketMakers:    marketmaker.NewMarketMakers(),
		Brokers:         broker.NewBrokers(),
		Stocks:          stock.NewOwnedStocks(),
		Prices:          price.NewPrices(),
		Book:            order.NewBook(),
		Holidays:        make(map[string]map[string]bool),
	}
}

// CanTradeNow evaluates the trading gate: weekday, non-holiday, and
// hour-of-day all in the configured windows.
func (se *StockExchange) CanTradeNow(now *clock.Handler) bool {
	if !containsInt(se.Settings.TradingDays, now.Weekday()) {
		return false
	}
	year := now.YearFormatted()
	if days, ok := se.Holidays[year]; ok {
		if days[now.DayFormatted()] {
			return false
		}
	}
	return containsInt(se.Settings.TradingHours, now.Hour())
}

// PlaceOrder validates and appends an order to the book. It rejects a
// structurally invalid order and an order placed while the gate is
// closed; it does not enforce the one-live-order-per-owner rule — that
// is the order generator's responsibility (§4.6), since externally
// submitted limit orders are allowed to coexist with it.
func (se *StockExchange) PlaceOrder(now *clock.Handler, o order.Order) error {
	if !se.CanTradeNow(now) {
		return ErrCantTradeNow
	}
	if o.Shares <= 0 {
		return fmt.Errorf("%w: shares must be > 0", ErrInvalidOrder)
	}
	if _, ok := se.ListedCompanies[o.Symbol]; !ok {
		return fmt.Errorf("%w: unknown symbol %q", ErrInvalidOrder, o.Symbol)
	}
	se.Book.Place(o)
	return nil
}

// FlushOrders empties the book unconditionally when the market is
// closed this tick. No order persists across a closed interval.
func (se *StockExchange) FlushOrders(now *clock.Handler) {
	if !se.CanTradeNow(now) {
		se.Book.Flush()
	}
}
