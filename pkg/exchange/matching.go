package exchange

import (
	"github.com/hkex/market-sim/pkg/clock"
	"github.com/hkex/market-sim/pkg/order"
	"github.com/hkex/market-sim/pkg/price"
	"github.com/hkex/market-sim/pkg/stock"
)

// ExecuteOrders runs one matching pass over the book in arrival order.
// For each order not yet removed, it takes the first feasible
// counter-order and settles the trade. This is a deliberately simplified
// policy, not price-time priority:
//
//   - the traded quantity is the counter-order's share count, not the
//     incoming order's — a larger order is satisfied against exactly one
//     smaller counter-order, and both orders are then removed from the
//     book, so the incoming order's residual shares are dropped;
//   - the Sell-side limit check treats limit > total as infeasible
//     (the Buy side treats limit < total as infeasible), which is
//     economically backwards but preserved exactly as specified.
//
// Both quirks are intentional and must not be "fixed".
func (se *StockExchange) ExecuteOrders(now *clock.Handler) {
	if !se.CanTradeNow(now) {
		return
	}

	orders := se.Book.All()
	removed := make(map[int]bool, len(orders))

	for i, o := range orders {
		if removed[i] {
			continue
		}
		candidates := se.Book.MatchingCandidates(o, removed)
		for _, j := range candidates {
			counter := orders[j]
			ok, quote := se.feasible(o, counter)
			if !ok {
				continue
			}
			se.settle(o, counter, quote, now)
			removed[i] = true
			removed[j] = true
			break
		}
	}

	se.Book.RemoveIndexes(removed)
}

// feasible evaluates whether order o can trade against candidate o'.
// total is priced off the counter-order's share count, matching the
// traded-quantity quirk documented above.
func (se *StockExchange) feasible(o, counter order.Order) (bool, price.Price) {
	quote, ok := se.Prices.Get(o.Symbol)
	if !ok {
		return false, price.Price{}
	}
	mid := quote.Average()
	total := mid.MulFloat(float64(counter.Shares))

	if o.Type.IsLimit {
		limit := o.Type.Limit
		if o.Side == order.Buy {
			if limit.Cents() < total.Cents() {
				return false, price.Price{}
			}
		} else {
			// Preserved verbatim: infeasible when limit > total, the
			// economic inverse of a sensible sell-side floor check.
			if limit.Cents() > total.Cents() {
				return false, price.Price{}
			}
		}
	}

	payerOwner := payer(o, counter)
	if payerOwner.IsInvestor() {
		inv, ok := se.Investors.Get(payerOwner.InvestorID)
		if !ok {
			return false, price.Price{}
		}
		if !inv.LiquidCash.GreaterOrEqual(total) {
			return false, price.Price{}
		}
	}
	// Market maker payers are assumed to have unlimited liquidity.

	return true, quote
}

// payer returns whichever side of the pair is buying.
func payer(o, counter order.Order) stock.Owner {
	if o.Side == order.Buy {
		return o.OwnerID
	}
	return counter.OwnerID
}

// settle transfers cash and shares between the two matched orders. The
// traded quantity is counter.Shares, not o.Shares — see ExecuteOrders.
func (se *StockExchange) settle(o, counter order.Order, quote price.Price, now *clock.Handler) {
	mid := quote.Average()
	qty := counter.Shares
	total := mid.MulFloat(float64(qty))

	buyerOwner := o.OwnerID
	sellerOwner := counter.OwnerID
	if o.Side == order.Sell {
		buyerOwner, sellerOwner = counter.OwnerID, o.OwnerID
	}

	if buyerOwner.IsInvestor() {
		if buyer, ok := se.Investors.Get(buyerOwner.InvestorID); ok {
			buyer.SubtractCash(total)
		}
	}
	if sellerOwner.IsInvestor() {
		if seller, ok := se.Investors.Get(sellerOwner.InvestorID); ok {
			seller.AddCash(total)
		}
	}

	se.Stocks.Append(stock.Stock{
		Owner:    buyerOwner,
		Symbol:   o.Symbol,
		Quantity: qty,
		Price:    mid,
	})
	se.Stocks.Deduct(sellerOwner, o.Symbol, qty)
}
