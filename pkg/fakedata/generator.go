// Package fakedata implements the seeded generators the simulation
// driver uses at init: companies, listings, IPOs, investors, and
// market makers, each verified before acceptance and retried within a
// bounded budget on failure.
package fakedata

import (
	"fmt"
	"math"
	"strings"

	"github.com/hkex/market-sim/pkg/clock"
	"github.com/hkex/market-sim/pkg/investor"
	"github.com/hkex/market-sim/pkg/market"
	"github.com/hkex/market-sim/pkg/marketmaker"
	"github.com/hkex/market-sim/pkg/money"
	"github.com/hkex/market-sim/pkg/rng"
)

// retryBudgetMultiplier is the "abort after 10×N failures" budget from
// the engine's verification contract.
const retryBudgetMultiplier = 10

var companyWords = []string{
	"Holdings", "Group", "Industries", "Capital", "Ventures", "Partners",
	"Dynamics", "Systems", "Traders", "Pacific", "Oriental", "Union",
	"Harbour", "Summit", "Crown", "Horizon", "Equity", "Worldwide",
}

// Generator owns the engine's single PRNG source and produces every
// randomized piece of init state from it.
type Generator struct {
	rng *rng.Source
}

// New builds a Generator over the given PRNG source. The source is
// shared with the rest of the engine — fakedata never owns its own
// entropy.
func New(source *rng.Source) *Generator {
	return &Generator{rng: source}
}

// randomCompanyName builds a fake company name from a locale surname
// plus a generic corporate suffix word.
func (g *Generator) randomCompanyName() string {
	locale := locales[g.rng.Intn(len(locales))]
	surname := locale.last[g.rng.Intn(len(locale.last))]
	suffix := companyWords[g.rng.Intn(len(companyWords))]
	return surname + " " + suffix
}

// symbolFromName derives a 4-character uppercase ticker prefix from a
// company name, keeping only alphabetic runes.
func symbolFromName(name string) market.CompanySymbol {
	var b strings.Builder
	for _, r := range name {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			b.WriteRune(r)
		}
		if b.Len() >= 4 {
			break
		}
	}
	s := strings.ToUpper(b.String())
	for len(s) < 4 {
		s += "X"
	}
	return market.CompanySymbol(s)
}

// GenerateCompanies produces n companies with unique symbols, retrying
// name/symbol draws up to 10×n times before surfacing a fatal error.
func (g *Generator) GenerateCompanies(n int) (market.Companies, error) {
	companies := make(market.Companies, n)
	budget := retryBudgetMultiplier * n
	for len(companies) < n {
		if budget <= 0 {
			return nil, fmt.Errorf("fakedata: failed to generate %d companies within retry budget", n)
		}
		budget--
		name := g.randomCompanyName()
		symbol := symbolFromName(name)
		company := market.Company{Name: name, Symbol: symbol}
		if err := company.Validate(); err != nil {
			continue
		}
		if _, exists := companies[symbol]; exists {
			continue
		}
		companies[symbol] = company
	}
	return companies, nil
}

// GenerateListings derives a ListedCompany for every company in
// symbols: lot_size = ceil(100/(u+1)) for u ~ U(0,1), and
// total_stocks = rand(10,99) × lot_size.
func (g *Generator) GenerateListings(symbols []market.CompanySymbol) market.ListedCompanies {
	out := make(market.ListedCompanies, len(symbols))
	for _, symbol := range symbols {
		u := g.rng.Float64()
		lotSize := int64(math.Ceil(100 / (u + 1)))
		if lotSize < 1 {
			lotSize = 1
		}
		multiplier := int64(g.rng.IntRange(10, 99))
		out[symbol] = market.ListedCompany{
			Symbol:      symbol,
			LotSize:     lotSize,
			TotalStocks: multiplier * lotSize,
		}
	}
	return out
}

// GenerateIpos produces n additional "IPO" companies merged into
// companies, with matching Ipo records dated 1-29 days in the future.
// The companies are not listed and the IPOs are never executed by the
// engine — callers must tolerate symbols with no corresponding listing
// or price.
func (g *Generator) GenerateIpos(n int, companies market.Companies, now *clock.Handler) (market.Ipos, error) {
	ipos := make(market.Ipos, n)
	budget := retryBudgetMultiplier * n
	for len(ipos) < n {
		if budget <= 0 {
			return nil, fmt.Errorf("fakedata: failed to generate %d IPOs within retry budget", n)
		}
		budget--
		name := g.randomCompanyName()
		symbol := symbolFromName(name)
		company := market.Company{Name: name, Symbol: symbol}
		if err := company.Validate(); err != nil {
			continue
		}
		if _, exists := companies[symbol]; exists {
			continue
		}
		days := g.rng.IntRange(1, 29)
		lotSize := int64(g.rng.IntRange(1, 100))
		ipo := market.Ipo{
			Symbol:  symbol,
			Shares:  int64(g.rng.IntRange(10, 99)) * lotSize,
			LotSize: lotSize,
			Date:    now.NowUnix() + int64(days)*24*60*60,
		}
		companies[symbol] = company
		ipos[symbol] = ipo
	}
	return ipos, nil
}

// GenerateInvestors produces n verified investors with unique names,
// ages in [18,100] years, cash uniform in [0,100000], and zero debt.
func (g *Generator) GenerateInvestors(n int, now *clock.Handler) (*investor.Investors, error) {
	pop := investor.NewInvestors()
	seen := make(map[string]bool, n)
	budget := retryBudgetMultiplier * n
	for pop.Len() < n {
		if budget <= 0 {
			return nil, fmt.Errorf("fakedata: failed to generate %d investors within retry budget", n)
		}
		budget--
		name := g.randomFullName()
		if seen[name] {
			continue
		}
		ageYears := g.rng.IntRange(18, 100)
		dob := now.NowUnix() - int64(ageYears)*365*24*60*60
		cash, err := money.New(money.HKD, g.rng.FloatRange(0, 100000))
		if err != nil {
			continue
		}
		zero, _ := money.New(money.HKD, 0)
		inv := investor.Investor{
			ID:         pop.AllocateID(),
			Name:       name,
			DOB:        dob,
			LiquidCash: cash,
			Debt:       zero,
		}
		if err := inv.Validate(now); err != nil {
			continue
		}
		seen[name] = true
		pop.Add(inv)
	}
	return pop, nil
}

// GenerateMarketMakers produces n market makers with permit windows
// starting at now.
func (g *Generator) GenerateMarketMakers(n int, now *clock.Handler) (*marketmaker.MarketMakers, error) {
	pop := marketmaker.NewMarketMakers()
	budget := retryBudgetMultiplier * n
	for pop.Len() < n {
		if budget <= 0 {
			return nil, fmt.Errorf("fakedata: failed to generate %d market makers within retry budget", n)
		}
		budget--
		start := now.NowUnix()
		end := start + int64(g.rng.IntRange(1, 365))*24*60*60
		mm := marketmaker.MarketMaker{
			ID:              pop.AllocateID(),
			PermitStartTime: start,
			PermitEndTime:   end,
		}
		if err := mm.Validate(now.NowUnix()); err != nil {
			continue
		}
		pop.Add(mm)
	}
	return pop, nil
}
