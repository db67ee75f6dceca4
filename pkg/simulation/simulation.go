// Package simulation is the driver: Init builds deterministic initial
// state, Run advances the tick loop — daily checks, order generation,
// matching, price walk, and the external-collaborator emits.
package simulation

import (
	"sync"

	"github.com/google/uuid"

	"github.com/hkex/market-sim/pkg/clock"
	"github.com/hkex/market-sim/pkg/exchange"
	"github.com/hkex/market-sim/pkg/fakedata"
	"github.com/hkex/market-sim/pkg/rng"
	"github.com/hkex/market-sim/pkg/storage"
)

const (
	initialCompanyCount  = 100
	initialIpoCount      = 10
	initialInvestorCount = 1000
	initialMakerCount    = 10
)

// Simulation owns the engine's single PRNG instance, the virtual clock,
// and the exchange state, plus its external collaborators.
type Simulation struct {
	// RunID distinguishes one simulation process's snapshots and logs
	// from another's when several runs share the same KV store/prefix.
	RunID string

	Settings Settings
	Clock    *clock.Handler
	Exchange *exchange.StockExchange

	// mu guards Exchange, Clock, and Settings exactly as required: the
	// driver (Run) holds the write lock for a tick's whole mutation
	// phase, and the external query endpoints (BuildStatus,
	// BuildMetrics) hold the read lock across the whole read, so a
	// concurrent HTTP reader always sees a coherent post-tick snapshot
	// instead of racing the driver's map writes.
	mu sync.RWMutex

	KV      storage.KVStore
	History storage.PriceHistorySink
	Metrics storage.MetricsSink

	rng *rng.Source

	// dailyChecksDay memoizes the last virtual day on which daily
	// checks ran, by its formatted string — cheaper would be an
	// integer day-number, but the formatted string is what the
	// original keys on. It is not part of the persisted snapshot.
	dailyChecksDay string
}

// New builds a Simulation at tick 0, seeded deterministically.
func New(settings Settings, seed int64, initialTime int64) *Simulation {
	return &Simulation{
		RunID:    uuid.NewString(),
		Settings: settings,
		Clock:    clock.New(initialTime, settings.WaitMillis, settings.SecsFactor),
		Exchange: exchange.New(exchange.DefaultSettings()),
		rng:      rng.New(seed),
	}
}

// Init generates the deterministic starting universe described in the
// engine's init contract.
func (s *Simulation) Init() error {
	gen := fakedata.New(s.rng)

	companies, err := gen.GenerateCompanies(initialCompanyCount)
	if err != nil {
		return err
	}
	s.Exchange.Companies = companies

	listed := gen.GenerateListings(companies.Symbols())
	s.Exchange.ListedCompanies = listed

	ipos, err := gen.GenerateIpos(initialIpoCount, s.Exchange.Companies, s.Clock)
	if err != nil {
		return err
	}
	s.Exchange.Ipos = ipos

	investors, err := gen.GenerateInvestors(initialInvestorCount, s.Clock)
	if err != nil {
		return err
	}
	s.Exchange.Investors = investors

	makers, err := gen.GenerateMarketMakers(initialMakerCount, s.Clock)
	if err != nil {
		return err
	}
	s.Exchange.MarketMakers = makers

	s.Exchange.Stocks = gen.AssignStocks(listed, investors)
	s.Exchange.Prices = fakedata.InitialPrices(listed, s.Exchange.Stocks)

	return nil
}
