package simulation

import (
	"math"

	"github.com/hkex/market-sim/pkg/clock"
	"github.com/hkex/market-sim/pkg/fakedata"
	"github.com/hkex/market-sim/pkg/investor"
)

const (
	minHolidaysPerYear = 15
	maxHolidaysPerYear = 20
)

// runDailyChecksIfNeeded runs holiday generation, investor aging and
// mortality, and investor replenishment once per virtual day. The
// "already ran today" flag is memoized by formatted day string.
func (s *Simulation) runDailyChecksIfNeeded() error {
	today := s.Clock.DayFormatted()
	if today == s.dailyChecksDay {
		return nil
	}

	s.generateHolidaysIfNeeded(s.Clock.YearFormatted())
	s.ageAndCullInvestors()
	if err := s.replenishInvestors(); err != nil {
		return err
	}

	s.dailyChecksDay = today
	return nil
}

// generateHolidaysIfNeeded picks 15-20 distinct weekday dates for year,
// without replacement, the first time that year is seen.
func (s *Simulation) generateHolidaysIfNeeded(year string) {
	if _, ok := s.Exchange.Holidays[year]; ok {
		return
	}

	candidates := clock.YearWeekdays(parseYear(year), s.Clock.Location())
	count := s.rng.IntRange(minHolidaysPerYear, maxHolidaysPerYear)
	if count > len(candidates) {
		count = len(candidates)
	}

	perm := s.rng.Perm(len(candidates))
	picked := make(map[string]bool, count)
	for i := 0; i < count; i++ {
		picked[candidates[perm[i]]] = true
	}
	s.Exchange.Holidays[year] = picked
}

func parseYear(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// ageAndCullInvestors removes investors older than max_investor_age and
// then, for each survivor, removes them with the mortality probability
// described below. The rate formula confuses days and years and is
// nearly always zero — preserved verbatim, not "fixed".
func (s *Simulation) ageAndCullInvestors() {
	var toRemove []investor.ID
	s.Exchange.Investors.Each(func(inv *investor.Investor) {
		ageYears := inv.AgeYears(s.Clock)
		if ageYears > float64(s.Settings.MaxInvestorAge) {
			toRemove = append(toRemove, inv.ID)
			return
		}
		rate := math.Ceil(0.25 * ageYears / 365)
		if s.rng.Float64() < rate/100 {
			toRemove = append(toRemove, inv.ID)
		}
	})
	for _, id := range toRemove {
		s.Exchange.Investors.Remove(id)
	}
}

// replenishInvestors adds a small, possibly negative, net birth rate's
// worth of new investors each day.
func (s *Simulation) replenishInvestors() error {
	delta := s.rng.IntRange(0, 10) - 7
	if delta <= 0 {
		return nil
	}
	gen := fakedata.New(s.rng)
	newInvestors, err := gen.GenerateInvestors(delta, s.Clock)
	if err != nil {
		return err
	}
	newInvestors.Each(func(inv *investor.Investor) {
		inv.ID = s.Exchange.Investors.AllocateID()
		s.Exchange.Investors.Add(*inv)
	})
	return nil
}
