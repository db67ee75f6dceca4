// Package investor models synthetic retail participants: identity,
// age verification, and the overdraft-absorbing cash ledger described
// by the simulation's affordability rules.
package investor

import (
	"encoding/json"
	"fmt"

	"github.com/hkex/market-sim/pkg/clock"
	"github.com/hkex/market-sim/pkg/money"
)

// ID is a monotonically increasing, never-reused investor identifier.
type ID uint64

// InitID is the starting value of a population's last-allocated ID;
// the first ID AllocateID hands out is NextID(InitID()) = 1.
func InitID() ID { return 0 }

// NextID allocates the successor of prev. IDs are retired, not reused,
// on investor removal.
func NextID(prev ID) ID { return prev + 1 }

const (
	minAgeYears = 18
	maxAgeYears = 100
	yearSeconds = int64(365 * 24 * 60 * 60)
)

// Investor is a synthetic retail trader.
type Investor struct {
	ID         ID         `json:"id"`
	Name       string     `json:"name"`
	DOB        int64      `json:"dob"` // UNIX seconds
	LiquidCash money.Money `json:"liquid_cash"`
	Debt       money.Money `json:"debt"`
}

// Validate enforces name non-empty and age within [18,100] years as of
// the given virtual clock reading.
func (i Investor) Validate(now *clock.Handler) error {
	if i.Name == "" {
		return fmt.Errorf("investor: name must not be empty")
	}
	ageYears := float64(now.NowUnix()-i.DOB) / float64(yearSeconds)
	if ageYears < minAgeYears || ageYears > maxAgeYears {
		return fmt.Errorf("investor: age %.1f years outside [%d,%d]", ageYears, minAgeYears, maxAgeYears)
	}
	return nil
}

// AgeYears returns the investor's age in years as of the given clock
// reading. Used both by verification and by the daily mortality draw.
func (i Investor) AgeYears(now *clock.Handler) float64 {
	return float64(now.NowUnix()-i.DOB) / float64(yearSeconds)
}

// SubtractCash debits amount from liquid cash. Overspend is absorbed
// into debt rather than rejected — affordability is enforced before
// an order is placed, never at settlement time.
func (i *Investor) SubtractCash(amount money.Money) {
	if i.LiquidCash.GreaterOrEqual(amount) {
		i.LiquidCash = i.LiquidCash.Sub(amount)
		return
	}
	shortfall := amount.Sub(i.LiquidCash)
	if i.Debt.Cents() == 0 {
		i.Debt = shortfall
	} else {
		i.Debt = i.Debt.Add(shortfall)
	}
	i.LiquidCash = money.Money{Currency: i.LiquidCash.Currency}
}

// AddCash credits amount, paying down any outstanding debt first and
// depositing the remainder as liquid cash.
func (i *Investor) AddCash(amount money.Money) {
	if i.Debt.Cents() == 0 {
		if i.LiquidCash.Cents() == 0 {
			i.LiquidCash = amount
			return
		}
		i.LiquidCash = i.LiquidCash.Add(amount)
		return
	}
	if amount.GreaterOrEqual(i.Debt) {
		remainder := amount.Sub(i.Debt)
		i.Debt = money.Money{Currency: i.Debt.Currency}
		i.LiquidCash = i.LiquidCash.Add(remainder)
		return
	}
	i.Debt = i.Debt.Sub(amount)
}

// Investors is the ID-keyed population, tracking the last-allocated ID
// for successor allocation.
type Investors struct {
	byID   map[ID]*Investor
	lastID ID
}

// NewInvestors builds an empty population.
func NewInvestors() *Investors {
	return &Investors{byID: make(map[ID]*Investor), lastID: InitID()}
}

// Add inserts an investor that already carries an allocated ID,
// advancing lastID if needed.
func (p *Investors) Add(inv Investor) {
	p.byID[inv.ID] = &inv
	if inv.ID > p.lastID {
		p.lastID = inv.ID
	}
}

// AllocateID returns the next free ID without inserting anything.
func (p *Investors) AllocateID() ID {
	p.lastID = NextID(p.lastID)
	return p.lastID
}

// Get returns the investor for id, or false if it does not exist
// (removed or never allocated).
func (p *Investors) Get(id ID) (*Investor, bool) {
	inv, ok := p.byID[id]
	return inv, ok
}

// Remove deletes an investor permanently; the ID is never reused.
func (p *Investors) Remove(id ID) {
	delete(p.byID, id)
}

// Len returns the current population size.
func (p *Investors) Len() int {
	return len(p.byID)
}

// IDs returns every live investor ID in ascending order, for
// deterministic iteration during order generation and daily checks.
func (p *Investors) IDs() []ID {
	out := make([]ID, 0, len(p.byID))
	for id := range p.byID {
		out = append(out, id)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// Each invokes fn for every live investor in ascending ID order.
func (p *Investors) Each(fn func(*Investor)) {
	for _, id := range p.IDs() {
		fn(p.byID[id])
	}
}

type wireInvestors struct {
	ByID   map[ID]*Investor `json:"by_id"`
	LastID ID               `json:"last_id"`
}

// MarshalJSON renders the population for the simulation-state snapshot.
func (p *Investors) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireInvestors{ByID: p.byID, LastID: p.lastID})
}

// UnmarshalJSON restores a population from a snapshot.
func (p *Investors) UnmarshalJSON(data []byte) error {
	var w wireInvestors
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.ByID == nil {
		w.ByID = make(map[ID]*Investor)
	}
	p.byID = w.ByID
	p.lastID = w.LastID
	return nil
}
