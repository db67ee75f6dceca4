// Package marketmaker models the always-liquid counterparties that
// provide buy-side depth even when no investor can afford a listing.
package marketmaker

import (
	"encoding/json"
	"fmt"
)

// ID is a monotonically increasing, never-reused market maker identifier.
type ID uint64

// InitID is the starting value of a population's last-allocated ID;
// the first ID AllocateID hands out is NextID(InitID()) = 1.
func InitID() ID { return 0 }

// NextID allocates the successor of prev.
func NextID(prev ID) ID { return prev + 1 }

// MarketMaker is assumed to have unlimited cash; its only constraint is
// the time window during which it is permitted to trade.
type MarketMaker struct {
	ID              ID    `json:"id"`
	PermitStartTime int64 `json:"permit_start_time"`
	PermitEndTime   int64 `json:"permit_end_time"`
}

// Validate enforces start < end and start >= now.
func (m MarketMaker) Validate(nowUnix int64) error {
	if m.PermitStartTime >= m.PermitEndTime {
		return fmt.Errorf("marketmaker: permit start %d must be before end %d", m.PermitStartTime, m.PermitEndTime)
	}
	if m.PermitStartTime < nowUnix {
		return fmt.Errorf("marketmaker: permit start %d must not be before now %d", m.PermitStartTime, nowUnix)
	}
	return nil
}

// MarketMakers is the ID-keyed population.
type MarketMakers struct {
	byID   map[ID]*MarketMaker
	lastID ID
}

// NewMarketMakers builds an empty population.
func NewMarketMakers() *MarketMakers {
	return &MarketMakers{byID: make(map[ID]*MarketMaker), lastID: InitID()}
}

// Add inserts a market maker that already carries an allocated ID.
func (p *MarketMakers) Add(mm MarketMaker) {
	p.byID[mm.ID] = &mm
	if mm.ID > p.lastID {
		p.lastID = mm.ID
	}
}

// AllocateID returns the next free ID without inserting anything.
func (p *MarketMakers) AllocateID() ID {
	p.lastID = NextID(p.lastID)
	return p.lastID
}

// Get returns the market maker for id.
func (p *MarketMakers) Get(id ID) (*MarketMaker, bool) {
	mm, ok := p.byID[id]
	return mm, ok
}

// Len returns the population size.
func (p *MarketMakers) Len() int {
	return len(p.byID)
}

type wireMarketMakers struct {
	ByID   map[ID]*MarketMaker `json:"by_id"`
	LastID ID                  `json:"last_id"`
}

// MarshalJSON renders the population for the simulation-state snapshot.
func (p *MarketMakers) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireMarketMakers{ByID: p.byID, LastID: p.lastID})
}

// UnmarshalJSON restores a population from a snapshot.
func (p *MarketMakers) UnmarshalJSON(data []byte) error {
	var w wireMarketMakers
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.ByID == nil {
		w.ByID = make(map[ID]*MarketMaker)
	}
	p.byID = w.ByID
	p.lastID = w.LastID
	return nil
}
