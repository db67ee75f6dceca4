// Package broker holds the broker data model. Present in the state so
// the exchange can eventually route orders through an intermediary;
// the engine does not yet exercise it (not all investors trade through
// a broker, and direct-to-exchange is the only path implemented).
package broker

import "encoding/json"

// ID is a monotonically increasing, never-reused broker identifier.
type ID uint64

// InitID is the starting value of a population's last-allocated ID;
// the first ID AllocateID hands out is NextID(InitID()) = 1.
func InitID() ID { return 0 }

// NextID allocates the successor of prev.
func NextID(prev ID) ID { return prev + 1 }

// Broker is an intermediary entity. It carries no behavior yet — no
// order in the engine is ever attributed to one.
type Broker struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Brokers is the ID-keyed population.
type Brokers struct {
	byID   map[ID]*Broker
	lastID ID
}

// NewBrokers builds an empty population.
func NewBrokers() *Brokers {
	return &Brokers{byID: make(map[ID]*Broker), lastID: InitID()}
}

// Add inserts a broker that already carries an allocated ID.
func (p *Brokers) Add(b Broker) {
	p.byID[b.ID] = &b
	if b.ID > p.lastID {
		p.lastID = b.ID
	}
}

// AllocateID returns the next free ID without inserting anything.
func (p *Brokers) AllocateID() ID {
	p.lastID = NextID(p.lastID)
	return p.lastID
}

// Len returns the population size.
func (p *Brokers) Len() int {
	return len(p.byID)
}

type wireBrokers struct {
	ByID   map[ID]*Broker `json:"by_id"`
	LastID ID             `json:"last_id"`
}

// MarshalJSON renders the population for the simulation-state snapshot.
func (p *Brokers) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireBrokers{ByID: p.byID, LastID: p.lastID})
}

// UnmarshalJSON restores a population from a snapshot.
func (p *Brokers) UnmarshalJSON(data []byte) error {
	var w wireBrokers
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.ByID == nil {
		w.ByID = make(map[ID]*Broker)
	}
	p.byID = w.ByID
	p.lastID = w.LastID
	return nil
}
