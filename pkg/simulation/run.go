package simulation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// snapshot is the wire form of the simulation's persisted state,
// matching §6's "JSON of {time, se}" contract.
type snapshot struct {
	Time interface{} `json:"time"`
	SE   interface{} `json:"se"`
}

// RunTick advances the simulation by exactly one tick: daily checks
// (when the virtual day has rolled over), order generation and
// matching (when the market is open) or an unconditional flush
// (when it is closed), the price random walk, and the external
// collaborator emits. It does not sleep or advance the clock — callers
// drive that via Run or their own loop (e.g. tests).
func (s *Simulation) RunTick() error {
	if err := s.runDailyChecksIfNeeded(); err != nil {
		return fmt.Errorf("daily checks: %w", err)
	}

	if s.Exchange.CanTradeNow(s.Clock) {
		if err := s.generateOrders(); err != nil {
			return fmt.Errorf("generate orders: %w", err)
		}
		s.Exchange.ExecuteOrders(s.Clock)
	} else {
		s.Exchange.FlushOrders(s.Clock)
	}

	if err := s.updatePrices(); err != nil {
		return fmt.Errorf("update prices: %w", err)
	}

	if s.KV != nil {
		if err := s.saveSnapshot(); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
	}

	return nil
}

func (s *Simulation) saveSnapshot() error {
	data, err := json.Marshal(snapshot{Time: s.Clock, SE: s.Exchange})
	if err != nil {
		return err
	}
	return s.KV.SaveKey("simulation_state", string(data))
}

// Run advances the simulation tick by tick until ctx is cancelled or
// MaxDurationSeconds (if set) is reached. There is no graceful per-tick
// cancellation and no partial shutdown: a fatal error from any
// subsystem propagates to the caller, which is expected to log and
// terminate the process.
func (s *Simulation) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		s.mu.Lock()
		err := s.RunTick()
		if err == nil {
			s.Clock.Tick()
		}
		s.mu.Unlock()
		if err != nil {
			return err
		}

		if s.Settings.MaxDurationSeconds > 0 && uint64(s.Clock.RunningSeconds()) >= s.Settings.MaxDurationSeconds {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.Settings.WaitMillis) * time.Millisecond):
		}
	}
}
