package simulation

// Status is the JSON shape served at the status endpoint — ported from
// the original's Grafana data payload.
type Status struct {
	RunID               string   `json:"run_id"`
	CurrentTime         string   `json:"current_time"`
	YearHolidays        []string `json:"year_holidays"`
	Currency            string   `json:"currency"`
	FlushStorage        bool     `json:"flush_storage"`
	MaxDurationSeconds  uint64   `json:"max_duration_seconds"`
	MaxInvestorAge      uint     `json:"max_investor_age"`
	MaxOrdersPerTick    uint64   `json:"max_orders_per_tick"`
}

// BuildStatus renders the current clock/settings/holiday state.
func (s *Simulation) BuildStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	year := s.Clock.YearFormatted()
	var holidays []string
	if days, ok := s.Exchange.Holidays[year]; ok {
		for d := range days {
			holidays = append(holidays, d)
		}
	}
	return Status{
		RunID:              s.RunID,
		CurrentTime:        s.Clock.Formatted(),
		YearHolidays:       holidays,
		Currency:           string(s.Exchange.Settings.Currency),
		FlushStorage:       s.Settings.FlushStorage,
		MaxDurationSeconds: s.Settings.MaxDurationSeconds,
		MaxInvestorAge:     s.Settings.MaxInvestorAge,
		MaxOrdersPerTick:   s.Settings.MaxOrdersPerTick,
	}
}
