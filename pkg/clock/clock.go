// Package clock implements the simulator's virtual clock: a mapping
// from tick count to a virtual UNIX timestamp, with weekday/hour/day
// views computed in a fixed timezone.
package clock

import (
	"encoding/json"
	"time"
)

const (
	// DefaultSecsFactor is the virtual seconds advanced per simulated
	// second of wait time: 45 minutes of virtual time per real second.
	DefaultSecsFactor = 45 * 60
	// DefaultWaitMillis is the real-time pause between ticks.
	DefaultWaitMillis = 1000
	// DefaultTimezone is the exchange's home timezone.
	DefaultTimezone = "Asia/Hong_Kong"
)

// Handler is the virtual clock. It owns no PRNG state; all of its
// outputs are pure functions of initialTime, tickCount, waitMillis and
// secsFactor.
type Handler struct {
	initialTime int64
	tickCount   int64
	waitMillis  int64
	secsFactor  int64
	loc         *time.Location
}

// New builds a Handler at tick 0 in DefaultTimezone. If that zone
// cannot be loaded it falls back to UTC (never fatal).
func New(initialTime, waitMillis, secsFactor int64) *Handler {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	return &Handler{
		initialTime: initialTime,
		waitMillis:  waitMillis,
		secsFactor:  secsFactor,
		loc:         loc,
	}
}

// Tick advances the tick counter by one. It is the clock's only mutation.
func (h *Handler) Tick() {
	h.tickCount++
}

// TickCount returns the number of ticks elapsed so far.
func (h *Handler) TickCount() int64 {
	return h.tickCount
}

// NowUnix returns the virtual UNIX timestamp at the current tick.
func (h *Handler) NowUnix() int64 {
	virtualSecs := int64(roundFloat(float64(h.waitMillis) / 1000 * float64(h.tickCount) * float64(h.secsFactor)))
	return h.initialTime + virtualSecs
}

// RunningSeconds returns how many real seconds have elapsed since tick 0.
func (h *Handler) RunningSeconds() int64 {
	return (h.tickCount * h.waitMillis) / 1000
}

func (h *Handler) now() time.Time {
	return time.Unix(h.NowUnix(), 0).In(h.loc)
}

// Weekday returns 0 for Monday .. 6 for Sunday, matching trading_days
// configuration.
func (h *Handler) Weekday() int {
	wd := h.now().Weekday()
	// time.Weekday: Sunday=0 .. Saturday=6; remap to Monday=0 .. Sunday=6.
	return (int(wd) + 6) % 7
}

// Hour returns the hour-of-day (0-23) in the configured timezone.
func (h *Handler) Hour() int {
	return h.now().Hour()
}

// DayFormatted renders "YYYY-MM-DD" in the configured timezone.
func (h *Handler) DayFormatted() string {
	return h.now().Format("2006-01-02")
}

// YearFormatted renders "YYYY" in the configured timezone.
func (h *Handler) YearFormatted() string {
	return h.now().Format("2006")
}

// Formatted renders "YYYY-MM-DD HH:MM:SS ZZZ".
func (h *Handler) Formatted() string {
	return h.now().Format("2006-01-02 15:04:05 MST")
}

// YearWeekdays returns every "YYYY-MM-DD" date within the given calendar
// year that falls on a Monday through Friday, in ascending order.
func YearWeekdays(year int, loc *time.Location) []string {
	var out []string
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	for d := start; d.Year() == year; d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		out = append(out, d.Format("2006-01-02"))
	}
	return out
}

// Location exposes the configured timezone, used by callers (such as
// the daily-checks holiday generator) that need to build dates in the
// same zone as the clock.
func (h *Handler) Location() *time.Location {
	return h.loc
}

type wireHandler struct {
	InitialTime int64 `json:"initial_time"`
	TickCount   int64 `json:"tick_count"`
	WaitMillis  int64 `json:"wait_millis"`
	SecsFactor  int64 `json:"secs_factor"`
}

// MarshalJSON renders the handler's snapshot-relevant fields so the
// full simulation state round-trips through the KV collaborator.
func (h *Handler) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireHandler{
		InitialTime: h.initialTime,
		TickCount:   h.tickCount,
		WaitMillis:  h.waitMillis,
		SecsFactor:  h.secsFactor,
	})
}

// UnmarshalJSON restores a Handler from its snapshot form, re-resolving
// the fixed timezone rather than persisting it.
func (h *Handler) UnmarshalJSON(data []byte) error {
	var w wireHandler
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	h.initialTime = w.InitialTime
	h.tickCount = w.TickCount
	h.waitMillis = w.WaitMillis
	h.secsFactor = w.SecsFactor
	h.loc = loc
	return nil
}

func roundFloat(v float64) float64 {
	if v < 0 {
		return -roundFloat(-v)
	}
	return float64(int64(v + 0.5))
}
