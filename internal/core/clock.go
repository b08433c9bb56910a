package core

import "time"

// SimulationClock tracks simulation time explicitly instead of relying on
// ambient wall-clock reads scattered through gameplay code. The tick counter
// is the single source of truth; wall timestamps are derived from the session
// start so that a replayed session stamps events identically.
type SimulationClock struct {
	tick     int
	tickRate int
	start    time.Time
}

// NewSimulationClock creates a clock anchored at the given session start.
func NewSimulationClock(start time.Time, tickRate int) *SimulationClock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &SimulationClock{tickRate: tickRate, start: start}
}

// Advance moves the clock forward by one tick.
func (c *SimulationClock) Advance() {
	c.tick++
}

// Tick returns the current tick number.
func (c *SimulationClock) Tick() int {
	return c.tick
}

// TickRate returns ticks per second.
func (c *SimulationClock) TickRate() int {
	return c.tickRate
}

// Start returns the wall-clock session start.
func (c *SimulationClock) Start() time.Time {
	return c.start
}

// Now returns the wall timestamp for the current tick, derived from the
// session start. Deterministic for a fixed start and tick sequence.
func (c *SimulationClock) Now() time.Time {
	return c.start.Add(c.SinceStart())
}

// SinceStart returns elapsed simulated time.
func (c *SimulationClock) SinceStart() time.Duration {
	return time.Duration(c.tick) * time.Second / time.Duration(c.tickRate)
}

// TicksFor converts a duration to whole ticks at the clock's rate.
func (c *SimulationClock) TicksFor(d time.Duration) int {
	return int(d * time.Duration(c.tickRate) / time.Second)
}
