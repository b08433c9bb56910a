package telemetry

import (
	"time"

	"github.com/google/uuid"

	"github.com/neuroplay/arena/internal/core"
)

// HitLookback is how far back an impact may reach to annotate the shot that
// likely caused it. Impacts older than this leave the shot unmarked.
const HitLookback = 2 * time.Second

// Session is the append-only event log for one play session.
type Session struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	Events    []Event   `json:"events"`
}

// Recorder observes simulation events and appends them to the session log.
// All hooks stamp events from the simulation clock, so a replay with the
// same seed and start time produces an identical log.
type Recorder struct {
	session Session
	clock   *core.SimulationClock
}

// NewRecorder starts a fresh session log for the given game.
func NewRecorder(gameID string, clock *core.SimulationClock) *Recorder {
	return &Recorder{
		session: Session{
			ID:        uuid.NewString(),
			GameID:    gameID,
			StartedAt: clock.Start(),
		},
		clock: clock,
	}
}

func (r *Recorder) append(e Event) {
	e.Tick = r.clock.Tick()
	e.At = r.clock.Now()
	r.session.Events = append(r.session.Events, e)
}

// Reaction records the player's response latency to a threat.
func (r *Recorder) Reaction(latencyMS int, threat string) {
	r.append(Event{Kind: KindReaction, Reaction: &ReactionPayload{
		LatencyMS: latencyMS,
		Threat:    threat,
	}})
}

// Movement records a discrete movement intent.
func (r *Recorder) Movement(move string, directionChange bool) {
	r.append(Event{Kind: KindMovement, Movement: &MovementPayload{
		Move:            move,
		DirectionChange: directionChange,
	}})
}

// Shot records a fired projectile.
func (r *Recorder) Shot(shooter, variant string, x, y float64) {
	r.append(Event{Kind: KindShot, Shot: &ShotPayload{
		Shooter: shooter,
		Variant: variant,
		X:       x,
		Y:       y,
	}})
}

// MarkShotHit annotates the most recent unmarked shot by the given shooter
// as a hit, provided it happened within HitLookback of the current tick.
// This is a heuristic correlation: there is no verification that the struck
// entity was the intended target. Returns true if a shot was marked.
func (r *Recorder) MarkShotHit(shooter string) bool {
	lookback := r.clock.TicksFor(HitLookback)
	now := r.clock.Tick()

	for i := len(r.session.Events) - 1; i >= 0; i-- {
		e := &r.session.Events[i]
		if now-e.Tick > lookback {
			return false
		}
		if e.Kind != KindShot || e.Shot.Shooter != shooter || e.Shot.Hit {
			continue
		}
		e.Shot.Hit = true
		return true
	}
	return false
}

// ModeSwitch records a combat-mode change.
func (r *Recorder) ModeSwitch(actor, mode string) {
	r.append(Event{Kind: KindModeSwitch, ModeSwitch: &ModeSwitchPayload{
		Actor: actor,
		Mode:  mode,
	}})
}

// Drift records the player entering the bottom danger band.
func (r *Recorder) Drift(depth float64) {
	r.append(Event{Kind: KindDrift, Drift: &DriftPayload{Depth: depth}})
}

// Recovery records the player leaving the danger band.
func (r *Recorder) Recovery(durationMS int) {
	r.append(Event{Kind: KindRecovery, Recovery: &RecoveryPayload{
		DurationMS: durationMS,
	}})
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	return len(r.session.Events)
}

// Finish closes the session log at the current simulated time and returns
// the session. Safe to call mid-session for a partial flush.
func (r *Recorder) Finish() Session {
	s := r.session
	s.EndedAt = r.clock.Now()
	s.Events = make([]Event, len(r.session.Events))
	copy(s.Events, r.session.Events)
	return s
}
