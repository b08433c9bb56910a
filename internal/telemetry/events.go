// Package telemetry records structured gameplay events during a session and
// folds them into a summary when the session ends. The simulation calls
// recorder hooks with already-computed facts; nothing here inspects live
// game state.
package telemetry

import "time"

// EventKind identifies the type of a telemetry event.
// The set is closed: the aggregator matches every kind exhaustively.
type EventKind int

const (
	KindReaction   EventKind = iota // player responded to an incoming threat
	KindMovement                    // movement input (direction change, jump)
	KindShot                        // a projectile was fired
	KindModeSwitch                  // buff window opened or AI strategy changed
	KindDrift                       // player entered the bottom danger band
	KindRecovery                    // player left the danger band
)

// String returns the event kind name used in storage and summaries.
func (k EventKind) String() string {
	switch k {
	case KindReaction:
		return "reaction"
	case KindMovement:
		return "movement"
	case KindShot:
		return "shot"
	case KindModeSwitch:
		return "mode_switch"
	case KindDrift:
		return "drift"
	case KindRecovery:
		return "recovery"
	default:
		return "unknown"
	}
}

// Event is one immutable record in the session log. Exactly one payload
// pointer is non-nil, matching Kind. Events are never mutated after append,
// with a single exception: a ShotPayload may be retroactively marked Hit
// within the recorder's lookback window.
type Event struct {
	Kind EventKind `json:"kind"`
	Tick int       `json:"tick"`
	At   time.Time `json:"at"`

	Reaction   *ReactionPayload   `json:"reaction,omitempty"`
	Movement   *MovementPayload   `json:"movement,omitempty"`
	Shot       *ShotPayload       `json:"shot,omitempty"`
	ModeSwitch *ModeSwitchPayload `json:"mode_switch,omitempty"`
	Drift      *DriftPayload      `json:"drift,omitempty"`
	Recovery   *RecoveryPayload   `json:"recovery,omitempty"`
}

// ReactionPayload records the latency between a threat appearing and the
// player's first input.
type ReactionPayload struct {
	LatencyMS int    `json:"latency_ms"`
	Threat    string `json:"threat"` // what triggered the reaction window
}

// MovementPayload records a discrete movement intent.
type MovementPayload struct {
	Move            string `json:"move"` // "left", "right", "jump"
	DirectionChange bool   `json:"direction_change"`
}

// ShotPayload records a fired projectile. Hit is the sole retroactively
// mutable field; it is a best-effort correlation, not ground truth.
type ShotPayload struct {
	Shooter string  `json:"shooter"` // "player" or "ai"
	Variant string  `json:"variant"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Hit     bool    `json:"hit"`
}

// ModeSwitchPayload records a combat-mode change: a pickup buff window
// opening for the player, or the AI re-rolling its strategy.
type ModeSwitchPayload struct {
	Actor string `json:"actor"` // "player" or "ai"
	Mode  string `json:"mode"`
}

// DriftPayload records the player sinking into the bottom danger band.
type DriftPayload struct {
	Depth float64 `json:"depth"` // pixels into the band at entry
}

// RecoveryPayload records the player climbing back out of the danger band.
type RecoveryPayload struct {
	DurationMS int `json:"duration_ms"`
}
