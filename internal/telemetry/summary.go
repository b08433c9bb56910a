package telemetry

import "time"

// SessionSummary is the single artifact handed to persistence when a session
// ends. It is derived from the event log alone; see Aggregate.
type SessionSummary struct {
	SessionID  string    `json:"session_id"`
	GameID     string    `json:"game_id"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
	DurationMS int       `json:"duration_ms"`
	Score      int       `json:"score"`
	Partial    bool      `json:"partial"` // session was abandoned mid-play

	Reactions ReactionStats `json:"reactions"`
	Shots     ShotStats     `json:"shots"`
	Movement  MovementStats `json:"movement"`
	Modes     ModeStats     `json:"modes"`
	Drift     DriftStats    `json:"drift"`

	Profile CognitiveProfile `json:"profile"`

	Events []Event `json:"events"`
}

// ReactionStats summarizes reaction events.
type ReactionStats struct {
	Count   int `json:"count"`
	MeanMS  int `json:"mean_ms"`
	BestMS  int `json:"best_ms"`
	WorstMS int `json:"worst_ms"`
}

// ShotStats summarizes shots fired by the player.
type ShotStats struct {
	Count     int     `json:"count"`
	Hits      int     `json:"hits"`
	Accuracy  float64 `json:"accuracy"`
	PerMinute float64 `json:"per_minute"`
}

// MovementStats summarizes movement events.
type MovementStats struct {
	Count            int     `json:"count"`
	DirectionChanges int     `json:"direction_changes"`
	Jumps            int     `json:"jumps"`
	PerMinute        float64 `json:"per_minute"`
}

// ModeStats summarizes mode-switch events attributed to the player.
type ModeStats struct {
	Count     int     `json:"count"`
	PerMinute float64 `json:"per_minute"`
}

// DriftStats summarizes drift/recovery pairs.
type DriftStats struct {
	Count          int     `json:"count"`
	Recoveries     int     `json:"recoveries"`
	MeanRecoveryMS int     `json:"mean_recovery_ms"`
	MaxDepth       float64 `json:"max_depth"`
}

// CognitiveProfile is the derived behavior vector attached to every summary.
type CognitiveProfile struct {
	ReactionMeanMS float64 `json:"reaction_mean_ms"`
	ReactionBestMS float64 `json:"reaction_best_ms"`
	ShotAccuracy   float64 `json:"shot_accuracy"`
	ShotsPerMin    float64 `json:"shots_per_min"`
	MovesPerMin    float64 `json:"moves_per_min"`
	DriftCount     float64 `json:"drift_count"`
	RecoveryMeanMS float64 `json:"recovery_mean_ms"`
	ModeSwitchRate float64 `json:"mode_switch_rate"`
}

// Vector returns the profile as an ordered slice, the shape downstream
// scoring consumes.
func (p CognitiveProfile) Vector() []float64 {
	return []float64{
		p.ReactionMeanMS,
		p.ReactionBestMS,
		p.ShotAccuracy,
		p.ShotsPerMin,
		p.MovesPerMin,
		p.DriftCount,
		p.RecoveryMeanMS,
		p.ModeSwitchRate,
	}
}
