package telemetry

import "time"

// Aggregate folds a finished session's event log into a SessionSummary.
// It is a pure function of the session and score: re-running it over the
// same log yields an identical summary. No running accumulators from play
// time feed into it.
func Aggregate(s Session, score int, partial bool) SessionSummary {
	sum := SessionSummary{
		SessionID: s.ID,
		GameID:    s.GameID,
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
		Score:     score,
		Partial:   partial,
		Events:    s.Events,
	}

	duration := s.EndedAt.Sub(s.StartedAt)
	if duration < 0 {
		duration = 0
	}
	sum.DurationMS = int(duration / time.Millisecond)
	minutes := duration.Minutes()

	var reactionTotal int
	var recoveryTotal int

	for _, e := range s.Events {
		switch e.Kind {
		case KindReaction:
			p := e.Reaction
			sum.Reactions.Count++
			reactionTotal += p.LatencyMS
			if sum.Reactions.Count == 1 || p.LatencyMS < sum.Reactions.BestMS {
				sum.Reactions.BestMS = p.LatencyMS
			}
			if p.LatencyMS > sum.Reactions.WorstMS {
				sum.Reactions.WorstMS = p.LatencyMS
			}

		case KindShot:
			if e.Shot.Shooter != ActorPlayer {
				continue // AI shots are logged but not scored against the player
			}
			sum.Shots.Count++
			if e.Shot.Hit {
				sum.Shots.Hits++
			}

		case KindMovement:
			p := e.Movement
			sum.Movement.Count++
			if p.DirectionChange {
				sum.Movement.DirectionChanges++
			}
			if p.Move == "jump" {
				sum.Movement.Jumps++
			}

		case KindModeSwitch:
			if e.ModeSwitch.Actor == ActorPlayer {
				sum.Modes.Count++
			}

		case KindDrift:
			sum.Drift.Count++
			if e.Drift.Depth > sum.Drift.MaxDepth {
				sum.Drift.MaxDepth = e.Drift.Depth
			}

		case KindRecovery:
			sum.Drift.Recoveries++
			recoveryTotal += e.Recovery.DurationMS
		}
	}

	if sum.Reactions.Count > 0 {
		sum.Reactions.MeanMS = reactionTotal / sum.Reactions.Count
	}
	if sum.Shots.Count > 0 {
		sum.Shots.Accuracy = float64(sum.Shots.Hits) / float64(sum.Shots.Count)
	}
	if sum.Drift.Recoveries > 0 {
		sum.Drift.MeanRecoveryMS = recoveryTotal / sum.Drift.Recoveries
	}
	if minutes > 0 {
		sum.Shots.PerMinute = float64(sum.Shots.Count) / minutes
		sum.Movement.PerMinute = float64(sum.Movement.Count) / minutes
		sum.Modes.PerMinute = float64(sum.Modes.Count) / minutes
	}

	sum.Profile = CognitiveProfile{
		ReactionMeanMS: float64(sum.Reactions.MeanMS),
		ReactionBestMS: float64(sum.Reactions.BestMS),
		ShotAccuracy:   sum.Shots.Accuracy,
		ShotsPerMin:    sum.Shots.PerMinute,
		MovesPerMin:    sum.Movement.PerMinute,
		DriftCount:     float64(sum.Drift.Count),
		RecoveryMeanMS: float64(sum.Drift.MeanRecoveryMS),
		ModeSwitchRate: sum.Modes.PerMinute,
	}

	return sum
}

// Actor names used in event payloads.
const (
	ActorPlayer = "player"
	ActorAI     = "ai"
)
