package telemetry

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"
)

// buildSession assembles a fixed event log covering every event kind.
func buildSession() Session {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return Session{
		ID:        "test-session",
		GameID:    "skyfall",
		StartedAt: start,
		EndedAt:   start.Add(2 * time.Minute),
		Events: []Event{
			{Kind: KindReaction, Tick: 10, Reaction: &ReactionPayload{LatencyMS: 300, Threat: "incoming_fire"}},
			{Kind: KindReaction, Tick: 200, Reaction: &ReactionPayload{LatencyMS: 500, Threat: "incoming_fire"}},
			{Kind: KindShot, Tick: 250, Shot: &ShotPayload{Shooter: ActorPlayer, Variant: "straight", Hit: true}},
			{Kind: KindShot, Tick: 300, Shot: &ShotPayload{Shooter: ActorPlayer, Variant: "straight"}},
			{Kind: KindShot, Tick: 320, Shot: &ShotPayload{Shooter: ActorAI, Variant: "lobbed", Hit: true}},
			{Kind: KindMovement, Tick: 330, Movement: &MovementPayload{Move: "left"}},
			{Kind: KindMovement, Tick: 340, Movement: &MovementPayload{Move: "right", DirectionChange: true}},
			{Kind: KindMovement, Tick: 350, Movement: &MovementPayload{Move: "jump"}},
			{Kind: KindModeSwitch, Tick: 400, ModeSwitch: &ModeSwitchPayload{Actor: ActorPlayer, Mode: "empower"}},
			{Kind: KindModeSwitch, Tick: 420, ModeSwitch: &ModeSwitchPayload{Actor: ActorAI, Mode: "defensive"}},
			{Kind: KindDrift, Tick: 500, Drift: &DriftPayload{Depth: 12.5}},
			{Kind: KindRecovery, Tick: 560, Recovery: &RecoveryPayload{DurationMS: 1000}},
			{Kind: KindDrift, Tick: 700, Drift: &DriftPayload{Depth: 30}},
			{Kind: KindRecovery, Tick: 790, Recovery: &RecoveryPayload{DurationMS: 1500}},
		},
	}
}

func TestAggregateStats(t *testing.T) {
	sum := Aggregate(buildSession(), 420, false)

	if sum.Score != 420 {
		t.Errorf("score = %d, want 420", sum.Score)
	}
	if sum.DurationMS != 120000 {
		t.Errorf("duration = %dms, want 120000", sum.DurationMS)
	}

	if sum.Reactions.Count != 2 || sum.Reactions.MeanMS != 400 {
		t.Errorf("reactions = %+v, want count 2 mean 400", sum.Reactions)
	}
	if sum.Reactions.BestMS != 300 || sum.Reactions.WorstMS != 500 {
		t.Errorf("reaction best/worst = %d/%d, want 300/500", sum.Reactions.BestMS, sum.Reactions.WorstMS)
	}

	if sum.Shots.Count != 2 || sum.Shots.Hits != 1 {
		t.Errorf("shots = %+v, want count 2 hits 1", sum.Shots)
	}
	if sum.Shots.Accuracy != 0.5 {
		t.Errorf("accuracy = %f, want 0.5", sum.Shots.Accuracy)
	}
	if sum.Shots.PerMinute != 1.0 {
		t.Errorf("shots per minute = %f, want 1.0", sum.Shots.PerMinute)
	}

	if sum.Movement.Count != 3 || sum.Movement.DirectionChanges != 1 || sum.Movement.Jumps != 1 {
		t.Errorf("movement = %+v", sum.Movement)
	}

	if sum.Modes.Count != 1 {
		t.Errorf("modes count = %d, want 1 (AI switches excluded)", sum.Modes.Count)
	}

	if sum.Drift.Count != 2 || sum.Drift.Recoveries != 2 {
		t.Errorf("drift = %+v", sum.Drift)
	}
	if sum.Drift.MeanRecoveryMS != 1250 {
		t.Errorf("mean recovery = %d, want 1250", sum.Drift.MeanRecoveryMS)
	}
	if sum.Drift.MaxDepth != 30 {
		t.Errorf("max depth = %f, want 30", sum.Drift.MaxDepth)
	}
}

func TestAggregateExcludesAIShots(t *testing.T) {
	sum := Aggregate(buildSession(), 0, false)

	// The AI's hit must not inflate the player's accuracy.
	if sum.Shots.Count != 2 {
		t.Errorf("AI shots leaked into player count: %d", sum.Shots.Count)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	s := buildSession()

	a, err := json.Marshal(Aggregate(s, 100, false))
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(Aggregate(s, 100, false))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(a, b) {
		t.Error("aggregating the same log twice produced different summaries")
	}
}

func TestAggregateEmptySession(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := Session{
		ID:        "empty",
		GameID:    "skyfall",
		StartedAt: start,
		EndedAt:   start,
	}

	sum := Aggregate(s, 0, true)

	if !sum.Partial {
		t.Error("partial flag dropped")
	}
	if sum.Shots.Accuracy != 0 || sum.Reactions.MeanMS != 0 {
		t.Error("empty session should produce zeroed stats, not NaN or panic")
	}
	if sum.DurationMS != 0 {
		t.Errorf("duration = %d, want 0", sum.DurationMS)
	}
}

func TestAggregateProfileMatchesStats(t *testing.T) {
	sum := Aggregate(buildSession(), 0, false)

	v := sum.Profile.Vector()
	if len(v) != 8 {
		t.Fatalf("profile vector has %d entries, want 8", len(v))
	}
	if v[0] != float64(sum.Reactions.MeanMS) {
		t.Errorf("vector[0] = %f, want %d", v[0], sum.Reactions.MeanMS)
	}
	if v[2] != sum.Shots.Accuracy {
		t.Errorf("vector[2] = %f, want %f", v[2], sum.Shots.Accuracy)
	}
	if v[5] != float64(sum.Drift.Count) {
		t.Errorf("vector[5] = %f, want %d", v[5], sum.Drift.Count)
	}
}
