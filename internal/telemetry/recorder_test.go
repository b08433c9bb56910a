package telemetry

import (
	"testing"
	"time"

	"github.com/neuroplay/arena/internal/core"
)

func testClock(tickRate int) *core.SimulationClock {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return core.NewSimulationClock(start, tickRate)
}

func TestRecorderStampsFromClock(t *testing.T) {
	clock := testClock(60)
	r := NewRecorder("skyfall", clock)

	for range 30 {
		clock.Advance()
	}
	r.Movement("left", false)

	s := r.Finish()
	if len(s.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(s.Events))
	}

	e := s.Events[0]
	if e.Tick != 30 {
		t.Errorf("event tick = %d, want 30", e.Tick)
	}

	want := clock.Start().Add(500 * time.Millisecond)
	if !e.At.Equal(want) {
		t.Errorf("event time = %v, want %v", e.At, want)
	}
}

func TestRecorderSessionIdentity(t *testing.T) {
	clock := testClock(60)
	r1 := NewRecorder("skyfall", clock)
	r2 := NewRecorder("skyfall", clock)

	s1 := r1.Finish()
	s2 := r2.Finish()

	if s1.ID == "" || s2.ID == "" {
		t.Fatal("session IDs should not be empty")
	}
	if s1.ID == s2.ID {
		t.Error("two recorders should have distinct session IDs")
	}
	if s1.GameID != "skyfall" {
		t.Errorf("game ID = %q, want skyfall", s1.GameID)
	}
}

func TestMarkShotHitWithinWindow(t *testing.T) {
	clock := testClock(60)
	r := NewRecorder("skyfall", clock)

	r.Shot(ActorPlayer, "straight", 10, 20)

	// 1.5 seconds later: within the lookback window.
	for range 90 {
		clock.Advance()
	}

	if !r.MarkShotHit(ActorPlayer) {
		t.Fatal("expected shot within window to be marked")
	}

	s := r.Finish()
	if !s.Events[0].Shot.Hit {
		t.Error("shot payload not annotated as hit")
	}
}

func TestMarkShotHitBeyondWindow(t *testing.T) {
	clock := testClock(60)
	r := NewRecorder("skyfall", clock)

	r.Shot(ActorPlayer, "straight", 10, 20)

	// 2.5 seconds later: past the lookback window.
	for range 150 {
		clock.Advance()
	}

	if r.MarkShotHit(ActorPlayer) {
		t.Error("shot beyond window should not be marked")
	}
}

func TestMarkShotHitPicksMostRecentUnmarked(t *testing.T) {
	clock := testClock(60)
	r := NewRecorder("skyfall", clock)

	r.Shot(ActorPlayer, "straight", 1, 1)
	clock.Advance()
	r.Shot(ActorPlayer, "straight", 2, 2)
	clock.Advance()

	if !r.MarkShotHit(ActorPlayer) {
		t.Fatal("first mark failed")
	}
	if !r.MarkShotHit(ActorPlayer) {
		t.Fatal("second mark failed")
	}
	if r.MarkShotHit(ActorPlayer) {
		t.Error("third mark should find no unmarked shots")
	}

	s := r.Finish()
	for i, e := range s.Events {
		if !e.Shot.Hit {
			t.Errorf("event %d not marked", i)
		}
	}
}

func TestMarkShotHitIgnoresOtherShooter(t *testing.T) {
	clock := testClock(60)
	r := NewRecorder("skyfall", clock)

	r.Shot(ActorAI, "straight", 1, 1)

	if r.MarkShotHit(ActorPlayer) {
		t.Error("player mark should not annotate an AI shot")
	}
	if !r.MarkShotHit(ActorAI) {
		t.Error("AI shot should be markable by the AI actor")
	}
}

func TestFinishCopiesEvents(t *testing.T) {
	clock := testClock(60)
	r := NewRecorder("skyfall", clock)

	r.Drift(5)
	s := r.Finish()

	// Recording after the flush must not mutate the returned session.
	r.Drift(10)

	if len(s.Events) != 1 {
		t.Errorf("flushed session has %d events, want 1", len(s.Events))
	}
	if r.Len() != 2 {
		t.Errorf("recorder has %d events, want 2", r.Len())
	}
}

func TestFinishMidSession(t *testing.T) {
	clock := testClock(60)
	r := NewRecorder("skyfall", clock)

	for range 120 {
		clock.Advance()
	}

	s := r.Finish()
	if got := s.EndedAt.Sub(s.StartedAt); got != 2*time.Second {
		t.Errorf("session duration = %v, want 2s", got)
	}
}
