package skyfall

import (
	"testing"

	"github.com/neuroplay/arena/internal/config"
	"github.com/neuroplay/arena/internal/core"
)

// aiFixture builds a store with both combatants and a few generated rows.
func aiFixture(seed int64) (*Controller, *Store, config.SkyfallConfig) {
	cfg := config.DefaultSkyfallConfig()
	rng := core.NewRand(seed)
	store := NewStore()

	size := cfg.Physics.EntitySize
	store.SpawnEntity(Entity{Side: SideLeft, X: 100, Y: 300 - size, Health: 100, MaxHealth: 100, Alive: true, Grounded: true})
	store.SpawnEntity(Entity{Side: SideRight, X: 600, Y: 300 - size, Health: 100, MaxHealth: 100, Alive: true, Grounded: true})

	gen := NewGenerator(cfg, rng, 0)
	gen.EnsureAhead(store, cfg.World.ViewHeight)

	return NewController(cfg.AI, rng), store, cfg
}

func TestDeadAIHasNoIntent(t *testing.T) {
	ctrl, store, cfg := aiFixture(1)
	store.Opponent().Alive = false

	for i := 0; i < 50; i++ {
		frame, rerolled := ctrl.Intent(store, cfg.World, cfg.Physics.EntitySize, 0, cfg.World.ViewHeight)
		if rerolled {
			t.Error("dead AI re-rolled strategy")
		}
		for a, set := range frame.Actions {
			if set {
				t.Fatalf("dead AI produced action %v", a)
			}
		}
	}
}

func TestAIStaysActive(t *testing.T) {
	ctrl, store, cfg := aiFixture(2)

	acted := 0
	for i := 0; i < 300; i++ {
		frame, _ := ctrl.Intent(store, cfg.World, cfg.Physics.EntitySize, 0, cfg.World.ViewHeight)
		if frame.Has(core.ActionLeft) || frame.Has(core.ActionRight) ||
			frame.Has(core.ActionJump) || frame.Has(core.ActionShoot) {
			acted++
		}
	}

	if acted == 0 {
		t.Error("AI produced no actions over 300 ticks")
	}
}

func TestAIStrategyRerollInterval(t *testing.T) {
	ctrl, store, cfg := aiFixture(3)

	rerolls := 0
	ticks := cfg.AI.StrategyInterval*3 + 1
	for i := 0; i < ticks; i++ {
		if _, rerolled := ctrl.Intent(store, cfg.World, cfg.Physics.EntitySize, 0, cfg.World.ViewHeight); rerolled {
			rerolls++
		}
	}

	if rerolls != 3 {
		t.Errorf("rerolls = %d over %d ticks, want 3", rerolls, ticks)
	}
}

func TestAISurvivesTargetLoss(t *testing.T) {
	ctrl, store, cfg := aiFixture(4)

	// Remove every destructible platform: the AI must degrade to idle
	// drift, not stall or crash.
	for i := range store.Platforms {
		store.Platforms[i].dead = true
	}
	store.Flush()

	for i := 0; i < 200; i++ {
		ctrl.Intent(store, cfg.World, cfg.Physics.EntitySize, 0, cfg.World.ViewHeight)
	}
}

func TestAITargetsOpposingSide(t *testing.T) {
	ctrl, store, cfg := aiFixture(5)

	// Run a scan and verify the cached target, if any, sits on the
	// player's half. The AI destroys the opponent's terrain, not its own.
	for i := 0; i < 10; i++ {
		ctrl.Intent(store, cfg.World, cfg.Physics.EntitySize, 0, cfg.World.ViewHeight)
	}

	if ctrl.hasTarget && ctrl.targetX > cfg.World.Width/2 {
		t.Errorf("AI target at x=%f is on its own half", ctrl.targetX)
	}
}

func TestAIDeterminism(t *testing.T) {
	run := func() []uint64 {
		ctrl, store, cfg := aiFixture(42)
		var trace []uint64
		for i := 0; i < 100; i++ {
			frame, _ := ctrl.Intent(store, cfg.World, cfg.Physics.EntitySize, 0, cfg.World.ViewHeight)
			var bits uint64
			for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionJump, core.ActionShoot} {
				bits <<= 1
				if frame.Has(a) {
					bits |= 1
				}
			}
			trace = append(trace, bits)
		}
		return trace
	}

	a := run()
	b := run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("AI intents diverge at tick %d", i)
		}
	}
}
