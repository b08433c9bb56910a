package skyfall

import (
	"testing"

	"github.com/neuroplay/arena/internal/config"
	"github.com/neuroplay/arena/internal/core"
)

func TestEnsureAheadCoversMargin(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()
	rng := core.NewRand(42)
	store := NewStore()
	gen := NewGenerator(cfg, rng, 0)

	leadingEdge := cfg.World.ViewHeight
	gen.EnsureAhead(store, leadingEdge)

	if got := gen.GeneratedThrough(); got < leadingEdge+cfg.World.AheadMargin-cfg.Platforms.RowSpacing {
		t.Errorf("generated through %f, margin not covered", got)
	}
	if len(store.Platforms) == 0 {
		t.Fatal("no platforms generated")
	}

	// Advancing the edge generates more rows, never fewer.
	before := len(store.Platforms)
	gen.EnsureAhead(store, leadingEdge+3*cfg.Platforms.RowSpacing)
	if len(store.Platforms) <= before {
		t.Error("advancing the leading edge did not extend the level")
	}
}

func TestRowsHaveSegmentsOnBothSides(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()
	rng := core.NewRand(7)
	store := NewStore()
	gen := NewGenerator(cfg, rng, 0)

	gen.EnsureAhead(store, cfg.World.ViewHeight*3)

	left := map[int]int{}
	right := map[int]int{}
	for i := range store.Platforms {
		p := &store.Platforms[i]
		switch p.Owner {
		case SideLeft:
			left[p.Row]++
		case SideRight:
			right[p.Row]++
		}
	}

	for row := range left {
		if right[row] == 0 {
			t.Errorf("row %d has no right-side segments", row)
		}
	}
	for row := range right {
		if left[row] == 0 {
			t.Errorf("row %d has no left-side segments", row)
		}
	}
}

func TestSegmentsStayInsideTheirHalf(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()
	rng := core.NewRand(21)
	store := NewStore()
	gen := NewGenerator(cfg, rng, 0)

	gen.EnsureAhead(store, cfg.World.ViewHeight*4)

	halfW := cfg.World.Width / 2
	for i := range store.Platforms {
		p := &store.Platforms[i]
		switch p.Owner {
		case SideLeft:
			if p.X < 0 || p.X+p.W > halfW {
				t.Errorf("left segment at x=%f w=%f crosses its half", p.X, p.W)
			}
		case SideRight:
			if p.X < halfW || p.X+p.W > cfg.World.Width {
				t.Errorf("right segment at x=%f w=%f crosses its half", p.X, p.W)
			}
		}
	}
}

func TestSegmentsRespectSpacing(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()
	rng := core.NewRand(33)
	store := NewStore()
	gen := NewGenerator(cfg, rng, 0)

	gen.EnsureAhead(store, cfg.World.ViewHeight*4)

	// Group by row and side, then check pairwise distances.
	type key struct {
		row  int
		side Side
	}
	groups := map[key][]float64{}
	for i := range store.Platforms {
		p := &store.Platforms[i]
		groups[key{p.Row, p.Owner}] = append(groups[key{p.Row, p.Owner}], p.X)
	}

	min := cfg.Platforms.SegmentWidth + cfg.Platforms.PlacementMargin
	for k, xs := range groups {
		for i := 0; i < len(xs); i++ {
			for j := i + 1; j < len(xs); j++ {
				if core.AbsF(xs[i]-xs[j]) < min {
					t.Errorf("row %d side %v: segments at %f and %f closer than %f",
						k.row, k.side, xs[i], xs[j], min)
				}
			}
		}
	}
}

func TestPruneDropsTrailingRows(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()
	rng := core.NewRand(5)
	store := NewStore()
	gen := NewGenerator(cfg, rng, 0)

	gen.EnsureAhead(store, cfg.World.ViewHeight*4)
	total := len(store.Platforms)

	cameraTop := cfg.World.ViewHeight * 2
	gen.Prune(store, cameraTop)
	store.Flush()

	if len(store.Platforms) >= total {
		t.Error("prune removed nothing")
	}

	cutoff := cameraTop - cfg.World.TrailMargin
	for i := range store.Platforms {
		p := &store.Platforms[i]
		if p.Y+p.H < cutoff {
			t.Errorf("platform at y=%f survived prune past cutoff %f", p.Y, cutoff)
		}
	}
}

func TestPruneDropsOrphanedPickups(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()
	cfg.Pickups.Chance = 1 // force a pickup on every segment
	rng := core.NewRand(5)
	store := NewStore()
	gen := NewGenerator(cfg, rng, 0)

	gen.EnsureAhead(store, cfg.World.ViewHeight*2)
	if len(store.Pickups) == 0 {
		t.Fatal("expected pickups with chance 1")
	}

	// Prune everything.
	gen.Prune(store, cfg.World.ViewHeight*10)
	store.Flush()

	if len(store.Pickups) != 0 {
		t.Errorf("%d pickups orphaned after their platforms pruned", len(store.Pickups))
	}
}

func TestGeneratorDeterminism(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()

	build := func(seed int64) []Platform {
		store := NewStore()
		gen := NewGenerator(cfg, core.NewRand(seed), 0)
		gen.EnsureAhead(store, cfg.World.ViewHeight*3)
		return store.Platforms
	}

	a := build(99)
	b := build(99)

	if len(a) != len(b) {
		t.Fatalf("platform counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].X != b[i].X || a[i].Y != b[i].Y || a[i].Owner != b[i].Owner {
			t.Fatalf("platform %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestFloorIsIndestructible(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()
	store := NewStore()
	spawnFloor(store, cfg.World, cfg.Platforms.SegmentHeight, 400)

	floor := &store.Platforms[0]
	if floor.MaxHits < 1<<20 {
		t.Errorf("floor max hits = %d, effectively destructible", floor.MaxHits)
	}
	if floor.Owner != SideNeutral {
		t.Error("floor should be neutral")
	}
	if floor.W != cfg.World.Width {
		t.Error("floor should span the arena")
	}
}
