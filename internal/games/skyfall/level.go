package skyfall

import (
	"github.com/neuroplay/arena/internal/config"
	"github.com/neuroplay/arena/internal/core"
)

// floorMaxHits makes the spawn floor effectively indestructible.
const floorMaxHits = 1 << 30

// Generator procedurally appends platform rows ahead of the scroll front
// and prunes rows that fall behind the trailing window. Stateless across
// calls except for the next row cursor.
type Generator struct {
	world     config.WorldConfig
	platforms config.PlatformConfig
	pickups   config.PickupConfig
	rng       *core.Rand

	nextRowY float64
	nextRow  int
}

// NewGenerator creates a generator whose first row lands at startY.
func NewGenerator(cfg config.SkyfallConfig, rng *core.Rand, startY float64) *Generator {
	return &Generator{
		world:     cfg.World,
		platforms: cfg.Platforms,
		pickups:   cfg.Pickups,
		rng:       rng,
		nextRowY:  startY,
	}
}

// EnsureAhead appends rows until platforms exist at least AheadMargin below
// the camera's leading edge. Pull-based: called every tick, generates only
// when the margin shrinks.
func (g *Generator) EnsureAhead(store *Store, leadingEdge float64) {
	for g.nextRowY < leadingEdge+g.world.AheadMargin {
		g.appendRow(store, g.nextRowY)
		g.nextRowY += g.platforms.RowSpacing
		g.nextRow++
	}
}

// GeneratedThrough returns the y of the deepest generated row.
func (g *Generator) GeneratedThrough() float64 {
	return g.nextRowY - g.platforms.RowSpacing
}

// appendRow places 1..SegmentsPerSide segments per side at the given depth
// using rejection sampling. Sampling exhaustion is not an error: the row
// simply gets fewer segments and the arena stays playable with sparse rows.
func (g *Generator) appendRow(store *Store, y float64) {
	halfW := g.world.Width / 2
	g.appendSide(store, y, SideLeft, 0, halfW)
	g.appendSide(store, y, SideRight, halfW, g.world.Width)
}

func (g *Generator) appendSide(store *Store, y float64, side Side, lo, hi float64) {
	want := 1 + g.rng.Intn(g.platforms.SegmentsPerSide)
	segW := g.platforms.SegmentWidth
	minLo := lo + g.platforms.PlacementMargin
	maxHi := hi - segW - g.platforms.PlacementMargin
	if maxHi <= minLo {
		return
	}

	accepted := make([]float64, 0, want)
	for seg := 0; seg < want; seg++ {
		placed := false
		for attempt := 0; attempt < g.platforms.PlaceAttempts; attempt++ {
			x := g.rng.Range(minLo, maxHi)
			if tooClose(x, accepted, segW+g.platforms.PlacementMargin) {
				continue
			}
			accepted = append(accepted, x)
			placed = true
			break
		}
		if !placed {
			continue // budget exhausted, drop this segment
		}

		x := accepted[len(accepted)-1]
		id := store.SpawnPlatform(Platform{
			X:       x,
			Y:       y,
			W:       segW,
			H:       g.platforms.SegmentHeight,
			MaxHits: g.platforms.MaxHits,
			Owner:   side,
			Row:     g.nextRow,
		})

		if g.rng.Chance(g.pickups.Chance) {
			kind := rollPickupKind(g.rng, g.pickups)
			store.SpawnPickup(Pickup{
				X:        x + segW/2,
				Y:        y - 14,
				Platform: id,
				Kind:     kind,
			})
		}
	}
}

// tooClose reports whether x is within margin of any previously accepted
// segment on the same side and row.
func tooClose(x float64, accepted []float64, margin float64) bool {
	for _, a := range accepted {
		if core.AbsF(x-a) < margin {
			return true
		}
	}
	return false
}

// Prune removes rows that scrolled more than TrailMargin above the camera
// top. Their pickups go with them via the store flush.
func (g *Generator) Prune(store *Store, cameraTop float64) {
	cutoff := cameraTop - g.world.TrailMargin
	for i := range store.Platforms {
		p := &store.Platforms[i]
		if !p.dead && p.Y+p.H < cutoff {
			p.dead = true
		}
	}
}

// spawnFloor creates the neutral, effectively indestructible starting
// platform spanning the arena at the given depth.
func spawnFloor(store *Store, world config.WorldConfig, height, y float64) {
	store.SpawnPlatform(Platform{
		X:       0,
		Y:       y,
		W:       world.Width,
		H:       height,
		MaxHits: floorMaxHits,
		Owner:   SideNeutral,
		Row:     -1,
	})
}
