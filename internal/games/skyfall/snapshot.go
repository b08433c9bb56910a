package skyfall

import (
	"math"

	"github.com/neuroplay/arena/internal/core"
)

// ViewSnapshot is the read-only per-tick state handed to the render layer:
// positioned, colored primitives and nothing else. No render state feeds
// back into the simulation.
type ViewSnapshot struct {
	Tick    int
	CameraY float64
	Score   int
	State   string

	Entities    []EntityView
	Platforms   []PlatformView
	Projectiles []ProjectileView
	Particles   []ParticleView
	Pickups     []PickupView
}

// EntityView is a combatant as the renderer sees it.
type EntityView struct {
	X, Y        float64
	Side        Side
	FacingRight bool
	Alive       bool
	Health      int
	MaxHealth   int
	Buff        PickupKind
	RespawnIn   int // ticks until the AI returns, 0 when alive
}

// PlatformView is a platform rect with its damage tier.
type PlatformView struct {
	X, Y, W, H float64
	Tier       int
	Owner      Side
	Floor      bool
}

// ProjectileView is a shot in flight.
type ProjectileView struct {
	X, Y float64
	Kind ProjectileKind
	Side Side
}

// ParticleView is a cosmetic fragment with its life-derived alpha.
type ParticleView struct {
	X, Y  float64
	Alpha float64
	Color core.Color
}

// PickupView is a coin and its collected flag.
type PickupView struct {
	X, Y      float64
	Kind      PickupKind
	Collected bool
}

// View builds the current render snapshot.
func (g *Game) View() ViewSnapshot {
	v := ViewSnapshot{
		Tick:    g.clock.Tick(),
		CameraY: g.cameraY,
		Score:   g.score,
		State:   g.state,
	}

	for i := range g.store.Entities {
		e := &g.store.Entities[i]
		ev := EntityView{
			X:           e.X,
			Y:           e.Y,
			Side:        e.Side,
			FacingRight: e.FacingRight,
			Alive:       e.Alive,
			Health:      e.Health,
			MaxHealth:   e.MaxHealth,
			Buff:        e.Buff,
		}
		if !e.Alive && e.Side == SideRight {
			ev.RespawnIn = core.Max(g.cfg.Combat.RespawnTicks-e.RespawnTimer, 0)
		}
		v.Entities = append(v.Entities, ev)
	}

	for i := range g.store.Platforms {
		p := &g.store.Platforms[i]
		if p.dead {
			continue
		}
		v.Platforms = append(v.Platforms, PlatformView{
			X: p.X, Y: p.Y, W: p.W, H: p.H,
			Tier:  p.DamageTier(),
			Owner: p.Owner,
			Floor: p.MaxHits >= floorMaxHits,
		})
	}

	for i := range g.store.Projectiles {
		pr := &g.store.Projectiles[i]
		if pr.dead {
			continue
		}
		v.Projectiles = append(v.Projectiles, ProjectileView{
			X: pr.X, Y: pr.Y, Kind: pr.Kind, Side: pr.Side,
		})
	}

	for i := range g.store.Particles {
		p := &g.store.Particles[i]
		v.Particles = append(v.Particles, ParticleView{
			X: p.X, Y: p.Y, Alpha: p.Alpha(), Color: p.Color,
		})
	}

	for i := range g.store.Pickups {
		p := &g.store.Pickups[i]
		v.Pickups = append(v.Pickups, PickupView{
			X: p.X, Y: p.Y, Kind: p.Kind, Collected: p.Collected,
		})
	}

	return v
}

// Hash folds the snapshot into a single value for determinism testing.
func (v ViewSnapshot) Hash() uint64 {
	h := uint64(v.Tick) //#nosec G115 -- hash computation
	h = mix(h, math.Float64bits(v.CameraY))
	h = mix(h, uint64(v.Score)) //#nosec G115 -- hash computation

	for _, e := range v.Entities {
		h = mix(h, math.Float64bits(e.X))
		h = mix(h, math.Float64bits(e.Y))
		h = mix(h, uint64(e.Health)) //#nosec G115 -- hash computation
		h = mix(h, boolBit(e.Alive))
	}
	for _, p := range v.Platforms {
		h = mix(h, math.Float64bits(p.X))
		h = mix(h, math.Float64bits(p.Y))
		h = mix(h, uint64(p.Tier)) //#nosec G115 -- hash computation
	}
	for _, pr := range v.Projectiles {
		h = mix(h, math.Float64bits(pr.X))
		h = mix(h, math.Float64bits(pr.Y))
		h = mix(h, uint64(pr.Kind)) //#nosec G115 -- hash computation
	}
	for _, p := range v.Pickups {
		h = mix(h, math.Float64bits(p.X))
		h = mix(h, boolBit(p.Collected))
	}

	return h
}

func mix(h, v uint64) uint64 {
	return h*31 + v
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
