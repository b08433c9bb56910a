package skyfall

import (
	"github.com/neuroplay/arena/internal/config"
	"github.com/neuroplay/arena/internal/core"
)

// impact is a resolved projectile-vs-entity collision, reported up to the
// loop so it can fire telemetry hooks and death sequences.
type impact struct {
	Shooter EntityID
	Side    Side
	Target  EntityID
	X, Y    float64
}

// shatter is a platform destroyed this tick.
type shatter struct {
	Owner Side
	X, Y  float64
	W     float64
}

// applyKinematics advances one living combatant: gravity, integration,
// horizontal damping, arena walls, then the top-of-camera clamp so nobody
// rides above the visible scroll window.
func applyKinematics(e *Entity, phy config.PhysicsConfig, world config.WorldConfig, cameraTop float64) {
	e.VY += phy.Gravity
	if e.VY > phy.MaxFallSpeed {
		e.VY = phy.MaxFallSpeed
	}

	e.X += e.VX
	e.Y += e.VY
	e.VX *= phy.Friction

	e.X = core.ClampF(e.X, 0, world.Width-phy.EntitySize)

	if e.Y < cameraTop {
		e.Y = cameraTop
		if e.VY < 0 {
			e.VY = 0
		}
	}
}

// resolveLanding snaps a falling combatant onto the first visible platform
// it overlaps and reports whether this is a new landing (lastPlatform
// changed). Platform count in the visibility band is small and bounded, so
// a linear scan beats any spatial index here.
func resolveLanding(store *Store, e *Entity, size float64, cameraTop, cameraBottom float64) (landed *Platform, first bool) {
	if e.VY < 0 {
		e.Grounded = false
		return nil, false
	}

	bounds := e.Bounds(size)
	for i := range store.Platforms {
		p := &store.Platforms[i]
		if p.dead || !platformVisible(p, cameraTop, cameraBottom) {
			continue
		}
		if !bounds.Overlaps(p.Bounds()) {
			continue
		}
		// Loose arcade rule: only land when the feet are in the upper
		// half of the platform, otherwise pass through.
		if bounds.Bottom()-p.Y > p.H/2+e.VY {
			continue
		}

		e.Y = p.Y - size
		e.VY = 0
		e.Grounded = true

		first = e.LastPlatform != p.ID
		e.LastPlatform = p.ID
		return p, first
	}

	e.Grounded = false
	return nil, false
}

// platformVisible is the cheap visibility band test used by collision and
// AI scans.
func platformVisible(p *Platform, cameraTop, cameraBottom float64) bool {
	return p.Y+p.H >= cameraTop && p.Y <= cameraBottom
}

// chipPlatform applies hits to a platform and removes it at the threshold,
// spawning explosion particles keyed by the owning side's color. Hits are
// monotone; a removed platform is never mutated again.
func chipPlatform(store *Store, p *Platform, amount int, rng *core.Rand) (broken bool, s shatter) {
	p.Hits += amount
	if p.Hits < p.MaxHits {
		return false, shatter{}
	}

	store.RemovePlatform(p.ID)
	spawnExplosion(store, rng, p.X+p.W/2, p.Y, p.Owner.Color())
	return true, shatter{Owner: p.Owner, X: p.X, Y: p.Y, W: p.W}
}

// stepProjectiles integrates every live shot and resolves at most one
// collision outcome per projectile: platforms are checked before entities,
// first match wins.
func stepProjectiles(store *Store, cfg config.SkyfallConfig, rng *core.Rand, cameraTop, cameraBottom float64) (impacts []impact, broken []shatter) {
	size := cfg.Physics.EntitySize

	for i := range store.Projectiles {
		pr := &store.Projectiles[i]
		if pr.dead {
			continue
		}

		if pr.Kind == ProjectileLobbed {
			pr.VY += cfg.Combat.LobGravity
		}
		pr.X += pr.VX
		pr.Y += pr.VY

		if pr.Y < cameraTop || pr.Y > cameraBottom || pr.X < 0 || pr.X > cfg.World.Width {
			pr.dead = true
			continue
		}

		if pr.Kind != ProjectilePhase {
			if hit := projectileVsPlatforms(store, pr, rng, cameraTop, cameraBottom, &broken); hit {
				continue
			}
		}

		// Wrecker shots only damage terrain.
		if pr.Kind == ProjectileWrecker {
			continue
		}

		for j := range store.Entities {
			e := &store.Entities[j]
			if !e.Alive || e.ID == pr.Owner {
				continue
			}
			if !e.Bounds(size).Overlaps(core.NewBox(pr.X-2, pr.Y-2, 4, 4)) {
				continue
			}

			e.Health = core.Clamp(e.Health-cfg.Combat.ProjectileDamage, 0, e.MaxHealth)
			spawnImpactBurst(store, rng, pr.X, pr.Y, pr.Side.Color())
			impacts = append(impacts, impact{
				Shooter: pr.Owner,
				Side:    pr.Side,
				Target:  e.ID,
				X:       pr.X,
				Y:       pr.Y,
			})
			pr.dead = true
			break
		}
	}

	return impacts, broken
}

// projectileVsPlatforms resolves a shot against visible platforms. A shot
// damages a platform only when the sides oppose; same-side and neutral
// terrain absorbs it as a dud impact. Returns true if the projectile was
// consumed.
func projectileVsPlatforms(store *Store, pr *Projectile, rng *core.Rand, cameraTop, cameraBottom float64, broken *[]shatter) bool {
	for i := range store.Platforms {
		p := &store.Platforms[i]
		if p.dead || !platformVisible(p, cameraTop, cameraBottom) {
			continue
		}
		if !p.Bounds().Overlaps(core.NewBox(pr.X-2, pr.Y-2, 4, 4)) {
			continue
		}

		if pr.Side.Opposes(p.Owner) {
			amount := 1
			if pr.Kind == ProjectileWrecker {
				amount = p.MaxHits - p.Hits
			}
			if didBreak, s := chipPlatform(store, p, amount, rng); didBreak {
				*broken = append(*broken, s)
			}
		} else {
			spawnImpactBurst(store, rng, pr.X, pr.Y, core.ColorGray)
		}

		pr.dead = true
		return true
	}
	return false
}

// decayParticles ages cosmetic fragments and drops the expired ones.
func decayParticles(store *Store) {
	alive := store.Particles[:0]
	for i := range store.Particles {
		p := store.Particles[i]
		p.X += p.VX
		p.Y += p.VY
		p.VY += 0.15
		p.Life--
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	store.Particles = alive
}

// spawnExplosion scatters debris when a platform shatters.
func spawnExplosion(store *Store, rng *core.Rand, x, y float64, c core.Color) {
	for i := 0; i < 12; i++ {
		store.SpawnParticle(Particle{
			X:     x,
			Y:     y,
			VX:    rng.Range(-3, 3),
			VY:    rng.Range(-4, 1),
			Life:  20 + rng.Intn(15),
			Max:   35,
			Color: c,
		})
	}
}

// spawnImpactBurst marks a projectile impact point.
func spawnImpactBurst(store *Store, rng *core.Rand, x, y float64, c core.Color) {
	for i := 0; i < 5; i++ {
		store.SpawnParticle(Particle{
			X:     x,
			Y:     y,
			VX:    rng.Range(-1.5, 1.5),
			VY:    rng.Range(-1.5, 1.5),
			Life:  10 + rng.Intn(8),
			Max:   18,
			Color: c,
		})
	}
}
