package skyfall

import (
	"testing"

	"github.com/neuroplay/arena/internal/config"
	"github.com/neuroplay/arena/internal/core"
)

func TestKinematicsGravityAndTerminalVelocity(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()
	e := Entity{Alive: true, X: 100, Y: 100}

	for range 100 {
		applyKinematics(&e, cfg.Physics, cfg.World, 0)
	}

	if e.VY != cfg.Physics.MaxFallSpeed {
		t.Errorf("fall speed = %f, want terminal %f", e.VY, cfg.Physics.MaxFallSpeed)
	}
}

func TestKinematicsWallClamp(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()

	e := Entity{Alive: true, X: 1, Y: 100, VX: -50}
	applyKinematics(&e, cfg.Physics, cfg.World, 0)
	if e.X != 0 {
		t.Errorf("left wall clamp failed: x=%f", e.X)
	}

	e = Entity{Alive: true, X: cfg.World.Width - 1, Y: 100, VX: 50}
	applyKinematics(&e, cfg.Physics, cfg.World, 0)
	if want := cfg.World.Width - cfg.Physics.EntitySize; e.X != want {
		t.Errorf("right wall clamp failed: x=%f, want %f", e.X, want)
	}
}

func TestKinematicsCameraTopClamp(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()
	e := Entity{Alive: true, X: 100, Y: 50, VY: -20}

	applyKinematics(&e, cfg.Physics, cfg.World, 100)

	if e.Y < 100 {
		t.Errorf("entity rode above the camera top: y=%f", e.Y)
	}
	if e.VY < 0 {
		t.Errorf("upward velocity survived the top clamp: vy=%f", e.VY)
	}
}

func TestResolveLandingSnapAndFirstFlag(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()
	size := cfg.Physics.EntitySize

	store := NewStore()
	store.SpawnPlatform(Platform{X: 0, Y: 100, W: 120, H: 12, MaxHits: 3, Owner: SideRight})

	e := Entity{Alive: true, X: 40, Y: 100 - size + 2, VY: 4}

	landed, first := resolveLanding(store, &e, size, 0, 600)
	if landed == nil || !first {
		t.Fatalf("expected first landing, got landed=%v first=%v", landed, first)
	}
	if e.Y != 100-size {
		t.Errorf("not snapped to platform top: y=%f", e.Y)
	}
	if e.VY != 0 || !e.Grounded {
		t.Error("landing should zero fall speed and ground the entity")
	}

	// Next tick: gravity pulls back into the platform, but the landing is
	// no longer "first" because the platform id is unchanged.
	e.VY = cfg.Physics.Gravity
	e.Y += e.VY
	landed, first = resolveLanding(store, &e, size, 0, 600)
	if landed == nil {
		t.Fatal("grounded entity lost its platform")
	}
	if first {
		t.Error("repeat contact flagged as a new landing")
	}
}

func TestResolveLandingIgnoresRisingEntity(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()
	size := cfg.Physics.EntitySize

	store := NewStore()
	store.SpawnPlatform(Platform{X: 0, Y: 100, W: 120, H: 12, MaxHits: 3, Owner: SideRight})

	e := Entity{Alive: true, X: 40, Y: 100 - size + 2, VY: -5}

	if landed, _ := resolveLanding(store, &e, size, 0, 600); landed != nil {
		t.Error("jumping entity should pass through from below")
	}
}

func TestChipPlatformBreaksAtThreshold(t *testing.T) {
	store := NewStore()
	id := store.SpawnPlatform(Platform{X: 0, Y: 100, W: 120, H: 12, MaxHits: 3, Owner: SideRight})
	rng := core.NewRand(1)

	p := store.Platform(id)
	if broken, _ := chipPlatform(store, p, 1, rng); broken {
		t.Fatal("broke after 1/3 hits")
	}
	if broken, _ := chipPlatform(store, p, 1, rng); broken {
		t.Fatal("broke after 2/3 hits")
	}

	broken, s := chipPlatform(store, p, 1, rng)
	if !broken {
		t.Fatal("did not break at max hits")
	}
	if s.Owner != SideRight {
		t.Errorf("shatter owner = %v", s.Owner)
	}

	store.Flush()
	if store.Platform(id) != nil {
		t.Error("broken platform still live after flush")
	}
}

func TestProjectileDamagesOpposingEntity(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()
	size := cfg.Physics.EntitySize
	rng := core.NewRand(1)

	store := NewStore()
	shooter := store.SpawnEntity(Entity{Side: SideLeft, X: 0, Y: 100, Health: 100, MaxHealth: 100, Alive: true})
	store.SpawnEntity(Entity{Side: SideRight, X: 200, Y: 100, Health: 100, MaxHealth: 100, Alive: true})

	store.SpawnProjectile(Projectile{
		X: 200 - cfg.Combat.ProjectileSpeed + size/2, Y: 100 + size/2,
		VX: cfg.Combat.ProjectileSpeed,
		Owner: shooter, Side: SideLeft, Kind: ProjectileStraight,
	})

	impacts, _ := stepProjectiles(store, cfg, rng, 0, 600)
	if len(impacts) != 1 {
		t.Fatalf("impacts = %d, want 1", len(impacts))
	}
	if impacts[0].Shooter != shooter {
		t.Error("impact attributed to wrong shooter")
	}

	target := store.Opponent()
	if want := 100 - cfg.Combat.ProjectileDamage; target.Health != want {
		t.Errorf("target health = %d, want %d", target.Health, want)
	}
}

func TestProjectileNeverHitsOwner(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()
	size := cfg.Physics.EntitySize
	rng := core.NewRand(1)

	store := NewStore()
	shooter := store.SpawnEntity(Entity{Side: SideLeft, X: 100, Y: 100, Health: 100, MaxHealth: 100, Alive: true})
	store.SpawnEntity(Entity{Side: SideRight, X: 600, Y: 100, Health: 100, MaxHealth: 100, Alive: true})

	// A projectile placed inside its owner's hitbox.
	store.SpawnProjectile(Projectile{
		X: 100 + size/2, Y: 100 + size/2,
		VX: 0.1,
		Owner: shooter, Side: SideLeft, Kind: ProjectileStraight,
	})

	impacts, _ := stepProjectiles(store, cfg, rng, 0, 600)
	if len(impacts) != 0 {
		t.Error("projectile hit its own shooter")
	}
	if store.Player().Health != 100 {
		t.Error("owner took self-damage")
	}
}

func TestWreckerDestroysPlatformOutright(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()
	rng := core.NewRand(1)

	store := NewStore()
	shooter := store.SpawnEntity(Entity{Side: SideLeft, X: 0, Y: 0, Health: 100, MaxHealth: 100, Alive: true})
	store.SpawnEntity(Entity{Side: SideRight, X: 600, Y: 0, Health: 100, MaxHealth: 100, Alive: true})

	id := store.SpawnPlatform(Platform{X: 200, Y: 100, W: 120, H: 12, MaxHits: 3, Owner: SideRight})

	store.SpawnProjectile(Projectile{
		X: 250, Y: 103, VX: 1,
		Owner: shooter, Side: SideLeft, Kind: ProjectileWrecker,
	})

	_, broken := stepProjectiles(store, cfg, rng, 0, 600)
	if len(broken) != 1 {
		t.Fatalf("broken = %d, want 1 (wrecker should one-shot)", len(broken))
	}

	store.Flush()
	if store.Platform(id) != nil {
		t.Error("platform survived a wrecker hit")
	}
}

func TestPhasingProjectilePassesPlatforms(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()
	size := cfg.Physics.EntitySize
	rng := core.NewRand(1)

	store := NewStore()
	shooter := store.SpawnEntity(Entity{Side: SideLeft, X: 0, Y: 80, Health: 100, MaxHealth: 100, Alive: true})
	store.SpawnEntity(Entity{Side: SideRight, X: 400, Y: 80, Health: 100, MaxHealth: 100, Alive: true})

	// Platform directly in the flight path.
	store.SpawnPlatform(Platform{X: 200, Y: 80, W: 120, H: 60, MaxHits: 3, Owner: SideRight})

	store.SpawnProjectile(Projectile{
		X: 250, Y: 80 + size/2, VX: 1,
		Owner: shooter, Side: SideLeft, Kind: ProjectilePhase,
	})

	_, broken := stepProjectiles(store, cfg, rng, 0, 600)
	if len(broken) != 0 {
		t.Error("phasing shot damaged terrain")
	}
	if store.Projectiles[0].dead {
		t.Error("phasing shot consumed by a platform")
	}
}

func TestSameSideTerrainAbsorbsShot(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()
	rng := core.NewRand(1)

	store := NewStore()
	shooter := store.SpawnEntity(Entity{Side: SideLeft, X: 0, Y: 0, Health: 100, MaxHealth: 100, Alive: true})
	store.SpawnEntity(Entity{Side: SideRight, X: 600, Y: 0, Health: 100, MaxHealth: 100, Alive: true})

	id := store.SpawnPlatform(Platform{X: 200, Y: 100, W: 120, H: 12, MaxHits: 3, Owner: SideLeft})

	store.SpawnProjectile(Projectile{
		X: 250, Y: 103, VX: 1,
		Owner: shooter, Side: SideLeft, Kind: ProjectileStraight,
	})

	_, broken := stepProjectiles(store, cfg, rng, 0, 600)
	if len(broken) != 0 {
		t.Error("same-side terrain was damaged")
	}
	if p := store.Platform(id); p == nil || p.Hits != 0 {
		t.Error("same-side platform should absorb without damage")
	}
	if !store.Projectiles[0].dead {
		t.Error("absorbed projectile should be consumed")
	}
}

func TestProjectileDiesOutsideWindow(t *testing.T) {
	cfg := config.DefaultSkyfallConfig()
	rng := core.NewRand(1)

	store := NewStore()
	shooter := store.SpawnEntity(Entity{Side: SideLeft, X: 0, Y: 0, Health: 100, MaxHealth: 100, Alive: true})
	store.SpawnEntity(Entity{Side: SideRight, X: 600, Y: 0, Health: 100, MaxHealth: 100, Alive: true})

	store.SpawnProjectile(Projectile{
		X: cfg.World.Width - 1, Y: 100, VX: cfg.Combat.ProjectileSpeed,
		Owner: shooter, Side: SideLeft, Kind: ProjectileStraight,
	})

	stepProjectiles(store, cfg, rng, 0, 600)
	if !store.Projectiles[0].dead {
		t.Error("projectile survived leaving the arena")
	}
}

func TestParticlesDecay(t *testing.T) {
	store := NewStore()
	rng := core.NewRand(1)

	spawnExplosion(store, rng, 100, 100, core.ColorRed)
	if len(store.Particles) == 0 {
		t.Fatal("explosion spawned no particles")
	}

	for range 60 {
		decayParticles(store)
	}
	if len(store.Particles) != 0 {
		t.Errorf("%d particles survived past their lifetime", len(store.Particles))
	}
}
