// Package skyfall implements the Skyfall arena: a two-combatant vertical
// descent duel over procedurally generated, destructible platforms. The
// human fights an AI opponent while the camera scrolls down; every landing
// chips away at that side's platforms.
package skyfall

import (
	"github.com/neuroplay/arena/internal/core"
)

// Side identifies which combatant owns a platform or projectile.
type Side int

const (
	SideNeutral Side = iota
	SideLeft         // human
	SideRight        // AI
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "neutral"
	}
}

// Opposes returns true if the two sides are enemy sides.
// Neutral opposes nothing and nothing opposes neutral.
func (s Side) Opposes(o Side) bool {
	return s != SideNeutral && o != SideNeutral && s != o
}

// Color returns the render color for the side.
func (s Side) Color() core.Color {
	switch s {
	case SideLeft:
		return core.ColorBrightCyan
	case SideRight:
		return core.ColorBrightRed
	default:
		return core.ColorGray
	}
}

// EntityID identifies a combatant. Stable for the session; respawn reuses
// the same id with an in-place reset.
type EntityID int

// PlatformID identifies a platform. Zero means "no platform".
type PlatformID int

// Variant is a character variant affecting projectile behavior.
type Variant int

const (
	VariantStraight Variant = iota // level shots
	VariantLobbed                  // shots accumulate gravity
	VariantPhasing                 // shots pass through platforms
)

// String returns the variant name used in telemetry.
func (v Variant) String() string {
	switch v {
	case VariantLobbed:
		return "lobbed"
	case VariantPhasing:
		return "phasing"
	default:
		return "straight"
	}
}

// Entity is a combatant: the human player or the AI opponent.
type Entity struct {
	ID   EntityID
	Side Side

	X, Y   float64 // top-left of the square hitbox
	VX, VY float64

	Health    int
	MaxHealth int

	FacingRight   bool
	ShootCooldown int // ticks until next shot allowed

	// LastPlatform tracks the most recent platform landed on, for the
	// landing-damage-once rule. It persists through jumps; only landing
	// on a different platform counts as a fresh landing.
	LastPlatform PlatformID
	Grounded     bool

	Alive        bool
	RespawnTimer int // counts up while dead, reset at threshold

	Variant Variant

	Buff      PickupKind // active buff window, PickupNone when inactive
	BuffTicks int        // remaining window ticks
}

// Bounds returns the entity's world-space hitbox.
func (e *Entity) Bounds(size float64) core.Box {
	return core.NewBox(e.X, e.Y, size, size)
}

// Platform is one destructible segment of a generated row.
type Platform struct {
	ID      PlatformID
	X, Y    float64
	W, H    float64
	Hits    int
	MaxHits int
	Owner   Side
	Row     int // generation row index, used by the AI's density scoring

	dead bool // pending removal, flushed at end of tick
}

// Bounds returns the platform's world-space rect.
func (p *Platform) Bounds() core.Box {
	return core.NewBox(p.X, p.Y, p.W, p.H)
}

// DamageTier buckets accumulated hits into 0 (fresh) .. 2 (about to break)
// for rendering.
func (p *Platform) DamageTier() int {
	if p.MaxHits <= 1 {
		return 0
	}
	return core.Clamp(p.Hits*3/p.MaxHits, 0, 2)
}

// ProjectileKind selects in-flight behavior and what a shot may damage.
type ProjectileKind int

const (
	ProjectileStraight ProjectileKind = iota
	ProjectileLobbed                  // accumulates gravity
	ProjectilePhase                   // ignores platforms entirely
	ProjectileWrecker                 // shatters opposing platforms outright
)

// String returns the kind name used in telemetry and render snapshots.
func (k ProjectileKind) String() string {
	switch k {
	case ProjectileLobbed:
		return "lobbed"
	case ProjectilePhase:
		return "phase"
	case ProjectileWrecker:
		return "wrecker"
	default:
		return "straight"
	}
}

// Projectile is a shot in flight. Destroyed on its first collision or when
// it exits the vertical visibility window.
type Projectile struct {
	X, Y   float64
	VX, VY float64
	Owner  EntityID
	Side   Side
	Kind   ProjectileKind

	dead bool
}

// Particle is a purely cosmetic fragment. Not observable by gameplay logic.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   int // remaining ticks
	Max    int // initial life, for alpha derivation
	Color  core.Color
}

// Alpha returns the remaining-life fraction in [0, 1] for rendering.
func (p *Particle) Alpha() float64 {
	if p.Max <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.Max)
}

// Pickup is a coin carried by a platform. Once collected it is permanently
// inert; the instance never respawns.
type Pickup struct {
	X, Y      float64
	Platform  PlatformID
	Kind      PickupKind
	Collected bool
}

// Store owns all simulation entities in contiguous collections. Nothing
// holds long-lived references across collections, only ids. Removal during
// a tick only marks; Flush compacts at end of tick so collision resolution
// never invalidates a live iterator.
type Store struct {
	Entities    []Entity // fixed roster of 2: [0] human, [1] AI
	Platforms   []Platform
	Projectiles []Projectile
	Particles   []Particle
	Pickups     []Pickup

	nextPlatformID PlatformID
}

// NewStore creates an empty store with the fixed combatant roster.
func NewStore() *Store {
	return &Store{
		Entities:       make([]Entity, 0, 2),
		Platforms:      make([]Platform, 0, 64),
		Projectiles:    make([]Projectile, 0, 16),
		Particles:      make([]Particle, 0, 128),
		Pickups:        make([]Pickup, 0, 32),
		nextPlatformID: 1,
	}
}

// SpawnEntity adds a combatant to the roster and returns its id.
func (s *Store) SpawnEntity(e Entity) EntityID {
	e.ID = EntityID(len(s.Entities) + 1)
	s.Entities = append(s.Entities, e)
	return e.ID
}

// Entity returns the combatant with the given id, or nil.
func (s *Store) Entity(id EntityID) *Entity {
	idx := int(id) - 1
	if idx < 0 || idx >= len(s.Entities) {
		return nil
	}
	return &s.Entities[idx]
}

// Player returns the human combatant.
func (s *Store) Player() *Entity {
	return &s.Entities[0]
}

// Opponent returns the AI combatant.
func (s *Store) Opponent() *Entity {
	return &s.Entities[1]
}

// SpawnPlatform adds a platform and returns its stable id.
func (s *Store) SpawnPlatform(p Platform) PlatformID {
	p.ID = s.nextPlatformID
	s.nextPlatformID++
	s.Platforms = append(s.Platforms, p)
	return p.ID
}

// Platform returns the platform with the given id, or nil if removed.
func (s *Store) Platform(id PlatformID) *Platform {
	for i := range s.Platforms {
		if s.Platforms[i].ID == id && !s.Platforms[i].dead {
			return &s.Platforms[i]
		}
	}
	return nil
}

// RemovePlatform marks a platform for removal at end of tick.
func (s *Store) RemovePlatform(id PlatformID) {
	for i := range s.Platforms {
		if s.Platforms[i].ID == id {
			s.Platforms[i].dead = true
			return
		}
	}
}

// SpawnProjectile adds a shot in flight.
func (s *Store) SpawnProjectile(p Projectile) {
	s.Projectiles = append(s.Projectiles, p)
}

// SpawnParticle adds a cosmetic fragment.
func (s *Store) SpawnParticle(p Particle) {
	s.Particles = append(s.Particles, p)
}

// SpawnPickup adds a coin.
func (s *Store) SpawnPickup(p Pickup) {
	s.Pickups = append(s.Pickups, p)
}

// MinPlatformY returns the lowest (greatest y) generated platform top, or
// ok=false when no platforms exist.
func (s *Store) MinPlatformY() (y float64, ok bool) {
	for i := range s.Platforms {
		p := &s.Platforms[i]
		if p.dead {
			continue
		}
		if !ok || p.Y > y {
			y = p.Y
			ok = true
		}
	}
	return y, ok
}

// Flush compacts out entities marked dead during the tick. Pickups whose
// carrier platform vanished are dropped too, unless already collected (a
// collected coin stays inert in the log of the world until pruned with its
// row).
func (s *Store) Flush() {
	removed := make(map[PlatformID]bool)

	platforms := s.Platforms[:0]
	for i := range s.Platforms {
		p := s.Platforms[i]
		if p.dead {
			removed[p.ID] = true
			continue
		}
		platforms = append(platforms, p)
	}
	s.Platforms = platforms

	projectiles := s.Projectiles[:0]
	for i := range s.Projectiles {
		if s.Projectiles[i].dead {
			continue
		}
		projectiles = append(projectiles, s.Projectiles[i])
	}
	s.Projectiles = projectiles

	if len(removed) > 0 {
		pickups := s.Pickups[:0]
		for i := range s.Pickups {
			if removed[s.Pickups[i].Platform] {
				continue
			}
			pickups = append(pickups, s.Pickups[i])
		}
		s.Pickups = pickups

		// A combatant standing on a removed platform is airborne again.
		for i := range s.Entities {
			if removed[s.Entities[i].LastPlatform] {
				s.Entities[i].Grounded = false
			}
		}
	}
}
