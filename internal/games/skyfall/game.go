package skyfall

import (
	"time"

	"github.com/neuroplay/arena/internal/config"
	"github.com/neuroplay/arena/internal/core"
	"github.com/neuroplay/arena/internal/registry"
	"github.com/neuroplay/arena/internal/telemetry"
)

// Game state constants
const (
	StatePlaying  = "playing"
	StatePaused   = "paused"
	StateGameOver = "gameover"
)

// Score weights
const (
	scorePerBreak = 25 // opposing platform destroyed
	scorePerHit   = 15 // correlated shot hit
	depthDivisor  = 10 // descent pixels per score point
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// strictInvariants makes invariant violations panic instead of clamping.
// Enabled by tests; production sessions clamp and continue.
var strictInvariants bool

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	default:
		difficultyPreset = ""
	}
}

// Game implements the Skyfall arena simulation loop.
type Game struct {
	cfg     config.SkyfallConfig
	runtime core.RuntimeConfig

	store    *Store
	gen      *Generator
	ai       *Controller
	rng      *core.Rand
	clock    *core.SimulationClock
	recorder *telemetry.Recorder

	cameraY float64
	state   string
	score   int
	bonus   int // accumulated break/hit score on top of depth

	// Telemetry context. Explicit fields, not ambient globals.
	threatTick  int // tick the current unanswered threat opened, -1 if none
	lastMoveDir int
	drifting    bool
	driftStart  int
}

// New creates a new Skyfall arena instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this arena.
func (g *Game) ID() string {
	return "skyfall"
}

// Title returns the display name for this arena.
func (g *Game) Title() string {
	return "Skyfall Duel"
}

// Reset initializes or restarts the simulation.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadSkyfall(configPath)
	if err != nil {
		cfg = config.DefaultSkyfallConfig()
	}
	if difficultyPreset != "" {
		config.ApplySkyfallPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.rng = core.NewRand(runtime.Seed)
	g.clock = core.NewSimulationClock(time.Now(), runtime.TickRate)
	g.recorder = telemetry.NewRecorder(g.ID(), g.clock)
	g.ai = NewController(cfg.AI, g.rng)

	g.store = NewStore()
	size := cfg.Physics.EntitySize
	floorY := cfg.World.ViewHeight * 2 / 3

	g.store.SpawnEntity(Entity{
		Side:        SideLeft,
		X:           cfg.World.Width*0.25 - size/2,
		Y:           floorY - size,
		Health:      cfg.Combat.MaxHealth,
		MaxHealth:   cfg.Combat.MaxHealth,
		FacingRight: true,
		Alive:       true,
		Variant:     VariantStraight,
	})
	g.store.SpawnEntity(Entity{
		Side:      SideRight,
		X:         cfg.World.Width*0.75 - size/2,
		Y:         floorY - size,
		Health:    cfg.Combat.MaxHealth,
		MaxHealth: cfg.Combat.MaxHealth,
		Alive:     true,
		Variant:   g.rollVariant(),
	})

	spawnFloor(g.store, cfg.World, cfg.Platforms.SegmentHeight, floorY)

	g.cameraY = 0
	g.gen = NewGenerator(cfg, g.rng, floorY+cfg.Platforms.RowSpacing)
	g.gen.EnsureAhead(g.store, g.cameraY+cfg.World.ViewHeight)

	g.state = StatePlaying
	g.score = 0
	g.bonus = 0
	g.threatTick = -1
	g.lastMoveDir = 0
	g.drifting = false
}

// rollVariant picks a character variant for the AI; re-rolled on respawn.
func (g *Game) rollVariant() Variant {
	return Variant(g.rng.Intn(3))
}

// Step advances the simulation by one tick. Fixed order: level generation,
// entity physics, platform pruning, projectiles, particle decay, pickups,
// AI intent, telemetry hooks inline with the events that triggered them.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.state == StateGameOver {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		if g.state == StatePaused {
			g.state = StatePlaying
		} else if g.state == StatePlaying {
			g.state = StatePaused
		}
	}

	if g.state != StatePlaying {
		return core.StepResult{State: g.State()}
	}

	g.clock.Advance()
	g.cameraY += g.cfg.World.ScrollSpeed
	cameraTop := g.cameraY
	cameraBottom := g.cameraY + g.cfg.World.ViewHeight

	// Platforms must exist ahead of anything that moves this tick.
	g.gen.EnsureAhead(g.store, cameraBottom)
	g.gen.Prune(g.store, cameraTop)

	// An open threat window closes on the player's first input.
	if g.threatTick >= 0 && in.Any() {
		g.recorder.Reaction(g.msSince(g.threatTick), "incoming_fire")
		g.threatTick = -1
	}
	g.recordMovement(in)

	for i := range g.store.Entities {
		e := &g.store.Entities[i]
		if e.ShootCooldown > 0 {
			e.ShootCooldown--
		}
		tickBuff(e)
	}

	g.applyIntent(g.store.Player(), in, telemetry.ActorPlayer)

	aiFrame, rerolled := g.ai.Intent(g.store, g.cfg.World, g.cfg.Physics.EntitySize, cameraTop, cameraBottom)
	if rerolled {
		g.recorder.ModeSwitch(telemetry.ActorAI, g.ai.Strategy().String())
	}
	g.applyIntent(g.store.Opponent(), aiFrame, telemetry.ActorAI)

	g.stepEntities(cameraTop, cameraBottom)

	impacts, broken := stepProjectiles(g.store, g.cfg, g.rng, cameraTop, cameraBottom)
	for _, imp := range impacts {
		actor := telemetry.ActorAI
		if imp.Shooter == g.store.Player().ID {
			actor = telemetry.ActorPlayer
		}
		if g.recorder.MarkShotHit(actor) && actor == telemetry.ActorPlayer {
			g.bonus += scorePerHit
		}
	}
	g.creditBreaks(broken)

	for i := range g.store.Entities {
		e := &g.store.Entities[i]
		if e.Alive && e.Health <= 0 {
			g.kill(e)
		}
	}

	decayParticles(g.store)
	g.collectPickups()
	g.stepRespawns()
	g.trackDrift(cameraBottom)

	g.store.Flush()
	g.checkInvariants()

	g.score = int(g.cameraY)/depthDivisor + g.bonus

	return core.StepResult{State: g.State()}
}

// applyIntent translates one combatant's intent into kinematics and shots.
func (g *Game) applyIntent(e *Entity, in core.InputFrame, actor string) {
	if !e.Alive {
		return
	}

	phy := g.cfg.Physics
	if in.Has(core.ActionLeft) {
		e.VX -= phy.MoveAccel
		e.FacingRight = false
	}
	if in.Has(core.ActionRight) {
		e.VX += phy.MoveAccel
		e.FacingRight = true
	}
	if in.Has(core.ActionJump) && e.Grounded {
		e.VY = phy.JumpImpulse
		e.Grounded = false
	}
	if in.Has(core.ActionShoot) && e.ShootCooldown <= 0 {
		g.shoot(e, actor)
	}
}

// shoot spawns a projectile for the combatant and records the shot.
func (g *Game) shoot(e *Entity, actor string) {
	size := g.cfg.Physics.EntitySize
	kind := projectileKindFor(e)

	vx := g.cfg.Combat.ProjectileSpeed
	if !e.FacingRight {
		vx = -vx
	}
	vy := 0.0
	if kind == ProjectileLobbed {
		vy = -2 // lobbed shots arc
	}

	x := e.X + size/2
	y := e.Y + size/2
	g.store.SpawnProjectile(Projectile{
		X: x, Y: y, VX: vx, VY: vy,
		Owner: e.ID,
		Side:  e.Side,
		Kind:  kind,
	})
	e.ShootCooldown = g.cfg.Combat.ShootCooldown

	g.recorder.Shot(actor, kind.String(), x, y)

	// AI fire opens a reaction window for the player.
	if actor == telemetry.ActorAI && g.threatTick < 0 {
		g.threatTick = g.clock.Tick()
	}
}

// stepEntities advances combatant kinematics, landings and fall deaths.
func (g *Game) stepEntities(cameraTop, cameraBottom float64) {
	size := g.cfg.Physics.EntitySize

	for i := range g.store.Entities {
		e := &g.store.Entities[i]
		if !e.Alive {
			continue // velocity frozen, no collision checks
		}

		applyKinematics(e, g.cfg.Physics, g.cfg.World, cameraTop)

		landed, first := resolveLanding(g.store, e, size, cameraTop, cameraBottom)
		if landed != nil && first && landed.MaxHits < floorMaxHits {
			// Each new landing chips away at that platform, once.
			if didBreak, s := chipPlatform(g.store, landed, 1, g.rng); didBreak {
				g.creditBreaks([]shatter{s})
			}
		}

		if e.Y > cameraBottom {
			g.kill(e)
		}
	}
}

// creditBreaks scores destroyed opposing platforms for the player.
func (g *Game) creditBreaks(broken []shatter) {
	for _, s := range broken {
		if s.Owner == SideRight {
			g.bonus += scorePerBreak
		}
	}
}

// kill runs the death sequence. The AI side enters its respawn state; the
// human side's death is terminal for the session.
func (g *Game) kill(e *Entity) {
	e.Health = 0
	e.Alive = false
	e.VX = 0
	e.VY = 0
	e.RespawnTimer = 0
	e.Buff = PickupNone
	e.BuffTicks = 0

	size := g.cfg.Physics.EntitySize
	spawnExplosion(g.store, g.rng, e.X+size/2, e.Y+size/2, e.Side.Color())

	if e.Side == SideLeft {
		g.state = StateGameOver
	}
}

// stepRespawns advances dead combatants' timers. Only the AI returns; it
// comes back fully reset on the same id with a re-rolled variant.
func (g *Game) stepRespawns() {
	size := g.cfg.Physics.EntitySize

	for i := range g.store.Entities {
		e := &g.store.Entities[i]
		if e.Alive {
			continue
		}
		e.RespawnTimer++

		if e.Side != SideRight || e.RespawnTimer < g.cfg.Combat.RespawnTicks {
			continue
		}

		e.Alive = true
		e.Health = e.MaxHealth
		e.RespawnTimer = 0
		e.X = g.cfg.World.Width*0.75 - size/2
		e.Y = g.cameraY + g.cfg.World.ViewHeight*0.2
		e.VX = 0
		e.VY = 0
		e.LastPlatform = 0
		e.Grounded = false
		e.ShootCooldown = 0
		e.Variant = g.rollVariant()
	}
}

// collectPickups consumes coins a combatant overlaps. A collected coin is
// permanently inert; revisiting its position grants nothing.
func (g *Game) collectPickups() {
	size := g.cfg.Physics.EntitySize

	for i := range g.store.Pickups {
		p := &g.store.Pickups[i]
		if p.Collected {
			continue
		}

		box := core.NewBox(p.X-8, p.Y-8, 16, 16)
		for j := range g.store.Entities {
			e := &g.store.Entities[j]
			if !e.Alive || !e.Bounds(size).Overlaps(box) {
				continue
			}

			p.Collected = true
			applyPickup(e, p.Kind, g.cfg.Pickups)

			if e.Side == SideLeft && p.Kind != PickupHeal {
				g.recorder.ModeSwitch(telemetry.ActorPlayer, p.Kind.String())
			}
			break
		}
	}
}

// trackDrift watches the player sink into and climb out of the bottom
// danger band, emitting drift/recovery telemetry.
func (g *Game) trackDrift(cameraBottom float64) {
	player := g.store.Player()
	if !player.Alive {
		if g.drifting {
			g.drifting = false
		}
		return
	}

	size := g.cfg.Physics.EntitySize
	bandTop := cameraBottom - g.cfg.World.DangerBand
	inBand := player.Y+size > bandTop

	if inBand && !g.drifting {
		g.drifting = true
		g.driftStart = g.clock.Tick()
		g.recorder.Drift(player.Y + size - bandTop)
	} else if !inBand && g.drifting {
		g.drifting = false
		g.recorder.Recovery(g.msSince(g.driftStart))
	}
}

// checkInvariants enforces simulation invariants: panic loudly under test,
// clamp and continue in production.
func (g *Game) checkInvariants() {
	for i := range g.store.Entities {
		e := &g.store.Entities[i]
		if e.Health < 0 || e.Health > e.MaxHealth {
			if strictInvariants {
				panic("skyfall: entity health out of bounds")
			}
			e.Health = core.Clamp(e.Health, 0, e.MaxHealth)
		}
		if !e.Alive && (e.VX != 0 || e.VY != 0) {
			if strictInvariants {
				panic("skyfall: dead entity still moving")
			}
			e.VX = 0
			e.VY = 0
		}
	}
}

// msSince converts a tick delta to milliseconds at the clock's rate.
func (g *Game) msSince(tick int) int {
	ticks := g.clock.Tick() - tick
	return ticks * 1000 / g.clock.TickRate()
}

// recordMovement logs discrete movement intents from the player.
func (g *Game) recordMovement(in core.InputFrame) {
	if in.Has(core.ActionJump) {
		g.recorder.Movement("jump", false)
	}

	dir := 0
	move := ""
	if in.Has(core.ActionLeft) {
		dir, move = -1, "left"
	} else if in.Has(core.ActionRight) {
		dir, move = 1, "right"
	}
	if dir == 0 {
		return
	}

	g.recorder.Movement(move, g.lastMoveDir != 0 && dir != g.lastMoveDir)
	g.lastMoveDir = dir
}

// Summary folds the session's event log into the persistence-bound
// summary. Partial marks sessions abandoned before the terminal state.
func (g *Game) Summary(partial bool) telemetry.SessionSummary {
	return telemetry.Aggregate(g.recorder.Finish(), g.score, partial)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.state == StateGameOver,
		Paused:   g.state == StatePaused,
	}
}

// Register the arena with the registry
func init() {
	registry.Register("skyfall", func() registry.Game {
		return New()
	})
}
