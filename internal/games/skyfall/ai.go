package skyfall

import (
	"github.com/neuroplay/arena/internal/config"
	"github.com/neuroplay/arena/internal/core"
)

// Strategy is the AI's coarse time-boxed behavior tag. It modulates the
// shoot probability gate, re-rolling every StrategyInterval ticks. The
// controller is intentionally stochastic rather than adversarial-optimal,
// which keeps difficulty bounded and legible.
type Strategy int

const (
	StrategyAggressive Strategy = iota
	StrategyDefensive
	StrategyTricky
	strategyCount
)

// String returns the strategy name used in telemetry.
func (s Strategy) String() string {
	switch s {
	case StrategyAggressive:
		return "aggressive"
	case StrategyDefensive:
		return "defensive"
	case StrategyTricky:
		return "tricky"
	default:
		return "unknown"
	}
}

// Controller drives the AI combatant. It is a per-tick utility evaluator,
// not a planner: each decision tick it rescans visible platforms on the
// side it should be destroying and steers toward the best-scored target.
type Controller struct {
	cfg config.AIConfig
	rng *core.Rand

	strategy     Strategy
	strategyLeft int
	jumpCooldown int
	decisionLeft int
	driftDir     int // -1, 0, 1 idle drift when no target exists

	targetX   float64 // cached between decision ticks
	targetY   float64
	hasTarget bool
}

// NewController creates the opponent controller.
func NewController(cfg config.AIConfig, rng *core.Rand) *Controller {
	return &Controller{
		cfg:          cfg,
		rng:          rng,
		strategy:     StrategyAggressive,
		strategyLeft: cfg.StrategyInterval,
	}
}

// Strategy returns the current behavior tag.
func (c *Controller) Strategy() Strategy {
	return c.strategy
}

// Intent produces the AI's intent for this tick and reports whether the
// strategy tag re-rolled. It always returns a valid (possibly idle) frame:
// target loss degrades to low-probability drift, never a stall.
func (c *Controller) Intent(store *Store, world config.WorldConfig, size float64, cameraTop, cameraBottom float64) (frame core.InputFrame, rerolled bool) {
	frame = core.NewInputFrame()

	ai := store.Opponent()
	if !ai.Alive {
		return frame, false
	}

	if c.jumpCooldown > 0 {
		c.jumpCooldown--
	}

	c.strategyLeft--
	if c.strategyLeft <= 0 {
		c.strategy = Strategy(c.rng.Intn(int(strategyCount)))
		c.strategyLeft = c.cfg.StrategyInterval
		rerolled = true
	}

	c.decisionLeft--
	if c.decisionLeft <= 0 {
		c.rescan(store, world, ai, size, cameraTop, cameraBottom)
		c.decisionLeft = c.cfg.DecisionInterval
	}

	aiCenter := ai.X + size/2
	if c.hasTarget {
		dx := c.targetX - aiCenter
		aligned := core.AbsF(dx) <= c.cfg.AlignTolerance
		if dx < -c.cfg.AlignTolerance {
			frame.Set(core.ActionLeft)
		} else if dx > c.cfg.AlignTolerance {
			frame.Set(core.ActionRight)
		}

		urgent := ai.Y-c.targetY > c.cfg.UrgentGap // target far above
		if ai.Grounded && c.jumpCooldown <= 0 && (aligned || urgent) {
			frame.Set(core.ActionJump)
			c.jumpCooldown = c.cfg.JumpCooldown
		}
	} else {
		// Idle drift fallback.
		if c.rng.Chance(c.cfg.IdleDriftChance) {
			c.driftDir = c.rng.Intn(3) - 1
		}
		switch c.driftDir {
		case -1:
			frame.Set(core.ActionLeft)
		case 1:
			frame.Set(core.ActionRight)
		}

		if ai.Grounded && c.jumpCooldown <= 0 && c.verticalGapBelow(store, ai, cameraTop, cameraBottom) > c.cfg.FallbackJumpGap {
			frame.Set(core.ActionJump)
			c.jumpCooldown = c.cfg.JumpCooldown
		}
	}

	if c.rng.Chance(c.shootChance()) {
		frame.Set(core.ActionShoot)
	}

	return frame, rerolled
}

// rescan scores every visible destructible platform row on the side the AI
// attacks: vertical proximity weighted up, horizontal distance weighted
// down, plus a bonus for dense rows.
func (c *Controller) rescan(store *Store, world config.WorldConfig, ai *Entity, size float64, cameraTop, cameraBottom float64) {
	aiCenter := ai.X + size/2

	rowCounts := make(map[int]int)
	for i := range store.Platforms {
		p := &store.Platforms[i]
		if p.dead || p.Owner != SideLeft || p.MaxHits >= floorMaxHits {
			continue
		}
		if platformVisible(p, cameraTop, cameraBottom) {
			rowCounts[p.Row]++
		}
	}

	bestScore := 0.0
	c.hasTarget = false

	// Nearest same-row segment per row, then a linear utility blend.
	bestPerRow := make(map[int]*Platform)
	for i := range store.Platforms {
		p := &store.Platforms[i]
		if p.dead || p.Owner != SideLeft || p.MaxHits >= floorMaxHits {
			continue
		}
		if !platformVisible(p, cameraTop, cameraBottom) {
			continue
		}
		cur := bestPerRow[p.Row]
		if cur == nil || core.AbsF(p.Bounds().CenterX()-aiCenter) < core.AbsF(cur.Bounds().CenterX()-aiCenter) {
			bestPerRow[p.Row] = p
		}
	}

	for row, p := range bestPerRow {
		vdist := core.AbsF(p.Y - ai.Y)
		hdist := core.AbsF(p.Bounds().CenterX() - aiCenter)

		score := c.cfg.VerticalWeight*(1-vdist/world.ViewHeight) -
			c.cfg.HorizontalWeight*(hdist/world.Width) +
			c.cfg.DensityBonus*float64(rowCounts[row]-1)

		if !c.hasTarget || score > bestScore {
			bestScore = score
			c.targetX = p.Bounds().CenterX()
			c.targetY = p.Y
			c.hasTarget = true
		}
	}
}

// verticalGapBelow measures the distance to the nearest visible platform
// below the AI, used by the loose fallback jump trigger.
func (c *Controller) verticalGapBelow(store *Store, ai *Entity, cameraTop, cameraBottom float64) float64 {
	best := cameraBottom - ai.Y
	for i := range store.Platforms {
		p := &store.Platforms[i]
		if p.dead || !platformVisible(p, cameraTop, cameraBottom) {
			continue
		}
		if p.Y <= ai.Y {
			continue
		}
		if gap := p.Y - ai.Y; gap < best {
			best = gap
		}
	}
	return best
}

func (c *Controller) shootChance() float64 {
	switch c.strategy {
	case StrategyDefensive:
		return c.cfg.ShootChance.Defensive
	case StrategyTricky:
		return c.cfg.ShootChance.Tricky
	default:
		return c.cfg.ShootChance.Aggressive
	}
}
