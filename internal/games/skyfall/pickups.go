package skyfall

import (
	"github.com/neuroplay/arena/internal/config"
	"github.com/neuroplay/arena/internal/core"
)

// PickupKind is the coin type carried by a platform.
type PickupKind int

const (
	PickupNone    PickupKind = iota
	PickupEmpower            // firing window with platform-wrecking shots
	PickupHazard             // firing window with entity-only shots
	PickupHeal               // immediate fractional health restore
)

// String returns the kind name used in telemetry.
func (k PickupKind) String() string {
	switch k {
	case PickupEmpower:
		return "empower"
	case PickupHazard:
		return "hazard"
	case PickupHeal:
		return "heal"
	default:
		return "none"
	}
}

// Glyph returns the display character for the pickup.
func (k PickupKind) Glyph() rune {
	switch k {
	case PickupEmpower:
		return 'E'
	case PickupHazard:
		return 'H'
	case PickupHeal:
		return '+'
	default:
		return '?'
	}
}

// Color returns the render color for the pickup.
func (k PickupKind) Color() core.Color {
	switch k {
	case PickupEmpower:
		return core.ColorBrightYellow
	case PickupHazard:
		return core.ColorBrightMagenta
	case PickupHeal:
		return core.ColorBrightGreen
	default:
		return core.ColorDefault
	}
}

// rollPickupKind selects a pickup type by configured weights.
func rollPickupKind(rng *core.Rand, cfg config.PickupConfig) PickupKind {
	total := cfg.WeightEmpower + cfg.WeightHazard + cfg.WeightHeal
	if total <= 0 {
		return PickupHeal
	}

	roll := rng.Intn(total)
	if roll < cfg.WeightEmpower {
		return PickupEmpower
	}
	if roll < cfg.WeightEmpower+cfg.WeightHazard {
		return PickupHazard
	}
	return PickupHeal
}

// applyPickup consumes a collected coin for the given combatant.
// Empower and Hazard open a time-boxed firing window that changes the
// projectile variant spawned; a fresh window of either kind replaces any
// active one. Heal restores a fraction of max health immediately.
func applyPickup(e *Entity, kind PickupKind, cfg config.PickupConfig) {
	switch kind {
	case PickupEmpower, PickupHazard:
		e.Buff = kind
		e.BuffTicks = cfg.BuffTicks
	case PickupHeal:
		restore := int(float64(e.MaxHealth) * cfg.HealFraction)
		e.Health = core.Clamp(e.Health+restore, 0, e.MaxHealth)
	}
}

// tickBuff decrements an active buff window, closing it at zero.
func tickBuff(e *Entity) {
	if e.Buff == PickupNone {
		return
	}
	e.BuffTicks--
	if e.BuffTicks <= 0 {
		e.Buff = PickupNone
		e.BuffTicks = 0
	}
}

// projectileKindFor maps a combatant's variant and active buff to the kind
// of projectile a shot spawns right now.
func projectileKindFor(e *Entity) ProjectileKind {
	switch e.Buff {
	case PickupEmpower:
		return ProjectileWrecker
	case PickupHazard:
		return ProjectilePhase
	}

	switch e.Variant {
	case VariantLobbed:
		return ProjectileLobbed
	case VariantPhasing:
		return ProjectilePhase
	default:
		return ProjectileStraight
	}
}
