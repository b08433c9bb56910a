package config

import (
	_ "embed"
)

//go:embed defaults/skyfall.yaml
var defaultSkyfallYAML []byte

// DefaultSkyfallConfig returns the default Skyfall arena configuration.
// Kept in sync with defaults/skyfall.yaml; used as the last-resort fallback
// if the embedded YAML fails to parse.
func DefaultSkyfallConfig() SkyfallConfig {
	return SkyfallConfig{
		World: WorldConfig{
			Width:       800,
			ViewHeight:  600,
			ScrollSpeed: 1.2,
			AheadMargin: 400,
			TrailMargin: 200,
			DangerBand:  80,
		},
		Physics: PhysicsConfig{
			Gravity:      0.5,
			Friction:     0.85,
			MoveAccel:    0.9,
			JumpImpulse:  -11,
			MaxFallSpeed: 12,
			EntitySize:   40,
		},
		Platforms: PlatformConfig{
			RowSpacing:      120,
			SegmentWidth:    120,
			SegmentHeight:   16,
			SegmentsPerSide: 3,
			PlacementMargin: 24,
			PlaceAttempts:   8,
			MaxHits:         3,
		},
		Pickups: PickupConfig{
			Chance:        0.25,
			WeightEmpower: 4,
			WeightHazard:  3,
			WeightHeal:    3,
			BuffTicks:     300,
			HealFraction:  0.35,
		},
		Combat: CombatConfig{
			MaxHealth:        100,
			ProjectileSpeed:  7,
			ProjectileDamage: 18,
			LobGravity:       0.25,
			ShootCooldown:    30,
			RespawnTicks:     120,
		},
		AI: AIConfig{
			DecisionInterval: 6,
			JumpCooldown:     45,
			VerticalWeight:   1.0,
			HorizontalWeight: 0.5,
			DensityBonus:     0.15,
			AlignTolerance:   30,
			UrgentGap:        220,
			StrategyInterval: 600,
			ShootChance: ShootChanceConfig{
				Aggressive: 0.05,
				Defensive:  0.015,
				Tricky:     0.03,
			},
			IdleDriftChance: 0.02,
			FallbackJumpGap: 160,
		},
	}
}
