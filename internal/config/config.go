// Package config provides YAML-based arena configuration loading and
// difficulty presets for the platform.
package config

// SkyfallConfig contains all tunables for the Skyfall arena. Every constant
// the simulation loop reads lives here so a test harness can substitute
// deterministic values without touching simulation logic.
type SkyfallConfig struct {
	World     WorldConfig    `yaml:"world"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Platforms PlatformConfig `yaml:"platforms"`
	Pickups   PickupConfig   `yaml:"pickups"`
	Combat    CombatConfig   `yaml:"combat"`
	AI        AIConfig       `yaml:"ai"`
}

// WorldConfig defines arena dimensions and camera behavior, in world pixels.
type WorldConfig struct {
	Width       float64 `yaml:"width"`
	ViewHeight  float64 `yaml:"view_height"`
	ScrollSpeed float64 `yaml:"scroll_speed"` // camera descent per tick
	AheadMargin float64 `yaml:"ahead_margin"` // platforms guaranteed this far below the leading edge
	TrailMargin float64 `yaml:"trail_margin"` // rows pruned this far above the camera top
	DangerBand  float64 `yaml:"danger_band"`  // bottom band that counts as drifting
}

// PhysicsConfig defines the arcade kinematics approximation.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	Friction     float64 `yaml:"friction"` // horizontal damping factor per tick
	MoveAccel    float64 `yaml:"move_accel"`
	JumpImpulse  float64 `yaml:"jump_impulse"` // negative = upward
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	EntitySize   float64 `yaml:"entity_size"` // square combatant hitbox
}

// PlatformConfig defines procedural row generation.
type PlatformConfig struct {
	RowSpacing      float64 `yaml:"row_spacing"`
	SegmentWidth    float64 `yaml:"segment_width"`
	SegmentHeight   float64 `yaml:"segment_height"`
	SegmentsPerSide int     `yaml:"segments_per_side"` // candidates rolled per side per row
	PlacementMargin float64 `yaml:"placement_margin"`  // min spacing between accepted segments
	PlaceAttempts   int     `yaml:"place_attempts"`    // rejection sampling budget per segment
	MaxHits         int     `yaml:"max_hits"`          // landings before a platform shatters
}

// PickupConfig defines coin spawning and buff behavior.
type PickupConfig struct {
	Chance        float64 `yaml:"chance"` // per accepted segment
	WeightEmpower int     `yaml:"weight_empower"`
	WeightHazard  int     `yaml:"weight_hazard"`
	WeightHeal    int     `yaml:"weight_heal"`
	BuffTicks     int     `yaml:"buff_ticks"`    // Empower/Hazard window length
	HealFraction  float64 `yaml:"heal_fraction"` // fraction of max health restored
}

// CombatConfig defines health, projectiles and respawn behavior.
type CombatConfig struct {
	MaxHealth        int     `yaml:"max_health"`
	ProjectileSpeed  float64 `yaml:"projectile_speed"`
	ProjectileDamage int     `yaml:"projectile_damage"`
	LobGravity       float64 `yaml:"lob_gravity"` // gravity for the lobbed variant
	ShootCooldown    int     `yaml:"shoot_cooldown"`
	RespawnTicks     int     `yaml:"respawn_ticks"`
}

// AIConfig defines the opponent's utility-scoring coefficients.
type AIConfig struct {
	DecisionInterval int               `yaml:"decision_interval"` // ticks between target rescans
	JumpCooldown     int               `yaml:"jump_cooldown"`
	VerticalWeight   float64           `yaml:"vertical_weight"`
	HorizontalWeight float64           `yaml:"horizontal_weight"`
	DensityBonus     float64           `yaml:"density_bonus"`
	AlignTolerance   float64           `yaml:"align_tolerance"` // horizontal px counted as "on target"
	UrgentGap        float64           `yaml:"urgent_gap"`      // vertical px that forces a jump
	StrategyInterval int               `yaml:"strategy_interval"`
	ShootChance      ShootChanceConfig `yaml:"shoot_chance"`
	IdleDriftChance  float64           `yaml:"idle_drift_chance"`
	FallbackJumpGap  float64           `yaml:"fallback_jump_gap"`
}

// ShootChanceConfig is the per-tick fire probability per strategy tag.
type ShootChanceConfig struct {
	Aggressive float64 `yaml:"aggressive"`
	Defensive  float64 `yaml:"defensive"`
	Tricky     float64 `yaml:"tricky"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ApplySkyfallPreset scales the AI coefficients for a named preset.
// The base config is treated as "normal".
func ApplySkyfallPreset(cfg *SkyfallConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.AI.DecisionInterval *= 2
		cfg.AI.ShootChance.Aggressive *= 0.5
		cfg.AI.ShootChance.Defensive *= 0.5
		cfg.AI.ShootChance.Tricky *= 0.5
		cfg.AI.JumpCooldown += cfg.AI.JumpCooldown / 2
	case DifficultyHard:
		if cfg.AI.DecisionInterval > 1 {
			cfg.AI.DecisionInterval /= 2
		}
		cfg.AI.ShootChance.Aggressive *= 1.6
		cfg.AI.ShootChance.Defensive *= 1.6
		cfg.AI.ShootChance.Tricky *= 1.6
		cfg.AI.JumpCooldown = cfg.AI.JumpCooldown * 2 / 3
	}
}
