package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSkyfallConfigSanity(t *testing.T) {
	cfg := DefaultSkyfallConfig()

	if cfg.World.Width <= 0 || cfg.World.ViewHeight <= 0 {
		t.Errorf("world dimensions must be positive, got %fx%f", cfg.World.Width, cfg.World.ViewHeight)
	}
	if cfg.World.ScrollSpeed <= 0 {
		t.Error("scroll speed must be positive, the camera always descends")
	}
	if cfg.Physics.Gravity <= 0 {
		t.Error("gravity must pull downward (positive y)")
	}
	if cfg.Physics.JumpImpulse >= 0 {
		t.Error("jump impulse must be negative (upward)")
	}
	if cfg.Physics.MaxFallSpeed <= 0 {
		t.Error("terminal velocity must be positive")
	}
	if cfg.Platforms.MaxHits < 1 {
		t.Errorf("MaxHits = %d, platforms need at least one landing", cfg.Platforms.MaxHits)
	}
	if cfg.Platforms.SegmentWidth+cfg.Platforms.PlacementMargin > cfg.World.Width/2 {
		t.Error("a segment plus margin must fit inside one half of the world")
	}
	if cfg.Combat.RespawnTicks <= 0 {
		t.Error("respawn delay must be positive")
	}
	if cfg.AI.DecisionInterval <= 0 || cfg.AI.StrategyInterval <= 0 {
		t.Error("AI intervals must be positive")
	}
}

func TestLoadSkyfallEmbeddedDefault(t *testing.T) {
	// No custom path and (almost certainly) no user config in CI: the
	// embedded YAML must produce a usable config.
	cfg, err := LoadSkyfall("")
	if err != nil {
		t.Fatalf("LoadSkyfall(\"\") failed: %v", err)
	}
	if cfg.World.Width <= 0 {
		t.Errorf("embedded default produced Width = %f", cfg.World.Width)
	}
	if cfg.Combat.ProjectileSpeed <= 0 {
		t.Errorf("embedded default produced ProjectileSpeed = %f", cfg.Combat.ProjectileSpeed)
	}
}

func TestLoadSkyfallCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `
world:
  width: 640
  view_height: 480
  scroll_speed: 0.75
physics:
  gravity: 0.4
combat:
  max_health: 50
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSkyfall(path)
	if err != nil {
		t.Fatalf("LoadSkyfall(custom) failed: %v", err)
	}
	if cfg.World.Width != 640 {
		t.Errorf("Width = %f, want 640", cfg.World.Width)
	}
	if cfg.World.ScrollSpeed != 0.75 {
		t.Errorf("ScrollSpeed = %f, want 0.75", cfg.World.ScrollSpeed)
	}
	if cfg.Combat.MaxHealth != 50 {
		t.Errorf("MaxHealth = %d, want 50", cfg.Combat.MaxHealth)
	}
}

func TestLoadSkyfallMissingCustomPath(t *testing.T) {
	if _, err := LoadSkyfall(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("an explicit path that does not exist should be an error, not a silent fallback")
	}
}

func TestLoadSkyfallMalformedCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("world: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSkyfall(path); err == nil {
		t.Error("malformed YAML at an explicit path should be an error")
	}
}

func TestApplySkyfallPreset(t *testing.T) {
	base := DefaultSkyfallConfig()

	easy := DefaultSkyfallConfig()
	ApplySkyfallPreset(&easy, DifficultyEasy)
	if easy.AI.DecisionInterval <= base.AI.DecisionInterval {
		t.Error("easy preset should slow the AI's rescans")
	}
	if easy.AI.ShootChance.Aggressive >= base.AI.ShootChance.Aggressive {
		t.Error("easy preset should lower shoot probability")
	}

	hard := DefaultSkyfallConfig()
	ApplySkyfallPreset(&hard, DifficultyHard)
	if hard.AI.DecisionInterval >= base.AI.DecisionInterval {
		t.Error("hard preset should speed up the AI's rescans")
	}
	if hard.AI.ShootChance.Aggressive <= base.AI.ShootChance.Aggressive {
		t.Error("hard preset should raise shoot probability")
	}

	normal := DefaultSkyfallConfig()
	ApplySkyfallPreset(&normal, DifficultyNormal)
	if normal.AI.DecisionInterval != base.AI.DecisionInterval {
		t.Error("normal preset must leave the base config untouched")
	}
}
