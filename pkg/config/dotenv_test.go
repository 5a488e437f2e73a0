package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		loaded, err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env"))
		if err != nil {
			t.Fatalf("LoadDotEnv() error = %v, want nil", err)
		}
		if loaded {
			t.Error("LoadDotEnv() reported a missing file as loaded")
		}
	})

	t.Run("values feed overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bounce.env")
		if err := os.WriteFile(path, []byte("BOUNCE_BALLS=4\nBOUNCE_BROADPHASE=grid\n"), 0o600); err != nil {
			t.Fatalf("write env file: %v", err)
		}
		// Register cleanup for the variables godotenv will set.
		t.Setenv("BOUNCE_BALLS", "")
		t.Setenv("BOUNCE_BROADPHASE", "")
		os.Unsetenv("BOUNCE_BALLS")
		os.Unsetenv("BOUNCE_BROADPHASE")

		loaded, err := LoadDotEnv(path)
		if err != nil || !loaded {
			t.Fatalf("LoadDotEnv() = %v, %v; want true, nil", loaded, err)
		}

		cfg := DefaultConfig()
		if err := ApplyEnvironmentOverrides(cfg); err != nil {
			t.Fatalf("ApplyEnvironmentOverrides() failed: %v", err)
		}
		if cfg.Game.Balls != 4 {
			t.Errorf("Balls = %d, want 4", cfg.Game.Balls)
		}
		if cfg.Physics.Broadphase != BroadphaseGrid {
			t.Errorf("Broadphase = %q, want %q", cfg.Physics.Broadphase, BroadphaseGrid)
		}
	})

	t.Run("environment wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bounce.env")
		if err := os.WriteFile(path, []byte("BOUNCE_PLAYER_LIFE=9\n"), 0o600); err != nil {
			t.Fatalf("write env file: %v", err)
		}
		t.Setenv("BOUNCE_PLAYER_LIFE", "2")

		if _, err := LoadDotEnv(path); err != nil {
			t.Fatalf("LoadDotEnv() failed: %v", err)
		}
		if got := os.Getenv("BOUNCE_PLAYER_LIFE"); got != "2" {
			t.Errorf("BOUNCE_PLAYER_LIFE = %q, want the pre-set 2", got)
		}
	})
}
