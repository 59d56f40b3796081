package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("ALERT_RADIUS_M", "")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.AlertRadiusMeters != 500 {
		t.Fatalf("alert radius = %v", cfg.Engine.AlertRadiusMeters)
	}
	if cfg.Engine.ProximityInterval != 2*time.Second {
		t.Fatalf("interval = %v", cfg.Engine.ProximityInterval)
	}
	if cfg.Engine.ResolutionThreshold != 3 {
		t.Fatalf("threshold = %v", cfg.Engine.ResolutionThreshold)
	}
	if cfg.Engine.VoteCooldown != time.Hour {
		t.Fatalf("cooldown = %v", cfg.Engine.VoteCooldown)
	}
	if cfg.Engine.DetectionLogCap != 1000 {
		t.Fatalf("log cap = %v", cfg.Engine.DetectionLogCap)
	}
	if cfg.Storage.Driver != StorageMemory {
		t.Fatalf("driver = %v", cfg.Storage.Driver)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ALERT_RADIUS_M", "750.5")
	t.Setenv("PROXIMITY_INTERVAL", "500ms")
	t.Setenv("RESOLUTION_THRESHOLD", "5")
	t.Setenv("STORAGE_DRIVER", "redis")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.AlertRadiusMeters != 750.5 || cfg.Engine.ProximityInterval != 500*time.Millisecond ||
		cfg.Engine.ResolutionThreshold != 5 || cfg.Storage.Driver != StorageRedis {
		t.Fatalf("overrides not applied: %+v %+v", cfg.Engine, cfg.Storage)
	}
}

func TestValidate_Rejects(t *testing.T) {
	base := func() *Config {
		return &Config{
			Http:    HttpConfig{Port: ":8080"},
			Storage: StorageConfig{Driver: StorageMemory},
			Webhook: WebhookConfig{Disabled: true},
			Engine: EngineConfig{
				AlertRadiusMeters:   500,
				ProximityInterval:   2 * time.Second,
				ResolutionThreshold: 3,
				DetectionLogCap:     1000,
			},
		}
	}
	if err := base().Validate(); err != nil {
		t.Fatalf("base config should be valid: %v", err)
	}

	cases := map[string]func(c *Config){
		"port":      func(c *Config) { c.Http.Port = "8080" },
		"driver":    func(c *Config) { c.Storage.Driver = "sqlite" },
		"radius":    func(c *Config) { c.Engine.AlertRadiusMeters = 0 },
		"interval":  func(c *Config) { c.Engine.ProximityInterval = 0 },
		"threshold": func(c *Config) { c.Engine.ResolutionThreshold = 0 },
		"log cap":   func(c *Config) { c.Engine.DetectionLogCap = 0 },
		"webhook":   func(c *Config) { c.Webhook.Disabled = false },
		"sweep":     func(c *Config) { c.Engine.StaleTTL = time.Hour; c.Engine.StaleSweepInterval = 0 },
	}
	for name, mutate := range cases {
		c := base()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
