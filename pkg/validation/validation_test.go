package validation

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/opd-ai/go-dogfight/pkg/config"
)

func TestValidateCatalogue_BuiltInEntriesAreValid(t *testing.T) {
	if err := ValidateCatalogue(); err != nil {
		t.Fatalf("ValidateCatalogue() error = %v", err)
	}
}

func TestValidateSimConfig(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*config.SimConfig)
		wantErr     bool
		errContains string
	}{
		{name: "defaults", mutate: func(*config.SimConfig) {}},
		{name: "warning level alias", mutate: func(c *config.SimConfig) { c.LogLevel = "warning" }},
		{
			name:        "unknown log level",
			mutate:      func(c *config.SimConfig) { c.LogLevel = "chatty" },
			wantErr:     true,
			errContains: "log level",
		},
		{
			name:        "zero time step",
			mutate:      func(c *config.SimConfig) { c.Simulation.TimeStep = 0 },
			wantErr:     true,
			errContains: "simulation.timeStep",
		},
		{
			name:        "frame delta below time step",
			mutate:      func(c *config.SimConfig) { c.Simulation.MaxFrameDelta = 0.001 },
			wantErr:     true,
			errContains: "maxFrameDelta",
		},
		{
			name:        "nan boundary",
			mutate:      func(c *config.SimConfig) { c.World.BoundaryRadius = math.NaN() },
			wantErr:     true,
			errContains: "boundaryRadius",
		},
		{
			name:        "throttle above one",
			mutate:      func(c *config.SimConfig) { c.World.DefaultThrottle = 1.2 },
			wantErr:     true,
			errContains: "defaultThrottle",
		},
		{
			name:        "negative reset delay",
			mutate:      func(c *config.SimConfig) { c.World.CrashResetDelay = -time.Second },
			wantErr:     true,
			errContains: "crashResetDelay",
		},
		{
			name:        "inverted stuck band",
			mutate:      func(c *config.SimConfig) { c.World.StuckMaxAltitude = 0.1 },
			wantErr:     true,
			errContains: "stuckMaxAltitude",
		},
		{
			name:        "reset outside boundary",
			mutate:      func(c *config.SimConfig) { c.World.ResetAltitude = 9000 },
			wantErr:     true,
			errContains: "resetAltitude",
		},
		{
			name:        "empty pool",
			mutate:      func(c *config.SimConfig) { c.Weapons.PoolCapacity = 0 },
			wantErr:     true,
			errContains: "poolCapacity",
		},
		{
			name:        "no sub steps",
			mutate:      func(c *config.SimConfig) { c.Physics.MaxSubSteps = 0 },
			wantErr:     true,
			errContains: "maxSubSteps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)

			err := ValidateSimConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateSimConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v should wrap ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

func TestValidateSimConfig_Nil(t *testing.T) {
	if err := ValidateSimConfig(nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ValidateSimConfig(nil) = %v", err)
	}
}

func spitfire(t *testing.T) config.AircraftConfig {
	t.Helper()
	cfg, err := config.LookupAircraft(config.Spitfire)
	if err != nil {
		t.Fatalf("LookupAircraft() error = %v", err)
	}
	return cfg
}

func TestValidateAircraftConfig(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*config.AircraftConfig)
		errContains string
	}{
		{"zero mass", func(c *config.AircraftConfig) { c.Mass = 0 }, "mass"},
		{"stall above cruise", func(c *config.AircraftConfig) { c.StallSpeed = 160 }, "stall < cruise < max"},
		{"armor of one", func(c *config.AircraftConfig) { c.Armor = 1 }, "armor"},
		{"empty loadout", func(c *config.AircraftConfig) { c.Loadout = nil }, "loadout"},
		{"unknown weapon", func(c *config.AircraftConfig) { c.Loadout[0].Weapon = "laser" }, "unknown weapon"},
		{"duplicate mount", func(c *config.AircraftConfig) { c.Loadout[1].Name = c.Loadout[0].Name }, "duplicate mount"},
		{"zero direction", func(c *config.AircraftConfig) { c.Loadout[0].Direction = mgl64.Vec3{} }, "no direction"},
		{"ammo mismatch", func(c *config.AircraftConfig) { c.MaxAmmunition++ }, "does not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := spitfire(t)
			tt.mutate(&cfg)

			err := ValidateAircraftConfig(cfg)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v should wrap ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

func TestValidateAircraftConfig_UnknownWeaponKeepsCause(t *testing.T) {
	cfg := spitfire(t)
	cfg.Loadout[0].Weapon = "laser"

	if err := ValidateAircraftConfig(cfg); !errors.Is(err, config.ErrUnknownWeapon) {
		t.Errorf("error %v should wrap ErrUnknownWeapon", err)
	}
}

func TestValidateWeaponStats(t *testing.T) {
	base, err := config.LookupWeapon("cannon_20mm")
	if err != nil {
		t.Fatalf("LookupWeapon() error = %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*config.WeaponStats)
		wantErr bool
	}{
		{"catalogue entry", func(*config.WeaponStats) {}, false},
		{"no spread", func(s *config.WeaponStats) { s.Spread = 0 }, false},
		{"empty name", func(s *config.WeaponStats) { s.Name = "" }, true},
		{"zero rate of fire", func(s *config.WeaponStats) { s.RateOfFire = 0 }, true},
		{"infinite range", func(s *config.WeaponStats) { s.Range = math.Inf(1) }, true},
		{"negative spread", func(s *config.WeaponStats) { s.Spread = -0.1 }, true},
		{"no ammunition", func(s *config.WeaponStats) { s.Ammunition = 0 }, true},
		{"tracer interval zero", func(s *config.WeaponStats) { s.TracerInterval = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := base
			tt.mutate(&stats)
			err := ValidateWeaponStats(stats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWeaponStats() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
