// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// DOGFIGHT_WORLD_BOUNDARYRADIUS=6000.
const EnvPrefix = "DOGFIGHT"

// SimConfig contains configuration for a simulation run
type SimConfig struct {
	LogLevel   string           `json:"logLevel" mapstructure:"logLevel"`
	Simulation SimulationConfig `json:"simulation" mapstructure:"simulation"`
	World      WorldConfig      `json:"world" mapstructure:"world"`
	Weapons    WeaponsConfig    `json:"weapons" mapstructure:"weapons"`
	Physics    PhysicsConfig    `json:"physics" mapstructure:"physics"`
}

// SimulationConfig controls the outer frame loop
type SimulationConfig struct {
	TimeStep      float64 `json:"timeStep" mapstructure:"timeStep"`
	MaxFrameDelta float64 `json:"maxFrameDelta" mapstructure:"maxFrameDelta"`
	Seed          uint64  `json:"seed" mapstructure:"seed"`
}

// WorldConfig contains the ground and boundary policy
type WorldConfig struct {
	BoundaryRadius    float64       `json:"boundaryRadius" mapstructure:"boundaryRadius"`
	SoftBoundarySpeed float64       `json:"softBoundarySpeed" mapstructure:"softBoundarySpeed"`
	CrashResetDelay   time.Duration `json:"crashResetDelay" mapstructure:"crashResetDelay"`
	ResetAltitude     float64       `json:"resetAltitude" mapstructure:"resetAltitude"`
	DefaultThrottle   float64       `json:"defaultThrottle" mapstructure:"defaultThrottle"`
	StuckSpeed        float64       `json:"stuckSpeed" mapstructure:"stuckSpeed"`
	StuckMinAltitude  float64       `json:"stuckMinAltitude" mapstructure:"stuckMinAltitude"`
	StuckMaxAltitude  float64       `json:"stuckMaxAltitude" mapstructure:"stuckMaxAltitude"`
}

// WeaponsConfig contains projectile pool and gunnery settings
type WeaponsConfig struct {
	PoolCapacity        int     `json:"poolCapacity" mapstructure:"poolCapacity"`
	ConvergenceDistance float64 `json:"convergenceDistance" mapstructure:"convergenceDistance"`
	ImpulsePerDamage    float64 `json:"impulsePerDamage" mapstructure:"impulsePerDamage"`
}

// PhysicsConfig contains settings for the generic rigid-body engine
type PhysicsConfig struct {
	FixedStep   float64 `json:"fixedStep" mapstructure:"fixedStep"`
	MaxSubSteps int     `json:"maxSubSteps" mapstructure:"maxSubSteps"`
	Gravity     float64 `json:"gravity" mapstructure:"gravity"`
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("logLevel", d.LogLevel)

	v.SetDefault("simulation.timeStep", d.Simulation.TimeStep)
	v.SetDefault("simulation.maxFrameDelta", d.Simulation.MaxFrameDelta)
	v.SetDefault("simulation.seed", d.Simulation.Seed)

	v.SetDefault("world.boundaryRadius", d.World.BoundaryRadius)
	v.SetDefault("world.softBoundarySpeed", d.World.SoftBoundarySpeed)
	v.SetDefault("world.crashResetDelay", d.World.CrashResetDelay)
	v.SetDefault("world.resetAltitude", d.World.ResetAltitude)
	v.SetDefault("world.defaultThrottle", d.World.DefaultThrottle)
	v.SetDefault("world.stuckSpeed", d.World.StuckSpeed)
	v.SetDefault("world.stuckMinAltitude", d.World.StuckMinAltitude)
	v.SetDefault("world.stuckMaxAltitude", d.World.StuckMaxAltitude)

	v.SetDefault("weapons.poolCapacity", d.Weapons.PoolCapacity)
	v.SetDefault("weapons.convergenceDistance", d.Weapons.ConvergenceDistance)
	v.SetDefault("weapons.impulsePerDamage", d.Weapons.ImpulsePerDamage)

	v.SetDefault("physics.fixedStep", d.Physics.FixedStep)
	v.SetDefault("physics.maxSubSteps", d.Physics.MaxSubSteps)
	v.SetDefault("physics.gravity", d.Physics.Gravity)
}

// Load reads configuration from a JSON file, applying defaults for missing
// keys and DOGFIGHT_* environment overrides on top. An empty path loads
// defaults and environment overrides only.
func Load(path string) (*SimConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg SimConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Save writes a configuration to a file
func Save(cfg *SimConfig, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default simulation configuration
func DefaultConfig() *SimConfig {
	return &SimConfig{
		LogLevel: "info",
		Simulation: SimulationConfig{
			TimeStep:      1.0 / 60.0,
			MaxFrameDelta: 0.1,
			Seed:          1,
		},
		World: WorldConfig{
			BoundaryRadius:    8000,
			SoftBoundarySpeed: 50,
			CrashResetDelay:   3 * time.Second,
			ResetAltitude:     1000,
			DefaultThrottle:   0.7,
			StuckSpeed:        10,
			StuckMinAltitude:  0.5,
			StuckMaxAltitude:  30,
		},
		Weapons: WeaponsConfig{
			PoolCapacity:        1000,
			ConvergenceDistance: 250,
			ImpulsePerDamage:    0.5,
		},
		Physics: PhysicsConfig{
			FixedStep:   1.0 / 120.0,
			MaxSubSteps: 8,
			Gravity:     9.81,
		},
	}
}
