// Package validation checks simulation and catalogue configuration before a
// run starts. Every failure wraps ErrInvalidConfig.
package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/opd-ai/go-dogfight/pkg/config"
	"github.com/opd-ai/go-dogfight/pkg/logging"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// positive fails for zero, negative, NaN and infinite values
func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return invalid("%s must be positive, got %v", name, v)
	}
	return nil
}

func nonNegative(name string, v float64) error {
	if !(v >= 0) || math.IsInf(v, 0) {
		return invalid("%s cannot be negative, got %v", name, v)
	}
	return nil
}

func unitRange(name string, v float64) error {
	if !(v >= 0 && v <= 1) {
		return invalid("%s must be in [0,1], got %v", name, v)
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ValidateWeaponStats checks a weapon catalogue entry
func ValidateWeaponStats(s config.WeaponStats) error {
	if s.Name == "" {
		return invalid("weapon name cannot be empty")
	}
	if err := firstError(
		positive("damage", s.Damage),
		positive("rate of fire", s.RateOfFire),
		positive("muzzle velocity", s.MuzzleVelocity),
		positive("range", s.Range),
		nonNegative("spread", s.Spread),
	); err != nil {
		return fmt.Errorf("weapon %s: %w", s.Name, err)
	}
	if s.Ammunition <= 0 {
		return invalid("weapon %s: ammunition must be positive, got %d", s.Name, s.Ammunition)
	}
	if s.TracerInterval < 1 {
		return invalid("weapon %s: tracer interval must be at least 1, got %d", s.Name, s.TracerInterval)
	}
	return nil
}

// ValidateAircraftConfig checks an aircraft catalogue entry, including that
// every mount names a known weapon and MaxAmmunition matches the loadout.
func ValidateAircraftConfig(cfg config.AircraftConfig) error {
	if err := firstError(
		positive("mass", cfg.Mass),
		positive("wing area", cfg.WingArea),
		positive("wing span", cfg.WingSpan),
		positive("aspect ratio", cfg.AspectRatio),
		positive("max thrust", cfg.MaxThrust),
		positive("stall speed", cfg.StallSpeed),
		positive("pitch rate", cfg.PitchRate),
		positive("roll rate", cfg.RollRate),
		positive("yaw rate", cfg.YawRate),
		positive("lift coefficient", cfg.LiftCoefficient),
		positive("drag coefficient", cfg.DragCoefficient),
		positive("fuel capacity", cfg.FuelCapacity),
		nonNegative("fuel burn rate", cfg.FuelBurnRate),
	); err != nil {
		return fmt.Errorf("aircraft %v: %w", cfg.Type, err)
	}

	if !(cfg.StallSpeed < cfg.CruiseSpeed && cfg.CruiseSpeed < cfg.MaxSpeed) {
		return invalid("aircraft %v: speeds must satisfy stall < cruise < max, got %v/%v/%v",
			cfg.Type, cfg.StallSpeed, cfg.CruiseSpeed, cfg.MaxSpeed)
	}
	if !(cfg.Armor >= 0 && cfg.Armor < 1) {
		return invalid("aircraft %v: armor must be in [0,1), got %v", cfg.Type, cfg.Armor)
	}
	if len(cfg.Loadout) == 0 {
		return invalid("aircraft %v: loadout cannot be empty", cfg.Type)
	}

	names := make(map[string]bool, len(cfg.Loadout))
	ammo := 0
	for _, m := range cfg.Loadout {
		if names[m.Name] {
			return invalid("aircraft %v: duplicate mount %q", cfg.Type, m.Name)
		}
		names[m.Name] = true

		stats, err := config.LookupWeapon(m.Weapon)
		if err != nil {
			return fmt.Errorf("%w: aircraft %v mount %s: %w", ErrInvalidConfig, cfg.Type, m.Name, err)
		}
		if m.Direction.Len() < 1e-9 {
			return invalid("aircraft %v: mount %s has no direction", cfg.Type, m.Name)
		}
		ammo += stats.Ammunition
	}
	if ammo != cfg.MaxAmmunition {
		return invalid("aircraft %v: max ammunition %d does not match loadout total %d",
			cfg.Type, cfg.MaxAmmunition, ammo)
	}
	return nil
}

// ValidateCatalogue validates every compiled-in weapon and aircraft
func ValidateCatalogue() error {
	for _, name := range config.WeaponNames() {
		stats, err := config.LookupWeapon(name)
		if err != nil {
			return err
		}
		if err := ValidateWeaponStats(stats); err != nil {
			return err
		}
	}
	for _, t := range config.AircraftTypes() {
		cfg, err := config.LookupAircraft(t)
		if err != nil {
			return err
		}
		if err := ValidateAircraftConfig(cfg); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSimConfig checks a loaded simulation configuration
func ValidateSimConfig(cfg *config.SimConfig) error {
	if cfg == nil {
		return invalid("configuration is nil")
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return invalid("unknown log level %q", cfg.LogLevel)
	}

	sim := cfg.Simulation
	if err := firstError(
		positive("simulation.timeStep", sim.TimeStep),
		positive("simulation.maxFrameDelta", sim.MaxFrameDelta),
	); err != nil {
		return err
	}
	if sim.MaxFrameDelta < sim.TimeStep {
		return invalid("simulation.maxFrameDelta %v is smaller than timeStep %v", sim.MaxFrameDelta, sim.TimeStep)
	}

	w := cfg.World
	if err := firstError(
		positive("world.boundaryRadius", w.BoundaryRadius),
		nonNegative("world.softBoundarySpeed", w.SoftBoundarySpeed),
		positive("world.resetAltitude", w.ResetAltitude),
		unitRange("world.defaultThrottle", w.DefaultThrottle),
		nonNegative("world.stuckSpeed", w.StuckSpeed),
		nonNegative("world.stuckMinAltitude", w.StuckMinAltitude),
	); err != nil {
		return err
	}
	if w.CrashResetDelay < 0 {
		return invalid("world.crashResetDelay cannot be negative, got %v", w.CrashResetDelay)
	}
	if w.StuckMaxAltitude <= w.StuckMinAltitude {
		return invalid("world.stuckMaxAltitude %v must exceed stuckMinAltitude %v", w.StuckMaxAltitude, w.StuckMinAltitude)
	}
	if w.ResetAltitude >= w.BoundaryRadius {
		return invalid("world.resetAltitude %v must be inside boundaryRadius %v", w.ResetAltitude, w.BoundaryRadius)
	}

	wp := cfg.Weapons
	if wp.PoolCapacity <= 0 {
		return invalid("weapons.poolCapacity must be positive, got %d", wp.PoolCapacity)
	}
	if err := firstError(
		positive("weapons.convergenceDistance", wp.ConvergenceDistance),
		nonNegative("weapons.impulsePerDamage", wp.ImpulsePerDamage),
	); err != nil {
		return err
	}

	p := cfg.Physics
	if err := firstError(
		positive("physics.fixedStep", p.FixedStep),
		nonNegative("physics.gravity", p.Gravity),
	); err != nil {
		return err
	}
	if p.MaxSubSteps <= 0 {
		return invalid("physics.maxSubSteps must be positive, got %d", p.MaxSubSteps)
	}
	return nil
}
