package config

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrUnknownWeapon is returned when a weapon name is not in the catalogue
var ErrUnknownWeapon = errors.New("unknown weapon")

// WeaponClass groups weapons by ballistic behaviour
type WeaponClass int

const (
	MachineGun WeaponClass = iota
	Cannon
	Rocket
)

// String returns the class name
func (c WeaponClass) String() string {
	switch c {
	case MachineGun:
		return "machinegun"
	case Cannon:
		return "cannon"
	case Rocket:
		return "rocket"
	default:
		return fmt.Sprintf("WeaponClass(%d)", int(c))
	}
}

// Ballistic reports whether rounds of this class fall under gravity.
// Machine gun rounds fly straight.
func (c WeaponClass) Ballistic() bool {
	return c != MachineGun
}

// Explosive reports whether hits from this class splash to adjacent components
func (c WeaponClass) Explosive() bool {
	return c == Cannon || c == Rocket
}

// WeaponStats holds the fixed characteristics of a weapon type.
// RateOfFire is rounds per second, MuzzleVelocity m/s, Range m, Spread rad.
type WeaponStats struct {
	Name           string
	Class          WeaponClass
	Damage         float64
	RateOfFire     float64
	MuzzleVelocity float64
	Range          float64
	Ammunition     int
	Spread         float64
	TracerInterval int
}

// FireInterval is the minimum time between two rounds
func (s WeaponStats) FireInterval() time.Duration {
	if s.RateOfFire <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / s.RateOfFire)
}

var weaponCatalogue = map[string]WeaponStats{
	"machineGun_303": {
		Name: "machineGun_303", Class: MachineGun,
		Damage: 8, RateOfFire: 15, MuzzleVelocity: 850, Range: 800,
		Ammunition: 350, Spread: 0.015, TracerInterval: 5,
	},
	"machineGun_50cal": {
		Name: "machineGun_50cal", Class: MachineGun,
		Damage: 14, RateOfFire: 13, MuzzleVelocity: 890, Range: 900,
		Ammunition: 400, Spread: 0.012, TracerInterval: 4,
	},
	"machineGun_mg17": {
		Name: "machineGun_mg17", Class: MachineGun,
		Damage: 7, RateOfFire: 18, MuzzleVelocity: 800, Range: 700,
		Ammunition: 500, Spread: 0.018, TracerInterval: 5,
	},
	"cannon_20mm": {
		Name: "cannon_20mm", Class: Cannon,
		Damage: 40, RateOfFire: 10, MuzzleVelocity: 750, Range: 1000,
		Ammunition: 120, Spread: 0.02, TracerInterval: 3,
	},
	"cannon_mg151": {
		Name: "cannon_mg151", Class: Cannon,
		Damage: 35, RateOfFire: 11, MuzzleVelocity: 780, Range: 1000,
		Ammunition: 150, Spread: 0.02, TracerInterval: 3,
	},
	"rocket_rp3": {
		Name: "rocket_rp3", Class: Rocket,
		Damage: 200, RateOfFire: 1, MuzzleVelocity: 450, Range: 1500,
		Ammunition: 8, Spread: 0.04, TracerInterval: 1,
	},
}

// LookupWeapon returns the stats for a weapon name
func LookupWeapon(name string) (WeaponStats, error) {
	stats, ok := weaponCatalogue[name]
	if !ok {
		return WeaponStats{}, fmt.Errorf("%w: %q", ErrUnknownWeapon, name)
	}
	return stats, nil
}

// WeaponNames returns the catalogued weapon names in sorted order
func WeaponNames() []string {
	names := make([]string, 0, len(weaponCatalogue))
	for name := range weaponCatalogue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
