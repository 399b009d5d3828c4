package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrUnknownAircraft is returned when an aircraft type name or value is not in the catalogue
var ErrUnknownAircraft = errors.New("unknown aircraft type")

// AircraftType identifies one of the flyable airframes
type AircraftType int

const (
	Spitfire AircraftType = iota
	Bf109
	P51Mustang
	A6MZero
)

var aircraftNames = map[AircraftType]string{
	Spitfire:   "spitfire",
	Bf109:      "bf109",
	P51Mustang: "p51",
	A6MZero:    "zero",
}

// String returns the canonical lower-case name of the type
func (t AircraftType) String() string {
	if name, ok := aircraftNames[t]; ok {
		return name
	}
	return fmt.Sprintf("AircraftType(%d)", int(t))
}

// ParseAircraftType resolves a canonical name such as "spitfire" to its type
func ParseAircraftType(name string) (AircraftType, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for t, n := range aircraftNames {
		if n == key {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAircraft, name)
}

// AircraftTypes lists every catalogued type in enum order
func AircraftTypes() []AircraftType {
	return []AircraftType{Spitfire, Bf109, P51Mustang, A6MZero}
}

// MountConfig places one weapon on the airframe. Position and Direction are
// in the aircraft's local frame (forward is -Z).
type MountConfig struct {
	Name      string
	Weapon    string
	Position  mgl64.Vec3
	Direction mgl64.Vec3
}

// AircraftConfig holds the performance and aerodynamic constants of one type.
// Speeds are m/s, rates rad/s, forces N, fuel in percent and percent per second.
type AircraftConfig struct {
	Type            AircraftType
	Name            string
	Mass            float64
	WingArea        float64
	WingSpan        float64
	AspectRatio     float64
	MaxThrust       float64
	CruiseSpeed     float64
	StallSpeed      float64
	MaxSpeed        float64
	PitchRate       float64
	RollRate        float64
	YawRate         float64
	LiftCoefficient float64
	DragCoefficient float64
	Armor           float64
	Firepower       float64
	MaxAmmunition   int
	FuelCapacity    float64
	FuelBurnRate    float64
	Loadout         []MountConfig
}

func wingMounts(weapon string, prefix string, offsets ...float64) []MountConfig {
	mounts := make([]MountConfig, 0, len(offsets)*2)
	for i, x := range offsets {
		for _, side := range []struct {
			name string
			sign float64
		}{{"L", -1}, {"R", 1}} {
			mounts = append(mounts, MountConfig{
				Name:      fmt.Sprintf("%s%s%d", prefix, side.name, i+1),
				Weapon:    weapon,
				Position:  mgl64.Vec3{side.sign * x, -0.2, -1.0},
				Direction: mgl64.Vec3{0, 0, -1},
			})
		}
	}
	return mounts
}

func loadout(groups ...[]MountConfig) []MountConfig {
	var all []MountConfig
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

var aircraftCatalogue = map[AircraftType]AircraftConfig{
	Spitfire: {
		Type:            Spitfire,
		Name:            "Supermarine Spitfire Mk IX",
		Mass:            3000,
		WingArea:        22.5,
		WingSpan:        11.23,
		MaxThrust:       11800,
		CruiseSpeed:     150,
		StallSpeed:      45,
		MaxSpeed:        180,
		PitchRate:       1.2,
		RollRate:        2.6,
		YawRate:         0.6,
		LiftCoefficient: 1.0,
		DragCoefficient: 0.025,
		Armor:           0.15,
		Firepower:       1.0,
		FuelCapacity:    100,
		FuelBurnRate:    0.08,
		Loadout: loadout(
			wingMounts("machineGun_303", "mg", 2.4, 3.0),
			wingMounts("cannon_20mm", "cannon", 1.8),
		),
	},
	Bf109: {
		Type:            Bf109,
		Name:            "Messerschmitt Bf 109 G",
		Mass:            2700,
		WingArea:        16.05,
		WingSpan:        9.92,
		MaxThrust:       9220,
		CruiseSpeed:     160,
		StallSpeed:      50,
		MaxSpeed:        190,
		PitchRate:       1.3,
		RollRate:        2.3,
		YawRate:         0.65,
		LiftCoefficient: 1.1,
		DragCoefficient: 0.024,
		Armor:           0.2,
		Firepower:       0.9,
		FuelCapacity:    100,
		FuelBurnRate:    0.09,
		Loadout: []MountConfig{
			{Name: "cowlL", Weapon: "machineGun_mg17", Position: mgl64.Vec3{-0.3, 0.6, -2.0}, Direction: mgl64.Vec3{0, 0, -1}},
			{Name: "cowlR", Weapon: "machineGun_mg17", Position: mgl64.Vec3{0.3, 0.6, -2.0}, Direction: mgl64.Vec3{0, 0, -1}},
			{Name: "hub", Weapon: "cannon_mg151", Position: mgl64.Vec3{0, 0, -3.5}, Direction: mgl64.Vec3{0, 0, -1}},
		},
	},
	P51Mustang: {
		Type:            P51Mustang,
		Name:            "North American P-51D Mustang",
		Mass:            4000,
		WingArea:        21.65,
		WingSpan:        11.28,
		MaxThrust:       12340,
		CruiseSpeed:     170,
		StallSpeed:      50,
		MaxSpeed:        200,
		PitchRate:       1.1,
		RollRate:        2.4,
		YawRate:         0.55,
		LiftCoefficient: 1.05,
		DragCoefficient: 0.021,
		Armor:           0.2,
		Firepower:       1.1,
		FuelCapacity:    100,
		FuelBurnRate:    0.07,
		Loadout: loadout(
			wingMounts("machineGun_50cal", "mg", 2.2, 2.6, 3.0),
			wingMounts("rocket_rp3", "rocket", 3.6),
		),
	},
	A6MZero: {
		Type:            A6MZero,
		Name:            "Mitsubishi A6M Zero",
		Mass:            2400,
		WingArea:        22.44,
		WingSpan:        12.0,
		MaxThrust:       10570,
		CruiseSpeed:     140,
		StallSpeed:      40,
		MaxSpeed:        170,
		PitchRate:       1.4,
		RollRate:        2.5,
		YawRate:         0.7,
		LiftCoefficient: 1.15,
		DragCoefficient: 0.026,
		Armor:           0.05,
		Firepower:       0.85,
		FuelCapacity:    100,
		FuelBurnRate:    0.06,
		Loadout: loadout(
			[]MountConfig{
				{Name: "cowlL", Weapon: "machineGun_303", Position: mgl64.Vec3{-0.3, 0.6, -2.0}, Direction: mgl64.Vec3{0, 0, -1}},
				{Name: "cowlR", Weapon: "machineGun_303", Position: mgl64.Vec3{0.3, 0.6, -2.0}, Direction: mgl64.Vec3{0, 0, -1}},
			},
			wingMounts("cannon_20mm", "cannon", 2.5),
		),
	},
}

func init() {
	for t, cfg := range aircraftCatalogue {
		cfg.AspectRatio = cfg.WingSpan * cfg.WingSpan / cfg.WingArea
		for _, m := range cfg.Loadout {
			if stats, ok := weaponCatalogue[m.Weapon]; ok {
				cfg.MaxAmmunition += stats.Ammunition
			}
		}
		aircraftCatalogue[t] = cfg
	}
}

// LookupAircraft returns a copy of the configuration for t. The loadout slice
// is cloned so callers cannot alter the catalogue.
func LookupAircraft(t AircraftType) (AircraftConfig, error) {
	cfg, ok := aircraftCatalogue[t]
	if !ok {
		return AircraftConfig{}, fmt.Errorf("%w: %v", ErrUnknownAircraft, t)
	}
	cfg.Loadout = append([]MountConfig(nil), cfg.Loadout...)
	return cfg, nil
}

// LookupAircraftByName combines ParseAircraftType and LookupAircraft
func LookupAircraftByName(name string) (AircraftConfig, error) {
	t, err := ParseAircraftType(name)
	if err != nil {
		return AircraftConfig{}, err
	}
	return LookupAircraft(t)
}
