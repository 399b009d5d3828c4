package weapon

import (
	"math/rand/v2"
	"time"

	"github.com/opd-ai/go-dogfight/pkg/config"
)

// MountStatus is the read-back view of one weapon
type MountStatus struct {
	Mount      string `json:"mount"`
	Weapon     string `json:"weapon"`
	Ammunition int    `json:"ammunition"`
	MaxAmmo    int    `json:"maxAmmo"`
	Firing     bool   `json:"firing"`
}

// Group is the loadout of one aircraft
type Group struct {
	OwnerID uint64
	Weapons []*Weapon
}

// NewGroup builds every mount of the aircraft's loadout
func NewGroup(owner uint64, cfg config.AircraftConfig) (*Group, error) {
	g := &Group{OwnerID: owner, Weapons: make([]*Weapon, 0, len(cfg.Loadout))}
	for _, mount := range cfg.Loadout {
		w, err := New(mount)
		if err != nil {
			return nil, err
		}
		g.Weapons = append(g.Weapons, w)
	}
	return g, nil
}

// SetFiring sets the trigger on every mount
func (g *Group) SetFiring(firing bool) {
	for _, w := range g.Weapons {
		w.IsFiring = firing
	}
}

// Fire tries every mount and returns the spawns of those that fired
func (g *Group) Fire(now time.Duration, aim Aim, rng *rand.Rand) []Spawn {
	aim.OwnerID = g.OwnerID
	var spawns []Spawn
	for _, w := range g.Weapons {
		if s, ok := w.Fire(now, aim, rng); ok {
			spawns = append(spawns, s)
		}
	}
	return spawns
}

// Ammunition is the total rounds left across mounts
func (g *Group) Ammunition() int {
	total := 0
	for _, w := range g.Weapons {
		total += w.CurrentAmmo
	}
	return total
}

// Reload refills every mount
func (g *Group) Reload() {
	for _, w := range g.Weapons {
		w.Reload()
	}
}

// Status returns the per-mount read-back
func (g *Group) Status() []MountStatus {
	out := make([]MountStatus, len(g.Weapons))
	for i, w := range g.Weapons {
		out[i] = MountStatus{
			Mount:      w.Mount.Name,
			Weapon:     w.Stats.Name,
			Ammunition: w.CurrentAmmo,
			MaxAmmo:    w.Stats.Ammunition,
			Firing:     w.IsFiring,
		}
	}
	return out
}
