package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-dogfight/pkg/autopilot"
	"github.com/opd-ai/go-dogfight/pkg/config"
	"github.com/opd-ai/go-dogfight/pkg/entity"
)

// spawnRadius is the distance from the origin at which the roster is spread
const spawnRadius = 1500.0

// slot is one aircraft of the roster and the autopilot that flies it
type slot struct {
	Type     config.AircraftType
	Behavior autopilot.Behavior
}

// parseRoster reads a comma separated list of type[:behavior] entries, e.g.
// "spitfire:aggressor,bf109:defender". The behavior defaults to aggressor.
func parseRoster(spec string) ([]slot, error) {
	var slots []slot
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		typeName, behaviorName, hasBehavior := strings.Cut(entry, ":")
		t, err := config.ParseAircraftType(typeName)
		if err != nil {
			return nil, err
		}

		b := autopilot.BehaviorAggressor
		if hasBehavior {
			if b, err = autopilot.ParseBehavior(behaviorName); err != nil {
				return nil, err
			}
		}
		slots = append(slots, slot{Type: t, Behavior: b})
	}

	if len(slots) == 0 {
		return nil, fmt.Errorf("roster %q names no aircraft", spec)
	}
	return slots, nil
}

// spawnFor places slot i of n on a circle around the origin, nose toward the centre
func spawnFor(i, n int, altitude float64) entity.Spawn {
	angle := 2 * math.Pi * float64(i) / float64(n)
	pos := mgl64.Vec3{spawnRadius * math.Cos(angle), altitude, spawnRadius * math.Sin(angle)}
	return entity.Spawn{
		Position: pos,
		Heading:  math.Atan2(pos.X(), pos.Z()),
	}
}
