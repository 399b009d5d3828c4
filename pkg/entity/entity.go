// pkg/entity/entity.go
package entity

import (
	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-dogfight/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// Entity is the base interface for all simulated objects
type Entity interface {
	GetID() ID
	Position() mgl64.Vec3
	Bounds() physics.Sphere
}

// BaseEntity carries the identity shared by every entity. Ids come from the
// ecs package so that entities can be registered with ecs systems directly.
type BaseEntity struct {
	ecs.BasicEntity
	Radius float64
	Active bool
}

// NewBaseEntity allocates a fresh entity id
func NewBaseEntity(radius float64) BaseEntity {
	return BaseEntity{
		BasicEntity: ecs.NewBasic(),
		Radius:      radius,
		Active:      true,
	}
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return ID(e.BasicEntity.ID())
}
