// pkg/entity/entity_test.go
package entity

import "testing"

func TestNewBaseEntity_UniqueIDs(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		e := NewBaseEntity(5)
		id := e.GetID()
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
		if !e.Active {
			t.Errorf("new entity should be active")
		}
		if e.Radius != 5 {
			t.Errorf("Radius = %v, want 5", e.Radius)
		}
	}
}
