package damage

import "sync"

// Manager is a lookup table from aircraft id to damage model. Each model is
// owned by exactly one aircraft; the manager never mutates across aircraft.
type Manager struct {
	mu     sync.RWMutex
	models map[uint64]*Model
}

// NewManager creates an empty manager
func NewManager() *Manager {
	return &Manager{models: make(map[uint64]*Model)}
}

// Create registers a fresh model for id, replacing any existing one
func (m *Manager) Create(id uint64) *Model {
	model := NewModel()
	m.mu.Lock()
	m.models[id] = model
	m.mu.Unlock()
	return model
}

// Register records an existing model under id, replacing any previous one
func (m *Manager) Register(id uint64, model *Model) {
	m.mu.Lock()
	m.models[id] = model
	m.mu.Unlock()
}

// Get returns the model for id
func (m *Manager) Get(id uint64) (*Model, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	model, ok := m.models[id]
	return model, ok
}

// Remove drops the model for id
func (m *Manager) Remove(id uint64) {
	m.mu.Lock()
	delete(m.models, id)
	m.mu.Unlock()
}

// Reset restores the model for id, reporting whether it exists
func (m *Manager) Reset(id uint64) bool {
	model, ok := m.Get(id)
	if ok {
		model.Reset()
	}
	return ok
}

// Len returns the number of registered models
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.models)
}
