package entity

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/tileshooter/logger"
)

// Manager owns the live entities and the systems that run after them.
//
// Update walks a snapshot of the entity list, so entities added during the
// tick are first updated on the next one. Destroyed entities are removed in a
// single sweep at the end of Update; until then they are still drawn.
type Manager struct {
	entities []Entity
	systems  []System
	log      logrus.FieldLogger
}

func NewManager() *Manager {
	return &Manager{log: logger.For("entities")}
}

// SetLogger replaces the manager's logger.
func (m *Manager) SetLogger(l logrus.FieldLogger) {
	if m == nil || l == nil {
		return
	}
	m.log = l
}

// AddEntity appends e to the update and draw order.
func (m *Manager) AddEntity(e Entity) {
	if m == nil || e == nil {
		return
	}
	m.entities = append(m.entities, e)
}

// AddSystem appends a post-update system.
func (m *Manager) AddSystem(s System) {
	if m == nil || s == nil {
		return
	}
	m.systems = append(m.systems, s)
}

// Update advances every entity once, runs the systems in order, then drops
// destroyed entities.
func (m *Manager) Update(dt float64) {
	if m == nil {
		return
	}
	snapshot := m.entities[:len(m.entities):len(m.entities)]
	for _, e := range snapshot {
		if e.Destroyed() {
			continue
		}
		e.Update(dt)
	}
	for _, s := range m.systems {
		s.Update(dt)
	}
	m.sweep()
}

// Draw renders entities in insertion order.
func (m *Manager) Draw(screen *ebiten.Image, view View) {
	if m == nil {
		return
	}
	for _, e := range m.entities {
		e.Draw(screen, view)
	}
}

// Entities returns a copy of the current entity list.
func (m *Manager) Entities() []Entity {
	if m == nil {
		return nil
	}
	out := make([]Entity, len(m.entities))
	copy(out, m.entities)
	return out
}

func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entities)
}

// Hittables returns the live entities projectiles can collide with.
func (m *Manager) Hittables() []Hittable {
	if m == nil {
		return nil
	}
	var out []Hittable
	for _, e := range m.entities {
		if h, ok := e.(Hittable); ok && !h.Destroyed() {
			out = append(out, h)
		}
	}
	return out
}

// Clear drops every entity. Systems are kept.
func (m *Manager) Clear() {
	if m == nil {
		return
	}
	clear(m.entities)
	m.entities = m.entities[:0]
}

func (m *Manager) sweep() {
	write := 0
	for _, e := range m.entities {
		if e.Destroyed() {
			continue
		}
		m.entities[write] = e
		write++
	}
	if removed := len(m.entities) - write; removed > 0 {
		m.log.WithField("removed", removed).Debug("swept destroyed entities")
	}
	clear(m.entities[write:])
	m.entities = m.entities[:write]
}
