package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/milk9111/tileshooter/level"
)

var ErrUnknownKind = errors.New("unknown entity kind")

// Constructor builds an entity from a level placement.
type Constructor func(p level.PlacedEntity) (Entity, error)

// Registry maps placement type ids to constructors.
type Registry struct {
	ctors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register binds kind to ctor, replacing any previous binding. Kinds are
// matched case-insensitively.
func (r *Registry) Register(kind string, ctor Constructor) {
	if r == nil || ctor == nil {
		return
	}
	r.ctors[normalizeKind(kind)] = ctor
}

func (r *Registry) Has(kind string) bool {
	if r == nil {
		return false
	}
	_, ok := r.ctors[normalizeKind(kind)]
	return ok
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.ctors))
	for k := range r.ctors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Build constructs the entity for p.
func (r *Registry) Build(p level.PlacedEntity) (Entity, error) {
	if r == nil {
		return nil, fmt.Errorf("entity: %q: %w", p.Type, ErrUnknownKind)
	}
	ctor, ok := r.ctors[normalizeKind(p.Type)]
	if !ok {
		return nil, fmt.Errorf("entity: %q: %w", p.Type, ErrUnknownKind)
	}
	e, err := ctor(p)
	if err != nil {
		return nil, fmt.Errorf("entity: build %q: %w", p.Type, err)
	}
	return e, nil
}

func normalizeKind(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind))
}
