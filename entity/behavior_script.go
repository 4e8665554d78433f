package entity

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// BehaviorInput is what a behaviour script sees each tick.
type BehaviorInput struct {
	State          string
	Distance       float64
	EngageDistance float64
	Health         int
	MaxHealth      int
	HasPath        bool
}

// BehaviorScript runs a tengo program that picks an enemy state by assigning
// the global `state`. Leaving `state` unchanged keeps the caller's choice.
type BehaviorScript struct {
	name     string
	compiled *tengo.Compiled
}

// NewBehaviorScript compiles src. name is only used in error messages.
func NewBehaviorScript(name string, src []byte) (*BehaviorScript, error) {
	script := tengo.NewScript(src)
	_ = script.Add("state", "")
	_ = script.Add("distance", 0.0)
	_ = script.Add("engage_distance", 0.0)
	_ = script.Add("health", 0)
	_ = script.Add("max_health", 0)
	_ = script.Add("has_path", false)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("entity: compile script %s: %w", name, err)
	}
	return &BehaviorScript{name: name, compiled: compiled}, nil
}

func (s *BehaviorScript) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Clone returns an independent copy sharing the compiled bytecode.
func (s *BehaviorScript) Clone() *BehaviorScript {
	if s == nil {
		return nil
	}
	return &BehaviorScript{name: s.name, compiled: s.compiled.Clone()}
}

// Select runs the script and returns the state it chose.
func (s *BehaviorScript) Select(in BehaviorInput) (string, error) {
	if s == nil || s.compiled == nil {
		return in.State, nil
	}
	c := s.compiled
	for _, kv := range []struct {
		name  string
		value any
	}{
		{"state", in.State},
		{"distance", in.Distance},
		{"engage_distance", in.EngageDistance},
		{"health", in.Health},
		{"max_health", in.MaxHealth},
		{"has_path", in.HasPath},
	} {
		if err := c.Set(kv.name, kv.value); err != nil {
			return in.State, fmt.Errorf("entity: script %s: set %s: %w", s.name, kv.name, err)
		}
	}
	if err := c.Run(); err != nil {
		return in.State, fmt.Errorf("entity: script %s: %w", s.name, err)
	}
	out := strings.TrimSpace(c.Get("state").String())
	if out == "" {
		return in.State, nil
	}
	return out, nil
}
