package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const woundedScript = `
limit := engage_distance
if health * 4 <= max_health {
	limit = engage_distance / 2
}
if distance < limit {
	state = "engage"
} else {
	state = "pursue"
}
`

func TestBehaviorScriptSelect(t *testing.T) {
	script, err := NewBehaviorScript("wounded", []byte(woundedScript))
	require.NoError(t, err)

	cases := []struct {
		name string
		in   BehaviorInput
		want string
	}{
		{"healthy_in_range", BehaviorInput{Distance: 90, EngageDistance: 100, Health: 4, MaxHealth: 4}, StateEngage},
		{"healthy_at_limit", BehaviorInput{Distance: 100, EngageDistance: 100, Health: 4, MaxHealth: 4}, StatePursue},
		{"healthy_out_of_range", BehaviorInput{Distance: 150, EngageDistance: 100, Health: 4, MaxHealth: 4}, StatePursue},
		{"wounded_closes_in", BehaviorInput{Distance: 90, EngageDistance: 100, Health: 1, MaxHealth: 4}, StatePursue},
		{"wounded_close", BehaviorInput{Distance: 40, EngageDistance: 100, Health: 1, MaxHealth: 4}, StateEngage},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := script.Clone().Select(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestBehaviorScriptKeepsStateWhenUnset(t *testing.T) {
	script, err := NewBehaviorScript("noop", []byte(`x := 1`))
	require.NoError(t, err)
	got, err := script.Select(BehaviorInput{State: StatePursue})
	require.NoError(t, err)
	assert.Equal(t, StatePursue, got)
}

func TestBehaviorScriptErrors(t *testing.T) {
	_, err := NewBehaviorScript("broken", []byte(`state = `))
	assert.Error(t, err)

	script, err := NewBehaviorScript("div", []byte(`state = 1 / health`))
	require.NoError(t, err)
	got, err := script.Select(BehaviorInput{State: StateEngage})
	assert.Error(t, err)
	assert.Equal(t, StateEngage, got)
}

func TestNilBehaviorScript(t *testing.T) {
	var s *BehaviorScript
	got, err := s.Select(BehaviorInput{State: StateEngage})
	require.NoError(t, err)
	assert.Equal(t, StateEngage, got)
	assert.Nil(t, s.Clone())
}
