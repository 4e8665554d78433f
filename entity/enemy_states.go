package entity

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/tileshooter/common"
)

const (
	StatePursue = "pursue"
	StateEngage = "engage"
)

// enemyState is implemented by each enemy behaviour. States hold no data;
// everything lives on the Enemy.
type enemyState interface {
	Enter(e *Enemy)
	Update(e *Enemy, target Target, dt float64)
	Name() string
}

type enemyPursueState struct{}

func (enemyPursueState) Name() string { return StatePursue }
func (enemyPursueState) Enter(e *Enemy) {}
func (enemyPursueState) Update(e *Enemy, target Target, dt float64) {
	e.ensurePath(target)
	e.followPath(dt)
}

type enemyEngageState struct{}

func (enemyEngageState) Name() string { return StateEngage }

// Enter drops the route so pursuit replans from wherever the enemy stands.
func (enemyEngageState) Enter(e *Enemy) {
	e.path = nil
}

func (enemyEngageState) Update(e *Enemy, target Target, dt float64) {
	if e.fireTimer > 0 {
		return
	}
	e.fireAt(target.Position())
	e.fireTimer = e.spec.FireCooldown
}

var (
	stateEnemyPursue enemyState = &enemyPursueState{}
	stateEnemyEngage enemyState = &enemyEngageState{}
)

func enemyStateByName(name string) (enemyState, bool) {
	switch name {
	case StatePursue:
		return stateEnemyPursue, true
	case StateEngage:
		return stateEnemyEngage, true
	default:
		return nil, false
	}
}

// selectState picks pursue or engage by distance, then lets the script
// override the choice.
func (e *Enemy) selectState(target Target) enemyState {
	dist := e.Pos.Distance(target.Position())
	next := stateEnemyPursue
	if dist < e.spec.EngageDistance {
		next = stateEnemyEngage
	}
	if e.script == nil {
		return next
	}

	name, err := e.script.Select(BehaviorInput{
		State:          next.Name(),
		Distance:       dist,
		EngageDistance: e.spec.EngageDistance,
		Health:         e.health,
		MaxHealth:      e.spec.Health,
		HasPath:        len(e.path) > 0,
	})
	if err != nil {
		e.log.WithError(err).Warn("behavior script failed; disabling")
		e.script = nil
		return next
	}
	s, ok := enemyStateByName(name)
	if !ok {
		e.log.WithField("state", name).Warn("behavior script chose unknown state")
		return next
	}
	return s
}

// ensurePath queues a route to target when none is held or, once the repath
// interval has passed, when the target moved to another tile. At most one
// request is outstanding.
func (e *Enemy) ensurePath(target Target) {
	if e.terrain == nil || e.pathPending || e.repathTimer > 0 {
		return
	}
	goal := e.terrain.TilePosition(target.Position())
	if len(e.path) > 0 && e.hasGoal && goal == e.goal {
		return
	}
	e.goal = goal
	e.hasGoal = true
	e.pathPending = true
	e.repathTimer = e.spec.RepathInterval
	e.terrain.RequestPath(e, e.terrain.TilePosition(e.Pos), goal)
}

// followPath steps toward the next waypoint, popping those within the
// arrive radius.
func (e *Enemy) followPath(dt float64) {
	for len(e.path) > 0 && e.Pos.Distance(e.path[0]) <= e.spec.ArriveRadius {
		e.path = e.path[1:]
	}
	if len(e.path) == 0 {
		return
	}
	dir := common.Normalize(e.path[0].Sub(e.Pos))
	step := dir.Mult(e.spec.Speed * dt)
	if d := e.Pos.Distance(e.path[0]); step.Length() > d {
		step = dir.Mult(d)
	}
	e.move(step)
}

func (e *Enemy) move(v cp.Vector) {
	if e.terrain == nil {
		e.Translate(v)
		return
	}
	e.terrain.Move(e, v)
}
