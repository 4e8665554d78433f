package entity

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"

	"github.com/milk9111/tileshooter/common"
	"github.com/milk9111/tileshooter/logger"
	"github.com/milk9111/tileshooter/prefabs"
	"github.com/milk9111/tileshooter/tilemap"
)

// EnemyOptions wires an enemy into its surroundings. Any field may be left
// nil; the enemy then simply skips what it cannot do.
type EnemyOptions struct {
	Spec     prefabs.EnemySpec
	Bullet   prefabs.BulletSpec
	Terrain  Terrain
	Targets  TargetQuery
	Spawner  Spawner
	Hits     HitQuery
	Script   *BehaviorScript
	ShowPath bool
}

// Enemy chases its target along queued paths and shoots once in range.
type Enemy struct {
	Base

	spec   prefabs.EnemySpec
	bullet prefabs.BulletSpec
	health int
	state  enemyState

	terrain Terrain
	targets TargetQuery
	spawner Spawner
	hits    HitQuery
	script  *BehaviorScript

	path        []cp.Vector
	pathPending bool
	goal        tilemap.TileCoord
	hasGoal     bool
	repathTimer float64
	fireTimer   float64

	showPath bool
	color    color.Color
	log      logrus.FieldLogger
}

// NewEnemy creates an enemy centred on pos in the pursue state.
func NewEnemy(pos cp.Vector, opts EnemyOptions) *Enemy {
	spec := withEnemyDefaults(opts.Spec)
	e := &Enemy{
		Base: Base{
			Pos:    pos,
			Width:  spec.Width,
			Height: spec.Height,
		},
		spec:     spec,
		bullet:   withBulletDefaults(opts.Bullet),
		health:   spec.Health,
		state:    stateEnemyPursue,
		terrain:  opts.Terrain,
		targets:  opts.Targets,
		spawner:  opts.Spawner,
		hits:     opts.Hits,
		script:   opts.Script,
		showPath: opts.ShowPath,
		color:    namedColor(spec.Color, colornames.Crimson),
		log:      logger.For("enemy"),
	}
	e.state.Enter(e)
	return e
}

func withEnemyDefaults(s prefabs.EnemySpec) prefabs.EnemySpec {
	if s.Width <= 0 {
		s.Width = 24
	}
	if s.Height <= 0 {
		s.Height = 24
	}
	if s.Speed <= 0 {
		s.Speed = 64
	}
	if s.Health <= 0 {
		s.Health = 3
	}
	if s.Damage <= 0 {
		s.Damage = 1
	}
	if s.FireCooldown <= 0 {
		s.FireCooldown = 1
	}
	if s.EngageDistance <= 0 {
		s.EngageDistance = 128
	}
	if s.RepathInterval < 0 {
		s.RepathInterval = 0
	}
	if s.ArriveRadius <= 0 {
		s.ArriveRadius = 2
	}
	return s
}

// SetLogger replaces the enemy's logger.
func (e *Enemy) SetLogger(l logrus.FieldLogger) {
	if l != nil {
		e.log = l
	}
}

func (e *Enemy) State() string { return e.state.Name() }
func (e *Enemy) Health() int { return e.health }
func (e *Enemy) Faction() Faction { return FactionEnemy }

// Path returns the waypoints still ahead of the enemy.
func (e *Enemy) Path() []cp.Vector { return e.path }

// PathPending reports whether a path request is outstanding.
func (e *Enemy) PathPending() bool { return e.pathPending }

// SetShowPath toggles drawing of the held path.
func (e *Enemy) SetShowPath(on bool) { e.showPath = on }

// ReceivePath takes delivery of a queued route. Deliveries after the enemy
// has been destroyed are ignored.
func (e *Enemy) ReceivePath(waypoints []cp.Vector) {
	if e.Destroyed() {
		return
	}
	e.pathPending = false
	e.path = append(e.path[:0:0], waypoints...)
}

// TakeDamage subtracts amount from health, bursts a hit effect away from the
// shooter and destroys the enemy when health runs out.
func (e *Enemy) TakeDamage(amount int, dir cp.Vector) {
	if e.Destroyed() || amount <= 0 {
		return
	}
	e.health -= amount
	if e.spawner != nil {
		e.spawner.AddEntity(NewHitEffect(e.Pos, dir.Neg(), e.color))
	}
	if e.health <= 0 {
		e.log.WithField("pos", e.Pos).Debug("enemy destroyed")
		e.Destroy()
	}
}

func (e *Enemy) Update(dt float64) {
	if e.Destroyed() {
		return
	}
	e.fireTimer = max(0, e.fireTimer-dt)
	e.repathTimer = max(0, e.repathTimer-dt)

	target := e.currentTarget()
	if target == nil {
		return
	}
	e.face(target.Position())
	e.setState(e.selectState(target))
	e.state.Update(e, target, dt)
}

func (e *Enemy) currentTarget() Target {
	if e.targets == nil {
		return nil
	}
	t := e.targets.Target()
	if t == nil || t.Destroyed() {
		return nil
	}
	return t
}

func (e *Enemy) setState(s enemyState) {
	if s == nil || s == e.state {
		return
	}
	e.log.WithFields(logrus.Fields{"from": e.state.Name(), "to": s.Name()}).Debug("enemy state change")
	e.state = s
	e.state.Enter(e)
}

func (e *Enemy) face(p cp.Vector) {
	d := p.Sub(e.Pos)
	if d.Length() < common.Epsilon {
		return
	}
	e.Rotation = common.Angle(d)
}

func (e *Enemy) fireAt(p cp.Vector) {
	if e.spawner == nil {
		return
	}
	dir := common.Normalize(p.Sub(e.Pos))
	if dir.Length() == 0 {
		return
	}
	muzzle := e.Pos.Add(dir.Mult(max(e.Width, e.Height) / 2))
	e.spawner.AddEntity(NewBullet(muzzle, dir, BulletOptions{
		Spec:    e.bullet,
		Damage:  e.spec.Damage,
		Faction: FactionEnemy,
		Terrain: e.terrain,
		Hits:    e.hits,
	}))
}

func (e *Enemy) Draw(screen *ebiten.Image, view View) {
	if screen == nil {
		return
	}
	s := float32(view.scale())
	x, y := view.Project(e.Pos)
	w, h := float32(e.Width)*s, float32(e.Height)*s
	vector.DrawFilledRect(screen, x-w/2, y-h/2, w, h, e.color, false)

	tip := e.Pos.Add(cp.ForAngle(e.Rotation).Mult(e.Width))
	tx, ty := view.Project(tip)
	vector.StrokeLine(screen, x, y, tx, ty, 2, colornames.White, false)

	if !e.showPath || len(e.path) == 0 {
		return
	}
	px, py := x, y
	for _, wp := range e.path {
		wx, wy := view.Project(wp)
		vector.StrokeLine(screen, px, py, wx, wy, 1, colornames.Yellow, false)
		px, py = wx, wy
	}
}

// namedColor accepts an SVG colour name or a hex string.
func namedColor(name string, fallback color.RGBA) color.Color {
	if c, ok := colornames.Map[name]; ok {
		return c
	}
	if c, err := common.ParseHexColor(name); err == nil {
		return c
	}
	return fallback
}
