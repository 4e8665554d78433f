package entity

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"

	"github.com/milk9111/tileshooter/common"
	"github.com/milk9111/tileshooter/logger"
	"github.com/milk9111/tileshooter/prefabs"
)

// ViewMode selects how the player moves and how the game is drawn.
type ViewMode int

const (
	ModeTopDown ViewMode = iota
	ModeFirstPerson
)

func (m ViewMode) String() string {
	if m == ModeFirstPerson {
		return "first_person"
	}
	return "top_down"
}

// Controls is the per-tick input snapshot the game shell hands the player.
// MoveX/MoveY are in [-1, 1]; in first person MoveY < 0 walks forward.
type Controls struct {
	MoveX, MoveY float64
	Turn         float64
	Aim          cp.Vector
	HasAim       bool
	Fire         bool
}

type PlayerOptions struct {
	Spec    prefabs.PlayerSpec
	Bullet  prefabs.BulletSpec
	Terrain Terrain
	Spawner Spawner
	Hits    HitQuery
	Mode    ViewMode
}

// Player is the entity enemies hunt.
type Player struct {
	Base

	spec    prefabs.PlayerSpec
	bullet  prefabs.BulletSpec
	health  int
	mode    ViewMode
	heading float64 // degrees

	controls  Controls
	fireTimer float64

	terrain Terrain
	spawner Spawner
	hits    HitQuery

	color color.Color
	log   logrus.FieldLogger
}

func NewPlayer(pos cp.Vector, opts PlayerOptions) *Player {
	spec := withPlayerDefaults(opts.Spec)
	return &Player{
		Base: Base{
			Pos:    pos,
			Width:  spec.Width,
			Height: spec.Height,
		},
		spec:    spec,
		bullet:  withBulletDefaults(opts.Bullet),
		health:  spec.Health,
		mode:    opts.Mode,
		terrain: opts.Terrain,
		spawner: opts.Spawner,
		hits:    opts.Hits,
		color:   namedColor(spec.Color, colornames.Dodgerblue),
		log:     logger.For("player"),
	}
}

func withPlayerDefaults(s prefabs.PlayerSpec) prefabs.PlayerSpec {
	if s.Width <= 0 {
		s.Width = 20
	}
	if s.Height <= 0 {
		s.Height = 20
	}
	if s.Speed <= 0 {
		s.Speed = 120
	}
	if s.TurnSpeed <= 0 {
		s.TurnSpeed = 180
	}
	if s.Health <= 0 {
		s.Health = 10
	}
	if s.Damage <= 0 {
		s.Damage = 1
	}
	if s.FireCooldown <= 0 {
		s.FireCooldown = 0.25
	}
	return s
}

func (p *Player) Health() int { return p.health }
func (p *Player) Faction() Faction { return FactionPlayer }
func (p *Player) Mode() ViewMode { return p.mode }

// Heading returns the facing angle in degrees.
func (p *Player) Heading() float64 { return p.heading }

// Forward returns the unit facing vector.
func (p *Player) Forward() cp.Vector { return common.DirectionFromDegrees(p.heading) }

func (p *Player) SetMode(m ViewMode) {
	if m == p.mode {
		return
	}
	p.mode = m
	p.log.WithField("mode", m).Info("view mode changed")
}

func (p *Player) SetControls(c Controls) {
	p.controls = c
}

func (p *Player) TakeDamage(amount int, dir cp.Vector) {
	if p.Destroyed() || amount <= 0 {
		return
	}
	p.health -= amount
	if p.spawner != nil {
		p.spawner.AddEntity(NewHitEffect(p.Pos, dir.Neg(), p.color))
	}
	p.log.WithField("health", p.health).Debug("player hit")
	if p.health <= 0 {
		p.log.Info("player died")
		p.Destroy()
	}
}

func (p *Player) Update(dt float64) {
	if p.Destroyed() {
		return
	}
	p.fireTimer = max(0, p.fireTimer-dt)
	c := p.controls

	var v cp.Vector
	switch p.mode {
	case ModeFirstPerson:
		p.heading = math.Mod(p.heading+c.Turn*p.spec.TurnSpeed*dt+360, 360)
		fwd := common.DirectionFromDegrees(p.heading)
		right := cp.Vector{X: -fwd.Y, Y: fwd.X}
		v = fwd.Mult(-c.MoveY).Add(right.Mult(c.MoveX))
	default:
		v = cp.Vector{X: c.MoveX, Y: c.MoveY}
		if c.HasAim {
			if d := c.Aim.Sub(p.Pos); d.Length() > common.Epsilon {
				p.heading = common.Angle(d) * 180 / math.Pi
			}
		}
	}
	p.Rotation = p.heading * math.Pi / 180

	if step := common.Normalize(v).Mult(p.spec.Speed * dt); step.Length() > 0 {
		if p.terrain != nil {
			p.terrain.Move(p, step)
		} else {
			p.Translate(step)
		}
	}

	if c.Fire && p.fireTimer <= 0 {
		p.fire()
		p.fireTimer = p.spec.FireCooldown
	}
}

func (p *Player) fire() {
	if p.spawner == nil {
		return
	}
	dir := p.Forward()
	muzzle := p.Pos.Add(dir.Mult(max(p.Width, p.Height) / 2))
	p.spawner.AddEntity(NewBullet(muzzle, dir, BulletOptions{
		Spec:    p.bullet,
		Damage:  p.spec.Damage,
		Faction: FactionPlayer,
		Terrain: p.terrain,
		Hits:    p.hits,
	}))
}

func (p *Player) Draw(screen *ebiten.Image, view View) {
	if screen == nil || p.mode == ModeFirstPerson {
		return
	}
	s := float32(view.scale())
	x, y := view.Project(p.Pos)
	w, h := float32(p.Width)*s, float32(p.Height)*s
	vector.DrawFilledRect(screen, x-w/2, y-h/2, w, h, p.color, false)
	tx, ty := view.Project(p.Pos.Add(p.Forward().Mult(p.Width)))
	vector.StrokeLine(screen, x, y, tx, ty, 2, colornames.White, false)
}
