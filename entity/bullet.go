package entity

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/tileshooter/common"
	"github.com/milk9111/tileshooter/prefabs"
)

type BulletOptions struct {
	Spec    prefabs.BulletSpec
	Damage  int
	Faction Faction
	Terrain Terrain
	Hits    HitQuery
}

// Bullet flies in a straight line until it hits a solid tile, a hostile
// Hittable, or its lifetime runs out.
type Bullet struct {
	Base

	velocity cp.Vector
	lifetime float64
	age      float64
	damage   int
	faction  Faction

	terrain Terrain
	hits    HitQuery
	color   color.Color
}

// NewBullet creates a bullet at pos travelling along the unit vector dir.
func NewBullet(pos, dir cp.Vector, opts BulletOptions) *Bullet {
	spec := withBulletDefaults(opts.Spec)
	damage := opts.Damage
	if damage <= 0 {
		damage = 1
	}
	b := &Bullet{
		Base: Base{
			Pos:      pos,
			Width:    spec.Size,
			Height:   spec.Size,
			Rotation: common.Angle(dir),
		},
		velocity: common.Normalize(dir).Mult(spec.Speed),
		lifetime: spec.Lifetime,
		damage:   damage,
		faction:  opts.Faction,
		terrain:  opts.Terrain,
		hits:     opts.Hits,
		color:    namedColor(spec.Color, colornames.Orange),
	}
	return b
}

func withBulletDefaults(s prefabs.BulletSpec) prefabs.BulletSpec {
	if s.Speed <= 0 {
		s.Speed = 320
	}
	if s.Size <= 0 {
		s.Size = 4
	}
	if s.Lifetime <= 0 {
		s.Lifetime = 2
	}
	return s
}

func (b *Bullet) Faction() Faction { return b.faction }
func (b *Bullet) Velocity() cp.Vector { return b.velocity }

func (b *Bullet) Update(dt float64) {
	if b.Destroyed() {
		return
	}
	b.age += dt
	if b.age >= b.lifetime {
		b.Destroy()
		return
	}

	b.Translate(b.velocity.Mult(dt))
	if b.terrain != nil && b.terrain.SolidAt(b.Pos) {
		b.Destroy()
		return
	}
	if b.hits == nil {
		return
	}

	bounds := b.Bounds()
	dir := common.Normalize(b.velocity)
	for _, h := range b.hits.Hittables() {
		if h.Destroyed() || h.Faction() == b.faction {
			continue
		}
		if !common.Intersects(bounds, h.Bounds()) {
			continue
		}
		h.TakeDamage(b.damage, dir)
		b.Destroy()
		return
	}
}

func (b *Bullet) Draw(screen *ebiten.Image, view View) {
	if screen == nil {
		return
	}
	s := float32(view.scale())
	x, y := view.Project(b.Pos)
	vector.DrawFilledCircle(screen, x, y, float32(b.Width/2)*s, b.color, true)
}
