package entity

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/tileshooter/common"
	"github.com/milk9111/tileshooter/tilemap"
)

// Entity is anything the Manager updates and draws each tick.
type Entity interface {
	Update(dt float64)
	Draw(screen *ebiten.Image, view View)
	Destroyed() bool
}

// System runs once per tick after every entity has been updated.
type System interface {
	Update(dt float64)
}

// Spawner accepts entities created mid-tick (bullets, effects).
type Spawner interface {
	AddEntity(e Entity)
}

// Terrain is the slice of tilemap.Map that moving entities rely on.
type Terrain interface {
	TilePosition(v cp.Vector) tilemap.TileCoord
	RequestPath(scout tilemap.Scout, from, to tilemap.TileCoord)
	Move(m tilemap.Mover, v cp.Vector) cp.Vector
	SolidAt(v cp.Vector) bool
}

type Faction int

const (
	FactionNone Faction = iota
	FactionPlayer
	FactionEnemy
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	default:
		return "none"
	}
}

// Damageable entities lose health when hit. dir is the unit direction the
// hit travelled in.
type Damageable interface {
	Health() int
	TakeDamage(amount int, dir cp.Vector)
}

// Hittable is a Damageable that projectiles can collide with.
type Hittable interface {
	Damageable
	Bounds() cp.BB
	Faction() Faction
	Destroyed() bool
}

// HitQuery lists the current collision candidates for projectiles.
type HitQuery interface {
	Hittables() []Hittable
}

// Target is something enemies chase.
type Target interface {
	Position() cp.Vector
	Destroyed() bool
}

// TargetQuery resolves the current target, or nil when there is none.
type TargetQuery interface {
	Target() Target
}

// TargetFunc adapts a function to TargetQuery.
type TargetFunc func() Target

func (f TargetFunc) Target() Target {
	if f == nil {
		return nil
	}
	return f()
}

// View maps world coordinates to screen coordinates for top-down drawing.
type View struct {
	X, Y float64
	Zoom float64
}

func (v View) scale() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// Project returns the screen position of world point p.
func (v View) Project(p cp.Vector) (float32, float32) {
	s := v.scale()
	return float32((p.X - v.X) * s), float32((p.Y - v.Y) * s)
}

// Base holds the state every world entity shares. Pos is the box centre.
type Base struct {
	Pos      cp.Vector
	Width    float64
	Height   float64
	Rotation float64

	destroyed bool
}

func (b *Base) Bounds() cp.BB {
	return common.BoxAt(b.Pos, b.Width, b.Height)
}

func (b *Base) Translate(delta cp.Vector) {
	b.Pos = b.Pos.Add(delta)
}

func (b *Base) Position() cp.Vector { return b.Pos }

// Destroy flags the entity; the Manager removes it on its next sweep.
func (b *Base) Destroy() { b.destroyed = true }

func (b *Base) Destroyed() bool { return b.destroyed }
