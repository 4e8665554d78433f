package entity

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/tileshooter/common"
)

const (
	hitEffectParticles = 6
	hitEffectSpread    = math.Pi / 3
	hitEffectSpeed     = 90.0
	hitEffectLifetime  = 0.3
)

type particle struct {
	pos cp.Vector
	vel cp.Vector
}

// HitEffect is a short cosmetic burst of particles fanned around a direction.
type HitEffect struct {
	Base

	particles []particle
	age       float64
	lifetime  float64
	color     color.Color
}

// NewHitEffect bursts particles from pos, centred on dir.
func NewHitEffect(pos, dir cp.Vector, clr color.Color) *HitEffect {
	fx := &HitEffect{
		Base:     Base{Pos: pos},
		lifetime: hitEffectLifetime,
		color:    clr,
	}
	heading := common.Angle(dir)
	if dir.Length() < common.Epsilon {
		heading = 0
	}
	for i := 0; i < hitEffectParticles; i++ {
		t := float64(i)/float64(hitEffectParticles-1) - 0.5
		a := heading + t*hitEffectSpread
		fx.particles = append(fx.particles, particle{
			pos: pos,
			vel: cp.ForAngle(a).Mult(hitEffectSpeed),
		})
	}
	return fx
}

// Heading returns the mean direction of the burst.
func (fx *HitEffect) Heading() cp.Vector {
	var sum cp.Vector
	for _, p := range fx.particles {
		sum = sum.Add(p.vel)
	}
	return common.Normalize(sum)
}

func (fx *HitEffect) Update(dt float64) {
	if fx.Destroyed() {
		return
	}
	fx.age += dt
	if fx.age >= fx.lifetime {
		fx.Destroy()
		return
	}
	for i := range fx.particles {
		fx.particles[i].pos = fx.particles[i].pos.Add(fx.particles[i].vel.Mult(dt))
	}
}

func (fx *HitEffect) Draw(screen *ebiten.Image, view View) {
	if screen == nil {
		return
	}
	s := float32(view.scale())
	size := 3 * s * float32(1-fx.age/fx.lifetime)
	for _, p := range fx.particles {
		x, y := view.Project(p.pos)
		vector.DrawFilledRect(screen, x-size/2, y-size/2, size, size, fx.color, false)
	}
}
