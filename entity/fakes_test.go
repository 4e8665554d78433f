package entity

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/tileshooter/tilemap"
)

type pathCall struct {
	scout    tilemap.Scout
	from, to tilemap.TileCoord
}

// fakeTerrain is an open field of 32px tiles with optional solid tiles.
type fakeTerrain struct {
	solid    map[tilemap.TileCoord]bool
	requests []pathCall
}

func (f *fakeTerrain) TilePosition(v cp.Vector) tilemap.TileCoord {
	return tilemap.WorldToTile(v, 32)
}

func (f *fakeTerrain) RequestPath(scout tilemap.Scout, from, to tilemap.TileCoord) {
	f.requests = append(f.requests, pathCall{scout: scout, from: from, to: to})
}

func (f *fakeTerrain) Move(m tilemap.Mover, v cp.Vector) cp.Vector {
	m.Translate(v)
	return v
}

func (f *fakeTerrain) SolidAt(v cp.Vector) bool {
	return f.solid[f.TilePosition(v)]
}

type recordingSpawner struct {
	spawned []Entity
}

func (r *recordingSpawner) AddEntity(e Entity) {
	r.spawned = append(r.spawned, e)
}

func (r *recordingSpawner) bullets() []*Bullet {
	var out []*Bullet
	for _, e := range r.spawned {
		if b, ok := e.(*Bullet); ok {
			out = append(out, b)
		}
	}
	return out
}

func (r *recordingSpawner) effects() []*HitEffect {
	var out []*HitEffect
	for _, e := range r.spawned {
		if fx, ok := e.(*HitEffect); ok {
			out = append(out, fx)
		}
	}
	return out
}

type hitList []Hittable

func (h hitList) Hittables() []Hittable { return h }

func fixedTarget(t Target) TargetQuery {
	return TargetFunc(func() Target { return t })
}
