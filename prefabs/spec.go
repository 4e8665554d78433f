package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SimSpec tunes the simulation core.
type SimSpec struct {
	CollisionLayer string        `yaml:"collision_layer"`
	WallLayer      string        `yaml:"wall_layer"`
	PathQueue      PathQueueSpec `yaml:"path_queue"`
	FOV            float64       `yaml:"fov"`
	ShowPaths      bool          `yaml:"show_paths"`
}

type PathQueueSpec struct {
	BatchDivisor   int `yaml:"batch_divisor"`
	MaxSearchNodes int `yaml:"max_search_nodes"`
}

func LoadSimSpec() (SimSpec, error) {
	return LoadSpec[SimSpec]("sim.yaml")
}

type EnemySpec struct {
	Name           string  `yaml:"name"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Speed          float64 `yaml:"speed"`
	Health         int     `yaml:"health"`
	Damage         int     `yaml:"damage"`
	FireCooldown   float64 `yaml:"fire_cooldown"`
	EngageDistance float64 `yaml:"engage_distance"`
	RepathInterval float64 `yaml:"repath_interval"`
	ArriveRadius   float64 `yaml:"arrive_radius"`
	Color          string  `yaml:"color"`
	Script         string  `yaml:"script"`
}

func LoadEnemySpec() (EnemySpec, error) {
	return LoadSpec[EnemySpec]("enemy.yaml")
}

type PlayerSpec struct {
	Name         string  `yaml:"name"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`
	TurnSpeed    float64 `yaml:"turn_speed"`
	Health       int     `yaml:"health"`
	Damage       int     `yaml:"damage"`
	FireCooldown float64 `yaml:"fire_cooldown"`
	Color        string  `yaml:"color"`
}

func LoadPlayerSpec() (PlayerSpec, error) {
	return LoadSpec[PlayerSpec]("player.yaml")
}

type BulletSpec struct {
	Speed    float64 `yaml:"speed"`
	Size     float64 `yaml:"size"`
	Lifetime float64 `yaml:"lifetime"`
	Color    string  `yaml:"color"`
}

func LoadBulletSpec() (BulletSpec, error) {
	return LoadSpec[BulletSpec]("bullet.yaml")
}
