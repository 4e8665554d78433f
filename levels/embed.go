package levels

import (
	"embed"

	"github.com/milk9111/tileshooter/level"
)

//go:embed *.json
var LevelsFS embed.FS

// Load returns the embedded level with the given basename (".json" optional).
func Load(name string) (*level.Level, error) {
	return level.LoadLevelFromFS(LevelsFS, name)
}
