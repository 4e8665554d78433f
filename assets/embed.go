package assets

import (
	"bytes"
	"embed"
	"image"
	_ "image/png"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed tilesets/*.png
var assetsFS embed.FS

var (
	imageMu    sync.Mutex
	imageCache = map[string]*ebiten.Image{}
)

// LoadImage returns the embedded image at an assets-relative path. Images are
// decoded once and shared.
func LoadImage(path string) (*ebiten.Image, error) {
	clean := cleanAssetPath(path)
	imageMu.Lock()
	defer imageMu.Unlock()
	if img, ok := imageCache[clean]; ok {
		return img, nil
	}
	decoded, err := DecodeImage(clean)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(decoded)
	imageCache[clean] = img
	return img, nil
}

// DecodeImage decodes an embedded image without uploading it to the GPU.
func DecodeImage(path string) (image.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	return strings.TrimPrefix(s, "assets/")
}
