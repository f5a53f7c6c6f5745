// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"
)

// FontURL is the name the bundled HUD font is registered under.
const FontURL = "goregular.ttf"

// Sprite names
const (
	SpriteScooter = "scooter"
	SpriteMarker  = "marker"
)

var spritePatterns = map[string][]string{
	// Nose points up the screen, which is yaw 0.
	SpriteScooter: {
		"...##...",
		"..####..",
		"..#..#..",
		"...##...",
		"...##...",
		"...##...",
		"..####..",
		"..#..#..",
		"..####..",
		"...##...",
	},
	SpriteMarker: {
		"...####...",
		".##....##.",
		".#......#.",
		"#........#",
		"#...##...#",
		"#...##...#",
		"#........#",
		".#......#.",
		".##....##.",
		"...####...",
	},
}

// AssetManager builds the sprites and the HUD font.
type AssetManager struct {
	sprites map[string]common.Drawable
	font    *common.Font
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		sprites: make(map[string]common.Drawable),
	}
}

// PreloadFont registers the bundled font with engo's file loader.
func PreloadFont() error {
	if err := engo.Files.LoadReaderData(FontURL, bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("loading font: %w", err)
	}
	return nil
}

// LoadAssets uploads every sprite and prepares the font. It needs a GL
// context, and PreloadFont must have run.
func (am *AssetManager) LoadAssets(fontSize float64) error {
	for name, pattern := range spritePatterns {
		am.sprites[name] = common.NewTextureSingle(common.NewImageObject(patternImage(pattern, color.White)))
	}

	font := &common.Font{
		URL:  FontURL,
		FG:   color.White,
		Size: fontSize,
	}
	if err := font.CreatePreloaded(); err != nil {
		return fmt.Errorf("preparing font: %w", err)
	}
	am.font = font
	return nil
}

// patternImage rasterises a pattern; '#' is an opaque pixel.
func patternImage(pattern []string, fill color.Color) *image.NRGBA {
	width := 0
	for _, row := range pattern {
		if len(row) > width {
			width = len(row)
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, len(pattern)))
	for y, row := range pattern {
		for x, pixel := range row {
			if pixel == '#' {
				img.Set(x, y, fill)
			}
		}
	}
	return img
}

// Sprite returns a loaded sprite, or nil before LoadAssets.
func (am *AssetManager) Sprite(name string) common.Drawable {
	return am.sprites[name]
}

// Font returns the HUD font, or nil before LoadAssets.
func (am *AssetManager) Font() *common.Font {
	return am.font
}
