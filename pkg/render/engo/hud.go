// pkg/render/engo/hud.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"
)

type textEntity struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// HUDSystem keeps a pool of text entities in screen space and rewrites them
// from each frame's text lines.
type HUDSystem struct {
	sink   Sink
	assets *AssetManager
	lines  []*textEntity

	hudColor color.Color
}

// NewHUDSystem creates a new HUD over sink. Text is only shown once the
// assets have loaded a font.
func NewHUDSystem(sink Sink, assets *AssetManager) *HUDSystem {
	return &HUDSystem{
		sink:     sink,
		assets:   assets,
		hudColor: color.RGBA{255, 255, 255, 255},
	}
}

// Sync shows texts and hides any leftover lines.
func (hud *HUDSystem) Sync(texts []TextDraw) {
	font := hud.assets.Font()
	if hud.sink == nil || font == nil {
		return
	}

	for len(hud.lines) < len(texts) {
		hud.lines = append(hud.lines, hud.newLine())
	}
	for i, line := range hud.lines {
		if i >= len(texts) {
			line.Hidden = true
			continue
		}
		line.Hidden = false
		line.Drawable = common.Text{Font: font, Text: texts[i].Text}
		line.Position = texts[i].Position
	}
}

func (hud *HUDSystem) newLine() *textEntity {
	line := &textEntity{BasicEntity: ecs.NewBasic()}
	line.Color = hud.hudColor
	line.SetShader(common.TextHUDShader)
	line.SetZIndex(2)
	hud.sink.Add(&line.BasicEntity, &line.RenderComponent, &line.SpaceComponent)
	return line
}

// Lines returns the number of pooled text entities.
func (hud *HUDSystem) Lines() int {
	return len(hud.lines)
}

// Release removes the text entities from the sink.
func (hud *HUDSystem) Release() {
	if hud.sink != nil {
		for _, line := range hud.lines {
			hud.sink.Remove(line.BasicEntity)
		}
	}
	hud.lines = nil
}
