// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-ssorf/pkg/entity"
	"github.com/opd-ai/go-ssorf/pkg/physics"
)

// minSpriteSize keeps distant sprites visible when zoomed out.
const minSpriteSize = 8

// Sink receives the entities a renderer creates. common.RenderSystem is the
// sink used in the game.
type Sink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// SpriteDraw is one sprite placed on the screen. Position is the sprite
// center in pixels; Rotation is in degrees, clockwise.
type SpriteDraw struct {
	Sprite   string
	Position engo.Point
	Rotation float32
	Size     float32
	Color    color.Color
}

// TextDraw is a line of HUD text. Position is the top-left in pixels.
type TextDraw struct {
	Position engo.Point
	Text     string
}

// Frame is everything drawn between Clear and Present.
type Frame struct {
	Sprites []SpriteDraw
	Texts   []TextDraw
}

type spriteEntity struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// EngoRenderer implements entity.Renderer on top of an engo render system.
// Draw calls build a Frame; Present pushes it into pooled ecs entities.
type EngoRenderer struct {
	sink   Sink
	camera *CameraSystem
	assets *AssetManager
	hud    *HUDSystem

	frame   Frame
	sprites []*spriteEntity

	vehicleColor color.Color
	markerColor  color.Color
}

// NewEngoRenderer creates a renderer. A nil sink builds frames without
// displaying them.
func NewEngoRenderer(sink Sink, camera *CameraSystem, assets *AssetManager) *EngoRenderer {
	if camera == nil {
		camera = NewCameraSystem(800, 600)
	}
	if assets == nil {
		assets = NewAssetManager()
	}
	return &EngoRenderer{
		sink:         sink,
		camera:       camera,
		assets:       assets,
		hud:          NewHUDSystem(sink, assets),
		vehicleColor: color.RGBA{255, 200, 40, 255},
		markerColor:  color.RGBA{40, 220, 90, 255},
	}
}

// Frame returns the frame built since the last Clear.
func (r *EngoRenderer) Frame() Frame {
	return r.frame
}

// Camera returns the camera used for world positions.
func (r *EngoRenderer) Camera() *CameraSystem {
	return r.camera
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	r.frame.Sprites = r.frame.Sprites[:0]
	r.frame.Texts = r.frame.Texts[:0]
}

// RenderVehicle implements entity.Renderer. The camera follows the vehicle.
func (r *EngoRenderer) RenderVehicle(vehicle *entity.Vehicle) {
	r.camera.SetTarget(vehicle.GetPosition())
	collider := vehicle.GetCollider()

	r.frame.Sprites = append(r.frame.Sprites, SpriteDraw{
		Sprite:   SpriteScooter,
		Position: r.camera.WorldToScreen(collider.Center),
		Rotation: yawToRotation(vehicle.Yaw()),
		Size:     r.spriteSize(collider.Radius),
		Color:    r.vehicleColor,
	})
}

// RenderMarker implements entity.Renderer
func (r *EngoRenderer) RenderMarker(area physics.Circle) {
	r.frame.Sprites = append(r.frame.Sprites, SpriteDraw{
		Sprite:   SpriteMarker,
		Position: r.camera.WorldToScreen(area.Center),
		Size:     r.spriteSize(area.Radius),
		Color:    r.markerColor,
	})
}

// RenderText implements entity.Renderer
func (r *EngoRenderer) RenderText(x, y int, text string) {
	r.frame.Texts = append(r.frame.Texts, TextDraw{
		Position: engo.Point{X: float32(x), Y: float32(y)},
		Text:     text,
	})
}

// Present implements entity.Renderer
func (r *EngoRenderer) Present() {
	if r.sink == nil {
		return
	}

	for len(r.sprites) < len(r.frame.Sprites) {
		r.sprites = append(r.sprites, r.newSpriteEntity())
	}
	for i, e := range r.sprites {
		if i >= len(r.frame.Sprites) {
			e.Hidden = true
			continue
		}
		draw := r.frame.Sprites[i]
		e.Hidden = false
		e.Drawable = r.assets.Sprite(draw.Sprite)
		e.Color = draw.Color
		if e.Drawable != nil {
			e.Scale = engo.Point{X: draw.Size / e.Drawable.Width(), Y: draw.Size / e.Drawable.Height()}
		}
		e.Width = draw.Size
		e.Height = draw.Size
		e.Rotation = draw.Rotation
		e.SetCenter(draw.Position)
	}

	r.hud.Sync(r.frame.Texts)
}

func (r *EngoRenderer) newSpriteEntity() *spriteEntity {
	e := &spriteEntity{BasicEntity: ecs.NewBasic()}
	e.SetShader(common.HUDShader)
	e.SetZIndex(1)
	r.sink.Add(&e.BasicEntity, &e.RenderComponent, &e.SpaceComponent)
	return e
}

// Release removes every pooled entity from the sink.
func (r *EngoRenderer) Release() {
	if r.sink != nil {
		for _, e := range r.sprites {
			r.sink.Remove(e.BasicEntity)
		}
	}
	r.sprites = nil
	r.hud.Release()
}

func (r *EngoRenderer) spriteSize(radius float64) float32 {
	size := float32(2*radius) * r.camera.Scale()
	if size < minSpriteSize {
		return minSpriteSize
	}
	return size
}

// yawToRotation converts a counter-clockwise yaw in radians to engo's
// clockwise degrees.
func yawToRotation(yaw float64) float32 {
	return float32(-yaw * 180 / math.Pi)
}
