// pkg/render/engo/renderer_test.go
package engo

import (
	"math"
	"testing"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-ssorf/pkg/entity"
	"github.com/opd-ai/go-ssorf/pkg/physics"
)

func TestEngoRenderer_ImplementsRenderer(t *testing.T) {
	var _ entity.Renderer = NewEngoRenderer(nil, nil, nil)
}

func TestEngoRenderer_RenderVehicleCentersCamera(t *testing.T) {
	r := NewEngoRenderer(nil, newTestCamera(), nil)
	r.RenderVehicle(newTestVehicle(120, -60, math.Pi/2))

	frame := r.Frame()
	if len(frame.Sprites) != 1 {
		t.Fatalf("Expected 1 sprite, got %d", len(frame.Sprites))
	}
	sprite := frame.Sprites[0]
	if sprite.Sprite != SpriteScooter {
		t.Errorf("Expected scooter sprite, got %s", sprite.Sprite)
	}
	if sprite.Position != (engo.Point{X: 400, Y: 300}) {
		t.Errorf("Expected vehicle at screen center, got %v", sprite.Position)
	}
	if math.Abs(float64(sprite.Rotation)+90) > 1e-4 {
		t.Errorf("Expected rotation -90, got %f", sprite.Rotation)
	}
	if sprite.Size != minSpriteSize {
		t.Errorf("Expected minimum sprite size %d, got %f", minSpriteSize, sprite.Size)
	}
	if r.Camera().GetCurrentPosition() != (physics.Vector2D{X: 120, Y: -60}) {
		t.Errorf("Expected camera on vehicle, got %v", r.Camera().GetCurrentPosition())
	}
}

func TestEngoRenderer_RenderMarker(t *testing.T) {
	r := NewEngoRenderer(nil, newTestCamera(), nil)
	r.RenderVehicle(newTestVehicle(0, 0, 0))
	r.RenderMarker(physics.Circle{Center: physics.Vector2D{X: 0, Y: -50}, Radius: 20})

	marker := r.Frame().Sprites[1]
	if marker.Sprite != SpriteMarker {
		t.Errorf("Expected marker sprite, got %s", marker.Sprite)
	}
	if marker.Position != (engo.Point{X: 400, Y: 275}) {
		t.Errorf("Expected marker at (400, 275), got %v", marker.Position)
	}
	if marker.Size != 20 {
		t.Errorf("Expected marker size 20, got %f", marker.Size)
	}
}

func TestEngoRenderer_TextAndClear(t *testing.T) {
	r := NewEngoRenderer(nil, newTestCamera(), nil)
	r.RenderText(40, 54, "Bingo Night")

	texts := r.Frame().Texts
	if len(texts) != 1 || texts[0].Text != "Bingo Night" {
		t.Fatalf("Expected one text line, got %+v", texts)
	}
	if texts[0].Position != (engo.Point{X: 40, Y: 54}) {
		t.Errorf("Expected text at (40, 54), got %v", texts[0].Position)
	}

	r.Clear()
	if len(r.Frame().Sprites) != 0 || len(r.Frame().Texts) != 0 {
		t.Errorf("Expected empty frame after Clear, got %+v", r.Frame())
	}
}

func TestEngoRenderer_PresentWithoutSink(t *testing.T) {
	r := NewEngoRenderer(nil, newTestCamera(), nil)
	r.RenderMarker(physics.Circle{Radius: 10})
	r.Present()

	if len(r.sprites) != 0 {
		t.Errorf("Expected no pooled entities without a sink, got %d", len(r.sprites))
	}
}

func TestEngoRenderer_PresentPoolsEntities(t *testing.T) {
	withMailbox(t)
	sink := &fakeSink{}
	r := NewEngoRenderer(sink, newTestCamera(), nil)

	r.RenderVehicle(newTestVehicle(0, 0, 0))
	r.RenderMarker(physics.Circle{Center: physics.Vector2D{Y: -50}, Radius: 20})
	r.Present()

	if len(sink.added) != 2 {
		t.Fatalf("Expected 2 entities added, got %d", len(sink.added))
	}

	r.Clear()
	r.RenderMarker(physics.Circle{Center: physics.Vector2D{Y: -50}, Radius: 20})
	r.Present()

	if len(sink.added) != 2 {
		t.Errorf("Expected pooled entities to be reused, got %d adds", len(sink.added))
	}
	if r.sprites[0].Hidden {
		t.Error("Expected first sprite visible")
	}
	if !r.sprites[1].Hidden {
		t.Error("Expected unused sprite hidden")
	}
	if r.sprites[0].Width != 20 {
		t.Errorf("Expected width 20, got %f", r.sprites[0].Width)
	}

	r.Release()
	if len(sink.removed) != 2 {
		t.Errorf("Expected 2 entities removed, got %d", len(sink.removed))
	}
}

func TestHUDSystem_Sync(t *testing.T) {
	withMailbox(t)
	sink := &fakeSink{}
	assets := NewAssetManager()
	hud := NewHUDSystem(sink, assets)

	texts := []TextDraw{
		{Position: engo.Point{X: 40, Y: 30}, Text: "Speed 3.2"},
		{Position: engo.Point{X: 40, Y: 54}, Text: "Time 81.0"},
	}

	hud.Sync(texts)
	if hud.Lines() != 0 {
		t.Errorf("Expected no text before a font is loaded, got %d lines", hud.Lines())
	}

	assets.font = &common.Font{URL: FontURL}
	hud.Sync(texts)
	if hud.Lines() != 2 {
		t.Fatalf("Expected 2 lines, got %d", hud.Lines())
	}
	if got := hud.lines[1].Drawable.(common.Text).Text; got != "Time 81.0" {
		t.Errorf("Expected second line text, got %q", got)
	}
	if hud.lines[1].Position != (engo.Point{X: 40, Y: 54}) {
		t.Errorf("Expected second line at (40, 54), got %v", hud.lines[1].Position)
	}

	hud.Sync(texts[:1])
	if !hud.lines[1].Hidden {
		t.Error("Expected unused line hidden")
	}

	hud.Release()
	if len(sink.removed) != 2 || hud.Lines() != 0 {
		t.Errorf("Expected lines released, got %d removed and %d left", len(sink.removed), hud.Lines())
	}
}

func TestYawToRotation(t *testing.T) {
	tests := []struct {
		yaw      float64
		expected float32
	}{
		{0, 0},
		{math.Pi / 2, -90},
		{-math.Pi, 180},
	}
	for _, tt := range tests {
		if got := yawToRotation(tt.yaw); math.Abs(float64(got-tt.expected)) > 1e-4 {
			t.Errorf("yawToRotation(%f) = %f, want %f", tt.yaw, got, tt.expected)
		}
	}
}
