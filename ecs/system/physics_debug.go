package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rustyfarm/common"
	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/component"
)

const debugDotSize = 4

// DrawPhysicsDebug outlines every shape in the space in screen coordinates.
func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}

	camX, camY, zoom := debugCameraTransform(w)
	drawer := &physicsDebugDrawer{
		screen: screen,
		camX:   camX,
		camY:   camY,
		zoom:   zoom,
	}
	cp.DrawSpace(space, drawer)
}

// DrawPlayerDebug prints the player's position, facing and active clip.
func DrawPlayerDebug(w *ecs.World, anims AnimationReader, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	facing := "none"
	if f, ok := ecs.Get(w, player, component.FacingComponent.Kind()); ok {
		facing = f.Dir.String()
	}
	clip := "none"
	if anims != nil {
		if name, ok := anims.ActiveClip(player); ok {
			clip = name
		}
	}
	text := fmt.Sprintf("Player: %.1f,%.1f\nFacing: %s\nClip: %s", t.X, t.Y, facing, clip)
	ebitenutil.DebugPrintAt(screen, text, 10, 20)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	camX   float64
	camY   float64
	zoom   float64
}

var (
	debugSolidColor    = cp.FColor{R: 1, G: 0.3, B: 0.2, A: 0.9}
	debugSensorColor   = cp.FColor{R: 1, G: 0.9, B: 0.2, A: 0.7}
	debugDisabledColor = cp.FColor{R: 0.5, G: 0.5, B: 0.5, A: 0.5}
)

// Farm shapes are all boxes; circles and segments are drawn as plain lines.
func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, _, radius float64, outline, _ cp.FColor, _ interface{}) {
	d.drawLine(cp.Vector{X: pos.X - radius, Y: pos.Y}, cp.Vector{X: pos.X + radius, Y: pos.Y}, outline)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - radius}, cp.Vector{X: pos.X, Y: pos.Y + radius}, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, _ interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, _ float64, _, fill cp.FColor, _ interface{}) {
	d.drawLine(a, b, fill)
}

// DrawPolygon strokes with the shape color so solids, sensors and open gates
// are told apart.
func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, _ float64, _, fill cp.FColor, _ interface{}) {
	for i := 0; i < count; i++ {
		d.drawLine(verts[i], verts[(i+1)%count], fill)
	}
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	d.DrawCircle(pos, 0, size/2, fill, fill, data)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return debugSolidColor
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, _ interface{}) cp.FColor {
	switch {
	case shape.Filter.Categories == 0:
		return debugDisabledColor
	case shape.Sensor():
		return debugSensorColor
	}
	return debugSolidColor
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return debugDisabledColor
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return debugSolidColor
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	clr := color.NRGBA{
		R: uint8(common.Clamp(float64(c.R), 0, 1) * 255),
		G: uint8(common.Clamp(float64(c.G), 0, 1) * 255),
		B: uint8(common.Clamp(float64(c.B), 0, 1) * 255),
		A: uint8(common.Clamp(float64(c.A), 0, 1) * 255),
	}
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, clr, false)
}

func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return (v.X - d.camX) * d.zoom, (v.Y - d.camY) * d.zoom
}

func debugCameraTransform(w *ecs.World) (float64, float64, float64) {
	camX, camY, zoom := 0.0, 0.0, 1.0
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return camX, camY, zoom
	}
	if t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		camX, camY = t.X, t.Y
	}
	if cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok && cam.Zoom > 0 {
		zoom = cam.Zoom
	}
	return camX, camY, zoom
}
