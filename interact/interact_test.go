package interact

import (
	"math"
	"testing"

	"travelglobe/gfx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrbitDefaults(t *testing.T) {
	c := NewOrbitCamera()
	var cam gfx.Camera
	c.Apply(&cam)
	assert.InDelta(t, 0, cam.Position.X, 1e-12)
	assert.InDelta(t, 0, cam.Position.Y, 1e-12)
	assert.InDelta(t, 5, cam.Position.Z, 1e-12)
	assert.Equal(t, gfx.Vec3{}, cam.Target)
	assert.True(t, c.AutoRotate)
}

func TestZoomClamped(t *testing.T) {
	c := NewOrbitCamera()
	c.Zoom(-100)
	assert.Equal(t, DefaultMinDistance, c.Distance)
	c.Zoom(100)
	assert.Equal(t, DefaultMaxDistance, c.Distance)
	assert.InDelta(t, DefaultMaxDistance, gfx.Len(c.Position()), 1e-9)
}

func TestRotateKeepsFocusAndClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.Rotate(1.3, 10)
	assert.InDelta(t, maxPitch, c.Pitch, 1e-12)
	var cam gfx.Camera
	c.Apply(&cam)
	assert.Equal(t, gfx.Vec3{}, cam.Target, "no pan")
	assert.InDelta(t, DefaultDistance, gfx.Len(cam.Position), 1e-9)
}

func TestAutoRotate(t *testing.T) {
	c := NewOrbitCamera()
	c.Update(1)
	assert.InDelta(t, 2*math.Pi/60*DefaultAutoRotateSpeed, c.Yaw, 1e-12)

	c.AutoRotate = false
	yaw := c.Yaw
	c.Update(1)
	assert.Equal(t, yaw, c.Yaw)
}

type cursorLog []CursorShape

func (l *cursorLog) SetCursor(s CursorShape) { *l = append(*l, s) }

// pickCircle reports "Tokyo" inside a 10px circle at (100, 100).
func pickCircle(x, y float64) (string, bool) {
	if math.Hypot(x-100, y-100) <= 10 {
		return "Tokyo", true
	}
	return "", false
}

func TestHoverCursor(t *testing.T) {
	var log cursorLog
	c := NewController(nil, &log, pickCircle, nil)

	c.Handle(PointerEvent{Kind: PointerMove, X: 10, Y: 10})
	assert.Empty(t, log)

	c.Handle(PointerEvent{Kind: PointerMove, X: 100, Y: 100})
	c.Handle(PointerEvent{Kind: PointerMove, X: 103, Y: 100})
	assert.Equal(t, cursorLog{CursorPointer}, log)
	assert.Equal(t, "Tokyo", c.Hovered())

	c.Handle(PointerEvent{Kind: PointerMove, X: 200, Y: 200})
	assert.Equal(t, cursorLog{CursorPointer, CursorDefault}, log)

	c.Handle(PointerEvent{Kind: PointerMove, X: 100, Y: 100})
	c.Handle(PointerEvent{Kind: PointerLeave})
	assert.Equal(t, cursorLog{CursorPointer, CursorDefault, CursorPointer, CursorDefault}, log)
	assert.Empty(t, c.Hovered())
}

func TestResetRestoresDefaultCursor(t *testing.T) {
	var log cursorLog
	c := NewController(nil, &log, pickCircle, nil)

	c.Reset()
	assert.Empty(t, log, "nothing hovered, nothing to restore")

	c.Handle(PointerEvent{Kind: PointerMove, X: 100, Y: 100})
	c.Handle(PointerEvent{Kind: PointerDown, X: 100, Y: 100})
	c.Reset()
	assert.Equal(t, cursorLog{CursorPointer, CursorDefault}, log)
	assert.Empty(t, c.Hovered())
	assert.False(t, c.Dragging())

	yaw := c.Camera.Yaw
	c.Handle(PointerEvent{Kind: PointerMove, X: 150, Y: 150})
	assert.Equal(t, yaw, c.Camera.Yaw, "reset press does not drag")
}

func TestCursorFunc(t *testing.T) {
	var got CursorShape = 99
	CursorFunc(func(s CursorShape) { got = s }).SetCursor(CursorPointer)
	assert.Equal(t, CursorPointer, got)
	assert.Equal(t, "pointer", CursorPointer.String())
}

func TestDownOnMarkerSelects(t *testing.T) {
	var picked []string
	c := NewController(nil, nil, pickCircle, func(n string) { picked = append(picked, n) })

	c.Handle(PointerEvent{Kind: PointerDown, X: 300, Y: 300})
	c.Handle(PointerEvent{Kind: PointerUp, X: 300, Y: 300})
	assert.Empty(t, picked)

	c.Handle(PointerEvent{Kind: PointerDown, X: 101, Y: 99})
	c.Handle(PointerEvent{Kind: PointerUp, X: 101, Y: 99})
	assert.Equal(t, []string{"Tokyo"}, picked)
}

func TestDragOrbits(t *testing.T) {
	c := NewController(nil, nil, pickCircle, nil)
	c.Camera.AutoRotate = false

	c.Handle(PointerEvent{Kind: PointerDown, X: 300, Y: 300})
	c.Handle(PointerEvent{Kind: PointerMove, X: 302, Y: 300})
	assert.False(t, c.Dragging(), "inside dead zone")
	assert.Zero(t, c.Camera.Yaw)

	c.Handle(PointerEvent{Kind: PointerMove, X: 340, Y: 300})
	require.True(t, c.Dragging())
	assert.InDelta(t, -38*c.RotateSpeed, c.Camera.Yaw, 1e-12)

	c.Handle(PointerEvent{Kind: PointerUp, X: 340, Y: 300})
	yaw := c.Camera.Yaw
	c.Handle(PointerEvent{Kind: PointerMove, X: 400, Y: 300})
	assert.Equal(t, yaw, c.Camera.Yaw, "released pointer does not orbit")
}

func TestWheelZooms(t *testing.T) {
	c := NewController(nil, nil, nil, nil)
	c.Handle(PointerEvent{Kind: PointerWheel, WheelDelta: 1})
	assert.InDelta(t, DefaultDistance-c.ZoomStep, c.Camera.Distance, 1e-12)
	for i := 0; i < 20; i++ {
		c.Handle(PointerEvent{Kind: PointerWheel, WheelDelta: 1})
	}
	assert.Equal(t, DefaultMinDistance, c.Camera.Distance)
}

func TestSelectionSuspendsAutoRotate(t *testing.T) {
	c := NewController(nil, nil, nil, nil)
	assert.True(t, c.Camera.AutoRotate)
	c.SetSelected(true)
	assert.False(t, c.Camera.AutoRotate)
	c.SetSelected(false)
	assert.True(t, c.Camera.AutoRotate)
}
